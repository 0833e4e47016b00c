package ai

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/xrsl/atscv/pkg/claude"
	"github.com/xrsl/atscv/pkg/openai"
)

type stubClient struct {
	model       string
	validateErr error
	closed      bool
}

func (s *stubClient) GenerateContent(context.Context, string) (string, error) { return s.model, nil }
func (s *stubClient) Close()                                                  { s.closed = true }
func (s *stubClient) Validate(context.Context) error                          { return s.validateErr }

func withOpener(t *testing.T, fn func(model string, temperature float64) (Client, error)) {
	t.Helper()
	orig := opener
	opener = fn
	t.Cleanup(func() { opener = orig })
}

func TestIsModelSupported(t *testing.T) {
	tests := []struct {
		model    string
		expected bool
	}{
		{"gpt-4", true},
		{"gpt-3.5-turbo", true},
		{"gemini-2.5-flash", true},
		{"claude-sonnet-4", true},
		{"invalid-model", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsModelSupported(tt.model))
		})
	}
}

func TestSupportedModels(t *testing.T) {
	models := SupportedModels()
	assert.Contains(t, models, "gpt-4")
	assert.Contains(t, models, "claude-sonnet-4")
	assert.Contains(t, models, "gemini-2.5-flash")
}

func TestCredentialEnv(t *testing.T) {
	assert.Equal(t, "OPENAI_API_KEY", CredentialEnv("gpt-4"))
	assert.Equal(t, "ANTHROPIC_API_KEY", CredentialEnv("claude-opus-4"))
	assert.Equal(t, "GEMINI_API_KEY", CredentialEnv("gemini-2.5-pro"))
	assert.Equal(t, "", CredentialEnv("claude-code:sonnet-4-5"))
}

func TestNewClientUnknownModel(t *testing.T) {
	_, err := NewClient("llama-3", 0.2)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KindUnknownModel, cerr.Kind)
	assert.Equal(t, "llama-3", cerr.Model)
}

func TestNewClientMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewClient("gpt-4", 0.2)
	require.Error(t, err)
	assert.Equal(t, KindMissingCredentials, Classify("gpt-4", err).Kind)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"openai key", openai.ErrNoAPIKey, KindMissingCredentials},
		{"claude key wrapped", errors.Join(errors.New("setup"), claude.ErrNoAPIKey), KindMissingCredentials},
		{"googleapi 404", &googleapi.Error{Code: 404, Message: "model not found"}, KindModelRejected},
		{"googleapi 401", &googleapi.Error{Code: 401}, KindMissingCredentials},
		{"googleapi 503", &googleapi.Error{Code: 503}, KindUnreachable},
		{"grpc not found", status.Error(codes.NotFound, "no such model"), KindModelRejected},
		{"grpc unavailable", status.Error(codes.Unavailable, "dns"), KindUnreachable},
		{"dial failure", &url.Error{Op: "Post", URL: "https://api.openai.com", Err: errors.New("connection refused")}, KindUnreachable},
		{"other", errors.New("boom"), KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cerr := Classify("m", tt.err)
			require.NotNil(t, cerr)
			assert.Equal(t, tt.want, cerr.Kind)
			assert.ErrorIs(t, cerr, tt.err)
		})
	}

	assert.Nil(t, Classify("m", nil))

	existing := &ConfigError{Kind: KindUnknownModel, Model: "x"}
	assert.Same(t, existing, Classify("m", existing))
}

func TestNewUsesPrimary(t *testing.T) {
	withOpener(t, func(model string, _ float64) (Client, error) {
		return &stubClient{model: model}, nil
	})

	c, err := New(context.Background(), Settings{Model: "gpt-4", FallbackModel: "gpt-3.5-turbo", Validate: true})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", c.(*stubClient).model)
}

func TestNewFallsBackWhenModelRejected(t *testing.T) {
	var rejected *stubClient
	withOpener(t, func(model string, _ float64) (Client, error) {
		if model == "gpt-4" {
			rejected = &stubClient{model: model, validateErr: &googleapi.Error{Code: 404}}
			return rejected, nil
		}
		return &stubClient{model: model}, nil
	})

	c, err := New(context.Background(), Settings{Model: "gpt-4", FallbackModel: "gpt-3.5-turbo", Validate: true})
	require.NoError(t, err)
	assert.Equal(t, "gpt-3.5-turbo", c.(*stubClient).model)
	assert.True(t, rejected.closed, "rejected client should be closed")
}

func TestNewDoesNotFallBackWhenUnreachable(t *testing.T) {
	withOpener(t, func(model string, _ float64) (Client, error) {
		return &stubClient{model: model, validateErr: status.Error(codes.Unavailable, "down")}, nil
	})

	_, err := New(context.Background(), Settings{Model: "gpt-4", FallbackModel: "gpt-3.5-turbo", Validate: true})
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KindUnreachable, cerr.Kind)
	assert.Equal(t, "gpt-4", cerr.Model)
}

func TestNewMissingCredentialsSurface(t *testing.T) {
	withOpener(t, func(model string, _ float64) (Client, error) {
		return nil, openai.ErrNoAPIKey
	})

	_, err := New(context.Background(), Settings{Model: "gpt-4", FallbackModel: "gpt-3.5-turbo"})
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KindMissingCredentials, cerr.Kind)
}

func TestNewSkipsValidationWhenDisabled(t *testing.T) {
	withOpener(t, func(model string, _ float64) (Client, error) {
		return &stubClient{model: model, validateErr: &googleapi.Error{Code: 404}}, nil
	})

	c, err := New(context.Background(), Settings{Model: "gpt-4", FallbackModel: "gpt-3.5-turbo"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", c.(*stubClient).model)
}

func TestNewFallbackFailureReportsBoth(t *testing.T) {
	withOpener(t, func(model string, _ float64) (Client, error) {
		return &stubClient{model: model, validateErr: &googleapi.Error{Code: 404, Message: model}}, nil
	})

	_, err := New(context.Background(), Settings{Model: "gpt-4", FallbackModel: "gpt-3.5-turbo", Validate: true})
	require.Error(t, err)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "gpt-4", cerr.Model)
	assert.Contains(t, err.Error(), "fallback failed")
}
