package ai

import (
	"errors"
	"fmt"
	"net"
	"net/url"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	openaisdk "github.com/openai/openai-go"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/xrsl/atscv/pkg/claude"
	"github.com/xrsl/atscv/pkg/gemini"
	"github.com/xrsl/atscv/pkg/openai"
)

// ErrorKind classifies why a client could not be set up
type ErrorKind int

const (
	KindOther ErrorKind = iota
	// KindMissingCredentials: API key absent or refused
	KindMissingCredentials
	// KindUnknownModel: no provider handles the model name
	KindUnknownModel
	// KindModelRejected: the provider answered but refused the model
	KindModelRejected
	// KindUnreachable: the provider could not be reached
	KindUnreachable
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingCredentials:
		return "missing credentials"
	case KindUnknownModel:
		return "unknown model"
	case KindModelRejected:
		return "model rejected"
	case KindUnreachable:
		return "provider unreachable"
	default:
		return "configuration error"
	}
}

// ConfigError is returned when an LLM client cannot be constructed or
// validated. Only KindModelRejected is eligible for the fallback model.
type ConfigError struct {
	Kind  ErrorKind
	Model string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Model)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Model, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func errCLINotFound(name string) error {
	return fmt.Errorf("%s CLI not found in PATH", name)
}

// Classify wraps err in a *ConfigError for model. An existing ConfigError
// in the chain is returned as is.
func Classify(model string, err error) *ConfigError {
	if err == nil {
		return nil
	}
	var cerr *ConfigError
	if errors.As(err, &cerr) {
		return cerr
	}
	return &ConfigError{Kind: kindOf(err), Model: model, Err: err}
}

func kindOf(err error) ErrorKind {
	if errors.Is(err, openai.ErrNoAPIKey) || errors.Is(err, claude.ErrNoAPIKey) || errors.Is(err, gemini.ErrNoAPIKey) {
		return KindMissingCredentials
	}

	var oaErr *openaisdk.Error
	if errors.As(err, &oaErr) {
		return kindOfStatus(oaErr.StatusCode)
	}
	var anErr *anthropic.Error
	if errors.As(err, &anErr) {
		return kindOfStatus(anErr.StatusCode)
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return kindOfStatus(gErr.Code)
	}
	if st, ok := status.FromError(err); ok && st.Code() != codes.OK && st.Code() != codes.Unknown {
		return kindOfCode(st.Code())
	}

	var netErr net.Error
	var urlErr *url.Error
	var opErr *net.OpError
	if errors.As(err, &opErr) || errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return KindUnreachable
	}
	return KindOther
}

func kindOfStatus(code int) ErrorKind {
	switch {
	case code == 401:
		return KindMissingCredentials
	case code == 400 || code == 403 || code == 404:
		return KindModelRejected
	case code >= 500:
		return KindUnreachable
	default:
		return KindOther
	}
}

func kindOfCode(code codes.Code) ErrorKind {
	switch code {
	case codes.Unauthenticated:
		return KindMissingCredentials
	case codes.NotFound, codes.InvalidArgument, codes.PermissionDenied:
		return KindModelRejected
	case codes.Unavailable, codes.DeadlineExceeded:
		return KindUnreachable
	default:
		return KindOther
	}
}
