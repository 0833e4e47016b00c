package ai

import (
	"context"
	"strings"

	"github.com/xrsl/atscv/pkg/claude"
	"github.com/xrsl/atscv/pkg/gemini"
	"github.com/xrsl/atscv/pkg/openai"
)

// Client is the common interface for AI providers
type Client interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Close()
}

// CachingClient supports a separate (cacheable) system prompt (optional interface)
type CachingClient interface {
	Client
	GenerateContentWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Validator is implemented by clients that can check model availability
// up front (optional interface)
type Validator interface {
	Validate(ctx context.Context) error
}

// NewClient creates an AI client based on the model name prefix
func NewClient(model string, temperature float64) (Client, error) {
	switch {
	case isCLI(model, "claude-code"):
		if !IsClaudeCLIAvailable() {
			return nil, &ConfigError{Kind: KindUnreachable, Model: model, Err: errCLINotFound("claude")}
		}
		return NewClaudeCLI(subModel(model)), nil
	case isCLI(model, "gemini-cli"):
		if !IsGeminiCLIAvailable() {
			return nil, &ConfigError{Kind: KindUnreachable, Model: model, Err: errCLINotFound("gemini")}
		}
		return NewGeminiCLI(subModel(model)), nil
	case strings.HasPrefix(model, "gemini-"):
		return gemini.NewClient(model, temperature)
	case strings.HasPrefix(model, "claude-"):
		return claude.NewClient(model, temperature)
	case openai.IsOpenAIModel(model):
		return openai.NewClient(model, temperature)
	default:
		return nil, &ConfigError{Kind: KindUnknownModel, Model: model}
	}
}

func isCLI(model, name string) bool {
	return model == name || strings.HasPrefix(model, name+":")
}

// subModel parses "claude-code:sonnet-4-5" → "sonnet-4-5"
func subModel(model string) string {
	if idx := strings.Index(model, ":"); idx != -1 {
		return model[idx+1:]
	}
	return ""
}

// IsModelSupported checks if a model is known to one of the providers
func IsModelSupported(model string) bool {
	switch {
	case isCLI(model, "claude-code"):
		return IsClaudeCLIAvailable()
	case isCLI(model, "gemini-cli"):
		return IsGeminiCLIAvailable()
	case strings.HasPrefix(model, "gemini-"):
		return gemini.IsAgentSupported(model)
	case strings.HasPrefix(model, "claude-"):
		return claude.IsAgentSupported(model)
	default:
		return openai.IsAgentSupported(model)
	}
}

// SupportedModels returns supported API models (full names)
func SupportedModels() []string {
	models := []string{}
	models = append(models, openai.SupportedAgents...)
	models = append(models, claude.SupportedAgents...)
	models = append(models, gemini.SupportedAgents...)
	return models
}

// CredentialEnv returns the environment variable holding the API key for
// model, or "" when the provider needs none.
func CredentialEnv(model string) string {
	switch {
	case isCLI(model, "claude-code"), isCLI(model, "gemini-cli"):
		return ""
	case strings.HasPrefix(model, "gemini-"):
		return "GEMINI_API_KEY"
	case strings.HasPrefix(model, "claude-"):
		return "ANTHROPIC_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}
