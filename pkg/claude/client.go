package claude

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultAgent = "claude-sonnet-4"

const maxTokens = 4096

var SupportedAgents = []string{
	"claude-sonnet-4",
	"claude-sonnet-4-5",
	"claude-opus-4",
	"claude-opus-4-5",
	"claude-haiku-4-5",
}

// Map friendly agent names to Anthropic model IDs
var modelMapping = map[string]string{
	"claude-sonnet-4":   "claude-sonnet-4-20250514",
	"claude-sonnet-4-5": "claude-sonnet-4-5-20250929",
	"claude-opus-4":     "claude-opus-4-20250514",
	"claude-opus-4-5":   "claude-opus-4-5-20251101",
	"claude-haiku-4-5":  "claude-haiku-4-5-20251001",
}

// ErrNoAPIKey is returned by NewClient when ANTHROPIC_API_KEY is unset.
var ErrNoAPIKey = errors.New("ANTHROPIC_API_KEY environment variable not set")

func IsAgentSupported(agent string) bool {
	return slices.Contains(SupportedAgents, agent)
}

type Client struct {
	client      anthropic.Client
	model       string
	temperature float64
}

func NewClient(model string, temperature float64) (*Client, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	if model == "" {
		model = DefaultAgent
	}

	modelID, ok := modelMapping[model]
	if !ok {
		modelID = model // dated IDs pass through unchanged
	}

	return &Client{
		client:      anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:       modelID,
		temperature: temperature,
	}, nil
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return c.GenerateContentWithSystem(ctx, "", prompt)
}

// GenerateContentWithSystem sends a prompt with a cached system message
// (5-min TTL on the Anthropic side).
func (c *Client) GenerateContentWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{
				Type: "text",
				Text: systemPrompt,
				CacheControl: anthropic.CacheControlEphemeralParam{
					Type: "ephemeral",
				},
			},
		}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", formatAPIError(err, c.model)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

// Validate sends a one-token request so a bad model ID fails at startup
// instead of in the middle of a run.
func (c *Client) Validate(ctx context.Context) error {
	_, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	if err != nil {
		return formatAPIError(err, c.model)
	}
	return nil
}

// formatAPIError adds a readable hint while keeping the SDK error in the chain
func formatAPIError(err error, model string) error {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("claude API error: %w", err)
	}

	switch apiErr.StatusCode {
	case 401:
		return fmt.Errorf("claude API error: invalid API key, check ANTHROPIC_API_KEY: %w", err)
	case 403:
		return fmt.Errorf("claude API error: key has no access to model %q: %w", model, err)
	case 404:
		return fmt.Errorf("claude API error: model %q not found: %w", model, err)
	case 429:
		return fmt.Errorf("claude API error: rate limit exceeded for model %q: %w", model, err)
	case 529:
		return fmt.Errorf("claude API error: service overloaded: %w", err)
	default:
		return fmt.Errorf("claude API error: %w", err)
	}
}

func (c *Client) Close() {
	// No cleanup needed for HTTP client
}
