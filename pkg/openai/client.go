package openai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultAgent = "gpt-4"

var SupportedAgents = []string{
	"gpt-4",
	"gpt-4-turbo",
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-4.1",
	"gpt-4.1-mini",
	"gpt-3.5-turbo",
}

// ErrNoAPIKey is returned by NewClient when OPENAI_API_KEY is unset.
var ErrNoAPIKey = errors.New("OPENAI_API_KEY environment variable not set")

func IsAgentSupported(agent string) bool {
	return slices.Contains(SupportedAgents, agent)
}

// IsOpenAIModel reports whether model names an OpenAI chat model family.
func IsOpenAIModel(model string) bool {
	for _, prefix := range []string{"gpt-", "chatgpt-", "o1", "o3", "o4"} {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

// Client implements ai.Client over the chat completions API.
type Client struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewClient reads OPENAI_API_KEY and, when set, OPENAI_BASE_URL for
// OpenAI-compatible gateways.
func NewClient(model string, temperature float64) (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultAgent
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: temperature,
	}, nil
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return c.GenerateContentWithSystem(ctx, "", prompt)
}

func (c *Client) GenerateContentWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var msgs []openai.ChatCompletionMessageParamUnion
	if systemPrompt != "" {
		msgs = append(msgs, openai.SystemMessage(systemPrompt))
	}
	msgs = append(msgs, openai.UserMessage(userPrompt))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    msgs,
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Validate asks the API whether the configured model exists and is
// visible to the key, without spending tokens.
func (c *Client) Validate(ctx context.Context) error {
	if _, err := c.client.Models.Get(ctx, c.model); err != nil {
		return fmt.Errorf("openai model %q: %w", c.model, err)
	}
	return nil
}

func (c *Client) Close() {
	// No cleanup needed for HTTP client
}
