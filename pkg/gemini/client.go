package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultAgent = "gemini-2.5-flash"

var SupportedAgents = []string{
	"gemini-3-flash-preview",
	"gemini-3-pro-preview",
	"gemini-2.5-flash",
	"gemini-2.5-pro",
	"gemini-2.0-flash",
}

// ErrNoAPIKey is returned by NewClient when GEMINI_API_KEY is unset.
var ErrNoAPIKey = errors.New("GEMINI_API_KEY environment variable not set")

func IsAgentSupported(agent string) bool {
	return slices.Contains(SupportedAgents, agent)
}

type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

func NewClient(model string, temperature float64) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	if model == "" {
		model = DefaultAgent
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	m := client.GenerativeModel(model)
	m.SetTemperature(float32(temperature))

	return &Client{
		client: client,
		model:  m,
		name:   model,
	}, nil
}

func (c *Client) Model() string {
	return c.name
}

func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return c.GenerateContentWithSystem(ctx, "", prompt)
}

// GenerateContentWithSystem uses the system instruction slot for systemPrompt.
func (c *Client) GenerateContentWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	c.model.SystemInstruction = nil
	if systemPrompt != "" {
		c.model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("unexpected response format")
	}
	return sb.String(), nil
}

// Validate fetches model metadata; unknown models fail here.
func (c *Client) Validate(ctx context.Context) error {
	if _, err := c.model.Info(ctx); err != nil {
		return fmt.Errorf("gemini model %q: %w", c.name, err)
	}
	return nil
}

func (c *Client) Close() {
	_ = c.client.Close()
}
