package ai

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// LLM exposes a Client as a langchaingo llms.Model so the agent framework
// can drive any provider.
type LLM struct {
	client Client
}

// AsLLM wraps c.
func AsLLM(c Client) *LLM {
	return &LLM{client: c}
}

// GenerateContent flattens messages into a prompt. System messages go to
// the system slot when the client supports one. Stop words are applied to
// the reply because not every provider accepts them.
func (m *LLM) GenerateContent(
	ctx context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, o := range options {
		o(&opts)
	}

	var system, user []string
	for _, msg := range messages {
		text := textOf(msg)
		if text == "" {
			continue
		}
		if msg.Role == llms.ChatMessageTypeSystem {
			system = append(system, text)
		} else {
			user = append(user, text)
		}
	}

	var (
		reply string
		err   error
	)
	if cc, ok := m.client.(CachingClient); ok && len(system) > 0 {
		reply, err = cc.GenerateContentWithSystem(ctx, strings.Join(system, "\n\n"), strings.Join(user, "\n\n"))
	} else {
		reply, err = m.client.GenerateContent(ctx, strings.Join(append(system, user...), "\n\n"))
	}
	if err != nil {
		return nil, err
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: truncateAtStop(reply, opts.StopWords)}},
	}, nil
}

// Call implements the single-prompt form of llms.Model.
func (m *LLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func textOf(msg llms.MessageContent) string {
	var parts []string
	for _, part := range msg.Parts {
		if tc, ok := part.(llms.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "")
}

func truncateAtStop(s string, stops []string) string {
	cut := len(s)
	for _, stop := range stops {
		if stop == "" {
			continue
		}
		if i := strings.Index(s, stop); i >= 0 && i < cut {
			cut = i
		}
	}
	return s[:cut]
}
