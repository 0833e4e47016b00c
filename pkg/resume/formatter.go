package resume

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/prompts"

	"github.com/xrsl/atscv/pkg/ai"
	"github.com/xrsl/atscv/pkg/log"
)

const sectionTemplate = `Format the following {{.section_name}} section content for a resume, ensuring it is:
1. Concise and impactful
2. Uses action verbs
3. Quantifies achievements where possible
4. Is ATS-friendly
5. Maintains professional tone

Content:
{{.content}}

Return only the formatted content without any additional commentary.`

// Formatter rewrites raw section content through an LLM.
type Formatter struct {
	client ai.Client
	prompt prompts.PromptTemplate
}

// NewFormatter returns a Formatter that sends every section to client.
func NewFormatter(client ai.Client) *Formatter {
	return &Formatter{
		client: client,
		prompt: prompts.NewPromptTemplate(sectionTemplate, []string{"section_name", "content"}),
	}
}

// Format returns the LLM's rewrite of content. Blank content is returned
// unchanged without calling the LLM.
func (f *Formatter) Format(ctx context.Context, section, content string) (FormattedSection, error) {
	if strings.TrimSpace(content) == "" {
		return TextBlock(content), nil
	}

	prompt, err := f.prompt.Format(map[string]any{
		"section_name": section,
		"content":      content,
	})
	if err != nil {
		return FormattedSection{}, fmt.Errorf("format %s: render prompt: %w", section, err)
	}

	logger := log.With("section", section)
	logger.Debug("formatting section", "chars", len(content))
	reply, err := f.client.GenerateContent(ctx, prompt)
	if err != nil {
		return FormattedSection{}, fmt.Errorf("format %s: %w", section, err)
	}

	out := parseReply(reply)
	logger.Debug("section formatted", "kind", out.Kind)
	return out, nil
}
