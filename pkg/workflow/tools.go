package workflow

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tmc/langchaingo/tools"
	"github.com/tmc/langchaingo/tools/serpapi"

	"github.com/xrsl/atscv/pkg/docx"
	"github.com/xrsl/atscv/pkg/log"
	"github.com/xrsl/atscv/pkg/utils"
)

// Tool keys referenced from crew.yaml
const (
	ToolReadResume  = "read_resume"
	ToolDocxReader  = "docx_reader"
	ToolFileWriter  = "file_writer"
	ToolSearch      = "search"
	ToolReadWebsite = "read_website"
)

// maxPageChars bounds what Read Website hands back to the model.
const maxPageChars = 8000

// ToolOptions configures the tool set.
type ToolOptions struct {
	ResumePath  string
	ExamplePath string
	WorkDir     string       // File Writer root; "" is the current directory
	HTTPClient  *http.Client // nil uses a 30s-timeout client
	UserAgent   string
}

// NewTools builds the tools available to roles, keyed by crew.yaml name.
// Search is only present when SERPAPI_API_KEY is set.
func NewTools(opts ToolOptions) map[string]tools.Tool {
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	set := map[string]tools.Tool{
		ToolReadResume:  fileReader{path: opts.ResumePath},
		ToolDocxReader:  docxReader{path: opts.ExamplePath},
		ToolFileWriter:  fileWriter{root: opts.WorkDir},
		ToolReadWebsite: websiteReader{client: opts.HTTPClient, userAgent: opts.UserAgent},
	}

	if os.Getenv("SERPAPI_API_KEY") != "" {
		search, err := serpapi.New()
		if err != nil {
			log.Warn("search tool disabled", "error", err)
		} else {
			set[ToolSearch] = search
		}
	} else {
		log.Debug("search tool disabled", "reason", "SERPAPI_API_KEY not set")
	}
	return set
}

// Tool errors are returned as observation text so the agent can react;
// a Go error would abort the executor.

type fileReader struct {
	path string
}

func (fileReader) Name() string { return "Read Resume" }

func (t fileReader) Description() string {
	return fmt.Sprintf("Reads the candidate's plain-text resume (%s). The input is ignored.", t.path)
}

func (t fileReader) Call(_ context.Context, _ string) (string, error) {
	content, err := utils.ReadFile(t.path)
	if err != nil {
		return fmt.Sprintf("Error reading file: %v", err), nil
	}
	return content, nil
}

type docxReader struct {
	path string
}

func (docxReader) Name() string { return "DOCX Reader" }

func (docxReader) Description() string {
	return "Read content from a DOCX file. Returns the example resume's paragraphs. The input is ignored."
}

func (t docxReader) Call(_ context.Context, _ string) (string, error) {
	text, err := docx.ReadText(t.path)
	if err != nil {
		return fmt.Sprintf("Error reading DOCX file: %v", err), nil
	}
	return text, nil
}

type fileWriter struct {
	root string
}

func (fileWriter) Name() string { return "File Writer" }

func (fileWriter) Description() string {
	return "Writes a file. Input format: <relative path>|<content>. Existing files are overwritten."
}

func (t fileWriter) Call(_ context.Context, input string) (string, error) {
	name, content, ok := strings.Cut(input, "|")
	if !ok {
		return "Error: input must be <path>|<content>", nil
	}
	path, err := utils.WithinDir(t.root, strings.TrimSpace(name))
	if err != nil {
		return fmt.Sprintf("Error writing file: %v", err), nil
	}
	if err := utils.WriteFile(path, content); err != nil {
		return fmt.Sprintf("Error writing file: %v", err), nil
	}
	log.Debug("agent wrote file", "path", path, "bytes", len(content))
	return fmt.Sprintf("Wrote %d bytes to %s", len(content), strings.TrimSpace(name)), nil
}

type websiteReader struct {
	client    *http.Client
	userAgent string
}

func (websiteReader) Name() string { return "Read Website" }

func (websiteReader) Description() string {
	return "Fetches a web page and returns its visible text. The input is the URL."
}

func (t websiteReader) Call(ctx context.Context, input string) (string, error) {
	url := strings.Trim(strings.TrimSpace(input), `"'`)
	text, err := t.fetch(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return fmt.Sprintf("Error reading website: %v", err), nil
	}
	if len(text) > maxPageChars {
		text = text[:maxPageChars]
	}
	return text, nil
}

func (t websiteReader) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch failed: HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read failed: %w", err)
	}
	return pageText(string(body))
}

// pageText strips non-content elements and blank lines from an HTML page.
func pageText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, nav, footer, header, noscript").Remove()

	var cleaned []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n"), nil
}
