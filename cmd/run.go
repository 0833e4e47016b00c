package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xrsl/atscv/pkg/ai"
	"github.com/xrsl/atscv/pkg/cache"
	"github.com/xrsl/atscv/pkg/config"
	"github.com/xrsl/atscv/pkg/docx"
	"github.com/xrsl/atscv/pkg/log"
	"github.com/xrsl/atscv/pkg/resume"
	"github.com/xrsl/atscv/pkg/style"
	"github.com/xrsl/atscv/pkg/utils"
	"github.com/xrsl/atscv/pkg/workflow"
)

// runConfig resolves config with command-line overrides applied.
func runConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("output") {
		cfg.Output, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("model") {
		cfg.Model, _ = cmd.Flags().GetString("model")
	}
	if cmd.Flags().Changed("cache") {
		cfg.Cache, _ = cmd.Flags().GetBool("cache")
	}
	if cfg.CrewPath == "" {
		cfg.CrewPath = workflow.CrewPath
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}

	resumeText, err := utils.ReadFile(cfg.ResumePath)
	if err != nil {
		return fmt.Errorf("read resume: %w (set resume_path or run from the resume's directory)", err)
	}

	client, err := ai.New(ctx, ai.Settings{
		Model:         cfg.Model,
		FallbackModel: cfg.FallbackModel,
		Temperature:   cfg.Temperature,
		Validate:      cfg.ValidateModel,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	def, err := workflow.Load(cfg.CrewPath, cfg.Language)
	if err != nil {
		return err
	}
	crew, err := workflow.NewCrew(def, ai.AsLLM(client), workflow.NewTools(workflow.ToolOptions{
		ResumePath:  cfg.ResumePath,
		ExamplePath: cfg.ExamplePath,
		UserAgent:   "atscv/" + getVersion(),
	}), workflow.WithMaxIterations(cfg.MaxIterations))
	if err != nil {
		return err
	}

	var key string
	if cfg.Cache {
		key = cacheKey(cfg, def, resumeText, modelOf(client, cfg.Model))
	}

	if !quiet {
		fmt.Fprintln(os.Stderr, style.Step(fmt.Sprintf("Generating %s with %s", cfg.Output, style.Accent(modelOf(client, cfg.Model)))))
	}
	text, err := crewOutput(ctx, crew, key, cfg)
	if err != nil {
		return err
	}

	w := resume.NewWriter(resume.NewFormatter(client), cfg.Output)
	if err := render(ctx, w, text); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintln(os.Stderr, style.OK("Saved "+style.Bold(w.OutputPath())))
	}
	return nil
}

// crewOutput runs the workflow, or returns its cached text when key is set
// and an entry exists.
func crewOutput(ctx context.Context, wf workflow.Workflow, key string, cfg *config.Config) (string, error) {
	if key != "" && cache.Exists(key) {
		if e, err := cache.Read(key); err != nil {
			log.Warn("ignoring unreadable cache entry", "key", key[:12], "error", err)
		} else {
			log.Info("using cached crew output", "key", key[:12], "created", e.CreatedAt)
			if !quiet {
				fmt.Fprintln(os.Stderr, style.Dim("Using cached crew output"))
			}
			return e.Text, nil
		}
	}

	text, err := withSpinner(ctx, "Running resume crew...", wf.Run)
	if err != nil {
		return "", err
	}

	if key != "" {
		if err := cache.Write(key, cache.Entry{Model: cfg.Model, Language: cfg.Language, Text: text}); err != nil {
			log.Warn("failed to write cache", "error", err)
		}
	}
	return text, nil
}

// render formats and saves the document, warning when the crew's text had
// no recognizable sections.
func render(ctx context.Context, w *resume.Writer, text string) error {
	if resume.Partition(text).Empty() {
		log.Warn("crew output has no recognizable section headings", "chars", len(text))
	}
	return resume.Render(ctx, w, text)
}

func cacheKey(cfg *config.Config, def *workflow.Definition, resumeText, model string) string {
	// The example is read the same way the DOCX Reader tool reads it;
	// a missing file still yields a stable key.
	example, _ := docx.ReadText(cfg.ExamplePath)
	crew, _ := yaml.Marshal(def)
	return cache.Key(cache.Inputs{
		Resume:   resumeText,
		Example:  example,
		Crew:     string(crew),
		Language: cfg.Language,
		Model:    model,
	})
}

// modelOf reports the model a client actually uses, which differs from the
// configured one after a fallback.
func modelOf(c ai.Client, configured string) string {
	if m, ok := c.(interface{ Model() string }); ok {
		return m.Model()
	}
	return configured
}
