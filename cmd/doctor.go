package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xrsl/atscv/pkg/ai"
	"github.com/xrsl/atscv/pkg/docx"
	"github.com/xrsl/atscv/pkg/style"
	"github.com/xrsl/atscv/pkg/workflow"
)

var doctorProbe bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check inputs, credentials and model setup",
	Long: `Verify everything atscv needs before a run: input files, the crew
definition, the configured model and API credentials.

With --probe the model is also contacted once to confirm it is available.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorProbe, "probe", false, "Send a one-token request to validate the model")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}
	allGood := true
	fail := func(msg, hint string) {
		fmt.Println(style.Fail(msg))
		if hint != "" {
			fmt.Printf("  %s\n", hint)
		}
		allGood = false
	}

	fmt.Printf("%s\n\n", style.Step("Checking inputs"))

	if info, err := os.Stat(cfg.ResumePath); err != nil || info.IsDir() {
		fail(cfg.ResumePath+" not found", "Set resume_path: atscv config set resume_path <file>")
	} else {
		fmt.Println(style.OK(cfg.ResumePath))
	}

	if text, err := docx.ReadText(cfg.ExamplePath); err != nil {
		// The crew still runs, the formatter just sees the read error
		fmt.Println(style.Warn(fmt.Sprintf("%s unreadable: %v", cfg.ExamplePath, err)))
	} else {
		fmt.Println(style.OK(fmt.Sprintf("%s (%d paragraphs)", cfg.ExamplePath, strings.Count(text, "\n")+1)))
	}

	if def, err := workflow.Load(cfg.CrewPath, cfg.Language); err != nil {
		fail("crew definition invalid: "+err.Error(), "Reset it: atscv init -r")
	} else {
		fmt.Println(style.OK(fmt.Sprintf("crew: %s + %d agents", def.Manager.Role, len(def.Agents))))
	}

	fmt.Printf("\n%s\n\n", style.Step("Checking model"))

	for _, model := range []string{cfg.Model, cfg.FallbackModel} {
		if model == "" {
			continue
		}
		if !ai.IsModelSupported(model) {
			fail(model+" is not a supported model", "Supported: "+strings.Join(ai.SupportedModels(), ", "))
			continue
		}
		env := ai.CredentialEnv(model)
		switch {
		case env == "":
			fmt.Println(style.OK(model + " (local CLI)"))
		case os.Getenv(env) == "":
			fail(fmt.Sprintf("%s needs %s", model, env), "Add it to your environment or .env")
		default:
			fmt.Println(style.OK(fmt.Sprintf("%s (%s set)", model, env)))
		}
	}

	if os.Getenv("SERPAPI_API_KEY") == "" {
		fmt.Println(style.Dim("○ SERPAPI_API_KEY not set (optional, enables web search)"))
	} else {
		fmt.Println(style.OK("SERPAPI_API_KEY set"))
	}

	if doctorProbe && allGood {
		client, err := ai.New(cmd.Context(), ai.Settings{
			Model:         cfg.Model,
			FallbackModel: cfg.FallbackModel,
			Temperature:   cfg.Temperature,
			Validate:      true,
		})
		if err != nil {
			fail("probe failed: "+err.Error(), "")
		} else {
			fmt.Println(style.OK("model responded: " + modelOf(client, cfg.Model)))
			client.Close()
		}
	}

	fmt.Println()
	if !allGood {
		return fmt.Errorf("setup issues detected")
	}
	fmt.Println(style.OK("Setup OK"))
	return nil
}
