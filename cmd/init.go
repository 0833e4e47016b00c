package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xrsl/atscv/pkg/cache"
	"github.com/xrsl/atscv/pkg/config"
	"github.com/xrsl/atscv/pkg/style"
	"github.com/xrsl/atscv/pkg/utils"
	"github.com/xrsl/atscv/pkg/workflow"
)

var initReset bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize atscv in this directory",
	Long: `Initialize atscv configuration and the editable crew definition.

Creates:
  .atscv-config.yaml   Configuration file
  .atscv/crew.yaml     Agent roles and task (edit to customize)
  .atscv/.gitignore    Keeps the cache out of version control

Existing files are kept; use -r to reset crew.yaml to the defaults and
clear cached crew output.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initReset, "reset", "r", false, "Overwrite .atscv/crew.yaml with the defaults and clear the cache")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := workflow.Init(); err != nil {
		return fmt.Errorf("create %s: %w", workflow.Dir, err)
	}
	if initReset {
		if err := workflow.Reset(); err != nil {
			return fmt.Errorf("reset %s: %w", workflow.CrewPath, err)
		}
		fmt.Println(style.OK("Reset " + workflow.CrewPath))
		if err := cache.Clear(); err != nil {
			return fmt.Errorf("clear %s: %w", cache.Dir, err)
		}
		fmt.Println(style.OK("Cleared " + cache.Dir))
	}
	if err := utils.EnsureGitignore(workflow.Dir); err != nil {
		return err
	}

	if _, err := os.Stat(config.Path()); os.IsNotExist(err) {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("write %s: %w", config.Path(), err)
		}
		fmt.Println(style.OK("Created " + config.Path()))
	} else {
		fmt.Println(style.OK("Already initialized"))
		fmt.Printf("  Config: %s\n", style.Dim(config.Path()))
	}
	fmt.Printf("  Crew:   %s\n", style.Dim(workflow.CrewPath))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	for _, p := range []struct{ key, path string }{
		{"resume_path", cfg.ResumePath},
		{"example_path", cfg.ExamplePath},
	} {
		if !utils.FileExists(p.path) {
			fmt.Println(style.Warn(fmt.Sprintf("%s not found (%s)", p.path, p.key)))
		}
	}
	return nil
}
