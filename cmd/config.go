package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xrsl/atscv/pkg/config"
	"github.com/xrsl/atscv/pkg/style"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage atscv configuration",
	Long: `Read and write settings in .atscv-config.yaml.

  atscv config list
  atscv config get <key>
  atscv config set <key> <value>

Environment variables ATSCV_<KEY> override the file; OPENAI_MODEL_NAME
also sets model.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: `Set a configuration value.

Keys:
  model           LLM model (gpt-4, claude-sonnet-4, gemini-2.5-flash, ...)
  fallback_model  Used when the model is rejected by the provider
  temperature     Sampling temperature
  validate_model  Probe the model before running (true/false)
  resume_path     Plain-text resume
  example_path    Example .docx the formatter follows
  output          Output .docx path
  language        Output language
  crew_path       Crew definition file
  max_iterations  Agent step limit
  cache           Reuse crew output for unchanged inputs (true/false)

Examples:
  atscv config set model claude-sonnet-4
  atscv config set language German`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return err
		}
		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := config.Get(args[0])
		if err != nil {
			return err
		}
		if value == "" {
			fmt.Println("(not set)")
		} else {
			fmt.Println(value)
		}
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all config values",
	RunE: func(cmd *cobra.Command, args []string) error {
		values := config.All()

		fmt.Printf("\n%s\n", style.Bold(style.Accent("atscv config")))
		fmt.Printf("%s\n\n", style.Dim(config.Path()))
		for _, key := range config.Keys() {
			printConfigRow(key, values[key])
		}
		fmt.Println()
		return nil
	},
}

func printConfigRow(key, value string) {
	if value == "" {
		fmt.Printf("  %-15s %s\n", key, style.Dim("(not set)"))
		return
	}
	fmt.Printf("  %-15s %s\n", key, value)
}

// completeConfigKeys completes the key argument of get and set
func completeConfigKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return config.Keys(), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	configSetCmd.ValidArgsFunction = completeConfigKeys
	configGetCmd.ValidArgsFunction = completeConfigKeys
	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd)
	rootCmd.AddCommand(configCmd)
}
