package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/xrsl/atscv/pkg/log"
	"github.com/xrsl/atscv/pkg/signal"
	"github.com/xrsl/atscv/pkg/style"
)

var (
	quiet   bool
	verbose bool
	logJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "atscv",
	Short: "Turn a plain-text resume into an ATS-friendly Word document",
	Long: `atscv reorganizes a plain-text resume with a crew of AI agents, rewrites
each section for applicant tracking systems and saves the result as a .docx.

Run it with no arguments in a directory containing resume.txt and example.docx.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetVerbose(verbose)
		log.SetQuiet(quiet)
		if logJSON {
			log.SetJSON(true)
		}
	},
	RunE: runGenerate,
}

func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, cancel := signal.WithInterrupt(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, style.Fail(err.Error()))
		os.Exit(1)
	}
}

func init() {
	// Setup Typer-style help formatting
	style.SetupHelp(rootCmd)

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log agent steps and debug details")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON")

	rootCmd.Flags().StringP("output", "o", "", "Output .docx path (default from config)")
	rootCmd.Flags().StringP("model", "m", "", "LLM model (default from config)")
	rootCmd.Flags().Bool("cache", false, "Reuse the crew's output when inputs are unchanged")
}
