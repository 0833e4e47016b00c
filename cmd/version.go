package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X github.com/xrsl/atscv/cmd.Version=..."
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print atscv version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("atscv %s\n", getVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// getVersion falls back to the module version when installed with go install
func getVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
