// Package style provides consistent terminal styling for the atscv CLI.
package style

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
)

// NoColor disables styling (non-TTY, NO_COLOR or ATSCV_NO_COLOR)
var NoColor = false

func init() {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("ATSCV_NO_COLOR") != "" {
		NoColor = true
	}
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice == 0 {
		NoColor = true
	}
}

func render(s lipgloss.Style, text string) string {
	if NoColor {
		return text
	}
	return s.Render(text)
}

// OK prefixes msg with a green check mark
func OK(msg string) string {
	return render(okStyle, "✓") + " " + msg
}

// Warn prefixes msg with a yellow warning sign
func Warn(msg string) string {
	return render(warnStyle, "⚠") + " " + msg
}

// Fail prefixes msg with a red cross
func Fail(msg string) string {
	return render(failStyle, "✗") + " " + msg
}

// Step prefixes msg with a blue arrow
func Step(msg string) string {
	return render(commandStyle, "→") + " " + msg
}

func Bold(text string) string {
	return render(boldStyle, text)
}

func Dim(text string) string {
	return render(dimStyle, text)
}

func Accent(text string) string {
	return render(commandStyle, text)
}

// SetupHelp installs Typer-style help templates on cmd
func SetupHelp(cmd *cobra.Command) {
	cobra.AddTemplateFunc("styleHeading", func(s string) string { return render(headingStyle, s) })
	cobra.AddTemplateFunc("styleCommand", Accent)
	cobra.AddTemplateFunc("rpadStyled", rpadStyled)

	cmd.SetUsageTemplate(usageTemplate)
	cmd.SetHelpTemplate(helpTemplate)
}

// rpadStyled pads on the raw width so escape codes don't skew columns
func rpadStyled(s string, padding int) string {
	styled := Accent(s)
	if n := padding - len(s); n > 0 {
		return styled + strings.Repeat(" ", n)
	}
	return styled
}

const usageTemplate = `{{ styleHeading "Usage:" }}
  {{ styleCommand .UseLine }}{{if .HasAvailableSubCommands}} [command]{{end}}
{{if .HasAvailableSubCommands}}
{{ styleHeading "Commands:" }}{{range .Commands}}{{if .IsAvailableCommand}}
  {{rpadStyled .Name .NamePadding }}  {{.Short}}{{end}}{{end}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`

const helpTemplate = `{{if .Long}}{{.Long}}

{{else if .Short}}{{.Short}}

{{end}}{{ styleHeading "Usage:" }}
  {{ styleCommand .UseLine }}{{if .HasAvailableSubCommands}} [command]{{end}}
{{if .HasExample}}
{{ styleHeading "Examples:" }}
{{.Example}}
{{end}}{{if .HasAvailableSubCommands}}
{{ styleHeading "Commands:" }}{{range .Commands}}{{if .IsAvailableCommand}}
  {{rpadStyled .Name .NamePadding }}  {{.Short}}{{end}}{{end}}
{{end}}{{if .HasAvailableLocalFlags}}
{{ styleHeading "Options:" }}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}{{if .HasAvailableInheritedFlags}}
{{ styleHeading "Global Options:" }}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}`
