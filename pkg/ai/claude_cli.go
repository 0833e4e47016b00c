package ai

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ClaudeCLI implements Client using the claude CLI
type ClaudeCLI struct {
	model string // e.g., "sonnet-4-5", "opus-4"
}

// NewClaudeCLI creates a Claude CLI client
func NewClaudeCLI(model string) *ClaudeCLI {
	return &ClaudeCLI{model: model}
}

// IsClaudeCLIAvailable checks if claude CLI is installed
func IsClaudeCLIAvailable() bool {
	_, err := exec.LookPath("claude")
	return err == nil
}

func (c *ClaudeCLI) GenerateContent(ctx context.Context, prompt string) (string, error) {
	args := []string{"-p", prompt, "--output-format", "text"}
	if c.model != "" {
		args = append(args, "--model", "claude-"+c.model)
	}
	return runCLI(ctx, "claude", args)
}

func (c *ClaudeCLI) Close() {
	// No cleanup needed
}

// runCLI runs a headless agent CLI and returns stdout; stderr is attached
// to the error so CLI-side failures are readable.
func runCLI(ctx context.Context, name string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(output), nil
}
