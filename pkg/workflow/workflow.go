package workflow

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/crew.yaml
var DefaultCrew string

const (
	Dir      = ".atscv"
	CrewPath = ".atscv/crew.yaml"
)

// Workflow produces the aggregate resume text.
type Workflow interface {
	Run(ctx context.Context) (string, error)
}

// Role describes one agent.
type Role struct {
	Role            string   `yaml:"role"`
	Goal            string   `yaml:"goal"`
	Backstory       string   `yaml:"backstory"`
	Tools           []string `yaml:"tools,omitempty"`
	AllowDelegation bool     `yaml:"allow_delegation"`
}

type Task struct {
	Description    string `yaml:"description"`
	ExpectedOutput string `yaml:"expected_output"`
}

// Definition is the parsed crew file.
type Definition struct {
	Agents  []Role `yaml:"agents"`
	Manager Role   `yaml:"manager"`
	Task    Task   `yaml:"task"`
}

// Init creates .atscv/ with the default crew file if it doesn't exist.
func Init() error {
	if err := os.MkdirAll(Dir, 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(CrewPath); os.IsNotExist(err) {
		return os.WriteFile(CrewPath, []byte(DefaultCrew), 0o644)
	}
	return nil
}

// Reset overwrites the crew file with the defaults.
func Reset() error {
	if err := os.MkdirAll(filepath.Dir(CrewPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(CrewPath, []byte(DefaultCrew), 0o644)
}

// Load reads the crew file at path, or the embedded defaults when path
// doesn't exist, and renders its templates for language.
func Load(path, language string) (*Definition, error) {
	data := []byte(DefaultCrew)
	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case err == nil:
			data = content
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}
	def, err := Parse(data, language)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sourceName(path, data), err)
	}
	return def, nil
}

func sourceName(path string, data []byte) string {
	if path == "" || string(data) == DefaultCrew {
		return "default crew"
	}
	return path
}

// Parse decodes a crew definition and renders {{.Language}} into every
// text field.
func Parse(data []byte, language string) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse crew: %w", err)
	}
	if len(def.Agents) == 0 {
		return nil, errors.New("crew has no agents")
	}
	if def.Manager.Role == "" {
		return nil, errors.New("crew has no manager")
	}
	if def.Task.Description == "" {
		return nil, errors.New("crew has no task description")
	}

	vars := struct{ Language string }{Language: language}
	fields := []*string{
		&def.Manager.Goal, &def.Manager.Backstory,
		&def.Task.Description, &def.Task.ExpectedOutput,
	}
	for i := range def.Agents {
		if def.Agents[i].Role == "" {
			return nil, fmt.Errorf("agent %d has no role", i+1)
		}
		fields = append(fields, &def.Agents[i].Goal, &def.Agents[i].Backstory)
	}
	for _, f := range fields {
		out, err := render(*f, vars)
		if err != nil {
			return nil, err
		}
		*f = out
	}
	return &def, nil
}

func render(text string, vars any) (string, error) {
	tmpl, err := template.New("crew").Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("template: %w", err)
	}
	return buf.String(), nil
}
