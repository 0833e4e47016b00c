package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/agents"
	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/tools"

	"github.com/xrsl/atscv/pkg/log"
)

const DefaultMaxIterations = 8

// Crew runs a Definition as a manager agent delegating to worker agents.
type Crew struct {
	def     *Definition
	llm     llms.Model
	tools   map[string]tools.Tool
	maxIter int
}

type Option func(*Crew)

// WithMaxIterations bounds the think/act loop of every agent.
func WithMaxIterations(n int) Option {
	return func(c *Crew) {
		if n > 0 {
			c.maxIter = n
		}
	}
}

// NewCrew checks that every tool a role names is known. Known tools absent
// from toolset (search without an API key) are skipped at run time.
func NewCrew(def *Definition, llm llms.Model, toolset map[string]tools.Tool, opts ...Option) (*Crew, error) {
	for _, r := range append([]Role{def.Manager}, def.Agents...) {
		for _, name := range r.Tools {
			if !knownTool(name) {
				return nil, fmt.Errorf("role %q: unknown tool %q", r.Role, name)
			}
		}
	}

	c := &Crew{def: def, llm: llm, tools: toolset, maxIter: DefaultMaxIterations}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func knownTool(name string) bool {
	switch name {
	case ToolReadResume, ToolDocxReader, ToolFileWriter, ToolSearch, ToolReadWebsite:
		return true
	}
	return false
}

// Run hands the task to the manager and returns its final answer.
func (c *Crew) Run(ctx context.Context) (string, error) {
	// Workers that may delegate get delegates for those that may not,
	// so delegation never cycles.
	var leaf, all []tools.Tool
	for _, r := range c.def.Agents {
		if !r.AllowDelegation {
			d := delegate{role: r, exec: c.executor(r, c.toolsFor(r))}
			leaf = append(leaf, d)
			all = append(all, d)
		}
	}
	for _, r := range c.def.Agents {
		if r.AllowDelegation {
			ts := append(c.toolsFor(r), leaf...)
			all = append(all, delegate{role: r, exec: c.executor(r, ts)})
		}
	}

	manager := c.executor(c.def.Manager, append(c.toolsFor(c.def.Manager), all...))
	log.Info("starting crew", "manager", c.def.Manager.Role, "agents", len(c.def.Agents))

	out, err := chains.Run(ctx, manager, taskInput(c.def.Task))
	if err != nil {
		return "", fmt.Errorf("crew: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (c *Crew) toolsFor(r Role) []tools.Tool {
	var out []tools.Tool
	for _, name := range r.Tools {
		if t, ok := c.tools[name]; ok {
			out = append(out, t)
		} else {
			log.Debug("tool unavailable", "role", r.Role, "tool", name)
		}
	}
	return out
}

func (c *Crew) executor(r Role, ts []tools.Tool) *agents.Executor {
	handler := stepLogger{role: r.Role}
	agent := agents.NewOneShotAgent(c.llm, ts,
		agents.WithMaxIterations(c.maxIter),
		agents.WithPromptPrefix(promptPrefix(r)),
		agents.WithCallbacksHandler(handler),
	)
	return agents.NewExecutor(agent,
		agents.WithMaxIterations(c.maxIter),
		agents.WithCallbacksHandler(handler),
	)
}

// promptPrefix introduces the role ahead of the tool list. The result is
// itself a Go template filled in by the agent.
func promptPrefix(r Role) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are the %s.\nYour goal: %s\n\n", r.Role, strings.TrimSpace(r.Goal))
	if bs := strings.TrimSpace(r.Backstory); bs != "" {
		b.WriteString(escapeTemplate(bs))
		b.WriteString("\n\n")
	}
	b.WriteString("Answer the following questions as best you can. You have access to the following tools:\n\n{{.tool_descriptions}}")
	return b.String()
}

// escapeTemplate keeps literal braces in role text from being parsed as
// template actions.
func escapeTemplate(s string) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	return strings.ReplaceAll(s, "{{", `{{"{{"}}`)
}

func taskInput(t Task) string {
	input := strings.TrimSpace(t.Description)
	if exp := strings.TrimSpace(t.ExpectedOutput); exp != "" {
		input += "\n\nExpected output: " + exp
	}
	return input
}

// delegate exposes a worker executor as a tool of the manager.
type delegate struct {
	role Role
	exec *agents.Executor
}

func (d delegate) Name() string { return "Delegate to " + d.role.Role }

func (d delegate) Description() string {
	return fmt.Sprintf("Hands work to the %s, whose goal is: %s. "+
		"The input is the complete instructions, including all context they need; they cannot see your conversation.",
		d.role.Role, strings.TrimSpace(d.role.Goal))
}

func (d delegate) Call(ctx context.Context, input string) (string, error) {
	log.Info("delegating", "role", d.role.Role)
	out, err := chains.Run(ctx, d.exec, input)
	if err != nil {
		// An agent that loses its way is reported back to the manager;
		// anything else (LLM or context errors) aborts the run.
		if errors.Is(err, agents.ErrNotFinished) || errors.Is(err, agents.ErrUnableToParseOutput) {
			return fmt.Sprintf("%s could not complete the task: %v", d.role.Role, err), nil
		}
		return "", fmt.Errorf("%s: %w", d.role.Role, err)
	}
	return out, nil
}

// stepLogger reports agent steps at debug level.
type stepLogger struct {
	callbacks.SimpleHandler
	role string
}

func (l stepLogger) HandleAgentAction(_ context.Context, action schema.AgentAction) {
	log.Debug("agent action", "role", l.role, "tool", action.Tool, "input", action.ToolInput)
}

func (l stepLogger) HandleAgentFinish(_ context.Context, finish schema.AgentFinish) {
	log.Debug("agent finished", "role", l.role)
}
