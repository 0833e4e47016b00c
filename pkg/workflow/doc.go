// Package workflow runs the multi-agent crew that turns a plain-text resume
// into section-structured text.
//
// # Embedded Defaults
//
// Roles and the task are embedded at compile time from defaults/crew.yaml:
//   - agents  - worker roles (Resume Organizer, Resume Formatter) and their tools
//   - manager - the role that delegates to the workers
//   - task    - what the manager is asked to produce
//
// Text fields are Go templates receiving {{.Language}}.
//
// # Runtime Customization
//
// 'atscv init' writes the defaults to .atscv/crew.yaml, which takes precedence
// over the embedded copy once present. Run 'atscv init -r' to reset it.
//
// # Execution
//
// Each worker becomes a langchaingo one-shot agent. The manager is a one-shot
// agent whose only tools are "Delegate to <role>" wrappers around the worker
// executors. Crew.Run hands the task to the manager and returns its final
// answer.
package workflow
