// Package ports defines interfaces for the host collaborators used by converge:
// process execution, the filesystem, HTTP downloads, repository lookup and logging.
package ports

import (
	"context"
)

// CommandResult represents the result of executing a command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// Output returns stdout for a successful command and stderr otherwise.
func (r CommandResult) Output() string {
	if r.Success() {
		return r.Stdout
	}
	return r.Stderr
}

// CommandCall records a command invocation.
type CommandCall struct {
	Command string
	Args    []string
}

// Line returns the invocation joined back into a single command line.
func (c CommandCall) Line() string {
	line := c.Command
	for _, arg := range c.Args {
		line += " " + arg
	}
	return line
}

// CommandRunner executes commands without a shell.
// A nonzero exit is reported through CommandResult, not as an error.
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)
}
