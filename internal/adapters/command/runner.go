// Package command runs host commands and provides helpers for whitespace
// separated command lines.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/felixgeelhaar/converge/internal/ports"
)

// RealRunner executes commands on the host without a shell.
type RealRunner struct{}

// NewRealRunner creates a new RealRunner.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// Run executes command and blocks until it exits. A nonzero exit is returned
// in the result; an error means the process never ran, and wraps
// exec.ErrNotFound when the executable is missing.
func (r *RealRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := ports.CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		return result, fmt.Errorf("start %s: %w", command, err)
	}

	ports.LoggerOrDiscard(ctx).Debug(ctx, "Command finished",
		ports.F("command", ports.CommandCall{Command: command, Args: args}.Line()),
		ports.F("exit_code", result.ExitCode))
	return result, nil
}

var _ ports.CommandRunner = (*RealRunner)(nil)
