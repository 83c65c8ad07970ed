// Package mocks provides test doubles for testing.
package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/felixgeelhaar/converge/internal/ports"
)

// CommandRunner is a thread-safe test double for ports.CommandRunner.
type CommandRunner struct {
	mu         sync.RWMutex
	results    map[string]ports.CommandResult
	errors     map[string]error
	calls      []ports.CommandCall
	fallback   *ports.CommandResult
	onRunHooks map[string]func()
}

// NewCommandRunner creates a new CommandRunner mock.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{
		results:    make(map[string]ports.CommandResult),
		errors:     make(map[string]error),
		calls:      make([]ports.CommandCall, 0),
		onRunHooks: make(map[string]func()),
	}
}

// AddResult registers an expected command and its result.
func (m *CommandRunner) AddResult(command string, args []string, result ports.CommandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[buildKey(command, args)] = result
}

// AddLine registers a result for a whitespace-separated command line.
func (m *CommandRunner) AddLine(line string, result ports.CommandResult) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}
	m.AddResult(words[0], words[1:], result)
}

// AddError registers an expected command that should return an error.
func (m *CommandRunner) AddError(command string, args []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[buildKey(command, args)] = err
}

// SetDefault sets the result returned for commands without a registered result.
func (m *CommandRunner) SetDefault(result ports.CommandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = &result
}

// OnRun registers a hook invoked after the given command line runs successfully.
// Tests use it to simulate side effects such as a package becoming installed.
func (m *CommandRunner) OnRun(line string, hook func()) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRunHooks[buildKey(words[0], words[1:])] = hook
}

// Run executes a mock command.
func (m *CommandRunner) Run(_ context.Context, command string, args ...string) (ports.CommandResult, error) {
	key := buildKey(command, args)

	m.mu.Lock()
	m.calls = append(m.calls, ports.CommandCall{
		Command: command,
		Args:    append([]string(nil), args...),
	})
	hook := m.onRunHooks[key]
	m.mu.Unlock()

	result, err := m.lookup(key, command, args)
	if err == nil && result.Success() && hook != nil {
		hook()
	}
	return result, err
}

func (m *CommandRunner) lookup(key, command string, args []string) (ports.CommandResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Check for registered error first
	if err, ok := m.errors[key]; ok {
		return ports.CommandResult{}, err
	}
	if result, ok := m.results[key]; ok {
		return result, nil
	}
	if m.fallback != nil {
		return *m.fallback, nil
	}
	return ports.CommandResult{}, fmt.Errorf("no mock result for command: %s %v", command, args)
}

// Calls returns all recorded command invocations.
func (m *CommandRunner) Calls() []ports.CommandCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]ports.CommandCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Lines returns all recorded invocations as command lines.
func (m *CommandRunner) Lines() []string {
	calls := m.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.Line()
	}
	return lines
}

// Reset clears all registered results, errors, and recorded calls.
func (m *CommandRunner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = make(map[string]ports.CommandResult)
	m.errors = make(map[string]error)
	m.calls = make([]ports.CommandCall, 0)
	m.fallback = nil
	m.onRunHooks = make(map[string]func())
}

// buildKey creates a unique key for a command and its arguments.
func buildKey(command string, args []string) string {
	return command + ":" + strings.Join(args, ":")
}

// Ensure CommandRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*CommandRunner)(nil)
