package mocks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/felixgeelhaar/converge/internal/ports"
)

func TestCommandRunner_AddResult(t *testing.T) {
	runner := NewCommandRunner()
	runner.AddResult("dnf", []string{"--version"}, ports.CommandResult{
		ExitCode: 0,
		Stdout:   "4.18.0",
	})

	result, err := runner.Run(context.Background(), "dnf", "--version")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stdout != "4.18.0" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "4.18.0")
	}
}

func TestCommandRunner_AddLine(t *testing.T) {
	runner := NewCommandRunner()
	runner.AddLine("which  tool-x", ports.CommandResult{ExitCode: 1})

	result, err := runner.Run(context.Background(), "which", "tool-x")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", result.ExitCode)
	}
}

func TestCommandRunner_NotFound(t *testing.T) {
	runner := NewCommandRunner()

	_, err := runner.Run(context.Background(), "unknown", "command")
	if err == nil {
		t.Error("Run() should return error for unregistered command")
	}
}

func TestCommandRunner_Default(t *testing.T) {
	runner := NewCommandRunner()
	runner.SetDefault(ports.CommandResult{ExitCode: 0})

	result, err := runner.Run(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Success() {
		t.Error("default result should be returned")
	}
}

func TestCommandRunner_AddError(t *testing.T) {
	runner := NewCommandRunner()
	wantErr := errors.New("exec: not found")
	runner.AddError("missing", nil, wantErr)

	_, err := runner.Run(context.Background(), "missing")
	if !errors.Is(err, wantErr) {
		t.Errorf("Run() error = %v, want %v", err, wantErr)
	}
}

func TestCommandRunner_OnRun(t *testing.T) {
	runner := NewCommandRunner()
	runner.AddLine("sudo dnf install -y git", ports.CommandResult{ExitCode: 0})

	fired := false
	runner.OnRun("sudo dnf install -y git", func() { fired = true })

	_, _ = runner.Run(context.Background(), "sudo", "dnf", "install", "-y", "git")
	if !fired {
		t.Error("hook should fire after a successful run")
	}
}

func TestCommandRunner_RecordsCalls(t *testing.T) {
	runner := NewCommandRunner()
	runner.SetDefault(ports.CommandResult{ExitCode: 0})

	_, _ = runner.Run(context.Background(), "sudo", "dnf", "install", "-y", "git")
	_, _ = runner.Run(context.Background(), "sudo", "cp", "a", "b")

	lines := runner.Lines()
	if len(lines) != 2 {
		t.Fatalf("Lines() len = %d, want 2", len(lines))
	}
	if lines[0] != "sudo dnf install -y git" {
		t.Errorf("lines[0] = %q", lines[0])
	}
	if lines[1] != "sudo cp a b" {
		t.Errorf("lines[1] = %q", lines[1])
	}
}

func TestCommandRunner_Reset(t *testing.T) {
	runner := NewCommandRunner()
	runner.SetDefault(ports.CommandResult{ExitCode: 0})
	_, _ = runner.Run(context.Background(), "dnf", "--version")

	runner.Reset()

	if len(runner.Calls()) != 0 {
		t.Error("Reset() should clear calls")
	}
	if _, err := runner.Run(context.Background(), "dnf", "--version"); err == nil {
		t.Error("Reset() should clear the default result")
	}
}

func TestCommandRunner_Concurrent(t *testing.T) {
	runner := NewCommandRunner()
	runner.SetDefault(ports.CommandResult{ExitCode: 0})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = runner.Run(context.Background(), "true")
		}()
	}
	wg.Wait()

	if len(runner.Calls()) != 50 {
		t.Errorf("Calls() len = %d, want 50", len(runner.Calls()))
	}
}
