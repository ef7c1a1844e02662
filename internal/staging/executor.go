package staging

import (
	"context"
	"fmt"
	"os/exec"
)

// Executor runs a shell command line and returns its combined stdout and
// stderr. A nonzero or abnormal exit is reported as an error carrying the
// captured output.
type Executor interface {
	Run(ctx context.Context, command string) (string, error)
}

// ShellExecutor runs commands through the system shell.
type ShellExecutor struct{}

// NewShellExecutor creates a shell command executor.
func NewShellExecutor() *ShellExecutor {
	return &ShellExecutor{}
}

// Run executes the command line with sh -c and captures combined output.
func (e *ShellExecutor) Run(ctx context.Context, command string) (string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("command [%s] failed: %w", command, err)
	}
	return string(out), nil
}
