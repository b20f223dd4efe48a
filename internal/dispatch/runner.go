package dispatch

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Runner starts an external program and waits for it to exit.
type Runner interface {
	// Run executes name with args and returns its exit code. A non-nil
	// error means the program could not be started at all.
	Run(ctx context.Context, name string, args []string) (int, error)
}

// ExecRunner runs programs as child processes sharing the given streams.
type ExecRunner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// RunnerOption configures an ExecRunner.
type RunnerOption func(*ExecRunner)

// WithStdio replaces the streams handed to the child process.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) RunnerOption {
	return func(r *ExecRunner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// NewExecRunner creates a runner attached to the process's own terminal.
func NewExecRunner(opts ...RunnerOption) *ExecRunner {
	r := &ExecRunner{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run starts the program and blocks until it exits.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	// Command failed to start
	return -1, fmt.Errorf("failed to start %s: %w", name, err)
}

// Ensure ExecRunner implements the Runner interface.
var _ Runner = (*ExecRunner)(nil)
