// Package cleaner runs the cleanup action against matched project
// directories.
package cleaner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/taigrr/cleanall/internal/types"
)

// Cleaner performs the cleanup of one project directory. Implementations
// return whatever output they produced along with any failure.
type Cleaner interface {
	Clean(ctx context.Context, dir string) ([]byte, error)
}

// DefaultCommand is the cleanup command for Cargo projects.
var DefaultCommand = []string{"cargo", "clean"}

// Command runs an external program with the project directory as its working
// directory. Output is captured but not interpreted.
type Command struct {
	Program string
	Args    []string
	// Env is appended to the current environment.
	Env map[string]string
}

// NewCommand builds a Command from an argv slice.
func NewCommand(argv []string) (*Command, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, errors.New("cleanup command is empty")
	}
	return &Command{Program: argv[0], Args: argv[1:]}, nil
}

// String returns the command line.
func (c *Command) String() string {
	return strings.TrimSpace(c.Program + " " + strings.Join(c.Args, " "))
}

// Clean implements Cleaner.
func (c *Command) Clean(ctx context.Context, dir string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Program, c.Args...)
	cmd.Dir = dir

	if len(c.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range c.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output.Bytes(), &ExitError{Command: c.String(), Code: exitErr.ExitCode(), Output: lastLine(output.Bytes())}
		}
		return output.Bytes(), fmt.Errorf("failed to run %q: %w", c.String(), err)
	}

	return output.Bytes(), nil
}

// ExitError reports a cleanup command that terminated unsuccessfully.
type ExitError struct {
	Command string
	Code    int
	Output  string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%q exited with status %d", e.Command, e.Code)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func lastLine(output []byte) string {
	trimmed := strings.TrimSpace(string(output))
	if i := strings.LastIndexByte(trimmed, '\n'); i != -1 {
		trimmed = trimmed[i+1:]
	}
	return strings.TrimSpace(trimmed)
}

// DryRun reports success without touching anything.
type DryRun struct{}

// Clean implements Cleaner.
func (DryRun) Clean(context.Context, string) ([]byte, error) {
	return nil, nil
}

// Func adapts a function to the Cleaner interface.
type Func func(ctx context.Context, dir string) ([]byte, error)

// Clean implements Cleaner.
func (f Func) Clean(ctx context.Context, dir string) ([]byte, error) {
	return f(ctx, dir)
}

// Run makes exactly one cleanup attempt on dir and classifies the result.
// Failures, including a panicking Cleaner, become an ActionError.
func Run(ctx context.Context, dir string, c Cleaner) (outcome types.ActionOutcome) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			outcome = types.ActionError(dir, nil, fmt.Errorf("cleaner panicked: %v", r), time.Since(start))
		}
	}()

	output, err := c.Clean(ctx, dir)
	if err != nil {
		return types.ActionError(dir, output, err, time.Since(start))
	}
	return types.Cleaned(dir, output, time.Since(start))
}
