package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	log "github.com/chmouel/cgc/internal/log"
)

// Runner executes git with args inside dir and returns its standard output.
// Tests substitute canned implementations.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// RunnerFunc adapts a plain function to Runner.
type RunnerFunc func(ctx context.Context, dir string, args ...string) (string, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, dir string, args ...string) (string, error) {
	return f(ctx, dir, args...)
}

// ExecRunner runs the git binary.
type ExecRunner struct {
	// Binary defaults to "git". Only git executables are accepted.
	Binary string
}

// NewExecRunner returns an ExecRunner for the given binary, "git" when empty.
func NewExecRunner(binary string) *ExecRunner {
	if strings.TrimSpace(binary) == "" {
		binary = "git"
	}
	return &ExecRunner{Binary: binary}
}

func prepareAllowedCommand(ctx context.Context, binary string, args []string) (*exec.Cmd, error) {
	if binary == "" {
		binary = "git"
	}
	base := binary
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	switch strings.TrimSuffix(base, ".exe") {
	case "git":
		// #nosec G204 -- arguments for git come from internal logic and are not shell interpolated
		return exec.CommandContext(ctx, binary, args...), nil
	default:
		return nil, fmt.Errorf("unsupported command %q", binary)
	}
}

// Run implements Runner. A non-zero exit becomes an *Error whose Output holds
// stderr, falling back to stdout.
func (e *ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	command := "git " + strings.Join(args, " ")
	log.Printf("run: %s (cwd=%s)", command, dir)

	cmd, err := prepareAllowedCommand(ctx, e.Binary, args)
	if err != nil {
		return "", err
	}
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = strings.TrimSpace(stdout.String())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Printf("error: %s (exit %d)", command, exitErr.ExitCode())
		} else {
			log.Printf("error: %s: %v", command, err)
		}
		return stdout.String(), &Error{Op: opName(args), Cmd: command, Output: output, Err: err}
	}

	log.Printf("ok: %s", command)
	return stdout.String(), nil
}

func opName(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return "git"
}
