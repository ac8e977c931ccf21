package backend

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/yuma/pkg/errors"
	"github.com/arthur-debert/yuma/pkg/logging"
)

// Runner invokes package-manager executables
type Runner interface {
	// Output runs the command and returns its standard output
	Output(name string, args ...string) ([]byte, error)

	// Run runs the command attached to the caller's terminal so the
	// manager's own prompts reach the user
	Run(name string, args ...string) error
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner wired to the process's standard streams
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (r *ExecRunner) Output(name string, args ...string) ([]byte, error) {
	logging.LogCommand(name, args)

	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return out, commandError(err, name, args, stderr.String())
	}
	return out, nil
}

func (r *ExecRunner) Run(name string, args ...string) error {
	logging.LogCommand(name, args)

	cmd := exec.Command(name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return commandError(err, name, args, "")
	}
	return nil
}

// commandError maps spawn failures and non-zero exits to IO errors
func commandError(err error, name string, args []string, stderr string) error {
	command := strings.TrimSpace(name + " " + strings.Join(args, " "))

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return errors.Wrapf(err, errors.ErrIO, "%s exited with status %d", command, exitErr.ExitCode()).
			WithDetail("command", command).
			WithDetail("exit_code", exitErr.ExitCode()).
			WithDetail("stderr", strings.TrimSpace(stderr))
	}
	return errors.Wrapf(err, errors.ErrIO, "failed to run %s", command).
		WithDetail("command", command)
}

// ExitCode extracts the exit status from an error produced by a Runner, or -1
func ExitCode(err error) int {
	details := errors.GetErrorDetails(err)
	if code, ok := details["exit_code"].(int); ok {
		return code
	}
	return -1
}

// parseLines decodes newline-delimited package names
func parseLines(out []byte, command string) ([]string, error) {
	if !utf8.Valid(out) {
		return nil, errors.Newf(errors.ErrIO, "output of %s is not valid UTF-8", command).
			WithDetail("command", command)
	}

	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names, nil
}
