package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/AndreyAkinshin/regexoracle/internal/ctxlog"
	"github.com/AndreyAkinshin/regexoracle/internal/errors"
	"github.com/AndreyAkinshin/regexoracle/internal/oracle"
)

// CommandRunner abstracts command execution so loaders can be tested
// without the evaluator installed.
type CommandRunner interface {
	Output(ctx context.Context, dir string, argv []string) (stdout, stderr []byte, err error)
}

// OSRunner executes commands on the host.
type OSRunner struct{}

// Output runs argv in dir and captures stdout and stderr separately.
func (OSRunner) Output(ctx context.Context, dir string, argv []string) ([]byte, []byte, error) {
	if len(argv) == 0 {
		return nil, nil, fmt.Errorf("empty command")
	}
	// #nosec G204 -- argv comes from the user's own configuration.
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Exec renders the test document by running the configuration evaluator
// once and reading its standard output.
type Exec struct {
	Command []string // Defaults to DefaultCommand()
	Dir     string   // Working directory; empty means the current one
	Runner  CommandRunner
}

// NewExec creates an Exec source running command on the host.
func NewExec(command []string, dir string) *Exec {
	return &Exec{Command: command, Dir: dir, Runner: OSRunner{}}
}

// Load implements oracle.Loader.
func (s *Exec) Load(ctx context.Context) (oracle.Document, error) {
	argv := s.Command
	if len(argv) == 0 {
		argv = DefaultCommand()
	}
	runner := s.Runner
	if runner == nil {
		runner = OSRunner{}
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Running evaluator", "command", strings.Join(argv, " "), "dir", s.Dir)

	stdout, stderr, err := runner.Output(ctx, s.Dir, argv)
	if err != nil {
		cause := err
		if ctxErr := ctx.Err(); ctxErr != nil {
			// The kill signal hides why the evaluator stopped.
			cause = ctxErr
		}
		detail := cause.Error()
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			detail = fmt.Sprintf("%s: %s", detail, msg)
		}
		return oracle.Document{}, errors.Process(argv[0], cause, detail)
	}
	if len(stderr) > 0 {
		logger.Debug("Evaluator wrote to stderr", "stderr", strings.TrimSpace(string(stderr)))
	}

	return Decode(stdout)
}
