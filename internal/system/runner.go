package system

import (
	"bytes"
	"context"
	goerrors "errors"
	"io/fs"
	"os"
	"os/exec"
	"syscall"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
)

// osRunner implements Runner using real OS processes.
type osRunner struct{}

func (r *osRunner) Run(ctx context.Context, argv ...string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.ValidationError("empty command")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, errors.Interrupted(argv, err)
	}

	logging.Debug("running command", "argv", argv)

	cmd := exec.Command(argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		return res, classify(argv, res.Stderr, err)
	}
	return res, nil
}

func (r *osRunner) RunInteractive(ctx context.Context, argv ...string) error {
	if len(argv) == 0 {
		return errors.ValidationError("empty command")
	}
	if err := ctx.Err(); err != nil {
		return errors.Interrupted(argv, err)
	}

	logging.Debug("running interactive command", "argv", argv)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return classify(argv, "", err)
	}
	return nil
}

func (r *osRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r *osRunner) Spawn(argv ...string) error {
	if len(argv) == 0 {
		return errors.ValidationError("empty command")
	}

	logging.Debug("spawning detached process", "argv", argv)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return classify(argv, "", err)
	}
	return cmd.Process.Release()
}

// classify maps an exec error onto the typed error kinds.
func classify(argv []string, stderr string, err error) error {
	if goerrors.Is(err, exec.ErrNotFound) || goerrors.Is(err, fs.ErrNotExist) {
		return errors.CommandNotFound(argv, err)
	}
	return errors.CommandFailed(argv, stderr, err)
}
