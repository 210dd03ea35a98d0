package fsops

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/SamukeloGift/Brewery/internal/logger"
)

// sudoCommand is the elevation helper every privileged operation goes through.
const sudoCommand = "sudo"

// RunFunc executes a command and returns its combined output.
// It exists so tests can record the exact elevation calls.
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Elevated applies changes through sudo so system-wide locations
// can be modified from an unprivileged process.
type Elevated struct {
	run RunFunc
}

// NewElevated returns an executor running its operations through sudo.
// A nil run function uses the real command runner.
func NewElevated(run RunFunc) *Elevated {
	if run == nil {
		run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		}
	}

	return &Elevated{run: run}
}

// Preauthorize refreshes the sudo credential cache up front so later
// operations don't stop for a password mid-run. sudo prompts on the
// controlling terminal, not stdin, so capturing output is safe here.
func (e *Elevated) Preauthorize(ctx context.Context) error {
	return e.sudo(ctx, "-v")
}

// MkdirAll creates the directory and any missing parents.
func (e *Elevated) MkdirAll(ctx context.Context, path string, perm os.FileMode) error {
	if err := e.sudo(ctx, "mkdir", "-p", path); err != nil {
		return err
	}

	return e.sudo(ctx, "chmod", fmt.Sprintf("%o", perm), path)
}

// PlaceFile stages contents in a temporary file owned by the current user,
// then moves it into place and fixes the permissions through sudo.
func (e *Elevated) PlaceFile(
	ctx context.Context,
	path string,
	contents io.Reader,
	perm os.FileMode,
) error {
	staged, err := os.CreateTemp("", "br-bootstrap-*")
	if err != nil {
		return fmt.Errorf("stage file: %w", err)
	}

	stagedName := staged.Name()

	defer func() {
		// Gone already if the move succeeded.
		_ = os.Remove(stagedName)
	}()

	if _, err = io.Copy(staged, contents); err != nil {
		_ = staged.Close()

		return fmt.Errorf("stage file: %w", err)
	}

	if err = staged.Close(); err != nil {
		return fmt.Errorf("stage file: %w", err)
	}

	if err = e.sudo(ctx, "mv", stagedName, path); err != nil {
		return err
	}

	return e.sudo(ctx, "chmod", fmt.Sprintf("%o", perm), path)
}

// Remove deletes a single file, tolerating an already-missing one.
func (e *Elevated) Remove(ctx context.Context, path string) error {
	return e.sudo(ctx, "rm", "-f", path)
}

// RemoveAll deletes a directory tree, tolerating an already-missing one.
func (e *Elevated) RemoveAll(ctx context.Context, path string) error {
	return e.sudo(ctx, "rm", "-rf", path)
}

// OwnTree recursively transfers ownership of the tree to the owner spec,
// e.g. "sam" or "sam:admin".
func (e *Elevated) OwnTree(ctx context.Context, path, owner string) error {
	return e.sudo(ctx, "chown", "-R", owner, path)
}

// sudo runs a single elevated command and wraps failures with its output.
func (e *Elevated) sudo(ctx context.Context, args ...string) error {
	logger.Debugf(ctx, "sudo %s", strings.Join(args, " "))

	output, err := e.run(ctx, sudoCommand, args...)
	if err != nil {
		return fmt.Errorf("sudo %s: %w: %s",
			strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}

	return nil
}
