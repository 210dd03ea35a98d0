package fsops

import (
	"context"
	"io"
	"os"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/SamukeloGift/Brewery/internal/domain/install"
	"github.com/SamukeloGift/Brewery/internal/logger"
)

// DirMode is the permission for directories created by the bootstrap.
const DirMode = os.FileMode(0o755)

// Executor applies filesystem changes on behalf of a single installation.
type Executor interface {
	// MkdirAll creates the directory and any missing parents.
	MkdirAll(ctx context.Context, path string, perm os.FileMode) error
	// PlaceFile atomically writes the full contents to path with the
	// given permissions. The destination never holds a partial file.
	PlaceFile(ctx context.Context, path string, contents io.Reader, perm os.FileMode) error
	// Remove deletes a single file. A missing file is not an error.
	Remove(ctx context.Context, path string) error
	// RemoveAll deletes a directory tree. A missing tree is not an error.
	RemoveAll(ctx context.Context, path string) error
	// OwnTree transfers ownership of the tree to the given owner spec.
	OwnTree(ctx context.Context, path, owner string) error
}

// ForPlan returns the executor matching the plan's elevation requirement.
//
//nolint:ireturn,nolintlint // Callers program against the Executor seam.
func ForPlan(plan install.Plan) Executor {
	if plan.RequiresElevation {
		return NewElevated(nil)
	}

	return NewNative()
}

// Native applies changes directly with the process's own privileges.
type Native struct{}

// NewNative returns an executor working with the process's own privileges.
func NewNative() *Native {
	return &Native{}
}

// MkdirAll creates the directory and any missing parents.
func (n *Native) MkdirAll(ctx context.Context, path string, perm os.FileMode) error {
	logger.Debugf(ctx, "mkdir -p %s", path)

	return os.MkdirAll(path, perm)
}

// PlaceFile streams contents into a temporary file next to the destination
// and renames it into place, leaving no partial file or residue behind.
func (n *Native) PlaceFile(
	ctx context.Context,
	path string,
	contents io.Reader,
	perm os.FileMode,
) error {
	logger.Debugf(ctx, "place file %s", path)

	// The applier renames over an existing target, so make sure one exists.
	if _, err := os.Stat(path); err != nil && os.IsNotExist(err) {
		var empty *os.File

		empty, err = os.Create(path)
		if err != nil {
			return err
		}

		if err = empty.Close(); err != nil {
			return err
		}
	}

	options := goupdate.Options{
		TargetPath: path,
		TargetMode: perm,
	}

	if err := goupdate.Apply(contents, options); err != nil {
		return err
	}

	oldFileName := path + ".old"
	if _, err := os.Stat(oldFileName); err == nil {
		_ = os.Remove(oldFileName)
	}

	return nil
}

// Remove deletes a single file, tolerating an already-missing one.
func (n *Native) Remove(ctx context.Context, path string) error {
	logger.Debugf(ctx, "rm %s", path)

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// RemoveAll deletes a directory tree, tolerating an already-missing one.
func (n *Native) RemoveAll(ctx context.Context, path string) error {
	logger.Debugf(ctx, "rm -rf %s", path)

	return os.RemoveAll(path)
}

// OwnTree is a no-op: files created with the process's own privileges
// already belong to the invoking user.
func (n *Native) OwnTree(ctx context.Context, path, owner string) error {
	logger.Debugf(ctx, "ownership of %s already correct for %s", path, owner)

	return nil
}
