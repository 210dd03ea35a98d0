package bootstrap

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SamukeloGift/Brewery/internal/domain/install"
	"github.com/SamukeloGift/Brewery/internal/fsops"
	"github.com/SamukeloGift/Brewery/internal/ui"
)

// recordingExecutor captures the filesystem calls a guard issues.
type recordingExecutor struct {
	removed    []string
	removedAll []string
	removeErr  error
}

func (e *recordingExecutor) MkdirAll(_ context.Context, _ string, _ os.FileMode) error {
	return nil
}

func (e *recordingExecutor) PlaceFile(_ context.Context, _ string, _ io.Reader, _ os.FileMode) error {
	return nil
}

func (e *recordingExecutor) Remove(_ context.Context, path string) error {
	e.removed = append(e.removed, path)

	return e.removeErr
}

func (e *recordingExecutor) RemoveAll(_ context.Context, path string) error {
	e.removedAll = append(e.removedAll, path)

	return nil
}

func (e *recordingExecutor) OwnTree(_ context.Context, _, _ string) error {
	return nil
}

// TestRollbackGuardFire checks that firing removes the wrapper first, then
// the whole root, and lands in the rolled-back state.
func TestRollbackGuardFire(t *testing.T) {
	t.Parallel()

	plan := install.NewUserPlan("/home/u")
	executor := new(recordingExecutor)
	guard := newRollbackGuard(plan, executor)
	printer := ui.NewPrinter(new(strings.Builder))

	guard.fire(context.Background(), printer)

	require.Equal(t, []string{plan.WrapperPath()}, executor.removed)
	require.Equal(t, []string{plan.InstallRoot}, executor.removedAll)
	require.Equal(t, install.StateRolledBack, guard.state)
}

// TestRollbackGuardFiresOnce ensures a second fire is a no-op.
func TestRollbackGuardFiresOnce(t *testing.T) {
	t.Parallel()

	executor := new(recordingExecutor)
	guard := newRollbackGuard(install.NewUserPlan("/home/u"), executor)
	printer := ui.NewPrinter(new(strings.Builder))

	guard.fire(context.Background(), printer)
	guard.fire(context.Background(), printer)

	require.Len(t, executor.removed, 1)
	require.Len(t, executor.removedAll, 1)
}

// TestRollbackGuardDisarmedBySucceed ensures a successful run keeps its files.
func TestRollbackGuardDisarmedBySucceed(t *testing.T) {
	t.Parallel()

	executor := new(recordingExecutor)
	guard := newRollbackGuard(install.NewUserPlan("/home/u"), executor)

	require.NoError(t, guard.succeed())
	require.Equal(t, install.StateSucceeded, guard.state)

	guard.fire(context.Background(), ui.NewPrinter(new(strings.Builder)))

	require.Empty(t, executor.removed)
	require.Empty(t, executor.removedAll)
}

// TestRollbackGuardSucceedAfterFire rejects success on an already-failed run.
func TestRollbackGuardSucceedAfterFire(t *testing.T) {
	t.Parallel()

	guard := newRollbackGuard(install.NewUserPlan("/home/u"), new(recordingExecutor))
	guard.fire(context.Background(), ui.NewPrinter(new(strings.Builder)))

	require.Error(t, guard.succeed())
}

// TestRollbackGuardContinuesPastErrors ensures a failed wrapper removal does
// not stop the root from being removed.
func TestRollbackGuardContinuesPastErrors(t *testing.T) {
	t.Parallel()

	plan := install.NewUserPlan("/home/u")
	executor := &recordingExecutor{removeErr: errors.New("permission denied")}
	guard := newRollbackGuard(plan, executor)

	guard.fire(context.Background(), ui.NewPrinter(new(strings.Builder)))

	require.Equal(t, []string{plan.InstallRoot}, executor.removedAll)
	require.Equal(t, install.StateRolledBack, guard.state)
}

// TestRollbackGuardSurvivesCancellation removes files even when the run was
// stopped by an interrupt that already cancelled the context.
func TestRollbackGuardSurvivesCancellation(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	plan := install.NewUserPlan(home)
	require.NoError(t, os.MkdirAll(plan.StorageDir(), 0o755))
	require.NoError(t, os.MkdirAll(plan.BinDir, 0o755))
	require.NoError(t, os.WriteFile(plan.WrapperPath(), []byte("#!/bin/sh\n"), 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	guard := newRollbackGuard(plan, fsops.NewNative())
	guard.fire(ctx, ui.NewPrinter(new(strings.Builder)))

	_, err := os.Stat(plan.InstallRoot)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(plan.BinDir, install.WrapperName))
	require.True(t, os.IsNotExist(err))
}
