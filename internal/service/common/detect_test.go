//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SamukeloGift/Brewery/internal/domain/install"
	"github.com/SamukeloGift/Brewery/internal/repository/receipt"
)

// TestDetectAmongPrefersReceipt returns the plan recorded in the receipt.
func TestDetectAmongPrefersReceipt(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	plan := install.NewUserPlan(home)
	require.NoError(t, os.MkdirAll(plan.InstallRoot, 0o755))

	rec := install.NewReceipt(plan, filepath.Join(home, ".zshrc"), "abc1234", time.Now().UTC())
	require.NoError(t, receipt.ForRoot(plan.InstallRoot).Save(context.Background(), rec))

	got, gotRec, err := detectAmong(context.Background(), []install.Plan{plan})
	require.NoError(t, err)
	require.Equal(t, plan, got)
	require.NotNil(t, gotRec)
	require.Equal(t, "abc1234", gotRec.Version)
}

// TestDetectAmongFallsBackToBareTree recognizes a root directory without
// a receipt.
func TestDetectAmongFallsBackToBareTree(t *testing.T) {
	t.Parallel()

	plan := install.NewUserPlan(t.TempDir())
	require.NoError(t, os.MkdirAll(plan.StorageDir(), 0o755))

	got, gotRec, err := detectAmong(context.Background(), []install.Plan{plan})
	require.NoError(t, err)
	require.Equal(t, plan, got)
	require.Nil(t, gotRec)
}

// TestDetectAmongIgnoresUnusableReceipt falls back to the bare tree when
// the receipt names an unknown mode.
func TestDetectAmongIgnoresUnusableReceipt(t *testing.T) {
	t.Parallel()

	plan := install.NewUserPlan(t.TempDir())
	require.NoError(t, os.MkdirAll(plan.InstallRoot, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(plan.InstallRoot, receipt.Filename),
		[]byte(`{"mode":"sideways"}`), 0o644))

	got, gotRec, err := detectAmong(context.Background(), []install.Plan{plan})
	require.NoError(t, err)
	require.Equal(t, plan, got)
	require.Nil(t, gotRec)
}

// TestDetectAmongNothingFound reports the sentinel when no candidate exists.
func TestDetectAmongNothingFound(t *testing.T) {
	t.Parallel()

	plan := install.NewUserPlan(filepath.Join(t.TempDir(), "nowhere"))

	_, _, err := detectAmong(context.Background(), []install.Plan{plan})
	require.ErrorIs(t, err, ErrNoInstallation)
}

// TestDetectExistingFindsUserRoot checks the per-user layout first.
func TestDetectExistingFindsUserRoot(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	plan := install.NewUserPlan(home)
	require.NoError(t, os.MkdirAll(plan.StorageDir(), 0o755))

	got, _, err := DetectExisting(context.Background(), home)
	require.NoError(t, err)
	require.Equal(t, plan.InstallRoot, got.InstallRoot)
	require.Equal(t, install.ModeUser, got.Mode)
}
