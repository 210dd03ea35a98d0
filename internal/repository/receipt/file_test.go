package receipt

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SamukeloGift/Brewery/internal/domain/install"
)

// TestFileRepository_NotFound verifies Load returns ErrNotFound for a missing file.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.json"))

	rec, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, rec)
}

// TestFileRepository_SaveLoad_Roundtrip ensures Save followed by Load
// returns an equal receipt.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := ForRoot(root)

	plan := install.NewUserPlan("/home/sam")
	want := install.NewReceipt(plan, "/home/sam/.zshrc", "1a2b3c4",
		time.Now().UTC().Truncate(time.Second))

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)

	// The file sits at the conventional location inside the root.
	require.FileExists(t, filepath.Join(root, Filename))
}

// TestFileRepository_RejectsGarbage ensures corrupt receipts error out.
func TestFileRepository_RejectsGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), Filename)
	repo := NewFileRepository(path)

	require.NoError(t,
		os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}
