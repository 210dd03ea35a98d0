package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/SamukeloGift/Brewery/internal/domain/install"
)

// Filename is the receipt file kept inside the install root.
const Filename = "bootstrap-receipt.json"

// fileMode keeps the receipt readable by every user of a shared install.
const fileMode = os.FileMode(0o644)

// Repository defines persistence operations for the install receipt.
type Repository interface {
	Load(ctx context.Context) (*install.Receipt, error)
	Save(ctx context.Context, r *install.Receipt) error
}

// ErrNotFound is returned when no receipt has been written yet.
var ErrNotFound = errors.New("receipt not found")

// FileRepository persists the receipt as JSON inside the install root.
type FileRepository struct {
	// path is the filesystem location of the receipt file.
	path string
	// mu protects concurrent access to the receipt file.
	mu sync.Mutex
}

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// ForRoot creates a repository for the conventional location inside the root.
func ForRoot(installRoot string) *FileRepository {
	return NewFileRepository(filepath.Join(installRoot, Filename))
}

// Load reads the receipt from disk.
func (r *FileRepository) Load(_ context.Context) (*install.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read receipt: %w", err)
	}

	var rec install.Receipt
	if err = json.Unmarshal(contents, &rec); err != nil {
		return nil, fmt.Errorf("decode receipt: %w", err)
	}

	return &rec, nil
}

// Save writes the receipt to disk as indented JSON.
func (r *FileRepository) Save(_ context.Context, rec *install.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode receipt: %w", err)
	}

	if err = os.WriteFile(r.path, append(data, '\n'), fileMode); err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}

	return nil
}
