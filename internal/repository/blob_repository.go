// Package repository provides the disk-backed blob store that holds
// uploaded and produced files for the lifetime of a session.
package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"pdf-toolkit-server/internal/domain"

	"github.com/google/uuid"
)

// FileBlobRepository stores blobs as flat files under a configured directory.
// Stored names are prefixed with a UUID so repeated uploads of the same
// filename never collide.
type FileBlobRepository struct {
	dir    string
	logger domain.Logger
}

// NewFileBlobRepository creates the upload directory if needed.
func NewFileBlobRepository(dir string, logger domain.Logger) (*FileBlobRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &FileBlobRepository{dir: dir, logger: logger}, nil
}

// Save writes data under a fresh stored name derived from name.
func (r *FileBlobRepository) Save(name string, data []byte) (string, error) {
	stored := r.storedName(name)
	if err := os.WriteFile(filepath.Join(r.dir, stored), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store %s: %w", name, err)
	}
	return stored, nil
}

// Allocate reserves a stored name and returns it with its absolute path.
// Nothing is written; the caller is expected to create the file.
func (r *FileBlobRepository) Allocate(name string) (string, string) {
	stored := r.storedName(name)
	return stored, filepath.Join(r.dir, stored)
}

// Path returns the filesystem path for a stored name.
func (r *FileBlobRepository) Path(stored string) string {
	return filepath.Join(r.dir, stored)
}

// Read returns the full contents of a stored blob.
func (r *FileBlobRepository) Read(stored string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, stored))
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", stored, err)
	}
	return data, nil
}

// Size returns the byte size of a stored blob.
func (r *FileBlobRepository) Size(stored string) (int64, error) {
	fi, err := os.Stat(filepath.Join(r.dir, stored))
	if err != nil {
		return 0, fmt.Errorf("failed to stat blob %s: %w", stored, err)
	}
	return fi.Size(), nil
}

// Remove deletes a stored blob. Removing a blob that is already gone is not
// an error.
func (r *FileBlobRepository) Remove(stored string) error {
	err := os.Remove(filepath.Join(r.dir, stored))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove blob %s: %w", stored, err)
	}
	return nil
}

// storedName builds a collision-free flat filename from an upload name.
// Any path components are stripped.
func (r *FileBlobRepository) storedName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "document"
	}
	base = strings.ReplaceAll(base, string(filepath.Separator), "_")
	return uuid.NewString() + "_" + base
}
