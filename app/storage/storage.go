package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore persists uploaded files and hands back the public path they
// will be served under.
type FileStore interface {
	Save(file io.Reader, originalName string) (string, error)
}

// DiskStore writes uploads into a local directory that the router serves
// at /uploads/.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save stores the file under a fresh name, keeping only the original
// extension, and returns its /uploads/ path.
func (s *DiskStore) Save(file io.Reader, originalName string) (string, error) {
	name := uuid.NewString() + filepath.Ext(originalName)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return "/uploads/" + name, nil
}
