package proofs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"bakery-dispatch/internal/apperr"
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// LocalStore keeps delivery proof images in a directory.
type LocalStore struct {
	dir     string
	newName func() string
}

// NewLocalStore creates the directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		newName: func() string { return uuid.NewString() },
	}, nil
}

// Save writes the image under a fresh name that keeps the original extension and returns that name.
func (s *LocalStore) Save(r io.Reader, original string) (string, error) {
	ext := strings.ToLower(filepath.Ext(original))
	if !allowedExt[ext] {
		return "", fmt.Errorf("%w: unsupported image type %q", apperr.ErrValidation, ext)
	}

	name := s.newName() + ext
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create proof file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write proof file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close proof file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored proof. Missing files are ignored.
func (s *LocalStore) Remove(name string) error {
	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("%w: bad proof name %q", apperr.ErrValidation, name)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove proof file: %w", err)
	}
	return nil
}
