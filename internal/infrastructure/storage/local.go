// Package storage handles uploaded report images on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowedExtensions is the accepted image extension set (case-insensitive).
var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

var ErrDisallowedType = errors.New("file type not allowed")
var ErrFileNotFound = errors.New("file not found")

// LocalStore saves uploads under a single directory with generated filenames,
// so client-supplied names can neither collide nor traverse paths.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Allowed reports whether the original filename carries an accepted extension.
func Allowed(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	_, ok := allowedExtensions[ext]
	return ok
}

// Save streams src to a new file named <uuid>.<ext> and returns the stored
// filename. The destination is closed on every path; a failed copy removes
// the partial file.
func (s *LocalStore) Save(originalName string, src io.Reader) (string, error) {
	if !Allowed(originalName) {
		return "", ErrDisallowedType
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(originalName)), ".")
	name := fmt.Sprintf("%s.%s", uuid.NewString(), ext)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("close upload: %w", err)
	}

	return name, nil
}

// Path resolves a stored filename to its on-disk path. The name is reduced to
// its base component first, so "../" requests cannot escape the upload dir.
func (s *LocalStore) Path(filename string) (string, error) {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		return "", ErrFileNotFound
	}

	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", ErrFileNotFound
	}
	return path, nil
}
