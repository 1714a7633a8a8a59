package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// DiskImageStore writes uploaded images under a local directory that the
// server exposes at /uploads.
type DiskImageStore struct {
	dir string
}

func NewDiskImageStore(dir string) *DiskImageStore {
	return &DiskImageStore{dir: dir}
}

// Save validates the extension against the allow-list, writes the file under
// a generated name and returns the public path.
func (s *DiskImageStore) Save(filename string, file io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", domain.ErrUnsupportedImageType
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return "/uploads/" + name, nil
}
