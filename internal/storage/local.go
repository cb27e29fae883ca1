package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage stores uploaded files on the local filesystem under
// uploadDir/<category>/.
type LocalStorage struct {
	uploadDir string
}

func NewLocalStorage(uploadDir string) (*LocalStorage, error) {
	for _, category := range []string{CategoryProfiles, CategoryDocuments, CategoryPayments, CategoryProofs} {
		if err := os.MkdirAll(filepath.Join(uploadDir, category), 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", category, err)
		}
	}
	return &LocalStorage{uploadDir: uploadDir}, nil
}

func (s *LocalStorage) Save(ctx context.Context, category, filename string, reader io.Reader) (string, error) {
	key := filepath.ToSlash(filepath.Join(category, uuid.New().String()+strings.ToLower(filepath.Ext(filename))))

	fullPath := filepath.Join(s.uploadDir, filepath.FromSlash(key))
	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return key, nil
}

func (s *LocalStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, int64, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return false, 0, err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// resolve maps a key to a filesystem path, refusing keys that escape the
// upload directory.
func (s *LocalStorage) resolve(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.uploadDir, cleaned), nil
}
