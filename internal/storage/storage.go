package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tecnimaq/maintenance-api/internal/config"
	"go.uber.org/zap"
)

// Storage holds the machine photos attached to request line-items. Upload
// places the blob under the given prefix ("solicitudes/<id>") and returns the
// locator persisted on the item; Delete on a missing locator is a no-op so
// retries and double-deletes stay safe.
type Storage interface {
	Upload(ctx context.Context, prefix string, filename string, contentType string, data io.Reader) (string, int64, error)
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)
	Delete(ctx context.Context, storagePath string) error
}

// NewStorage creates a storage instance based on configuration. Local mode
// writes to the filesystem, cloud/azure mode to Azure Blob Storage.
func NewStorage(cfg *config.StorageConfig, logger *zap.Logger) (Storage, error) {
	switch cfg.Mode {
	case "local":
		return NewLocalStorage(cfg.LocalBasePath)
	case "cloud", "azure":
		if cfg.CloudConnectionString == "" {
			return nil, fmt.Errorf("cloud connection string required for azure storage")
		}
		return NewAzureBlobStorage(cfg.CloudConnectionString, cfg.CloudContainer, logger)
	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.Mode)
	}
}

// LocalStorage implements Storage on the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a local storage instance rooted at basePath
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// Upload writes a file under prefix with a generated unique name
func (s *LocalStorage) Upload(ctx context.Context, prefix string, filename string, contentType string, data io.Reader) (string, int64, error) {
	fileID := uuid.New().String()
	ext := filepath.Ext(filename)
	storagePath := path.Join(prefix, fileID+ext)
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(storagePath))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, data)
	if err != nil {
		os.Remove(fullPath)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return storagePath, size, nil
}

// Download opens a stored file for reading
func (s *LocalStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(storagePath))

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", storagePath)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes a stored file, treating a missing file as already deleted
func (s *LocalStorage) Delete(ctx context.Context, storagePath string) error {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(storagePath))

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
