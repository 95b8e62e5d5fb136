package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AzureBlobStorage implements Storage on Azure Blob Storage
type AzureBlobStorage struct {
	client        *azblob.Client
	containerName string
	logger        *zap.Logger
}

// NewAzureBlobStorage creates an Azure Blob Storage instance and ensures its
// container exists
func NewAzureBlobStorage(connectionString, containerName string, logger *zap.Logger) (*AzureBlobStorage, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	_, err = client.CreateContainer(context.Background(), containerName, nil)
	if err != nil && !strings.Contains(err.Error(), "ContainerAlreadyExists") {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	logger.Info("azure blob storage initialized",
		zap.String("container", containerName),
	)

	return &AzureBlobStorage{
		client:        client,
		containerName: containerName,
		logger:        logger,
	}, nil
}

// Upload uploads a blob under prefix with a generated unique name
func (s *AzureBlobStorage) Upload(ctx context.Context, prefix string, filename string, contentType string, data io.Reader) (string, int64, error) {
	fileID := uuid.New().String()
	ext := filepath.Ext(filename)
	blobName := path.Join(prefix, fileID+ext)

	uploadOptions := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}

	reader := &countingReader{r: data}

	_, err := s.client.UploadStream(ctx, s.containerName, blobName, reader, uploadOptions)
	if err != nil {
		return "", 0, fmt.Errorf("failed to upload blob: %w", err)
	}

	s.logger.Info("photo uploaded",
		zap.String("blobName", blobName),
		zap.String("container", s.containerName),
		zap.String("contentType", contentType),
		zap.Int64("size", reader.count),
	)

	return blobName, reader.count, nil
}

// countingReader wraps an io.Reader and counts the number of bytes read
type countingReader struct {
	r     io.Reader
	count int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.count += int64(n)
	return n, err
}

// Download streams a blob
func (s *AzureBlobStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	resp, err := s.client.DownloadStream(ctx, s.containerName, storagePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download blob: %w", err)
	}

	return resp.Body, nil
}

// Delete removes a blob, treating a missing blob as already deleted
func (s *AzureBlobStorage) Delete(ctx context.Context, storagePath string) error {
	_, err := s.client.DeleteBlob(ctx, s.containerName, storagePath, nil)
	if err != nil {
		if strings.Contains(err.Error(), "BlobNotFound") {
			s.logger.Debug("blob already deleted",
				zap.String("blobName", storagePath),
			)
			return nil
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	return nil
}
