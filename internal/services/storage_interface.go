package services

import (
	"context"
	"io"

	"timecard-report/internal/models"
)

// StorageInterface defines the interface for export artifact storage.
// This allows switching between S3 and local storage implementations.
type StorageInterface interface {
	// PutArtifact stores a rendered export and returns its storage key
	PutArtifact(ctx context.Context, userID, taskID string, artifact *models.Artifact) (string, error)

	// GetFileURL returns the full URL for a given key
	GetFileURL(key string) string

	// GetArtifactKey generates the storage key for an export
	GetArtifactKey(userID, taskID, filename string) string

	// GetObject retrieves an object from storage
	GetObject(ctx context.Context, key string) (io.ReadCloser, string, error)
}
