package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"timecard-report/internal/models"
)

// StorageService handles local file storage for export artifacts
type StorageService struct {
	basePath string
	baseURL  string // optional public prefix, e.g. http://localhost:8085/exports
}

// NewStorageService creates a new local storage service
func NewStorageService(basePath, baseURL string) (*StorageService, error) {
	// Ensure base directory exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &StorageService{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// PutArtifact writes an export under <user>/<task>/<filename>. The file
// appears only once fully written.
func (s *StorageService) PutArtifact(ctx context.Context, userID, taskID string, artifact *models.Artifact) (string, error) {
	key := s.GetArtifactKey(userID, taskID, artifact.Filename)
	fullPath, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	_, writeErr := tmp.Write(artifact.Data)
	closeErr := tmp.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Rename(tmp.Name(), fullPath)
	}
	if writeErr != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %w", key, writeErr)
	}

	return key, nil
}

// GetFileURL returns the full URL for a given key
func (s *StorageService) GetFileURL(key string) string {
	if s.baseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", s.baseURL, key)
}

// GetArtifactKey generates the storage key for an export
func (s *StorageService) GetArtifactKey(userID, taskID, filename string) string {
	return artifactKey(userID, taskID, filename)
}

// GetObject opens a stored artifact for streaming
func (s *StorageService) GetObject(ctx context.Context, key string) (io.ReadCloser, string, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, "", err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("file not found: %s", key)
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	return file, contentTypeFor(key), nil
}

// resolve maps a key to a path and refuses keys that escape the base directory
func (s *StorageService) resolve(key string) (string, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.basePath, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return fullPath, nil
}

func artifactKey(userID, taskID, filename string) string {
	return fmt.Sprintf("%s/%s/%s", userID, taskID, filename)
}

// contentTypeFor determines content type from extension
func contentTypeFor(key string) string {
	switch filepath.Ext(key) {
	case ".xlsx":
		return xlsxContentType
	case ".pdf":
		return pdfContentType
	}
	return "application/octet-stream"
}
