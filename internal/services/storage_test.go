package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"timecard-report/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageService_PutAndGet(t *testing.T) {
	storage, err := NewStorageService(t.TempDir(), "http://localhost:8085/files/")
	require.NoError(t, err)

	artifact := &models.Artifact{Filename: "relatorio-ponto-2024-03-01-2024-03-31.pdf", ContentType: pdfContentType, Data: []byte("%PDF-1.3 test")}
	key, err := storage.PutArtifact(context.Background(), "42", "task-1", artifact)
	require.NoError(t, err)
	assert.Equal(t, "42/task-1/relatorio-ponto-2024-03-01-2024-03-31.pdf", key)
	assert.Equal(t, "http://localhost:8085/files/"+key, storage.GetFileURL(key))

	body, contentType, err := storage.GetObject(context.Background(), key)
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, artifact.Data, data)
	assert.Equal(t, pdfContentType, contentType)
}

func TestStorageService_MissingAndEscapingKeys(t *testing.T) {
	storage, err := NewStorageService(t.TempDir(), "")
	require.NoError(t, err)

	_, _, err = storage.GetObject(context.Background(), "42/none/file.xlsx")
	assert.ErrorContains(t, err, "file not found")

	_, _, err = storage.GetObject(context.Background(), "../../etc/passwd")
	assert.ErrorContains(t, err, "invalid storage key")

	assert.Empty(t, storage.GetFileURL("42/x/y.pdf"))
}

func TestS3Service_URLs(t *testing.T) {
	aws := &S3Service{bucket: "exports", region: "sa-east-1"}
	assert.Equal(t, "https://exports.s3.sa-east-1.amazonaws.com/42/t/f.pdf", aws.GetFileURL("42/t/f.pdf"))

	minio := &S3Service{bucket: "exports", region: "us-east-1", endpoint: "http://minio:9000"}
	assert.Equal(t, "http://minio:9000/exports/42/t/f.pdf", minio.GetFileURL("42/t/f.pdf"))
	assert.Equal(t, "42/t/f.pdf", minio.GetArtifactKey("42", "t", "f.pdf"))
}

func TestStorageService_LeavesNoTempFiles(t *testing.T) {
	base := t.TempDir()
	storage, err := NewStorageService(base, "")
	require.NoError(t, err)

	artifact := &models.Artifact{Filename: "relatorio-ponto-2024-03-01-2024-03-31.xlsx", Data: []byte("xlsx")}
	_, err = storage.PutArtifact(context.Background(), "42", "task-1", artifact)
	require.NoError(t, err)
	// overwrite in place
	_, err = storage.PutArtifact(context.Background(), "42", "task-1", artifact)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(base, "42", "task-1"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, artifact.Filename, entries[0].Name())
}
