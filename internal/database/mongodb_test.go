package database

import (
	"testing"

	"timecard-report/internal/config"
	"timecard-report/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildURI(t *testing.T) {
	t.Run("explicit uri is masked for logs", func(t *testing.T) {
		uri, logURI := BuildURI(config.MongoDBConfig{URI: "mongodb://app:hunter2@db:27017/timecard"})
		assert.Equal(t, "mongodb://app:hunter2@db:27017/timecard", uri)
		assert.NotContains(t, logURI, "hunter2")
	})

	t.Run("components with credentials", func(t *testing.T) {
		uri, logURI := BuildURI(config.MongoDBConfig{
			Username: "app", Password: "p@ss", Host: "db", Port: "27017", Database: "timecard",
		})
		assert.Equal(t, "mongodb://app:p%40ss@db:27017/timecard?authSource=admin", uri)
		assert.Equal(t, "mongodb://app:***@db:27017/timecard?authSource=admin", logURI)
	})

	t.Run("components without credentials", func(t *testing.T) {
		uri, logURI := BuildURI(config.MongoDBConfig{Host: "db", Port: "27017", Database: "timecard"})
		assert.Equal(t, "mongodb://db:27017/timecard", uri)
		assert.Equal(t, uri, logURI)
	})
}

func TestGenerateContentKey(t *testing.T) {
	events := []models.PunchEvent{{ID: "1", Date: "2024-03-04", Time: "08:00:00.000"}}

	base := GenerateContentKey("7", "Maria", "2024-03-01", "2024-03-31", models.ExportFormatPDF, events)
	assert.Len(t, base, 64)
	assert.Equal(t, base, GenerateContentKey("7", "Maria", "2024-03-01", "2024-03-31", models.ExportFormatPDF, events))

	assert.NotEqual(t, base, GenerateContentKey("8", "Maria", "2024-03-01", "2024-03-31", models.ExportFormatPDF, events))
	assert.NotEqual(t, base, GenerateContentKey("7", "Maria", "2024-03-01", "2024-03-31", models.ExportFormatXLSX, events))
	assert.NotEqual(t, base, GenerateContentKey("7", "Maria", "2024-03-01", "2024-03-31", models.ExportFormatPDF, nil))
}
