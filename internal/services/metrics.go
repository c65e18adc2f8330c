package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"timecard-report/internal/models"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

const exportMeasurement = "timecard_export"

// MetricsRecorder receives one event per finished export
type MetricsRecorder interface {
	RecordExport(ctx context.Context, event ExportEvent) error
}

// ExportEvent describes a finished export for usage metrics
type ExportEvent struct {
	UserID   string
	Format   models.ExportFormat
	Status   models.TaskStatus
	Rows     int
	Minutes  int // period total in minutes
	Size     int
	Duration time.Duration
	At       time.Time
}

// MetricsService handles writing export metrics to InfluxDB
type MetricsService struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	org      string
	bucket   string
}

// NewMetricsService creates a new InfluxDB metrics service
func NewMetricsService(url, token, org, bucket string) (*MetricsService, error) {
	log.Printf("[INFLUX-INIT] Initializing InfluxDB 2.0 client: url=%s, org=%s, bucket=%s", url, org, bucket)

	client := influxdb2.NewClient(url, token)

	// Test connection health
	health, err := client.Health(context.Background())
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to InfluxDB: %w", err)
	}
	if health.Status != "pass" {
		log.Printf("[INFLUX-WARN] InfluxDB health check returned status: %s", health.Status)
	}

	return &MetricsService{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		org:      org,
		bucket:   bucket,
	}, nil
}

// ExportPoint converts an export event into an InfluxDB point
func ExportPoint(event ExportEvent) *write.Point {
	return influxdb2.NewPoint(exportMeasurement,
		map[string]string{
			"user_id": event.UserID,
			"format":  string(event.Format),
			"status":  string(event.Status),
		},
		map[string]interface{}{
			"rows":          event.Rows,
			"total_minutes": event.Minutes,
			"size_bytes":    event.Size,
			"duration_ms":   event.Duration.Milliseconds(),
		},
		event.At,
	)
}

// RecordExport writes one point for a finished export
func (s *MetricsService) RecordExport(ctx context.Context, event ExportEvent) error {
	if err := s.writeAPI.WritePoint(ctx, ExportPoint(event)); err != nil {
		return fmt.Errorf("failed to write to InfluxDB: %w", err)
	}
	return nil
}

// Close releases the InfluxDB client
func (s *MetricsService) Close() {
	s.client.Close()
}
