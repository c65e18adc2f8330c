package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"timecard-report/internal/database"
	"timecard-report/internal/models"
	"timecard-report/internal/timecard"
	"timecard-report/internal/utils"
)

const exportTimeout = 2 * time.Minute

// ExportHistory persists finished exports per employee
type ExportHistory interface {
	RecordExport(ctx context.Context, record *models.ExportRecord) error
	ListExports(ctx context.Context, userID string, limit int) ([]models.ExportRecord, error)
	FindExportByContentKey(ctx context.Context, userID, contentKey string) (*models.ExportRecord, error)
}

// ExportService runs exports in the background: fetch, build, render,
// store, then record history and metrics. History and metrics are
// optional and may be nil.
type ExportService struct {
	reports *ReportService
	tasks   *TaskService
	storage StorageInterface
	history ExportHistory
	metrics MetricsRecorder
	timeout time.Duration
}

// NewExportService creates a new export service
func NewExportService(reports *ReportService, tasks *TaskService, storage StorageInterface, history ExportHistory, metrics MetricsRecorder) *ExportService {
	return &ExportService{
		reports: reports,
		tasks:   tasks,
		storage: storage,
		history: history,
		metrics: metrics,
		timeout: exportTimeout,
	}
}

// Start validates the request, creates a task owned by the session and
// processes it asynchronously
func (s *ExportService) Start(session *models.Session, req models.ExportRequest) (*models.Task, error) {
	if _, err := s.reports.Formatter(req.Format); err != nil {
		return nil, err
	}
	if err := utils.ValidatePeriod(req.StartDate, req.EndDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}

	task, err := s.tasks.CreateTask(session.UserID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	// The request context ends with the response; the export outlives it
	owner := *session
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.process(ctx, &owner, task.ID, req)
	}()

	return task, nil
}

func (s *ExportService) process(ctx context.Context, session *models.Session, taskID string, req models.ExportRequest) {
	started := time.Now()
	_ = s.tasks.UpdateTaskStatus(taskID, models.TaskStatusProcessing)
	log.Printf("[EXPORT] Task %s: %s export for user %s, %s..%s", taskID, req.Format, session.UserID, req.StartDate, req.EndDate)

	result, report, err := s.produce(ctx, session, taskID, req)
	if err != nil {
		log.Printf("[EXPORT] Task %s failed: %v", taskID, err)
		_ = s.tasks.SetTaskError(taskID, err)
		s.recordMetric(ctx, session, req.Format, models.TaskStatusFailed, nil, nil, started)
		return
	}

	_ = s.tasks.SetTaskResult(taskID, result)
	log.Printf("[EXPORT] Task %s completed: %s (%d bytes)", taskID, result.StorageKey, result.Size)
	s.recordMetric(ctx, session, req.Format, models.TaskStatusCompleted, report, result, started)
}

func (s *ExportService) produce(ctx context.Context, session *models.Session, taskID string, req models.ExportRequest) (*models.ExportResult, *models.PeriodReport, error) {
	formatter, err := s.reports.Formatter(req.Format)
	if err != nil {
		return nil, nil, err
	}

	events, err := s.reports.FetchEntries(ctx, session, req.StartDate, req.EndDate)
	if err != nil {
		return nil, nil, err
	}
	report := timecard.Generate(events)
	meta := ExportMetaFor(session, req.StartDate, req.EndDate)
	contentKey := database.GenerateContentKey(session.UserID, meta.EmployeeName, req.StartDate, req.EndDate, req.Format, events)

	result := s.reuse(ctx, session, contentKey)
	if result == nil {
		artifact, err := RenderArtifact(formatter, &report, meta)
		if err != nil {
			return nil, nil, err
		}
		key, err := s.storage.PutArtifact(ctx, session.UserID, taskID, artifact)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to store export: %w", err)
		}
		result = &models.ExportResult{
			Filename:   artifact.Filename,
			StorageKey: key,
			URL:        s.storage.GetFileURL(key),
			Rows:       len(report.Rows),
			Total:      report.Total.Formatted,
			Size:       len(artifact.Data),
		}
	}

	if s.history != nil {
		record := &models.ExportRecord{
			TaskID:     taskID,
			UserID:     session.UserID,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			Format:     req.Format,
			Filename:   result.Filename,
			StorageKey: result.StorageKey,
			URL:        result.URL,
			Rows:       result.Rows,
			Total:      result.Total,
			Size:       result.Size,
			ContentKey: contentKey,
			CreatedAt:  time.Now(),
		}
		if err := s.history.RecordExport(ctx, record); err != nil {
			log.Printf("[EXPORT] WARNING: failed to record export history for task %s: %v", taskID, err)
		}
	}

	return result, &report, nil
}

// reuse returns the stored result of an identical earlier export, if any
func (s *ExportService) reuse(ctx context.Context, session *models.Session, contentKey string) *models.ExportResult {
	if s.history == nil {
		return nil
	}
	previous, err := s.history.FindExportByContentKey(ctx, session.UserID, contentKey)
	if err != nil {
		log.Printf("[EXPORT] WARNING: export history lookup failed: %v", err)
		return nil
	}
	if previous == nil {
		return nil
	}
	log.Printf("[EXPORT] Reusing artifact %s from task %s", previous.StorageKey, previous.TaskID)
	return &models.ExportResult{
		Filename:   previous.Filename,
		StorageKey: previous.StorageKey,
		URL:        previous.URL,
		Rows:       previous.Rows,
		Total:      previous.Total,
		Size:       previous.Size,
	}
}

func (s *ExportService) recordMetric(ctx context.Context, session *models.Session, format models.ExportFormat, status models.TaskStatus, report *models.PeriodReport, result *models.ExportResult, started time.Time) {
	if s.metrics == nil {
		return
	}
	event := ExportEvent{
		UserID:   session.UserID,
		Format:   format,
		Status:   status,
		Duration: time.Since(started),
		At:       time.Now(),
	}
	if report != nil {
		event.Rows = len(report.Rows)
		event.Minutes = report.Total.Hours*60 + report.Total.Minutes
	}
	if result != nil {
		event.Size = result.Size
	}
	if err := s.metrics.RecordExport(ctx, event); err != nil {
		log.Printf("[EXPORT] WARNING: failed to record export metric: %v", err)
	}
}

// Status returns the session's view of a task
func (s *ExportService) Status(session *models.Session, taskID string) (*models.Task, error) {
	return s.tasks.GetTaskForUser(taskID, session.UserID)
}

// Open streams a completed export from storage
func (s *ExportService) Open(ctx context.Context, session *models.Session, taskID string) (io.ReadCloser, string, string, error) {
	task, err := s.tasks.GetTaskForUser(taskID, session.UserID)
	if err != nil {
		return nil, "", "", err
	}
	if task.Status != models.TaskStatusCompleted || task.Result == nil {
		return nil, "", "", fmt.Errorf("%w: task %s is %s", ErrTaskNotReady, taskID, task.Status)
	}

	body, contentType, err := s.storage.GetObject(ctx, task.Result.StorageKey)
	if err != nil {
		return nil, "", "", err
	}
	return body, contentType, task.Result.Filename, nil
}

// History lists the session's previous exports. Without a history store
// the list is empty.
func (s *ExportService) History(ctx context.Context, session *models.Session, limit int) ([]models.ExportRecord, error) {
	if s.history == nil {
		return []models.ExportRecord{}, nil
	}
	return s.history.ListExports(ctx, session.UserID, limit)
}
