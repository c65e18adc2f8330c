package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"timecard-report/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportRequest(format models.ExportFormat) models.ExportRequest {
	return models.ExportRequest{StartDate: "2024-03-01", EndDate: "2024-03-31", Format: format}
}

func TestTaskService_Lifecycle(t *testing.T) {
	service := NewTaskService()

	task, err := service.CreateTask("42", exportRequest(models.ExportFormatPDF))
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusPending, task.Status)
	assert.NotEmpty(t, task.ID)

	require.NoError(t, service.UpdateTaskStatus(task.ID, models.TaskStatusProcessing))
	got, err := service.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusProcessing, got.Status)

	require.NoError(t, service.SetTaskResult(task.ID, &models.ExportResult{Filename: "f.pdf"}))
	got, err = service.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, got.Status)
	assert.Equal(t, "f.pdf", got.Result.Filename)
}

func TestTaskService_SetTaskError(t *testing.T) {
	service := NewTaskService()
	task, _ := service.CreateTask("42", exportRequest(models.ExportFormatXLSX))

	require.NoError(t, service.SetTaskError(task.ID, errors.New("boom")))

	got, err := service.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusFailed, got.Status)
	assert.Equal(t, "boom", got.Error)
}

func TestTaskService_OwnerScoping(t *testing.T) {
	service := NewTaskService()
	task, _ := service.CreateTask("42", exportRequest(models.ExportFormatPDF))

	_, err := service.GetTaskForUser(task.ID, "42")
	assert.NoError(t, err)

	_, err = service.GetTaskForUser(task.ID, "43")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = service.GetTask("missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, service.UpdateTaskStatus("missing", models.TaskStatusProcessing), ErrTaskNotFound)
}

func TestTaskService_SnapshotsAreIndependent(t *testing.T) {
	service := NewTaskService()
	task, _ := service.CreateTask("42", exportRequest(models.ExportFormatPDF))

	snapshot, _ := service.GetTask(task.ID)
	snapshot.Status = models.TaskStatusFailed

	got, _ := service.GetTask(task.ID)
	assert.Equal(t, models.TaskStatusPending, got.Status)
}

func TestTaskService_PruneFinished(t *testing.T) {
	service := NewTaskService()
	done, _ := service.CreateTask("42", exportRequest(models.ExportFormatPDF))
	running, _ := service.CreateTask("42", exportRequest(models.ExportFormatPDF))
	require.NoError(t, service.SetTaskResult(done.ID, &models.ExportResult{}))
	require.NoError(t, service.UpdateTaskStatus(running.ID, models.TaskStatusProcessing))

	assert.Equal(t, 0, service.PruneFinished(time.Hour))
	assert.Equal(t, 1, service.PruneFinished(-time.Second))

	_, err := service.GetTask(done.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	_, err = service.GetTask(running.ID)
	assert.NoError(t, err)
}

func TestTaskService_ConcurrentAccess(t *testing.T) {
	service := NewTaskService()
	task, _ := service.CreateTask("42", exportRequest(models.ExportFormatPDF))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = service.UpdateTaskStatus(task.ID, models.TaskStatusProcessing)
		}()
		go func() {
			defer wg.Done()
			_, _ = service.GetTask(task.ID)
		}()
	}
	wg.Wait()
}
