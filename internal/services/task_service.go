package services

import (
	"fmt"
	"sync"
	"time"

	"timecard-report/internal/models"

	"github.com/google/uuid"
)

// TaskService manages async export tasks
type TaskService struct {
	tasks map[string]*models.Task
	mutex sync.RWMutex
}

// NewTaskService creates a new task service
func NewTaskService() *TaskService {
	return &TaskService{
		tasks: make(map[string]*models.Task),
	}
}

// CreateTask creates a new pending task owned by userID
func (s *TaskService) CreateTask(userID string, request models.ExportRequest) (*models.Task, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	taskID := uuid.New().String()
	now := time.Now()

	task := &models.Task{
		ID:        taskID,
		UserID:    userID,
		Status:    models.TaskStatusPending,
		Request:   request,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.tasks[taskID] = task
	copied := *task
	return &copied, nil
}

// GetTask returns a snapshot of a task. The copy is safe to read while
// the export goroutine keeps updating the original.
func (s *TaskService) GetTask(taskID string) (*models.Task, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	copied := *task
	if task.Result != nil {
		result := *task.Result
		copied.Result = &result
	}
	return &copied, nil
}

// GetTaskForUser returns a task only when userID owns it. Tasks of other
// users are reported as not found.
func (s *TaskService) GetTaskForUser(taskID, userID string) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	return task, nil
}

// UpdateTaskStatus updates the status of a task
func (s *TaskService) UpdateTaskStatus(taskID string, status models.TaskStatus) error {
	return s.update(taskID, func(task *models.Task) {
		task.Status = status
	})
}

// SetTaskError marks a task as failed with an error message
func (s *TaskService) SetTaskError(taskID string, err error) error {
	return s.update(taskID, func(task *models.Task) {
		task.Status = models.TaskStatusFailed
		task.Error = err.Error()
	})
}

// SetTaskResult stores the completed export in a task
func (s *TaskService) SetTaskResult(taskID string, result *models.ExportResult) error {
	return s.update(taskID, func(task *models.Task) {
		task.Status = models.TaskStatusCompleted
		task.Result = result
	})
}

func (s *TaskService) update(taskID string, apply func(*models.Task)) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	apply(task)
	task.UpdatedAt = time.Now()
	return nil
}

// DeleteTask removes a task from memory
func (s *TaskService) DeleteTask(taskID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.tasks, taskID)
}

// PruneFinished drops terminal tasks last updated before the cutoff and
// returns how many were removed
func (s *TaskService) PruneFinished(olderThan time.Duration) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for id, task := range s.tasks {
		if task.Status.Terminal() && task.UpdatedAt.Before(cutoff) {
			delete(s.tasks, id)
			removed++
		}
	}
	return removed
}
