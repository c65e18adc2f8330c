package models

import "time"

// TaskStatus represents the status of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Terminal reports whether no further transition is expected
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// ExportFormat selects the report formatter
type ExportFormat string

const (
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatPDF  ExportFormat = "pdf"
)

// ExportResult describes a stored export artifact
type ExportResult struct {
	Filename   string `json:"filename"`
	StorageKey string `json:"storageKey"`
	URL        string `json:"url"`
	Rows       int    `json:"rows"`
	Total      string `json:"total"`
	Size       int    `json:"size"`
}

// Task represents an async export task
type Task struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"` // owner session
	Status    TaskStatus    `json:"status"`
	Request   ExportRequest `json:"request"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Error     string        `json:"error,omitempty"`
	Result    *ExportResult `json:"result,omitempty"`
}
