package models

// LoginRequest represents the credentials posted to /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse mirrors the upstream authentication answer
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SessionResponse is returned to the client after a successful login
type SessionResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// PeriodQuery binds the start_date/end_date query parameters
type PeriodQuery struct {
	StartDate string `form:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `form:"end_date" binding:"required"`   // YYYY-MM-DD
}

// PunchRequest is the body of POST /api/timecard/punch
type PunchRequest struct {
	Location  PunchLocation `json:"location"`
	Timestamp string        `json:"timestamp,omitempty"` // optional client-side local timestamp
}

// ReportResponse is returned by GET /api/timecard/report
type ReportResponse struct {
	Searched   bool         `json:"searched"`
	EntryCount int          `json:"entryCount"`
	Report     PeriodReport `json:"report"`
	Error      string       `json:"error,omitempty"` // set when the time-entry service failed
}

// ExportRequest represents the request to generate an export asynchronously
type ExportRequest struct {
	StartDate string       `json:"startDate" binding:"required"` // YYYY-MM-DD
	EndDate   string       `json:"endDate" binding:"required"`   // YYYY-MM-DD
	Format    ExportFormat `json:"format" binding:"required"`    // xlsx | pdf
}

// TaskResponse represents the response when creating a task
type TaskResponse struct {
	TaskID string `json:"taskId"`
	Status string `json:"status"`
}

// StatusResponse represents the response when checking task status
type StatusResponse struct {
	TaskID string        `json:"taskId"`
	Status string        `json:"status"`
	Result *ExportResult `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}
