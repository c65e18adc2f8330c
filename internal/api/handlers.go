package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"timecard-report/internal/middleware"
	"timecard-report/internal/models"
	"timecard-report/internal/services"
	"timecard-report/internal/utils"

	"github.com/gin-gonic/gin"
)

const punchTimestampLayout = "2006-01-02 15:04:05.000"

// Authenticator checks employee credentials against the remote service
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	VerifyToken(ctx context.Context, token string) (*models.LoginResponse, error)
}

// PunchSink records clock-ins and clock-outs
type PunchSink interface {
	Punch(ctx context.Context, session *models.Session, submission models.PunchSubmission) (*models.PunchResponse, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	auth          Authenticator
	punches       PunchSink
	jwtService    *services.JWTService
	reportService *services.ReportService
	exportService *services.ExportService
	location      *time.Location
	now           func() time.Time
	pollInterval  time.Duration
}

// NewHandlers creates a new handlers instance
func NewHandlers(
	auth Authenticator,
	punches PunchSink,
	jwtService *services.JWTService,
	reportService *services.ReportService,
	exportService *services.ExportService,
	location *time.Location,
) *Handlers {
	if location == nil {
		location = time.UTC
	}
	return &Handlers{
		auth:          auth,
		punches:       punches,
		jwtService:    jwtService,
		reportService: reportService,
		exportService: exportService,
		location:      location,
		now:           time.Now,
		pollInterval:  250 * time.Millisecond,
	}
}

// LoginHandler handles POST /api/auth/login
func (h *Handlers) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("[AUTH] Login failed for %s: %v", req.Email, err)
		remote := ""
		if response != nil {
			remote = response.Error
		}
		c.JSON(statusFor(err, http.StatusUnauthorized), gin.H{"error": upstreamMessage(err, remote)})
		return
	}

	if response.User == nil || response.Token == "" {
		c.JSON(http.StatusBadGateway, gin.H{"error": "incomplete login response"})
		return
	}

	session := models.NewSessionFromUser(*response.User, response.Token)
	token, err := h.jwtService.GenerateToken(session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	log.Printf("[AUTH] Session created for user %s", session.UserID)
	c.JSON(http.StatusOK, models.SessionResponse{
		Token: token,
		User:  *response.User,
	})
}

// MeHandler handles GET /api/auth/me
func (h *Handlers) MeHandler(c *gin.Context) {
	session := middleware.GetSession(c)
	c.JSON(http.StatusOK, gin.H{
		"userId": session.UserID,
		"email":  session.Email,
		"name":   session.DisplayName(),
	})
}

// VerifyHandler handles GET /api/auth/verify
// Confirms that the upstream token behind the session is still accepted
func (h *Handlers) VerifyHandler(c *gin.Context) {
	session := middleware.GetSession(c)

	response, err := h.auth.VerifyToken(c.Request.Context(), session.UpstreamToken)
	if err != nil {
		remote := ""
		if response != nil {
			remote = response.Error
		}
		c.JSON(statusFor(err, http.StatusUnauthorized), gin.H{"valid": false, "error": upstreamMessage(err, remote)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// PunchHandler handles POST /api/timecard/punch
func (h *Handlers) PunchHandler(c *gin.Context) {
	var req models.PunchRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	timestamp := req.Timestamp
	if timestamp == "" {
		timestamp = utils.LocalTimestamp(h.now(), h.location)
	} else if _, err := time.Parse(punchTimestampLayout, timestamp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "timestamp must be YYYY-MM-DD HH:MM:SS.mmm"})
		return
	}

	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	submission := models.PunchSubmission{
		IPAddress: ip,
		Location:  req.Location,
		UserAgent: c.Request.UserAgent(),
		Timestamp: timestamp,
	}

	session := middleware.GetSession(c)
	response, err := h.punches.Punch(c.Request.Context(), session, submission)
	if err != nil {
		log.Printf("[PUNCH] Punch failed for user %s: %v", session.UserID, err)
		remote := ""
		if response != nil {
			remote = response.Error
		}
		c.JSON(statusFor(err, http.StatusBadGateway), gin.H{"error": upstreamMessage(err, remote)})
		return
	}
	c.JSON(http.StatusOK, response)
}

// EntriesHandler handles GET /api/timecard/entries
func (h *Handlers) EntriesHandler(c *gin.Context) {
	query, ok := bindPeriod(c)
	if !ok {
		return
	}

	events, err := h.reportService.FetchEntries(c.Request.Context(), middleware.GetSession(c), query.StartDate, query.EndDate)
	if err != nil {
		c.JSON(statusFor(err, http.StatusBadGateway), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.EntriesResponse{Success: true, Entries: events})
}

// ReportHandler handles GET /api/timecard/report
func (h *Handlers) ReportHandler(c *gin.Context) {
	query, ok := bindPeriod(c)
	if !ok {
		return
	}

	response, err := h.reportService.View(c.Request.Context(), middleware.GetSession(c), query.StartDate, query.EndDate)
	if err != nil {
		c.JSON(statusFor(err, http.StatusInternalServerError), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, response)
}

// DownloadReportHandler handles GET /api/timecard/report/:format
// and streams the rendered artifact
func (h *Handlers) DownloadReportHandler(c *gin.Context) {
	query, ok := bindPeriod(c)
	if !ok {
		return
	}
	format := models.ExportFormat(c.Param("format"))

	artifact, _, err := h.reportService.Export(c.Request.Context(), middleware.GetSession(c), query.StartDate, query.EndDate, format)
	if err != nil {
		log.Printf("[EXPORT] Download of %s failed: %v", format, err)
		c.JSON(statusFor(err, http.StatusBadGateway), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", attachment(artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

// CreateExportHandler handles POST /api/timecard/exports
func (h *Handlers) CreateExportHandler(c *gin.Context) {
	var req models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.exportService.Start(middleware.GetSession(c), req)
	if err != nil {
		c.JSON(statusFor(err, http.StatusInternalServerError), gin.H{"error": err.Error()})
		return
	}

	// Return task ID immediately
	c.JSON(http.StatusAccepted, models.TaskResponse{
		TaskID: task.ID,
		Status: string(task.Status),
	})
}

// ExportStatusHandler handles GET /api/timecard/exports/status/:taskId
func (h *Handlers) ExportStatusHandler(c *gin.Context) {
	task, err := h.exportService.Status(middleware.GetSession(c), c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, statusResponse(task))
}

// DownloadExportHandler handles GET /api/timecard/exports/download/:taskId
func (h *Handlers) DownloadExportHandler(c *gin.Context) {
	body, contentType, filename, err := h.exportService.Open(c.Request.Context(), middleware.GetSession(c), c.Param("taskId"))
	if err != nil {
		c.JSON(statusFor(err, http.StatusInternalServerError), gin.H{"error": err.Error()})
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", attachment(filename))
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		log.Printf("[EXPORT] WARNING: streaming %s interrupted: %v", filename, err)
	}
}

// ExportHistoryHandler handles GET /api/timecard/exports/history
func (h *Handlers) ExportHistoryHandler(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	records, err := h.exportService.History(c.Request.Context(), middleware.GetSession(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to load export history: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exports": records})
}

func bindPeriod(c *gin.Context) (models.PeriodQuery, bool) {
	var query models.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return query, false
	}
	if err := utils.ValidatePeriod(query.StartDate, query.EndDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return query, false
	}
	return query, true
}

func statusResponse(task *models.Task) models.StatusResponse {
	response := models.StatusResponse{
		TaskID: task.ID,
		Status: string(task.Status),
	}
	if task.Status == models.TaskStatusCompleted {
		response.Result = task.Result
	} else if task.Status == models.TaskStatusFailed {
		response.Error = task.Error
	}
	return response
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error, fallback int) int {
	switch {
	case errors.Is(err, services.ErrInvalidPeriod), errors.Is(err, services.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrTaskNotReady):
		return http.StatusConflict
	case errors.Is(err, services.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	}
	return fallback
}

// upstreamMessage prefers the message the remote service sent back
func upstreamMessage(err error, remote string) string {
	if remote != "" {
		return remote
	}
	return err.Error()
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
