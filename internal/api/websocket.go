package api

import (
	"log"
	"net/http"
	"time"

	"timecard-report/internal/middleware"
	"timecard-report/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const socketWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The session token already authenticates the request
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ExportStatusSocket handles GET /api/timecard/exports/ws/:taskId
// Pushes the task status as JSON each time it changes and closes the
// connection once the task is completed or failed.
func (h *Handlers) ExportStatusSocket(c *gin.Context) {
	session := middleware.GetSession(c)
	taskID := c.Param("taskId")

	// Reject unknown tasks before upgrading so the client gets a plain 404
	if _, err := h.exportService.Status(session, taskID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WEBSOCKET] Failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()
	log.Printf("[WEBSOCKET] Streaming status of task %s to user %s", taskID, session.UserID)

	// Drain client frames so close and ping control messages are handled
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	var last models.TaskStatus
	for {
		task, err := h.exportService.Status(session, taskID)
		if err != nil {
			h.closeSocket(conn, websocket.CloseGoingAway, "task no longer available")
			return
		}

		if task.Status != last {
			_ = conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
			if err := conn.WriteJSON(statusResponse(task)); err != nil {
				log.Printf("[WEBSOCKET] Write failed for task %s: %v", taskID, err)
				return
			}
			last = task.Status
		}

		if task.Status.Terminal() {
			h.closeSocket(conn, websocket.CloseNormalClosure, string(task.Status))
			return
		}

		select {
		case <-closed:
			return
		case <-ticker.C:
		}
	}
}

func (h *Handlers) closeSocket(conn *websocket.Conn, code int, reason string) {
	message := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(socketWriteWait))
}
