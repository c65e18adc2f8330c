package middleware

import (
	"log"
	"net/http"
	"strings"

	"timecard-report/internal/models"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// SessionValidator turns a bearer token into a session
type SessionValidator interface {
	SessionFromToken(token string) (*models.Session, error)
}

// JWTAuth requires a valid session token and stores the session in the
// gin context. The token is read from the Authorization header, or from
// the token query parameter for websocket upgrades where browsers cannot
// set headers.
func JWTAuth(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		session, err := validator.SessionFromToken(token)
		if err != nil {
			log.Printf("[AUTH] Rejected token from %s: %v", c.ClientIP(), err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// GetSession returns the session stored by JWTAuth, or nil
func GetSession(c *gin.Context) *models.Session {
	value, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	session, _ := value.(*models.Session)
	return session
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
