package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"timecard-report/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type validatorStub struct{}

func (validatorStub) SessionFromToken(token string) (*models.Session, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &models.Session{UserID: "42", UpstreamToken: "up"}, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", JWTAuth(validatorStub{}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetSession(c).UserID})
	})
	return router
}

func TestJWTAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		query      string
		upgrade    bool
		wantStatus int
	}{
		{"valid bearer", "Bearer good", "", false, http.StatusOK},
		{"lowercase scheme", "bearer good", "", false, http.StatusOK},
		{"missing header", "", "", false, http.StatusUnauthorized},
		{"wrong scheme", "Basic good", "", false, http.StatusUnauthorized},
		{"invalid token", "Bearer bad", "", false, http.StatusUnauthorized},
		{"query token on upgrade", "", "good", true, http.StatusOK},
		{"query token ignored without upgrade", "", "good", false, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/me"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.upgrade {
				req.Header.Set("Upgrade", "websocket")
			}
			w := httptest.NewRecorder()

			newRouter().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"userId": "42"}`, w.Body.String())
			}
		})
	}
}

func TestGetSession_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetSession(c))
}
