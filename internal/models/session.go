package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// User is the employee profile returned by the authentication service
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Nome  string `json:"nome"`
}

// Claims represents JWT claims issued by this service
type Claims struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	UpstreamToken string `json:"upstream_token"` // bearer token for the time-entry service
	jwt.RegisteredClaims
}

// Session is the per-request authentication state. It is built by the
// auth middleware and passed explicitly to whatever talks upstream.
type Session struct {
	UserID        string
	Email         string
	Name          string
	UpstreamToken string
}

// NewSessionFromUser builds a session from an upstream login answer
func NewSessionFromUser(user User, upstreamToken string) *Session {
	return &Session{
		UserID:        fmt.Sprintf("%d", user.ID),
		Email:         user.Email,
		Name:          user.Nome,
		UpstreamToken: upstreamToken,
	}
}

// DisplayName returns the name printed on exports
func (s *Session) DisplayName() string {
	if s == nil {
		return "N/A"
	}
	if s.Name != "" {
		return s.Name
	}
	if s.Email != "" {
		return s.Email
	}
	return "N/A"
}
