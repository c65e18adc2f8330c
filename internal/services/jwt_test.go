package services

import (
	"testing"
	"time"

	"timecard-report/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	token, err := service.GenerateToken(testSession())
	require.NoError(t, err)

	session, err := service.SessionFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, testSession(), session)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	token, err := NewJWTService("other-secret", time.Hour).GenerateToken(testSession())
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	claims := &models.Claims{
		UserID:        "42",
		UpstreamToken: "x",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &models.Claims{UserID: "42"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RequiresUpstreamToken(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)
	token, err := service.GenerateToken(&models.Session{UserID: "42"})
	require.NoError(t, err)

	_, err = service.SessionFromToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
