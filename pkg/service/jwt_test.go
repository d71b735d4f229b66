package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "sdo-ticketing/pkg/errors"
)

func claimsForTest() Claims {
	return Claims{
		UserID:     42,
		Username:   "school301234",
		Role:       "Staff",
		School:     "San Isidro Elementary",
		SchoolCode: "301234",
	}
}

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, zap.NewNop())

	token, err := svc.GenerateToken(claimsForTest())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), parsed.UserID)
	assert.Equal(t, "school301234", parsed.Username)
	assert.Equal(t, "Staff", parsed.Role)
	assert.Equal(t, "301234", parsed.SchoolCode)
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour, zap.NewNop())
	verifier := NewJWTService("secret-b", time.Hour, zap.NewNop())

	token, err := issuer.GenerateToken(claimsForTest())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWT_ExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService("secret", -time.Minute, zap.NewNop())

	token, err := svc.GenerateToken(claimsForTest())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_GarbageRejected(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, zap.NewNop())

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
