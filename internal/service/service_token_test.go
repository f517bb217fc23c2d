package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tournest/tournest/internal/logger"
)

func newTestTokenService(duration time.Duration) *tokenService {
	return &tokenService{
		signKey:  "test-sign-key",
		issuer:   "tournest",
		duration: duration,
		logger:   logger.Nop(),
	}
}

func TestTokenService_IssueVerifyRoundTrip(t *testing.T) {
	svc := newTestTokenService(time.Hour)
	userID := uuid.New()

	token, err := svc.Issue(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	verified, err := svc.Verify(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, userID, verified.UserID)
	assert.WithinDuration(t, time.Now(), verified.IssuedAtTime, 5*time.Second)
}

func TestTokenService_VerifyFailuresCollapse(t *testing.T) {
	svc := newTestTokenService(time.Hour)
	userID := uuid.New()

	good, err := svc.Issue(context.Background(), userID)
	require.NoError(t, err)

	expired, err := newTestTokenService(-time.Hour).Issue(context.Background(), userID)
	require.NoError(t, err)

	otherKey := &tokenService{signKey: "other-key", issuer: "tournest", duration: time.Hour, logger: logger.Nop()}
	foreign, err := otherKey.Issue(context.Background(), userID)
	require.NoError(t, err)

	tests := []struct {
		name        string
		tokenString string
	}{
		{name: "garbage", tokenString: "not-a-token"},
		{name: "empty", tokenString: ""},
		{name: "expired", tokenString: expired.SignedString},
		{name: "wrong signature", tokenString: foreign.SignedString},
		{name: "truncated", tokenString: good.SignedString[:len(good.SignedString)-5]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(context.Background(), tt.tokenString)
			// every failure mode collapses into the same sentinel
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestTokenService_IssueNilUser(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	_, err := svc.Issue(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}
