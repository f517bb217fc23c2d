package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tournest/tournest/internal/config"
	"github.com/tournest/tournest/internal/logger"
)

func TestSend_Success(t *testing.T) {
	var got payload
	var authHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewMailer(config.Mail{
		Endpoint: srv.URL,
		APIToken: "mail_token",
		From:     "noreply@tournest.io",
		Timeout:  5 * time.Second,
	}, logger.Nop())

	err := m.Send(context.Background(), Message{
		To:      "jane@example.com",
		Subject: "Your password reset token (valid for 10 min)",
		Body:    "Forgot your password? Submit a request with your new password.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer mail_token", authHeader)
	assert.Equal(t, "noreply@tournest.io", got.From)
	assert.Equal(t, "jane@example.com", got.To)
	assert.Equal(t, "Your password reset token (valid for 10 min)", got.Subject)
	assert.NotEmpty(t, got.Text)
}

func TestSend_ProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	m := NewMailer(config.Mail{Endpoint: srv.URL, Timeout: 5 * time.Second}, logger.Nop())

	err := m.Send(context.Background(), Message{To: "jane@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail provider rejected message")
}

func TestSend_NotConfigured(t *testing.T) {
	m := NewMailer(config.Mail{}, logger.Nop())

	err := m.Send(context.Background(), Message{To: "jane@example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSend_Unreachable(t *testing.T) {
	// Grab an address nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	m := NewMailer(config.Mail{Endpoint: endpoint, Timeout: time.Second}, logger.Nop())

	err := m.Send(context.Background(), Message{To: "jane@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail submission failed")
}
