package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateGate(t *testing.T) {
	tests := []struct {
		name           string
		token          string
		authenticating bool
		want           GateDecision
	}{
		{"pending verification with token", "tok", true, ShowPlaceholder},
		{"pending verification without token", "", true, ShowPlaceholder},
		{"determined unauthenticated", "", false, RedirectLogin},
		{"determined authenticated", "tok", false, RenderAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EvaluateGate(tt.token, tt.authenticating))
		})
	}
}

func TestGateNeverRedirectsBeforeVerification(t *testing.T) {
	store := &memTokenStore{token: "persisted-token"}

	session, err := NewSession("http://localhost:0", store)
	require.NoError(t, err)

	// A persisted token means the session is undetermined until Verify runs
	require.True(t, session.Authenticating())
	require.Equal(t, ShowPlaceholder, session.Gate())
}

func TestGateRedirectsWithoutPersistedToken(t *testing.T) {
	session, err := NewSession("http://localhost:0", &memTokenStore{})
	require.NoError(t, err)

	require.False(t, session.Authenticating())
	require.Equal(t, RedirectLogin, session.Gate())
}

func TestGateAfterFailedVerification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Token expired")
	}))
	defer server.Close()

	store := &memTokenStore{token: "expired-token"}
	session, err := NewSession(server.URL, store)
	require.NoError(t, err)

	require.Error(t, session.Verify(context.Background()))
	require.Equal(t, RedirectLogin, session.Gate())
}

func TestGateAfterSuccessfulVerification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, map[string]string{"id": "u1", "email": "paula@example.com", "name": "Paula"})
	}))
	defer server.Close()

	store := &memTokenStore{token: "valid-token"}
	session, err := NewSession(server.URL, store)
	require.NoError(t, err)

	require.NoError(t, session.Verify(context.Background()))
	require.Equal(t, RenderAdmin, session.Gate())
}
