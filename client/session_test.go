package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"edrina-resto/apperrors"
	"edrina-resto/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "token-abc"

// fakeAPI implements just enough of the server for session tests.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	username := "alice"
	user := models.User{User_id: "u-1", Username: &username, Role: models.RoleServer}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Username != "alice" || creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": testToken,
			"token_type":   "bearer",
			"user":         user,
		})
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "could not validate credentials"})
			return
		}
		json.NewEncoder(w).Encode(user)
	})
	return httptest.NewServer(mux)
}

func credFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "credential")
}

func TestSessionLogin(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()

	path := credFile(t)
	s := NewSession(New(srv.URL), path)

	_, ok := s.CurrentUser()
	assert.False(t, ok)

	user, err := s.Login("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.User_id)
	assert.Equal(t, models.RoleServer, user.Role)

	current, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "u-1", current.User_id)

	// Credential must survive on disk for the next start.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testToken, string(data))
}

func TestSessionLoginBadCredentials(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()

	s := NewSession(New(srv.URL), credFile(t))
	_, err := s.Login("alice", "wrong")
	assert.True(t, apperrors.IsAuth(err))
	assert.False(t, s.LoggedIn())
}

func TestSessionRestoresPersistedCredential(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()

	path := credFile(t)
	require.NoError(t, os.WriteFile(path, []byte(testToken), 0o600))

	s := NewSession(New(srv.URL), path)
	user, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "u-1", user.User_id)
	assert.Equal(t, testToken, s.Token())
}

func TestSessionClearsStaleCredential(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()

	path := credFile(t)
	require.NoError(t, os.WriteFile(path, []byte("expired-token"), 0o600))

	s := NewSession(New(srv.URL), path)
	_, ok := s.CurrentUser()
	assert.False(t, ok)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSessionRestoreWithUnreachableAPI(t *testing.T) {
	// Resolution failure must behave like a logout, not a crash.
	path := credFile(t)
	require.NoError(t, os.WriteFile(path, []byte(testToken), 0o600))

	s := NewSession(New("http://127.0.0.1:1"), path)
	assert.False(t, s.LoggedIn())
}

func TestSessionLogoutIsIdempotent(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()

	path := credFile(t)
	s := NewSession(New(srv.URL), path)
	_, err := s.Login("alice", "secret")
	require.NoError(t, err)

	s.Logout()
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Token())

	s.Logout()
	assert.False(t, s.LoggedIn())
}
