package client

import (
	"os"
	"strings"

	"edrina-resto/apperrors"
	"edrina-resto/models"
)

// Session holds the current identity and credential for the dashboard.
// The credential is persisted to a file so a restart resumes the session;
// a credential that no longer resolves is discarded, never fatal.
type Session struct {
	api      *Client
	credPath string
	token    string
	user     *models.User
}

func NewSession(api *Client, credPath string) *Session {
	s := &Session{api: api, credPath: credPath}
	s.restore()
	return s
}

func (s *Session) restore() {
	data, err := os.ReadFile(s.credPath)
	if err != nil {
		return
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return
	}
	user, err := s.api.Me(token)
	if err != nil {
		// Resolution failure is a logout, whatever the cause.
		os.Remove(s.credPath)
		return
	}
	s.token = token
	s.user = &user
}

func (s *Session) Login(username, password string) (models.User, error) {
	result, err := s.api.Login(username, password)
	if err != nil {
		return models.User{}, err
	}
	s.token = result.AccessToken
	s.user = &result.User
	if err := os.WriteFile(s.credPath, []byte(result.AccessToken), 0o600); err != nil {
		return result.User, apperrors.Transport("persist credential", err)
	}
	return result.User, nil
}

// Logout clears the credential and identity. Idempotent.
func (s *Session) Logout() {
	s.token = ""
	s.user = nil
	os.Remove(s.credPath)
}

func (s *Session) CurrentUser() (models.User, bool) {
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) Token() string {
	return s.token
}

func (s *Session) LoggedIn() bool {
	return s.user != nil
}
