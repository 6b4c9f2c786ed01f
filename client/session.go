package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TokenStore persists the bearer token across process restarts
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore keeps the token in a single file
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a file-backed token store
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(data)), nil
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Identity is the resolved account behind the current token
type Identity struct {
	Name  string
	Email string
}

// Session is the single source of truth for the current credential.
// The token is mirrored into the TokenStore on every change and read
// back only at construction.
type Session struct {
	baseURL    string
	httpClient *http.Client
	store      TokenStore

	mu             sync.RWMutex
	token          string
	identity       Identity
	hasIdentity    bool
	authenticating bool
}

// NewSession builds a session, reading any persisted token. When a token
// is found the session reports Authenticating until Verify has run.
func NewSession(baseURL string, store TokenStore) (*Session, error) {
	token, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load persisted token: %w", err)
	}

	return &Session{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		store:          store,
		token:          token,
		authenticating: token != "",
	}, nil
}

// Token returns the current bearer token, empty when unauthenticated
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns the resolved identity, false when not authenticated
func (s *Session) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.hasIdentity
}

// Authenticating reports whether the startup verification is still
// pending, so callers can distinguish "undetermined" from "logged out"
func (s *Session) Authenticating() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticating
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type tokenPayload struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Name        string `json:"name"`
}

// Login exchanges credentials for a bearer token. On failure the session
// state is left unchanged.
func (s *Session) Login(ctx context.Context, email, password string) error {
	payload, err := s.requestToken(ctx, "/api/auth/login", credentialsRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}

	return s.setAuthenticated(payload.AccessToken, Identity{Name: payload.Name, Email: email})
}

// Register creates a new account and authenticates as it. Returns
// ErrDuplicateAccount when the email is already taken.
func (s *Session) Register(ctx context.Context, email, password, name string) error {
	payload, err := s.requestToken(ctx, "/api/auth/register", credentialsRequest{
		Email:    email,
		Password: password,
		Name:     name,
	})
	if err != nil {
		return err
	}

	return s.setAuthenticated(payload.AccessToken, Identity{Name: payload.Name, Email: email})
}

// Logout clears token and identity unconditionally. Idempotent. The
// returned error only reports a failure to remove the persisted copy;
// the in-memory session is logged out regardless.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.identity = Identity{}
	s.hasIdentity = false
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear persisted token: %w", err)
	}
	return nil
}

// Verify resolves the persisted token into an identity. Any failure,
// from an expired token to a transport error, clears both token and
// identity so the session never reports a token without an identity.
func (s *Session) Verify(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.authenticating = false
		s.mu.Unlock()
	}()

	token := s.Token()
	if token == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/auth/me", nil)
	if err != nil {
		return s.dropSession(&NetworkError{Op: "verify", Err: err})
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return s.dropSession(&NetworkError{Op: "verify", Err: err})
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return s.dropSession(&NetworkError{Op: "verify", Err: err})
	}

	if resp.StatusCode != http.StatusOK {
		return s.dropSession(errorFromStatus("verify", resp.StatusCode, &env))
	}

	var identity struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(env.Data, &identity); err != nil {
		return s.dropSession(&NetworkError{Op: "verify", Err: err})
	}

	s.mu.Lock()
	s.identity = Identity{Name: identity.Name, Email: identity.Email}
	s.hasIdentity = true
	s.mu.Unlock()

	return nil
}

// dropSession logs out because of cause; a failed mirror clear is
// reported alongside it, never swallowed.
func (s *Session) dropSession(cause error) error {
	if err := s.Logout(); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (s *Session) setAuthenticated(token string, identity Identity) error {
	s.mu.Lock()
	s.token = token
	s.identity = identity
	s.hasIdentity = true
	s.authenticating = false
	s.mu.Unlock()

	// The caller is authenticated in memory either way, but must hear
	// about a mirror that did not stick
	if err := s.store.Save(token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

func (s *Session) requestToken(ctx context.Context, path string, body credentialsRequest) (*tokenPayload, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, &NetworkError{Op: path, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, &NetworkError{Op: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: path, Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &NetworkError{Op: path, Err: err}
	}

	if resp.StatusCode == http.StatusConflict {
		return nil, ErrDuplicateAccount
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errorFromStatus(path, resp.StatusCode, &env)
	}

	var payload tokenPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, &NetworkError{Op: path, Err: err}
	}
	if payload.AccessToken == "" {
		return nil, &NetworkError{Op: path, Err: errors.New("response carried no access token")}
	}

	return &payload, nil
}
