package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Session is what posctl remembers between invocations.
type Session struct {
	BaseURL     string   `yaml:"baseUrl"`
	AccessToken string   `yaml:"token"`
	Username    string   `yaml:"username"`
	Roles       []string `yaml:"roles"`
}

// LoggedIn reports whether the session carries a token.
func (s Session) LoggedIn() bool {
	return s.AccessToken != ""
}

// Token makes a Session usable as a TokenSource.
func (s Session) Token() string {
	return s.AccessToken
}

// SessionStore persists a Session as YAML on disk.
type SessionStore struct {
	path string
}

// NewSessionStore stores the session at path. An empty path resolves to
// $XDG_CONFIG_HOME/bwc/session.yaml (or the OS equivalent).
func NewSessionStore(path string) (*SessionStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locate config dir: %w", err)
		}
		path = filepath.Join(dir, "bwc", "session.yaml")
	}
	return &SessionStore{path: path}, nil
}

func (s *SessionStore) Path() string { return s.path }

// Load returns the stored session, or an empty one when none exists.
func (s *SessionStore) Load() (Session, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}

	var session Session
	if err := yaml.Unmarshal(raw, &session); err != nil {
		return Session{}, fmt.Errorf("decode session %s: %w", s.path, err)
	}
	return session, nil
}

// Save writes the session with owner-only permissions.
func (s *SessionStore) Save(session Session) error {
	raw, err := yaml.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing a missing session is not an error.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
