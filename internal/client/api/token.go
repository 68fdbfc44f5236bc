package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore persists the bearer token between invocations.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore keeps the token in a single file readable only by the owner.
type FileTokenStore struct {
	Path string
}

// Load returns the stored token, or "" when none has been saved.
func (s FileTokenStore) Load() (string, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (s FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.Path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(s.Path, 0o600)
}

func (s FileTokenStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps the token in memory only.
type MemoryTokenStore struct {
	token string
}

func (s *MemoryTokenStore) Load() (string, error) { return s.token, nil }
func (s *MemoryTokenStore) Save(token string) error {
	s.token = token
	return nil
}
func (s *MemoryTokenStore) Clear() error {
	s.token = ""
	return nil
}
