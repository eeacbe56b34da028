// Package session persists the logged-in member between program runs, the
// way the browser dashboard kept one localStorage key.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

// sessionFile is the namespaced key the session lives under.
const sessionFile = "teutonia_session_v5.json"

// Store keeps the current session as a single JSON document in dir.
type Store struct {
	path string
}

func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, sessionFile)}
}

// DefaultStore places the session in the user's config directory.
func DefaultStore() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir -> %w", err)
	}
	dir := filepath.Join(base, "mitgliederbereich")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir -> %w", err)
	}
	return NewStore(dir), nil
}

func (s *Store) Save(member domain.Member) error {
	data, err := json.Marshal(member)
	if err != nil {
		return fmt.Errorf("encode session -> %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session -> %w", err)
	}
	return nil
}

// Load returns the stored member. It fails soft: a missing or unreadable
// session reports ok=false and never an error, so startup can simply fall
// through to the login flow.
func (s *Store) Load() (domain.Member, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Member{}, false
	}
	var member domain.Member
	if err := json.Unmarshal(data, &member); err != nil {
		return domain.Member{}, false
	}
	if member.ID == "" {
		return domain.Member{}, false
	}
	return member, true
}

func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session -> %w", err)
	}
	return nil
}
