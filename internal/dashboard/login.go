package dashboard

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

// Login authenticates by full name and password. The distinct failure modes
// matter to the login view: ErrUserNotFound and ErrAmbiguousName ask for a
// more precise name, ErrPasswordNotSet switches to the first-time
// password-creation flow, ErrWrongPassword stays on the form.
func (d *Dashboard) Login(ctx context.Context, name, password string) (domain.Member, error) {
	member, err := d.lookupOne(ctx, name)
	if err != nil {
		return domain.Member{}, err
	}

	if !member.HasPassword() {
		return domain.Member{}, ErrPasswordNotSet
	}
	if password == "" {
		return domain.Member{}, ErrPasswordRequired
	}
	if !VerifyPassword(member.PasswordHash, password) {
		return domain.Member{}, ErrWrongPassword
	}

	return member, d.startSession(ctx, member)
}

// SetInitialPassword finishes the first-login flow: the member exists but
// has no credential yet, so the chosen password is stored and the session
// starts immediately.
func (d *Dashboard) SetInitialPassword(ctx context.Context, name, password, confirm string) (domain.Member, error) {
	member, err := d.lookupOne(ctx, name)
	if err != nil {
		return domain.Member{}, err
	}
	if member.HasPassword() {
		// Someone else set it in the meantime; fall back to normal login.
		return domain.Member{}, ErrWrongPassword
	}

	if len(password) < 6 {
		return domain.Member{}, ErrPasswordTooShort
	}
	if password != confirm {
		return domain.Member{}, ErrPasswordMismatch
	}

	hash, err := HashPassword(password)
	if err != nil {
		return domain.Member{}, fmt.Errorf("hash password -> %w", err)
	}
	updated, err := d.backend.UpdateMember(ctx, member.ID, map[string]any{"password_hash": hash})
	if err != nil {
		return domain.Member{}, err
	}

	return updated, d.startSession(ctx, updated)
}

func (d *Dashboard) lookupOne(ctx context.Context, name string) (domain.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Member{}, ErrNameRequired
	}

	matches, err := d.backend.LoginLookup(ctx, name)
	if err != nil {
		return domain.Member{}, err
	}
	switch len(matches) {
	case 0:
		return domain.Member{}, ErrUserNotFound
	case 1:
		return matches[0], nil
	default:
		return domain.Member{}, ErrAmbiguousName
	}
}

func (d *Dashboard) startSession(ctx context.Context, member domain.Member) error {
	d.user = &member
	d.debugUser = nil
	if err := d.sessions.Save(member); err != nil {
		return err
	}
	d.Refresh(ctx)
	return nil
}

// Logout drops the session, the identity and any impersonation.
func (d *Dashboard) Logout() error {
	d.user = nil
	d.debugUser = nil
	d.members = nil
	d.events = nil
	d.announcements = nil
	return d.sessions.Clear()
}

// HashPassword hashes a newly chosen password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a password against a stored hash. New credentials
// are bcrypt; hashes created before the migration are hex-encoded SHA-256
// and still verify.
func VerifyPassword(hash, password string) bool {
	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	sum := sha256.Sum256([]byte(password))
	legacy := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(legacy), []byte(strings.ToLower(hash))) == 1
}
