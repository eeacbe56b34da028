package dashboard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

func seedRoster() *fakeBackend {
	return &fakeBackend{
		members: []domain.Member{
			member("m1", "Theo", "Reichert", domain.MemberTypeBursche, domain.RoleNone),
			member("m2", "Kevin", "Lang", domain.MemberTypeBursche, domain.RoleKoch),
			member("m3", "Anna", "Weber", domain.MemberTypeFux, domain.RoleNone),
			member("m4", "Jonas", "Vogt", domain.MemberTypeInaktiv, domain.RoleNone),
			member("m5", "Max", "Admin", domain.MemberTypeBursche, domain.RoleSystemAdmin),
		},
	}
}

func TestLogin(t *testing.T) {
	backend := seedRoster()
	hash, err := HashPassword("geheim123")
	require.NoError(t, err)
	backend.members[1].PasswordHash = hash

	d := newTestDashboard(t, backend)
	ctx := context.Background()

	// Unknown name
	_, err = d.Login(ctx, "Niemand Hier", "geheim123")
	assert.ErrorIs(t, err, ErrUserNotFound)

	// Member without a password yet triggers the creation flow
	_, err = d.Login(ctx, "Theo Reichert", "egal")
	assert.ErrorIs(t, err, ErrPasswordNotSet)

	// Wrong password
	_, err = d.Login(ctx, "Kevin Lang", "falsch")
	assert.ErrorIs(t, err, ErrWrongPassword)

	// Success, case-insensitive name, session persisted
	m, err := d.Login(ctx, "kevin lang", "geheim123")
	require.NoError(t, err)
	assert.Equal(t, "m2", m.ID)
	require.NotNil(t, d.User())
	assert.Equal(t, "m2", d.User().ID)

	saved, ok := d.sessions.Load()
	require.True(t, ok)
	assert.Equal(t, "m2", saved.ID)
}

func TestLoginAmbiguousName(t *testing.T) {
	backend := seedRoster()
	dup := member("m9", "Theo", "Reichert", domain.MemberTypeFux, domain.RoleNone)
	backend.members = append(backend.members, dup)

	d := newTestDashboard(t, backend)

	_, err := d.Login(context.Background(), "Theo Reichert", "x")
	assert.ErrorIs(t, err, ErrAmbiguousName)
}

func TestSetInitialPassword(t *testing.T) {
	backend := seedRoster()
	d := newTestDashboard(t, backend)
	ctx := context.Background()

	// Too short
	_, err := d.SetInitialPassword(ctx, "Theo Reichert", "abc", "abc")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.ErrorIs(t, err, ErrValidation)

	// Confirmation mismatch
	_, err = d.SetInitialPassword(ctx, "Theo Reichert", "geheim123", "geheim124")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	// Success logs in directly and stores a bcrypt hash
	m, err := d.SetInitialPassword(ctx, "Theo Reichert", "geheim123", "geheim123")
	require.NoError(t, err)
	assert.Equal(t, "m1", m.ID)
	assert.True(t, m.HasPassword())
	require.NotNil(t, d.User())

	// The new credential verifies, a wrong one does not
	stored, err := backend.GetMember(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, VerifyPassword(stored.PasswordHash, "geheim123"))
	assert.False(t, VerifyPassword(stored.PasswordHash, "geheim124"))

	// Once set, the flow refuses to overwrite
	_, err = d.SetInitialPassword(ctx, "Theo Reichert", "anders123", "anders123")
	assert.Error(t, err)
}

func TestVerifyPasswordLegacyHash(t *testing.T) {
	// Pre-migration credentials are hex-encoded SHA-256 digests.
	sum := sha256.Sum256([]byte("geheim123"))
	legacy := hex.EncodeToString(sum[:])

	assert.True(t, VerifyPassword(legacy, "geheim123"))
	assert.True(t, VerifyPassword(strings.ToUpper(legacy), "geheim123"))
	assert.False(t, VerifyPassword(legacy, "falsch"))
}

func TestLogout(t *testing.T) {
	backend := seedRoster()
	d := newTestDashboard(t, backend)
	loginAs(t, d, backend, "m5")
	require.NoError(t, d.sessions.Save(*d.User()))

	require.NoError(t, d.Logout())

	assert.Nil(t, d.User())
	assert.Nil(t, d.ActiveUser())
	assert.Empty(t, d.Members())
	_, ok := d.sessions.Load()
	assert.False(t, ok)
}

func TestRestore(t *testing.T) {
	backend := seedRoster()
	d := newTestDashboard(t, backend)

	// Nothing saved
	ok, err := d.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	// Valid saved session revalidates against the backend
	require.NoError(t, d.sessions.Save(backend.members[0]))
	ok, err = d.Restore(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, d.User())
	assert.Equal(t, "m1", d.User().ID)

	// A session for a removed member is cleared
	d2 := newTestDashboard(t, backend)
	require.NoError(t, d2.sessions.Save(member("gone", "Weg", "Da", domain.MemberTypeBursche, domain.RoleNone)))
	ok, err = d2.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	_, stillThere := d2.sessions.Load()
	assert.False(t, stillThere)
}
