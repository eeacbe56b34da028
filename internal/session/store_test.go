package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	m := domain.Member{
		ID:         "m1",
		FirstName:  "Theo",
		Surname:    "Reichert",
		FullName:   "Theo Reichert",
		MemberType: domain.MemberTypeBursche,
		AdminRole:  domain.RoleKoch,
	}
	require.NoError(t, store.Save(m))

	loaded, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, m.ID, loaded.ID)
	assert.Equal(t, m.FullName, loaded.FullName)
	assert.Equal(t, m.AdminRole, loaded.AdminRole)
}

func TestStoreLoadFailsSoft(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	// Missing file
	_, ok := store.Load()
	assert.False(t, ok)

	// Corrupt file
	require.NoError(t, os.WriteFile(filepath.Join(dir, sessionFile), []byte("{not json"), 0o600))
	_, ok = store.Load()
	assert.False(t, ok)

	// Valid JSON without an identity
	require.NoError(t, os.WriteFile(filepath.Join(dir, sessionFile), []byte(`{"full_name":"x"}`), 0o600))
	_, ok = store.Load()
	assert.False(t, ok)
}

func TestStoreClear(t *testing.T) {
	store := NewStore(t.TempDir())

	// Clearing a missing session is not an error
	require.NoError(t, store.Clear())

	require.NoError(t, store.Save(domain.Member{ID: "m1"}))
	require.NoError(t, store.Clear())
	_, ok := store.Load()
	assert.False(t, ok)
}
