package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	rec := Record{
		Token: "jwt-abc",
		User: User{
			ID:        "u1",
			Email:     "a@b.com",
			KYCStatus: KYCVerified,
			CreatedAt: time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, store.Set(rec))

	// a fresh store over the same directory simulates a process restart
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	got, ok, err := reopened.Get()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rec, got)
}

func TestFileStoreGetMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := store.Get()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileStoreLastWriteWins(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(Record{Token: "first", User: User{ID: "u1"}}))
	require.NoError(t, store.Set(Record{Token: "second", User: User{ID: "u2"}}))

	got, ok, err := store.Get()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", got.Token)
	require.Equal(t, "u2", got.User.ID)
}

func TestFileStoreClearRemovesRecordAndFlag(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(Record{Token: "jwt-abc", User: User{ID: "u1"}}))
	require.NoError(t, store.SetRememberMe(true))

	require.NoError(t, store.Clear())

	_, ok, err := store.Get()
	require.NoError(t, err)
	require.False(t, ok)

	remember, err := store.RememberMe()
	require.NoError(t, err)
	require.False(t, remember)

	// clearing again is a no-op
	require.NoError(t, store.Clear())
}

func TestFileStoreCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, recordFileName), []byte("{truncated"), 0o600))

	_, _, err = store.Get()
	require.Error(t, err)
}

func TestFileStoreRememberMeFlag(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	remember, err := store.RememberMe()
	require.NoError(t, err)
	require.False(t, remember)

	require.NoError(t, store.SetRememberMe(true))
	remember, err = store.RememberMe()
	require.NoError(t, err)
	require.True(t, remember)

	require.NoError(t, store.SetRememberMe(false))
	remember, err = store.RememberMe()
	require.NoError(t, err)
	require.False(t, remember)
}

func TestMemoryStoreClearResetsRememberMe(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(Record{Token: "jwt", User: User{ID: "u1"}}))
	require.NoError(t, store.SetRememberMe(true))

	require.NoError(t, store.Clear())

	_, ok, _ := store.Get()
	require.False(t, ok)
	remember, _ := store.RememberMe()
	require.False(t, remember)
}
