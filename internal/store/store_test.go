package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verso.db")
	s, err := Open(path)
	require.NoError(t, err)

	assert.Empty(t, s.Token())
	require.NoError(t, s.SaveToken("tok-123"))
	assert.Equal(t, "tok-123", s.Token())

	// Token must survive a close/reopen cycle
	require.NoError(t, s.Close())
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "tok-123", s.Token())

	require.NoError(t, s.ClearToken())
	assert.Empty(t, s.Token())
}

func TestSaveTokenReplacesPrevious(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "verso.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveToken("first"))
	require.NoError(t, s.SaveToken("second"))
	assert.Equal(t, "second", s.Token())
}

func TestPrefRoundTrip(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "verso.db"))
	require.NoError(t, err)
	defer s.Close()

	assert.Empty(t, s.Pref("last_category"))
	require.NoError(t, s.SetPref("last_category", "Fiction"))
	assert.Equal(t, "Fiction", s.Pref("last_category"))
}

func TestMemoryOnlyStore(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	// Everything is a no-op without a backing file
	require.NoError(t, s.SaveToken("tok"))
	assert.Empty(t, s.Token())
	require.NoError(t, s.SetPref("k", "v"))
	assert.Empty(t, s.Pref("k"))
}
