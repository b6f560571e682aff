package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryJar_SetGetRemove(t *testing.T) {
	j := NewMemoryJar()

	_, ok := j.Get(CookieToken)
	assert.False(t, ok)

	require.NoError(t, j.Set(CookieToken, "tok", time.Hour))
	v, ok := j.Get(CookieToken)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	require.NoError(t, j.Remove(CookieToken))
	_, ok = j.Get(CookieToken)
	assert.False(t, ok)
}

func TestMemoryJar_ExpiryHidesCookie(t *testing.T) {
	j := NewMemoryJar()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return base }

	require.NoError(t, j.Set(CookieUser, "u", sessionExpiry))

	j.now = func() time.Time { return base.Add(23 * time.Hour) }
	_, ok := j.Get(CookieUser)
	assert.True(t, ok)

	j.now = func() time.Time { return base.Add(25 * time.Hour) }
	_, ok = j.Get(CookieUser)
	assert.False(t, ok)
}

func TestFileJar_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")

	j1 := NewFileJar(path)
	require.NoError(t, j1.Set(CookieUser, `{"userId":"alice"}`, rememberMeExpiry))
	require.NoError(t, j1.Set(CookieToken, "tok", rememberMeExpiry))

	j2 := NewFileJar(path)
	v, ok := j2.Get(CookieToken)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	require.NoError(t, j2.Remove(CookieToken))
	_, ok = j1.Get(CookieToken)
	assert.False(t, ok)

	v, ok = j1.Get(CookieUser)
	assert.True(t, ok)
	assert.Equal(t, `{"userId":"alice"}`, v)
}

func TestFileJar_ExpiredCookieHidden(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	j := NewFileJar(path)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return base }

	require.NoError(t, j.Set(CookieToken, "tok", sessionExpiry))

	j.now = func() time.Time { return base.Add(8 * 24 * time.Hour) }
	_, ok := j.Get(CookieToken)
	assert.False(t, ok)
}
