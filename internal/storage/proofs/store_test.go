package proofs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery-dispatch/internal/apperr"
)

func TestLocalStore_SaveAndRemove(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStore(dir)
	require.NoError(t, err)

	name, err := s.Save(strings.NewReader("jpeg-bytes"), "Bukti Antar.JPG")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.NotContains(t, name, "Bukti")

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, s.Remove(name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Remove(name), "removing twice is fine")
}

func TestLocalStore_RejectsUnknownExtension(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save(strings.NewReader("x"), "payload.exe")
	require.ErrorIs(t, err, apperr.ErrInvalid)

	_, err = s.Save(strings.NewReader("x"), "noext")
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestLocalStore_RemoveRejectsPaths(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.ErrorIs(t, s.Remove("../etc/passwd"), apperr.ErrInvalid)
	require.ErrorIs(t, s.Remove(""), apperr.ErrInvalid)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestLocalStore_SaveCleansUpOnWriteError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewLocalStore(dir)
	require.NoError(t, err)
	s.newName = func() string { return "fixed" }

	_, err = s.Save(failingReader{}, "a.png")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
