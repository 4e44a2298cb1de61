package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText_UTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<title>Żółć | SoundCloud</title>"), 0644))

	got, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "<title>Żółć | SoundCloud</title>", got)
}

func TestReadText_Latin1Fallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	// "Café" encoded as ISO-8859-1
	require.NoError(t, os.WriteFile(path, []byte{'C', 'a', 'f', 0xe9}, 0644))

	got, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "Café", got)
}

func TestReadText_Missing(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWriteFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.json")

	require.NoError(t, WriteFile(context.Background(), path, []byte("{}")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestWriteFile_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WriteFile(ctx, filepath.Join(t.TempDir(), "out.json"), []byte("{}"))
	assert.ErrorIs(t, err, context.Canceled)
}
