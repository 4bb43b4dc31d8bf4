package sigma

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	sigmaimage "github.com/lncvrt/sigma/image"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, s string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sigma.toml")
	require.NoError(t, os.WriteFile(path, []byte(s), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, &sigmaimage.Options{Compress: true, Level: gzip.BestCompression}, c.Convert.Options())
	assert.Equal(t, ViewerConfig{Title: "sigma previewer", Width: 800, Height: 600}, c.Viewer)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[convert]
compress = false
colors = 16

[viewer]
width = 1024
`)

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, c.Convert.Compress)
	assert.Equal(t, gzip.BestCompression, c.Convert.Level)
	assert.Equal(t, 16, c.Convert.Colors)
	assert.Equal(t, 1024, c.Viewer.Width)
	assert.Equal(t, 600, c.Viewer.Height)
	assert.Equal(t, "sigma previewer", c.Viewer.Title)
}

func TestLoadConfigInvalid(t *testing.T) {
	tables := []struct {
		name string
		toml string
	}{
		{"syntax", "[convert\n"},
		{"level", "[convert]\nlevel = 12\n"},
		{"colors", "[convert]\ncolors = 1000\n"},
		{"viewer", "[viewer]\nheight = 0\n"},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, table.toml))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
