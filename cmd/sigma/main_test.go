package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/lncvrt/sigma"
	sigmaimage "github.com/lncvrt/sigma/image"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stderr := new(bytes.Buffer)
	app := newApp()
	app.Writer = new(bytes.Buffer)
	app.ErrWriter = stderr
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"sigma"}, args...))
	return stderr.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	ec, ok := err.(cli.ExitCoder)
	require.True(t, ok, "%v", err)
	return ec.ExitCode()
}

func testPNG(t *testing.T, dir string) string {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	m.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 255})
	m.SetNRGBA(2, 1, color.NRGBA{4, 5, 6, 7})
	path := filepath.Join(dir, "in.png")
	require.NoError(t, sigma.SavePNG(path, m))
	return path
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	in := testPNG(t, dir)

	tables := []struct {
		name string
		args []string
	}{
		{"unsupported extension", []string{filepath.Join(dir, "in.jpg"), filepath.Join(dir, "out.png")}},
		{"png without output", []string{in}},
		{"png with empty output", []string{in, ""}},
		{"missing input file", []string{filepath.Join(dir, "missing.sigma"), filepath.Join(dir, "out.png")}},
		{"bad colors", []string{"--colors", "1000", in, filepath.Join(dir, "out.sigma")}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := runApp(t, table.args...)
			assert.Equal(t, 1, exitCode(t, err))
		})
	}
}

func TestConvert(t *testing.T) {
	tables := []struct {
		name       string
		args       []string
		compressed bool
	}{
		{"default", nil, true},
		{"trailing flag", []string{"--compress"}, false},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			dir := t.TempDir()
			in := testPNG(t, dir)
			mid := filepath.Join(dir, "mid.sigma")
			out := filepath.Join(dir, "out.png")

			stderr, err := runApp(t, append([]string{in, mid}, table.args...)...)
			require.NoError(t, err)
			assert.Contains(t, stderr, "Converted the PNG file to sigma")

			b, err := os.ReadFile(mid)
			require.NoError(t, err)
			assert.Equal(t, table.compressed, sigmaimage.IsCompressed(b))

			stderr, err = runApp(t, mid, out)
			require.NoError(t, err)
			assert.Contains(t, stderr, "Converted the sigma file to PNG")

			m, err := sigma.LoadPNG(out)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 3, 2), m.Bounds())
			assert.Equal(t, color.NRGBA{1, 2, 3, 255}, m.NRGBAAt(0, 0))
			assert.Equal(t, color.NRGBA{4, 5, 6, 7}, m.NRGBAAt(2, 1))
			assert.Equal(t, color.NRGBA{}, m.NRGBAAt(1, 0))
		})
	}
}

func TestLeadingCompressFlag(t *testing.T) {
	dir := t.TempDir()
	in := testPNG(t, dir)
	mid := filepath.Join(dir, "mid.sigma")

	_, err := runApp(t, "--compress", in, mid)
	require.NoError(t, err)

	b, err := os.ReadFile(mid)
	require.NoError(t, err)
	assert.Equal(t, "2 3\n[1,2,3,255,0,0],[4,5,6,7,2,1]", string(b))
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	in := testPNG(t, dir)
	mid := filepath.Join(dir, "mid.sigma")
	config := filepath.Join(dir, "sigma.toml")
	require.NoError(t, os.WriteFile(config, []byte("[convert]\ncompress = false\n"), 0644))

	stderr, err := runApp(t, "--config", config, in, mid)
	require.NoError(t, err)
	assert.Contains(t, stderr, "recommended to keep compression enabled")

	b, err := os.ReadFile(mid)
	require.NoError(t, err)
	assert.False(t, sigmaimage.IsCompressed(b))
}

func TestStructuralError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.sigma")
	require.NoError(t, os.WriteFile(in, []byte("1\n[1,2,3,4,0,0]"), 0644))

	_, err := runApp(t, in, filepath.Join(dir, "out.png"))
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), sigmaimage.ErrInvalidDimensions.Error())
}

func TestTooLargeError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "huge.sigma")
	out := filepath.Join(dir, "out.png")
	require.NoError(t, os.WriteFile(in, []byte("4294967295 4294967295\n[1,2,3,4,0,0]"), 0644))

	_, err := runApp(t, in, out)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), sigmaimage.ErrTooLarge.Error())
	assert.NoFileExists(t, out)
}
