package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainHeadless(t *testing.T) {
	var out bytes.Buffer
	export := filepath.Join(t.TempDir(), "scene.yaml")
	code := Main([]string{"-headless", "-hz", "1000", "-ticks", "2", "-fixed-step", "-export", export, "-q"}, "exposure", &out)
	require.Equal(t, 0, code, out.String())

	b, err := os.ReadFile(export)
	require.NoError(t, err)
	assert.Contains(t, string(b), "variant: exposure")
	assert.Contains(t, string(b), "ev100:")
}

func TestMainConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte("[headless]\nhz = 1000\nticks = 1\n[render]\nwidth = 32\nheight = 24\n"), 0o644))

	var out bytes.Buffer
	assert.Equal(t, 0, Main([]string{"-config", path, "-headless", "-v"}, "fog", &out), out.String())
	assert.Contains(t, out.String(), "width=32")
}

func TestMainErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, Main(nil, "nope", &out))
	assert.Contains(t, out.String(), "unknown scene")

	out.Reset()
	assert.Equal(t, 2, Main([]string{"-bogus"}, "fog", &out))

	out.Reset()
	assert.Equal(t, 1, Main([]string{"-headless", "-hz", "0"}, "fog", &out))
	assert.Contains(t, out.String(), "headless hz")

	out.Reset()
	assert.Equal(t, 1, Main([]string{"-headless", "-ticks", "1", "-hz", "1000", "-mode", "shaded"}, "fog", &out))
}

func TestMainVersion(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 0, Main([]string{"-version"}, "fog", &out))
	assert.Contains(t, out.String(), "fog dev")
}
