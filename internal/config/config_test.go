package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathlength.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(`
width: 256
units:
  vertical: 2.5
snapshots:
  dir: /srv/dem
  format: geotiff
concurrency: 2
`), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)

	expected := Default()
	expected.Width = 256
	expected.Units.Vertical = 2.5
	expected.Snapshots.Dir = "/srv/dem"
	expected.Snapshots.Format = "geotiff"
	expected.Concurrency = 2
	assert.Equal(t, expected, cfg)
}

func TestLoad_PixelScaleUnits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathlength.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("units:\n  horizontal: 0\n"), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Units.Horizontal)
	assert.Equal(t, 11.0, cfg.Units.Vertical)
}

func TestLoad_Invalid(t *testing.T) {
	for _, tc := range []struct {
		name string
		yaml string
	}{
		{name: "syntax", yaml: "width: [\n"},
		{name: "width", yaml: "width: 0\n"},
		{name: "units", yaml: "units:\n  horizontal: -1\n"},
		{name: "format", yaml: "snapshots:\n  format: png\n"},
		{name: "concurrency", yaml: "concurrency: 0\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pathlength.yaml")
			assert.NoError(t, os.WriteFile(path, []byte(tc.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
