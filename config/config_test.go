package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetYaml(t *testing.T) {
	path := writeConfig(t, `
storage_dir: /tmp/carts
segment_threshold: 500
max_segments: 5
sync_on_write: false
`)

	cfg, err := getYaml(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/carts", cfg.StorageDir)
	assert.Equal(t, 500, cfg.SegmentThreshold)
	assert.Equal(t, 5, cfg.MaxSegments)
	assert.False(t, cfg.SyncOnWrite)
	assert.False(t, cfg.Ephemeral)
}

func TestGetYaml_Defaults(t *testing.T) {
	cfg, err := getYaml(writeConfig(t, "ephemeral: true\n"))
	require.NoError(t, err)

	assert.Equal(t, defaultStorageDir, cfg.StorageDir)
	assert.Equal(t, defaultSegmentThreshold, cfg.SegmentThreshold)
	assert.Equal(t, defaultMaxSegments, cfg.MaxSegments)
	assert.True(t, cfg.SyncOnWrite)
	assert.True(t, cfg.Ephemeral)
}

func TestGetYaml_Missing(t *testing.T) {
	_, err := getYaml(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetYaml_Malformed(t *testing.T) {
	_, err := getYaml(writeConfig(t, "storage_dir: [broken"))
	assert.Error(t, err)
}
