package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromModel_Defaults(t *testing.T) {
	cfg, err := FromModel(Model{})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.StallInterval)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.WorkerCount)
}

func TestFromModel_InvalidStallInterval(t *testing.T) {
	_, err := FromModel(Model{StallInterval: "not-a-duration"})
	assert.Error(t, err)
}

func TestFromModel_InvalidLogFormat(t *testing.T) {
	_, err := FromModel(Model{LogFormat: "xml"})
	assert.Error(t, err)
}

func TestHCLLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.hcl")
	contents := `
stall_interval   = "2s"
bridge_addr      = "ws://localhost:9000"
bridge_namespace = "/djc"
log_format       = "text"
log_level        = "debug"
worker_count     = 8
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.StallInterval)
	assert.Equal(t, "ws://localhost:9000", cfg.BridgeAddr)
	assert.Equal(t, "/djc", cfg.BridgeNamespace)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.WorkerCount)
}
