package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, DefaultLibraryFile, cfg.Library.File)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, DefaultAuditDir, cfg.Audit.Dir)
	assert.Equal(t, DefaultExportDir, cfg.Export.Dir)
	assert.False(t, cfg.Global.Verbose)
}

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("LIBRARY_FILE", "/data/books.json")
	t.Setenv("AUDIT_ENABLED", "true")
	t.Setenv("AUDIT_DIR", "/data/audit")
	t.Setenv("EXPORT_DIR", "/vault/Library")
	t.Setenv("VERBOSE", "1")

	cfg := NewConfig()

	assert.Equal(t, "/data/books.json", cfg.Library.File)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, "/data/audit", cfg.Audit.Dir)
	assert.Equal(t, "/vault/Library", cfg.Export.Dir)
	assert.True(t, cfg.Global.Verbose)
}
