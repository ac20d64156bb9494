package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		Library
		Audit
		Export
		Global
	}

	Library struct {
		File string // JSON file the library is loaded from and auto-saved to
	}
	Audit struct {
		Enabled bool
		Dir     string
	}
	Export struct {
		Dir string // Directory for markdown exports
	}
	Global struct {
		Verbose bool // Print operational log messages to stderr
	}
)

func NewConfig() *Config {
	return newConfig(viper.New())
}

func newConfig(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("library_file", DefaultLibraryFile)
	v.SetDefault("audit_enabled", false)
	v.SetDefault("audit_dir", DefaultAuditDir)
	v.SetDefault("export_dir", DefaultExportDir)
	v.SetDefault("verbose", false)

	return &Config{
		Library: Library{
			File: v.GetString("LIBRARY_FILE"),
		},
		Audit: Audit{
			Enabled: v.GetBool("AUDIT_ENABLED"),
			Dir:     v.GetString("AUDIT_DIR"),
		},
		Export: Export{
			Dir: v.GetString("EXPORT_DIR"),
		},
		Global: Global{
			Verbose: v.GetBool("VERBOSE"),
		},
	}
}
