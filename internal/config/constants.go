package config

// Default paths
const (
	// DefaultLibraryFile is where the library is loaded from and saved to
	DefaultLibraryFile = "./library.json"

	DefaultAuditDir  = "./audit"
	DefaultExportDir = "./markdown"
)
