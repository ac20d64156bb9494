package entrypoint

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/cli"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/library"
)

// ConfigureLogging routes operational log output to stderr only in verbose
// mode, so the interactive transcript stays readable.
func ConfigureLogging(cfg *config.Config) {
	if cfg.Global.Verbose {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		return
	}
	log.SetOutput(io.Discard)
}

// NewLibrary builds the library described by cfg: auto-saved to the library
// file and, when enabled, journalled to the audit directory.
func NewLibrary(cfg *config.Config) *library.Library {
	opts := []library.Option{library.WithAutoSave(cfg.Library.File)}
	if cfg.Audit.Enabled {
		log.Printf("Audit journal enabled in %s", cfg.Audit.Dir)
		opts = append(opts, library.WithRecorder(audit.NewAuditor(cfg.Audit.Dir)))
	}
	return library.New(opts...)
}

// Run loads the library file and runs the interactive shell on in and out
// until the user quits.
func Run(cfg *config.Config, version string, in io.Reader, out io.Writer) error {
	log.Printf("Starting bookshelf %s with library file %s", version, cfg.Library.File)

	lib := NewLibrary(cfg)
	msg, err := lib.Load(cfg.Library.File)
	if err != nil {
		return fmt.Errorf("failed to load library: %w", err)
	}
	fmt.Fprintln(out, msg)

	shell := cli.NewShell(lib, exporters.NewMarkdownExporter(cfg.Export.Dir), in, out)
	return shell.Run()
}
