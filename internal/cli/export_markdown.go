package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/library"
)

// ExportMarkdownCommand exports the library file to markdown notes without
// starting the interactive shell. A non-empty AuditDir journals the export.
type ExportMarkdownCommand struct {
	LibraryFile string
	OutputDir   string
	AuditDir    string
	Output      io.Writer
}

func NewExportMarkdownCommand(cfg *config.Config) *ExportMarkdownCommand {
	cmd := &ExportMarkdownCommand{
		LibraryFile: cfg.Library.File,
		OutputDir:   cfg.Export.Dir,
		Output:      os.Stdout,
	}
	if cfg.Audit.Enabled {
		cmd.AuditDir = cfg.Audit.Dir
	}
	return cmd
}

func (cmd *ExportMarkdownCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export-markdown", flag.ContinueOnError)

	fs.StringVar(&cmd.LibraryFile, "file", cmd.LibraryFile, "Path to the library JSON file")
	fs.StringVar(&cmd.OutputDir, "output", cmd.OutputDir, "Directory for the exported markdown notes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export-markdown [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export every book in the library file as an Obsidian-compatible markdown note.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export-markdown -output ~/Obsidian/Library\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export-markdown -file ./library.json -output ./markdown\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.OutputDir == "" {
		fs.Usage()
		return fmt.Errorf("output directory is required")
	}

	return nil
}

func (cmd *ExportMarkdownCommand) Run() error {
	absDir, err := filepath.Abs(cmd.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	cmd.OutputDir = absDir

	var opts []library.Option
	if cmd.AuditDir != "" {
		opts = append(opts, library.WithRecorder(audit.NewAuditor(cmd.AuditDir)))
	}

	lib := library.New(opts...)
	msg, err := lib.Load(cmd.LibraryFile)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Output, msg)

	result, err := exporters.NewMarkdownExporter(cmd.OutputDir).Export(lib.Books())
	if err != nil {
		return fmt.Errorf("failed to export library: %w", err)
	}
	lib.RecordExport(fmt.Sprintf("%d books exported, %d failed", result.BooksProcessed, result.BooksFailed))

	fmt.Fprintf(cmd.Output, "Books exported: %d\n", result.BooksProcessed)
	fmt.Fprintf(cmd.Output, "Books failed: %d\n", result.BooksFailed)
	fmt.Fprintf(cmd.Output, "Output directory: %s\n", cmd.OutputDir)

	return nil
}
