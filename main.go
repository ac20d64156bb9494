package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/bookshelf/internal/cli"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.ConfigureLogging(cfg)

	// If no arguments or "shell" command, run the interactive shell
	if len(os.Args) < 2 || os.Args[1] == "shell" {
		if err := entrypoint.Run(cfg, Version, os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "export-markdown":
		cmd := cli.NewExportMarkdownCommand(cfg)
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "version":
		fmt.Printf("bookshelf %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  shell            Manage the library interactively (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  export-markdown  Export the library file to markdown notes\n")
	fmt.Fprintf(os.Stderr, "  version          Print version information\n")
	fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
	fmt.Fprintf(os.Stderr, "  LIBRARY_FILE   Library JSON file (default %s)\n", config.DefaultLibraryFile)
	fmt.Fprintf(os.Stderr, "  AUDIT_ENABLED  Journal every change to AUDIT_DIR (default false)\n")
	fmt.Fprintf(os.Stderr, "  AUDIT_DIR      Journal directory (default %s)\n", config.DefaultAuditDir)
	fmt.Fprintf(os.Stderr, "  EXPORT_DIR     Markdown export directory (default %s)\n", config.DefaultExportDir)
	fmt.Fprintf(os.Stderr, "  VERBOSE        Log operations to stderr (default false)\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
