// Package interfaces documents the extension points of the application.
//
// # Interfaces
//
//   - library.Recorder: receives every successful change to the library
//     (internal/library/library.go). Implemented by audit.Auditor, which
//     journals changes as JSON files.
//   - exporters.BookExporter: writes the catalogue somewhere else
//     (internal/exporters/generic.go). Implemented by exporters.MarkdownExporter.
//
// # Adding a New Exporter
//
//  1. Implement BookExporter in internal/exporters/
//
//     type CSVExporter struct {
//         Path string
//     }
//
//     func (e *CSVExporter) Export(books []entities.Book) (ExportResult, error)
//
//  2. Add a compile-time check to checks.go
//
//  3. Pass it to cli.NewShell in entrypoint.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
