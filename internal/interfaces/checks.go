package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/library"
)

// Recorder implementations
var _ library.Recorder = (*audit.Auditor)(nil)

// BookExporter implementations
var _ exporters.BookExporter = (*exporters.MarkdownExporter)(nil)
