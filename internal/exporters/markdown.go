package exporters

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/utils"
)

// MarkdownExporter writes one Obsidian-compatible note per book, grouped in
// a folder per status, plus an index note listing the whole catalogue.
type MarkdownExporter struct {
	ExportDir     string
	IndexFileName string
	now           func() time.Time
}

func NewMarkdownExporter(exportDir string) *MarkdownExporter {
	return &MarkdownExporter{
		ExportDir:     exportDir,
		IndexFileName: "index.md",
		now:           time.Now,
	}
}

// BookFileName is the note name used for book, relative to its status folder.
func BookFileName(book entities.Book) string {
	return utils.SanitizeFilename(fmt.Sprintf("%s - %s", book.Title, book.Author)) + ".md"
}

// notePaths assigns every book a path relative to the export directory. When
// two books sanitise to the same name in one folder, the later ones get their
// id appended. Names are compared case-insensitively.
func notePaths(books []entities.Book) map[int]string {
	paths := make(map[int]string, len(books))
	taken := make(map[string]bool, len(books))
	for _, book := range books {
		name := BookFileName(book)
		path := filepath.Join(string(book.Status), name)
		base := strings.TrimSuffix(name, ".md")
		for n := 0; taken[strings.ToLower(path)]; n++ {
			suffix := fmt.Sprintf("%d", book.BookID)
			if n > 0 {
				suffix = fmt.Sprintf("%d-%d", book.BookID, n)
			}
			path = filepath.Join(string(book.Status), fmt.Sprintf("%s (%s).md", base, suffix))
		}
		taken[strings.ToLower(path)] = true
		paths[book.BookID] = path
	}
	return paths
}

func GenerateMarkdown(book entities.Book, exportedAt time.Time) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: library_book\n")
	fmt.Fprintf(&builder, "exported_at: %s\n", exportedAt.Format("2006-01-02"))
	fmt.Fprintf(&builder, "book_id: %d\n", book.BookID)
	fmt.Fprintf(&builder, "title: \"%s\"\n", escapeYAMLString(book.Title))
	fmt.Fprintf(&builder, "author: \"%s\"\n", escapeYAMLString(book.Author))
	fmt.Fprintf(&builder, "year: %d\n", book.Year)
	fmt.Fprintf(&builder, "status: %s\n", book.Status)
	fmt.Fprintf(&builder, "tags: [books, %s]\n", book.Status)
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "# %s\n\n", book.Title)
	fmt.Fprintf(&builder, "- **Author:** %s\n", book.Author)
	fmt.Fprintf(&builder, "- **Year:** %d\n", book.Year)
	fmt.Fprintf(&builder, "- **Status:** %s\n", book.Status)

	return builder.String()
}

// GenerateIndex renders the catalogue table linking every exported note.
func GenerateIndex(books []entities.Book) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "# Library\n\n")
	if len(books) == 0 {
		fmt.Fprintf(&builder, "No books in the library.\n")
		return builder.String()
	}

	fmt.Fprintf(&builder, "| ID | Title | Author | Year | Status |\n")
	fmt.Fprintf(&builder, "|---:|---|---|---:|---|\n")
	paths := notePaths(books)
	for _, book := range books {
		link := filepath.ToSlash(paths[book.BookID])
		fmt.Fprintf(&builder, "| %d | [%s](%s) | %s | %d | %s |\n",
			book.BookID,
			escapeTableCell(book.Title),
			strings.ReplaceAll(link, " ", "%20"),
			escapeTableCell(book.Author),
			book.Year,
			book.Status)
	}
	return builder.String()
}

// Export writes every book. A book that cannot be written is logged and
// counted as failed; the remaining books are still exported.
func (exporter *MarkdownExporter) Export(books []entities.Book) (ExportResult, error) {
	result := ExportResult{}

	if err := os.MkdirAll(exporter.ExportDir, 0755); err != nil {
		return result, fmt.Errorf("failed to create export directory: %w", err)
	}

	exportedAt := exporter.now()
	paths := notePaths(books)
	for _, book := range books {
		path, err := exporter.exportBook(book, paths[book.BookID], exportedAt)
		if err != nil {
			log.Printf("Failed to export book %d '%s': %v", book.BookID, book.Title, err)
			result.BooksFailed++
			continue
		}
		log.Printf("Exported book %d to %s", book.BookID, path)
		result.BooksProcessed++
	}

	indexPath := filepath.Join(exporter.ExportDir, exporter.IndexFileName)
	if err := os.WriteFile(indexPath, []byte(GenerateIndex(books)), 0644); err != nil {
		return result, fmt.Errorf("failed to write index file: %w", err)
	}

	return result, nil
}

func (exporter *MarkdownExporter) exportBook(book entities.Book, notePath string, exportedAt time.Time) (string, error) {
	outputPath := filepath.Join(exporter.ExportDir, notePath)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create status directory: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(GenerateMarkdown(book, exportedAt)), 0644); err != nil {
		return "", err
	}
	return outputPath, nil
}

var yamlStringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// escapeYAMLString escapes s for use inside a double-quoted YAML scalar.
func escapeYAMLString(s string) string {
	return yamlStringEscaper.Replace(s)
}

func escapeTableCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
