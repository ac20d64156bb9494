package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/library"
)

type stubExporter struct {
	exported []entities.Book
	result   exporters.ExportResult
	err      error
}

func (e *stubExporter) Export(books []entities.Book) (exporters.ExportResult, error) {
	e.exported = books
	return e.result, e.err
}

type changeLog struct {
	changes []library.Change
}

func (c *changeLog) Record(change library.Change) error {
	c.changes = append(c.changes, change)
	return nil
}

func runShell(t *testing.T, lib *library.Library, exporter exporters.BookExporter, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	input := strings.Join(lines, "\n") + "\n"

	err := NewShell(lib, exporter, strings.NewReader(input), &out).Run()
	require.NoError(t, err)
	return out.String()
}

func TestShellMenu(t *testing.T) {
	t.Run("shows every key", func(t *testing.T) {
		out := runShell(t, library.New(), nil, "q")

		assert.Contains(t, out, "Welcome to your library!")
		for _, line := range []string{
			"'a' - Add a book",
			"'d' - Delete a book",
			"'e' - Edit status",
			"'s' - Find a book",
			"'l' - List of all books",
			"'q' - Quit",
		} {
			assert.Contains(t, out, line)
		}
		assert.NotContains(t, out, "'x'")
		assert.True(t, strings.HasSuffix(out, "Quitting the application...\n"))
	})

	t.Run("export key is offered with an exporter", func(t *testing.T) {
		out := runShell(t, library.New(), &stubExporter{}, "q")
		assert.Contains(t, out, "'x' - Export to markdown")
	})

	t.Run("invalid choice is reported and the loop continues", func(t *testing.T) {
		out := runShell(t, library.New(), nil, "z", "l", "q")

		assert.Contains(t, out, "InvalidChoiceError: Invalid menu choice: 'z'")
		assert.Contains(t, out, library.EmptyLibraryMessage)
	})

	t.Run("keys are case insensitive", func(t *testing.T) {
		out := runShell(t, library.New(), nil, " L ", "Q")
		assert.Contains(t, out, library.EmptyLibraryMessage)
		assert.Contains(t, out, "Quitting the application...")
	})

	t.Run("end of input quits", func(t *testing.T) {
		var out bytes.Buffer
		err := NewShell(library.New(), nil, strings.NewReader(""), &out).Run()

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Quitting the application...")
	})

	t.Run("end of input inside an action quits", func(t *testing.T) {
		var out bytes.Buffer
		lib := library.New()
		err := NewShell(lib, nil, strings.NewReader("a\nDune\n"), &out).Run()

		require.NoError(t, err)
		assert.Equal(t, 0, lib.Len())
		assert.Contains(t, out.String(), "Quitting the application...")
	})
}

func TestShellResolve(t *testing.T) {
	s := NewShell(library.New(), &stubExporter{}, strings.NewReader(""), &bytes.Buffer{})

	tests := map[string]Command{
		"a": CommandAdd,
		"d": CommandDelete,
		"e": CommandEditStatus,
		"s": CommandFind,
		"l": CommandList,
		"x": CommandExport,
		"q": CommandQuit,
	}
	for key, expected := range tests {
		entry, err := s.resolve(key)
		require.NoError(t, err, key)
		assert.Equal(t, expected, entry.Command, key)
	}

	_, err := s.resolve("?")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidChoice))

	var choiceErr *InvalidChoiceError
	require.True(t, errors.As(err, &choiceErr))
	assert.Equal(t, "?", choiceErr.Choice)
}

func TestShellAddBook(t *testing.T) {
	t.Run("adds and reports the id", func(t *testing.T) {
		lib := library.New()
		out := runShell(t, lib, nil, "a", "The Great Gatsby", "F. Scott Fitzgerald", "1925", "q")

		assert.Contains(t, out, "Book 'The Great Gatsby' by F. Scott Fitzgerald added with ID 1.")
		assert.Equal(t, 1, lib.Len())
	})

	t.Run("duplicate is reported", func(t *testing.T) {
		lib := library.New()
		out := runShell(t, lib, nil,
			"a", "The Great Gatsby", "F. Scott Fitzgerald", "1925",
			"a", "The Great Gatsby", "F. Scott Fitzgerald", "1925",
			"q")

		assert.Contains(t, out, "DuplicateBookError: Book 'The Great Gatsby' by F. Scott Fitzgerald (1925) already exists in the library.")
		assert.Equal(t, 1, lib.Len())
	})

	t.Run("malformed year never reaches the library", func(t *testing.T) {
		lib := library.New()
		out := runShell(t, lib, nil, "a", "Dune", "Frank Herbert", "nineteen", "q")

		assert.Contains(t, out, "Invalid input for year. Please enter a valid number.")
		assert.Equal(t, 0, lib.Len())
	})
}

func TestShellDeleteBook(t *testing.T) {
	lib := library.New()
	_, err := lib.AddBook("Dune", "Frank Herbert", 1965)
	require.NoError(t, err)

	out := runShell(t, lib, nil, "d", "abc", "d", "7", "d", "1", "q")

	assert.Contains(t, out, "Invalid input for book ID. Please enter a valid number.")
	assert.Contains(t, out, "BookNotFoundError: Book with ID 7 not found.")
	assert.Contains(t, out, "Book with ID 1 has been deleted.")
	assert.Equal(t, 0, lib.Len())
}

func TestShellEditStatus(t *testing.T) {
	lib := library.New()
	_, err := lib.AddBook("Dune", "Frank Herbert", 1965)
	require.NoError(t, err)

	out := runShell(t, lib, nil,
		"e", "1", "lost",
		"e", "9", "available",
		"e", "1", "checked_out",
		"q")

	assert.Contains(t, out, "InvalidStatusError: Invalid status: 'lost'.")
	assert.Contains(t, out, "BookNotFoundError: Book with ID 9 not found.")
	assert.Contains(t, out, "Status of book with ID 1 has been updated to 'checked_out'.")

	book, err := lib.Book(1)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCheckedOut, book.Status)
}

func TestShellFindAndList(t *testing.T) {
	lib := library.New()
	_, err := lib.AddBook("1984", "George Orwell", 1949)
	require.NoError(t, err)
	_, err = lib.AddBook("Animal Farm", "George Orwell", 1945)
	require.NoError(t, err)

	out := runShell(t, lib, nil, "s", "Orwell", "s", "Tolkien", "l", "q")

	assert.Equal(t, 2, strings.Count(out,
		"Book(id=1, title='1984', author='George Orwell', year=1949, status='available')"))
	assert.Equal(t, 2, strings.Count(out,
		"Book(id=2, title='Animal Farm', author='George Orwell', year=1945, status='available')"))
	assert.Contains(t, out, "BookSearchError: No books found matching the search term 'Tolkien'.")
}

func TestShellExport(t *testing.T) {
	t.Run("exports the current books", func(t *testing.T) {
		lib := library.New()
		_, err := lib.AddBook("Dune", "Frank Herbert", 1965)
		require.NoError(t, err)
		exporter := &stubExporter{result: exporters.ExportResult{BooksProcessed: 1}}

		out := runShell(t, lib, exporter, "x", "q")

		assert.Contains(t, out, "Exported 1 books to markdown (0 failed).")
		require.Len(t, exporter.exported, 1)
		assert.Equal(t, "Dune", exporter.exported[0].Title)
	})

	t.Run("successful export is recorded", func(t *testing.T) {
		changes := &changeLog{}
		lib := library.New(library.WithRecorder(changes))
		exporter := &stubExporter{result: exporters.ExportResult{BooksProcessed: 2, BooksFailed: 1}}

		runShell(t, lib, exporter, "x", "q")

		require.Len(t, changes.changes, 1)
		assert.Equal(t, library.ActionExport, changes.changes[0].Action)
		assert.Equal(t, "2 books exported, 1 failed", changes.changes[0].Detail)
	})

	t.Run("reports export failures", func(t *testing.T) {
		exporter := &stubExporter{err: errors.New("disk full")}

		out := runShell(t, library.New(), exporter, "x", "q")

		assert.Contains(t, out, "Export failed: disk full")
	})
}

func TestShellAutoSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	lib := library.New(library.WithAutoSave(path))

	runShell(t, lib, nil, "a", "Dune", "Frank Herbert", "1965", "q")

	restored := library.New()
	msg, err := restored.Load(path)
	require.NoError(t, err)
	assert.Contains(t, msg, "Library loaded from")
	assert.Equal(t, lib.Books(), restored.Books())
}

func TestShellLongInput(t *testing.T) {
	lib := library.New()
	title := strings.Repeat("x", 70000)

	out := runShell(t, lib, nil, "a", title, "Author", "1999", "l", "q")

	require.Equal(t, 1, lib.Len())
	book, err := lib.Book(1)
	require.NoError(t, err)
	assert.Equal(t, title, book.Title)
	assert.Contains(t, out, "added with ID 1.")
	assert.Equal(t, 1, strings.Count(out, "Quitting the application..."))
	assert.True(t, strings.HasSuffix(out, "Quitting the application...\n"))
}

func TestShellLastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	lib := library.New()

	err := NewShell(lib, nil, strings.NewReader("a\nDune\nFrank Herbert\n1965"), &out).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, lib.Len())
	assert.Contains(t, out.String(), "Book 'Dune' by Frank Herbert added with ID 1.")
	assert.Contains(t, out.String(), "Quitting the application...")
}
