package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func sampleBooks() []entities.Book {
	checkedOut := entities.NewBook(2, "1984", "George Orwell", 1949)
	checkedOut.Status = entities.StatusCheckedOut

	return []entities.Book{
		entities.NewBook(1, "The Great Gatsby", "F. Scott Fitzgerald", 1925),
		checkedOut,
	}
}

func TestSaveAndLoadBooks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	books := sampleBooks()

	require.NoError(t, SaveBooks(path, books))

	loaded, err := LoadBooks(path)
	require.NoError(t, err)
	assert.Equal(t, books, loaded)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must not be left behind")
}

func TestSaveBooksWritesArrayDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	require.NoError(t, SaveBooks(path, sampleBooks()[:1]))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(raw)
	assert.True(t, strings.HasPrefix(content, "["), "document must be a bare array")
	assert.Contains(t, content, `"book_id": 1`)
	assert.Contains(t, content, `"title": "The Great Gatsby"`)
	assert.Contains(t, content, `"author": "F. Scott Fitzgerald"`)
	assert.Contains(t, content, `"year": 1925`)
	assert.Contains(t, content, `"status": "available"`)
}

func TestSaveBooksEmptyLibrary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeBooks(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestSaveBooksReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	require.NoError(t, SaveBooks(path, sampleBooks()))
	require.NoError(t, SaveBooks(path, sampleBooks()[:1]))

	loaded, err := LoadBooks(path)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestSaveBooksMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "library.json")

	err := SaveBooks(path, sampleBooks())
	assert.Error(t, err)
}

func TestLoadBooksMissingFile(t *testing.T) {
	_, err := LoadBooks(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDecodeBooks(t *testing.T) {
	t.Run("null document is an empty library", func(t *testing.T) {
		books, err := DecodeBooks(strings.NewReader("null"))
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		doc := `[{"book_id": 4, "title": "Dune", "author": "Frank Herbert", "year": 1965, "status": "available", "shelf": "B"}]`

		books, err := DecodeBooks(strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, 4, books[0].BookID)
		assert.Equal(t, "Dune", books[0].Title)
	})

	t.Run("malformed document fails", func(t *testing.T) {
		_, err := DecodeBooks(strings.NewReader(`[{"book_id": `))
		assert.Error(t, err)
	})

	t.Run("trailing garbage fails", func(t *testing.T) {
		doc := `[{"book_id": 1, "title": "Dune", "author": "Frank Herbert", "year": 1965, "status": "available"}] this is not json {{{`

		_, err := DecodeBooks(strings.NewReader(doc))
		assert.Error(t, err)
	})

	t.Run("concatenated arrays fail", func(t *testing.T) {
		_, err := DecodeBooks(strings.NewReader(`[][{"book_id": 2}]`))
		assert.Error(t, err)
	})

	t.Run("trailing whitespace is allowed", func(t *testing.T) {
		books, err := DecodeBooks(strings.NewReader("[]\n\n  "))
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("empty document fails", func(t *testing.T) {
		_, err := DecodeBooks(strings.NewReader(" \n"))
		assert.ErrorIs(t, err, errEmptyDocument)
	})

	t.Run("object document fails", func(t *testing.T) {
		_, err := DecodeBooks(strings.NewReader(`{"books_in_library": []}`))
		assert.Error(t, err)
	})
}
