// Package storage reads and writes the library file: a JSON array of book
// records with the keys book_id, title, author, year and status.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/mrlokans/bookshelf/internal/entities"
)

const indent = "    "

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadBooks decodes the library file at path.
// A missing file yields an error satisfying errors.Is(err, os.ErrNotExist).
func LoadBooks(path string) ([]entities.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeBooks(f)
}

var errEmptyDocument = errors.New("library document is empty")

// DecodeBooks reads a library document from r. The whole input must be one
// JSON array; anything after it is an error. A null document is an empty
// library.
func DecodeBooks(r io.Reader) ([]entities.Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read library document: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyDocument
	}

	var books []entities.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("failed to decode library document: %w", err)
	}
	if books == nil {
		books = []entities.Book{}
	}
	return books, nil
}

// EncodeBooks writes books to w as an indented JSON array.
func EncodeBooks(w io.Writer, books []entities.Book) error {
	if books == nil {
		books = []entities.Book{}
	}
	data, err := json.MarshalIndent(books, "", indent)
	if err != nil {
		return fmt.Errorf("failed to encode library document: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write library document: %w", err)
	}
	return nil
}

// SaveBooks replaces the file at path with the encoded books.
// The document is written to path+".tmp", synced and renamed into place, so a
// failed save leaves the previous file untouched.
func SaveBooks(path string, books []entities.Book) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := EncodeBooks(f, books); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to sync library file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close library file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
