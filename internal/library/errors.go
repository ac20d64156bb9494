package library

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Sentinels for errors.Is. Each typed error below matches exactly one of them.
var (
	ErrDuplicateBook   = errors.New("duplicate book")
	ErrBookNotFound    = errors.New("book not found")
	ErrNoSearchResults = errors.New("no books match search")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrLibraryFile     = errors.New("library file error")
	ErrInvalidBook     = errors.New("invalid book")
	ErrIDsExhausted    = errors.New("no book id left")
)

// DuplicateBookError is returned when a book with the same title and author
// is already in the library.
type DuplicateBookError struct {
	Title  string
	Author string
	Year   int
}

func (e *DuplicateBookError) Error() string {
	return fmt.Sprintf("DuplicateBookError: Book '%s' by %s (%d) already exists in the library.",
		e.Title, e.Author, e.Year)
}

func (e *DuplicateBookError) Is(target error) bool { return target == ErrDuplicateBook }

// BookNotFoundError is returned when no book carries the requested id.
type BookNotFoundError struct {
	BookID int
}

func (e *BookNotFoundError) Error() string {
	return fmt.Sprintf("BookNotFoundError: Book with ID %d not found.", e.BookID)
}

func (e *BookNotFoundError) Is(target error) bool { return target == ErrBookNotFound }

// BookSearchError is returned when a search matches nothing.
type BookSearchError struct {
	SearchTerm string
}

func (e *BookSearchError) Error() string {
	return fmt.Sprintf("BookSearchError: No books found matching the search term '%s'.", e.SearchTerm)
}

func (e *BookSearchError) Is(target error) bool { return target == ErrNoSearchResults }

type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	valid := make([]string, 0, 2)
	for _, s := range entities.ValidStatuses() {
		valid = append(valid, fmt.Sprintf("'%s'", s))
	}
	return fmt.Sprintf("InvalidStatusError: Invalid status: '%s'. Valid statuses are %s.",
		e.Status, strings.Join(valid, " and "))
}

func (e *InvalidStatusError) Is(target error) bool { return target == ErrInvalidStatus }

// LibraryFileError wraps an I/O or decoding failure on the library file.
type LibraryFileError struct {
	Path string
	Err  error
}

func (e *LibraryFileError) Error() string {
	return fmt.Sprintf("LibraryFileError: File '%s': %v", e.Path, e.Err)
}

func (e *LibraryFileError) Unwrap() error { return e.Err }

func (e *LibraryFileError) Is(target error) bool { return target == ErrLibraryFile }

// ValidationError describes the first field of a record that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ValidationError: %s %s.", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidBook }

// IDsExhaustedError is returned by AddBook when the highest id in the library
// is already the largest representable one.
type IDsExhaustedError struct {
	MaxID int
}

func (e *IDsExhaustedError) Error() string {
	return fmt.Sprintf("IDsExhaustedError: Book ID %d is the largest possible ID; no new ID can be assigned.", e.MaxID)
}

func (e *IDsExhaustedError) Is(target error) bool { return target == ErrIDsExhausted }
