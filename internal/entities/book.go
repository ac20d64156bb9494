package entities

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusAvailable  Status = "available"
	StatusCheckedOut Status = "checked_out"
)

// legacyCheckedOut is the spelling written by older library files and typed
// by users out of habit. It is normalised to StatusCheckedOut.
const legacyCheckedOut = "checked out"

// ValidStatuses returns the recognised statuses in display order.
func ValidStatuses() []Status {
	return []Status{StatusAvailable, StatusCheckedOut}
}

// ParseStatus normalises user or file input into a Status.
// The second return value is false when the input is not a recognised status.
func ParseStatus(raw string) (Status, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch normalized {
	case string(StatusAvailable):
		return StatusAvailable, true
	case string(StatusCheckedOut), legacyCheckedOut:
		return StatusCheckedOut, true
	default:
		return "", false
	}
}

func (s Status) IsValid() bool {
	return s == StatusAvailable || s == StatusCheckedOut
}

type Book struct {
	BookID int    `json:"book_id" validate:"gt=0"`
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Year   int    `json:"year"`
	Status Status `json:"status" validate:"oneof=available checked_out"`
}

// NewBook creates an available book with the given identity.
func NewBook(id int, title, author string, year int) Book {
	return Book{
		BookID: id,
		Title:  title,
		Author: author,
		Year:   year,
		Status: StatusAvailable,
	}
}

// String renders the book for listings and search results.
func (b Book) String() string {
	return fmt.Sprintf("Book(id=%d, title='%s', author='%s', year=%d, status='%s')",
		b.BookID, b.Title, b.Author, b.Year, b.Status)
}

// Matches reports whether term is part of the title or author, or equals the
// publication year written in decimal.
func (b Book) Matches(term string) bool {
	return strings.Contains(b.Title, term) ||
		strings.Contains(b.Author, term) ||
		term == fmt.Sprintf("%d", b.Year)
}

// SameWork reports whether other describes the same title by the same author.
func (b Book) SameWork(other Book) bool {
	return b.Title == other.Title && b.Author == other.Author
}
