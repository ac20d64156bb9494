// Package library holds the in-memory book collection and its invariants:
// unique (title, author) pairs, ids above every existing id, and statuses
// limited to the recognised values. It persists itself to a JSON file through
// the storage package.
package library

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/storage"
)

// EmptyLibraryMessage is what ListBooks reports when there is nothing to list.
const EmptyLibraryMessage = "No books in the library."

type Action string

const (
	ActionAdd        Action = "add"
	ActionDelete     Action = "delete"
	ActionEditStatus Action = "edit_status"
	ActionLoad       Action = "load"
	ActionExport     Action = "export"
)

// Change describes one successful operation on the library.
type Change struct {
	Action Action
	BookID int
	Book   entities.Book
	Detail string
}

// Recorder receives every successful change. Its errors are logged and never
// fail the operation that produced the change.
type Recorder interface {
	Record(change Change) error
}

type Option func(*Library)

// WithAutoSave makes every successful mutation save the library to path.
func WithAutoSave(path string) Option {
	return func(l *Library) {
		l.savePath = path
	}
}

func WithRecorder(r Recorder) Option {
	return func(l *Library) {
		l.recorder = r
	}
}

type Library struct {
	books    []entities.Book
	savePath string
	recorder Recorder
}

// New creates an empty library.
func New(opts ...Option) *Library {
	l := &Library{books: []entities.Book{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddBook appends a new available book and returns a confirmation naming the
// assigned id. The id is one above the highest id currently in the library.
func (l *Library) AddBook(title, author string, year int) (string, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	id, err := l.nextID()
	if err != nil {
		return "", err
	}

	book := entities.NewBook(id, title, author, year)
	if err := validateBook(book); err != nil {
		return "", err
	}
	for _, existing := range l.books {
		if existing.SameWork(book) {
			return "", &DuplicateBookError{Title: title, Author: author, Year: year}
		}
	}

	l.books = append(l.books, book)

	msg := fmt.Sprintf("Book '%s' by %s added with ID %d.", title, author, book.BookID)
	return l.commit(Change{Action: ActionAdd, BookID: book.BookID, Book: book}, msg)
}

// DeleteBook removes the book with the given id.
func (l *Library) DeleteBook(id int) (string, error) {
	idx, err := l.indexOf(id)
	if err != nil {
		return "", err
	}

	removed := l.books[idx]
	l.books = append(l.books[:idx], l.books[idx+1:]...)

	msg := fmt.Sprintf("Book with ID %d has been deleted.", id)
	return l.commit(Change{Action: ActionDelete, BookID: id, Book: removed}, msg)
}

// EditStatus sets the status of the book with the given id. The status is
// checked before the id, so an unrecognised status fails even for unknown ids.
func (l *Library) EditStatus(id int, status string) (string, error) {
	newStatus, ok := entities.ParseStatus(status)
	if !ok {
		return "", &InvalidStatusError{Status: status}
	}

	idx, err := l.indexOf(id)
	if err != nil {
		return "", err
	}

	previous := l.books[idx].Status
	l.books[idx].Status = newStatus

	msg := fmt.Sprintf("Status of book with ID %d has been updated to '%s'.", id, newStatus)
	change := Change{
		Action: ActionEditStatus,
		BookID: id,
		Book:   l.books[idx],
		Detail: fmt.Sprintf("%s -> %s", previous, newStatus),
	}
	return l.commit(change, msg)
}

// FindBooks returns books whose title or author contains term, or whose year
// equals term, in library order. It never returns an empty result without an
// error.
func (l *Library) FindBooks(term string) ([]entities.Book, error) {
	var found []entities.Book
	for _, book := range l.books {
		if book.Matches(term) {
			found = append(found, book)
		}
	}
	if len(found) == 0 {
		return nil, &BookSearchError{SearchTerm: term}
	}
	return found, nil
}

// ListBooks returns every book in insertion order. When the library is empty
// it returns nil and EmptyLibraryMessage instead.
func (l *Library) ListBooks() ([]entities.Book, string) {
	if len(l.books) == 0 {
		return nil, EmptyLibraryMessage
	}
	return l.Books(), ""
}

// Books returns a copy of the collection.
func (l *Library) Books() []entities.Book {
	out := make([]entities.Book, len(l.books))
	copy(out, l.books)
	return out
}

// Book returns a copy of the book with the given id.
func (l *Library) Book(id int) (entities.Book, error) {
	idx, err := l.indexOf(id)
	if err != nil {
		return entities.Book{}, err
	}
	return l.books[idx], nil
}

func (l *Library) Len() int {
	return len(l.books)
}

// Save writes the whole collection to path.
func (l *Library) Save(path string) (string, error) {
	if err := storage.SaveBooks(path, l.books); err != nil {
		return "", &LibraryFileError{Path: path, Err: err}
	}
	return fmt.Sprintf("Library saved to %s", path), nil
}

// Load replaces the collection with the contents of path. A missing file is
// not an error: the library is emptied and a message says so. On any other
// failure the current collection is kept.
func (l *Library) Load(path string) (string, error) {
	books, err := storage.LoadBooks(path)
	if errors.Is(err, os.ErrNotExist) {
		l.books = []entities.Book{}
		return fmt.Sprintf("No library file found at %s. Starting with an empty library.", path), nil
	}
	if err != nil {
		return "", &LibraryFileError{Path: path, Err: err}
	}

	if err := checkLoaded(books); err != nil {
		return "", &LibraryFileError{Path: path, Err: err}
	}

	l.books = books
	l.record(Change{Action: ActionLoad, Detail: fmt.Sprintf("%d books from %s", len(books), path)})
	return fmt.Sprintf("Library loaded from %s", path), nil
}

// RecordExport journals an export of the collection. Exports do not change
// the library, so nothing is saved.
func (l *Library) RecordExport(detail string) {
	l.record(Change{Action: ActionExport, Detail: detail})
}

// checkLoaded normalises statuses in place (missing means available) and
// enforces the same invariants AddBook does on records read from disk.
func checkLoaded(books []entities.Book) error {
	ids := make(map[int]struct{}, len(books))
	for i := range books {
		if books[i].Status == "" {
			books[i].Status = entities.StatusAvailable
		} else if status, ok := entities.ParseStatus(string(books[i].Status)); ok {
			books[i].Status = status
		}
		if !books[i].Status.IsValid() {
			return fmt.Errorf("record %d: %w", i+1, &InvalidStatusError{Status: string(books[i].Status)})
		}
		if err := validateBook(books[i]); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if _, seen := ids[books[i].BookID]; seen {
			return fmt.Errorf("record %d: duplicate book_id %d", i+1, books[i].BookID)
		}
		ids[books[i].BookID] = struct{}{}
		for j := 0; j < i; j++ {
			if books[j].SameWork(books[i]) {
				return fmt.Errorf("record %d: %w", i+1,
					&DuplicateBookError{Title: books[i].Title, Author: books[i].Author, Year: books[i].Year})
			}
		}
	}
	return nil
}

// nextID is recomputed from the current maximum so that files edited by hand
// never cause an id to be reused.
func (l *Library) nextID() (int, error) {
	maxID := 0
	for _, book := range l.books {
		if book.BookID > maxID {
			maxID = book.BookID
		}
	}
	if maxID == math.MaxInt {
		return 0, &IDsExhaustedError{MaxID: maxID}
	}
	return maxID + 1, nil
}

func (l *Library) indexOf(id int) (int, error) {
	for i, book := range l.books {
		if book.BookID == id {
			return i, nil
		}
	}
	return -1, &BookNotFoundError{BookID: id}
}

// commit records a successful mutation and, when auto-save is on, persists
// it. A failed save is returned but the in-memory change stays applied.
func (l *Library) commit(change Change, msg string) (string, error) {
	l.record(change)

	if l.savePath == "" {
		return msg, nil
	}
	if _, err := l.Save(l.savePath); err != nil {
		log.Printf("Auto-save after %s of book %d failed: %v", change.Action, change.BookID, err)
		return "", err
	}
	log.Printf("Auto-saved library to %s after %s of book %d", l.savePath, change.Action, change.BookID)
	return msg, nil
}

func (l *Library) record(change Change) {
	if l.recorder == nil {
		return
	}
	if err := l.recorder.Record(change); err != nil {
		log.Printf("Failed to record %s change: %v", change.Action, err)
	}
}
