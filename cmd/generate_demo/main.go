// Command generate_demo creates a demo library file with public domain books.
// Usage: go run cmd/generate_demo/main.go [-file path/to/demo.json]
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/library"
)

const defaultDemoLibraryPath = "./demo/library.json"

type BookConfig struct {
	Title      string
	Author     string
	Year       int
	CheckedOut bool
}

func main() {
	path := flag.String("file", defaultDemoLibraryPath, "path to the demo library file")
	flag.Parse()

	log.Printf("Generating demo library at %s...", *path)

	// Delete existing demo library to start fresh
	if err := os.Remove(*path); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo library: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*path), 0755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	lib := library.New(library.WithAutoSave(*path))
	for _, book := range getPublicDomainBooks() {
		msg, err := lib.AddBook(book.Title, book.Author, book.Year)
		if err != nil {
			log.Fatalf("Failed to add %q: %v", book.Title, err)
		}
		log.Print(msg)
	}

	// Check out every book flagged in the config; ids follow insertion order.
	for i, book := range getPublicDomainBooks() {
		if !book.CheckedOut {
			continue
		}
		if _, err := lib.EditStatus(i+1, string(entities.StatusCheckedOut)); err != nil {
			log.Fatalf("Failed to check out %q: %v", book.Title, err)
		}
	}

	log.Printf("Demo library generated with %d books", lib.Len())
}

func getPublicDomainBooks() []BookConfig {
	return []BookConfig{
		{Title: "Meditations", Author: "Marcus Aurelius", Year: 180},
		{Title: "Letters from a Stoic", Author: "Seneca", Year: 65, CheckedOut: true},
		{Title: "On the Origin of Species", Author: "Charles Darwin", Year: 1859},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Year: 1813, CheckedOut: true},
		{Title: "War and Peace", Author: "Leo Tolstoy", Year: 1869},
		{Title: "Crime and Punishment", Author: "Fyodor Dostoevsky", Year: 1866},
		{Title: "The Republic", Author: "Plato", Year: -375},
		{Title: "The Art of War", Author: "Sun Tzu", Year: -500, CheckedOut: true},
		{Title: "Frankenstein", Author: "Mary Shelley", Year: 1818},
		{Title: "The Picture of Dorian Gray", Author: "Oscar Wilde", Year: 1890},
	}
}
