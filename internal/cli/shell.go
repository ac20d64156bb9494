package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/library"
)

type Command int

const (
	CommandAdd Command = iota
	CommandDelete
	CommandEditStatus
	CommandFind
	CommandList
	CommandExport
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandAdd:
		return "add"
	case CommandDelete:
		return "delete"
	case CommandEditStatus:
		return "edit_status"
	case CommandFind:
		return "find"
	case CommandList:
		return "list"
	case CommandExport:
		return "export"
	case CommandQuit:
		return "quit"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// handler runs one menu action and reports whether the shell should stop.
type handler func(s *Shell) (quit bool)

type menuEntry struct {
	Key     string
	Label   string
	Command Command
	run     handler
}

// Shell is the interactive front end of a library. It reads answers line by
// line from its input and writes prompts and results to its output.
type Shell struct {
	lib      *library.Library
	exporter exporters.BookExporter
	in       *bufio.Reader
	readErr  error
	out      io.Writer
	menu     []menuEntry
	byKey    map[string]menuEntry
}

// NewShell builds the menu once. The export entry is only offered when an
// exporter is given.
func NewShell(lib *library.Library, exporter exporters.BookExporter, in io.Reader, out io.Writer) *Shell {
	s := &Shell{
		lib:      lib,
		exporter: exporter,
		in:       bufio.NewReader(in),
		out:      out,
	}
	s.menu = newMenu(exporter != nil)
	s.byKey = make(map[string]menuEntry, len(s.menu))
	for _, entry := range s.menu {
		s.byKey[entry.Key] = entry
	}
	return s
}

func newMenu(withExport bool) []menuEntry {
	menu := []menuEntry{
		{Key: "a", Label: "Add a book", Command: CommandAdd, run: (*Shell).addBook},
		{Key: "d", Label: "Delete a book", Command: CommandDelete, run: (*Shell).deleteBook},
		{Key: "e", Label: "Edit status", Command: CommandEditStatus, run: (*Shell).editStatus},
		{Key: "s", Label: "Find a book", Command: CommandFind, run: (*Shell).findBooks},
		{Key: "l", Label: "List of all books", Command: CommandList, run: (*Shell).listBooks},
	}
	if withExport {
		menu = append(menu, menuEntry{Key: "x", Label: "Export to markdown", Command: CommandExport, run: (*Shell).export})
	}
	return append(menu, menuEntry{Key: "q", Label: "Quit", Command: CommandQuit, run: (*Shell).quit})
}

// Run shows the menu and handles choices until the user quits or the input
// ends. Only a failure to read input is returned as an error.
func (s *Shell) Run() error {
	for {
		s.showMenu()
		choice, ok := s.prompt("Choose an option: ")
		if !ok {
			s.quit()
			return s.readErr
		}

		entry, err := s.resolve(choice)
		if err != nil {
			s.println(err)
			continue
		}
		if entry.run(s) {
			return nil
		}
	}
}

// resolve maps a typed key to its menu entry.
func (s *Shell) resolve(choice string) (menuEntry, error) {
	key := strings.ToLower(strings.TrimSpace(choice))
	entry, ok := s.byKey[key]
	if !ok {
		return menuEntry{}, &InvalidChoiceError{Choice: key}
	}
	return entry, nil
}

func (s *Shell) showMenu() {
	s.println("Welcome to your library!")
	for _, entry := range s.menu {
		fmt.Fprintf(s.out, "'%s' - %s\n", entry.Key, entry.Label)
	}
}

func (s *Shell) addBook() bool {
	title, ok := s.prompt("Enter title: ")
	if !ok {
		return false
	}
	author, ok := s.prompt("Enter author: ")
	if !ok {
		return false
	}
	year, ok := s.promptInt("Enter year: ", "Invalid input for year. Please enter a valid number.")
	if !ok {
		return false
	}

	s.report(s.lib.AddBook(title, author, year))
	return false
}

func (s *Shell) deleteBook() bool {
	id, ok := s.promptInt("Enter book ID to delete: ", "Invalid input for book ID. Please enter a valid number.")
	if !ok {
		return false
	}

	s.report(s.lib.DeleteBook(id))
	return false
}

func (s *Shell) editStatus() bool {
	id, ok := s.promptInt("Enter book ID to edit status: ", "Invalid input for book ID. Please enter a valid number.")
	if !ok {
		return false
	}
	status, ok := s.prompt(fmt.Sprintf("Enter new status (%s/%s): ", entities.StatusAvailable, entities.StatusCheckedOut))
	if !ok {
		return false
	}

	s.report(s.lib.EditStatus(id, status))
	return false
}

func (s *Shell) findBooks() bool {
	term, ok := s.prompt("Enter title, author, or year to search: ")
	if !ok {
		return false
	}

	books, err := s.lib.FindBooks(term)
	if err != nil {
		s.println(err)
		return false
	}
	s.printBooks(books)
	return false
}

func (s *Shell) listBooks() bool {
	books, msg := s.lib.ListBooks()
	if msg != "" {
		s.println(msg)
		return false
	}
	s.printBooks(books)
	return false
}

func (s *Shell) export() bool {
	result, err := s.exporter.Export(s.lib.Books())
	if err != nil {
		s.println(fmt.Sprintf("Export failed: %v", err))
		return false
	}
	s.lib.RecordExport(fmt.Sprintf("%d books exported, %d failed", result.BooksProcessed, result.BooksFailed))
	s.println(fmt.Sprintf("Exported %d books to markdown (%d failed).", result.BooksProcessed, result.BooksFailed))
	return false
}

func (s *Shell) quit() bool {
	s.println("Quitting the application...")
	return true
}

// prompt prints label and reads one trimmed line of any length. It returns
// false once the input is exhausted or unreadable.
func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if !errors.Is(err, io.EOF) {
			s.readErr = err
		}
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSpace(line), true
}

// promptInt reads an integer. Malformed input prints invalidMsg and reports
// false so the action is abandoned before reaching the library.
func (s *Shell) promptInt(label, invalidMsg string) (int, bool) {
	raw, ok := s.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.println(invalidMsg)
		return 0, false
	}
	return n, true
}

func (s *Shell) report(msg string, err error) {
	if err != nil {
		s.println(err)
		return
	}
	s.println(msg)
}

func (s *Shell) printBooks(books []entities.Book) {
	for _, book := range books {
		s.println(book)
	}
}

func (s *Shell) println(v any) {
	fmt.Fprintln(s.out, v)
}
