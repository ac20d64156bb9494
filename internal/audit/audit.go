package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/library"
)

type Auditor struct {
	AuditDir string
	now      func() time.Time
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
		now:      time.Now,
	}
}

// Record writes a library change to the journal as a JSON file named after a
// fresh UUID4.
func (a *Auditor) Record(change library.Change) error {
	id := uuid.New()
	event := entities.AuditEvent{
		ID:          id.String(),
		EventType:   eventType(change.Action),
		BookID:      change.BookID,
		Description: change.Detail,
		CreatedAt:   a.now().UTC(),
	}
	if change.BookID != 0 {
		book := change.Book
		event.Book = &book
	}

	_, err := a.saveAs(id, event)
	return err
}

// Events reads every journal entry back, oldest first.
func (a *Auditor) Events() ([]entities.AuditEvent, error) {
	entries, err := os.ReadDir(a.AuditDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read audit directory: %w", err)
	}

	var events []entities.AuditEvent
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(a.AuditDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read audit file %s: %w", entry.Name(), err)
		}
		var event entities.AuditEvent
		if err := json.Unmarshal(data, &event); err != nil {
			log.Printf("Skipping unreadable audit file %s: %v", entry.Name(), err)
			continue
		}
		events = append(events, event)
	}

	sortByCreatedAt(events)
	return events, nil
}

func (a *Auditor) saveAs(id uuid.UUID, data any) (string, error) {
	// Ensure audit directory exists
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	filename := fmt.Sprintf("%s.json", id.String())
	path := filepath.Join(a.AuditDir, filename)

	log.Printf("Saving audit file: %s", path)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	return filename, nil
}

// ensureAuditDir creates the audit directory if it doesn't exist
func (a *Auditor) ensureAuditDir() error {
	if _, err := os.Stat(a.AuditDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
			return fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	return nil
}

func eventType(action library.Action) entities.AuditEventType {
	switch action {
	case library.ActionAdd:
		return entities.AuditEventAdd
	case library.ActionDelete:
		return entities.AuditEventDelete
	case library.ActionEditStatus:
		return entities.AuditEventEditStatus
	case library.ActionLoad:
		return entities.AuditEventLoad
	case library.ActionExport:
		return entities.AuditEventExport
	default:
		return entities.AuditEventType(action)
	}
}

func sortByCreatedAt(events []entities.AuditEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
}
