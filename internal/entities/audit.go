package entities

import "time"

type AuditEventType string

const (
	AuditEventAdd        AuditEventType = "add"
	AuditEventDelete     AuditEventType = "delete"
	AuditEventEditStatus AuditEventType = "edit_status"
	AuditEventLoad       AuditEventType = "load"
	AuditEventExport     AuditEventType = "export"
)

// AuditEvent is one entry of the change journal. Each event is stored as its
// own JSON file named after ID.
type AuditEvent struct {
	ID          string         `json:"id"`
	EventType   AuditEventType `json:"event_type"`
	BookID      int            `json:"book_id,omitempty"`
	Book        *Book          `json:"book,omitempty"` // State after the change, or the removed record
	Description string         `json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
