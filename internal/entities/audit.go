package entities

import (
	"fmt"
	"time"
)

type AuditAction string

const (
	AuditActionCreated       AuditAction = "created"
	AuditActionUpdated       AuditAction = "updated"
	AuditActionDeleted       AuditAction = "deleted"
	AuditActionDeleteBlocked AuditAction = "delete_blocked"
)

// AuditEvent records one catalog mutation for the activity feed.
type AuditEvent struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Action     AuditAction `gorm:"index;size:20" json:"action"`
	EntityType string      `gorm:"index;size:20" json:"entity_type"` // "author", "genre", "book", "copy"
	EntityID   uint        `gorm:"index" json:"entity_id"`
	EntityName string      `gorm:"size:256" json:"entity_name"`
	RequestID  string      `gorm:"size:36" json:"request_id,omitempty"`
	CreatedAt  time.Time   `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}

// Summary is the one-line description shown in the dashboard activity feed.
func (e AuditEvent) Summary() string {
	if e.Action == AuditActionDeleteBlocked {
		return fmt.Sprintf("%s %q delete blocked", e.EntityType, e.EntityName)
	}
	return fmt.Sprintf("%s %q %s", e.EntityType, e.EntityName, e.Action)
}
