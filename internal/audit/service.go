package audit

import (
	"context"
	"log"
	"time"
	"unicode/utf8"

	"github.com/openshelf/locallibrary/internal/database/audit"
	"github.com/openshelf/locallibrary/internal/entities"
)

// Service provides high-level audit logging for catalog changes.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
// The write deliberately outlives the request context.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(context.Background(), event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogCreated records that a catalog record was created.
func (s *Service) LogCreated(entityType string, entityID uint, entityName, requestID string) {
	s.LogAsync(s.event(entities.AuditActionCreated, entityType, entityID, entityName, requestID))
}

// LogUpdated records that a catalog record was updated.
func (s *Service) LogUpdated(entityType string, entityID uint, entityName, requestID string) {
	s.LogAsync(s.event(entities.AuditActionUpdated, entityType, entityID, entityName, requestID))
}

// LogDeleted records that a catalog record was deleted.
func (s *Service) LogDeleted(entityType string, entityID uint, entityName, requestID string) {
	s.LogAsync(s.event(entities.AuditActionDeleted, entityType, entityID, entityName, requestID))
}

// LogDeleteBlocked records a deletion attempt refused because the
// record still had dependents.
func (s *Service) LogDeleteBlocked(entityType string, entityID uint, entityName, requestID string) {
	s.LogAsync(s.event(entities.AuditActionDeleteBlocked, entityType, entityID, entityName, requestID))
}

// Recent retrieves the latest audit events, most recent first.
func (s *Service) Recent(ctx context.Context, limit int) ([]entities.AuditEvent, error) {
	return s.repo.GetRecent(ctx, limit)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

func (s *Service) event(action entities.AuditAction, entityType string, entityID uint, entityName, requestID string) *entities.AuditEvent {
	return &entities.AuditEvent{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		EntityName: truncate(entityName, 256),
		RequestID:  requestID,
	}
}

// truncate shortens a string to maxLen runes. Cutting on runes keeps
// multi-byte names valid UTF-8.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}
