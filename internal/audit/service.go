package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/Tocea2003/Practica-BookSystem/internal/database/audit"
	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo    *audit.Repository
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every LogAsync call so far has been written.
func (s *Service) Wait() {
	s.pending.Wait()
}

func encodeMetadata(metadata map[string]any) datatypes.JSON {
	if len(metadata) == 0 {
		return nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// LogReservation records a reservation lifecycle event such as
// "reservation_return".
func (s *Service) LogReservation(ctx context.Context, action string, r *entities.BookReservation) {
	if r == nil {
		return
	}
	id := r.ID

	metadata := map[string]any{
		"book_id": r.BookID,
		"user_id": r.UserID,
		"status":  r.Status,
	}
	if r.DueDate != nil {
		metadata["due_date"] = r.DueDate.Format("2006-01-02")
	}
	if r.Fine != nil {
		metadata["fine"] = *r.Fine
	}

	s.LogAsync(&entities.AuditEvent{
		EventType:     entities.AuditEventReservation,
		Action:        action,
		Description:   truncate(fmt.Sprintf("Reservation %d for book %d by user %d is %s", r.ID, r.BookID, r.UserID, r.Status), 500),
		EntityType:    "reservation",
		EntityID:      &id,
		Metadata:      encodeMetadata(metadata),
		CorrelationID: CorrelationID(ctx),
		Status:        entities.AuditStatusSuccess,
	})
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(ctx context.Context, entityType string, entityID uint, entityName string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:     entities.AuditEventDelete,
		Action:        entityType + "_delete",
		Description:   truncate("Deleted "+entityType+": "+entityName, 500),
		EntityType:    entityType,
		EntityID:      &entityID,
		CorrelationID: CorrelationID(ctx),
		Status:        entities.AuditStatusSuccess,
	})
}

// LogMaintenance records a background job run.
func (s *Service) LogMaintenance(action, description string, metadata map[string]any, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventMaintenance,
		Action:      action,
		Description: truncate(description, 500),
		Metadata:    encodeMetadata(metadata),
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(filter audit.Filter, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(filter, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
