package entities

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditEventType string

const (
	AuditEventReservation AuditEventType = "reservation"
	AuditEventDelete      AuditEventType = "delete"
	AuditEventMaintenance AuditEventType = "maintenance"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type AuditEvent struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	EventType     AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action        string         `gorm:"size:100" json:"action"`      // e.g., "reservation_return", "book_delete"
	Description   string         `gorm:"size:500" json:"description"` // Human-readable summary
	EntityType    string         `gorm:"size:50" json:"entity_type"`  // "book", "reservation", etc.
	EntityID      *uint          `gorm:"index" json:"entity_id,omitempty"`
	Metadata      datatypes.JSON `json:"metadata,omitempty"`
	CorrelationID string         `gorm:"size:36;index" json:"correlation_id,omitempty"`
	Status        AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg      string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}

// BeforeCreate stores an empty object instead of NULL metadata.
func (e *AuditEvent) BeforeCreate(*gorm.DB) error {
	if len(e.Metadata) == 0 {
		e.Metadata = datatypes.JSON("{}")
	}
	return nil
}
