package model

import (
	"time"

	"exposure/internal/domain/entity"

	"github.com/google/uuid"
)

// EventModel is the GORM-specific struct for the 'events' table. The full
// event is kept as JSON next to the columns used for filtering.
type EventModel struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey"`
	SubscriptionID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Kind           string        `gorm:"not null;index"`
	UserID         string        `gorm:"not null;index"`
	Timestamp      time.Time     `gorm:"not null;index"`
	Payload        *entity.Event `gorm:"type:jsonb;serializer:json;not null"`
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (EventModel) TableName() string {
	return "events"
}

// FromEvent maps the domain event to its row.
func FromEvent(e *entity.Event) *EventModel {
	return &EventModel{
		ID:             e.ID,
		SubscriptionID: e.SubscriptionID,
		Kind:           string(e.Kind),
		UserID:         string(e.UserID),
		Timestamp:      e.Timestamp,
		Payload:        e,
	}
}

// ToEntity returns the stored event.
func (m *EventModel) ToEntity() *entity.Event {
	return m.Payload
}
