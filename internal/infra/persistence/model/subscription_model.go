package model

import (
	"time"

	"exposure/internal/domain/entity"

	"github.com/google/uuid"
)

// SubscriptionModel is the GORM-specific struct for the 'subscriptions' table.
type SubscriptionModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AppID                string          `gorm:"index"`
	Kind                 string          `gorm:"not null;index"`
	MonitoringType       string          `gorm:"not null;default:''"`
	ReachabilityType     string          `gorm:"not null;default:''"`
	TargetUsers          []entity.UserID `gorm:"type:jsonb;serializer:json;not null"`
	CallbackEndpoint     string          `gorm:"not null"`
	MaxReports           *int
	ExpireAt             *time.Time `gorm:"index"`
	MaximumDetectionTime *int
	ReportsSent          int    `gorm:"not null;default:0"`
	ReportsReserved      int    `gorm:"not null;default:0"`
	Status               string `gorm:"not null;index"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName explicitly sets the table name for GORM.
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// FromSubscription maps the domain entity to its row.
func FromSubscription(s *entity.Subscription) *SubscriptionModel {
	return &SubscriptionModel{
		ID:                   s.ID,
		AppID:                s.AppID,
		Kind:                 string(s.Kind),
		MonitoringType:       string(s.MonitoringType),
		ReachabilityType:     string(s.ReachabilityType),
		TargetUsers:          s.TargetUsers,
		CallbackEndpoint:     s.CallbackEndpoint,
		MaxReports:           s.MaxReports,
		ExpireAt:             s.ExpireAt,
		MaximumDetectionTime: s.MaximumDetectionTime,
		ReportsSent:          s.ReportsSent,
		ReportsReserved:      s.ReportsReserved,
		Status:               string(s.Status),
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

// ToEntity maps the row back to the domain entity.
func (m *SubscriptionModel) ToEntity() *entity.Subscription {
	return &entity.Subscription{
		ID:                   m.ID,
		AppID:                m.AppID,
		Kind:                 entity.SubscriptionKind(m.Kind),
		MonitoringType:       entity.MonitoringType(m.MonitoringType),
		ReachabilityType:     entity.ReachabilityType(m.ReachabilityType),
		TargetUsers:          m.TargetUsers,
		CallbackEndpoint:     m.CallbackEndpoint,
		MaxReports:           m.MaxReports,
		ExpireAt:             m.ExpireAt,
		MaximumDetectionTime: m.MaximumDetectionTime,
		ReportsSent:          m.ReportsSent,
		ReportsReserved:      m.ReportsReserved,
		Status:               entity.SubscriptionStatus(m.Status),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
