package postgres

import (
	"context"

	"exposure/internal/domain/entity"
	domainerrors "exposure/internal/domain/errors"
	"exposure/internal/domain/repository"
	"exposure/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const eventInsertBatchSize = 500

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates the gorm-backed event log.
func NewEventRepository(db *gorm.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

// Append inserts events, ignoring ones already stored under the same ID.
func (repo *eventRepository) Append(ctx context.Context, events []*entity.Event) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([]*model.EventModel, 0, len(events))
	for _, event := range events {
		rows = append(rows, model.FromEvent(event))
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows, eventInsertBatchSize).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "append events")
	}

	return nil
}

func (repo *eventRepository) List(ctx context.Context, filter entity.EventFilter) ([]*entity.Event, error) {
	query := repo.db.WithContext(ctx).Model(&model.EventModel{})
	if filter.SubscriptionID != uuid.Nil {
		query = query.Where("subscription_id = ?", filter.SubscriptionID)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", string(filter.UserID))
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", string(filter.Kind))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []model.EventModel
	if err := query.Order("created_at DESC").Order("timestamp DESC").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "list events")
	}

	events := make([]*entity.Event, 0, len(rows))
	for i := range rows {
		events = append(events, rows[i].ToEntity())
	}

	return events, nil
}
