// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"time"

	"exposure/internal/domain/entity"
	domainerrors "exposure/internal/domain/errors"
	"exposure/internal/domain/repository"
	"exposure/internal/errors"
	"exposure/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// hasCapacity is the SQL form of entity.Subscription.HasCapacity.
const hasCapacity = "status = ? AND (max_reports IS NULL OR reports_sent + reports_reserved < max_reports)"

// notExpired is the SQL form of !entity.Subscription.IsExpired.
const notExpired = "expire_at IS NULL OR expire_at > ?"

type subscriptionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSubscriptionRepository creates a gorm-backed subscription store. Every
// mutation is a single conditional UPDATE, so the row lock taken by
// PostgreSQL serializes concurrent changes to one subscription.
func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db, now: time.Now}
}

func (repo *subscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	if subscription.ID == uuid.Nil {
		subscription.ID = uuid.New()
	}
	now := repo.now()
	if subscription.CreatedAt.IsZero() {
		subscription.CreatedAt = now
	}
	subscription.UpdatedAt = now
	if subscription.Status == "" {
		subscription.Status = entity.StatusActive
	}

	if err := repo.db.WithContext(ctx).Create(model.FromSubscription(subscription)).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Errorf("subscription %s already exists", subscription.ID)
		}

		return domainerrors.NewDatabaseExecuteError(err, "create subscription")
	}

	return nil
}

func (repo *subscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	var m model.SubscriptionModel
	if err := repo.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, repository.ErrSubscriptionNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "find subscription")
	}

	return m.ToEntity(), nil
}

func (repo *subscriptionRepository) List(ctx context.Context, filter entity.SubscriptionFilter) ([]*entity.Subscription, error) {
	query := repo.db.WithContext(ctx).Model(&model.SubscriptionModel{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", string(filter.Kind))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.AppID != "" {
		query = query.Where("app_id = ?", filter.AppID)
	}
	if filter.UserID != "" {
		target, err := json.Marshal([]entity.UserID{filter.UserID})
		if err != nil {
			return nil, errors.WithStack(err)
		}
		query = query.Where("target_users @> ?::jsonb", string(target))
	}

	var rows []model.SubscriptionModel
	if err := query.Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "list subscriptions")
	}

	subscriptions := make([]*entity.Subscription, 0, len(rows))
	for i := range rows {
		subscriptions = append(subscriptions, rows[i].ToEntity())
	}

	return subscriptions, nil
}

func (repo *subscriptionRepository) Cancel(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	err := repo.db.WithContext(ctx).
		Model(&model.SubscriptionModel{}).
		Where("id = ? AND status = ?", id, string(entity.StatusActive)).
		Updates(map[string]any{
			"status":     string(entity.StatusCancelled),
			"updated_at": repo.now(),
		}).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "cancel subscription")
	}

	// terminal subscriptions are left untouched and returned as they are
	return repo.FindByID(ctx, id)
}

func (repo *subscriptionRepository) AdvanceLifecycle(ctx context.Context, now time.Time) (int, error) {
	db := repo.db.WithContext(ctx).Model(&model.SubscriptionModel{})

	expired := db.
		Where("status = ? AND expire_at IS NOT NULL AND expire_at <= ?", string(entity.StatusActive), now).
		Updates(map[string]any{"status": string(entity.StatusExpired), "updated_at": now})
	if expired.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(expired.Error, "expire subscriptions")
	}

	exhausted := repo.db.WithContext(ctx).Model(&model.SubscriptionModel{}).
		Where("status = ? AND max_reports IS NOT NULL AND reports_sent >= max_reports", string(entity.StatusActive)).
		Updates(map[string]any{"status": string(entity.StatusExhausted), "updated_at": now})
	if exhausted.Error != nil {
		return int(expired.RowsAffected), domainerrors.NewDatabaseExecuteError(exhausted.Error, "exhaust subscriptions")
	}

	return int(expired.RowsAffected + exhausted.RowsAffected), nil
}

func (repo *subscriptionRepository) ReserveDelivery(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	var m model.SubscriptionModel
	result := repo.db.WithContext(ctx).
		Model(&m).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Where(hasCapacity, string(entity.StatusActive)).
		Where(notExpired, repo.now()).
		Update("reports_reserved", gorm.Expr("reports_reserved + 1"))
	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "reserve delivery slot")
	}

	if result.RowsAffected == 0 {
		if _, err := repo.FindByID(ctx, id); err != nil {
			return nil, err
		}

		return nil, repository.ErrNotDeliverable
	}

	return m.ToEntity(), nil
}

func (repo *subscriptionRepository) RecordDelivery(ctx context.Context, id uuid.UUID, success bool) (*entity.Subscription, error) {
	updates := map[string]any{
		"reports_reserved": gorm.Expr("GREATEST(reports_reserved - 1, 0)"),
	}
	if success {
		updates["reports_sent"] = gorm.Expr("reports_sent + 1")
		updates["updated_at"] = repo.now()
		updates["status"] = gorm.Expr(
			"CASE WHEN status = ? AND max_reports IS NOT NULL AND reports_sent + 1 >= max_reports THEN ? ELSE status END",
			string(entity.StatusActive), string(entity.StatusExhausted),
		)
	}

	var m model.SubscriptionModel
	result := repo.db.WithContext(ctx).
		Model(&m).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "record delivery")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrSubscriptionNotFound
	}

	return m.ToEntity(), nil
}
