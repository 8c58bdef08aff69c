package subscriptions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sea-catering/backend/pkg/db/models"
	"github.com/sea-catering/backend/pkg/enums"
)

// Repository exposes subscription persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a subscription repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listQuery struct {
	userID      *uuid.UUID
	offset      int
	limit       int
	withProfile bool
}

// CreateWithTx inserts the subscription row plus one join row per selected
// meal type and delivery day inside the supplied transaction. Any failed
// insert aborts the whole transaction, so the row set is visible-or-absent
// atomically.
func (r *Repository) CreateWithTx(tx *gorm.DB, sub *models.Subscription, mealTypeIDs, deliveryDayIDs []uuid.UUID) error {
	if err := tx.Create(sub).Error; err != nil {
		return err
	}
	for _, id := range mealTypeIDs {
		join := models.SubscriptionMealType{SubscriptionID: sub.ID, MealTypeID: id}
		if err := tx.Create(&join).Error; err != nil {
			return err
		}
	}
	for _, id := range deliveryDayIDs {
		join := models.SubscriptionDeliveryDay{SubscriptionID: sub.ID, DeliveryDayID: id}
		if err := tx.Create(&join).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindByID loads one subscription with its plan and selections expanded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Preload("MealTypes").
		Preload("DeliveryDays").
		First(&sub, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// List returns a page of subscriptions newest-first plus the total row count
// for the same filter.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Subscription, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Subscription{})
	if opts.userID != nil {
		base = base.Where("user_id = ?", *opts.userID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.
		Preload("Plan").
		Preload("MealTypes").
		Preload("DeliveryDays").
		Order("created_at DESC").
		Offset(opts.offset).
		Limit(opts.limit)
	if opts.withProfile {
		query = query.Preload("User")
	}

	var rows []models.Subscription
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateLifecycle persists the lifecycle columns of the subscription.
func (r *Repository) UpdateLifecycle(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("id = ?", sub.ID).
		Select("status", "pause_start", "pause_end", "cancelled_at", "reactivated_at").
		Updates(map[string]any{
			"status":         sub.Status,
			"pause_start":    sub.PauseStart,
			"pause_end":      sub.PauseEnd,
			"cancelled_at":   sub.CancelledAt,
			"reactivated_at": sub.ReactivatedAt,
		}).Error
}

// Delete hard-deletes the subscription row; join rows cascade in the schema.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Subscription{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountCreatedBetween counts subscriptions created inside the window.
func (r *Repository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// CountReactivatedBetween counts subscriptions reactivated inside the window.
func (r *Repository) CountReactivatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("reactivated_at >= ? AND reactivated_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// SumActiveTotals sums total_price over active subscriptions, the recurring
// monthly revenue figure shown on the admin dashboard.
func (r *Repository) SumActiveTotals(ctx context.Context) (int64, error) {
	var sum *int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("status = ?", enums.SubscriptionStatusActive).
		Select("SUM(total_price)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
