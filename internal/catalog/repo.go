package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sea-catering/backend/pkg/db/models"
)

// Repository resolves plans, meal types, and delivery days. The intake
// service only ever sees rows that are active; admin tooling edits the
// catalog out of band.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListPlans returns all active plans ordered by price.
func (r *Repository) ListPlans(ctx context.Context) ([]models.Plan, error) {
	var rows []models.Plan
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("base_price ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListMealTypes returns all active meal types.
func (r *Repository) ListMealTypes(ctx context.Context) ([]models.MealType, error) {
	var rows []models.MealType
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListDeliveryDays returns all active delivery days in weekday order.
func (r *Repository) ListDeliveryDays(ctx context.Context) ([]models.DeliveryDay, error) {
	var rows []models.DeliveryDay
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("day_of_week ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindActivePlan returns the plan when it exists and is active.
func (r *Repository) FindActivePlan(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindActiveMealTypes returns the subset of the requested ids that exist and
// are active. Callers compare the result size against the request size.
func (r *Repository) FindActiveMealTypes(ctx context.Context, ids []uuid.UUID) ([]models.MealType, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.MealType
	err := r.db.WithContext(ctx).
		Where("id IN ? AND active = ?", ids, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindActiveDeliveryDays returns the subset of the requested ids that exist
// and are active.
func (r *Repository) FindActiveDeliveryDays(ctx context.Context, ids []uuid.UUID) ([]models.DeliveryDay, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.DeliveryDay
	err := r.db.WithContext(ctx).
		Where("id IN ? AND active = ?", ids, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
