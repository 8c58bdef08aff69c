package testimonials

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sea-catering/backend/pkg/db/models"
	"github.com/sea-catering/backend/pkg/enums"
)

// Repository exposes testimonial persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a testimonial repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new testimonial row.
func (r *Repository) Create(ctx context.Context, row *models.Testimonial) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// FindByID loads one testimonial.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	var row models.Testimonial
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByStatus returns a page of testimonials with the given status,
// newest-first, plus the total count for the same filter.
func (r *Repository) ListByStatus(ctx context.Context, status enums.TestimonialStatus, offset, limit int) ([]models.Testimonial, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Testimonial{}).
		Where("status = ?", status)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Testimonial
	err := base.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateStatus persists a moderation decision.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.TestimonialStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Testimonial{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
