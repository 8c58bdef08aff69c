package testimonials

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sea-catering/backend/pkg/db/models"
	"github.com/sea-catering/backend/pkg/enums"
	pkgerrors "github.com/sea-catering/backend/pkg/errors"
	"github.com/sea-catering/backend/pkg/pagination"
	"github.com/sea-catering/backend/pkg/types"
)

const (
	minMessageLen = 10
	maxMessageLen = 1000
	minNameLen    = 2
	maxNameLen    = 100
)

type testimonialsRepository interface {
	Create(ctx context.Context, row *models.Testimonial) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Testimonial, error)
	ListByStatus(ctx context.Context, status enums.TestimonialStatus, offset, limit int) ([]models.Testimonial, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.TestimonialStatus) error
}

// CreateInput captures a testimonial submission after decoding and
// sanitization.
type CreateInput struct {
	UserID  *uuid.UUID
	Name    string
	Message string
	Rating  int
}

// Service exposes testimonial submission, the public approved feed, and
// admin moderation.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Testimonial, error)
	ListApproved(ctx context.Context, page pagination.Params) ([]models.Testimonial, types.Page, error)
	ListPending(ctx context.Context, page pagination.Params) ([]models.Testimonial, types.Page, error)
	Review(ctx context.Context, id uuid.UUID, approve bool) (*models.Testimonial, error)
}

type service struct {
	repo testimonialsRepository
}

// NewService builds the testimonial service.
func NewService(repo testimonialsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("testimonial repo required")
	}
	return &service{repo: repo}, nil
}

// Create stores the submission as pending. Nothing becomes publicly visible
// until an admin approves it.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Testimonial, error) {
	details := map[string]string{}

	nameLen := len([]rune(input.Name))
	if nameLen < minNameLen || nameLen > maxNameLen {
		details["name"] = fmt.Sprintf("must contain between %d and %d characters", minNameLen, maxNameLen)
	}
	messageLen := len([]rune(input.Message))
	if messageLen < minMessageLen || messageLen > maxMessageLen {
		details["message"] = fmt.Sprintf("must contain between %d and %d characters", minMessageLen, maxMessageLen)
	}
	if input.Rating < 1 || input.Rating > 5 {
		details["rating"] = "must be between 1 and 5"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	row := &models.Testimonial{
		UserID:  input.UserID,
		Name:    input.Name,
		Message: input.Message,
		Rating:  input.Rating,
		Status:  enums.TestimonialStatusPending,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create testimonial")
	}
	return row, nil
}

// ListApproved pages the public testimonial feed.
func (s *service) ListApproved(ctx context.Context, page pagination.Params) ([]models.Testimonial, types.Page, error) {
	return s.listByStatus(ctx, enums.TestimonialStatusApproved, page)
}

// ListPending pages the moderation queue.
func (s *service) ListPending(ctx context.Context, page pagination.Params) ([]models.Testimonial, types.Page, error) {
	return s.listByStatus(ctx, enums.TestimonialStatusPending, page)
}

func (s *service) listByStatus(ctx context.Context, status enums.TestimonialStatus, page pagination.Params) ([]models.Testimonial, types.Page, error) {
	normalized := page.Normalize()
	rows, total, err := s.repo.ListByStatus(ctx, status, normalized.Offset(), normalized.Limit)
	if err != nil {
		return nil, types.Page{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list testimonials")
	}
	return rows, normalized.PageOf(total), nil
}

// Review applies a moderation decision to a pending submission.
func (s *service) Review(ctx context.Context, id uuid.UUID, approve bool) (*models.Testimonial, error) {
	status := enums.TestimonialStatusRejected
	if approve {
		status = enums.TestimonialStatusApproved
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "testimonial not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update testimonial")
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload testimonial")
	}
	return row, nil
}
