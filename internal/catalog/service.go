package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sea-catering/backend/pkg/db/models"
	pkgerrors "github.com/sea-catering/backend/pkg/errors"
)

type catalogRepository interface {
	ListPlans(ctx context.Context) ([]models.Plan, error)
	ListMealTypes(ctx context.Context) ([]models.MealType, error)
	ListDeliveryDays(ctx context.Context) ([]models.DeliveryDay, error)
	FindActivePlan(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	FindActiveMealTypes(ctx context.Context, ids []uuid.UUID) ([]models.MealType, error)
	FindActiveDeliveryDays(ctx context.Context, ids []uuid.UUID) ([]models.DeliveryDay, error)
}

// Service exposes the public menu surface.
type Service interface {
	Plans(ctx context.Context) ([]models.Plan, error)
	MealTypes(ctx context.Context) ([]models.MealType, error)
	DeliveryDays(ctx context.Context) ([]models.DeliveryDay, error)
}

type service struct {
	repo catalogRepository
}

// NewService builds the catalog service.
func NewService(repo catalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repo required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Plans(ctx context.Context) ([]models.Plan, error) {
	rows, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list plans")
	}
	return rows, nil
}

func (s *service) MealTypes(ctx context.Context) ([]models.MealType, error) {
	rows, err := s.repo.ListMealTypes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list meal types")
	}
	return rows, nil
}

func (s *service) DeliveryDays(ctx context.Context) ([]models.DeliveryDay, error) {
	rows, err := s.repo.ListDeliveryDays(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list delivery days")
	}
	return rows, nil
}
