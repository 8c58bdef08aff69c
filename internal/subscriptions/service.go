package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sea-catering/backend/pkg/db/models"
	"github.com/sea-catering/backend/pkg/enums"
	pkgerrors "github.com/sea-catering/backend/pkg/errors"
	"github.com/sea-catering/backend/pkg/metrics"
	"github.com/sea-catering/backend/pkg/pagination"
	"github.com/sea-catering/backend/pkg/pricing"
	"github.com/sea-catering/backend/pkg/types"
)

const (
	minNameLen   = 2
	maxNameLen   = 100
	maxMealTypes = 3
	maxDays      = 7
)

type catalogRepository interface {
	FindActivePlan(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	FindActiveMealTypes(ctx context.Context, ids []uuid.UUID) ([]models.MealType, error)
	FindActiveDeliveryDays(ctx context.Context, ids []uuid.UUID) ([]models.DeliveryDay, error)
}

type subscriptionsRepository interface {
	CreateWithTx(tx *gorm.DB, sub *models.Subscription, mealTypeIDs, deliveryDayIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	List(ctx context.Context, opts listQuery) ([]models.Subscription, int64, error)
	UpdateLifecycle(ctx context.Context, sub *models.Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountReactivatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	SumActiveTotals(ctx context.Context) (int64, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service is the subscription intake and lifecycle surface.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Subscription, error)
	Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.Subscription, error)
	List(ctx context.Context, caller Caller, page pagination.Params) ([]models.Subscription, types.Page, error)
	Transition(ctx context.Context, caller Caller, id uuid.UUID, input TransitionInput) (*models.Subscription, error)
	Delete(ctx context.Context, caller Caller, id uuid.UUID) error
	Metrics(ctx context.Context, from, to time.Time) (*MetricsResult, error)
}

// ServiceParams groups dependencies for the subscription service.
type ServiceParams struct {
	Repo              subscriptionsRepository
	CatalogRepo       catalogRepository
	TransactionRunner txRunner
	Metrics           *metrics.SubscriptionMetrics
}

type service struct {
	repo     subscriptionsRepository
	catalog  catalogRepository
	txRunner txRunner
	metrics  *metrics.SubscriptionMetrics
	timeFunc func() time.Time
}

// NewService builds a subscription service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("subscription repo required")
	}
	if params.CatalogRepo == nil {
		return nil, fmt.Errorf("catalog repo required")
	}
	if params.TransactionRunner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:     params.Repo,
		catalog:  params.CatalogRepo,
		txRunner: params.TransactionRunner,
		metrics:  params.Metrics,
		timeFunc: time.Now,
	}, nil
}

// Create validates and prices the request, then persists the subscription
// row together with its selection join rows in one transaction.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Subscription, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	plan, err := s.catalog.FindActivePlan(ctx, input.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidReference, "plan not found or inactive").
				WithDetails(map[string]any{"category": "plan"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup plan")
	}

	mealTypes, err := s.catalog.FindActiveMealTypes(ctx, input.MealTypeIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup meal types")
	}
	if len(mealTypes) != len(input.MealTypeIDs) {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidReference, "one or more meal types not found or inactive").
			WithDetails(map[string]any{"category": "meal_types"})
	}

	deliveryDays, err := s.catalog.FindActiveDeliveryDays(ctx, input.DeliveryDayIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup delivery days")
	}
	if len(deliveryDays) != len(input.DeliveryDayIDs) {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidReference, "one or more delivery days not found or inactive").
			WithDetails(map[string]any{"category": "delivery_days"})
	}

	sub := &models.Subscription{
		UserID:     input.UserID,
		Name:       input.Name,
		Phone:      input.Phone,
		PlanID:     plan.ID,
		Allergies:  input.Allergies,
		TotalPrice: pricing.MonthlyTotal(plan.BasePrice, len(input.MealTypeIDs), len(input.DeliveryDayIDs)),
		Status:     enums.SubscriptionStatusActive,
	}

	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.CreateWithTx(tx, sub, input.MealTypeIDs, input.DeliveryDayIDs)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist subscription")
	}

	s.metrics.IncCreated()

	sub.Plan = plan
	sub.MealTypes = mealTypes
	sub.DeliveryDays = deliveryDays
	return sub, nil
}

func validateCreateInput(input CreateInput) error {
	details := map[string]string{}

	nameLen := len([]rune(input.Name))
	if nameLen < minNameLen || nameLen > maxNameLen {
		details["name"] = fmt.Sprintf("must contain between %d and %d characters", minNameLen, maxNameLen)
	}
	if input.Phone == "" {
		details["phone"] = "is required"
	}
	if input.PlanID == uuid.Nil {
		details["plan_id"] = "is required"
	}
	if n := len(input.MealTypeIDs); n < 1 || n > maxMealTypes {
		details["meal_type_ids"] = fmt.Sprintf("must contain between 1 and %d meal types", maxMealTypes)
	} else if hasDuplicateIDs(input.MealTypeIDs) {
		details["meal_type_ids"] = "must not contain duplicates"
	}
	if n := len(input.DeliveryDayIDs); n < 1 || n > maxDays {
		details["delivery_day_ids"] = fmt.Sprintf("must contain between 1 and %d delivery days", maxDays)
	} else if hasDuplicateIDs(input.DeliveryDayIDs) {
		details["delivery_day_ids"] = "must not contain duplicates"
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func hasDuplicateIDs(ids []uuid.UUID) bool {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

// Get returns one subscription; non-admin callers only see their own rows.
func (s *service) Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.Subscription, error) {
	sub, err := s.findAuthorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// List pages subscriptions newest-first. Standard callers see only rows they
// own; admins see every row with the owner profile attached.
func (s *service) List(ctx context.Context, caller Caller, page pagination.Params) ([]models.Subscription, types.Page, error) {
	if caller.UserID == uuid.Nil {
		return nil, types.Page{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	normalized := page.Normalize()
	query := listQuery{
		offset:      normalized.Offset(),
		limit:       normalized.Limit,
		withProfile: caller.IsAdmin(),
	}
	if !caller.IsAdmin() {
		userID := caller.UserID
		query.userID = &userID
	}

	rows, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, types.Page{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscriptions")
	}
	return rows, normalized.PageOf(total), nil
}

// Transition applies a lifecycle action. The transition model is
// permissive: the current status is not checked before applying the action,
// and reactivate is accepted from CANCELLED.
func (s *service) Transition(ctx context.Context, caller Caller, id uuid.UUID, input TransitionInput) (*models.Subscription, error) {
	sub, err := s.findAuthorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	now := s.timeFunc()
	switch input.Action {
	case ActionPause:
		if input.PauseStart == nil || input.PauseEnd == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "pause requires pause_start and pause_end")
		}
		if !input.PauseStart.Before(*input.PauseEnd) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "pause_start must be before pause_end")
		}
		sub.Status = enums.SubscriptionStatusPaused
		sub.PauseStart = input.PauseStart
		sub.PauseEnd = input.PauseEnd
	case ActionCancel:
		sub.Status = enums.SubscriptionStatusCancelled
		sub.CancelledAt = &now
	case ActionReactivate:
		sub.Status = enums.SubscriptionStatusActive
		sub.ReactivatedAt = &now
		sub.PauseStart = nil
		sub.PauseEnd = nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid action").
			WithDetails(map[string]string{"action": "must be pause, cancel, or reactivate"})
	}

	if err := s.repo.UpdateLifecycle(ctx, sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update subscription")
	}

	s.metrics.IncTransition(input.Action)
	return sub, nil
}

// Delete hard-deletes a subscription and, via schema cascade, its join rows.
func (s *service) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	if _, err := s.findAuthorized(ctx, caller, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "subscription not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete subscription")
	}
	s.metrics.IncDeleted()
	return nil
}

// Metrics aggregates the admin dashboard figures for the supplied window.
func (s *service) Metrics(ctx context.Context, from, to time.Time) (*MetricsResult, error) {
	if !from.Before(to) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "from must be before to")
	}

	created, err := s.repo.CountCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count new subscriptions")
	}
	reactivated, err := s.repo.CountReactivatedBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count reactivations")
	}
	mrr, err := s.repo.SumActiveTotals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum active totals")
	}

	return &MetricsResult{
		From:                    from,
		To:                      to,
		NewSubscriptions:        created,
		Reactivations:           reactivated,
		MonthlyRecurringRevenue: mrr,
	}, nil
}

func (s *service) findAuthorized(ctx context.Context, caller Caller, id uuid.UUID) (*models.Subscription, error) {
	if caller.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subscription not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup subscription")
	}

	if !caller.IsAdmin() {
		if sub.UserID == nil || *sub.UserID != caller.UserID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "subscription belongs to another user")
		}
	}
	return sub, nil
}
