package subscriptions

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sea-catering/backend/pkg/db/models"
	"github.com/sea-catering/backend/pkg/enums"
	pkgerrors "github.com/sea-catering/backend/pkg/errors"
	"github.com/sea-catering/backend/pkg/pagination"
)

type stubCatalogRepo struct {
	findActivePlan         func(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	findActiveMealTypes    func(ctx context.Context, ids []uuid.UUID) ([]models.MealType, error)
	findActiveDeliveryDays func(ctx context.Context, ids []uuid.UUID) ([]models.DeliveryDay, error)
}

func (s *stubCatalogRepo) FindActivePlan(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	return s.findActivePlan(ctx, id)
}

func (s *stubCatalogRepo) FindActiveMealTypes(ctx context.Context, ids []uuid.UUID) ([]models.MealType, error) {
	return s.findActiveMealTypes(ctx, ids)
}

func (s *stubCatalogRepo) FindActiveDeliveryDays(ctx context.Context, ids []uuid.UUID) ([]models.DeliveryDay, error) {
	return s.findActiveDeliveryDays(ctx, ids)
}

type stubSubscriptionsRepo struct {
	createWithTx            func(tx *gorm.DB, sub *models.Subscription, mealTypeIDs, deliveryDayIDs []uuid.UUID) error
	findByID                func(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	list                    func(ctx context.Context, opts listQuery) ([]models.Subscription, int64, error)
	updateLifecycle         func(ctx context.Context, sub *models.Subscription) error
	deleteByID              func(ctx context.Context, id uuid.UUID) error
	countCreatedBetween     func(ctx context.Context, from, to time.Time) (int64, error)
	countReactivatedBetween func(ctx context.Context, from, to time.Time) (int64, error)
	sumActiveTotals         func(ctx context.Context) (int64, error)
}

func (s *stubSubscriptionsRepo) CreateWithTx(tx *gorm.DB, sub *models.Subscription, mealTypeIDs, deliveryDayIDs []uuid.UUID) error {
	return s.createWithTx(tx, sub, mealTypeIDs, deliveryDayIDs)
}

func (s *stubSubscriptionsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	return s.findByID(ctx, id)
}

func (s *stubSubscriptionsRepo) List(ctx context.Context, opts listQuery) ([]models.Subscription, int64, error) {
	return s.list(ctx, opts)
}

func (s *stubSubscriptionsRepo) UpdateLifecycle(ctx context.Context, sub *models.Subscription) error {
	return s.updateLifecycle(ctx, sub)
}

func (s *stubSubscriptionsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteByID(ctx, id)
}

func (s *stubSubscriptionsRepo) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return s.countCreatedBetween(ctx, from, to)
}

func (s *stubSubscriptionsRepo) CountReactivatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return s.countReactivatedBetween(ctx, from, to)
}

func (s *stubSubscriptionsRepo) SumActiveTotals(ctx context.Context) (int64, error) {
	return s.sumActiveTotals(ctx)
}

type stubTxRunner struct {
	runs int
	fail error
}

func (s *stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.runs++
	if s.fail != nil {
		return s.fail
	}
	return fn(nil)
}

func newTestService(t *testing.T, repo *stubSubscriptionsRepo, catalog *stubCatalogRepo, tx *stubTxRunner) *service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:              repo,
		CatalogRepo:       catalog,
		TransactionRunner: tx,
	})
	require.NoError(t, err)
	typed, ok := svc.(*service)
	require.True(t, ok)
	return typed
}

func uuids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func workingCatalog(plan *models.Plan) *stubCatalogRepo {
	return &stubCatalogRepo{
		findActivePlan: func(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
			return plan, nil
		},
		findActiveMealTypes: func(ctx context.Context, ids []uuid.UUID) ([]models.MealType, error) {
			out := make([]models.MealType, len(ids))
			for i, id := range ids {
				out[i] = models.MealType{ID: id, Active: true}
			}
			return out, nil
		},
		findActiveDeliveryDays: func(ctx context.Context, ids []uuid.UUID) ([]models.DeliveryDay, error) {
			out := make([]models.DeliveryDay, len(ids))
			for i, id := range ids {
				out[i] = models.DeliveryDay{ID: id, Active: true}
			}
			return out, nil
		},
	}
}

func TestServiceCreateComputesPriceServerSide(t *testing.T) {
	plan := &models.Plan{ID: uuid.New(), Name: "Protein Plan", BasePrice: 40000, Active: true}
	userID := uuid.New()

	var persisted *models.Subscription
	repo := &stubSubscriptionsRepo{
		createWithTx: func(tx *gorm.DB, sub *models.Subscription, mealTypeIDs, deliveryDayIDs []uuid.UUID) error {
			sub.ID = uuid.New()
			persisted = sub
			return nil
		},
	}
	tx := &stubTxRunner{}
	svc := newTestService(t, repo, workingCatalog(plan), tx)

	sub, err := svc.Create(context.Background(), CreateInput{
		UserID:         &userID,
		Name:           "Budi Santoso",
		Phone:          "+628123456789",
		PlanID:         plan.ID,
		MealTypeIDs:    uuids(2),
		DeliveryDayIDs: uuids(5),
	})
	require.NoError(t, err)
	require.NotNil(t, persisted)

	// 40000 * 2 * 5 * 4.3
	assert.Equal(t, int64(1_720_000), sub.TotalPrice)
	assert.Equal(t, enums.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, 1, tx.runs)
	assert.Equal(t, plan.ID, persisted.PlanID)
}

func TestServiceCreateCollectsEveryFieldError(t *testing.T) {
	repo := &stubSubscriptionsRepo{}
	catalog := &stubCatalogRepo{
		findActivePlan: func(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
			t.Fatal("catalog must not be queried for an invalid payload")
			return nil, nil
		},
	}
	tx := &stubTxRunner{}
	svc := newTestService(t, repo, catalog, tx)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:           "B",
		Phone:          "",
		MealTypeIDs:    nil,
		DeliveryDayIDs: uuids(8),
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "phone")
	assert.Contains(t, details, "plan_id")
	assert.Contains(t, details, "meal_type_ids")
	assert.Contains(t, details, "delivery_day_ids")
	assert.Equal(t, 0, tx.runs)
}

func TestServiceCreateRejectsDuplicateSelections(t *testing.T) {
	dup := uuid.New()
	svc := newTestService(t, &stubSubscriptionsRepo{}, &stubCatalogRepo{}, &stubTxRunner{})

	_, err := svc.Create(context.Background(), CreateInput{
		Name:           "Budi Santoso",
		Phone:          "+628123456789",
		PlanID:         uuid.New(),
		MealTypeIDs:    []uuid.UUID{dup, dup},
		DeliveryDayIDs: uuids(2),
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details["meal_type_ids"], "duplicates")
}

func TestServiceCreateUnknownPlanDoesNotWrite(t *testing.T) {
	tx := &stubTxRunner{}
	catalog := &stubCatalogRepo{
		findActivePlan: func(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestService(t, &stubSubscriptionsRepo{}, catalog, tx)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:           "Budi Santoso",
		Phone:          "+628123456789",
		PlanID:         uuid.New(),
		MealTypeIDs:    uuids(1),
		DeliveryDayIDs: uuids(1),
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInvalidReference, typed.Code())
	assert.Equal(t, 0, tx.runs)
}

func TestServiceCreateMissingMealTypeDoesNotWrite(t *testing.T) {
	plan := &models.Plan{ID: uuid.New(), BasePrice: 30000, Active: true}
	tx := &stubTxRunner{}
	catalog := workingCatalog(plan)
	catalog.findActiveMealTypes = func(ctx context.Context, ids []uuid.UUID) ([]models.MealType, error) {
		// one of the requested ids is missing or inactive
		return []models.MealType{{ID: ids[0], Active: true}}, nil
	}
	svc := newTestService(t, &stubSubscriptionsRepo{}, catalog, tx)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:           "Budi Santoso",
		Phone:          "+628123456789",
		PlanID:         plan.ID,
		MealTypeIDs:    uuids(2),
		DeliveryDayIDs: uuids(1),
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInvalidReference, typed.Code())
	assert.Equal(t, 0, tx.runs)
}

func ownedSubscription(ownerID uuid.UUID, status enums.SubscriptionStatus) *models.Subscription {
	return &models.Subscription{
		ID:     uuid.New(),
		UserID: &ownerID,
		Status: status,
	}
}

func TestServiceTransitionPauseRequiresWindow(t *testing.T) {
	owner := uuid.New()
	sub := ownedSubscription(owner, enums.SubscriptionStatusActive)
	repo := &stubSubscriptionsRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
			return sub, nil
		},
	}
	svc := newTestService(t, repo, &stubCatalogRepo{}, &stubTxRunner{})

	start := time.Now().Add(24 * time.Hour)
	_, err := svc.Transition(context.Background(), Caller{UserID: owner, Role: enums.UserRoleUser}, sub.ID, TransitionInput{
		Action:     ActionPause,
		PauseStart: &start,
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Contains(t, typed.Message(), "pause_end")
}

func TestServiceTransitionPauseSetsWindow(t *testing.T) {
	owner := uuid.New()
	sub := ownedSubscription(owner, enums.SubscriptionStatusActive)
	var updated *models.Subscription
	repo := &stubSubscriptionsRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
			return sub, nil
		},
		updateLifecycle: func(ctx context.Context, s *models.Subscription) error {
			updated = s
			return nil
		},
	}
	svc := newTestService(t, repo, &stubCatalogRepo{}, &stubTxRunner{})

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 14)
	got, err := svc.Transition(context.Background(), Caller{UserID: owner, Role: enums.UserRoleUser}, sub.ID, TransitionInput{
		Action:     ActionPause,
		PauseStart: &start,
		PauseEnd:   &end,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, enums.SubscriptionStatusPaused, got.Status)
	assert.Equal(t, &start, got.PauseStart)
	assert.Equal(t, &end, got.PauseEnd)
}

// Reactivate is accepted from CANCELLED without a prior-status check. The
// transition model is deliberately permissive and this test pins that
// behavior down.
func TestServiceTransitionReactivateFromCancelled(t *testing.T) {
	owner := uuid.New()
	cancelledAt := time.Now().Add(-48 * time.Hour)
	sub := ownedSubscription(owner, enums.SubscriptionStatusCancelled)
	sub.CancelledAt = &cancelledAt

	repo := &stubSubscriptionsRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
			return sub, nil
		},
		updateLifecycle: func(ctx context.Context, s *models.Subscription) error {
			return nil
		},
	}
	svc := newTestService(t, repo, &stubCatalogRepo{}, &stubTxRunner{})

	got, err := svc.Transition(context.Background(), Caller{UserID: owner, Role: enums.UserRoleUser}, sub.ID, TransitionInput{
		Action: ActionReactivate,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.SubscriptionStatusActive, got.Status)
	assert.NotNil(t, got.ReactivatedAt)
	assert.Nil(t, got.PauseStart)
	assert.Nil(t, got.PauseEnd)
}

func TestServiceTransitionCancelStampsTime(t *testing.T) {
	owner := uuid.New()
	sub := ownedSubscription(owner, enums.SubscriptionStatusActive)
	repo := &stubSubscriptionsRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
			return sub, nil
		},
		updateLifecycle: func(ctx context.Context, s *models.Subscription) error {
			return nil
		},
	}
	svc := newTestService(t, repo, &stubCatalogRepo{}, &stubTxRunner{})
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc.timeFunc = func() time.Time { return fixed }

	got, err := svc.Transition(context.Background(), Caller{UserID: owner, Role: enums.UserRoleUser}, sub.ID, TransitionInput{
		Action: ActionCancel,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.SubscriptionStatusCancelled, got.Status)
	require.NotNil(t, got.CancelledAt)
	assert.Equal(t, fixed, *got.CancelledAt)
}

func TestServiceTransitionRejectsUnknownAction(t *testing.T) {
	owner := uuid.New()
	sub := ownedSubscription(owner, enums.SubscriptionStatusActive)
	repo := &stubSubscriptionsRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
			return sub, nil
		},
	}
	svc := newTestService(t, repo, &stubCatalogRepo{}, &stubTxRunner{})

	_, err := svc.Transition(context.Background(), Caller{UserID: owner, Role: enums.UserRoleUser}, sub.ID, TransitionInput{
		Action: "resume",
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.True(t, strings.Contains(typed.Message(), "invalid action"))
}

func TestServiceGetDeniesOtherUsers(t *testing.T) {
	owner := uuid.New()
	sub := ownedSubscription(owner, enums.SubscriptionStatusActive)
	repo := &stubSubscriptionsRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
			return sub, nil
		},
	}
	svc := newTestService(t, repo, &stubCatalogRepo{}, &stubTxRunner{})

	_, err := svc.Get(context.Background(), Caller{UserID: uuid.New(), Role: enums.UserRoleUser}, sub.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	got, err := svc.Get(context.Background(), Caller{UserID: uuid.New(), Role: enums.UserRoleAdmin}, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)
}

func TestServiceGetUnknownIDIsNotFound(t *testing.T) {
	repo := &stubSubscriptionsRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestService(t, repo, &stubCatalogRepo{}, &stubTxRunner{})

	_, err := svc.Get(context.Background(), Caller{UserID: uuid.New(), Role: enums.UserRoleUser}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestServiceListScopesByRole(t *testing.T) {
	owner := uuid.New()
	var captured listQuery
	repo := &stubSubscriptionsRepo{
		list: func(ctx context.Context, opts listQuery) ([]models.Subscription, int64, error) {
			captured = opts
			return []models.Subscription{}, 0, nil
		},
	}
	svc := newTestService(t, repo, &stubCatalogRepo{}, &stubTxRunner{})

	_, _, err := svc.List(context.Background(), Caller{UserID: owner, Role: enums.UserRoleUser}, pagination.Params{})
	require.NoError(t, err)
	require.NotNil(t, captured.userID)
	assert.Equal(t, owner, *captured.userID)
	assert.False(t, captured.withProfile)

	_, _, err = svc.List(context.Background(), Caller{UserID: uuid.New(), Role: enums.UserRoleAdmin}, pagination.Params{})
	require.NoError(t, err)
	assert.Nil(t, captured.userID)
	assert.True(t, captured.withProfile)
}

func TestServiceListRequiresAuthentication(t *testing.T) {
	svc := newTestService(t, &stubSubscriptionsRepo{}, &stubCatalogRepo{}, &stubTxRunner{})

	_, _, err := svc.List(context.Background(), Caller{}, pagination.Params{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestServiceListPaginationDefaults(t *testing.T) {
	var captured listQuery
	repo := &stubSubscriptionsRepo{
		list: func(ctx context.Context, opts listQuery) ([]models.Subscription, int64, error) {
			captured = opts
			return make([]models.Subscription, 10), 23, nil
		},
	}
	svc := newTestService(t, repo, &stubCatalogRepo{}, &stubTxRunner{})

	_, page, err := svc.List(context.Background(), Caller{UserID: uuid.New(), Role: enums.UserRoleUser}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, 0, captured.offset)
	assert.Equal(t, 10, captured.limit)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, int64(23), page.Total)
	assert.Equal(t, 3, page.TotalPages)
}

func TestServiceDeleteRequiresOwnership(t *testing.T) {
	owner := uuid.New()
	sub := ownedSubscription(owner, enums.SubscriptionStatusActive)
	deleted := false
	repo := &stubSubscriptionsRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
			return sub, nil
		},
		deleteByID: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	svc := newTestService(t, repo, &stubCatalogRepo{}, &stubTxRunner{})

	err := svc.Delete(context.Background(), Caller{UserID: uuid.New(), Role: enums.UserRoleUser}, sub.ID)
	require.Error(t, err)
	assert.False(t, deleted)

	err = svc.Delete(context.Background(), Caller{UserID: owner, Role: enums.UserRoleUser}, sub.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestServiceMetricsValidatesWindow(t *testing.T) {
	svc := newTestService(t, &stubSubscriptionsRepo{}, &stubCatalogRepo{}, &stubTxRunner{})

	now := time.Now()
	_, err := svc.Metrics(context.Background(), now, now.Add(-time.Hour))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestServiceMetricsAggregates(t *testing.T) {
	repo := &stubSubscriptionsRepo{
		countCreatedBetween: func(ctx context.Context, from, to time.Time) (int64, error) {
			return 12, nil
		},
		countReactivatedBetween: func(ctx context.Context, from, to time.Time) (int64, error) {
			return 3, nil
		},
		sumActiveTotals: func(ctx context.Context) (int64, error) {
			return 5_430_000, nil
		},
	}
	svc := newTestService(t, repo, &stubCatalogRepo{}, &stubTxRunner{})

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	result, err := svc.Metrics(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(12), result.NewSubscriptions)
	assert.Equal(t, int64(3), result.Reactivations)
	assert.Equal(t, int64(5_430_000), result.MonthlyRecurringRevenue)
}
