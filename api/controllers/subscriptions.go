package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sea-catering/backend/api/middleware"
	"github.com/sea-catering/backend/api/responses"
	"github.com/sea-catering/backend/api/validators"
	"github.com/sea-catering/backend/internal/subscriptions"
	"github.com/sea-catering/backend/pkg/enums"
	pkgerrors "github.com/sea-catering/backend/pkg/errors"
	"github.com/sea-catering/backend/pkg/logger"
	"github.com/sea-catering/backend/pkg/pagination"
)

type createSubscriptionRequest struct {
	Name           string      `json:"name" validate:"required,min=2,max=100"`
	Phone          string      `json:"phone" validate:"required,phone"`
	PlanID         uuid.UUID   `json:"plan_id" validate:"required"`
	MealTypeIDs    []uuid.UUID `json:"meal_type_ids" validate:"required,min=1,max=3,unique"`
	DeliveryDayIDs []uuid.UUID `json:"delivery_day_ids" validate:"required,min=1,max=7,unique"`
	Allergies      *string     `json:"allergies" validate:"omitempty,max=500"`
}

type transitionSubscriptionRequest struct {
	Action     string     `json:"action" validate:"required,oneof=pause cancel reactivate"`
	PauseStart *time.Time `json:"pause_start"`
	PauseEnd   *time.Time `json:"pause_end"`
}

func callerFromContext(r *http.Request) (subscriptions.Caller, error) {
	rawID := middleware.UserIDFromContext(r.Context())
	if rawID == "" {
		return subscriptions.Caller{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return subscriptions.Caller{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	role, err := enums.ParseUserRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		role = enums.UserRoleUser
	}
	return subscriptions.Caller{UserID: userID, Role: role}, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "id must be a valid uuid")
	}
	return id, nil
}

func pageParams(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, 1_000_000)
	if err != nil {
		return pagination.Params{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, Limit: limit}, nil
}

// SubscriptionsCreate wires subscription intake into the HTTP layer.
func SubscriptionsCreate(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		caller, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createSubscriptionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var allergies *string
		if body.Allergies != nil {
			cleaned := validators.SanitizeString(*body.Allergies, 500)
			if cleaned != "" {
				allergies = &cleaned
			}
		}

		userID := caller.UserID
		sub, err := svc.Create(r.Context(), subscriptions.CreateInput{
			UserID:         &userID,
			Name:           validators.SanitizeString(body.Name, 100),
			Phone:          body.Phone,
			PlanID:         body.PlanID,
			MealTypeIDs:    body.MealTypeIDs,
			DeliveryDayIDs: body.DeliveryDayIDs,
			Allergies:      allergies,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newSubscriptionView(*sub, false))
	}
}

// SubscriptionsList pages the caller's subscriptions; admins get every row
// with the owner profile attached.
func SubscriptionsList(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		caller, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, page, err := svc.List(r.Context(), caller, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePaged(w, newSubscriptionViews(rows, caller.IsAdmin()), page)
	}
}

// SubscriptionsGet serves one subscription by id.
func SubscriptionsGet(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		caller, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sub, err := svc.Get(r.Context(), caller, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSubscriptionView(*sub, caller.IsAdmin()))
	}
}

// SubscriptionsTransition applies a pause, cancel, or reactivate action.
func SubscriptionsTransition(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		caller, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body transitionSubscriptionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sub, err := svc.Transition(r.Context(), caller, id, subscriptions.TransitionInput{
			Action:     body.Action,
			PauseStart: body.PauseStart,
			PauseEnd:   body.PauseEnd,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSubscriptionView(*sub, caller.IsAdmin()))
	}
}

// SubscriptionsDelete removes a subscription permanently.
func SubscriptionsDelete(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		caller, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), caller, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
