package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sea-catering/backend/api/middleware"
	"github.com/sea-catering/backend/api/responses"
	"github.com/sea-catering/backend/api/validators"
	"github.com/sea-catering/backend/internal/testimonials"
	pkgerrors "github.com/sea-catering/backend/pkg/errors"
	"github.com/sea-catering/backend/pkg/logger"
)

type createTestimonialRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Message string `json:"message" validate:"required,min=10,max=1000"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
}

type reviewTestimonialRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}

// TestimonialsCreate accepts a customer submission; it lands in the
// moderation queue as pending.
func TestimonialsCreate(svc testimonials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "testimonial service unavailable"))
			return
		}

		var body createTestimonialRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var userID *uuid.UUID
		if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
			if parsed, err := uuid.Parse(raw); err == nil {
				userID = &parsed
			}
		}

		row, err := svc.Create(r.Context(), testimonials.CreateInput{
			UserID:  userID,
			Name:    validators.SanitizeString(body.Name, 100),
			Message: validators.SanitizeString(body.Message, 1000),
			Rating:  body.Rating,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newTestimonialView(*row))
	}
}

// TestimonialsListApproved serves the public approved feed.
func TestimonialsListApproved(svc testimonials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "testimonial service unavailable"))
			return
		}

		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, page, err := svc.ListApproved(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePaged(w, newTestimonialViews(rows), page)
	}
}

// TestimonialsListPending serves the admin moderation queue.
func TestimonialsListPending(svc testimonials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "testimonial service unavailable"))
			return
		}

		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, page, err := svc.ListPending(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePaged(w, newTestimonialViews(rows), page)
	}
}

// TestimonialsReview applies an admin moderation decision.
func TestimonialsReview(svc testimonials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "testimonial service unavailable"))
			return
		}

		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body reviewTestimonialRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Review(r.Context(), id, *body.Approve)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newTestimonialView(*row))
	}
}
