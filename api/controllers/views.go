package controllers

import (
	"time"

	"github.com/google/uuid"

	"github.com/sea-catering/backend/pkg/db/models"
	"github.com/sea-catering/backend/pkg/enums"
)

type planView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	BasePrice   int64     `json:"base_price"`
}

func newPlanView(plan models.Plan) planView {
	return planView{
		ID:          plan.ID,
		Name:        plan.Name,
		Slug:        plan.Slug,
		Description: plan.Description,
		BasePrice:   plan.BasePrice,
	}
}

func newPlanViews(rows []models.Plan) []planView {
	out := make([]planView, 0, len(rows))
	for _, row := range rows {
		out = append(out, newPlanView(row))
	}
	return out
}

type mealTypeView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func newMealTypeViews(rows []models.MealType) []mealTypeView {
	out := make([]mealTypeView, 0, len(rows))
	for _, row := range rows {
		out = append(out, mealTypeView{ID: row.ID, Name: row.Name})
	}
	return out
}

type deliveryDayView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	DayOfWeek int       `json:"day_of_week"`
}

func newDeliveryDayViews(rows []models.DeliveryDay) []deliveryDayView {
	out := make([]deliveryDayView, 0, len(rows))
	for _, row := range rows {
		out = append(out, deliveryDayView{ID: row.ID, Name: row.Name, DayOfWeek: row.DayOfWeek})
	}
	return out
}

type subscriptionView struct {
	ID            uuid.UUID                `json:"id"`
	Name          string                   `json:"name"`
	Phone         string                   `json:"phone"`
	Plan          *planView                `json:"plan,omitempty"`
	MealTypes     []mealTypeView           `json:"meal_types"`
	DeliveryDays  []deliveryDayView        `json:"delivery_days"`
	Allergies     *string                  `json:"allergies,omitempty"`
	TotalPrice    int64                    `json:"total_price"`
	Status        enums.SubscriptionStatus `json:"status"`
	PauseStart    *time.Time               `json:"pause_start,omitempty"`
	PauseEnd      *time.Time               `json:"pause_end,omitempty"`
	CancelledAt   *time.Time               `json:"cancelled_at,omitempty"`
	ReactivatedAt *time.Time               `json:"reactivated_at,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	Owner         *models.PublicProfile    `json:"owner,omitempty"`
}

func newSubscriptionView(sub models.Subscription, withOwner bool) subscriptionView {
	view := subscriptionView{
		ID:            sub.ID,
		Name:          sub.Name,
		Phone:         sub.Phone,
		MealTypes:     newMealTypeViews(sub.MealTypes),
		DeliveryDays:  newDeliveryDayViews(sub.DeliveryDays),
		Allergies:     sub.Allergies,
		TotalPrice:    sub.TotalPrice,
		Status:        sub.Status,
		PauseStart:    sub.PauseStart,
		PauseEnd:      sub.PauseEnd,
		CancelledAt:   sub.CancelledAt,
		ReactivatedAt: sub.ReactivatedAt,
		CreatedAt:     sub.CreatedAt,
	}
	if sub.Plan != nil {
		plan := newPlanView(*sub.Plan)
		view.Plan = &plan
	}
	if withOwner && sub.User != nil {
		owner := sub.User.Public()
		view.Owner = &owner
	}
	return view
}

func newSubscriptionViews(rows []models.Subscription, withOwner bool) []subscriptionView {
	out := make([]subscriptionView, 0, len(rows))
	for _, row := range rows {
		out = append(out, newSubscriptionView(row, withOwner))
	}
	return out
}

type testimonialView struct {
	ID        uuid.UUID               `json:"id"`
	Name      string                  `json:"name"`
	Message   string                  `json:"message"`
	Rating    int                     `json:"rating"`
	Status    enums.TestimonialStatus `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
}

func newTestimonialView(row models.Testimonial) testimonialView {
	return testimonialView{
		ID:        row.ID,
		Name:      row.Name,
		Message:   row.Message,
		Rating:    row.Rating,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
	}
}

func newTestimonialViews(rows []models.Testimonial) []testimonialView {
	out := make([]testimonialView, 0, len(rows))
	for _, row := range rows {
		out = append(out, newTestimonialView(row))
	}
	return out
}

type userView struct {
	ID    uuid.UUID      `json:"id"`
	Name  string         `json:"name"`
	Email string         `json:"email"`
	Role  enums.UserRole `json:"role"`
}

func newUserView(user *models.User) userView {
	return userView{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
}
