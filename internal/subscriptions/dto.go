package subscriptions

import (
	"time"

	"github.com/google/uuid"

	"github.com/sea-catering/backend/pkg/enums"
)

// Caller identifies the authenticated actor invoking an operation.
type Caller struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// IsAdmin reports whether the caller holds the administrative role.
func (c Caller) IsAdmin() bool {
	return c.Role == enums.UserRoleAdmin
}

// CreateInput captures a subscription creation request after decoding and
// sanitization. Free-text fields arrive stripped of markup.
type CreateInput struct {
	UserID         *uuid.UUID
	Name           string
	Phone          string
	PlanID         uuid.UUID
	MealTypeIDs    []uuid.UUID
	DeliveryDayIDs []uuid.UUID
	Allergies      *string
}

// Lifecycle actions accepted by Transition.
const (
	ActionPause      = "pause"
	ActionCancel     = "cancel"
	ActionReactivate = "reactivate"
)

// TransitionInput carries a lifecycle action and its optional pause window.
type TransitionInput struct {
	Action     string
	PauseStart *time.Time
	PauseEnd   *time.Time
}

// MetricsResult aggregates the admin dashboard figures for a date range.
type MetricsResult struct {
	From                    time.Time `json:"from"`
	To                      time.Time `json:"to"`
	NewSubscriptions        int64     `json:"new_subscriptions"`
	Reactivations           int64     `json:"reactivations"`
	MonthlyRecurringRevenue int64     `json:"monthly_recurring_revenue"`
}
