package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sea-catering/backend/pkg/enums"
)

// Subscription is a customer's recurring order: one plan, a set of meal
// types, a set of delivery days, and a server-computed monthly price in
// currency minor units. UserID is nullable so guest-created rows survive.
type Subscription struct {
	ID            uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        *uuid.UUID               `gorm:"column:user_id;type:uuid;index"`
	Name          string                   `gorm:"column:name;not null"`
	Phone         string                   `gorm:"column:phone;not null"`
	PlanID        uuid.UUID                `gorm:"column:plan_id;type:uuid;not null;index"`
	Allergies     *string                  `gorm:"column:allergies"`
	TotalPrice    int64                    `gorm:"column:total_price;not null"`
	Status        enums.SubscriptionStatus `gorm:"column:status;not null;default:'active'"`
	PauseStart    *time.Time               `gorm:"column:pause_start"`
	PauseEnd      *time.Time               `gorm:"column:pause_end"`
	CancelledAt   *time.Time               `gorm:"column:cancelled_at"`
	ReactivatedAt *time.Time               `gorm:"column:reactivated_at"`
	CreatedAt     time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                `gorm:"column:updated_at;autoUpdateTime"`

	Plan         *Plan         `gorm:"foreignKey:PlanID"`
	User         *User         `gorm:"foreignKey:UserID"`
	MealTypes    []MealType    `gorm:"many2many:subscription_meal_types"`
	DeliveryDays []DeliveryDay `gorm:"many2many:subscription_delivery_days"`
}

// SubscriptionMealType pairs a subscription with a selected meal type.
type SubscriptionMealType struct {
	SubscriptionID uuid.UUID `gorm:"column:subscription_id;type:uuid;primaryKey"`
	MealTypeID     uuid.UUID `gorm:"column:meal_type_id;type:uuid;primaryKey"`
}

// SubscriptionDeliveryDay pairs a subscription with a selected delivery day.
type SubscriptionDeliveryDay struct {
	SubscriptionID uuid.UUID `gorm:"column:subscription_id;type:uuid;primaryKey"`
	DeliveryDayID  uuid.UUID `gorm:"column:delivery_day_id;type:uuid;primaryKey"`
}
