package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a priced meal-subscription tier. BasePrice is the per-meal price
// in currency minor units; it is read-only to the intake path.
type Plan struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex"`
	Description string    `gorm:"column:description"`
	BasePrice   int64     `gorm:"column:base_price;not null"`
	Active      bool      `gorm:"column:active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
