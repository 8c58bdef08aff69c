package models

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryDay is a selectable weekday. DayOfWeek follows time.Weekday
// numbering, 0=Sunday through 6=Saturday.
type DeliveryDay struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	DayOfWeek int       `gorm:"column:day_of_week;not null"`
	Active    bool      `gorm:"column:active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
