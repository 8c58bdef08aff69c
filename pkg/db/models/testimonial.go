package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sea-catering/backend/pkg/enums"
)

// Testimonial holds customer feedback awaiting moderation.
type Testimonial struct {
	ID        uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    *uuid.UUID              `gorm:"column:user_id;type:uuid;index"`
	Name      string                  `gorm:"column:name;not null"`
	Message   string                  `gorm:"column:message;not null"`
	Rating    int                     `gorm:"column:rating;not null"`
	Status    enums.TestimonialStatus `gorm:"column:status;not null;default:'pending'"`
	CreatedAt time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
