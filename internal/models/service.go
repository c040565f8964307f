package models

import "time"

// Catalog entry managed by the admin. Professionals register against
// exactly one service type.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceType string  `gorm:"size:80;uniqueIndex;not null" json:"service_type"`
	Description string  `gorm:"type:text" json:"description"`
	BasePrice   float64 `gorm:"not null" json:"base_price"`
	ImageURL    string  `gorm:"size:255" json:"image_url"`

	Professionals []Professional `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
