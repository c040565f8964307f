package models

import "time"

// Reviews are immutable once created. Professional and service ids are
// denormalized from the request so rating queries skip a join.
type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID     uint `gorm:"index;not null" json:"customer_id"`
	ProfessionalID uint `gorm:"index;not null" json:"professional_id"`
	ServiceID      uint `gorm:"index;not null" json:"service_id"`

	// One review per request.
	ServiceRequestID uint `gorm:"uniqueIndex;not null" json:"service_request_id"`

	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Remarks string `gorm:"type:text" json:"remarks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
