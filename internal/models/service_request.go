package models

import "time"

type ServiceRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint     `gorm:"index;not null" json:"service_id"`
	Service   *Service `json:"service,omitempty"`

	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	Customer   *Customer `json:"customer,omitempty"`

	// Nullable: a rejected request keeps its professional until an admin
	// reassigns it, but the schema allows detaching.
	ProfessionalID *uint         `gorm:"index" json:"professional_id"`
	Professional   *Professional `json:"professional,omitempty"`

	ProposedPrice    *float64   `json:"proposed_price"`
	DateOfRequest    time.Time  `gorm:"index;not null" json:"date_of_request"`
	DateOfCompletion *time.Time `json:"date_of_completion"`

	Status  string `gorm:"size:20;default:'requested';index;not null" json:"status"`
	Remarks string `gorm:"type:text" json:"remarks"`

	Review *Review `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"review,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
