package models

import "time"

type Professional struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	ServiceID uint     `gorm:"index;not null" json:"service_id"`
	Service   *Service `json:"service,omitempty"`

	Description string `gorm:"type:text" json:"description"`
	Experience  int    `gorm:"default:0" json:"experience"`
	Document    string `gorm:"size:255" json:"document"`

	// Single three-valued state instead of independent is_verified /
	// verification_failed booleans, so verified+rejected cannot coexist.
	VerificationStatus string `gorm:"size:20;default:'unverified';index;not null" json:"verification_status"`

	AdminBlocked bool `gorm:"default:false;not null" json:"admin_blocked"`

	ServiceRequests []ServiceRequest `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Reviews         []Review         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	User *User `json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
