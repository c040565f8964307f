package models

import "time"

type Customer struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	AdminBlocked bool `gorm:"default:false;not null" json:"admin_blocked"`

	ServiceRequests []ServiceRequest `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Reviews         []Review         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	User *User `json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
