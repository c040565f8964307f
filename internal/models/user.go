package models

import "time"

const (
	RoleAdmin        = "admin"
	RoleCustomer     = "customer"
	RoleProfessional = "professional"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;index;not null" json:"role"`

	Address  string `gorm:"size:200;index" json:"address"`
	Pin      string `gorm:"size:20;index" json:"pin"`
	IsActive bool   `gorm:"default:true;not null" json:"is_active"`

	APIKey *string `gorm:"size:64;uniqueIndex" json:"-"`

	Customer     *Customer     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer,omitempty"`
	Professional *Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"professional,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
