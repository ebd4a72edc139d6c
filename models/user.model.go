package models

import (
	"gorm.io/gorm"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	gorm.Model
	Name     string `gorm:"default:''" json:"name"`
	Email    string `gorm:"unique;not null" json:"email"`
	Role     string `gorm:"default:'USER'" json:"role"` // USER or ADMIN
	Password string `gorm:"not null" json:"-"`          // bcrypt hash, never serialized
}
