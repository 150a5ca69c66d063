package model

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a dealership operator. Roles: "admin" | "manager" | "sales".
type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;size:50;not null"`
	FullName     string    `gorm:"size:100;not null"`
	Email        *string   `gorm:"size:100"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"size:20;not null;default:'sales'"`
	Active       bool      `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Admin) TableName() string { return "admins" }
