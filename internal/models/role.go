package models

import (
	"time"

	"gorm.io/datatypes"
)

type Role struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Slug        string         `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description *string        `gorm:"type:text" json:"description"`
	Permissions datatypes.JSON `json:"permissions"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	IsSystem    bool           `gorm:"default:false" json:"is_system"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Role) TableName() string { return "roles" }

// RoleWithUsage is a role plus the number of users assigned to it.
type RoleWithUsage struct {
	Role
	UserCount int64 `json:"user_count"`
}

// RoleMember is a user listed under a role.
type RoleMember struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Contact    *string   `json:"contact"`
	UserType   string    `json:"user_type"`
	RoleID     *int64    `json:"role_id"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}
