// Package model defines the GORM persistence models.
package model

import (
	"time"
)

// UserRoleModel mirrors the 'user_roles' table. One row per identity; the
// role is kept separate from the profile blob so the session resolver can
// read it even when signup never wrote a profile.
type UserRoleModel struct {
	IdentityID string `gorm:"type:varchar(128);primaryKey"`
	Role       string `gorm:"type:varchar(32);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserRoleModel) TableName() string {
	return "user_roles"
}

// UserProfileModel mirrors the 'user_profiles' table.
type UserProfileModel struct {
	IdentityID string `gorm:"type:varchar(128);primaryKey"`
	Role       string `gorm:"type:varchar(32);not null"`
	Name       string `gorm:"type:varchar(100)"`
	Phone      string `gorm:"type:varchar(32)"`
	State      string `gorm:"type:varchar(64)"`
	District   string `gorm:"type:varchar(64)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserProfileModel) TableName() string {
	return "user_profiles"
}
