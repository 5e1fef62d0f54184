package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an authenticated account in the system. Identity itself
// lives in the external provider; this row anchors order ownership and holds
// the display name used for greeting text.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Auth0ID     string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // identity provider user ID (from 'sub' claim)
	DisplayName string         `gorm:"not null" json:"display_name"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// GreetingName returns the name to greet the user with, falling back to the
// email address when no display name was set.
func (u *User) GreetingName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}
