package models

import (
	"time"
)

// Menu represents the food offered on one calendar date: a soup and two
// main-dish options. Menus are administered by an external process and are
// read-only from this API's flows. At most one menu exists per date.
type Menu struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      string    `gorm:"uniqueIndex;not null;size:10" json:"date"` // ISO YYYY-MM-DD
	Soup      string    `gorm:"not null" json:"soup"`
	Option1   string    `gorm:"not null" json:"option1"`
	Option2   string    `gorm:"not null" json:"option2"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Menu model
func (Menu) TableName() string {
	return "menus"
}
