package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OrderType is the closed set of meal selections a user can order.
// It is stored as a plain string column so that codes written by older
// clients remain representable; unknown codes fall through Describe verbatim.
type OrderType string

const (
	TypeSoup    OrderType = "soup"    // soup only
	TypeOption1 OrderType = "option1" // first main dish only
	TypeOption2 OrderType = "option2" // second main dish only
	TypeCombo1  OrderType = "combo1"  // soup + first main dish
	TypeCombo2  OrderType = "combo2"  // soup + second main dish
)

// OrderTypes lists every known order type, in menu display order.
func OrderTypes() []OrderType {
	return []OrderType{TypeSoup, TypeOption1, TypeOption2, TypeCombo1, TypeCombo2}
}

// Known reports whether t is one of the closed set of order types.
func (t OrderType) Known() bool {
	switch t {
	case TypeSoup, TypeOption1, TypeOption2, TypeCombo1, TypeCombo2:
		return true
	}
	return false
}

// Describe maps the order type plus the menu for the order's date to a
// human-readable label. When no menu is available for that date the raw code
// is returned as a degraded label; that is a documented fallback, not an
// error. Combos name the menu's actual soup rather than the literal word
// "soup". Total function: every input yields a string, never an error.
func (t OrderType) Describe(menu *Menu) string {
	if menu == nil {
		return string(t)
	}
	switch t {
	case TypeSoup:
		return "Soup only"
	case TypeOption1:
		return fmt.Sprintf("Main dish only: %s", menu.Option1)
	case TypeOption2:
		return fmt.Sprintf("Main dish only: %s", menu.Option2)
	case TypeCombo1:
		return fmt.Sprintf("Combo option 1 (%s + %s)", menu.Soup, menu.Option1)
	case TypeCombo2:
		return fmt.Sprintf("Combo option 2 (%s + %s)", menu.Soup, menu.Option2)
	default:
		return string(t)
	}
}

// Order represents one user's meal request for one date. Orders are created
// once, listed by day or by range, and deleted while their date is still in
// the future; there is no update-in-place path.
type Order struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	User         User           `gorm:"foreignKey:UserID" json:"-"`
	Date         string         `gorm:"not null;index;size:10" json:"date"` // ISO YYYY-MM-DD
	Type         OrderType      `gorm:"not null" json:"type"`
	ExtraPortion bool           `gorm:"not null;default:false" json:"extra_portion"`
	Note         *string        `json:"note"` // nullable free text ("no onions", "to go", ...)
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
