package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/comedor/lunch-orders-api/models"
	"github.com/comedor/lunch-orders-api/utils"
)

// RangeWarningInvalid is reported inline when the history range is reversed.
// It is a message for the user, never an error: the request still succeeds
// with an empty result.
const RangeWarningInvalid = "Invalid date range"

// OrderService owns the lifecycle of orders: submission, day listing, history
// range listing and future-date deletion. There is no update path; an order
// is immutable from creation until it is deleted.
type OrderService struct {
	db    *gorm.DB
	menus *MenuService
}

// NewOrderService creates a new order service backed by db
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db, menus: NewMenuService(db)}
}

// Submit validates the minimal preconditions and inserts one order row for
// the user. Preconditions are checked in order and the first failure wins:
// an authenticated user must be present, then an order type must have been
// selected. Nothing blocks several orders for the same user, date and type;
// the UI lists all of them.
func (s *OrderService) Submit(user *models.User, date string, typ models.OrderType, extraPortion bool, note *string) (*models.Order, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	if typ == "" {
		return nil, ErrMissingSelection
	}

	order := models.Order{
		UserID:       user.ID,
		Date:         date,
		Type:         typ,
		ExtraPortion: extraPortion,
		Note:         note,
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("error registering order: %s", err.Error())
	}

	return &order, nil
}

// ListForDate returns all of the user's orders for one date in creation
// order (ascending id). An empty date yields an empty slice without touching
// the store, and store failures degrade to an empty slice as well (logged,
// not surfaced).
func (s *OrderService) ListForDate(userID uint, date string) []models.Order {
	if date == "" {
		return []models.Order{}
	}

	var orders []models.Order
	err := s.db.
		Where("user_id = ? AND date = ?", userID, date).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		log.Printf("day orders fetch failed for user %d on %s: %v", userID, date, err)
		return []models.Order{}
	}

	return orders
}

// ListRange returns the user's orders with dates inside the closed interval
// [desde, hasta], newest date first, together with the menus needed to
// describe them keyed by date.
//
// An empty bound means the range is not fully specified yet: no query runs.
// A reversed range (desde > hasta) returns an empty result plus the
// RangeWarningInvalid warning. A store failure on either fetch degrades that
// fetch to empty without aborting the other.
func (s *OrderService) ListRange(userID uint, desde, hasta string) (orders []models.Order, menus map[string]models.Menu, warning string) {
	orders = []models.Order{}
	menus = map[string]models.Menu{}

	if desde == "" || hasta == "" {
		return orders, menus, ""
	}
	if desde > hasta {
		return orders, menus, RangeWarningInvalid
	}

	err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, desde, hasta).
		Order("date DESC").
		Find(&orders).Error
	if err != nil {
		log.Printf("history fetch failed for user %d [%s, %s]: %v", userID, desde, hasta, err)
		orders = []models.Order{}
	}

	menus = s.menus.GetForDates(distinctDates(orders))
	return orders, menus, ""
}

// Delete removes one order. The caller-side "future date only" gate is a UX
// hint; the rules are re-checked here so a direct API call cannot bypass
// them: the order must exist, belong to the user, and be dated strictly
// after today.
func (s *OrderService) Delete(userID, orderID uint, now time.Time) error {
	var order models.Order
	err := s.db.First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("deletion failed: %s", err.Error())
	}

	if order.UserID != userID {
		return ErrNotOwner
	}
	if !utils.DeletableOn(order.Date, now) {
		return ErrOrderLocked
	}

	if err := s.db.Delete(&order).Error; err != nil {
		return fmt.Errorf("deletion failed: %s", err.Error())
	}
	return nil
}

// distinctDates returns the unique dates among the orders, preserving first
// appearance order.
func distinctDates(orders []models.Order) []string {
	seen := make(map[string]struct{}, len(orders))
	dates := make([]string, 0, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.Date]; ok {
			continue
		}
		seen[o.Date] = struct{}{}
		dates = append(dates, o.Date)
	}
	return dates
}
