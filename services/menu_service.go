package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/comedor/lunch-orders-api/models"
)

// MenuService reads the day's menu from the store. Menus are maintained by an
// external administrative process; this service never writes them.
type MenuService struct {
	db *gorm.DB
}

// NewMenuService creates a new menu service backed by db
func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

// GetForDate returns the unique menu for a calendar date, or nil when no menu
// is configured for that date. A date with no menu is a normal state, not an
// error: only transport/store failures produce a non-nil error, and even then
// callers are expected to render the plain "no menu" outcome.
func (s *MenuService) GetForDate(date string) (*models.Menu, error) {
	if date == "" {
		return nil, nil
	}

	var menu models.Menu
	err := s.db.Where("date = ?", date).First(&menu).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("menu lookup failed for %s: %v", date, err)
		return nil, err
	}

	return &menu, nil
}

// GetForDates returns the menus matching any of the given dates, keyed by
// date. Store failures degrade to an empty map.
func (s *MenuService) GetForDates(dates []string) map[string]models.Menu {
	byDate := make(map[string]models.Menu)
	if len(dates) == 0 {
		return byDate
	}

	var menus []models.Menu
	if err := s.db.Where("date IN ?", dates).Find(&menus).Error; err != nil {
		log.Printf("menu lookup failed for %d dates: %v", len(dates), err)
		return byDate
	}

	for _, m := range menus {
		byDate[m.Date] = m
	}
	return byDate
}
