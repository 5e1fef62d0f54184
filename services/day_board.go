package services

import (
	"sync"

	"github.com/comedor/lunch-orders-api/models"
)

// DaySnapshot is everything one screen needs for a selected date: the menu
// (nil when none is configured) and the user's orders for that date.
type DaySnapshot struct {
	Date   string         `json:"date"`
	Menu   *models.Menu   `json:"menu"`
	Orders []models.Order `json:"orders"`
}

// DayBoard coordinates the fetches triggered by date selection for one
// session. Each Select bumps a generation counter; a fetch that completes
// after the user has already moved on to another date is discarded instead
// of overwriting newer data, so a slow query can never win over a later
// selection.
//
// fetch runs in its own goroutine and may block on the store; publish is
// invoked with the board's mutex held, so deliveries never interleave.
type DayBoard struct {
	mu         sync.Mutex
	generation uint64
	fetch      func(date string) DaySnapshot
	publish    func(DaySnapshot)
}

// NewDayBoard creates a day board that loads snapshots with fetch and
// delivers current ones through publish
func NewDayBoard(fetch func(date string) DaySnapshot, publish func(DaySnapshot)) *DayBoard {
	return &DayBoard{fetch: fetch, publish: publish}
}

// Select reacts to the user picking a date. An empty date clears nothing and
// fetches nothing. The snapshot is published only if no newer Select happened
// while the fetch was in flight.
func (b *DayBoard) Select(date string) {
	if date == "" {
		return
	}

	b.mu.Lock()
	b.generation++
	gen := b.generation
	b.mu.Unlock()

	go func() {
		snapshot := b.fetch(date)

		b.mu.Lock()
		defer b.mu.Unlock()
		if gen != b.generation {
			// A newer date was selected while this fetch was in flight.
			return
		}
		b.publish(snapshot)
	}()
}

// DayFetch builds a DayBoard fetch function that loads the menu and the
// user's day orders concurrently. Either fetch degrades independently: a
// failed menu lookup yields a nil menu, a failed orders fetch an empty list.
func DayFetch(menus *MenuService, orders *OrderService, userID uint) func(date string) DaySnapshot {
	return func(date string) DaySnapshot {
		var (
			menu *models.Menu
			list []models.Order
			wg   sync.WaitGroup
		)

		wg.Add(2)
		go func() {
			defer wg.Done()
			menu, _ = menus.GetForDate(date)
		}()
		go func() {
			defer wg.Done()
			list = orders.ListForDate(userID, date)
		}()
		wg.Wait()

		return DaySnapshot{Date: date, Menu: menu, Orders: list}
	}
}
