package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for calendar dates. ISO dates
// sort lexicographically in chronological order, so range queries compare
// the raw strings.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

// ValidDate reports whether s is a well-formed ISO calendar date.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// DeletableOn reports whether an order dated orderDate may still be deleted
// at the instant now: only orders strictly in the future are mutable, using
// date-only comparison. Malformed dates are never deletable.
func DeletableOn(orderDate string, now time.Time) bool {
	d, err := ParseDate(orderDate)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d.After(today)
}
