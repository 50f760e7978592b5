// utils/dates.go
package utils

import (
	"errors"
	"time"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

var minServiceDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParseServiceDate parses a YYYY-MM-DD value and rejects dates outside
// 1900-01-01 through today.
func ParseServiceDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, errors.New("service date must be in YYYY-MM-DD format")
	}
	if t.Before(minServiceDate) || t.After(BeginningOfDay(time.Now().UTC())) {
		return time.Time{}, errors.New("service date must be between 1900-01-01 and today")
	}
	return t, nil
}
