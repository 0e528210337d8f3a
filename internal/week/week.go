// Package week converts between dates and ISO 8601 week keys of the
// form "2025-W35". Week numbers are not zero-padded.
package week

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidKey = errors.New("invalid week key")

// Key returns the ISO week key containing t.
func Key(t time.Time) string {
	year, wk := t.ISOWeek()
	return format(year, wk)
}

// Current returns the week key for the current local date.
func Current() string {
	return Key(time.Now())
}

// Parse splits a week key into its ISO year and week number.
func Parse(key string) (year, wk int, err error) {
	y, w, ok := strings.Cut(key, "-W")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	year, err = strconv.Atoi(y)
	if err != nil || len(y) != 4 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	wk, err = strconv.Atoi(w)
	if err != nil || wk < 1 || wk > weeksInYear(year) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return year, wk, nil
}

// Start returns Monday 00:00 UTC of the given week.
func Start(key string) (time.Time, error) {
	year, wk, err := Parse(key)
	if err != nil {
		return time.Time{}, err
	}
	return monday(year, wk), nil
}

// Shift moves a week key by delta weeks, crossing year boundaries as needed.
func Shift(key string, delta int) (string, error) {
	start, err := Start(key)
	if err != nil {
		return "", err
	}
	return Key(start.AddDate(0, 0, 7*delta)), nil
}

func format(year, wk int) string {
	return fmt.Sprintf("%d-W%d", year, wk)
}

// monday returns the first day of ISO week wk. January 4th always falls in week 1.
func monday(year, wk int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	week1 := jan4.AddDate(0, 0, -offset)
	return week1.AddDate(0, 0, 7*(wk-1))
}

func weeksInYear(year int) int {
	_, wk := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return wk
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
// Calendar dates are midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t.UTC(), nil
}

// Less orders week keys chronologically. Malformed keys sort after valid
// ones, lexically among themselves.
func Less(a, b string) bool {
	ta, errA := Start(a)
	tb, errB := Start(b)
	switch {
	case errA == nil && errB == nil:
		return ta.Before(tb)
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
