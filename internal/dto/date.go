package dto

import (
	"fmt"
	"strings"
	"time"

	gerr "github.com/jekabolt/retail-dashboard/internal/errors"
)

// DateLayout is the calendar day format used in requests and bucket bounds.
const DateLayout = "2006-01-02"

// ParseDate accepts RFC 3339 or a bare YYYY-MM-DD read in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", gerr.ErrBadRequest)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", gerr.ErrBadRequest, s)
	}
	return t, nil
}

// ParseDateRange parses from and to. A bare to date covers its whole day.
func ParseDateRange(from, to string, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	f, err := ParseDate(from, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t, err := ParseDate(to, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if len(strings.TrimSpace(to)) == len(DateLayout) {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if t.Before(f) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to %s is before from %s", gerr.ErrInvalidDateRange, to, from)
	}
	return f, t, nil
}
