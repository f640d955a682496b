package validation

import (
	"regexp"
	"time"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPassword requires at least 8 characters (signup policy).
func IsValidPassword(password string) bool {
	return len(password) >= 8
}

// ParseISODate parses "YYYY-MM-DD" and normalizes to 12:00 UTC.
// Anchoring at noon keeps the calendar date stable across timezone
// conversions on either side of UTC.
func ParseISODate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC), nil
}
