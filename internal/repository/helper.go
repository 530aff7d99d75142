package repository

import (
	"fmt"
	"time"
)

// dateFormat is how calendar days are stored in the cache database.
const dateFormat = "2006-01-02"

// ParseDate parses a stored "2006-01-02" date into midnight UTC.
func ParseDate(str string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateFormat, str, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return parsed, nil
}

// FormatDate renders a calendar day for storage.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateFormat)
}
