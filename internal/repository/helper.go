package repository

import (
	"fmt"
	"time"
)

// timeLayouts are the formats a stored datetime may arrive in: RFC3339
// variants for rows written by Go, the SQLite CURRENT_TIMESTAMP format for
// rows defaulted by the database.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a stored datetime string in any of the supported layouts.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse datetime %q", str)
}

// storedTimeLayout keeps a fixed-width fractional second. RFC3339Nano
// trims trailing zeros, which breaks lexicographic ORDER BY on the stored
// text for same-second rows.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders a time for storage with full sub-second precision,
// so reverse-chronological ordering stays exact.
func FormatTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}
