package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format used on the wire
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC
func ParseDate(value string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return day, nil
}

// ParseID parses a positive integer identifier
func ParseID(value string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q: expected a positive integer", value)
	}
	return uint(id), nil
}

// ParseIDList parses a comma separated list of identifiers, e.g. "1,2,3".
// Empty elements are skipped.
func ParseIDList(value string) ([]uint, error) {
	ids := []uint{}
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		id, err := ParseID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
