package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateFormatBR is the day-first format used by the source CSV and the
	// DATA_BR display column.
	DateFormatBR = "02/01/2006"
	// DateFormatISO is the wire format for API date parameters.
	DateFormatISO = "2006-01-02"
)

// ParseDateBR parses a day-first Brazilian date ("05/01/2024").
func ParseDateBR(s string) (time.Time, error) {
	t, err := time.Parse(DateFormatBR, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseDateISO parses a YYYY-MM-DD date from a query parameter.
func ParseDateISO(s string) (time.Time, error) {
	t, err := time.Parse(DateFormatISO, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
