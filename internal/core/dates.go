package core

import (
	"fmt"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	isoDate,
}

// ParseTimestamp accepts the datetime layouts seen in upstream payloads
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// NormalizeDate converts DD/MM/YYYY or DD-MM-YYYY to YYYY-MM-DD.
// ISO dates and unrecognized input pass through unchanged.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"02/01/2006", "02-01-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoDate)
		}
	}
	return s
}

// CompactDate renders an ISO date as YYMMDD. Unparseable input is returned as is.
func CompactDate(s string) string {
	iso := NormalizeDate(s)
	t, err := time.Parse(isoDate, iso)
	if err != nil {
		return s
	}
	return t.Format("060102")
}
