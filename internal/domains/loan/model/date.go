package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date (no time component) that accepts the common
// formats clients send and always renders as YYYY-MM-DD.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	time.RFC3339,
}

// Today is the current calendar day at midnight in local time.
// Truncating against the epoch would shift the day in zones away
// from UTC.
func Today() Date {
	now := time.Now()
	return Date{Time: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())}
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid date format (string expected): %w", err)
	}

	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			d.Time = t
			return nil
		}
	}

	return fmt.Errorf("cannot parse date: %s", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte(`null`), nil
	}

	return json.Marshal(d.Time.Format("2006-01-02"))
}
