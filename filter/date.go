package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DateLayout is the layout filter bounds are written in.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
}

// Excel serials outside this range are not dates (9999-12-31 is 2958465).
const (
	minSerial = 1
	maxSerial = 2958466
)

// ParseDate reads a DATE01-style cell as a calendar day. It expects the
// cell's raw value (an Excel serial, or ISO text for text cells), not its
// displayed form: day/month order in formatted dates depends on the
// workbook and cannot be told apart. The time of day, if any, is dropped
// and the result is midnight UTC of that day.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return day(t), true
		}
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial < minSerial || serial >= maxSerial {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return day(t), true
	}

	return time.Time{}, false
}

// parseBound reads a filter bound, which must be exactly DateLayout.
func parseBound(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
