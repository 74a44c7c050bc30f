package workbook

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	isoLayout     = "2006-01-02"
	displayLayout = "02/01/2006"

	// Years above this are Buddhist era and are shifted back by the era offset.
	buddhistEraThreshold = 2400
	buddhistEraOffset    = 543
)

// NormalizeDate converts a spreadsheet date value to YYYY-MM-DD.
//
// Accepted inputs: a numeric serial day, a d/m/y string (Buddhist or common
// era year), or an ISO date optionally followed by a time part. Anything
// else, including calendar-impossible dates and years that are not four
// digits, is reported absent. It never panics.
func NormalizeDate(v any) (string, bool) {
	switch x := v.(type) {
	case float64:
		return fromSerial(x)
	case int:
		return fromSerial(float64(x))
	case string:
		return fromString(x)
	default:
		return "", false
	}
}

// ParseDate is NormalizeDate returning a time at UTC midnight.
func ParseDate(v any) (time.Time, bool) {
	s, ok := NormalizeDate(v)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t as dd/mm/yyyy in the common era; a nil time is empty.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(displayLayout)
}

func fromSerial(serial float64) (string, bool) {
	if serial < 1 {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", false
	}
	return canonical(t.Year(), int(t.Month()), t.Day())
}

func fromString(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if parts := strings.Split(s, "/"); len(parts) == 3 {
		var nums [3]int
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return "", false
			}
			nums[i] = n
		}
		if len(strings.TrimSpace(parts[2])) != 4 {
			return "", false
		}
		return canonical(nums[2], nums[1], nums[0])
	}

	if len(s) >= 10 && s[4] == '-' && s[7] == '-' {
		t, err := time.Parse(isoLayout, s[:10])
		if err != nil {
			return "", false
		}
		return canonical(t.Year(), int(t.Month()), t.Day())
	}

	return "", false
}

// canonical applies the era correction and checks the calendar.
func canonical(year, month, day int) (string, bool) {
	if year > buddhistEraThreshold {
		year -= buddhistEraOffset
	}
	if year < 1000 || year > 9999 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}
