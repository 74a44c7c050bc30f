package workbook

import (
	"math"
	"strconv"
	"strings"
)

// toText renders a raw cell value as text. Whole floats lose their ".0".
func toText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// toInt coerces a raw value to an integer. Empty, non-numeric or out of int32
// range input is absent. Leading digits are accepted ("12 ปี" → 12).
func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || x < math.MinInt32 || x > math.MaxInt32 {
			return 0, false
		}
		return int(x), true
	case int:
		if x < math.MinInt32 || x > math.MaxInt32 {
			return 0, false
		}
		return x, true
	case string:
		s := strings.TrimSpace(x)
		end := 0
		for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
			end++
		}
		n, err := strconv.ParseInt(s[:end], 10, 32)
		if err != nil {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// StripNationalID removes whitespace and hyphens.
func StripNationalID(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f', '-':
			return -1
		}
		return r
	}, s)
}
