package workbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{"buddhist era slash", "01/01/2565", "2022-01-01", true},
		{"common era slash", "01/01/2022", "2022-01-01", true},
		{"unpadded parts", "5/3/2566", "2023-03-05", true},
		{"surrounding space", "  15/06/2518 ", "1975-06-15", true},
		{"threshold year kept", "01/01/2400", "2400-01-01", true},
		{"serial", 44927.0, "2023-01-01", true},
		{"serial int", 44927, "2023-01-01", true},
		{"serial with time fraction", 44927.75, "2023-01-01", true},
		{"iso passthrough", "2021-12-31", "2021-12-31", true},
		{"iso with time", "2021-12-31T00:00:00Z", "2021-12-31", true},
		{"empty", "", "", false},
		{"blank", "   ", "", false},
		{"malformed", "not a date", "", false},
		{"two parts", "01/2565", "", false},
		{"non numeric part", "aa/01/2565", "", false},
		{"impossible month", "01/13/2565", "", false},
		{"impossible day", "30/02/2022", "", false},
		{"two digit year", "01/01/65", "", false},
		{"zero serial", 0.0, "", false},
		{"negative serial", -3.0, "", false},
		{"unsupported type", true, "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("15/06/2533")
	assert.True(t, ok)
	assert.Equal(t, time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseDate("garbage")
	assert.False(t, ok)
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2022, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "05/01/2022", FormatDate(&d))
	assert.Equal(t, "", FormatDate(nil))
	assert.Equal(t, "", FormatDate(&time.Time{}))
}
