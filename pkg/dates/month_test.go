package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthIndex(t *testing.T) {
	tests := map[string]int{
		"Enero":      0,
		"ene":        0,
		"FEBRERO":    1,
		"feb":        1,
		" marzo ":    2,
		"Mayo":       4,
		"Septiembre": 8,
		"sept":       8,
		"Setiembre":  8,
		"Sept.":      8,
		"dic":        11,
		"Diciembre":  11,
		"":           Unresolved,
		"lugar":      Unresolved,
		"xyz":        Unresolved,
	}

	for label, expected := range tests {
		t.Run(label, func(t *testing.T) {
			assert.Equal(t, expected, MonthIndex(label))
		})
	}
}

func TestMonthOf(t *testing.T) {
	month, ok := MonthOf("Octubre")
	assert.True(t, ok)
	assert.Equal(t, time.October, month)

	_, ok = MonthOf("Lugar")
	assert.False(t, ok)
}

func TestParseDayMonth(t *testing.T) {
	tests := []struct {
		token    string
		expected DayMonth
	}{
		{"2026-03-05", DayMonth{Day: 5, Month: time.March}},
		{"45000", DayMonth{Day: 15, Month: time.March}},
		{"28/04", DayMonth{Day: 28, Month: time.April}},
		{"2.4.2026", DayMonth{Day: 2, Month: time.April}},
		{"2026/04", DayMonth{Day: 1, Month: time.April}},
		{"2026/04/17", DayMonth{Day: 17, Month: time.April}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			parsed, ok := ParseDayMonth(tt.token)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, parsed)
		})
	}

	for _, token := range []string{"", "abc", "0", "13/13", "40/02/2026"} {
		t.Run("invalid "+token, func(t *testing.T) {
			_, ok := ParseDayMonth(token)
			assert.False(t, ok)
		})
	}
}
