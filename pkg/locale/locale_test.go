package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthNames(t *testing.T) {
	es, err := New("es")
	require.NoError(t, err)
	en, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "marzo", es.MonthName(time.March))
	assert.Equal(t, "diciembre", es.MonthName(time.December))
	assert.Equal(t, "March", en.MonthName(time.March))
}

func TestMonthYear(t *testing.T) {
	assert.Equal(t, "Marzo 2026", Must("es").MonthYear(time.March, 2026))
	assert.Equal(t, "September 2025", Must("en").MonthYear(time.September, 2025))
}

func TestMessage(t *testing.T) {
	l := Must("es")

	assert.Equal(t, "Fechas: 5 al 8 de marzo", l.Message("RangeSameMonth", map[string]any{
		"StartDay": 5, "EndDay": 8, "StartMonth": "marzo",
	}))
	assert.Equal(t, "NoSuchMessage", l.Message("NoSuchMessage", nil))
}

func TestUnknownLanguageFallsBackToSpanish(t *testing.T) {
	l, err := New("not a language tag!")
	require.NoError(t, err)

	assert.Equal(t, "es", l.Language())
	assert.Equal(t, "abril", l.MonthName(time.April))
}
