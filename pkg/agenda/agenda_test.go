package agenda

import (
	"testing"

	"github.com/arboleda/arboleda/pkg/dates"
	"github.com/arboleda/arboleda/pkg/locale"
	"github.com/arboleda/arboleda/pkg/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, iso string) dates.Date {
	t.Helper()
	d, ok := dates.Resolver{}.Resolve(iso)
	require.True(t, ok, iso)
	return d
}

func retreatDates(retreats []Retreat) []string {
	out := make([]string, 0, len(retreats))
	for _, r := range retreats {
		out = append(out, r.Date.String())
	}
	return out
}

func TestCollectRetreats(t *testing.T) {
	grid := records.Grid{
		{"Lugar", "Febrero", "Marzo", "Abril"},
		{"Casa de retiro", "2026-02-25", "05/03/2026", ""},
		{"Parroquia", "2026-02-10", "46086", "no sé"},
		{"Colegio", "2026-02-25"},
	}

	retreats := CollectRetreats(grid, dates.Resolver{CurrentYear: 2026})

	require.Len(t, retreats, 5)
	assert.Equal(t, []string{"2026-02-10", "2026-02-25", "2026-02-25", "2026-03-05", "2026-03-05"}, retreatDates(retreats))
	assert.Equal(t, "Parroquia", retreats[0].Place)
	// ties keep row order
	assert.Equal(t, "Casa de retiro", retreats[1].Place)
	assert.Equal(t, "Colegio", retreats[2].Place)
	assert.Equal(t, "Casa de retiro", retreats[3].Place)
	assert.Equal(t, "Parroquia", retreats[4].Place)
}

func TestCollectRetreats_IgnoresColumnsPastTheLastMonth(t *testing.T) {
	row := []string{"Lugar", "", "", "", "", "", "", "", "", "", "", "2026-12-12", "2026-12-19"}
	grid := records.Grid{row, row}

	retreats := CollectRetreats(grid, dates.Resolver{CurrentYear: 2026})

	assert.Equal(t, []string{"2026-12-12"}, retreatDates(retreats))
}

func TestNextRetreats(t *testing.T) {
	t.Run("remaining dates of the current month", func(t *testing.T) {
		sorted := []Retreat{
			{Date: day(t, "2026-02-10")},
			{Date: day(t, "2026-02-25")},
			{Date: day(t, "2026-03-05")},
		}

		result := NextRetreats(sorted, day(t, "2026-02-20"))

		assert.Equal(t, []string{"2026-02-25"}, retreatDates(result))
	})

	t.Run("a retreat today still counts", func(t *testing.T) {
		sorted := []Retreat{{Date: day(t, "2026-02-20")}, {Date: day(t, "2026-03-05")}}

		result := NextRetreats(sorted, day(t, "2026-02-20"))

		assert.Equal(t, []string{"2026-02-20"}, retreatDates(result))
	})

	t.Run("falls back to the whole next month", func(t *testing.T) {
		sorted := []Retreat{
			{Date: day(t, "2026-02-10")},
			{Date: day(t, "2026-03-05")},
			{Date: day(t, "2026-03-19")},
			{Date: day(t, "2026-04-02")},
		}

		result := NextRetreats(sorted, day(t, "2026-02-28"))

		assert.Equal(t, []string{"2026-03-05", "2026-03-19"}, retreatDates(result))
	})

	t.Run("december rolls over to january", func(t *testing.T) {
		sorted := []Retreat{
			{Date: day(t, "2026-01-10")},
			{Date: day(t, "2026-12-05")},
			{Date: day(t, "2027-01-09")},
		}

		result := NextRetreats(sorted, day(t, "2026-12-20"))

		assert.Equal(t, []string{"2027-01-09"}, retreatDates(result))
	})

	t.Run("nothing this month nor next", func(t *testing.T) {
		sorted := []Retreat{{Date: day(t, "2026-06-01")}}

		result := NextRetreats(sorted, day(t, "2026-02-20"))

		assert.Empty(t, result)
		assert.NotNil(t, result)
	})
}

func TestSelectRetreats(t *testing.T) {
	grid := records.Grid{
		{"Lugar", "Febrero", "Marzo"},
		{"Casa", "2026-02-10", "2026-03-05"},
	}

	result := SelectRetreats(grid, day(t, "2026-02-28"))

	require.Len(t, result, 1)
	assert.Equal(t, Retreat{Date: day(t, "2026-03-05"), Place: "Casa"}, result[0])
}

func TestMonthLabel(t *testing.T) {
	loc := locale.Must("es")

	assert.Nil(t, MonthLabel(nil, loc))

	label := MonthLabel([]Retreat{{Date: day(t, "2026-03-05")}}, loc)
	require.NotNil(t, label)
	assert.Equal(t, "Marzo 2026", *label)
}

func TestUpcomingBirthdays(t *testing.T) {
	today := day(t, "2026-01-20")

	recs := []records.Record{
		{"nombre": "Marzo", "fecha": "01/03/1990"},
		{"nombre": "Febrero", "fecha_de_nacimiento": "05/02/1985"},
		{"nombre": "Hoy", "fecha": "1999-01-20"},
		{"nombre": "Limite", "fecha": "19/02"},
		{"nombre": "Ayer", "fecha": "19/01/2001"},
		{"nombre": "", "fecha": "25/01/2001"},
		{"nombre": "Sin fecha", "fecha": ""},
		{"nombre": "Ilegible", "fecha": "algún día"},
		{"name": "Serial", "fecha": "32900"}, // 1990-01-27
	}

	result := UpcomingBirthdays(recs, today, DefaultBirthdayWindow)

	assert.Equal(t, []Birthday{
		{Name: "Hoy", Date: day(t, "2026-01-20")},
		{Name: "Serial", Date: day(t, "2026-01-27")},
		{Name: "Febrero", Date: day(t, "2026-02-05")},
		{Name: "Limite", Date: day(t, "2026-02-19")},
	}, result)
}

func TestUpcomingBirthdays_StaysInCurrentYear(t *testing.T) {
	recs := []records.Record{
		{"nombre": "Reyes", "fecha": "06/01/1980"},
		{"nombre": "Navidad", "fecha": "25/12/1980"},
	}

	result := UpcomingBirthdays(recs, day(t, "2026-12-20"), DefaultBirthdayWindow)

	// January already passed this year
	assert.Equal(t, []Birthday{{Name: "Navidad", Date: day(t, "2026-12-25")}}, result)
}

func TestUpcomingBirthdays_LeapDayInCommonYear(t *testing.T) {
	recs := []records.Record{{"nombre": "Bisiesto", "fecha": "29/02/2000"}}

	result := UpcomingBirthdays(recs, day(t, "2026-02-20"), DefaultBirthdayWindow)

	assert.Equal(t, []Birthday{{Name: "Bisiesto", Date: day(t, "2026-03-01"), LeapDay: true}}, result)
}

func TestActiveActivities(t *testing.T) {
	today := day(t, "2026-03-10")
	recs := []records.Record{
		{"actividad": "Pasada", "termina": "2026-03-09"},
		{"actividad": "Termina hoy", "termina": "2026-03-10"},
		{"actividad": "Futura", "fecha_de_fin": "20/04/2026"},
		{"actividad": "Sin fin"},
		{"actividad": "Fin ilegible", "fecha_fin": "a definir"},
		{"actividad": "Vacía", "termina": ""},
	}

	result := ActiveActivities(recs, today)

	titles := make([]string, 0, len(result))
	for _, rec := range result {
		titles = append(titles, rec["actividad"])
	}
	assert.Equal(t, []string{"Termina hoy", "Futura", "Sin fin", "Fin ilegible", "Vacía"}, titles)
	// records pass through untouched
	assert.Equal(t, recs[2], result[1])
}

func TestActiveActivities_FailOpenRegardlessOfToday(t *testing.T) {
	recs := []records.Record{{"actividad": "Sin fecha"}}

	assert.Len(t, ActiveActivities(recs, day(t, "1999-01-01")), 1)
	assert.Len(t, ActiveActivities(recs, day(t, "2099-12-31")), 1)
}
