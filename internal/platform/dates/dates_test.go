package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := Parse(s)
	require.NoError(t, err)
	return d
}

func TestAddDays_CrossesMonthBoundaries(t *testing.T) {
	assert.Equal(t, "2025-03-02", Format(AddDays(mustDay(t, "2025-01-01"), 60)))
	assert.Equal(t, "2025-03-26", Format(AddDays(mustDay(t, "2025-03-05"), 21)))
	assert.Equal(t, "2025-05-07", Format(AddDays(mustDay(t, "2025-03-05"), 63)))
}

func TestWeeksToDays_RoundsHalfWeeks(t *testing.T) {
	assert.Equal(t, 53, WeeksToDays(7.5))
	assert.Equal(t, 84, WeeksToDays(12))
	assert.Equal(t, 0, WeeksToDays(0))
}

func TestDay_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("CEST", 2*3600)
	in := time.Date(2025, 4, 5, 23, 30, 0, 0, loc)

	assert.Equal(t, "2025-04-05", Format(in))
	assert.True(t, SameDay(in, mustDay(t, "2025-04-05")))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 180, DaysBetween(mustDay(t, "2025-01-01"), mustDay(t, "2025-06-30")))
	assert.Equal(t, -1, DaysBetween(mustDay(t, "2025-01-02"), mustDay(t, "2025-01-01")))
}

func TestParse_RejectsOtherLayouts(t *testing.T) {
	_, err := Parse("05.04.2025")
	assert.ErrorIs(t, err, ErrInvalidDate)

	p, err := ParseOptional("  ")
	assert.NoError(t, err)
	assert.Nil(t, p)
}
