package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/luminosity-datagen/internal/models"
)

func TestSchoolDaysCappedAndClean(t *testing.T) {
	days := SchoolDays(2019)

	require.NotEmpty(t, days)
	assert.LessOrEqual(t, len(days), maxSchoolDays)
	assert.Greater(t, len(days), 160)

	for _, d := range days {
		assert.NotEqual(t, time.Saturday, d.Weekday(), "school day on a Saturday: %s", d)
		assert.NotEqual(t, time.Sunday, d.Weekday(), "school day on a Sunday: %s", d)
	}
}

func TestSchoolDaysExcludeBreaks(t *testing.T) {
	days := SchoolDays(2019)

	inWinterBreak := func(d time.Time) bool {
		return !d.Before(time.Date(2019, time.December, 23, 0, 0, 0, 0, time.UTC)) &&
			!d.After(time.Date(2020, time.January, 3, 0, 0, 0, 0, time.UTC))
	}
	for _, d := range days {
		assert.False(t, inWinterBreak(d), "school day inside winter break: %s", d)
	}
}

func TestBuildCalendarSpanAndTypes(t *testing.T) {
	calendar := BuildCalendar(2019)
	require.NotEmpty(t, calendar)

	assert.Equal(t, time.Date(2019, time.August, 26, 0, 0, 0, 0, time.UTC), calendar[0].Date)
	assert.Equal(t, time.Date(2020, time.June, 6, 0, 0, 0, 0, time.UTC), calendar[len(calendar)-1].Date)

	byDate := map[time.Time]models.CalendarDay{}
	for _, day := range calendar {
		byDate[day.Date] = day
	}

	laborDay := byDate[time.Date(2019, time.September, 2, 0, 0, 0, 0, time.UTC)]
	assert.Equal(t, models.DayTypeHoliday, laborDay.DayType)
	assert.True(t, laborDay.IsHoliday)
	assert.Equal(t, "Labor Day", laborDay.HolidayName)
	assert.False(t, laborDay.IsSchoolDay)

	christmasEve := byDate[time.Date(2019, time.December, 24, 0, 0, 0, 0, time.UTC)]
	assert.Equal(t, models.DayTypeBreak, christmasEve.DayType)
	assert.Equal(t, "Christmas Break", christmasEve.Label)

	saturday := byDate[time.Date(2019, time.September, 7, 0, 0, 0, 0, time.UTC)]
	assert.Equal(t, models.DayTypeWeekend, saturday.DayType)

	for _, day := range calendar {
		assert.Equal(t, day.DayType == models.DayTypeSchool, day.IsSchoolDay)
	}
}
