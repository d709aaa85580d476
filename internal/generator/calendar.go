package generator

import (
	"time"

	"github.com/noah-isme/luminosity-datagen/internal/models"
)

// maxSchoolDays caps the instructional year.
const maxSchoolDays = 180

func schoolYearStart(year int) time.Time {
	return time.Date(year, time.August, 26, 0, 0, 0, 0, time.UTC)
}

func schoolYearEnd(year int) time.Time {
	return time.Date(year+1, time.June, 6, 0, 0, 0, 0, time.UTC)
}

type dateRange struct {
	start time.Time
	end   time.Time
	label string
}

func (r dateRange) contains(d time.Time) bool {
	return !d.Before(r.start) && !d.After(r.end)
}

// holidayBreaks are the ranges excluded from the instructional day list.
func holidayBreaks(year int) []dateRange {
	return []dateRange{
		{time.Date(year, time.November, 25, 0, 0, 0, 0, time.UTC), time.Date(year, time.November, 29, 0, 0, 0, 0, time.UTC), "Thanksgiving Week"},
		{time.Date(year, time.December, 23, 0, 0, 0, 0, time.UTC), time.Date(year+1, time.January, 3, 0, 0, 0, 0, time.UTC), "Winter Break"},
		{time.Date(year+1, time.March, 15, 0, 0, 0, 0, time.UTC), time.Date(year+1, time.March, 22, 0, 0, 0, 0, time.UTC), "Spring Break"},
	}
}

// SchoolDays lists the instructional dates of the school year in order:
// weekdays between Aug 26 and Jun 6, minus the holiday windows, capped at
// 180 days.
func SchoolDays(year int) []time.Time {
	start := schoolYearStart(year)
	end := schoolYearEnd(year)
	breaks := holidayBreaks(year)

	var days []time.Time
	for d := start; !d.After(end) && len(days) < maxSchoolDays; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		skip := false
		for _, b := range breaks {
			if b.contains(d) {
				skip = true
				break
			}
		}
		if !skip {
			days = append(days, d)
		}
	}
	return days
}

// BuildCalendar produces the full school_calendar table for the year: every
// date in the span typed as school day, weekend, holiday, or break.
func BuildCalendar(year int) []models.CalendarDay {
	holidays := map[time.Time]string{
		time.Date(year, time.September, 2, 0, 0, 0, 0, time.UTC):   "Labor Day",
		time.Date(year, time.October, 14, 0, 0, 0, 0, time.UTC):    "Columbus Day",
		time.Date(year, time.November, 11, 0, 0, 0, 0, time.UTC):   "Veterans Day",
		time.Date(year, time.November, 28, 0, 0, 0, 0, time.UTC):   "Thanksgiving",
		time.Date(year, time.November, 29, 0, 0, 0, 0, time.UTC):   "Thanksgiving Break",
		time.Date(year+1, time.January, 20, 0, 0, 0, 0, time.UTC):  "Martin Luther King Jr. Day",
		time.Date(year+1, time.February, 17, 0, 0, 0, 0, time.UTC): "Presidents Day",
		time.Date(year+1, time.May, 26, 0, 0, 0, 0, time.UTC):      "Memorial Day",
	}
	breaks := []dateRange{
		{time.Date(year, time.December, 23, 0, 0, 0, 0, time.UTC), time.Date(year+1, time.January, 3, 0, 0, 0, 0, time.UTC), "Christmas Break"},
		{time.Date(year+1, time.March, 17, 0, 0, 0, 0, time.UTC), time.Date(year+1, time.March, 21, 0, 0, 0, 0, time.UTC), "Spring Break"},
	}

	var calendar []models.CalendarDay
	for d := schoolYearStart(year); !d.After(schoolYearEnd(year)); d = d.AddDate(0, 0, 1) {
		day := models.CalendarDay{Date: d, DayType: models.DayTypeSchool}

		switch {
		case d.Weekday() == time.Saturday || d.Weekday() == time.Sunday:
			day.DayType = models.DayTypeWeekend
			day.Label = "Weekend"
		case holidays[d] != "":
			day.DayType = models.DayTypeHoliday
			day.IsHoliday = true
			day.HolidayName = holidays[d]
			day.Label = holidays[d]
		default:
			for _, b := range breaks {
				if b.contains(d) {
					day.DayType = models.DayTypeBreak
					day.Label = b.label
					break
				}
			}
		}

		day.IsSchoolDay = day.DayType == models.DayTypeSchool
		calendar = append(calendar, day)
	}
	return calendar
}
