package models

import "time"

// SchoolYear identifies one academic year; id 1 is the 2015-2016 baseline.
type SchoolYear struct {
	ID        int       `db:"school_year_id" json:"school_year_id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
}

// Term is one quarter of a school year. Term ids are unique across the
// decade: (year-2015)*4 + quarter.
type Term struct {
	ID           int       `db:"term_id" json:"term_id"`
	Label        string    `db:"label" json:"label"`
	StartDate    time.Time `db:"start_date" json:"start_date"`
	EndDate      time.Time `db:"end_date" json:"end_date"`
	SchoolYearID int       `db:"school_year_id" json:"school_year_id"`
}

// Day types in the school calendar.
const (
	DayTypeSchool  = "school_day"
	DayTypeWeekend = "weekend"
	DayTypeHoliday = "holiday"
	DayTypeBreak   = "break"
)

// CalendarDay is one date in the school calendar.
type CalendarDay struct {
	Date        time.Time `db:"calendar_date" json:"calendar_date"`
	IsSchoolDay bool      `db:"is_school_day" json:"is_school_day"`
	IsHoliday   bool      `db:"is_holiday" json:"is_holiday"`
	HolidayName string    `db:"holiday_name" json:"holiday_name"`
	DayType     string    `db:"day_type" json:"day_type"`
	Label       string    `db:"label" json:"label"`
}
