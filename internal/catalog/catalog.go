// Package catalog holds the static reference tables: fixed-size lookups
// loaded once per run with no lifecycle of their own.
package catalog

import (
	"fmt"

	"github.com/noah-isme/luminosity-datagen/pkg/random"
)

// DepartmentCount is the number of academic departments.
const DepartmentCount = 9

// Department is an academic department.
type Department struct {
	ID   int    `db:"department_id" json:"department_id"`
	Name string `db:"name" json:"name"`
}

// GradeLevel labels a grade level id.
type GradeLevel struct {
	ID    int    `db:"grade_level_id" json:"grade_level_id"`
	Label string `db:"label" json:"label"`
}

// GuardianType labels a guardian relationship type.
type GuardianType struct {
	ID    int    `db:"guardian_type_id" json:"guardian_type_id"`
	Label string `db:"label" json:"label"`
}

// FeeType is a billable fee.
type FeeType struct {
	ID        int    `db:"fee_type_id" json:"fee_type_id"`
	Name      string `db:"name" json:"name"`
	Amount    int    `db:"amount" json:"amount"`
	Frequency string `db:"frequency" json:"frequency"`
}

// Period is one slot in the daily bell schedule.
type Period struct {
	ID        int    `db:"period_id" json:"period_id"`
	Label     string `db:"label" json:"label"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
}

// Classroom is a physical room.
type Classroom struct {
	ID         int    `db:"classroom_id" json:"classroom_id"`
	RoomNumber string `db:"room_number" json:"room_number"`
	Capacity   int    `db:"capacity" json:"capacity"`
}

// SchoolMetadata describes the school itself.
type SchoolMetadata struct {
	SchoolName string `db:"school_name" json:"school_name"`
	Address    string `db:"address" json:"address"`
	City       string `db:"city" json:"city"`
	State      string `db:"state" json:"state"`
	Zip        string `db:"zip" json:"zip"`
	Phone      string `db:"phone" json:"phone"`
	Email      string `db:"email" json:"email"`
	Principal  string `db:"principal" json:"principal"`
}

// Catalog bundles all reference tables for one run.
type Catalog struct {
	Departments   []Department
	GradeLevels   []GradeLevel
	GuardianTypes []GuardianType
	FeeTypes      []FeeType
	Periods       []Period
	Classrooms    []Classroom
	Metadata      SchoolMetadata
}

// New builds the reference catalogs. The only randomised field is classroom
// capacity, drawn from a derived stream so the result depends only on the
// seed.
func New(src *random.Source) *Catalog {
	classrooms := make([]Classroom, 0, 20)
	roomSrc := src.ForEntity("classroom", 0)
	for i := 1; i <= 20; i++ {
		classrooms = append(classrooms, Classroom{
			ID:         i,
			RoomNumber: fmt.Sprintf("Room %d", 100+i),
			Capacity:   roomSrc.IntRange(20, 30),
		})
	}

	periods := make([]Period, 0, 7)
	for i := 1; i <= 7; i++ {
		periods = append(periods, Period{
			ID:        i,
			Label:     fmt.Sprintf("Period %d", i),
			StartTime: fmt.Sprintf("%d:00:00", 7+i),
			EndTime:   fmt.Sprintf("%d:00:00", 8+i),
		})
	}

	return &Catalog{
		Departments: []Department{
			{1, "Mathematics"},
			{2, "Science"},
			{3, "English"},
			{4, "Social Studies"},
			{5, "Physical Education"},
			{6, "Fine Arts"},
			{7, "Technology"},
			{8, "Foreign Language"},
			{9, "Electives"},
		},
		GradeLevels: gradeLevels(),
		GuardianTypes: []GuardianType{
			{1, "Mother"},
			{2, "Father"},
			{3, "Step-Mother"},
			{4, "Step-Father"},
			{5, "Grandmother"},
			{6, "Grandfather"},
			{7, "Aunt"},
			{8, "Uncle"},
			{9, "Legal Guardian"},
			{10, "Other"},
		},
		FeeTypes: []FeeType{
			{1, "Tech Fee", 100, "One Time"},
			{2, "Field Trip Fund", 50, "One Time"},
			{3, "Lunch Plan", 400, "Monthly"},
			{4, "Tuition", 8000, "Annual"},
			{5, "Activity Fee", 75, "Per Term"},
		},
		Periods:    periods,
		Classrooms: classrooms,
		Metadata: SchoolMetadata{
			SchoolName: "Luminosity Academy",
			Address:    "123 Education Drive",
			City:       "Bangor",
			State:      "Maine",
			Zip:        "04401",
			Phone:      "(207) 555-0123",
			Email:      "info@luminosityacademy.edu",
			Principal:  "Dr. Sarah Johnson",
		},
	}
}

func gradeLevels() []GradeLevel {
	labels := []string{
		"Kindergarten",
		"1st Grade",
		"2nd Grade",
		"3rd Grade",
		"4th Grade",
		"5th Grade",
		"6th Grade",
		"7th Grade",
		"8th Grade",
		"9th Grade",
		"10th Grade",
		"11th Grade",
		"12th Grade",
	}
	levels := make([]GradeLevel, 0, len(labels))
	for i, label := range labels {
		levels = append(levels, GradeLevel{ID: i + 1, Label: label})
	}
	return levels
}

// TuitionFeeTypeID is the fee type id charged annually to every family.
const TuitionFeeTypeID = 4
