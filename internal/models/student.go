package models

import "time"

// Grade level ids span Kindergarten (1) through 12th grade (13).
const (
	GradeKindergarten = 1
	GradeSenior       = 13
)

// Student represents a learner enrolled at the school. A student is in
// exactly one of the active, graduated, or transferred sets at any time.
type Student struct {
	ID             int       `db:"student_id" json:"student_id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Gender         string    `db:"gender" json:"gender"`
	DateOfBirth    time.Time `db:"date_of_birth" json:"date_of_birth"`
	GradeLevel     int       `db:"grade_level_id" json:"grade_level_id"`
	EnrollmentYear int       `json:"enrollment_year"`
	FamilyID       string    `json:"family_id"`
	IsTransfer     bool      `json:"is_transfer,omitempty"`

	// Stamped when the student leaves the active set.
	GraduationYear int `json:"graduation_year,omitempty"`
	TransferYear   int `json:"transfer_year,omitempty"`
}
