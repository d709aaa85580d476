package models

// Position levels a teacher can hold.
const (
	PositionTeacher        = "Teacher"
	PositionSeniorTeacher  = "Senior Teacher"
	PositionDepartmentHead = "Department Head"
)

// Teacher represents an instructor record.
type Teacher struct {
	ID              int    `db:"teacher_id" json:"teacher_id"`
	FirstName       string `db:"first_name" json:"first_name"`
	LastName        string `db:"last_name" json:"last_name"`
	DepartmentID    int    `db:"department_id" json:"department_id"`
	HireYear        int    `json:"hire_year"`
	YearsExperience int    `json:"years_experience"`
	PositionLevel   string `json:"position_level"`

	// Stamped when the teacher leaves the active set.
	RetirementYear int `json:"retirement_year,omitempty"`
	DepartureYear  int `json:"departure_year,omitempty"`
}

// TeacherSubject links a teacher to a subject they can be assigned.
type TeacherSubject struct {
	TeacherID    int `db:"teacher_id" json:"teacher_id"`
	SubjectID    int `db:"subject_id" json:"subject_id"`
	DepartmentID int `db:"department_id" json:"department_id"`
}
