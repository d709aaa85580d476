package models

import "time"

// Class is one (section, subject) offering for a grade level in one year.
// Class ids restart each year; no cross-year identity is preserved.
type Class struct {
	ID          int    `db:"class_id" json:"class_id"`
	Name        string `db:"name" json:"name"`
	GradeLevel  int    `db:"grade_level_id" json:"grade_level_id"`
	TeacherID   int    `db:"teacher_id" json:"teacher_id"`
	ClassroomID int    `db:"classroom_id" json:"classroom_id"`
	PeriodID    int    `db:"period_id" json:"period_id"`
	TermID      int    `db:"term_id" json:"term_id"`
}

// Enrollment places a student in a class.
type Enrollment struct {
	ID        string `db:"enrollment_id" json:"enrollment_id"`
	StudentID int    `db:"student_id" json:"student_id"`
	ClassID   int    `db:"class_id" json:"class_id"`
}

// Assignment categories with their point ranges.
const (
	CategoryHomework      = "Homework"
	CategoryQuiz          = "Quiz"
	CategoryTest          = "Test"
	CategoryProject       = "Project"
	CategoryParticipation = "Participation"
)

// Assignment is one graded item belonging to a class.
type Assignment struct {
	ID             int       `db:"assignment_id" json:"assignment_id"`
	ClassID        int       `db:"class_id" json:"class_id"`
	Title          string    `db:"title" json:"title"`
	DueDate        time.Time `db:"due_date" json:"due_date"`
	PointsPossible int       `db:"points_possible" json:"points_possible"`
	Category       string    `db:"category" json:"category"`
	TermID         int       `db:"term_id" json:"term_id"`
}

// Grade is one student's score on one assignment.
type Grade struct {
	ID           int       `db:"grade_id" json:"grade_id"`
	StudentID    int       `db:"student_id" json:"student_id"`
	AssignmentID int       `db:"assignment_id" json:"assignment_id"`
	Score        int       `db:"score" json:"score"`
	SubmittedOn  time.Time `db:"submitted_on" json:"submitted_on"`
	TermID       int       `db:"term_id" json:"term_id"`
}
