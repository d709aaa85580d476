package models

import "time"

// DisciplineReport captures one incident for a student.
type DisciplineReport struct {
	ID          string    `db:"discipline_report_id" json:"discipline_report_id"`
	StudentID   int       `db:"student_id" json:"student_id"`
	Date        time.Time `db:"date" json:"date"`
	Severity    string    `db:"severity" json:"severity"`
	Type        string    `db:"type" json:"type"`
	ActionTaken string    `db:"action_taken" json:"action_taken"`
}

// StandardizedTest is one standardized test result for a student.
type StandardizedTest struct {
	ID         string    `db:"test_id" json:"test_id"`
	StudentID  int       `db:"student_id" json:"student_id"`
	TestName   string    `db:"test_name" json:"test_name"`
	TestDate   time.Time `db:"test_date" json:"test_date"`
	Score      int       `db:"score" json:"score"`
	Subject    string    `db:"subject" json:"subject"`
	Percentile int       `db:"percentile" json:"percentile"`
}

// GradeHistory is a student's year-end academic summary.
type GradeHistory struct {
	ID           string  `db:"student_grade_history_id" json:"student_grade_history_id"`
	StudentID    int     `db:"student_id" json:"student_id"`
	SchoolYearID int     `db:"school_year_id" json:"school_year_id"`
	GPA          float64 `db:"gpa" json:"gpa"`
	GradeLevel   int     `db:"grade_level_id" json:"grade_level_id"`
}

// Payment is one fee payment made by a guardian.
type Payment struct {
	ID          string    `db:"payment_id" json:"payment_id"`
	GuardianID  int       `db:"guardian_id" json:"guardian_id"`
	FeeTypeID   int       `db:"fee_type_id" json:"fee_type_id"`
	AmountPaid  int       `db:"amount_paid" json:"amount_paid"`
	PaymentDate time.Time `db:"payment_date" json:"payment_date"`
}
