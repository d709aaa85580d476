package models

// Subject represents a course offering in the evolving curriculum. Subjects
// are appended or renamed over the decade but never deleted.
type Subject struct {
	ID             int    `db:"subject_id" json:"subject_id"`
	Name           string `db:"name" json:"name"`
	DepartmentID   int    `db:"department_id" json:"department_id"`
	IntroducedYear int    `json:"introduced_year"`
	IsCore         bool   `json:"is_core"`
}

// CurriculumEventKind enumerates scripted curriculum changes.
type CurriculumEventKind string

const (
	CurriculumAdd    CurriculumEventKind = "add"
	CurriculumRename CurriculumEventKind = "rename"
)

// CurriculumEvent is one year-keyed scripted change to the subject catalog.
type CurriculumEvent struct {
	Year         int
	Kind         CurriculumEventKind
	Name         string
	NewName      string
	DepartmentID int
	Reason       string
}
