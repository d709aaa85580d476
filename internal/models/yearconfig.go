package models

// YearConfig holds the scripted targets and events for one simulated year.
type YearConfig struct {
	Year                 int
	EnrollmentTarget     int
	GraduationCount      int
	NewKindergartenCount int
	TeacherTurnoverRate  float64
	CurriculumChanges    []string
	MajorEvents          []string
	TechnologyUpdates    []string
	FeeAdjustments       map[string]float64
}

// StudentChanges summarises student registry mutations in one year.
type StudentChanges struct {
	Graduated       int `json:"graduated"`
	NewKindergarten int `json:"new_kindergarten"`
	TransfersIn     int `json:"transfers_in"`
	TransfersOut    int `json:"transfers_out"`
}

// TeacherChanges summarises teacher registry mutations in one year.
type TeacherChanges struct {
	Retirements  int `json:"retirements"`
	Resignations int `json:"resignations"`
	NewHires     int `json:"new_hires"`
	TotalActive  int `json:"total_active"`
}

// YearSummary is the per-year report persisted as year_summary.json.
type YearSummary struct {
	Year              int                `json:"year"`
	SchoolYearLabel   string             `json:"school_year_label"`
	EnrollmentTarget  int                `json:"enrollment_target"`
	ActualEnrollment  int                `json:"actual_enrollment"`
	StudentChanges    StudentChanges     `json:"student_changes"`
	TeacherChanges    TeacherChanges     `json:"teacher_changes"`
	CurriculumChanges []string           `json:"curriculum_changes"`
	MajorEvents       []string           `json:"major_events"`
	TechnologyUpdates []string           `json:"technology_updates"`
	FeeAdjustments    map[string]float64 `json:"fee_adjustments"`
}
