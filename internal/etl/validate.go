package etl

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/luminosity-datagen/pkg/errors"
	"github.com/noah-isme/luminosity-datagen/pkg/export"
)

// CheckStatus is the outcome of one validation check.
type CheckStatus string

const (
	CheckPass CheckStatus = "PASS"
	CheckFail CheckStatus = "FAIL"
	CheckSkip CheckStatus = "SKIP"
)

// CheckResult records one validation check with its measured value.
type CheckResult struct {
	Name     string      `json:"name"`
	Status   CheckStatus `json:"status"`
	Measured string      `json:"measured"`
	Expected string      `json:"expected"`
	Detail   string      `json:"detail,omitempty"`
}

// ValidationReport is the full outcome of a validation run.
type ValidationReport struct {
	RunAt  time.Time     `json:"run_at"`
	Checks []CheckResult `json:"checks"`
}

// Passed reports whether no check failed.
func (r *ValidationReport) Passed() bool {
	for _, c := range r.Checks {
		if c.Status == CheckFail {
			return false
		}
	}
	return true
}

// Dataset renders the report as rows for CSV and PDF output.
func (r *ValidationReport) Dataset() export.Dataset {
	ds := export.Dataset{Headers: []string{"check", "status", "measured", "expected", "detail"}}
	for _, c := range r.Checks {
		ds.Append(map[string]string{
			"check":    c.Name,
			"status":   string(c.Status),
			"measured": c.Measured,
			"expected": c.Expected,
			"detail":   c.Detail,
		})
	}
	return ds
}

// Validator runs statistical and referential checks over consolidated CSVs.
type Validator struct {
	dir string
	log *zap.Logger
}

// NewValidator builds a validator over a consolidated data directory.
func NewValidator(dir string, log *zap.Logger) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{dir: dir, log: log}
}

func (v *Validator) read(table string) (export.Dataset, bool) {
	ds, err := export.ReadCSVFile(filepath.Join(v.dir, table+".csv"))
	if err != nil {
		return export.Dataset{}, false
	}
	return ds, true
}

// Run executes every check and returns the report.
func (v *Validator) Run() (*ValidationReport, error) {
	report := &ValidationReport{RunAt: time.Now()}

	report.Checks = append(report.Checks, v.checkGradeDistribution()...)
	report.Checks = append(report.Checks, v.checkAttendanceRates()...)
	report.Checks = append(report.Checks, v.checkReferentialClosure()...)
	report.Checks = append(report.Checks, v.checkGradeLevelDomain())
	report.Checks = append(report.Checks, v.checkGuardianCoverage())
	report.Checks = append(report.Checks, v.checkSiblingGuardianSharing())

	for _, c := range report.Checks {
		switch c.Status {
		case CheckFail:
			v.log.Warn("check failed",
				zap.String("check", c.Name),
				zap.String("measured", c.Measured),
				zap.String("expected", c.Expected),
			)
		case CheckSkip:
			v.log.Warn("check skipped", zap.String("check", c.Name), zap.String("detail", c.Detail))
		}
	}
	return report, nil
}

// WriteReports renders the report as CSV and PDF under reportsDir.
func (v *Validator) WriteReports(report *ValidationReport, reportsDir string) error {
	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		return errors.WithCause(errors.ErrInternal, err)
	}
	ds := report.Dataset()
	if err := export.NewCSVExporter().WriteFile(filepath.Join(reportsDir, "validation_report.csv"), ds); err != nil {
		return errors.WithCause(errors.ErrInternal, err)
	}
	if err := export.NewPDFExporter().WriteFile(filepath.Join(reportsDir, "validation_report.pdf"), ds, "Validation Report"); err != nil {
		return errors.WithCause(errors.ErrInternal, err)
	}
	return nil
}

func rangeCheck(name string, value, lo, hi float64) CheckResult {
	status := CheckPass
	if value < lo || value > hi {
		status = CheckFail
	}
	return CheckResult{
		Name:     name,
		Status:   status,
		Measured: fmt.Sprintf("%.4f", value),
		Expected: fmt.Sprintf("[%.4f, %.4f]", lo, hi),
	}
}

func skipped(name, detail string) CheckResult {
	return CheckResult{Name: name, Status: CheckSkip, Detail: detail}
}

// checkGradeDistribution verifies the score mixture: mean percentage,
// perfect fraction, failing fraction, and hard score bounds.
func (v *Validator) checkGradeDistribution() []CheckResult {
	grades, ok := v.read("grades")
	if !ok {
		return []CheckResult{skipped("grade_distribution", "grades.csv not found")}
	}
	assignments, ok := v.read("assignments")
	if !ok {
		return []CheckResult{skipped("grade_distribution", "assignments.csv not found")}
	}

	points := map[string]float64{}
	for _, row := range assignments.Rows {
		p, err := strconv.ParseFloat(row["points_possible"], 64)
		if err != nil || p <= 0 {
			continue
		}
		points[row["assignment_id"]+"|"+row["school_year_id"]] = p
	}

	var sum float64
	var n, perfect, failing, outOfBounds int
	for _, row := range grades.Rows {
		max, ok := points[row["assignment_id"]+"|"+row["school_year_id"]]
		if !ok {
			continue
		}
		score, err := strconv.ParseFloat(row["score"], 64)
		if err != nil {
			continue
		}
		if score < 0 || score > max {
			outOfBounds++
			continue
		}
		pct := score / max
		sum += pct
		n++
		if pct >= 0.95 {
			perfect++
		}
		if pct < 0.70 {
			failing++
		}
	}
	if n == 0 {
		return []CheckResult{skipped("grade_distribution", "no joinable grade rows")}
	}

	bounds := CheckResult{
		Name:     "grade_score_bounds",
		Status:   CheckPass,
		Measured: strconv.Itoa(outOfBounds),
		Expected: "0",
	}
	if outOfBounds > 0 {
		bounds.Status = CheckFail
	}

	return []CheckResult{
		bounds,
		rangeCheck("grade_mean_percentage", sum/float64(n), 0.80, 0.92),
		rangeCheck("grade_perfect_fraction", float64(perfect)/float64(n), 0.01, 0.06),
		rangeCheck("grade_failing_fraction", float64(failing)/float64(n), 0.0, 0.08),
	}
}

// checkAttendanceRates verifies absences near 5% of school days and
// tardies near 20% of attended days.
func (v *Validator) checkAttendanceRates() []CheckResult {
	attendance, ok := v.read("attendance")
	if !ok {
		return []CheckResult{skipped("attendance_rates", "attendance.csv not found")}
	}

	var total, absent, tardy int
	for _, row := range attendance.Rows {
		total++
		switch row["status"] {
		case "Absent", "Excused":
			absent++
		case "Tardy":
			tardy++
		}
	}
	if total == 0 {
		return []CheckResult{skipped("attendance_rates", "no attendance rows")}
	}

	absentRate := float64(absent) / float64(total)
	tardyRate := float64(tardy) / float64(total-absent)
	return []CheckResult{
		rangeCheck("attendance_absent_rate", absentRate, 0.03, 0.07),
		rangeCheck("attendance_tardy_rate", tardyRate, 0.17, 0.23),
	}
}

// checkReferentialClosure verifies foreign keys resolve within the
// consolidated set.
func (v *Validator) checkReferentialClosure() []CheckResult {
	var checks []CheckResult

	column := func(table, col string) (map[string]bool, bool) {
		ds, ok := v.read(table)
		if !ok {
			return nil, false
		}
		set := map[string]bool{}
		for _, val := range ds.Column(col) {
			set[val] = true
		}
		return set, true
	}

	verify := func(name, fromTable, fromCol, toTable, toCol string) CheckResult {
		targets, ok := column(toTable, toCol)
		if !ok {
			return skipped(name, toTable+".csv not found")
		}
		from, ok := v.read(fromTable)
		if !ok {
			return skipped(name, fromTable+".csv not found")
		}
		dangling := 0
		for _, val := range from.Column(fromCol) {
			if !targets[val] {
				dangling++
			}
		}
		result := CheckResult{
			Name:     name,
			Status:   CheckPass,
			Measured: strconv.Itoa(dangling),
			Expected: "0",
		}
		if dangling > 0 {
			result.Status = CheckFail
			result.Detail = fmt.Sprintf("%d dangling %s.%s values", dangling, fromTable, fromCol)
		}
		return result
	}

	// Class ids restart every year, so class references resolve per year.
	verifyPerYear := func(name, fromTable, fromCol, toTable, toCol string) CheckResult {
		to, ok := v.read(toTable)
		if !ok {
			return skipped(name, toTable+".csv not found")
		}
		from, ok := v.read(fromTable)
		if !ok {
			return skipped(name, fromTable+".csv not found")
		}
		targets := map[string]bool{}
		for _, row := range to.Rows {
			targets[row[toCol]+"|"+row["school_year_id"]] = true
		}
		dangling := 0
		for _, row := range from.Rows {
			if !targets[row[fromCol]+"|"+row["school_year_id"]] {
				dangling++
			}
		}
		result := CheckResult{
			Name:     name,
			Status:   CheckPass,
			Measured: strconv.Itoa(dangling),
			Expected: "0",
		}
		if dangling > 0 {
			result.Status = CheckFail
			result.Detail = fmt.Sprintf("%d dangling %s.%s values", dangling, fromTable, fromCol)
		}
		return result
	}

	checks = append(checks,
		verify("fk_grades_student", "grades", "student_id", "students", "student_id"),
		verify("fk_enrollments_student", "enrollments", "student_id", "students", "student_id"),
		verify("fk_student_guardians_guardian", "student_guardians", "guardian_id", "guardians", "guardian_id"),
		verify("fk_payments_guardian", "payments", "guardian_id", "guardians", "guardian_id"),
		verify("fk_students_grade_level", "students", "grade_level_id", "grade_levels", "grade_level_id"),
		verifyPerYear("fk_enrollments_class", "enrollments", "class_id", "classes", "class_id"),
		verifyPerYear("fk_assignments_class", "assignments", "class_id", "classes", "class_id"),
	)
	return checks
}

// checkGradeLevelDomain verifies every student grade is in [1, 13].
func (v *Validator) checkGradeLevelDomain() CheckResult {
	students, ok := v.read("students")
	if !ok {
		return skipped("grade_level_domain", "students.csv not found")
	}

	bad := 0
	for _, val := range students.Column("grade_level_id") {
		grade, err := strconv.Atoi(val)
		if err != nil || grade < 1 || grade > 13 {
			bad++
		}
	}
	result := CheckResult{
		Name:     "grade_level_domain",
		Status:   CheckPass,
		Measured: strconv.Itoa(bad),
		Expected: "0",
	}
	if bad > 0 {
		result.Status = CheckFail
	}
	return result
}

// checkGuardianCoverage verifies every student has at least one guardian
// relationship.
func (v *Validator) checkGuardianCoverage() CheckResult {
	students, ok := v.read("students")
	if !ok {
		return skipped("guardian_coverage", "students.csv not found")
	}
	relationships, ok := v.read("student_guardians")
	if !ok {
		return skipped("guardian_coverage", "student_guardians.csv not found")
	}

	covered := map[string]bool{}
	for _, val := range relationships.Column("student_id") {
		covered[val] = true
	}

	uncovered := 0
	for _, val := range students.Column("student_id") {
		if !covered[val] {
			uncovered++
		}
	}
	result := CheckResult{
		Name:     "guardian_coverage",
		Status:   CheckPass,
		Measured: strconv.Itoa(uncovered),
		Expected: "0",
	}
	if uncovered > 0 {
		result.Status = CheckFail
		result.Detail = fmt.Sprintf("%d students without guardians", uncovered)
	}
	return result
}

// checkSiblingGuardianSharing verifies students carrying the same family id
// have identical guardian sets.
func (v *Validator) checkSiblingGuardianSharing() CheckResult {
	relationships, ok := v.read("student_guardians")
	if !ok {
		return skipped("sibling_guardian_sharing", "student_guardians.csv not found")
	}
	if !relationships.HasColumn("family_id") {
		return skipped("sibling_guardian_sharing", "student_guardians.csv has no family_id column")
	}

	// family -> student -> guardian set
	families := map[string]map[string]map[string]bool{}
	for _, row := range relationships.Rows {
		family := row["family_id"]
		if family == "" {
			continue
		}
		if families[family] == nil {
			families[family] = map[string]map[string]bool{}
		}
		if families[family][row["student_id"]] == nil {
			families[family][row["student_id"]] = map[string]bool{}
		}
		families[family][row["student_id"]][row["guardian_id"]] = true
	}

	mismatched := 0
	for _, students := range families {
		if len(students) < 2 {
			continue
		}
		union := map[string]bool{}
		for _, guardians := range students {
			for g := range guardians {
				union[g] = true
			}
		}
		for _, guardians := range students {
			if len(guardians) != len(union) {
				mismatched++
			}
		}
	}

	result := CheckResult{
		Name:     "sibling_guardian_sharing",
		Status:   CheckPass,
		Measured: strconv.Itoa(mismatched),
		Expected: "0",
	}
	if mismatched > 0 {
		result.Status = CheckFail
		result.Detail = fmt.Sprintf("%d siblings whose guardian set differs from the family's", mismatched)
	}
	return result
}
