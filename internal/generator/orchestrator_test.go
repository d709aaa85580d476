package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/luminosity-datagen/internal/models"
	"github.com/noah-isme/luminosity-datagen/pkg/errors"
	"github.com/noah-isme/luminosity-datagen/pkg/export"
)

func writeBaseline(t *testing.T, dir string, studentCount int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	exporter := export.NewCSVExporter()

	students := export.Dataset{Headers: []string{"student_id", "first_name", "last_name", "gender", "date_of_birth", "grade_level_id"}}
	for i := 1; i <= studentCount; i++ {
		grade := (i-1)%13 + 1
		dob := time.Date(2010-grade, time.April, 10, 0, 0, 0, 0, time.UTC)
		students.Append(map[string]string{
			"student_id":     fmt.Sprint(i),
			"first_name":     "Student",
			"last_name":      fmt.Sprintf("Baseline%d", i),
			"gender":         "M",
			"date_of_birth":  dob.Format("2006-01-02"),
			"grade_level_id": fmt.Sprint(grade),
		})
	}
	require.NoError(t, exporter.WriteFile(filepath.Join(dir, "students.csv"), students))

	teachers := export.Dataset{Headers: []string{"teacher_id", "first_name", "last_name", "department_id"}}
	for i := 1; i <= 20; i++ {
		teachers.Append(map[string]string{
			"teacher_id":    fmt.Sprint(i),
			"first_name":    "Teacher",
			"last_name":     fmt.Sprintf("T%d", i),
			"department_id": fmt.Sprint((i-1)%9 + 1),
		})
	}
	require.NoError(t, exporter.WriteFile(filepath.Join(dir, "teachers.csv"), teachers))

	subjects := export.Dataset{Headers: []string{"subject_id", "name", "department_id"}}
	names := []string{"Mathematics", "Science", "English", "Social Studies", "Physical Education"}
	for i, name := range names {
		subjects.Append(map[string]string{
			"subject_id":    fmt.Sprint(i + 1),
			"name":          name,
			"department_id": fmt.Sprint(i + 1),
		})
	}
	require.NoError(t, exporter.WriteFile(filepath.Join(dir, "subjects.csv"), subjects))
}

func TestLoadBaselineMissingFileIsFatal(t *testing.T) {
	o := NewDecadeOrchestrator(42, 2015, nil)
	err := o.LoadBaseline(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBaselineMissing))
}

func TestGenerateYearWithoutConfigFails(t *testing.T) {
	dir := t.TempDir()
	writeBaseline(t, dir, 26)

	o := NewDecadeOrchestrator(42, 2015, nil)
	require.NoError(t, o.LoadBaseline(dir))

	_, _, _, err := o.GenerateYear(2030)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBadInput))
}

func TestYearConfigsCoverDecade(t *testing.T) {
	configs := DefaultYearConfigs()
	for year := 2016; year <= 2025; year++ {
		cfg, ok := configs[year]
		require.True(t, ok, "missing config for %d", year)
		assert.Equal(t, year, cfg.Year)
		assert.Greater(t, cfg.EnrollmentTarget, 0)
		assert.Greater(t, cfg.NewKindergartenCount, 0)
		assert.Greater(t, cfg.TeacherTurnoverRate, 0.0)
	}
}

func TestGenerateYearMutatesAndSummarises(t *testing.T) {
	dir := t.TempDir()
	writeBaseline(t, dir, 52)

	o := NewDecadeOrchestrator(42, 2015, nil)
	require.NoError(t, o.LoadBaseline(dir))

	before := o.students.ActiveCount()
	tables, datasets, summary, err := o.GenerateYear(2016)
	require.NoError(t, err)

	assert.Equal(t, "2016-2017", summary.SchoolYearLabel)
	cfg := DefaultYearConfigs()[2016]
	assert.Equal(t, cfg.NewKindergartenCount, summary.StudentChanges.NewKindergarten)
	assert.GreaterOrEqual(t, summary.StudentChanges.TransfersIn, 3)
	assert.LessOrEqual(t, summary.StudentChanges.TransfersIn, 8)
	assert.LessOrEqual(t, summary.StudentChanges.TransfersOut, 7)

	wantActive := before - summary.StudentChanges.Graduated +
		summary.StudentChanges.NewKindergarten +
		summary.StudentChanges.TransfersIn -
		summary.StudentChanges.TransfersOut
	assert.Equal(t, wantActive, summary.ActualEnrollment)

	// Seniors graduate out rather than advancing past grade 13.
	for _, s := range o.students.ActiveStudents() {
		assert.GreaterOrEqual(t, s.GradeLevel, models.GradeKindergarten)
		assert.LessOrEqual(t, s.GradeLevel, models.GradeSenior)
	}

	assert.Equal(t, 2, tables.SchoolYear.ID)
	assert.NotEmpty(t, datasets["students"].Rows)
}

func TestGenerateDecadeWritesYearDirectories(t *testing.T) {
	baseDir := t.TempDir()
	writeBaseline(t, filepath.Join(baseDir, "baseline"), 39)
	outDir := filepath.Join(baseDir, "decade")

	o := NewDecadeOrchestrator(7, 2015, nil)
	require.NoError(t, o.LoadBaseline(filepath.Join(baseDir, "baseline")))
	require.NoError(t, o.GenerateDecade(2016, 2017, outDir))

	for _, label := range []string{"2016-2017", "2017-2018"} {
		yearDir := filepath.Join(outDir, label)
		for _, file := range []string{"students.csv", "classes.csv", "grades.csv", "attendance.csv", "year_summary.json"} {
			_, err := os.Stat(filepath.Join(yearDir, file))
			assert.NoError(t, err, "%s/%s", label, file)
		}

		raw, err := os.ReadFile(filepath.Join(yearDir, "year_summary.json"))
		require.NoError(t, err)
		var summary models.YearSummary
		require.NoError(t, json.Unmarshal(raw, &summary))
		assert.Equal(t, label, summary.SchoolYearLabel)
		assert.Greater(t, summary.ActualEnrollment, 0)
	}

	raw, err := os.ReadFile(filepath.Join(outDir, "decade_summary.json"))
	require.NoError(t, err)
	var decade map[string]models.YearSummary
	require.NoError(t, json.Unmarshal(raw, &decade))
	assert.Len(t, decade, 2)
}

func TestGenerateDecadeRejectsReversedRange(t *testing.T) {
	o := NewDecadeOrchestrator(1, 2015, nil)
	err := o.GenerateDecade(2018, 2016, t.TempDir())
	require.Error(t, err)
}
