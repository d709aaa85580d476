package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"

	"github.com/noah-isme/luminosity-datagen/internal/catalog"
	"github.com/noah-isme/luminosity-datagen/internal/models"
	"github.com/noah-isme/luminosity-datagen/internal/registry"
	"github.com/noah-isme/luminosity-datagen/pkg/errors"
	"github.com/noah-isme/luminosity-datagen/pkg/export"
	"github.com/noah-isme/luminosity-datagen/pkg/random"
)

// DecadeOrchestrator owns the registries and drives the year-by-year
// simulation. Years must be generated strictly in order: each year's
// registry state is the input to the next.
type DecadeOrchestrator struct {
	students   *registry.StudentRegistry
	teachers   *registry.TeacherRegistry
	guardians  *registry.GuardianRegistry
	curriculum *registry.CurriculumManager

	catalog *catalog.Catalog
	configs map[int]models.YearConfig
	fees    *FeeSchedule
	gen     *AcademicGenerator

	baselineYear int
	src          *random.Source
	log          *zap.Logger
}

// NewDecadeOrchestrator builds the full simulation stack from one seed.
func NewDecadeOrchestrator(seed int64, baselineYear int, log *zap.Logger) *DecadeOrchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	src := random.New(seed)
	faker := gofakeit.New(seed)
	cat := catalog.New(src)

	students := registry.NewStudentRegistry(src, faker)
	teachers := registry.NewTeacherRegistry(src, faker)
	guardians := registry.NewGuardianRegistry(src, faker)
	curriculum := registry.NewCurriculumManager(registry.DefaultCurriculumEvents())
	fees := NewFeeSchedule(cat)

	return &DecadeOrchestrator{
		students:     students,
		teachers:     teachers,
		guardians:    guardians,
		curriculum:   curriculum,
		catalog:      cat,
		configs:      DefaultYearConfigs(),
		fees:         fees,
		gen:          NewAcademicGenerator(students, teachers, guardians, curriculum, cat, fees, src, log),
		baselineYear: baselineYear,
		src:          src,
		log:          log,
	}
}

// LoadBaseline reads the baseline year's students.csv, teachers.csv, and
// subjects.csv into the registries. A missing file is fatal.
func (o *DecadeOrchestrator) LoadBaseline(dir string) error {
	students, err := o.readBaselineStudents(filepath.Join(dir, "students.csv"))
	if err != nil {
		return err
	}
	teachers, err := o.readBaselineTeachers(filepath.Join(dir, "teachers.csv"))
	if err != nil {
		return err
	}
	subjects, err := o.readBaselineSubjects(filepath.Join(dir, "subjects.csv"))
	if err != nil {
		return err
	}

	o.students.LoadBaseline(students, o.baselineYear)
	o.teachers.LoadBaseline(teachers, o.baselineYear)
	o.curriculum.LoadBaseline(subjects, o.baselineYear)

	o.log.Info("baseline loaded",
		zap.String("dir", dir),
		zap.Int("students", len(students)),
		zap.Int("teachers", len(teachers)),
		zap.Int("subjects", len(subjects)),
	)
	return nil
}

func (o *DecadeOrchestrator) readBaselineStudents(path string) ([]models.Student, error) {
	ds, err := export.ReadCSVFile(path)
	if err != nil {
		return nil, errors.WithCause(errors.ErrBaselineMissing, err)
	}

	students := make([]models.Student, 0, ds.Len())
	for _, row := range ds.Rows {
		id, err := strconv.Atoi(row["student_id"])
		if err != nil {
			return nil, errors.WithCause(errors.ErrBadInput, fmt.Errorf("student_id %q: %w", row["student_id"], err))
		}
		grade, err := strconv.Atoi(row["grade_level_id"])
		if err != nil {
			return nil, errors.WithCause(errors.ErrBadInput, fmt.Errorf("grade_level_id %q: %w", row["grade_level_id"], err))
		}
		dob, err := time.Parse(dateLayout, row["date_of_birth"])
		if err != nil {
			return nil, errors.WithCause(errors.ErrBadInput, fmt.Errorf("date_of_birth %q: %w", row["date_of_birth"], err))
		}
		students = append(students, models.Student{
			ID:          id,
			FirstName:   row["first_name"],
			LastName:    row["last_name"],
			Gender:      row["gender"],
			DateOfBirth: dob,
			GradeLevel:  grade,
		})
	}
	return students, nil
}

func (o *DecadeOrchestrator) readBaselineTeachers(path string) ([]models.Teacher, error) {
	ds, err := export.ReadCSVFile(path)
	if err != nil {
		return nil, errors.WithCause(errors.ErrBaselineMissing, err)
	}

	teachers := make([]models.Teacher, 0, ds.Len())
	for _, row := range ds.Rows {
		id, err := strconv.Atoi(row["teacher_id"])
		if err != nil {
			return nil, errors.WithCause(errors.ErrBadInput, fmt.Errorf("teacher_id %q: %w", row["teacher_id"], err))
		}
		dept, err := strconv.Atoi(row["department_id"])
		if err != nil {
			return nil, errors.WithCause(errors.ErrBadInput, fmt.Errorf("department_id %q: %w", row["department_id"], err))
		}
		teachers = append(teachers, models.Teacher{
			ID:           id,
			FirstName:    row["first_name"],
			LastName:     row["last_name"],
			DepartmentID: dept,
		})
	}
	return teachers, nil
}

func (o *DecadeOrchestrator) readBaselineSubjects(path string) ([]models.Subject, error) {
	ds, err := export.ReadCSVFile(path)
	if err != nil {
		return nil, errors.WithCause(errors.ErrBaselineMissing, err)
	}

	subjects := make([]models.Subject, 0, ds.Len())
	for _, row := range ds.Rows {
		id, err := strconv.Atoi(row["subject_id"])
		if err != nil {
			return nil, errors.WithCause(errors.ErrBadInput, fmt.Errorf("subject_id %q: %w", row["subject_id"], err))
		}
		dept, err := strconv.Atoi(row["department_id"])
		if err != nil {
			return nil, errors.WithCause(errors.ErrBadInput, fmt.Errorf("department_id %q: %w", row["department_id"], err))
		}
		subjects = append(subjects, models.Subject{
			ID:           id,
			Name:         row["name"],
			DepartmentID: dept,
		})
	}
	return subjects, nil
}

// GenerateYear advances the registries through one school year and derives
// the year's full table set plus its summary.
func (o *DecadeOrchestrator) GenerateYear(year int) (*YearTables, map[string]export.Dataset, models.YearSummary, error) {
	config, ok := o.configs[year]
	if !ok {
		return nil, nil, models.YearSummary{}, errors.WithCause(errors.ErrBadInput, fmt.Errorf("no year config for %d", year))
	}

	o.log.Info("generating school year", zap.String("label", schoolYearLabel(year)))

	graduated, _ := o.students.AdvanceGradeLevels(year)
	newKindergarten := o.students.EnrollKindergarteners(year, config.NewKindergartenCount)
	transfersIn, transfersOut := o.students.ProcessTransfers(
		year, o.src.IntRange(3, 8), o.src.IntRange(2, 7), o.guardians)

	retirements, resignations, newHires := o.teachers.ProcessAnnualChanges(
		year, targetTeacherCount, config.TeacherTurnoverRate)

	curriculumChanges := o.curriculum.Evolve(year)
	o.fees.Apply(config.FeeAdjustments)

	// Guardians exist for every active student before tables are derived.
	o.guardians.GenerateForStudents(o.students.ActiveStudents())

	tables := o.gen.GenerateYear(year)
	datasets := o.gen.Datasets(tables)

	summary := models.YearSummary{
		Year:             year,
		SchoolYearLabel:  schoolYearLabel(year),
		EnrollmentTarget: config.EnrollmentTarget,
		ActualEnrollment: o.students.ActiveCount(),
		StudentChanges: models.StudentChanges{
			Graduated:       len(graduated),
			NewKindergarten: len(newKindergarten),
			TransfersIn:     len(transfersIn),
			TransfersOut:    len(transfersOut),
		},
		TeacherChanges: models.TeacherChanges{
			Retirements:  len(retirements),
			Resignations: len(resignations),
			NewHires:     len(newHires),
			TotalActive:  o.teachers.ActiveCount(),
		},
		CurriculumChanges: curriculumChanges,
		MajorEvents:       config.MajorEvents,
		TechnologyUpdates: config.TechnologyUpdates,
		FeeAdjustments:    config.FeeAdjustments,
	}

	o.log.Info("school year complete",
		zap.String("label", summary.SchoolYearLabel),
		zap.Int("students", summary.ActualEnrollment),
		zap.Int("teachers", summary.TeacherChanges.TotalActive),
		zap.Int("graduated", summary.StudentChanges.Graduated),
	)
	return tables, datasets, summary, nil
}

// GenerateDecade runs the simulation from start through end inclusive,
// writing one directory per school year plus the decade summary.
func (o *DecadeOrchestrator) GenerateDecade(start, end int, outDir string) error {
	if start > end {
		return errors.WithCause(errors.ErrBadInput, fmt.Errorf("start year %d after end year %d", start, end))
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.WithCause(errors.ErrInternal, err)
	}

	exporter := export.NewCSVExporter()
	decadeSummary := map[string]models.YearSummary{}

	for year := start; year <= end; year++ {
		_, datasets, summary, err := o.GenerateYear(year)
		if err != nil {
			return err
		}

		yearDir := filepath.Join(outDir, schoolYearLabel(year))
		if err := os.MkdirAll(yearDir, 0o755); err != nil {
			return errors.WithCause(errors.ErrInternal, err)
		}

		names := make([]string, 0, len(datasets))
		for name := range datasets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			path := filepath.Join(yearDir, name+".csv")
			if err := exporter.WriteFile(path, datasets[name]); err != nil {
				return err
			}
		}

		if err := writeJSON(filepath.Join(yearDir, "year_summary.json"), summary); err != nil {
			return err
		}
		decadeSummary[strconv.Itoa(year)] = summary
	}

	if err := writeJSON(filepath.Join(outDir, "decade_summary.json"), decadeSummary); err != nil {
		return err
	}

	o.log.Info("decade generation complete",
		zap.Int("start", start),
		zap.Int("end", end),
		zap.String("dir", outDir),
	)
	return nil
}

func schoolYearLabel(year int) string {
	return fmt.Sprintf("%d-%d", year, year+1)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WithCause(errors.ErrInternal, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WithCause(errors.ErrInternal, err)
	}
	return nil
}
