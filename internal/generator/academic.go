package generator

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/luminosity-datagen/internal/catalog"
	"github.com/noah-isme/luminosity-datagen/internal/models"
	"github.com/noah-isme/luminosity-datagen/internal/registry"
	"github.com/noah-isme/luminosity-datagen/pkg/random"
)

// sectionSize is the target number of students per class section.
const sectionSize = 25

// subjectsForGrade maps a grade level to the subject list every section of
// that grade offers.
func subjectsForGrade(grade int) []string {
	switch {
	case grade <= 6: // K-5
		return []string{"Homeroom", "Mathematics", "Reading", "Science", "Social Studies"}
	case grade <= 9: // 6th-8th
		return []string{"Mathematics", "English Language Arts", "Science", "Social Studies", "Art", "Physical Education", "Technology"}
	case grade == 10: // 9th
		return []string{"Algebra I", "Biology", "Physical Education", "English", "Geography", "Spanish I", "Computer Science"}
	case grade == 11: // 10th
		return []string{"Geometry", "Life Science", "Physical Education", "American Literature", "Old World History", "Spanish II", "Visual Arts"}
	case grade == 12: // 11th
		return []string{"Algebra II", "Chemistry", "Physical Education", "English Literature", "New World History", "Leadership", "Music Performance"}
	default: // 12th
		return []string{"Calculus", "Psychology", "Physical Education", "World Literature", "Government/Economics"}
	}
}

// YearTables is one year's worth of derived tables: regenerated fresh each
// year with no cross-year identity.
type YearTables struct {
	Classes         []models.Class
	Enrollments     []models.Enrollment
	TeacherSubjects []models.TeacherSubject
	Assignments     []models.Assignment
	Grades          []models.Grade
	Attendance      []models.AttendanceRecord
	Discipline      []models.DisciplineReport
	Tests           []models.StandardizedTest
	GradeHistory    []models.GradeHistory
	Payments        []models.Payment
	SchoolYear      models.SchoolYear
	Terms           []models.Term
	Calendar        []models.CalendarDay
}

// AcademicGenerator derives one year of academic and administrative tables
// from the registries' current state. It only reads registry state.
type AcademicGenerator struct {
	students   *registry.StudentRegistry
	teachers   *registry.TeacherRegistry
	guardians  *registry.GuardianRegistry
	curriculum *registry.CurriculumManager
	catalog    *catalog.Catalog

	grades     GradePolicy
	gpa        GPAPolicy
	attendance AttendancePolicy
	fees       *FeeSchedule

	src *random.Source
	log *zap.Logger
}

// NewAcademicGenerator wires the generator over the registries.
func NewAcademicGenerator(
	students *registry.StudentRegistry,
	teachers *registry.TeacherRegistry,
	guardians *registry.GuardianRegistry,
	curriculum *registry.CurriculumManager,
	cat *catalog.Catalog,
	fees *FeeSchedule,
	src *random.Source,
	log *zap.Logger,
) *AcademicGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &AcademicGenerator{
		students:   students,
		teachers:   teachers,
		guardians:  guardians,
		curriculum: curriculum,
		catalog:    cat,
		grades:     DefaultGradePolicy(),
		gpa:        DefaultGPAPolicy(),
		attendance: DefaultAttendancePolicy(),
		fees:       fees,
		src:        src,
		log:        log,
	}
}

// termBase returns the first term id of the school year; term ids stay
// unique across the decade.
func termBase(year int) int {
	return (year-2015)*4 + 1
}

func schoolYearID(year int) int {
	return year - 2014
}

// GenerateYear derives the full table set for the year.
func (g *AcademicGenerator) GenerateYear(year int) *YearTables {
	tables := &YearTables{}

	tables.Classes = g.generateClasses(year)
	tables.Enrollments = g.generateEnrollments(tables.Classes)
	tables.TeacherSubjects = g.generateTeacherSubjects()
	tables.Assignments = g.generateAssignments(year, tables.Classes)
	tables.Grades = g.generateGrades(tables.Assignments, tables.Enrollments)
	tables.Attendance = g.generateAttendance(year)
	tables.Discipline = g.generateDiscipline(year)
	tables.Tests = g.generateStandardizedTests(year)
	tables.GradeHistory = g.generateGradeHistory(year)
	tables.Payments = g.generatePayments(year)
	tables.SchoolYear = models.SchoolYear{
		ID:        schoolYearID(year),
		StartDate: schoolYearStart(year),
		EndDate:   schoolYearEnd(year),
	}
	tables.Terms = g.generateTerms(year)
	tables.Calendar = BuildCalendar(year)

	g.log.Info("derived year tables",
		zap.Int("year", year),
		zap.Int("classes", len(tables.Classes)),
		zap.Int("enrollments", len(tables.Enrollments)),
		zap.Int("grades", len(tables.Grades)),
		zap.Int("attendance", len(tables.Attendance)),
	)
	return tables
}

// generateClasses groups active students by grade and opens one section per
// 25 students, each offering the grade band's subject list.
func (g *AcademicGenerator) generateClasses(year int) []models.Class {
	gradeCounts := map[int]int{}
	for _, student := range g.students.ActiveStudents() {
		gradeCounts[student.GradeLevel]++
	}

	teacherIDs := g.teachers.ActiveIDs()

	var classes []models.Class
	classID := 1
	for grade := models.GradeKindergarten; grade <= models.GradeSenior; grade++ {
		count := gradeCounts[grade]
		if count == 0 {
			continue
		}
		sections := count / sectionSize
		if sections < 1 {
			sections = 1
		}
		subjects := subjectsForGrade(grade)

		for section := 0; section < sections; section++ {
			for period, subject := range subjects {
				teacherID := 1
				if len(teacherIDs) > 0 {
					teacherID = teacherIDs[g.src.Choice(len(teacherIDs))]
				}
				classes = append(classes, models.Class{
					ID:          classID,
					Name:        subject,
					GradeLevel:  grade,
					TeacherID:   teacherID,
					ClassroomID: g.src.IntRange(1, 20),
					PeriodID:    period + 1,
					TermID:      termBase(year) + g.src.IntRange(0, 3),
				})
				classID++
			}
		}
	}
	return classes
}

// generateEnrollments enrolls every student in every class of their grade.
func (g *AcademicGenerator) generateEnrollments(classes []models.Class) []models.Enrollment {
	byGrade := map[int][]*models.Student{}
	for _, student := range g.students.ActiveStudents() {
		byGrade[student.GradeLevel] = append(byGrade[student.GradeLevel], student)
	}

	var enrollments []models.Enrollment
	next := 1
	for _, class := range classes {
		for _, student := range byGrade[class.GradeLevel] {
			enrollments = append(enrollments, models.Enrollment{
				ID:        fmt.Sprintf("ENR%06d", next),
				StudentID: student.ID,
				ClassID:   class.ID,
			})
			next++
		}
	}
	return enrollments
}

// generateTeacherSubjects assigns each teacher 1-3 subjects from their own
// department.
func (g *AcademicGenerator) generateTeacherSubjects() []models.TeacherSubject {
	var rows []models.TeacherSubject
	for _, teacher := range g.teachers.ActiveTeachers() {
		deptSubjects := g.curriculum.SubjectsForDepartment(teacher.DepartmentID)
		if len(deptSubjects) == 0 {
			continue
		}
		want := g.src.IntRange(1, 3)
		if want > len(deptSubjects) {
			want = len(deptSubjects)
		}
		for _, idx := range g.src.Sample(len(deptSubjects), want) {
			rows = append(rows, models.TeacherSubject{
				TeacherID:    teacher.ID,
				SubjectID:    deptSubjects[idx].ID,
				DepartmentID: teacher.DepartmentID,
			})
		}
	}
	return rows
}

// generateAssignments creates 65-75 assignments per class, roughly two per
// week over the 36-week year.
func (g *AcademicGenerator) generateAssignments(year int, classes []models.Class) []models.Assignment {
	categories := []string{
		models.CategoryHomework,
		models.CategoryQuiz,
		models.CategoryTest,
		models.CategoryProject,
		models.CategoryParticipation,
	}

	start := schoolYearStart(year)
	spanDays := int(schoolYearEnd(year).Sub(start).Hours() / 24)

	var assignments []models.Assignment
	next := 1
	for _, class := range classes {
		perClass := g.src.IntRange(65, 75)
		for i := 0; i < perClass; i++ {
			category := categories[g.src.Choice(len(categories))]
			var points int
			switch category {
			case models.CategoryHomework:
				points = g.src.IntRange(10, 25)
			case models.CategoryQuiz:
				points = g.src.IntRange(25, 50)
			case models.CategoryTest:
				points = g.src.IntRange(75, 100)
			case models.CategoryProject:
				points = g.src.IntRange(50, 100)
			default:
				points = g.src.IntRange(5, 15)
			}

			assignments = append(assignments, models.Assignment{
				ID:             next,
				ClassID:        class.ID,
				Title:          fmt.Sprintf("%s %d", category, i+1),
				DueDate:        start.AddDate(0, 0, g.src.IntRange(0, spanDays)),
				PointsPossible: points,
				Category:       category,
				TermID:         termBase(year) + g.src.IntRange(0, 3),
			})
			next++
		}
	}
	return assignments
}

// generateGrades scores every enrolled student on every assignment in their
// classes using the grade policy of record.
func (g *AcademicGenerator) generateGrades(assignments []models.Assignment, enrollments []models.Enrollment) []models.Grade {
	studentsByClass := map[int][]int{}
	for _, e := range enrollments {
		studentsByClass[e.ClassID] = append(studentsByClass[e.ClassID], e.StudentID)
	}

	var grades []models.Grade
	next := 1
	for _, assignment := range assignments {
		for _, studentID := range studentsByClass[assignment.ClassID] {
			grades = append(grades, models.Grade{
				ID:           next,
				StudentID:    studentID,
				AssignmentID: assignment.ID,
				Score:        g.grades.Score(assignment.PointsPossible, g.src),
				SubmittedOn:  assignment.DueDate,
				TermID:       assignment.TermID,
			})
			next++
		}
	}
	return grades
}

// generateTerms lays out the four quarters of the school year.
func (g *AcademicGenerator) generateTerms(year int) []models.Term {
	base := termBase(year)
	yearID := schoolYearID(year)
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return []models.Term{
		{ID: base, Label: "Q1", StartDate: date(year, time.August, 26), EndDate: date(year, time.October, 25), SchoolYearID: yearID},
		{ID: base + 1, Label: "Q2", StartDate: date(year, time.October, 28), EndDate: date(year, time.December, 20), SchoolYearID: yearID},
		{ID: base + 2, Label: "Q3", StartDate: date(year+1, time.January, 6), EndDate: date(year+1, time.March, 14), SchoolYearID: yearID},
		{ID: base + 3, Label: "Q4", StartDate: date(year+1, time.March, 17), EndDate: date(year+1, time.June, 6), SchoolYearID: yearID},
	}
}
