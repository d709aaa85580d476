package registry

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/luminosity-datagen/internal/catalog"
	"github.com/noah-isme/luminosity-datagen/internal/models"
	"github.com/noah-isme/luminosity-datagen/pkg/random"
)

func baselineTeachers(count int) []models.Teacher {
	teachers := make([]models.Teacher, 0, count)
	for i := 1; i <= count; i++ {
		teachers = append(teachers, models.Teacher{
			ID:           i,
			FirstName:    fmt.Sprintf("First%d", i),
			LastName:     fmt.Sprintf("Last%d", i),
			DepartmentID: (i % catalog.DepartmentCount) + 1,
		})
	}
	return teachers
}

func TestLoadBaselineFillsCareerFields(t *testing.T) {
	reg := NewTeacherRegistry(random.New(42), gofakeit.New(42))
	reg.LoadBaseline(baselineTeachers(60), 2015)

	require.Equal(t, 60, reg.ActiveCount())
	for _, teacher := range reg.ActiveTeachers() {
		assert.GreaterOrEqual(t, teacher.HireYear, 2005)
		assert.LessOrEqual(t, teacher.HireYear, 2015)
		assert.GreaterOrEqual(t, teacher.YearsExperience, 1)
		assert.LessOrEqual(t, teacher.YearsExperience, 20)
		assert.NotEmpty(t, teacher.PositionLevel)
	}
}

func TestProcessAnnualChanges(t *testing.T) {
	reg := NewTeacherRegistry(random.New(42), gofakeit.New(42))
	reg.LoadBaseline(baselineTeachers(60), 2015)

	expBefore := map[int]int{}
	for _, teacher := range reg.ActiveTeachers() {
		expBefore[teacher.ID] = teacher.YearsExperience
	}

	retirements, resignations, hires := reg.ProcessAnnualChanges(2016, 62, 0.08)

	departures := len(retirements) + len(resignations)
	assert.Equal(t, 4, departures, "int(60 * 0.08) truncates to 4")
	assert.Equal(t, 62, reg.ActiveCount())
	assert.Equal(t, 62-(60-departures), len(hires))

	// Departures come from the most experienced end of the roster.
	minDeparted := 100
	for _, teacher := range append(append([]*models.Teacher(nil), retirements...), resignations...) {
		if expBefore[teacher.ID] < minDeparted {
			minDeparted = expBefore[teacher.ID]
		}
	}
	for _, teacher := range reg.ActiveTeachers() {
		if before, ok := expBefore[teacher.ID]; ok {
			assert.LessOrEqual(t, before, minDeparted)
		}
	}
	for _, teacher := range retirements {
		assert.Equal(t, 2016, teacher.RetirementYear)
	}
	for _, teacher := range resignations {
		assert.Equal(t, 2016, teacher.DepartureYear)
	}

	// Survivors aged one year; hires start at the hire-year experience draw
	// plus the year increment.
	for _, teacher := range reg.ActiveTeachers() {
		if before, ok := expBefore[teacher.ID]; ok {
			assert.Equal(t, before+1, teacher.YearsExperience)
		} else {
			assert.Equal(t, 2016, teacher.HireYear)
			assert.Equal(t, models.PositionTeacher, teacher.PositionLevel)
			assert.NotEmpty(t, teacher.FirstName)
			assert.NotEmpty(t, teacher.LastName)
		}
	}
}

func TestHiringFavoursUnderstaffedDepartments(t *testing.T) {
	reg := NewTeacherRegistry(random.New(7), gofakeit.New(7))
	// Everyone in department 1; departments 2-9 are empty.
	teachers := make([]models.Teacher, 0, 30)
	for i := 1; i <= 30; i++ {
		teachers = append(teachers, models.Teacher{ID: i, FirstName: "A", LastName: "B", DepartmentID: 1})
	}
	reg.LoadBaseline(teachers, 2015)

	_, _, hires := reg.ProcessAnnualChanges(2016, 60, 0)
	require.Len(t, hires, 30)

	dept1 := 0
	for _, teacher := range hires {
		if teacher.DepartmentID == 1 {
			dept1++
		}
	}
	// Department 1 keeps only the floor weight, so hires overwhelmingly land
	// in the empty departments.
	assert.Less(t, dept1, 8)
}

func TestDepartureRetirementRule(t *testing.T) {
	reg := NewTeacherRegistry(random.New(42), gofakeit.New(42))
	teachers := make([]models.Teacher, 0, 20)
	for i := 1; i <= 20; i++ {
		teachers = append(teachers, models.Teacher{
			ID:              i,
			FirstName:       "A",
			LastName:        "B",
			DepartmentID:    1,
			HireYear:        1990,
			YearsExperience: 30,
			PositionLevel:   models.PositionTeacher,
		})
	}
	reg.LoadBaseline(teachers, 2015)

	retirements, resignations, _ := reg.ProcessAnnualChanges(2016, 20, 0.5)
	// Everyone leaving has 25+ years, so all departures retire.
	assert.Len(t, retirements, 10)
	assert.Empty(t, resignations)
}
