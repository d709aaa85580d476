package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/luminosity-datagen/internal/models"
)

func baselineSubjects() []models.Subject {
	return []models.Subject{
		{ID: 1, Name: "Mathematics", DepartmentID: 1},
		{ID: 2, Name: "Science", DepartmentID: 2},
		{ID: 3, Name: "English", DepartmentID: 3},
		{ID: 4, Name: "Old World History", DepartmentID: 4},
		{ID: 5, Name: "Visual Arts", DepartmentID: 6},
	}
}

func TestLoadBaselineMarksCoreSubjects(t *testing.T) {
	mgr := NewCurriculumManager(DefaultCurriculumEvents())
	mgr.LoadBaseline(baselineSubjects(), 2015)

	byName := map[string]*models.Subject{}
	for _, s := range mgr.Subjects() {
		byName[s.Name] = s
	}
	assert.True(t, byName["Mathematics"].IsCore)
	assert.True(t, byName["Science"].IsCore)
	assert.False(t, byName["Visual Arts"].IsCore)
	assert.Equal(t, 2015, byName["Mathematics"].IntroducedYear)
}

func TestEvolveAppliesYearKeyedEvents(t *testing.T) {
	mgr := NewCurriculumManager(DefaultCurriculumEvents())
	mgr.LoadBaseline(baselineSubjects(), 2015)

	changes := mgr.Evolve(2016)
	require.Len(t, changes, 2)

	byName := map[string]*models.Subject{}
	for _, s := range mgr.Subjects() {
		byName[s.Name] = s
	}
	require.Contains(t, byName, "Digital Literacy")
	assert.Equal(t, 7, byName["Digital Literacy"].DepartmentID)
	assert.Equal(t, 2016, byName["Digital Literacy"].IntroducedYear)

	assert.Contains(t, byName, "World History")
	assert.NotContains(t, byName, "Old World History")
}

func TestEvolveQuietYears(t *testing.T) {
	mgr := NewCurriculumManager(DefaultCurriculumEvents())
	mgr.LoadBaseline(baselineSubjects(), 2015)

	assert.Empty(t, mgr.Evolve(2018))
	assert.Len(t, mgr.Subjects(), 5)
}

func TestSubjectsNeverDeletedAcrossDecade(t *testing.T) {
	mgr := NewCurriculumManager(DefaultCurriculumEvents())
	mgr.LoadBaseline(baselineSubjects(), 2015)

	prev := len(mgr.Subjects())
	for year := 2016; year <= 2025; year++ {
		mgr.Evolve(year)
		assert.GreaterOrEqual(t, len(mgr.Subjects()), prev)
		prev = len(mgr.Subjects())
	}
	// Nine scripted additions over the decade; the rename adds nothing.
	assert.Equal(t, 5+9, prev)
}

func TestSubjectsForDepartment(t *testing.T) {
	mgr := NewCurriculumManager(DefaultCurriculumEvents())
	mgr.LoadBaseline(baselineSubjects(), 2015)
	mgr.Evolve(2017) // adds AP Calculus to department 1

	dept1 := mgr.SubjectsForDepartment(1)
	require.Len(t, dept1, 2)
	assert.Equal(t, "Mathematics", dept1[0].Name)
	assert.Equal(t, "AP Calculus", dept1[1].Name)
}
