package registry

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/luminosity-datagen/internal/models"
	"github.com/noah-isme/luminosity-datagen/pkg/random"
)

func newGuardianRegistry(seed int64) *GuardianRegistry {
	return NewGuardianRegistry(random.New(seed), gofakeit.New(seed))
}

func singletonStudents(count int) []*models.Student {
	students := make([]*models.Student, 0, count)
	for i := 1; i <= count; i++ {
		students = append(students, &models.Student{
			ID:        i,
			FirstName: fmt.Sprintf("First%d", i),
			LastName:  fmt.Sprintf("Last%d", i),
			FamilyID:  fmt.Sprintf("FAM%d", i),
		})
	}
	return students
}

func TestEveryStudentGetsAtLeastOneGuardian(t *testing.T) {
	reg := newGuardianRegistry(42)
	students := singletonStudents(200)
	reg.GenerateForStudents(students)

	for _, s := range students {
		assert.NotEmpty(t, reg.GuardiansForStudent(s.ID), "student %d", s.ID)
	}
}

func TestSiblingsShareGuardians(t *testing.T) {
	reg := newGuardianRegistry(42)
	older := &models.Student{ID: 1, FirstName: "A", LastName: "Stone", FamilyID: "FAM1"}
	younger := &models.Student{ID: 2, FirstName: "B", LastName: "Stone", FamilyID: "FAM1"}

	guardiansBefore, _ := reg.GenerateForStudents([]*models.Student{older})
	guardiansAfter, _ := reg.GenerateForStudents([]*models.Student{younger})

	require.NotEmpty(t, guardiansBefore)
	assert.Empty(t, guardiansAfter, "sibling reuses existing guardians")
	assert.Equal(t, reg.GuardiansForStudent(1), reg.GuardiansForStudent(2))
}

func TestGenerateIsIdempotentPerStudent(t *testing.T) {
	reg := newGuardianRegistry(42)
	s := &models.Student{ID: 1, FirstName: "A", LastName: "Stone", FamilyID: "FAM1"}
	reg.GenerateForStudents([]*models.Student{s})
	first := reg.GuardiansForStudent(1)

	newGuardians, newRels := reg.GenerateForStudents([]*models.Student{s})
	assert.Empty(t, newGuardians)
	assert.Empty(t, newRels)
	assert.Equal(t, first, reg.GuardiansForStudent(1))
}

func TestFamilyStructureDistribution(t *testing.T) {
	reg := newGuardianRegistry(42)
	students := singletonStudents(5000)
	reg.GenerateForStudents(students)

	byID := map[int]*models.Guardian{}
	for _, g := range reg.ActiveGuardians() {
		byID[g.ID] = g
		assert.NotEmpty(t, g.FirstName)
		assert.NotEmpty(t, g.LastName)
	}

	shared, twoParent, singleMother, singleFather := 0, 0, 0, 0
	for _, s := range students {
		rels := reg.byStudent[s.ID]
		sharesSurname := false
		parents := 0
		for _, rel := range rels {
			if byID[rel.GuardianID].LastName == s.LastName {
				sharesSurname = true
			}
			if rel.GuardianTypeID == models.GuardianTypeMother || rel.GuardianTypeID == models.GuardianTypeFather {
				parents++
			}
		}
		if !sharesSurname {
			continue
		}
		shared++
		switch {
		case parents == 2:
			twoParent++
		case rels[0].GuardianTypeID == models.GuardianTypeMother:
			singleMother++
		default:
			singleFather++
		}
	}

	// 65% share a surname; structure splits 60/35/5 among them.
	assert.InDelta(t, 0.65, float64(shared)/5000, 0.03)
	assert.InDelta(t, 0.60, float64(twoParent)/float64(shared), 0.04)
	assert.InDelta(t, 0.35, float64(singleMother)/float64(shared), 0.04)
	assert.InDelta(t, 0.05, float64(singleFather)/float64(shared), 0.02)
}

func TestNonParentGuardianTypes(t *testing.T) {
	reg := newGuardianRegistry(42)
	students := singletonStudents(2000)
	reg.GenerateForStudents(students)

	for _, rel := range reg.Relationships() {
		if rel.GuardianTypeID >= models.GuardianTypeGrandmother {
			assert.LessOrEqual(t, rel.GuardianTypeID, models.GuardianTypeOther)
		}
	}
}

func TestRemoveStudentGuardiansArchivesOrphans(t *testing.T) {
	reg := newGuardianRegistry(42)
	only := &models.Student{ID: 1, FirstName: "A", LastName: "Stone", FamilyID: "FAM1"}
	reg.GenerateForStudents([]*models.Student{only})
	guardianIDs := reg.GuardiansForStudent(1)
	require.NotEmpty(t, guardianIDs)

	reg.RemoveStudentGuardians(1)

	assert.Empty(t, reg.GuardiansForStudent(1))
	assert.Empty(t, reg.ActiveGuardians())
	archived := reg.ArchivedGuardians()
	require.Len(t, archived, len(guardianIDs))
}

func TestRemoveKeepsGuardiansWithRemainingSiblings(t *testing.T) {
	reg := newGuardianRegistry(42)
	older := &models.Student{ID: 1, FirstName: "A", LastName: "Stone", FamilyID: "FAM1"}
	younger := &models.Student{ID: 2, FirstName: "B", LastName: "Stone", FamilyID: "FAM1"}
	reg.GenerateForStudents([]*models.Student{older, younger})
	shared := reg.GuardiansForStudent(1)

	reg.RemoveStudentGuardians(1)

	assert.Empty(t, reg.GuardiansForStudent(1))
	assert.Equal(t, shared, reg.GuardiansForStudent(2))
	assert.Empty(t, reg.ArchivedGuardians())
}
