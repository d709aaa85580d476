package registry

import (
	"sort"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/noah-isme/luminosity-datagen/internal/models"
	"github.com/noah-isme/luminosity-datagen/pkg/random"
)

// GuardianRegistry owns guardians and student-guardian relationships,
// derived from the student population under the family-structure rules.
type GuardianRegistry struct {
	guardians map[int]*models.Guardian
	archived  map[int]*models.Guardian
	nextID    int

	byStudent map[int][]models.StudentGuardian
	byFamily  map[string][]models.StudentGuardian

	src   *random.Source
	faker *gofakeit.Faker
}

// NewGuardianRegistry constructs an empty registry.
func NewGuardianRegistry(src *random.Source, faker *gofakeit.Faker) *GuardianRegistry {
	return &GuardianRegistry{
		guardians: make(map[int]*models.Guardian),
		archived:  make(map[int]*models.Guardian),
		nextID:    1,
		byStudent: make(map[int][]models.StudentGuardian),
		byFamily:  make(map[string][]models.StudentGuardian),
		src:       src,
		faker:     faker,
	}
}

// ActiveGuardians returns the active guardian set in id order.
func (r *GuardianRegistry) ActiveGuardians() []*models.Guardian {
	ids := make([]int, 0, len(r.guardians))
	for id := range r.guardians {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	guardians := make([]*models.Guardian, 0, len(ids))
	for _, id := range ids {
		guardians = append(guardians, r.guardians[id])
	}
	return guardians
}

// Relationships returns all active relationships ordered by student then
// guardian id.
func (r *GuardianRegistry) Relationships() []models.StudentGuardian {
	studentIDs := make([]int, 0, len(r.byStudent))
	for id := range r.byStudent {
		studentIDs = append(studentIDs, id)
	}
	sort.Ints(studentIDs)

	var rels []models.StudentGuardian
	for _, id := range studentIDs {
		rows := append([]models.StudentGuardian(nil), r.byStudent[id]...)
		sort.Slice(rows, func(i, j int) bool { return rows[i].GuardianID < rows[j].GuardianID })
		rels = append(rels, rows...)
	}
	return rels
}

// GuardiansForStudent returns the guardian ids linked to a student.
func (r *GuardianRegistry) GuardiansForStudent(studentID int) []int {
	rels := r.byStudent[studentID]
	ids := make([]int, 0, len(rels))
	for _, rel := range rels {
		ids = append(ids, rel.GuardianID)
	}
	sort.Ints(ids)
	return ids
}

// GenerateForStudents creates guardians for students that have none yet.
// Siblings reuse the family's existing guardians; otherwise a 65% draw
// decides whether the guardians share the student's surname (two-parent 60%,
// single mother 35%, single father 5%) or one non-parent guardian with an
// independent surname is created.
func (r *GuardianRegistry) GenerateForStudents(students []*models.Student) ([]models.Guardian, []models.StudentGuardian) {
	var newGuardians []models.Guardian
	var newRels []models.StudentGuardian

	for _, student := range students {
		if len(r.byStudent[student.ID]) > 0 {
			continue
		}

		if family := r.byFamily[student.FamilyID]; len(family) > 0 {
			// Sibling: link to the first-processed sibling's guardians.
			seen := map[int]bool{}
			for _, rel := range family {
				if seen[rel.GuardianID] {
					continue
				}
				seen[rel.GuardianID] = true
				newRels = append(newRels, r.link(student, rel.GuardianID, rel.GuardianTypeID))
			}
			continue
		}

		if r.src.Bool(0.65) {
			roll := r.src.Float64()
			switch {
			case roll < 0.60:
				mother := r.createGuardian(r.faker.FirstName(), student.LastName)
				father := r.createGuardian(r.faker.FirstName(), student.LastName)
				newGuardians = append(newGuardians, *mother, *father)
				newRels = append(newRels,
					r.link(student, mother.ID, models.GuardianTypeMother),
					r.link(student, father.ID, models.GuardianTypeFather))
			case roll < 0.95:
				mother := r.createGuardian(r.faker.FirstName(), student.LastName)
				newGuardians = append(newGuardians, *mother)
				newRels = append(newRels, r.link(student, mother.ID, models.GuardianTypeMother))
			default:
				father := r.createGuardian(r.faker.FirstName(), student.LastName)
				newGuardians = append(newGuardians, *father)
				newRels = append(newRels, r.link(student, father.ID, models.GuardianTypeFather))
			}
			continue
		}

		typeID := r.src.IntRange(models.GuardianTypeGrandmother, models.GuardianTypeOther)
		guardian := r.createGuardian(r.faker.FirstName(), r.faker.LastName())
		newGuardians = append(newGuardians, *guardian)
		newRels = append(newRels, r.link(student, guardian.ID, typeID))
	}

	return newGuardians, newRels
}

// RemoveStudentGuardians drops the student's relationship rows. Guardians
// left with no remaining students move to the archived set.
func (r *GuardianRegistry) RemoveStudentGuardians(studentID int) {
	rels := r.byStudent[studentID]
	if len(rels) == 0 {
		return
	}
	delete(r.byStudent, studentID)

	for _, rel := range rels {
		family := r.byFamily[rel.FamilyID]
		kept := family[:0]
		for _, fr := range family {
			if fr.StudentID != studentID || fr.GuardianID != rel.GuardianID {
				kept = append(kept, fr)
			}
		}
		if len(kept) == 0 {
			delete(r.byFamily, rel.FamilyID)
		} else {
			r.byFamily[rel.FamilyID] = kept
		}

		if r.guardianStudentCount(rel.GuardianID) == 0 {
			if guardian, ok := r.guardians[rel.GuardianID]; ok {
				r.archived[rel.GuardianID] = guardian
				delete(r.guardians, rel.GuardianID)
			}
		}
	}
}

// ArchivedGuardians returns guardians whose last student left.
func (r *GuardianRegistry) ArchivedGuardians() []*models.Guardian {
	ids := make([]int, 0, len(r.archived))
	for id := range r.archived {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	guardians := make([]*models.Guardian, 0, len(ids))
	for _, id := range ids {
		guardians = append(guardians, r.archived[id])
	}
	return guardians
}

func (r *GuardianRegistry) guardianStudentCount(guardianID int) int {
	count := 0
	for _, rels := range r.byStudent {
		for _, rel := range rels {
			if rel.GuardianID == guardianID {
				count++
			}
		}
	}
	return count
}

func (r *GuardianRegistry) createGuardian(firstName, lastName string) *models.Guardian {
	guardian := &models.Guardian{
		ID:        r.nextID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     r.faker.Email(),
		Phone:     r.faker.Phone(),
	}
	r.guardians[guardian.ID] = guardian
	r.nextID++
	return guardian
}

func (r *GuardianRegistry) link(student *models.Student, guardianID, typeID int) models.StudentGuardian {
	rel := models.StudentGuardian{
		StudentID:      student.ID,
		GuardianID:     guardianID,
		GuardianTypeID: typeID,
		FamilyID:       student.FamilyID,
	}
	r.byStudent[student.ID] = append(r.byStudent[student.ID], rel)
	r.byFamily[student.FamilyID] = append(r.byFamily[student.FamilyID], rel)
	return rel
}
