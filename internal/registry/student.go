// Package registry holds the owned in-memory entity collections that evolve
// across simulated years. Each registry exclusively owns its collection;
// derived-table generation only reads registry snapshots.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/noah-isme/luminosity-datagen/internal/models"
	"github.com/noah-isme/luminosity-datagen/pkg/random"
)

// GuardianCollaborator is the slice of the guardian registry the student
// registry needs when students enter or leave mid-year.
type GuardianCollaborator interface {
	RemoveStudentGuardians(studentID int)
	GenerateForStudents(students []*models.Student) ([]models.Guardian, []models.StudentGuardian)
}

// StudentRegistry owns the student population across the decade.
type StudentRegistry struct {
	active      map[int]*models.Student
	graduated   map[int]*models.Student
	transferred map[int]*models.Student
	nextID      int
	nextFamily  int

	src   *random.Source
	faker *gofakeit.Faker
}

// NewStudentRegistry constructs an empty registry.
func NewStudentRegistry(src *random.Source, faker *gofakeit.Faker) *StudentRegistry {
	return &StudentRegistry{
		active:      make(map[int]*models.Student),
		graduated:   make(map[int]*models.Student),
		transferred: make(map[int]*models.Student),
		nextID:      1,
		src:         src,
		faker:       faker,
	}
}

// newFamilyID issues a family id no existing student carries.
func (r *StudentRegistry) newFamilyID() string {
	id := fmt.Sprintf("FAM%d", r.nextFamily)
	r.nextFamily++
	return id
}

// LoadBaseline seeds the active set from baseline rows. Baseline students
// sharing a surname are grouped into one family, which is what makes
// sibling inference possible downstream.
func (r *StudentRegistry) LoadBaseline(students []models.Student, baselineYear int) {
	families := map[string]string{}
	for i := range students {
		s := students[i]
		s.EnrollmentYear = baselineYear
		if s.FamilyID == "" {
			key := strings.ToLower(s.LastName)
			if families[key] == "" {
				families[key] = r.newFamilyID()
			}
			s.FamilyID = families[key]
		}
		r.active[s.ID] = &s
		if s.ID >= r.nextID {
			r.nextID = s.ID + 1
		}
	}
}

// ActiveIDs returns active student ids in ascending order. Registry walks
// happen through this so runs are reproducible for a seed.
func (r *StudentRegistry) ActiveIDs() []int {
	ids := make([]int, 0, len(r.active))
	for id := range r.active {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Active returns the active student with the given id, or nil.
func (r *StudentRegistry) Active(id int) *models.Student {
	return r.active[id]
}

// ActiveStudents returns the active set in id order.
func (r *StudentRegistry) ActiveStudents() []*models.Student {
	students := make([]*models.Student, 0, len(r.active))
	for _, id := range r.ActiveIDs() {
		students = append(students, r.active[id])
	}
	return students
}

// ActiveCount returns the number of active students.
func (r *StudentRegistry) ActiveCount() int {
	return len(r.active)
}

// GraduatedStudents returns the graduated archive in id order.
func (r *StudentRegistry) GraduatedStudents() []*models.Student {
	return sortedStudents(r.graduated)
}

// TransferredStudents returns the transferred-out archive in id order.
func (r *StudentRegistry) TransferredStudents() []*models.Student {
	return sortedStudents(r.transferred)
}

// AdvanceGradeLevels moves every active student up one grade. Students at
// the terminal grade graduate: they are stamped with the graduation year and
// moved out of the active set.
func (r *StudentRegistry) AdvanceGradeLevels(year int) (graduated, advanced []*models.Student) {
	for _, id := range r.ActiveIDs() {
		student := r.active[id]
		if student.GradeLevel >= models.GradeSenior {
			student.GraduationYear = year
			r.graduated[id] = student
			delete(r.active, id)
			graduated = append(graduated, student)
			continue
		}
		student.GradeLevel++
		advanced = append(advanced, student)
	}
	return graduated, advanced
}

// EnrollKindergarteners adds count new kindergarten students for the year.
// About 20% join an existing family as a sibling, taking that family's
// surname; the rest mint a fresh family id.
func (r *StudentRegistry) EnrollKindergarteners(year, count int) []*models.Student {
	newStudents := make([]*models.Student, 0, count)

	for i := 0; i < count; i++ {
		gender, firstName := r.drawPerson()

		familyID := ""
		lastName := ""
		if r.src.Bool(0.20) {
			if sibling := r.randomActive(); sibling != nil {
				familyID = sibling.FamilyID
				lastName = sibling.LastName
			}
		}
		if familyID == "" {
			familyID = r.newFamilyID()
			lastName = r.faker.LastName()
		}

		student := &models.Student{
			ID:             r.nextID,
			FirstName:      firstName,
			LastName:       lastName,
			Gender:         gender,
			DateOfBirth:    r.birthDateForGrade(year, models.GradeKindergarten),
			GradeLevel:     models.GradeKindergarten,
			EnrollmentYear: year,
			FamilyID:       familyID,
		}
		r.active[student.ID] = student
		r.nextID++
		newStudents = append(newStudents, student)
	}
	return newStudents
}

// ProcessTransfers removes outCount random active students and adds inCount
// new ones at grades 1-12. Out counts are clamped to the available
// population. The guardian collaborator cleans up relationships for leavers
// and creates them for arrivals.
func (r *StudentRegistry) ProcessTransfers(year, inCount, outCount int, guardians GuardianCollaborator) (transfersIn, transfersOut []*models.Student) {
	if outCount > 0 {
		candidates := r.ActiveIDs()
		for _, idx := range r.src.Sample(len(candidates), outCount) {
			id := candidates[idx]
			student := r.active[id]
			student.TransferYear = year
			r.transferred[id] = student
			delete(r.active, id)
			transfersOut = append(transfersOut, student)

			guardians.RemoveStudentGuardians(id)
		}
	}

	for i := 0; i < inCount; i++ {
		grade := r.src.IntRange(1, 12)
		gender, firstName := r.drawPerson()

		student := &models.Student{
			ID:             r.nextID,
			FirstName:      firstName,
			LastName:       r.faker.LastName(),
			Gender:         gender,
			DateOfBirth:    r.birthDateForGrade(year, grade),
			GradeLevel:     grade,
			EnrollmentYear: year,
			FamilyID:       r.newFamilyID(),
			IsTransfer:     true,
		}
		r.active[student.ID] = student
		r.nextID++
		transfersIn = append(transfersIn, student)

		guardians.GenerateForStudents([]*models.Student{student})
	}
	return transfersIn, transfersOut
}

// birthDateForGrade draws a birth date implying the usual age for the grade
// at the start of the school year: Sep 1 through Aug 31 of the cohort window.
func (r *StudentRegistry) birthDateForGrade(year, grade int) time.Time {
	age := 5 + grade - 1
	birthYear := year - age
	start := time.Date(birthYear-1, time.September, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(birthYear, time.August, 31, 0, 0, 0, 0, time.UTC)
	days := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, r.src.IntRange(0, days))
}

func (r *StudentRegistry) drawPerson() (gender, firstName string) {
	gender = "F"
	if r.src.Bool(0.5) {
		gender = "M"
	}
	return gender, r.faker.FirstName()
}

func (r *StudentRegistry) randomActive() *models.Student {
	ids := r.ActiveIDs()
	if len(ids) == 0 {
		return nil
	}
	return r.active[ids[r.src.Choice(len(ids))]]
}

func sortedStudents(set map[int]*models.Student) []*models.Student {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	students := make([]*models.Student, 0, len(ids))
	for _, id := range ids {
		students = append(students, set[id])
	}
	return students
}
