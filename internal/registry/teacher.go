package registry

import (
	"sort"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/noah-isme/luminosity-datagen/internal/catalog"
	"github.com/noah-isme/luminosity-datagen/internal/models"
	"github.com/noah-isme/luminosity-datagen/pkg/random"
)

// TeacherRegistry owns the teaching staff across the decade.
type TeacherRegistry struct {
	active  map[int]*models.Teacher
	retired map[int]*models.Teacher
	former  map[int]*models.Teacher
	nextID  int

	src   *random.Source
	faker *gofakeit.Faker
}

// NewTeacherRegistry constructs an empty registry.
func NewTeacherRegistry(src *random.Source, faker *gofakeit.Faker) *TeacherRegistry {
	return &TeacherRegistry{
		active:  make(map[int]*models.Teacher),
		retired: make(map[int]*models.Teacher),
		former:  make(map[int]*models.Teacher),
		nextID:  1,
		src:     src,
		faker:   faker,
	}
}

// LoadBaseline seeds the active set. The baseline CSV carries no career
// fields, so hire year, experience, and position are drawn here.
func (r *TeacherRegistry) LoadBaseline(teachers []models.Teacher, baselineYear int) {
	positions := []string{models.PositionTeacher, models.PositionSeniorTeacher, models.PositionDepartmentHead}
	for i := range teachers {
		t := teachers[i]
		if t.HireYear == 0 {
			t.HireYear = r.src.IntRange(baselineYear-10, baselineYear)
		}
		if t.YearsExperience == 0 {
			t.YearsExperience = r.src.IntRange(1, 20)
		}
		if t.PositionLevel == "" {
			t.PositionLevel = positions[r.src.Choice(len(positions))]
		}
		r.active[t.ID] = &t
		if t.ID >= r.nextID {
			r.nextID = t.ID + 1
		}
	}
}

// ActiveIDs returns active teacher ids in ascending order.
func (r *TeacherRegistry) ActiveIDs() []int {
	ids := make([]int, 0, len(r.active))
	for id := range r.active {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ActiveTeachers returns the active set in id order.
func (r *TeacherRegistry) ActiveTeachers() []*models.Teacher {
	teachers := make([]*models.Teacher, 0, len(r.active))
	for _, id := range r.ActiveIDs() {
		teachers = append(teachers, r.active[id])
	}
	return teachers
}

// ActiveCount returns the number of active teachers.
func (r *TeacherRegistry) ActiveCount() int {
	return len(r.active)
}

// ProcessAnnualChanges applies one year of staff turnover. Departures are
// drawn from the most experienced teachers; each becomes a retirement when
// experience is 25+ years or with probability 0.3, else a resignation. New
// hires fill back to target, weighted toward under-staffed departments, and
// every remaining teacher gains a year of experience.
func (r *TeacherRegistry) ProcessAnnualChanges(year, target int, turnover float64) (retirements, resignations, newHires []*models.Teacher) {
	departures := int(float64(len(r.active)) * turnover)

	candidates := r.ActiveTeachers()
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].YearsExperience > candidates[j].YearsExperience
	})
	if departures > len(candidates) {
		departures = len(candidates)
	}

	for _, teacher := range candidates[:departures] {
		if teacher.YearsExperience >= 25 || r.src.Bool(0.3) {
			teacher.RetirementYear = year
			r.retired[teacher.ID] = teacher
			retirements = append(retirements, teacher)
		} else {
			teacher.DepartureYear = year
			r.former[teacher.ID] = teacher
			resignations = append(resignations, teacher)
		}
		delete(r.active, teacher.ID)
	}

	weights := r.departmentNeeds()
	for len(r.active) < target {
		departmentID := r.src.WeightedIndex(weights) + 1

		teacher := &models.Teacher{
			ID:              r.nextID,
			FirstName:       r.faker.FirstName(),
			LastName:        r.faker.LastName(),
			DepartmentID:    departmentID,
			HireYear:        year,
			YearsExperience: r.src.IntRange(0, 5),
			PositionLevel:   models.PositionTeacher,
		}
		r.active[teacher.ID] = teacher
		r.nextID++
		newHires = append(newHires, teacher)
	}

	for _, id := range r.ActiveIDs() {
		r.active[id].YearsExperience++
	}

	return retirements, resignations, newHires
}

// departmentNeeds weights each department by how far below an even split its
// headcount sits. Every department keeps a floor weight of 1 so hiring never
// starves a fully staffed department entirely.
func (r *TeacherRegistry) departmentNeeds() []float64 {
	counts := make([]int, catalog.DepartmentCount)
	for _, teacher := range r.active {
		if teacher.DepartmentID >= 1 && teacher.DepartmentID <= catalog.DepartmentCount {
			counts[teacher.DepartmentID-1]++
		}
	}

	ideal := float64(len(r.active)) / float64(catalog.DepartmentCount)
	weights := make([]float64, catalog.DepartmentCount)
	for i, count := range counts {
		need := ideal - float64(count)
		if need < 1 {
			need = 1
		}
		weights[i] = need
	}
	return weights
}
