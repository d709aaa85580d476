package registry

import (
	"fmt"
	"sort"

	"github.com/noah-isme/luminosity-datagen/internal/models"
)

// CurriculumManager owns the evolving subject catalog. Subjects are added or
// renamed by year-keyed scripted events; they are never deleted, matching
// transcript-retention needs.
type CurriculumManager struct {
	subjects map[int]*models.Subject
	events   []models.CurriculumEvent
	nextID   int
}

// NewCurriculumManager constructs the manager with the given event table.
func NewCurriculumManager(events []models.CurriculumEvent) *CurriculumManager {
	return &CurriculumManager{
		subjects: make(map[int]*models.Subject),
		events:   events,
		nextID:   1,
	}
}

// DefaultCurriculumEvents is the scripted decade of curriculum change.
func DefaultCurriculumEvents() []models.CurriculumEvent {
	return []models.CurriculumEvent{
		{Year: 2016, Kind: models.CurriculumAdd, Name: "Digital Literacy", DepartmentID: 7, Reason: "Technology integration begins"},
		{Year: 2016, Kind: models.CurriculumRename, Name: "Old World History", NewName: "World History", Reason: "Curriculum consolidation"},
		{Year: 2017, Kind: models.CurriculumAdd, Name: "AP Calculus", DepartmentID: 1, Reason: "Advanced mathematics option"},
		{Year: 2017, Kind: models.CurriculumAdd, Name: "Environmental Science", DepartmentID: 2, Reason: "STEM expansion"},
		{Year: 2019, Kind: models.CurriculumAdd, Name: "Robotics", DepartmentID: 7, Reason: "STEM Academy launch"},
		{Year: 2019, Kind: models.CurriculumAdd, Name: "Mandarin Chinese", DepartmentID: 8, Reason: "Language diversity"},
		{Year: 2022, Kind: models.CurriculumAdd, Name: "Cybersecurity", DepartmentID: 7, Reason: "Modern technology focus"},
		{Year: 2022, Kind: models.CurriculumAdd, Name: "Data Science", DepartmentID: 1, Reason: "21st century mathematics"},
		{Year: 2023, Kind: models.CurriculumAdd, Name: "International Baccalaureate", DepartmentID: 9, Reason: "Global curriculum"},
		{Year: 2023, Kind: models.CurriculumAdd, Name: "Dual Enrollment Math", DepartmentID: 1, Reason: "College partnership"},
	}
}

// LoadBaseline seeds the subject catalog from baseline rows.
func (m *CurriculumManager) LoadBaseline(subjects []models.Subject, baselineYear int) {
	core := map[string]bool{
		"Mathematics":    true,
		"English":        true,
		"Science":        true,
		"Social Studies": true,
	}
	for i := range subjects {
		s := subjects[i]
		s.IntroducedYear = baselineYear
		s.IsCore = core[s.Name]
		m.subjects[s.ID] = &s
		if s.ID >= m.nextID {
			m.nextID = s.ID + 1
		}
	}
}

// Subjects returns the active catalog in id order.
func (m *CurriculumManager) Subjects() []*models.Subject {
	ids := make([]int, 0, len(m.subjects))
	for id := range m.subjects {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subjects := make([]*models.Subject, 0, len(ids))
	for _, id := range ids {
		subjects = append(subjects, m.subjects[id])
	}
	return subjects
}

// SubjectsForDepartment returns the department's subjects in id order.
func (m *CurriculumManager) SubjectsForDepartment(departmentID int) []*models.Subject {
	var subjects []*models.Subject
	for _, s := range m.Subjects() {
		if s.DepartmentID == departmentID {
			subjects = append(subjects, s)
		}
	}
	return subjects
}

// Evolve applies the scripted events for the given year and returns
// human-readable change descriptions for the year summary.
func (m *CurriculumManager) Evolve(year int) []string {
	var changes []string
	for _, event := range m.events {
		if event.Year != year {
			continue
		}
		changes = append(changes, m.apply(event, year))
	}
	return changes
}

func (m *CurriculumManager) apply(event models.CurriculumEvent, year int) string {
	switch event.Kind {
	case models.CurriculumRename:
		for _, subject := range m.Subjects() {
			if subject.Name == event.Name {
				subject.Name = event.NewName
				return fmt.Sprintf("Modified: %s -> %s (%s)", event.Name, event.NewName, event.Reason)
			}
		}
		return fmt.Sprintf("Could not find subject: %s", event.Name)
	default:
		subject := &models.Subject{
			ID:             m.nextID,
			Name:           event.Name,
			DepartmentID:   event.DepartmentID,
			IntroducedYear: year,
		}
		m.subjects[subject.ID] = subject
		m.nextID++
		return fmt.Sprintf("Added: %s (%s)", event.Name, event.Reason)
	}
}
