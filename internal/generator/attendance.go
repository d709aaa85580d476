package generator

import (
	"fmt"

	"github.com/noah-isme/luminosity-datagen/internal/models"
	"github.com/noah-isme/luminosity-datagen/pkg/random"
)

var absenceReasons = []struct {
	note   string
	weight float64
}{
	{"Illness", 45},
	{"Medical appointment", 20},
	{"Family emergency", 15},
	{"Personal", 12},
	{"Family travel", 8},
}

// generateAttendance marks every active student on every school day. Each
// student draws from their own derived stream so the year's records do not
// depend on roster iteration order.
func (g *AcademicGenerator) generateAttendance(year int) []models.AttendanceRecord {
	schoolDays := SchoolDays(year)
	totalDays := len(schoolDays)

	var records []models.AttendanceRecord
	next := 1
	for _, student := range g.students.ActiveStudents() {
		src := g.src.ForEntity("attendance", student.ID)

		absentCount := int(float64(totalDays) * g.attendance.AbsenceRate)
		absent := map[int]bool{}
		for _, idx := range src.Sample(totalDays, absentCount) {
			absent[idx] = true
		}

		remaining := make([]int, 0, totalDays-len(absent))
		for i := 0; i < totalDays; i++ {
			if !absent[i] {
				remaining = append(remaining, i)
			}
		}
		tardyCount := int(float64(len(remaining)) * g.attendance.TardyRate)
		tardy := map[int]bool{}
		for _, pick := range src.Sample(len(remaining), tardyCount) {
			tardy[remaining[pick]] = true
		}

		for i, day := range schoolDays {
			rec := models.AttendanceRecord{
				ID:        fmt.Sprintf("ATT%06d", next),
				StudentID: student.ID,
				Date:      day,
				Status:    models.AttendancePresent,
			}
			switch {
			case absent[i]:
				if src.Bool(0.5) {
					rec.Status = models.AttendanceExcused
				} else {
					rec.Status = models.AttendanceAbsent
				}
				rec.Notes = g.absenceReason(src)
			case tardy[i]:
				rec.Status = models.AttendanceTardy
			}
			records = append(records, rec)
			next++
		}
	}
	return records
}

func (g *AcademicGenerator) absenceReason(src *random.Source) string {
	weights := make([]float64, len(absenceReasons))
	for i, r := range absenceReasons {
		weights[i] = r.weight
	}
	return absenceReasons[src.WeightedIndex(weights)].note
}
