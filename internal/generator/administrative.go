package generator

import (
	"fmt"
	"time"

	"github.com/noah-isme/luminosity-datagen/internal/catalog"
	"github.com/noah-isme/luminosity-datagen/internal/models"
)

const (
	techFeeTypeID      = 1
	fieldTripFeeTypeID = 2
)

var incidentTypes = []string{
	"Tardiness",
	"Disruption",
	"Disrespect",
	"Fighting",
	"Vandalism",
	"Academic Dishonesty",
	"Other",
}

var disciplineActions = map[string][]string{
	"Minor":  {"Verbal Warning", "Parent Contact", "Detention"},
	"Major":  {"Office Referral", "Parent Conference", "In-School Suspension"},
	"Severe": {"Out-of-School Suspension", "Parent Conference", "Behavior Plan"},
}

// generateDiscipline files 1-3 incidents each for roughly 5% of students.
func (g *AcademicGenerator) generateDiscipline(year int) []models.DisciplineReport {
	students := g.students.ActiveStudents()
	withIncidents := g.src.Sample(len(students), int(float64(len(students))*0.05))

	start := schoolYearStart(year)
	spanDays := int(schoolYearEnd(year).Sub(start).Hours() / 24)

	severities := []string{"Minor", "Major", "Severe"}
	severityWeights := []float64{70, 25, 5}

	var reports []models.DisciplineReport
	next := 1
	for _, idx := range withIncidents {
		student := students[idx]
		incidents := g.src.IntRange(1, 3)
		for i := 0; i < incidents; i++ {
			severity := severities[g.src.WeightedIndex(severityWeights)]
			actions := disciplineActions[severity]
			reports = append(reports, models.DisciplineReport{
				ID:          fmt.Sprintf("DISC%06d", next),
				StudentID:   student.ID,
				Date:        start.AddDate(0, 0, g.src.IntRange(0, spanDays)),
				Severity:    severity,
				Type:        incidentTypes[g.src.Choice(len(incidentTypes))],
				ActionTaken: actions[g.src.Choice(len(actions))],
			})
			next++
		}
	}
	return reports
}

// generateStandardizedTests assigns the grade-appropriate test battery.
// Testing season runs Mar 1 through May 31 of the spring semester.
func (g *AcademicGenerator) generateStandardizedTests(year int) []models.StandardizedTest {
	seasonStart := time.Date(year+1, time.March, 1, 0, 0, 0, 0, time.UTC)
	seasonDays := 91

	var results []models.StandardizedTest
	next := 1
	for _, student := range g.students.ActiveStudents() {
		var tests []string
		if student.GradeLevel >= 3 {
			tests = append(tests, "State Math Assessment", "State Reading Assessment")
		}
		if student.GradeLevel >= 10 {
			tests = append(tests, "PSAT", "SAT")
		}
		if student.GradeLevel >= 11 && g.src.Bool(0.3) {
			tests = append(tests, "AP Exam")
		}

		for _, name := range tests {
			var score, percentile int
			switch name {
			case "SAT":
				score = g.src.IntRange(400, 1600)
				percentile = clampPercentile((score - 400) / 12)
			case "PSAT":
				score = g.src.IntRange(320, 1520)
				percentile = clampPercentile((score - 320) / 12)
			default:
				score = g.src.IntRange(150, 300)
				percentile = g.src.IntRange(1, 99)
			}

			subject := "Reading"
			if name == "State Math Assessment" {
				subject = "Mathematics"
			}

			results = append(results, models.StandardizedTest{
				ID:         fmt.Sprintf("TEST%06d", next),
				StudentID:  student.ID,
				TestName:   name,
				TestDate:   seasonStart.AddDate(0, 0, g.src.IntRange(0, seasonDays)),
				Score:      score,
				Subject:    subject,
				Percentile: percentile,
			})
			next++
		}
	}
	return results
}

func clampPercentile(p int) int {
	if p < 1 {
		return 1
	}
	if p > 99 {
		return 99
	}
	return p
}

// generateGradeHistory writes one year-end GPA summary per student.
func (g *AcademicGenerator) generateGradeHistory(year int) []models.GradeHistory {
	var history []models.GradeHistory
	next := 1
	for _, student := range g.students.ActiveStudents() {
		history = append(history, models.GradeHistory{
			ID:           fmt.Sprintf("HIST%06d", next),
			StudentID:    student.ID,
			SchoolYearID: schoolYearID(year),
			GPA:          g.gpa.GPA(g.src),
			GradeLevel:   student.GradeLevel,
		})
		next++
	}
	return history
}

// generatePayments bills each family once: tuition on a payment plan plus
// the optional one-time fees. The first guardian on file pays.
func (g *AcademicGenerator) generatePayments(year int) []models.Payment {
	plans := []string{"annual", "9_month", "12_month"}
	planWeights := []float64{10, 70, 20}

	var payments []models.Payment
	next := 1
	seen := map[string]bool{}
	for _, rel := range g.guardians.Relationships() {
		if seen[rel.FamilyID] {
			continue
		}
		seen[rel.FamilyID] = true

		tuition := g.fees.Amount(catalog.TuitionFeeTypeID)
		switch plans[g.src.WeightedIndex(planWeights)] {
		case "annual":
			payments = append(payments, models.Payment{
				ID:          fmt.Sprintf("PAY%06d", next),
				GuardianID:  rel.GuardianID,
				FeeTypeID:   catalog.TuitionFeeTypeID,
				AmountPaid:  tuition,
				PaymentDate: time.Date(year, time.August, 15, 0, 0, 0, 0, time.UTC),
			})
			next++
		case "9_month":
			payments = g.appendInstallments(payments, &next, rel.GuardianID, year, tuition, 9)
		default:
			payments = g.appendInstallments(payments, &next, rel.GuardianID, year, tuition, 12)
		}

		for _, feeTypeID := range []int{techFeeTypeID, fieldTripFeeTypeID} {
			if g.src.Bool(0.8) {
				payments = append(payments, models.Payment{
					ID:          fmt.Sprintf("PAY%06d", next),
					GuardianID:  rel.GuardianID,
					FeeTypeID:   feeTypeID,
					AmountPaid:  g.fees.Amount(feeTypeID),
					PaymentDate: time.Date(year, time.August, g.src.IntRange(10, 30), 0, 0, 0, 0, time.UTC),
				})
				next++
			}
		}
	}
	return payments
}

// appendInstallments spreads the amount over equal truncated monthly
// payments on the 15th, starting in August and wrapping into the next
// calendar year after December.
func (g *AcademicGenerator) appendInstallments(payments []models.Payment, next *int, guardianID, year, total, months int) []models.Payment {
	installment := total / months
	for m := 0; m < months; m++ {
		payYear, payMonth := year, time.Month(8+m)
		if m >= 5 {
			payYear, payMonth = year+1, time.Month(m-4)
		}
		payments = append(payments, models.Payment{
			ID:          fmt.Sprintf("PAY%06d", *next),
			GuardianID:  guardianID,
			FeeTypeID:   catalog.TuitionFeeTypeID,
			AmountPaid:  installment,
			PaymentDate: time.Date(payYear, payMonth, 15, 0, 0, 0, 0, time.UTC),
		})
		*next++
	}
	return payments
}
