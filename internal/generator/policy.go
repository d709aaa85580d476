package generator

import (
	"math"

	"github.com/noah-isme/luminosity-datagen/pkg/random"
)

// GradePolicy is the scoring distribution of record: a three-branch mixture
// of perfect, failing, and clamped-normal scores. Earlier tooling carried
// several drifted copies of this mixture; every score in the toolkit now
// flows through one policy value.
type GradePolicy struct {
	PerfectRate float64
	PerfectLo   float64
	PerfectHi   float64

	FailingRate float64
	FailingLo   float64
	FailingHi   float64

	BodyMean   float64
	BodyStdDev float64
	BodyLo     float64
	BodyHi     float64
}

// DefaultGradePolicy targets the documented grading policy: mean in the
// low-to-mid 80s, ~3% perfect scores, ~5% failing. The body caps below the
// perfect band so the perfect fraction stays near its 3% branch weight.
func DefaultGradePolicy() GradePolicy {
	return GradePolicy{
		PerfectRate: 0.03,
		PerfectLo:   0.95,
		PerfectHi:   1.0,
		FailingRate: 0.05,
		FailingLo:   0.0,
		FailingHi:   0.69,
		BodyMean:    0.85,
		BodyStdDev:  0.05,
		BodyLo:      0.70,
		BodyHi:      0.94,
	}
}

// Percentage draws one score fraction from the mixture.
func (p GradePolicy) Percentage(src *random.Source) float64 {
	roll := src.Float64()
	switch {
	case roll < p.PerfectRate:
		return src.Uniform(p.PerfectLo, p.PerfectHi)
	case roll < p.PerfectRate+p.FailingRate:
		return src.Uniform(p.FailingLo, p.FailingHi)
	default:
		pct := src.Normal(p.BodyMean, p.BodyStdDev)
		return math.Max(p.BodyLo, math.Min(p.BodyHi, pct))
	}
}

// Score draws a score for an assignment worth pointsPossible, clamped into
// [0, pointsPossible].
func (p GradePolicy) Score(pointsPossible int, src *random.Source) int {
	score := int(math.Round(float64(pointsPossible) * p.Percentage(src)))
	if score < 0 {
		return 0
	}
	if score > pointsPossible {
		return pointsPossible
	}
	return score
}

// GPAPolicy mirrors the grade mixture on the 4.0 scale for year-end
// summaries.
type GPAPolicy struct {
	PerfectRate    float64
	StrugglingRate float64
	BodyMean       float64
	BodyStdDev     float64
}

// DefaultGPAPolicy matches the grade policy's shape: 3% near-perfect, 5%
// struggling, a 3.2-centered body.
func DefaultGPAPolicy() GPAPolicy {
	return GPAPolicy{
		PerfectRate:    0.03,
		StrugglingRate: 0.05,
		BodyMean:       3.2,
		BodyStdDev:     0.4,
	}
}

// GPA draws one year-end GPA in [0, 4], rounded to three decimals.
func (p GPAPolicy) GPA(src *random.Source) float64 {
	roll := src.Float64()
	var gpa float64
	switch {
	case roll < p.PerfectRate:
		gpa = src.Uniform(3.8, 4.0)
	case roll < p.PerfectRate+p.StrugglingRate:
		gpa = src.Uniform(1.5, 2.5)
	default:
		gpa = math.Max(0.0, math.Min(4.0, src.Normal(p.BodyMean, p.BodyStdDev)))
	}
	return math.Round(gpa*1000) / 1000
}

// AttendancePolicy fixes the absence and tardy rates. Tardies apply to the
// non-absent remainder of the year.
type AttendancePolicy struct {
	AbsenceRate float64
	TardyRate   float64
}

// DefaultAttendancePolicy is 5% absent, 20% of remaining days tardy.
func DefaultAttendancePolicy() AttendancePolicy {
	return AttendancePolicy{AbsenceRate: 0.05, TardyRate: 0.20}
}
