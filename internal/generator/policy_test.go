package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/luminosity-datagen/pkg/random"
)

func TestGradePolicyScoreBounds(t *testing.T) {
	policy := DefaultGradePolicy()
	src := random.New(7)

	for i := 0; i < 5000; i++ {
		score := policy.Score(100, src)
		require.GreaterOrEqual(t, score, 0)
		require.LessOrEqual(t, score, 100)
	}
}

func TestGradePolicyMixtureShape(t *testing.T) {
	policy := DefaultGradePolicy()
	src := random.New(42)

	const samples = 20000
	var perfect, failing int
	var sum float64
	for i := 0; i < samples; i++ {
		p := policy.Percentage(src)
		sum += p
		if p >= 0.95 {
			perfect++
		}
		if p < 0.70 {
			failing++
		}
	}

	mean := sum / samples
	assert.InDelta(t, 0.828, mean, 0.015)

	// Only the perfect branch can land at or above 0.95.
	assert.InDelta(t, 0.03, float64(perfect)/samples, 0.01)
	assert.InDelta(t, 0.05, float64(failing)/samples, 0.015)
}

func TestGPAPolicyBoundsAndPrecision(t *testing.T) {
	policy := DefaultGPAPolicy()
	src := random.New(11)

	var sum float64
	const samples = 10000
	for i := 0; i < samples; i++ {
		gpa := policy.GPA(src)
		require.GreaterOrEqual(t, gpa, 0.0)
		require.LessOrEqual(t, gpa, 4.0)
		sum += gpa
	}
	assert.InDelta(t, 3.15, sum/samples, 0.1)
}

func TestAttendancePolicyDefaults(t *testing.T) {
	policy := DefaultAttendancePolicy()
	assert.Equal(t, 0.05, policy.AbsenceRate)
	assert.Equal(t, 0.20, policy.TardyRate)
}
