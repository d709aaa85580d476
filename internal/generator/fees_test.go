package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/luminosity-datagen/internal/catalog"
	"github.com/noah-isme/luminosity-datagen/pkg/random"
)

func TestFeeScheduleCompounds(t *testing.T) {
	fees := NewFeeSchedule(catalog.New(random.New(1)))

	assert.Equal(t, 8000, fees.Amount(catalog.TuitionFeeTypeID))
	assert.Equal(t, 100, fees.Amount(techFeeTypeID))

	fees.Apply(map[string]float64{"Tech Fee": 1.10})
	assert.Equal(t, 110, fees.Amount(techFeeTypeID))

	fees.Apply(map[string]float64{"Tech Fee": 1.25, "Tuition": 1.10})
	assert.Equal(t, 138, fees.Amount(techFeeTypeID))
	assert.Equal(t, 8800, fees.Amount(catalog.TuitionFeeTypeID))
}

func TestFeeScheduleIgnoresUnknownFees(t *testing.T) {
	fees := NewFeeSchedule(catalog.New(random.New(1)))
	fees.Apply(map[string]float64{"Parking Pass": 2.0})
	assert.Equal(t, 8000, fees.Amount(catalog.TuitionFeeTypeID))
}
