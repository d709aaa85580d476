package generator

import (
	"math"
	"sort"

	"github.com/noah-isme/luminosity-datagen/internal/catalog"
)

// FeeSchedule tracks the current dollar amount of each fee type. Year
// configs adjust amounts multiplicatively and the adjustments compound
// across the decade.
type FeeSchedule struct {
	amounts map[int]float64
	names   map[string]int
}

// NewFeeSchedule starts from the catalog's base amounts.
func NewFeeSchedule(cat *catalog.Catalog) *FeeSchedule {
	s := &FeeSchedule{
		amounts: map[int]float64{},
		names:   map[string]int{},
	}
	for _, fee := range cat.FeeTypes {
		s.amounts[fee.ID] = float64(fee.Amount)
		s.names[fee.Name] = fee.ID
	}
	return s
}

// Apply multiplies the named fees by their adjustment factors. Unknown fee
// names are ignored.
func (s *FeeSchedule) Apply(adjustments map[string]float64) {
	names := make([]string, 0, len(adjustments))
	for name := range adjustments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if id, ok := s.names[name]; ok {
			s.amounts[id] *= adjustments[name]
		}
	}
}

// Amount returns the current whole-dollar amount for a fee type.
func (s *FeeSchedule) Amount(feeTypeID int) int {
	return int(math.Round(s.amounts[feeTypeID]))
}
