package generator

import "github.com/noah-isme/luminosity-datagen/internal/models"

// targetTeacherCount is the staffing level hiring fills back to each year.
const targetTeacherCount = 62

// DefaultYearConfigs scripts the decade: enrollment and kindergarten
// targets, turnover, and the narrative events carried into year summaries.
func DefaultYearConfigs() map[int]models.YearConfig {
	return map[int]models.YearConfig{
		2016: {
			Year:                 2016,
			EnrollmentTarget:     505,
			GraduationCount:      38,
			NewKindergartenCount: 42,
			TeacherTurnoverRate:  0.08,
			CurriculumChanges:    []string{"Digital Literacy", "World History merge"},
			MajorEvents:          []string{"Technology initiative launch"},
			TechnologyUpdates:    []string{"Tablet program pilot"},
			FeeAdjustments:       map[string]float64{"Tech Fee": 1.10},
		},
		2017: {
			Year:                 2017,
			EnrollmentTarget:     510,
			GraduationCount:      41,
			NewKindergartenCount: 39,
			TeacherTurnoverRate:  0.07,
			CurriculumChanges:    []string{"AP Calculus", "Environmental Science"},
			MajorEvents:          []string{"New science lab", "Department head changes"},
			TechnologyUpdates:    []string{"WiFi infrastructure upgrade"},
			FeeAdjustments:       map[string]float64{},
		},
		2018: {
			Year:                 2018,
			EnrollmentTarget:     515,
			GraduationCount:      37,
			NewKindergartenCount: 44,
			TeacherTurnoverRate:  0.09,
			CurriculumChanges:    []string{"STEM focus expansion"},
			MajorEvents:          []string{"Growing neighborhood enrollment"},
			TechnologyUpdates:    []string{"Tablet program expansion"},
			FeeAdjustments:       map[string]float64{},
		},
		2019: {
			Year:                 2019,
			EnrollmentTarget:     525,
			GraduationCount:      39,
			NewKindergartenCount: 48,
			TeacherTurnoverRate:  0.06,
			CurriculumChanges:    []string{"STEM Academy", "Robotics", "Mandarin"},
			MajorEvents:          []string{"Facility expansion", "New classrooms"},
			TechnologyUpdates:    []string{"1:1 tablet deployment"},
			FeeAdjustments:       map[string]float64{"Tech Fee": 1.25},
		},
		2020: {
			Year:                 2020,
			EnrollmentTarget:     495,
			GraduationCount:      42,
			NewKindergartenCount: 35,
			TeacherTurnoverRate:  0.12,
			CurriculumChanges:    []string{"Remote learning adaptations"},
			MajorEvents:          []string{"COVID-19 pandemic", "Hybrid learning model"},
			TechnologyUpdates:    []string{"Remote learning platform"},
			FeeAdjustments:       map[string]float64{"Tech Fee": 1.50},
		},
		2021: {
			Year:                 2021,
			EnrollmentTarget:     540,
			GraduationCount:      35,
			NewKindergartenCount: 52,
			TeacherTurnoverRate:  0.08,
			CurriculumChanges:    []string{"Social-emotional learning", "Learning recovery"},
			MajorEvents:          []string{"Return to in-person", "Academic support programs"},
			TechnologyUpdates:    []string{"Health screening systems"},
			FeeAdjustments:       map[string]float64{},
		},
		2022: {
			Year:                 2022,
			EnrollmentTarget:     555,
			GraduationCount:      45,
			NewKindergartenCount: 48,
			TeacherTurnoverRate:  0.07,
			CurriculumChanges:    []string{"Cybersecurity", "Data Science"},
			MajorEvents:          []string{"Teacher professional development", "New evaluation system"},
			TechnologyUpdates:    []string{"Laptop replacement program"},
			FeeAdjustments:       map[string]float64{"Tech Fee": 1.30, "Tuition": 1.10},
		},
		2023: {
			Year:                 2023,
			EnrollmentTarget:     570,
			GraduationCount:      47,
			NewKindergartenCount: 49,
			TeacherTurnoverRate:  0.06,
			CurriculumChanges:    []string{"International Baccalaureate", "Dual enrollment"},
			MajorEvents:          []string{"Academic excellence initiative", "College partnerships"},
			TechnologyUpdates:    []string{"Learning management system"},
			FeeAdjustments:       map[string]float64{"Tuition": 1.05},
		},
		2024: {
			Year:                 2024,
			EnrollmentTarget:     580,
			GraduationCount:      48,
			NewKindergartenCount: 50,
			TeacherTurnoverRate:  0.05,
			CurriculumChanges:    []string{"Advanced placement expansion"},
			MajorEvents:          []string{"Science lab renovation", "Library modernization"},
			TechnologyUpdates:    []string{"AI tutoring pilot"},
			FeeAdjustments:       map[string]float64{},
		},
		2025: {
			Year:                 2025,
			EnrollmentTarget:     585,
			GraduationCount:      50,
			NewKindergartenCount: 51,
			TeacherTurnoverRate:  0.05,
			CurriculumChanges:    []string{"Global citizenship program"},
			MajorEvents:          []string{"10-year anniversary", "Alumni network launch"},
			TechnologyUpdates:    []string{"Next-gen learning tools"},
			FeeAdjustments:       map[string]float64{"Tuition": 1.03},
		},
	}
}
