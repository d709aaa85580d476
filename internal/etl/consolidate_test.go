package etl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/luminosity-datagen/pkg/export"
)

func writeCSV(t *testing.T, path string, ds export.Dataset) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, export.NewCSVExporter().WriteFile(path, ds))
}

func studentRows(rows ...[]string) export.Dataset {
	ds := export.Dataset{Headers: []string{"student_id", "first_name", "last_name", "grade_level_id"}}
	for _, r := range rows {
		ds.Append(map[string]string{
			"student_id":     r[0],
			"first_name":     r[1],
			"last_name":      r[2],
			"grade_level_id": r[3],
		})
	}
	return ds
}

func TestDiscoverYearsSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2017-2018", "2016-2017", "consolidated", "notes"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, name), 0o755))
	}

	c := NewConsolidator(dir, filepath.Join(dir, "out"), nil)
	years, err := c.DiscoverYears()
	require.NoError(t, err)
	assert.Equal(t, []string{"2016-2017", "2017-2018"}, years)
}

func TestDiscoverYearsEmptyIsError(t *testing.T) {
	dir := t.TempDir()
	c := NewConsolidator(dir, filepath.Join(dir, "out"), nil)
	_, err := c.DiscoverYears()
	require.Error(t, err)
}

func TestConsolidateKeepsLastOccurrence(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "consolidated")

	// Student 1 appears in both years; the second year's row must win.
	writeCSV(t, filepath.Join(dir, "2016-2017", "students.csv"), studentRows(
		[]string{"1", "Ada", "Byrne", "4"},
		[]string{"2", "Cole", "Dean", "6"},
	))
	writeCSV(t, filepath.Join(dir, "2017-2018", "students.csv"), studentRows(
		[]string{"1", "Ada", "Byrne", "5"},
		[]string{"3", "Eve", "Frost", "1"},
	))

	deps := export.Dataset{Headers: []string{"department_id", "name"}}
	deps.Append(map[string]string{"department_id": "1", "name": "Mathematics"})
	writeCSV(t, filepath.Join(dir, "2016-2017", "departments.csv"), deps)
	writeCSV(t, filepath.Join(dir, "2017-2018", "departments.csv"), deps)

	c := NewConsolidator(dir, outDir, nil)
	require.NoError(t, c.Run())

	students, err := export.ReadCSVFile(filepath.Join(outDir, "students.csv"))
	require.NoError(t, err)
	require.Equal(t, 3, students.Len())
	require.True(t, students.HasColumn("school_year_id"))

	byID := map[string]map[string]string{}
	for _, row := range students.Rows {
		byID[row["student_id"]] = row
	}
	assert.Equal(t, "5", byID["1"]["grade_level_id"], "later year's row should win")
	assert.Equal(t, "2", byID["1"]["school_year_id"])
	assert.Equal(t, "1", byID["2"]["school_year_id"])
	assert.Equal(t, "2", byID["3"]["school_year_id"])

	// Reference table copied from most recent year only.
	departments, err := export.ReadCSVFile(filepath.Join(outDir, "departments.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, departments.Len())
}

func TestConsolidateSkipsMissingTables(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "consolidated")

	writeCSV(t, filepath.Join(dir, "2016-2017", "students.csv"), studentRows(
		[]string{"1", "Ada", "Byrne", "4"},
	))

	c := NewConsolidator(dir, outDir, nil)
	require.NoError(t, c.Run())

	_, err := os.Stat(filepath.Join(outDir, "students.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "grades.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestSchoolYearIDFromLabel(t *testing.T) {
	assert.Equal(t, 1, schoolYearIDFromLabel("2016-2017"))
	assert.Equal(t, 10, schoolYearIDFromLabel("2025-2026"))
	assert.Equal(t, 0, schoolYearIDFromLabel("not-a-year"))
}
