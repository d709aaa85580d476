// Package etl moves generated data toward the database: per-year CSV
// directories are consolidated into one file per table, loaded in foreign
// key dependency order, and validated statistically after the fact.
package etl

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/luminosity-datagen/pkg/errors"
	"github.com/noah-isme/luminosity-datagen/pkg/export"
)

var yearDirPattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// yearlyTables carry year-specific rows and are concatenated across the
// decade with a school_year_id column.
var yearlyTables = []string{
	"assignments",
	"attendance",
	"classes",
	"discipline_reports",
	"enrollments",
	"grades",
	"guardians",
	"payments",
	"school_calendar",
	"school_years",
	"standardized_tests",
	"students",
	"student_grade_history",
	"student_guardians",
	"teachers",
	"teacher_subjects",
	"terms",
}

// referenceTables are static across years; the most recent year's copy wins.
var referenceTables = []string{
	"classrooms",
	"departments",
	"fee_types",
	"grade_levels",
	"guardian_types",
	"periods",
	"school_metadata",
	"subjects",
}

// tablePrimaryKeys declares the de-duplication key per table. Rows sharing
// a key across years keep the last (most recent) occurrence.
var tablePrimaryKeys = map[string][]string{
	"assignments":           {"assignment_id", "school_year_id"},
	"attendance":            {"attendance_id", "school_year_id"},
	"classes":               {"class_id", "school_year_id"},
	"discipline_reports":    {"discipline_report_id", "school_year_id"},
	"enrollments":           {"enrollment_id", "school_year_id"},
	"grades":                {"grade_id", "school_year_id"},
	"guardians":             {"guardian_id"},
	"payments":              {"payment_id", "school_year_id"},
	"school_calendar":       {"calendar_date"},
	"school_years":          {"school_year_id"},
	"standardized_tests":    {"test_id", "school_year_id"},
	"students":              {"student_id"},
	"student_grade_history": {"student_grade_history_id", "school_year_id"},
	"student_guardians":     {"student_id", "guardian_id"},
	"teachers":              {"teacher_id"},
	"teacher_subjects":      {"teacher_id", "subject_id"},
	"terms":                 {"term_id"},

	"classrooms":      {"classroom_id"},
	"departments":     {"department_id"},
	"fee_types":       {"fee_type_id"},
	"grade_levels":    {"grade_level_id"},
	"guardian_types":  {"guardian_type_id"},
	"periods":         {"period_id"},
	"school_metadata": {"school_name"},
	"subjects":        {"subject_id"},
}

// Consolidator folds the per-year output directories into one CSV per
// table.
type Consolidator struct {
	decadeDir string
	outDir    string
	exporter  *export.CSVExporter
	log       *zap.Logger
}

// NewConsolidator builds a consolidator over the decade directory.
func NewConsolidator(decadeDir, outDir string, log *zap.Logger) *Consolidator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Consolidator{
		decadeDir: decadeDir,
		outDir:    outDir,
		exporter:  export.NewCSVExporter(),
		log:       log,
	}
}

// DiscoverYears lists the school-year directories in chronological order.
func (c *Consolidator) DiscoverYears() ([]string, error) {
	entries, err := os.ReadDir(c.decadeDir)
	if err != nil {
		return nil, errors.WithCause(errors.ErrBadInput, err)
	}

	var years []string
	for _, entry := range entries {
		if entry.IsDir() && yearDirPattern.MatchString(entry.Name()) {
			years = append(years, entry.Name())
		}
	}
	if len(years) == 0 {
		return nil, errors.WithCause(errors.ErrBadInput,
			fmt.Errorf("no school year directories under %s", c.decadeDir))
	}
	sort.Strings(years)
	return years, nil
}

// schoolYearIDFromLabel maps "2016-2017" to 1, "2017-2018" to 2, and so on.
func schoolYearIDFromLabel(label string) int {
	m := yearDirPattern.FindStringSubmatch(label)
	if m == nil {
		return 0
	}
	start, _ := strconv.Atoi(m[1])
	return start - 2015
}

// Run consolidates every table and writes the results to the output
// directory.
func (c *Consolidator) Run() error {
	years, err := c.DiscoverYears()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.outDir, 0o755); err != nil {
		return errors.WithCause(errors.ErrInternal, err)
	}

	c.log.Info("consolidating decade",
		zap.String("dir", c.decadeDir),
		zap.Strings("years", years),
	)

	for _, table := range yearlyTables {
		ds, err := c.consolidateTable(table, years)
		if err != nil {
			return err
		}
		if ds.Len() == 0 {
			c.log.Warn("no rows for table", zap.String("table", table))
			continue
		}
		if err := c.exporter.WriteFile(filepath.Join(c.outDir, table+".csv"), ds); err != nil {
			return errors.WithCause(errors.ErrInternal, err)
		}
		c.log.Info("consolidated table", zap.String("table", table), zap.Int("rows", ds.Len()))
	}

	latest := years[len(years)-1]
	for _, table := range referenceTables {
		path := filepath.Join(c.decadeDir, latest, table+".csv")
		ds, err := export.ReadCSVFile(path)
		if err != nil {
			c.log.Warn("reference table missing in latest year",
				zap.String("table", table), zap.String("year", latest))
			continue
		}
		if err := c.exporter.WriteFile(filepath.Join(c.outDir, table+".csv"), ds); err != nil {
			return errors.WithCause(errors.ErrInternal, err)
		}
	}

	return nil
}

// consolidateTable concatenates one table across years, stamping each row
// with its school year and keeping the last occurrence of each primary key.
func (c *Consolidator) consolidateTable(table string, years []string) (export.Dataset, error) {
	var combined export.Dataset
	for _, year := range years {
		path := filepath.Join(c.decadeDir, year, table+".csv")
		ds, err := export.ReadCSVFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				c.log.Warn("table missing for year",
					zap.String("table", table), zap.String("year", year))
				continue
			}
			return export.Dataset{}, errors.WithCause(errors.ErrBadInput, err)
		}

		yearID := strconv.Itoa(schoolYearIDFromLabel(year))
		hasYearColumn := ds.HasColumn("school_year_id")
		if len(combined.Headers) == 0 {
			combined.Headers = append(combined.Headers, ds.Headers...)
			if !hasYearColumn {
				combined.Headers = append(combined.Headers, "school_year_id")
			}
		}
		for _, row := range ds.Rows {
			if !hasYearColumn {
				row["school_year_id"] = yearID
			}
			combined.Append(row)
		}
	}

	return dedupeKeepLast(table, combined), nil
}

// dedupeKeepLast drops earlier occurrences of rows sharing the table's
// primary key; surviving rows keep their input order.
func dedupeKeepLast(table string, ds export.Dataset) export.Dataset {
	keys, ok := tablePrimaryKeys[table]
	if !ok || ds.Len() == 0 {
		return ds
	}

	lastIndex := map[string]int{}
	for i, row := range ds.Rows {
		lastIndex[rowKey(row, keys)] = i
	}

	out := export.Dataset{Headers: ds.Headers}
	for i, row := range ds.Rows {
		if lastIndex[rowKey(row, keys)] == i {
			out.Append(row)
		}
	}
	return out
}

func rowKey(row map[string]string, keys []string) string {
	key := ""
	for _, k := range keys {
		key += row[k] + "\x1f"
	}
	return key
}
