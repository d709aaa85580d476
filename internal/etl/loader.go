package etl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/luminosity-datagen/pkg/errors"
	"github.com/noah-isme/luminosity-datagen/pkg/export"
)

// UploadOrder lists tables by foreign key dependency: reference tables
// first, then single-dependency, multi-dependency, and high-fan-out tables.
var UploadOrder = []string{
	"school_metadata",
	"departments",
	"grade_levels",
	"guardian_types",
	"fee_types",
	"periods",
	"classrooms",
	"school_years",

	"terms",
	"subjects",
	"teachers",
	"guardians",
	"students",
	"school_calendar",

	"teacher_subjects",
	"classes",
	"student_guardians",

	"enrollments",
	"assignments",
	"grades",
	"attendance",
	"discipline_reports",
	"standardized_tests",
	"student_grade_history",
	"payments",
}

// TableReport counts one table's upload outcome.
type TableReport struct {
	Table         string `json:"table"`
	Attempted     int    `json:"attempted"`
	Inserted      int    `json:"inserted"`
	Failed        int    `json:"failed"`
	Batches       int    `json:"batches"`
	FailedBatches int    `json:"failed_batches"`
}

// LoadReport summarises a full load run.
type LoadReport struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Tables    []TableReport `json:"tables"`
}

// TotalInserted sums inserted rows across tables.
func (r *LoadReport) TotalInserted() int {
	total := 0
	for _, t := range r.Tables {
		total += t.Inserted
	}
	return total
}

// TotalFailed sums failed rows across tables.
func (r *LoadReport) TotalFailed() int {
	total := 0
	for _, t := range r.Tables {
		total += t.Failed
	}
	return total
}

// Loader performs batched inserts of consolidated CSVs into the database.
type Loader struct {
	db         *sqlx.DB
	batchSize  int
	maxRetries int
	backoff    time.Duration
	log        *zap.Logger
}

// NewLoader wires a loader over an open database handle.
func NewLoader(db *sqlx.DB, batchSize, maxRetries int, backoff time.Duration, log *zap.Logger) *Loader {
	if batchSize < 1 {
		batchSize = 500
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		db:         db,
		batchSize:  batchSize,
		maxRetries: maxRetries,
		backoff:    backoff,
		log:        log,
	}
}

// Load uploads every consolidated table found in dir, in dependency order.
// A table whose batches fail is recorded and skipped; later tables still
// load.
func (l *Loader) Load(ctx context.Context, dir string) (*LoadReport, error) {
	report := &LoadReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	log := l.log.With(zap.String("run_id", report.RunID))
	log.Info("starting load", zap.String("dir", dir), zap.Int("batch_size", l.batchSize))

	for _, table := range UploadOrder {
		path := filepath.Join(dir, table+".csv")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Warn("consolidated file missing", zap.String("table", table))
			continue
		}

		ds, err := export.ReadCSVFile(path)
		if err != nil {
			return nil, errors.WithCause(errors.ErrBadInput, err)
		}

		tr, err := l.loadTable(ctx, log, table, ds)
		if err != nil {
			return nil, err
		}
		report.Tables = append(report.Tables, tr)
	}

	report.Duration = time.Since(report.StartedAt)
	log.Info("load complete",
		zap.Int("inserted", report.TotalInserted()),
		zap.Int("failed", report.TotalFailed()),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

func (l *Loader) loadTable(ctx context.Context, log *zap.Logger, table string, ds export.Dataset) (TableReport, error) {
	tr := TableReport{Table: table, Attempted: ds.Len()}

	for start := 0; start < ds.Len(); start += l.batchSize {
		end := start + l.batchSize
		if end > ds.Len() {
			end = ds.Len()
		}
		batch := ds.Rows[start:end]
		tr.Batches++

		if err := l.insertBatchWithRetry(ctx, table, ds.Headers, batch); err != nil {
			if ctx.Err() != nil {
				return tr, errors.WithCause(errors.ErrUpload, ctx.Err())
			}
			tr.Failed += len(batch)
			tr.FailedBatches++
			log.Error("batch failed",
				zap.String("table", table),
				zap.Int("batch", tr.Batches),
				zap.Error(err),
			)
			continue
		}
		tr.Inserted += len(batch)
	}

	log.Info("table loaded",
		zap.String("table", table),
		zap.Int("inserted", tr.Inserted),
		zap.Int("failed", tr.Failed),
	)
	return tr, nil
}

// insertBatchWithRetry inserts one batch inside a transaction, retrying
// with exponential backoff up to the configured limit.
func (l *Loader) insertBatchWithRetry(ctx context.Context, table string, headers []string, rows []map[string]string) error {
	var lastErr error
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		if attempt > 0 {
			wait := l.backoff << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if lastErr = l.insertBatch(ctx, table, headers, rows); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (l *Loader) insertBatch(ctx context.Context, table string, headers []string, rows []map[string]string) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := buildInsertQuery(table, headers, len(rows))
	args := make([]interface{}, 0, len(rows)*len(headers))
	for _, row := range rows {
		for _, h := range headers {
			args = append(args, row[h])
		}
	}

	if _, err := tx.ExecContext(ctx, l.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return tx.Commit()
}

// buildInsertQuery produces a multi-row INSERT with ? placeholders; the
// caller rebinds for the active driver.
func buildInsertQuery(table string, headers []string, rowCount int) string {
	placeholders := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(headers)), ", ") + ")"

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(headers, ", "))
	sb.WriteString(") VALUES ")
	for i := 0; i < rowCount; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(placeholders)
	}
	return sb.String()
}
