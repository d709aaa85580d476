package etl

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/luminosity-datagen/pkg/export"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func writeDepartments(t *testing.T, dir string, rows int) {
	t.Helper()
	ds := export.Dataset{Headers: []string{"department_id", "name"}}
	for i := 1; i <= rows; i++ {
		ds.Append(map[string]string{"department_id": fmt.Sprint(i), "name": fmt.Sprintf("Dept %d", i)})
	}
	writeCSV(t, filepath.Join(dir, "departments.csv"), ds)
}

func TestLoaderInsertsInBatches(t *testing.T) {
	db, mock := newMockDB(t)
	dir := t.TempDir()
	writeDepartments(t, dir, 5)

	// Batch size 2 over 5 rows: three batches, each in its own transaction.
	for _, size := range []int{2, 2, 1} {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO departments").
			WillReturnResult(sqlmock.NewResult(0, int64(size)))
		mock.ExpectCommit()
	}

	loader := NewLoader(db, 2, 0, time.Millisecond, nil)
	report, err := loader.Load(context.Background(), dir)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.NotEmpty(t, report.RunID)
	require.Len(t, report.Tables, 1)
	tr := report.Tables[0]
	assert.Equal(t, "departments", tr.Table)
	assert.Equal(t, 5, tr.Attempted)
	assert.Equal(t, 5, tr.Inserted)
	assert.Equal(t, 0, tr.Failed)
	assert.Equal(t, 3, tr.Batches)
}

func TestLoaderRetriesFailedBatch(t *testing.T) {
	db, mock := newMockDB(t)
	dir := t.TempDir()
	writeDepartments(t, dir, 2)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO departments").WillReturnError(fmt.Errorf("connection reset"))
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO departments").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	loader := NewLoader(db, 500, 2, time.Millisecond, nil)
	report, err := loader.Load(context.Background(), dir)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, 2, report.TotalInserted())
	assert.Equal(t, 0, report.TotalFailed())
}

func TestLoaderRecordsExhaustedBatch(t *testing.T) {
	db, mock := newMockDB(t)
	dir := t.TempDir()
	writeDepartments(t, dir, 2)

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO departments").WillReturnError(fmt.Errorf("permission denied"))
		mock.ExpectRollback()
	}

	loader := NewLoader(db, 500, 1, time.Millisecond, nil)
	report, err := loader.Load(context.Background(), dir)
	require.NoError(t, err, "a failed table must not abort the run")
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, report.Tables, 1)
	assert.Equal(t, 2, report.Tables[0].Failed)
	assert.Equal(t, 1, report.Tables[0].FailedBatches)
	assert.Equal(t, 0, report.TotalInserted())
}

func TestLoaderSkipsMissingFiles(t *testing.T) {
	db, mock := newMockDB(t)
	dir := t.TempDir()

	loader := NewLoader(db, 500, 0, time.Millisecond, nil)
	report, err := loader.Load(context.Background(), dir)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, report.Tables)
}

func TestUploadOrderReferencesBeforeDependents(t *testing.T) {
	pos := map[string]int{}
	for i, table := range UploadOrder {
		pos[table] = i
	}

	before := [][2]string{
		{"students", "enrollments"},
		{"students", "grades"},
		{"teachers", "classes"},
		{"classes", "enrollments"},
		{"classes", "assignments"},
		{"guardians", "student_guardians"},
		{"guardians", "payments"},
		{"departments", "subjects"},
		{"school_years", "terms"},
		{"subjects", "teacher_subjects"},
	}
	for _, pair := range before {
		first, ok := pos[pair[0]]
		require.True(t, ok, pair[0])
		second, ok := pos[pair[1]]
		require.True(t, ok, pair[1])
		assert.Less(t, first, second, "%s must load before %s", pair[0], pair[1])
	}
}

func TestBuildInsertQuery(t *testing.T) {
	q := buildInsertQuery("t", []string{"a", "b"}, 2)
	assert.Equal(t, "INSERT INTO t (a, b) VALUES (?, ?), (?, ?)", q)
}
