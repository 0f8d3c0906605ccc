package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/emre23q/CMS2/internal/logger"
	"github.com/emre23q/CMS2/models"
)

// DB owns the single embedded database handle and its on-disk file. The
// database lives fully in memory; every successful mutating statement is
// followed synchronously by a whole-database snapshot to the file, so a
// crash can never lose more than the statement whose snapshot failed.
//
// The handle is limited to one underlying connection. The process model is
// single-writer (one presentation surface issuing one operation at a time);
// the mutex only serialises the statement+snapshot pair against stray
// concurrent readers.
type DB struct {
	conn *sql.DB
	path string

	mu     sync.Mutex
	logger *logger.Logger
}

// Row is one result row as a column-name → value mapping. Byte-slice values
// are converted to string, and DATE values to their canonical YYYY-MM-DD
// string, so rows serialise cleanly.
type Row map[string]any

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name is usable as a bare SQL identifier
// (table or column name). Identifiers are interpolated into statements,
// never bound as parameters, so everything dynamic goes through this check
// first.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// Query runs a read-only statement and returns the result column order plus
// one [Row] per result row. An empty result set yields an empty slice, not
// an error.
func (db *DB) Query(ctx context.Context, query string, args ...any) ([]string, []Row, error) {
	log := db.logger

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "DB.Query").Str("query", query).Msg("failed to execute query")
		return nil, nil, fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}

	results := make([]Row, 0, 16)

	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if scanErr := rows.Scan(ptrs...); scanErr != nil {
			log.Err(scanErr).Str("func", "DB.Query").Msg("failed to scan row")
			return nil, nil, fmt.Errorf("%w: %w", ErrStorageQuery, scanErr)
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			case time.Time:
				// The driver converts DATE-declared columns to time.Time;
				// callers store and compare dates as canonical strings.
				row[col] = v.Format("2006-01-02")
			default:
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "DB.Query").Msg("error occurred during rows iteration")
		return nil, nil, fmt.Errorf("%w: %w", ErrStorageQuery, rowsErr)
	}

	return cols, results, nil
}

// Exec runs a mutating statement (INSERT, UPDATE, DELETE, ALTER) and, on
// success, snapshots the whole database to the file before returning. When
// the snapshot fails the in-memory database keeps its post-statement state
// and the snapshot error is surfaced; the caller sees a failed write even
// though memory already holds it. That data-loss window is accepted for the
// single-user desktop scale this engine targets.
func (db *DB) Exec(ctx context.Context, query string, args ...any) error {
	log := db.logger

	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "DB.Exec").Str("query", query).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}

	if err := db.snapshot(ctx); err != nil {
		log.Err(err).Str("func", "DB.Exec").Str("path", db.path).Msg("failed to snapshot database after write")
		return fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}

	return nil
}

// LastInsertID returns the row id generated by the most recent INSERT on
// the connection. It is only meaningful immediately after the insert, with
// no other write interleaved; services call it inside the same logical
// operation as their insert.
func (db *DB) LastInsertID(ctx context.Context) (int64, error) {
	var id int64
	if err := db.conn.QueryRowContext(ctx, "SELECT last_insert_rowid();").Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}

	return id, nil
}

// ColumnsOf introspects the live schema of table and returns its columns in
// ordinal order. Every operation that accepts caller-supplied field names
// filters them against this set.
func (db *DB) ColumnsOf(ctx context.Context, table string) ([]models.Column, error) {
	if !ValidIdentifier(table) {
		return nil, fmt.Errorf("%w: invalid table name %q", ErrStorageQuery, table)
	}

	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s);", table))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}
	defer rows.Close()

	columns := make([]models.Column, 0, 12)

	for rows.Next() {
		var (
			col          models.Column
			notNull, pk  int
			defaultValue sql.NullString
		)

		if scanErr := rows.Scan(&col.CID, &col.Name, &col.Type, &notNull, &defaultValue, &pk); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorageQuery, scanErr)
		}

		col.NotNull = notNull != 0
		col.IsPrimaryKey = pk != 0
		if defaultValue.Valid {
			col.DefaultValue = defaultValue.String
		}

		columns = append(columns, col)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageQuery, rowsErr)
	}

	return columns, nil
}

// ColumnNames is a convenience over [DB.ColumnsOf] returning just the names.
func (db *DB) ColumnNames(ctx context.Context, table string) ([]string, error) {
	columns, err := db.ColumnsOf(ctx, table)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(columns))
	for _, col := range columns {
		names = append(names, col.Name)
	}

	return names, nil
}

// Path returns the on-disk location of the database file.
func (db *DB) Path() string {
	return db.path
}

// Close snapshots the in-memory database one final time and releases the
// handle. Mirrors the original application's save-on-window-close.
func (db *DB) Close(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	snapErr := db.snapshot(ctx)
	closeErr := db.conn.Close()

	if snapErr != nil {
		return fmt.Errorf("%w: %w", ErrStorageQuery, snapErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %w", ErrStorageQuery, closeErr)
	}

	return nil
}
