package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/emre23q/CMS2/internal/config"
	"github.com/emre23q/CMS2/internal/logger"
	"github.com/emre23q/CMS2/migrations"
)

// memoryDSN keeps the live database fully in memory. Durability comes from
// the snapshot discipline in [DB.Exec], not from the driver.
const memoryDSN = "file::memory:?_foreign_keys=on"

// Open creates the process-wide database handle.
//
// When cfg.Path exists the file is loaded verbatim into memory via the
// SQLite online backup API. Otherwise a fresh database is created: the
// embedded migrations establish the schema, the optional seed script
// (cfg.SeedScript, plain SQL) is applied when present, and the result is
// snapshotted to cfg.Path immediately.
//
// All failures are wrapped in [ErrStorageInit]; the application cannot run
// without a database, so callers treat this error as fatal.
func Open(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		log.Err(err).Str("func", "store.Open").Msg("error creating database directory")
		return nil, fmt.Errorf("%w: %w", ErrStorageInit, err)
	}

	conn, err := sql.Open("sqlite3", memoryDSN)
	if err != nil {
		log.Err(err).Str("func", "store.Open").Msg("error opening in-memory database")
		return nil, fmt.Errorf("%w: %w", ErrStorageInit, err)
	}

	// A second connection would be a second, empty in-memory database.
	// Pin the pool to exactly one connection for the process lifetime.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)
	conn.SetConnMaxIdleTime(0)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "store.Open").Msg("error connecting database (ping)")
		conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageInit, err)
	}

	db := &DB{
		conn:   conn,
		path:   cfg.Path,
		logger: log,
	}

	freshDatabase := true
	if _, statErr := os.Stat(cfg.Path); statErr == nil {
		freshDatabase = false
		if err = db.restore(ctx); err != nil {
			log.Err(err).Str("func", "store.Open").Str("path", cfg.Path).Msg("error loading database file")
			conn.Close()
			return nil, fmt.Errorf("%w: %w", ErrStorageInit, err)
		}
		log.Debug().Str("func", "store.Open").Str("path", cfg.Path).Msg("database loaded from file")
	}

	if err = migrations.Migrate(conn); err != nil {
		log.Err(err).Str("func", "store.Open").Msg("error migrating database")
		conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageInit, err)
	}

	if freshDatabase {
		if err = db.applySeedScript(ctx, cfg.SeedScript); err != nil {
			log.Err(err).Str("func", "store.Open").Str("seed", cfg.SeedScript).Msg("error applying seed script")
			conn.Close()
			return nil, fmt.Errorf("%w: %w", ErrStorageInit, err)
		}
	}

	if err = db.snapshot(ctx); err != nil {
		log.Err(err).Str("func", "store.Open").Str("path", cfg.Path).Msg("error persisting database")
		conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageInit, err)
	}

	if freshDatabase {
		log.Debug().Str("func", "store.Open").Str("path", cfg.Path).Msg("new database created and initialized")
	}

	return db, nil
}

// applySeedScript executes the optional seed SQL file. A missing file is
// not an error (the schema already comes from the embedded migrations);
// an unreadable or failing script is.
func (db *DB) applySeedScript(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	script, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading seed script: %w", err)
	}

	if _, err = db.conn.ExecContext(ctx, string(script)); err != nil {
		return fmt.Errorf("applying seed script: %w", err)
	}

	return nil
}

// restore copies the on-disk database file into the in-memory database.
func (db *DB) restore(ctx context.Context) error {
	src, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("opening database file: %w", err)
	}
	defer src.Close()

	if err = copyDatabase(ctx, db.conn, src); err != nil {
		return fmt.Errorf("restoring database from file: %w", err)
	}

	return nil
}

// snapshot exports the whole in-memory database to a uniquely named
// temporary file next to the live one, then renames it into place. The
// rename keeps the snapshot atomic: readers of the file either see the old
// state or the new one, never a half-written database.
//
// Callers must hold db.mu.
func (db *DB) snapshot(ctx context.Context) error {
	tmpPath := fmt.Sprintf("%s.%s.tmp", db.path, uuid.NewString())

	dest, err := sql.Open("sqlite3", tmpPath)
	if err != nil {
		return fmt.Errorf("opening snapshot file: %w", err)
	}

	if err = copyDatabase(ctx, dest, db.conn); err != nil {
		dest.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("exporting database: %w", err)
	}

	if err = dest.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing snapshot file: %w", err)
	}

	if err = os.Rename(tmpPath, db.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing database file: %w", err)
	}

	return nil
}

// copyDatabase copies the full contents of src into dest using the SQLite
// online backup API. dest ends up as an exact copy of src.
func copyDatabase(ctx context.Context, dest, src *sql.DB) error {
	destConn, err := dest.Conn(ctx)
	if err != nil {
		return err
	}
	defer destConn.Close()

	srcConn, err := src.Conn(ctx)
	if err != nil {
		return err
	}
	defer srcConn.Close()

	return rawSQLiteConn(destConn, func(d *sqlite3.SQLiteConn) error {
		return rawSQLiteConn(srcConn, func(s *sqlite3.SQLiteConn) error {
			backup, backupErr := d.Backup("main", s, "main")
			if backupErr != nil {
				return backupErr
			}
			defer backup.Finish()

			for {
				done, stepErr := backup.Step(-1)
				if stepErr != nil {
					return stepErr
				}
				if done {
					return nil
				}
			}
		})
	})
}

// rawSQLiteConn exposes the driver connection behind a database/sql
// connection so the backup API can be reached.
func rawSQLiteConn(conn *sql.Conn, fn func(*sqlite3.SQLiteConn) error) error {
	return conn.Raw(func(driverConn any) error {
		sqliteConn, ok := driverConn.(*sqlite3.SQLiteConn)
		if !ok {
			return errors.New("driver connection is not sqlite3")
		}
		return fn(sqliteConn)
	})
}
