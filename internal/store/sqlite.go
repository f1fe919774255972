package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/chromascale/internal/colour"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MemoryDSN opens a private in-memory SQLite database.
const MemoryDSN = ":memory:"

// SQLite is a Store backed by an SQLite database.
type SQLite struct {
	db     *sql.DB
	logger hclog.Logger
	now    func() time.Time
}

// SQLiteOption configures an SQLite store.
type SQLiteOption func(*SQLite)

// WithLogger sets the store logger.
func WithLogger(l hclog.Logger) SQLiteOption {
	return func(s *SQLite) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) SQLiteOption {
	return func(s *SQLite) {
		if now != nil {
			s.now = now
		}
	}
}

// OpenSQLite opens (creating if needed) the database at path, applies the
// connection pragmas and runs the embedded migrations.
func OpenSQLite(ctx context.Context, path string, opts ...SQLiteOption) (*SQLite, error) {
	s := &SQLite{
		logger: hclog.NewNullLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	memory := path == MemoryDSN
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if memory {
		// Every new connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := applyPragmas(ctx, db, memory); err != nil {
		db.Close()
		return nil, err
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	s.db = db
	s.logger.Debug("palette store opened", "path", path)
	return s, nil
}

func applyPragmas(ctx context.Context, db *sql.DB, memory bool) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
	}
	if !memory {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL", "PRAGMA synchronous = NORMAL")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("error applying %q: %w", p, err)
		}
	}
	return nil
}

// runMigrations applies the embedded migrations. ErrNoChange is not an error.
func runMigrations(db *sql.DB) error {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not create source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

// Create implements Store.
func (s *SQLite) Create(ctx context.Context, rec NewRecord) (Record, error) {
	rec, err := normalise(rec)
	if err != nil {
		return Record{}, err
	}

	colours, err := json.Marshal(rec.Colours)
	if err != nil {
		return Record{}, fmt.Errorf("error encoding colors: %w", err)
	}
	var hues sql.NullString
	if len(rec.Hues) > 0 {
		b, err := json.Marshal(rec.Hues)
		if err != nil {
			return Record{}, fmt.Errorf("error encoding hues: %w", err)
		}
		hues = sql.NullString{String: string(b), Valid: true}
	}

	created := s.now().UTC().Truncate(time.Millisecond)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO palettes (name, hue, saturation, colors, mode, hues, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Name, rec.Hue, rec.Saturation, string(colours), string(rec.Mode), hues, created.UnixMilli(),
	)
	if err != nil {
		return Record{}, fmt.Errorf("error inserting palette: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("error reading palette id: %w", err)
	}

	s.logger.Debug("palette saved", "id", id, "name", rec.Name)
	return Record{
		ID:         id,
		Name:       rec.Name,
		Hue:        rec.Hue,
		Saturation: rec.Saturation,
		Colours:    rec.Colours,
		Mode:       rec.Mode,
		Hues:       rec.Hues,
		CreatedAt:  created,
	}, nil
}

const selectColumns = `SELECT id, name, hue, saturation, colors, mode, hues, created_at FROM palettes`

// List implements Store.
func (s *SQLite) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing palettes: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error listing palettes: %w", err)
	}
	return records, nil
}

// Get implements Store.
func (s *SQLite) Get(ctx context.Context, id int64) (Record, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return rec, err
}

// Delete implements Store.
func (s *SQLite) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM palettes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting palette: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting palette: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	s.logger.Debug("palette deleted", "id", id)
	return nil
}

// Close implements Store.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec     Record
		mode    string
		colours string
		hues    sql.NullString
		created int64
	)
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Hue, &rec.Saturation, &colours, &mode, &hues, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("error reading palette: %w", err)
	}
	rec.Mode = colour.Mode(mode)
	if err := json.Unmarshal([]byte(colours), &rec.Colours); err != nil {
		return Record{}, fmt.Errorf("error decoding colors for palette %d: %w", rec.ID, err)
	}
	if hues.Valid && hues.String != "" {
		if err := json.Unmarshal([]byte(hues.String), &rec.Hues); err != nil {
			return Record{}, fmt.Errorf("error decoding hues for palette %d: %w", rec.ID, err)
		}
	}
	rec.CreatedAt = time.UnixMilli(created).UTC()
	return rec, nil
}
