package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/a11yscan/a11yscan/internal/model"
)

// HistoryDB provides SQLite-based storage for scan history.
type HistoryDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// VisitRow is one stored page-visit record.
type VisitRow struct {
	ID         int64
	ScannedAt  time.Time
	Site       string
	Page       string
	Device     string
	URL        string
	Violations int
	Passed     bool
	Error      string
}

// Open opens or creates a HistoryDB in the given directory.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "a11yscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports a single writer; more connections buy nothing here.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scanned_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		site TEXT NOT NULL,
		page TEXT NOT NULL,
		device TEXT NOT NULL,
		url TEXT NOT NULL,
		violations INTEGER NOT NULL,
		passed INTEGER NOT NULL,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_visits_site ON visits(site);
	CREATE INDEX IF NOT EXISTS idx_visits_page ON visits(page);
	CREATE INDEX IF NOT EXISTS idx_visits_scanned_at ON visits(scanned_at);
	`
	_, err := hdb.db.Exec(schema)
	return err
}

// SaveVisit stores one completed page visit.
func (hdb *HistoryDB) SaveVisit(ctx context.Context, result *model.PageResult) error {
	_, err := hdb.db.ExecContext(ctx,
		`INSERT INTO visits (site, page, device, url, violations, passed, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.Site,
		result.Page,
		result.Device,
		result.URL,
		len(result.Records),
		boolToInt(!result.Failed() && len(result.Records) == 0),
		result.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to save visit for %s: %w", result.Page, err)
	}
	return nil
}

// ListVisits returns the most recent visits, newest first.
func (hdb *HistoryDB) ListVisits(ctx context.Context, limit int) ([]VisitRow, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := hdb.db.QueryContext(ctx,
		`SELECT id, scanned_at, site, page, device, url, violations, passed, COALESCE(error, '')
		 FROM visits ORDER BY scanned_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only cursor

	var visits []VisitRow
	for rows.Next() {
		var v VisitRow
		var passed int
		if err := rows.Scan(&v.ID, &v.ScannedAt, &v.Site, &v.Page, &v.Device, &v.URL, &v.Violations, &passed, &v.Error); err != nil {
			return nil, fmt.Errorf("failed to scan visit row: %w", err)
		}
		v.Passed = passed != 0
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
