// Package store persists fetched bulletin entries and computed company
// snapshots in a local sqlite database, so repeated lookups work offline
// and historical snapshots survive restarts.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/bormex/bormex/internal/model"
)

// Store wraps the sqlite database.
type Store struct {
	db      *sql.DB
	entropy *rand.Rand
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id         TEXT PRIMARY KEY,
		entry_id   TEXT NOT NULL,
		company    TEXT NOT NULL,
		source     TEXT,
		date       TEXT,
		text       TEXT NOT NULL,
		fetched_at TEXT NOT NULL,
		UNIQUE (company, entry_id)
	);
	CREATE INDEX IF NOT EXISTS idx_entries_company ON entries(company);
	CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);

	CREATE TABLE IF NOT EXISTS snapshots (
		id         TEXT PRIMARY KEY,
		company    TEXT NOT NULL UNIQUE,
		status     TEXT NOT NULL,
		record     TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_status ON snapshots(status);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveEntries upserts the entries fetched for a company. Re-fetching an
// entry refreshes its text and timestamp.
func (s *Store) SaveEntries(ctx context.Context, company string, entries []model.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, e := range entries {
		var date string
		if !e.Date.IsZero() {
			date = e.Date.UTC().Format("2006-01-02")
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO entries (id, entry_id, company, source, date, text, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (company, entry_id) DO UPDATE SET
				source = excluded.source,
				date = excluded.date,
				text = excluded.text,
				fetched_at = excluded.fetched_at`,
			s.newID(), e.ID, company, e.Source, date, e.Text, now)
		if err != nil {
			return fmt.Errorf("insert entry %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

// Entries returns the stored entries for a company, oldest first.
func (s *Store) Entries(ctx context.Context, company string) ([]model.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_id, source, date, text
		FROM entries WHERE company = ?
		ORDER BY date, entry_id`, company)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		var e model.Entry
		var date sql.NullString
		if err := rows.Scan(&e.ID, &e.Source, &date, &e.Text); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if date.Valid && date.String != "" {
			if ts, err := time.Parse("2006-01-02", date.String); err == nil {
				e.Date = ts
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveSnapshot stores the latest computed record for a company,
// replacing any previous snapshot.
func (s *Store) SaveSnapshot(ctx context.Context, rec *model.CompanyRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, company, status, record, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (company) DO UPDATE SET
			status = excluded.status,
			record = excluded.record,
			updated_at = excluded.updated_at`,
		s.newID(), rec.Name, string(rec.Status), string(data), now)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// Snapshot loads the stored record for a company; ok is false when none
// exists.
func (s *Store) Snapshot(ctx context.Context, company string) (*model.CompanyRecord, bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM snapshots WHERE company = ?`, company).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query snapshot: %w", err)
	}

	rec := &model.CompanyRecord{}
	if err := json.Unmarshal([]byte(data), rec); err != nil {
		return nil, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return rec, true, nil
}

// ListSnapshots returns company names and statuses, most recent first.
func (s *Store) ListSnapshots(ctx context.Context) ([]SnapshotInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT company, status, updated_at
		FROM snapshots ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		var updated string
		if err := rows.Scan(&info.Company, &info.Status, &updated); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, updated); err == nil {
			info.UpdatedAt = ts
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// SnapshotInfo is one row of the snapshot listing.
type SnapshotInfo struct {
	Company   string
	Status    string
	UpdatedAt time.Time
}
