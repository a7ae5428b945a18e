// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package progress persists the reading status of catalog papers in a
// SQLite database. It is deliberately separate from the download stage:
// the two share only the catalog record types.
package progress

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/funkybooboo/library/pkg/types"
)

const dbFile = "progress.db"

const dateFmt = "2006-01-02"

// now is replaceable so tests get stable dates.
var now = time.Now

// Status is the reading state of one paper.
type Status string

const (
	StatusNotStarted Status = "not started"
	StatusInProgress Status = "in progress"
	StatusRead       Status = "read"
)

// statusAliases maps short CLI spellings to full statuses.
var statusAliases = map[string]Status{
	"ns": StatusNotStarted,
	"ip": StatusInProgress,
	"d":  StatusRead,
}

// ParseStatus resolves a status string or alias. It accepts "ns", "ip",
// and "d" alongside the full spellings, case-insensitively.
func ParseStatus(s string) (Status, error) {
	lowered := strings.ToLower(strings.TrimSpace(s))
	if st, ok := statusAliases[lowered]; ok {
		return st, nil
	}
	switch Status(lowered) {
	case StatusNotStarted, StatusInProgress, StatusRead:
		return Status(lowered), nil
	}
	return "", fmt.Errorf("invalid status %q: use 'not started' (ns), 'in progress' (ip), or 'read' (d)", s)
}

// Entry is one tracked paper.
type Entry struct {
	ID           int
	Title        string
	ParentTitle  string
	Link         string
	Topic        string
	Status       Status
	StartDate    string
	FinishedDate string
}

// Store manages the progress SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the progress database at progressDir/progress.db,
// creating the schema if it does not exist.
func Open(cfg types.ProgressConfig) (*Store, error) {
	dir := cfg.ProgressDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating progress directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS papers (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		parent_title TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT '',
		topic TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'not started',
		start_date TEXT NOT NULL DEFAULT '',
		finished_date TEXT NOT NULL DEFAULT ''
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Initialized reports whether the store has been seeded from a catalog.
func (s *Store) Initialized() (bool, error) {
	var count int
	if err := s.db.QueryRow(`SELECT count(*) FROM papers`).Scan(&count); err != nil {
		return false, fmt.Errorf("counting papers: %w", err)
	}
	return count > 0, nil
}

// Init seeds the store from catalog records: every titled paper and related
// paper gets a numeric id in catalog order and starts as "not started".
// Related entries remember their parent's title. Init refuses to clobber an
// already-seeded store.
func (s *Store) Init(records []types.Record) (int, error) {
	seeded, err := s.Initialized()
	if err != nil {
		return 0, err
	}
	if seeded {
		return 0, fmt.Errorf("progress store already initialized")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO papers (id, title, parent_title, link, topic) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	id := 0
	insert := func(title, parentTitle, link, topic string) error {
		if title == "" {
			return nil
		}
		id++
		_, err := stmt.Exec(id, title, parentTitle, link, topic)
		return err
	}

	for _, r := range records {
		topic := r.PrimaryTopic()
		if err := insert(r.Title, "", r.Link, topic); err != nil {
			return 0, fmt.Errorf("inserting paper %q: %w", r.Title, err)
		}
		for _, rel := range r.Related {
			if err := insert(rel.Title, r.Title, rel.Link, topic); err != nil {
				return 0, fmt.Errorf("inserting related paper %q: %w", rel.Title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return id, nil
}

// Reset puts every paper back to "not started" and clears its dates.
func (s *Store) Reset() error {
	_, err := s.db.Exec(
		`UPDATE papers SET status = ?, start_date = '', finished_date = ''`,
		string(StatusNotStarted))
	if err != nil {
		return fmt.Errorf("resetting progress: %w", err)
	}
	return nil
}

// Set updates one paper's status. Moving to "in progress" records a start
// date (today unless given); moving to "read" records a finished date and
// backfills the start date; moving back to "not started" clears both.
func (s *Store) Set(id int, status Status, startDate, finishedDate string) error {
	today := now().Format(dateFmt)

	var entry Entry
	err := s.db.QueryRow(
		`SELECT start_date, finished_date FROM papers WHERE id = ?`, id,
	).Scan(&entry.StartDate, &entry.FinishedDate)
	if err == sql.ErrNoRows {
		return fmt.Errorf("paper with id %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("looking up paper %d: %w", id, err)
	}

	switch status {
	case StatusInProgress:
		if startDate == "" {
			startDate = today
		}
		finishedDate = ""
	case StatusRead:
		if startDate == "" {
			startDate = entry.StartDate
		}
		if startDate == "" {
			startDate = today
		}
		if finishedDate == "" {
			finishedDate = today
		}
	case StatusNotStarted:
		startDate = ""
		finishedDate = ""
	default:
		return fmt.Errorf("invalid status %q", status)
	}

	_, err = s.db.Exec(
		`UPDATE papers SET status = ?, start_date = ?, finished_date = ? WHERE id = ?`,
		string(status), startDate, finishedDate, id)
	if err != nil {
		return fmt.Errorf("updating paper %d: %w", id, err)
	}
	return nil
}

// List returns papers in id order, optionally filtered by status.
// An empty filter returns everything.
func (s *Store) List(filter Status) ([]Entry, error) {
	query := `SELECT id, title, parent_title, link, topic, status, start_date, finished_date
		FROM papers`
	args := []any{}
	if filter != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter))
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var status string
		if err := rows.Scan(&e.ID, &e.Title, &e.ParentTitle, &e.Link, &e.Topic,
			&status, &e.StartDate, &e.FinishedDate); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		e.Status = Status(status)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
