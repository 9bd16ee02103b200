package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// Register the pure-Go SQLite driver (no CGO required).
	_ "modernc.org/sqlite"

	"github.com/giantswarm/smokecheck/internal/fileutil"
)

// schema creates the runs table on first open. Appends only; no migrations.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	target      TEXT    NOT NULL,
	artifact    TEXT    NOT NULL,
	port        INTEGER NOT NULL,
	outcome     TEXT    NOT NULL,
	attempts    INTEGER NOT NULL,
	detail      TEXT    NOT NULL DEFAULT '',
	duration_ms INTEGER NOT NULL,
	started_at  TEXT    NOT NULL
);
`

// Outcome values stored in the runs table.
const (
	OutcomePass = "pass"
	OutcomeFail = "fail"
)

// Record is one verification run.
type Record struct {
	Target    string
	Artifact  string
	Port      int
	Outcome   string
	Attempts  int
	Detail    string // failure detail; empty on success
	Duration  time.Duration
	StartedAt time.Time
}

// Ledger is an append-only store of verification runs backed by SQLite.
type Ledger struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (creating if necessary) the ledger database at path and ensures
// the schema exists. The parent directory is created if missing.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := fileutil.EnsureDirForFile(path); err != nil {
		return nil, fmt.Errorf("prepare ledger directory: %w", err)
	}

	// WAL with a generous busy timeout: the harness serializes runs, but a
	// second harness process on the same machine may share the ledger file.
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)&_pragma=synchronous(NORMAL)",
		path,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// Single connection — writes are serialized anyway and a pool would only
	// multiply WAL lock contention.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create ledger schema: %w", err)
	}

	return &Ledger{db: db, log: logger}, nil
}

// Append writes one run record.
func (l *Ledger) Append(ctx context.Context, rec Record) error {
	const insert = `
		INSERT INTO runs (target, artifact, port, outcome, attempts, detail, duration_ms, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := l.db.ExecContext(ctx, insert,
		rec.Target, rec.Artifact, rec.Port, rec.Outcome, rec.Attempts,
		rec.Detail, rec.Duration.Milliseconds(), rec.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append ledger run for %s: %w", rec.Target, err)
	}
	return nil
}

// Runs returns all recorded runs in insertion order.
func (l *Ledger) Runs(ctx context.Context) ([]Record, error) {
	const query = `
		SELECT target, artifact, port, outcome, attempts, detail, duration_ms, started_at
		FROM runs ORDER BY id
	`
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ledger runs: %w", err)
	}
	defer rows.Close() //nolint:errcheck // rows.Err() below catches read errors

	var recs []Record
	for rows.Next() {
		var rec Record
		var durationMS int64
		var startedAt string
		if err := rows.Scan(&rec.Target, &rec.Artifact, &rec.Port, &rec.Outcome,
			&rec.Attempts, &rec.Detail, &durationMS, &startedAt); err != nil {
			return nil, fmt.Errorf("scan ledger run: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		ts, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parse ledger timestamp %q: %w", startedAt, err)
		}
		rec.StartedAt = ts
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger runs: %w", err)
	}
	return recs, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	if err := l.db.Close(); err != nil {
		return fmt.Errorf("close ledger: %w", err)
	}
	return nil
}
