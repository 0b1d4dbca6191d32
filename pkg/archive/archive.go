package archive

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// SetupSchema initializes the tables used by a Store. It is idempotent and
// safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const (
		schemaRuns = `
CREATE TABLE IF NOT EXISTS wordchain_runs (
    run_id         TEXT PRIMARY KEY,
    created_at     INTEGER NOT NULL,
    word_length    INTEGER NOT NULL,
    sentence_count INTEGER NOT NULL,
    required_words TEXT NOT NULL,
    workers        INTEGER NOT NULL,
    seed           INTEGER NOT NULL DEFAULT 0,
    elapsed_ms     INTEGER NOT NULL
);
`
		schemaSentences = `
CREATE TABLE IF NOT EXISTS wordchain_sentences (
    run_id   TEXT NOT NULL,
    position INTEGER NOT NULL,
    sentence TEXT NOT NULL,
    PRIMARY KEY (run_id, position)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaRuns); err != nil {
		return fmt.Errorf("could not create runs schema: %w", err)
	}
	if _, err = tx.Exec(schemaSentences); err != nil {
		return fmt.Errorf("could not create sentences schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Run is one recorded generation run.
type Run struct {
	ID            string
	CreatedAt     time.Time
	WordLength    int
	RequiredWords []string
	Workers       int
	Seed          uint64
	Elapsed       time.Duration
	SentenceCount int
	Sentences     []string // Written by Record; Recent leaves it nil
}

// Store reads and writes runs. It holds prepared statements and must be
// closed when no longer needed.
type Store struct {
	db               *sql.DB
	stmtInsertRun    *sql.Stmt
	stmtInsertLine   *sql.Stmt
	stmtRecentRuns   *sql.Stmt
	stmtRunSentences *sql.Stmt
	stmtCountRuns    *sql.Stmt
	entropyMu        sync.Mutex
	entropy          *ulid.MonotonicEntropy
	logger           *slog.Logger
}

// NewStore prepares all statements used by the Store. SetupSchema must have
// been called on db first.
func NewStore(db *sql.DB) (*Store, error) {
	stmtInsertRun, err := db.Prepare(`INSERT INTO wordchain_runs (run_id, created_at, word_length, sentence_count, required_words, workers, seed, elapsed_ms) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtInsertLine, err := db.Prepare(`INSERT INTO wordchain_sentences (run_id, position, sentence) VALUES (?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtRecentRuns, err := db.Prepare(`SELECT run_id, created_at, word_length, sentence_count, required_words, workers, seed, elapsed_ms FROM wordchain_runs ORDER BY run_id DESC LIMIT ?;`)
	if err != nil {
		return nil, err
	}

	stmtRunSentences, err := db.Prepare(`SELECT sentence FROM wordchain_sentences WHERE run_id = ? ORDER BY position;`)
	if err != nil {
		return nil, err
	}

	stmtCountRuns, err := db.Prepare(`SELECT COUNT(*) FROM wordchain_runs;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:               db,
		stmtInsertRun:    stmtInsertRun,
		stmtInsertLine:   stmtInsertLine,
		stmtRecentRuns:   stmtRecentRuns,
		stmtRunSentences: stmtRunSentences,
		stmtCountRuns:    stmtCountRuns,
		entropy:          ulid.Monotonic(rand.Reader, 0),
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtInsertRun.Close()
	_ = s.stmtInsertLine.Close()
	_ = s.stmtRecentRuns.Close()
	_ = s.stmtRunSentences.Close()
	_ = s.stmtCountRuns.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// newID returns a ULID for t. IDs created by one Store sort in creation order.
func (s *Store) newID(t time.Time) string {
	s.entropyMu.Lock()
	defer s.entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

// Record stores run and its sentences in a single transaction. A missing ID
// or CreatedAt is filled in, and SentenceCount is taken from Sentences.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	if run.ID == "" {
		run.ID = s.newID(run.CreatedAt)
	}
	run.SentenceCount = len(run.Sentences)

	required := run.RequiredWords
	if required == nil {
		required = []string{}
	}
	requiredJSON, err := json.Marshal(required)
	if err != nil {
		return fmt.Errorf("failed to encode required words: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	_, err = tx.StmtContext(ctx, s.stmtInsertRun).ExecContext(ctx,
		run.ID,
		run.CreatedAt.UnixMilli(),
		run.WordLength,
		run.SentenceCount,
		string(requiredJSON),
		run.Workers,
		int64(run.Seed),
		run.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	stmtInsertLine := tx.StmtContext(ctx, s.stmtInsertLine)
	for i, sentence := range run.Sentences {
		if _, err = stmtInsertLine.ExecContext(ctx, run.ID, i, sentence); err != nil {
			return fmt.Errorf("failed to insert sentence %d of run %s: %w", i, run.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", run.ID, err)
	}

	s.logger.InfoContext(ctx, "Run recorded",
		slog.String("run_id", run.ID),
		slog.Int("sentences", run.SentenceCount),
	)
	return nil
}

// Recent returns up to limit runs, newest first. Sentences are not loaded.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.stmtRecentRuns.QueryContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("could not query runs: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	runs := make([]Run, 0, limit)
	for rows.Next() {
		var (
			run          Run
			createdAt    int64
			requiredJSON string
			seed         int64
			elapsedMs    int64
		)
		if err = rows.Scan(&run.ID, &createdAt, &run.WordLength, &run.SentenceCount, &requiredJSON, &run.Workers, &seed, &elapsedMs); err != nil {
			return nil, err
		}
		if err = json.Unmarshal([]byte(requiredJSON), &run.RequiredWords); err != nil {
			return nil, fmt.Errorf("failed to decode required words of run %s: %w", run.ID, err)
		}
		run.CreatedAt = time.UnixMilli(createdAt)
		run.Seed = uint64(seed)
		run.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Sentences returns the sentences of a run in their original order. An
// unknown run yields an empty slice.
func (s *Store) Sentences(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.stmtRunSentences.QueryContext(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("could not query sentences for run %s: %w", runID, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	sentences := make([]string, 0)
	for rows.Next() {
		var sentence string
		if err = rows.Scan(&sentence); err != nil {
			return nil, err
		}
		sentences = append(sentences, sentence)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sentences, nil
}

// Count returns the number of recorded runs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.stmtCountRuns.QueryRowContext(ctx).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
