package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/CTAG07/wordchain/pkg/archive"
)

// openHistory opens the history database at path and prepares a Store.
// Both must be closed by the caller.
func openHistory(path string, logger *slog.Logger) (*sql.DB, *archive.Store, error) {
	db, err := initDB(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err = archive.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to setup history schema: %w", err)
	}
	store, err := archive.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create history store: %w", err)
	}
	store.SetLogger(logger)
	return db, store, nil
}

// recordRun stores a finished run in the history database at path.
func recordRun(ctx context.Context, path string, run *archive.Run, logger *slog.Logger) error {
	db, store, err := openHistory(path, logger)
	if err != nil {
		return err
	}
	defer func() {
		store.Close()
		if err := db.Close(); err != nil {
			logger.Error("Failed to close history database", "error", err)
		}
	}()

	return store.Record(ctx, run)
}

// listHistory prints the last limit runs and their sentences.
func listHistory(ctx context.Context, path string, limit int, w io.Writer, logger *slog.Logger) error {
	if path == "" {
		return errors.New("no history database configured, use -history")
	}
	db, store, err := openHistory(path, logger)
	if err != nil {
		return err
	}
	defer func() {
		store.Close()
		_ = db.Close()
	}()

	runs, err := store.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	for _, run := range runs {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintf(tw, "run\t%s\n", run.ID)
		_, _ = fmt.Fprintf(tw, "created\t%s\n", run.CreatedAt.Format(time.RFC3339))
		_, _ = fmt.Fprintf(tw, "word length\t%d\n", run.WordLength)
		_, _ = fmt.Fprintf(tw, "workers\t%d\n", run.Workers)
		_, _ = fmt.Fprintf(tw, "required\t%s\n", strings.Join(run.RequiredWords, ","))
		_, _ = fmt.Fprintf(tw, "elapsed\t%s\n", run.Elapsed)
		if err = tw.Flush(); err != nil {
			return err
		}

		sentences, err := store.Sentences(ctx, run.ID)
		if err != nil {
			return fmt.Errorf("failed to read sentences of run %s: %w", run.ID, err)
		}
		for _, sentence := range sentences {
			_, _ = fmt.Fprintf(w, "  %s\n", sentence)
		}
		_, _ = fmt.Fprintln(w)
	}
	return nil
}
