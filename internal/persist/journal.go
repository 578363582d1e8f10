package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// FrameRecord is one journal row: the world's vital counts after a frame.
type FrameRecord struct {
	Frame    uint64
	Dt       float32
	Alive    int
	Spawned  int
	Commands int
}

// JournalRepo buffers frame records in memory and writes them in batches.
// Game-loop goroutine only.
type JournalRepo struct {
	db      *DB
	runID   string
	pending []FrameRecord
	log     *zap.Logger
}

func NewJournalRepo(db *DB, runID string) *JournalRepo {
	return &JournalRepo{
		db:      db,
		runID:   runID,
		pending: make([]FrameRecord, 0, 256),
		log:     db.log,
	}
}

// NewRunID names a run by its start time.
func NewRunID(start time.Time) string {
	return start.UTC().Format("20060102T150405.000Z")
}

func (r *JournalRepo) Record(rec FrameRecord) {
	r.pending = append(r.pending, rec)
}

func (r *JournalRepo) Pending() int {
	return len(r.pending)
}

// Flush writes every buffered record in a single transaction. On failure the
// buffer is kept so the next flush retries the same rows.
func (r *JournalRepo) Flush(ctx context.Context) error {
	if len(r.pending) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range r.pending {
		if _, err := tx.Exec(ctx,
			`INSERT INTO frame_journal (run_id, frame, dt, alive, spawned, commands)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			r.runID, int64(rec.Frame), rec.Dt, rec.Alive, rec.Spawned, rec.Commands,
		); err != nil {
			return fmt.Errorf("journal insert: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("journal commit: %w", err)
	}
	r.log.Debug("journal flushed", zap.String("run", r.runID), zap.Int("rows", len(r.pending)))
	r.pending = r.pending[:0]
	return nil
}

// RunSummary is where a journaled run stopped.
type RunSummary struct {
	RunID     string
	LastFrame uint64
	Frames    int
}

// LastRun reports the most recently journaled run other than exclude, so a
// host can log where the previous session stopped. found is false on an
// empty journal.
func LastRun(ctx context.Context, db *DB, exclude string) (sum RunSummary, found bool, err error) {
	var frame int64
	err = db.Pool.QueryRow(ctx,
		`SELECT run_id, MAX(frame), COUNT(*)
		   FROM frame_journal
		  WHERE run_id <> $1
		  GROUP BY run_id
		  ORDER BY MAX(recorded_at) DESC
		  LIMIT 1`,
		exclude,
	).Scan(&sum.RunID, &frame, &sum.Frames)
	if errors.Is(err, pgx.ErrNoRows) {
		return RunSummary{}, false, nil
	}
	if err != nil {
		return RunSummary{}, false, fmt.Errorf("journal last run: %w", err)
	}
	sum.LastFrame = uint64(frame)
	return sum, true, nil
}
