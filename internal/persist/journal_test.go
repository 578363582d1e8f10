package persist

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/pyreframe/engine/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestNewRunID(t *testing.T) {
	start := time.Date(2026, 10, 18, 9, 30, 15, 250e6, time.FixedZone("X", 3600))
	assert.Equal(t, "20261018T083015.250Z", NewRunID(start))
}

func TestRecordBuffers(t *testing.T) {
	r := NewJournalRepo(&DB{log: zap.NewNop()}, "run")
	r.Record(FrameRecord{Frame: 1})
	r.Record(FrameRecord{Frame: 2})
	assert.Equal(t, 2, r.Pending())
}

func TestFlushEmptyIsNoop(t *testing.T) {
	r := NewJournalRepo(&DB{log: zap.NewNop()}, "run")
	assert.NoError(t, r.Flush(context.Background()))
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	assert.NoError(t, err)
	assert.NotEmpty(t, entries)
}

// openTestDB connects to PYREFRAME_TEST_DSN and migrates it, or skips.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("PYREFRAME_TEST_DSN")
	if dsn == "" {
		t.Skip("Skipping test: PYREFRAME_TEST_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.Defaults().Database
	cfg.DSN = dsn
	db, err := NewDB(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, RunMigrations(ctx, db))
	return db
}

func TestFlushAndLastRun(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	prevID := "test-prev-" + NewRunID(time.Now())
	curID := "test-cur-" + NewRunID(time.Now())
	t.Cleanup(func() {
		_, _ = db.Pool.Exec(context.Background(),
			`DELETE FROM frame_journal WHERE run_id IN ($1, $2)`, prevID, curID)
	})

	prev := NewJournalRepo(db, prevID)
	for f := uint64(1); f <= 3; f++ {
		prev.Record(FrameRecord{Frame: f, Dt: 0.016, Alive: 2, Spawned: 2})
	}
	require.NoError(t, prev.Flush(ctx))
	assert.Equal(t, 0, prev.Pending())

	cur := NewJournalRepo(db, curID)
	cur.Record(FrameRecord{Frame: 1})
	require.NoError(t, cur.Flush(ctx))

	sum, found, err := LastRun(ctx, db, curID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, prevID, sum.RunID)
	assert.Equal(t, uint64(3), sum.LastFrame)
	assert.Equal(t, 3, sum.Frames)
}
