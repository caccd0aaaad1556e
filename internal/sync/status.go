package sync

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	runKeyPrefix = "sync:run:"
	lastRunKey   = "sync:last_run"
	runTTL       = 7 * 24 * time.Hour
)

// ErrNoRuns means no sync run has been recorded yet.
var ErrNoRuns = errors.New("no sync runs recorded")

// Run identifies one in-flight sync run.
type Run struct {
	ID        string
	Kind      string
	StartedAt time.Time
}

// RunStatus is the persisted record of a sync run.
type RunStatus struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	State      string          `json:"state"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at,omitempty"`
	Error      string          `json:"error,omitempty"`
	Summary    json.RawMessage `json:"summary,omitempty"`
}

// StatusTracker records sync runs in Redis so operators can poll progress
// and outcomes. Tracking is best effort: a Redis hiccup is logged and never
// fails the sync it describes.
type StatusTracker struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewStatusTracker(rdb *redis.Client, log *zap.Logger) *StatusTracker {
	return &StatusTracker{rdb: rdb, log: log}
}

// Begin registers a new run and returns its handle.
func (t *StatusTracker) Begin(ctx context.Context, kind string) Run {
	run := Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		StartedAt: time.Now().UTC(),
	}
	t.write(ctx, RunStatus{
		ID:        run.ID,
		Kind:      run.Kind,
		State:     "running",
		StartedAt: run.StartedAt,
	})
	return run
}

// Finish records the run's outcome together with its summary payload.
func (t *StatusTracker) Finish(ctx context.Context, run Run, summary any, runErr error) {
	status := RunStatus{
		ID:         run.ID,
		Kind:       run.Kind,
		State:      "completed",
		StartedAt:  run.StartedAt,
		FinishedAt: time.Now().UTC(),
	}
	if runErr != nil {
		status.State = "failed"
		status.Error = runErr.Error()
	}
	if summary != nil {
		if data, err := json.Marshal(summary); err == nil {
			status.Summary = data
		}
	}
	t.write(ctx, status)
}

// Latest returns the most recently started run, or ErrNoRuns.
func (t *StatusTracker) Latest(ctx context.Context) (RunStatus, error) {
	id, err := t.rdb.Get(ctx, lastRunKey).Result()
	if errors.Is(err, redis.Nil) {
		return RunStatus{}, ErrNoRuns
	}
	if err != nil {
		return RunStatus{}, err
	}
	return t.Get(ctx, id)
}

// Get returns one run by id, or ErrNoRuns when it expired or never existed.
func (t *StatusTracker) Get(ctx context.Context, id string) (RunStatus, error) {
	data, err := t.rdb.Get(ctx, runKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return RunStatus{}, ErrNoRuns
	}
	if err != nil {
		return RunStatus{}, err
	}
	var status RunStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return RunStatus{}, err
	}
	return status, nil
}

func (t *StatusTracker) write(ctx context.Context, status RunStatus) {
	data, err := json.Marshal(status)
	if err != nil {
		t.log.Warn("marshal run status", zap.Error(err))
		return
	}
	pipe := t.rdb.Pipeline()
	pipe.Set(ctx, runKeyPrefix+status.ID, data, runTTL)
	pipe.Set(ctx, lastRunKey, status.ID, runTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		t.log.Warn("record run status", zap.String("run_id", status.ID), zap.Error(err))
	}
}
