package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/troopdesk/troopdesk-backend/internal/config"
	"github.com/troopdesk/troopdesk-backend/internal/report"
)

// Refresher recomputes and caches the report summary.
type Refresher interface {
	Refresh(ctx context.Context) (*report.Summary, error)
}

// JobList is the subset of the Redis client the worker consumes jobs with.
type JobList interface {
	BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LLen(ctx context.Context, key string) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type refreshJob struct {
	ActivityID string    `json:"activity_id"`
	QueuedAt   time.Time `json:"queued_at"`
}

// ReportQueue enqueues report refresh jobs on report_refresh_queue.
type ReportQueue struct {
	rdb JobList
}

// NewReportQueue creates a new ReportQueue.
func NewReportQueue(rdb JobList) *ReportQueue {
	return &ReportQueue{rdb: rdb}
}

// Enqueue schedules a refresh after activityID's sheet was saved.
func (q *ReportQueue) Enqueue(ctx context.Context, activityID string) error {
	b, err := json.Marshal(refreshJob{ActivityID: activityID, QueuedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return q.rdb.RPush(ctx, config.WorkerKey.ReportRefreshQueue, b).Err()
}

// ReportWorker consumes report_refresh_queue and rebuilds the cached summary.
// Jobs queued while a refresh runs are folded into the next one.
type ReportWorker struct {
	rdb        JobList
	reports    Refresher
	retryDelay time.Duration
	log        zerolog.Logger
}

// NewReportWorker creates a new ReportWorker.
func NewReportWorker(rdb JobList, reports Refresher, log zerolog.Logger) *ReportWorker {
	return &ReportWorker{
		rdb:        rdb,
		reports:    reports,
		retryDelay: 5 * time.Second,
		log:        log.With().Str("component", "report_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *ReportWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *ReportWorker) processNext(ctx context.Context) {
	queue := config.WorkerKey.ReportRefreshQueue

	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, queue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}
	if len(result) < 2 {
		return
	}

	job, ok := w.decode(result[1])
	if !ok {
		return
	}

	// Coalesce every job already waiting into this refresh.
	skipped, err := w.rdb.Del(ctx, queue).Result()
	if err != nil {
		w.log.Warn().Err(err).Msg("Queue coalesce failed")
	}

	if _, err := w.reports.Refresh(ctx); err != nil {
		w.log.Error().Err(err).
			Str("activity_id", job.ActivityID).
			Dur("retry_in", w.retryDelay).
			Msg("Report refresh failed, job requeued")
		w.rdb.RPush(ctx, queue, result[1])
		time.Sleep(w.retryDelay)
		return
	}

	w.log.Debug().
		Str("activity_id", job.ActivityID).
		Dur("lag", time.Since(job.QueuedAt)).
		Int64("coalesced", skipped).
		Msg("Report summary refreshed")
}

// drain runs one final refresh if jobs are still queued at shutdown.
func (w *ReportWorker) drain(ctx context.Context) {
	pending, err := w.rdb.LLen(ctx, config.WorkerKey.ReportRefreshQueue).Result()
	if err != nil || pending == 0 {
		return
	}

	if _, err := w.reports.Refresh(ctx); err != nil {
		w.log.Error().Err(err).Msg("Drain refresh error")
		return
	}
	w.rdb.Del(ctx, config.WorkerKey.ReportRefreshQueue)
	w.log.Info().Int64("count", pending).Msg("Drained remaining items")
}

func (w *ReportWorker) decode(raw string) (refreshJob, bool) {
	var job refreshJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return refreshJob{}, false
	}
	return job, true
}
