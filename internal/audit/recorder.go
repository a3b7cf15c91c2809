// Package audit writes a record of every analysis request in the background
// so the request path never waits on storage.
package audit

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/mr1hm/mycelium/internal/models"
	"github.com/mr1hm/mycelium/internal/repository"
	"github.com/mr1hm/mycelium/internal/worker"
)

type Config struct {
	Workers    int
	BufferSize int
}

type Recorder struct {
	repo    repository.AnalysisRepository
	pool    *worker.Pool[*models.AnalysisRecord]
	dropped atomic.Int64
}

func NewRecorder(cfg Config, repo repository.AnalysisRepository) *Recorder {
	r := &Recorder{repo: repo}
	r.pool = worker.NewPool[*models.AnalysisRecord]("audit", cfg.Workers, cfg.BufferSize, r.persist)
	return r
}

func (r *Recorder) Start(ctx context.Context) {
	r.pool.Start(ctx)
}

func (r *Recorder) persist(ctx context.Context, rec *models.AnalysisRecord) error {
	if err := r.repo.Add(ctx, rec); err != nil {
		return err
	}
	slog.Debug("analysis recorded", "id", rec.ID, "ai_status", rec.AIStatus)
	return nil
}

// Record queues rec for storage. A full queue drops the record.
func (r *Recorder) Record(rec *models.AnalysisRecord) {
	if !r.pool.TrySubmit(rec) {
		r.dropped.Add(1)
		slog.Warn("audit queue full, dropping record", "id", rec.ID)
	}
}

func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

func (r *Recorder) Repository() repository.AnalysisRepository {
	return r.repo
}

// Stop waits for queued records to be written.
func (r *Recorder) Stop() {
	r.pool.Stop()
	slog.Info("audit recorder stopped", "dropped", r.dropped.Load())
}
