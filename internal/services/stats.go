package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/healthdata/nutristats/internal/jobs"
	"github.com/healthdata/nutristats/internal/models"
	srvErrors "github.com/healthdata/nutristats/pkg/errors"
	"github.com/healthdata/nutristats/pkg/scheduler"
)

const shutdownMessage = "terminated during shutdown"

// Computation is the statistical capability the workers invoke. It must be
// safe for concurrent use and must not mutate the dataset.
type Computation func(ctx context.Context, req models.RequestSpec) (any, error)

// Stats dispatches statistical requests onto the worker pool and tracks
// them in the job store. It also coordinates the draining shutdown and the
// restart of the pool.
type Stats struct {
	jobs    *jobs.Store
	compute Computation
	grace   time.Duration
	limiter *rate.Limiter

	mu      sync.Mutex
	pool    *scheduler.Scheduler
	newPool func() *scheduler.Scheduler
}

// NewStatsService builds the service with a fresh pool. newPool is also kept
// for restarts after a shutdown. limiter is optional admission control on
// submissions; nil disables it.
func NewStatsService(store *jobs.Store, compute Computation, newPool func() *scheduler.Scheduler, grace time.Duration, limiter *rate.Limiter) *Stats {
	return &Stats{
		jobs:    store,
		compute: compute,
		grace:   grace,
		limiter: limiter,
		pool:    newPool(),
		newPool: newPool,
	}
}

// Submit validates the request, records a running job and enqueues the
// computation. It returns the job identifier without waiting for the
// computation to run.
func (s *Stats) Submit(req models.RequestSpec) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}
	if s.limiter != nil && !s.limiter.Allow() {
		return "", srvErrors.NewPoolSaturatedError()
	}

	pool := s.currentPool()
	if pool.Closed() {
		return "", srvErrors.NewPoolClosedError()
	}

	id := s.jobs.Create(req)
	zap.S().Named("stats_service").Infow("enqueuing job", "job_id", id, "op", string(req.Op))

	if err := pool.Submit(func(ctx context.Context) {
		s.run(ctx, id, req)
	}); err != nil {
		// The record was already issued; close it out so polling the id
		// reports the rejection instead of hanging on "running".
		s.jobs.CompleteError(id, fmt.Sprintf("rejected: %v", err))
		return "", err
	}
	return id, nil
}

// run executes one job on a worker and reports the outcome to the job store.
// Any fault, including a panic in the computation, becomes the job's error
// status; the worker itself keeps serving.
func (s *Stats) run(ctx context.Context, id string, req models.RequestSpec) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.S().Named("stats_service").Errorw("computation panicked", "job_id", id, "panic", rec)
			s.jobs.CompleteError(id, fmt.Sprintf("computation panicked: %v", rec))
		}
	}()

	zap.S().Named("stats_service").Infow("processing job", "job_id", id)

	result, err := s.compute(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			s.jobs.CompleteError(id, shutdownMessage)
			return
		}
		s.jobs.CompleteError(id, err.Error())
		return
	}
	s.jobs.CompleteSuccess(id, result)
}

// Result returns the stored record for a job.
func (s *Stats) Result(id string) (models.JobRecord, error) {
	return s.jobs.Get(id)
}

// Jobs lists all known jobs in submission order.
func (s *Stats) Jobs() []models.JobRecord {
	return s.jobs.List()
}

// NumRunning returns the number of jobs currently executing on workers.
func (s *Stats) NumRunning() int {
	return s.currentPool().Running()
}

// Busy reports whether any work is queued or executing.
func (s *Stats) Busy() bool {
	return !s.currentPool().Idle()
}

// Draining reports whether shutdown has begun on the current pool.
func (s *Stats) Draining() bool {
	return s.currentPool().Closed()
}

// InitiateShutdown stops accepting submissions and drains the pool within
// the configured grace period. On timeout every job still in flight is
// force-completed as an error. It blocks until the drain finishes or the
// grace period elapses, and is safe to call more than once.
func (s *Stats) InitiateShutdown() {
	pool := s.currentPool()
	log := zap.S().Named("stats_service")
	log.Infow("graceful shutdown initiated", "running", pool.Running(), "pending", pool.Pending())

	ctx := context.Background()
	if s.grace > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.grace)
		defer cancel()
	} else {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		cancel()
	}

	if err := pool.Shutdown(ctx); err != nil {
		n := s.jobs.FailActive(shutdownMessage)
		log.Warnw("shutdown grace period elapsed", "failed_jobs", n)
		return
	}
	log.Info("worker pool drained")
}

// Restart replaces a shut-down pool with a fresh one. It reports false when
// the current pool is still accepting work.
func (s *Stats) Restart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pool.Closed() {
		return false
	}
	s.pool = s.newPool()
	zap.S().Named("stats_service").Info("worker pool restarted")
	return true
}

func (s *Stats) currentPool() *scheduler.Scheduler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool
}

func validate(req models.RequestSpec) error {
	if req.Op == "" {
		return srvErrors.NewValidationError("op", "is required")
	}
	if req.Question == "" {
		return srvErrors.NewValidationError("question", "is required")
	}
	if req.Op.NeedsState() && req.State == "" {
		return srvErrors.NewValidationError("state", "is required")
	}
	return nil
}
