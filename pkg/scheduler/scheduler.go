package scheduler

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	srvErrors "github.com/healthdata/nutristats/pkg/errors"
)

type queue[T any] []T

func (wq *queue[T]) Len() int { return len(*wq) }

func (wq *queue[T]) Pop() T {
	old := *wq
	x := old[0]
	*wq = old[1:]
	return x
}

func (wq *queue[T]) Push(t T) {
	*wq = append(*wq, t)
}

type workRequest struct {
	fn Work
}

type submitRequest struct {
	fn    Work
	reply chan error
}

type worker struct {
	done    chan struct{}
	wg      *sync.WaitGroup
	running *atomic.Int64
}

func (w worker) Work(ctx context.Context, r workRequest) {
	w.running.Add(1)
	defer func() {
		if rec := recover(); rec != nil {
			zap.S().Named("scheduler").Errorw("work panicked", "panic", rec)
		}
		w.running.Add(-1)
		w.done <- struct{}{}
		w.wg.Done()
	}()

	r.fn(ctx)
}

// Scheduler bounds concurrent execution to a fixed number of workers pulling
// from a shared pending queue. Submission never blocks on work execution:
// Submit either enqueues and returns nil, or rejects synchronously when the
// scheduler is shutting down or the queue is full.
type Scheduler struct {
	nbWorkers  int
	maxPending int

	workers   *queue[worker]
	workQueue *queue[workRequest]

	submit  chan submitRequest
	done    chan struct{}
	drain   chan struct{}
	drained chan struct{}
	closing chan struct{}

	closed  atomic.Bool
	running atomic.Int64
	pending atomic.Int64

	mainCtx    context.Context
	mainCancel context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

// New creates a scheduler with nbWorkers workers. nbWorkers <= 0 defaults to
// the number of CPUs. maxPending bounds the pending queue; 0 means unbounded.
func New(nbWorkers, maxPending int) *Scheduler {
	if nbWorkers <= 0 {
		nbWorkers = runtime.NumCPU()
	}
	done := make(chan struct{}, nbWorkers)
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		nbWorkers:  nbWorkers,
		maxPending: maxPending,
		workers:    &queue[worker]{},
		workQueue:  &queue[workRequest]{},
		submit:     make(chan submitRequest),
		done:       done,
		drain:      make(chan struct{}),
		drained:    make(chan struct{}),
		closing:    make(chan struct{}),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	for range nbWorkers {
		s.workers.Push(s.newWorker())
	}
	go s.run()
	return s
}

func (s *Scheduler) newWorker() worker {
	return worker{done: s.done, wg: &s.wg, running: &s.running}
}

// Submit enqueues fn and returns immediately. It returns PoolClosedError
// after Shutdown has begun and PoolSaturatedError when the bounded queue is
// full.
func (s *Scheduler) Submit(fn Work) error {
	if s.closed.Load() {
		return srvErrors.NewPoolClosedError()
	}

	req := submitRequest{fn: fn, reply: make(chan error, 1)}
	select {
	case s.submit <- req:
		return <-req.reply
	case <-s.closing:
		return srvErrors.NewPoolClosedError()
	}
}

// Running returns the number of work items currently executing.
func (s *Scheduler) Running() int {
	return int(s.running.Load())
}

// Pending returns the number of work items queued but not yet started.
func (s *Scheduler) Pending() int {
	return int(s.pending.Load())
}

// Closed reports whether Shutdown has begun.
func (s *Scheduler) Closed() bool {
	return s.closed.Load()
}

// Idle reports whether no work is queued or executing.
func (s *Scheduler) Idle() bool {
	return s.pending.Load() == 0 && s.running.Load() == 0
}

// Shutdown stops accepting submissions and waits for queued and in-flight
// work to finish. If ctx expires first, the workers' context is cancelled and
// ShutdownTimeoutError is returned; the event loop still drains in the
// background once the interrupted work returns.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.closing)
		s.drain <- struct{}{}
	})

	select {
	case <-s.drained:
		return nil
	case <-ctx.Done():
		s.mainCancel()
		return srvErrors.NewShutdownTimeoutError()
	}
}

// Drained returns a channel closed once every queued and in-flight work item
// has finished after Shutdown.
func (s *Scheduler) Drained() <-chan struct{} {
	return s.drained
}

func (s *Scheduler) run() {
	for {
		select {
		case req := <-s.submit:
			if s.maxPending > 0 && s.workQueue.Len() >= s.maxPending {
				req.reply <- srvErrors.NewPoolSaturatedError()
				continue
			}
			s.workQueue.Push(workRequest{fn: req.fn})
			s.pending.Add(1)
			req.reply <- nil
			s.dispatch()
		case <-s.done:
			s.workers.Push(s.newWorker())
			s.dispatch()
		case <-s.drain:
			// Queued items stay eligible during the drain: keep pairing
			// returning workers with the remaining queue until both are empty.
			for s.workQueue.Len() > 0 || s.workers.Len() < s.nbWorkers {
				<-s.done
				s.workers.Push(s.newWorker())
				s.dispatch()
			}
			s.wg.Wait()
			s.mainCancel()
			close(s.drained)
			return
		}
	}
}

// dispatch drains the workQueue as much as possible based on available
// workers.
func (s *Scheduler) dispatch() {
	for s.workers.Len() > 0 && s.workQueue.Len() > 0 {
		r := s.workQueue.Pop()
		s.pending.Add(-1)
		w := s.workers.Pop()
		s.wg.Add(1)
		go w.Work(s.mainCtx, r)
	}
}
