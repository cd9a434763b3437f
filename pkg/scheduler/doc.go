// Package scheduler implements the worker pool behind asynchronous job
// execution.
//
// The scheduler manages a fixed pool of workers pulling work from a shared
// pending queue. Work is submitted via Submit, which returns immediately:
// the caller tracks completion elsewhere (the job store), not through the
// scheduler.
//
// # Core Components
//
// Scheduler:
//   - Manages a pool of N workers (configured at creation)
//   - Maintains a pending queue, optionally bounded
//   - Runs an event loop dispatching work to available workers
//   - Supports draining shutdown via Shutdown(ctx)
//
// Worker:
//   - Executes a single work function
//   - Returns to the worker pool after completion
//   - Recovers from panics so a faulty work item never kills the pool
//
// # Work Execution Flow
//
//  1. Client calls Submit(fn).
//  2. The event loop either rejects (shutting down, queue full) or pushes
//     the request onto the pending queue and replies nil.
//  3. dispatch() pairs available workers with pending work: while both
//     queues are non-empty, pop one of each and launch worker.Work(fn).
//  4. The worker runs fn(ctx), signals completion through the done channel
//     and rejoins the pool, which triggers another dispatch pass.
//
// FIFO order holds for dequeueing, but completion order across workers is
// unordered: durations vary, so callers must never assume submission-order
// completion.
//
// # Event Loop
//
//	for {
//	    select {
//	    case req := <-s.submit:  // new work (or synchronous rejection)
//	    case <-s.done:           // worker completed, try queued work
//	    case <-s.drain:          // shutdown: finish queue, wait for workers
//	    }
//	}
//
// # Shutdown
//
// Shutdown(ctx) moves the scheduler from accepting to draining: Submit fails
// with PoolClosedError, already-queued items remain eligible, and the event
// loop keeps dispatching until the queue is empty and every worker is idle.
// If ctx expires first, the workers' shared context is cancelled so
// interruptible work returns early, and ShutdownTimeoutError is reported to
// the caller; the drain still completes in the background. Shutdown is
// idempotent.
package scheduler
