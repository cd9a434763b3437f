// Package services implements the business logic between the HTTP layer and
// the worker pool.
//
// # Stats Service
//
// The Stats service is the dispatcher of the system: it validates requests,
// records them in the job store, and schedules the computation onto the
// worker pool.
//
//	HTTP handler ──Submit──▶ Stats ──Create──▶ job store
//	                           │
//	                           └──Submit(closure)──▶ scheduler
//	                                                    │
//	                            worker ──compute──▶ dataset store
//	                               │
//	                               └──CompleteSuccess/Error──▶ job store
//
// Submission is non-blocking: Submit returns the job identifier as soon as
// the work is queued. Completion is observed only by polling the job store
// (Result, Jobs, NumRunning).
//
// # Failure Containment
//
// A failing or panicking computation is converted into the job's error
// status inside the worker closure; it never crashes a worker and never
// affects any other job.
//
// # Lifecycle
//
// InitiateShutdown drains the pool within the configured grace period; when
// the grace period elapses, the workers' context is cancelled and every job
// still in flight is force-completed with "terminated during shutdown".
// Restart builds a fresh pool after a shutdown so the service can resume
// accepting work without a process restart.
package services
