// Package handlers implements the HTTP API layer of the statistics service.
//
// Handlers delegate business logic to the services layer and focus on
// request validation, response formatting, and HTTP semantics. All handlers
// are methods on a single Handler struct holding the service dependencies.
//
// # API Endpoints
//
// Statistics submissions (each returns a job id immediately; results are
// retrieved by polling):
//
//	┌────────┬───────────────────────────────┬─────────────────────────────────────┐
//	│ Method │ Endpoint                      │ Computation                         │
//	├────────┼───────────────────────────────┼─────────────────────────────────────┤
//	│ POST   │ /api/states_mean              │ Mean per state, ascending           │
//	│ POST   │ /api/state_mean               │ Mean for one state                  │
//	│ POST   │ /api/best5                    │ Five best-performing states         │
//	│ POST   │ /api/worst5                   │ Five worst-performing states        │
//	│ POST   │ /api/global_mean              │ National mean                       │
//	│ POST   │ /api/diff_from_mean           │ Global minus state mean, per state  │
//	│ POST   │ /api/state_diff_from_mean     │ Global minus mean for one state     │
//	│ POST   │ /api/mean_by_category         │ Mean per (state, category, segment) │
//	│ POST   │ /api/state_mean_by_category   │ Category breakdown for one state    │
//	└────────┴───────────────────────────────┴─────────────────────────────────────┘
//
// Job tracking:
//
//	┌────────┬───────────────────────────┬──────────────────────────────────────┐
//	│ Method │ Endpoint                  │ Description                          │
//	├────────┼───────────────────────────┼──────────────────────────────────────┤
//	│ GET    │ /api/get_results/:job_id  │ Poll one job's status/result         │
//	│ GET    │ /api/jobs                 │ List all jobs with statuses          │
//	│ GET    │ /api/num_jobs             │ Count of actively executing jobs     │
//	└────────┴───────────────────────────┴──────────────────────────────────────┘
//
// Lifecycle:
//
//	┌────────┬──────────────────────────┬───────────────────────────────────────┐
//	│ Method │ Endpoint                 │ Description                           │
//	├────────┼──────────────────────────┼───────────────────────────────────────┤
//	│ GET    │ /api/graceful_shutdown   │ Drain the pool, reject new work       │
//	│ GET    │ /api/restart             │ Rebuild the pool after a shutdown     │
//	│ GET    │ /, /index                │ Route listing                         │
//	└────────┴──────────────────────────┴───────────────────────────────────────┘
//
// # Error Mapping
//
//	┌──────────────────────┬────────┬────────────────────────────────────────┐
//	│ Error                │ Status │ Body                                   │
//	├──────────────────────┼────────┼────────────────────────────────────────┤
//	│ missing field        │ 400    │ {"status":"error"}                     │
//	│ shutdown in progress │ 400    │ {"status":"error","reason":            │
//	│                      │        │  "shutting down"}                      │
//	│ pool saturated       │ 429    │ {"status":"error","reason":            │
//	│                      │        │  "pool saturated"}                     │
//	│ unknown job id       │ 400    │ {"status":"error","reason":            │
//	│                      │        │  "Invalid job_id"}                     │
//	└──────────────────────┴────────┴────────────────────────────────────────┘
//
// Computation failures are never synchronous: they surface through polling
// as {"status":"error","reason":...}.
package handlers
