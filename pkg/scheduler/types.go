package scheduler

import (
	"context"
)

// Work is a unit of background work. The context is cancelled when the
// scheduler's shutdown grace period elapses; work that can be interrupted
// should honor it. Outcome reporting is the work's own responsibility.
type Work func(ctx context.Context)
