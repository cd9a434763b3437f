package models

import (
	"fmt"
	"time"
)

// JobStatus represents the lifecycle state of a submitted job.
type JobStatus string

const (
	// JobStatusRunning - the job is queued or executing
	JobStatusRunning JobStatus = "running"
	// JobStatusDone - the job finished and its result is available
	JobStatusDone JobStatus = "done"
	// JobStatusError - the job failed; the error message is available
	JobStatusError JobStatus = "error"
)

func (s JobStatus) Value() string {
	return string(s)
}

// Terminal reports whether the status is final. A job never leaves a
// terminal status.
func (s JobStatus) Terminal() bool {
	return s == JobStatusDone || s == JobStatusError
}

// Operation identifies one of the statistical computations the API exposes.
type Operation string

const (
	OpStatesMean          Operation = "states_mean"
	OpStateMean           Operation = "state_mean"
	OpBest5               Operation = "best5"
	OpWorst5              Operation = "worst5"
	OpGlobalMean          Operation = "global_mean"
	OpDiffFromMean        Operation = "diff_from_mean"
	OpStateDiffFromMean   Operation = "state_diff_from_mean"
	OpMeanByCategory      Operation = "mean_by_category"
	OpStateMeanByCategory Operation = "state_mean_by_category"
)

// NeedsState reports whether the operation filters on a single state and
// therefore requires the state field of the request.
func (o Operation) NeedsState() bool {
	switch o {
	case OpStateMean, OpStateDiffFromMean, OpStateMeanByCategory:
		return true
	}
	return false
}

func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case OpStatesMean, OpStateMean, OpBest5, OpWorst5, OpGlobalMean,
		OpDiffFromMean, OpStateDiffFromMean, OpMeanByCategory, OpStateMeanByCategory:
		return Operation(s), nil
	default:
		return "", fmt.Errorf("invalid operation: %s", s)
	}
}

// RequestSpec holds the parameters of one statistical query. It is immutable
// once submitted.
type RequestSpec struct {
	Op       Operation
	Question string
	State    string
}

// JobRecord is the stored state of one submitted job. Records are owned by
// the job store; workers mutate them only through the store's complete
// operations.
type JobRecord struct {
	ID          string
	Seq         int64
	Request     RequestSpec
	Status      JobStatus
	Result      any
	Error       string
	CreatedAt   time.Time
	CompletedAt time.Time
}

// JobIDFromSeq formats a job identifier from its sequence number. The format
// is part of the public API: clients poll /api/get_results/job_id_<n>.
func JobIDFromSeq(seq int64) string {
	return fmt.Sprintf("job_id_%d", seq)
}
