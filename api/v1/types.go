package v1

import (
	"github.com/healthdata/nutristats/internal/models"
)

// StatsRequest is the JSON body of every statistics submission. State is
// only required by the state-scoped operations.
type StatsRequest struct {
	Question string `json:"question"`
	State    string `json:"state"`
}

// JobSubmitted is the immediate reply to an accepted submission.
type JobSubmitted struct {
	JobID string `json:"job_id"`
}

// ErrorResponse mirrors the error shape of the original API: a bare status
// plus an optional reason.
type ErrorResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func NewErrorResponse(reason string) ErrorResponse {
	return ErrorResponse{Status: "error", Reason: reason}
}

// JobResult is the polling reply for one job.
type JobResult struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// NewJobResultFromModel converts a stored record to the polling reply.
func NewJobResultFromModel(rec models.JobRecord) JobResult {
	switch rec.Status {
	case models.JobStatusDone:
		return JobResult{Status: "done", Data: rec.Result}
	case models.JobStatusError:
		return JobResult{Status: "error", Reason: rec.Error}
	default:
		return JobResult{Status: "running"}
	}
}

// JobList is the reply of the job listing endpoint: one {id: status} object
// per job, in submission order.
type JobList struct {
	Status string              `json:"status"`
	Data   []map[string]string `json:"data"`
}

func NewJobListFromModels(recs []models.JobRecord) JobList {
	data := make([]map[string]string, 0, len(recs))
	for _, rec := range recs {
		data = append(data, map[string]string{rec.ID: rec.Status.Value()})
	}
	return JobList{Status: "done", Data: data}
}

// NumJobs is the reply of the running-job counter endpoint.
type NumJobs struct {
	Status  string `json:"status"`
	NumJobs int    `json:"num_jobs"`
}

// PoolStatus is the reply of the lifecycle endpoints.
type PoolStatus struct {
	Status string `json:"status"`
}
