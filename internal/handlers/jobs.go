package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/healthdata/nutristats/api/v1"
	srvErrors "github.com/healthdata/nutristats/pkg/errors"
)

// GetResults returns the status and, when finished, the result of one job
// (GET /api/get_results/:job_id)
func (h *Handler) GetResults(c *gin.Context) {
	id := c.Param("job_id")

	rec, err := h.statsSrv.Result(id)
	if err != nil {
		if srvErrors.IsJobNotFoundError(err) {
			zap.S().Named("jobs_handler").Infow("invalid job id in request", "job_id", id)
			c.JSON(http.StatusBadRequest, v1.NewErrorResponse("Invalid job_id"))
			return
		}
		zap.S().Named("jobs_handler").Errorw("failed to look up job", "job_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, v1.NewErrorResponse("internal error"))
		return
	}

	c.JSON(http.StatusOK, v1.NewJobResultFromModel(rec))
}

// ListJobs returns every known job with its status, in submission order
// (GET /api/jobs)
func (h *Handler) ListJobs(c *gin.Context) {
	recs := h.statsSrv.Jobs()
	c.JSON(http.StatusOK, v1.NewJobListFromModels(recs))
}

// NumJobs returns how many jobs are actively executing
// (GET /api/num_jobs)
func (h *Handler) NumJobs(c *gin.Context) {
	n := h.statsSrv.NumRunning()
	zap.S().Named("jobs_handler").Infow("running jobs", "count", n)
	c.JSON(http.StatusOK, v1.NumJobs{Status: "done", NumJobs: n})
}
