package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/healthdata/nutristats/api/v1"
	"github.com/healthdata/nutristats/internal/models"
	srvErrors "github.com/healthdata/nutristats/pkg/errors"
)

// StatesMean submits a mean-per-state computation
// (POST /api/states_mean)
func (h *Handler) StatesMean(c *gin.Context) {
	h.submit(c, models.OpStatesMean)
}

// StateMean submits a single-state mean computation
// (POST /api/state_mean)
func (h *Handler) StateMean(c *gin.Context) {
	h.submit(c, models.OpStateMean)
}

// BestFive submits a best-five-states ranking
// (POST /api/best5)
func (h *Handler) BestFive(c *gin.Context) {
	h.submit(c, models.OpBest5)
}

// WorstFive submits a worst-five-states ranking
// (POST /api/worst5)
func (h *Handler) WorstFive(c *gin.Context) {
	h.submit(c, models.OpWorst5)
}

// GlobalMean submits a national mean computation
// (POST /api/global_mean)
func (h *Handler) GlobalMean(c *gin.Context) {
	h.submit(c, models.OpGlobalMean)
}

// DiffFromMean submits a per-state difference-from-average computation
// (POST /api/diff_from_mean)
func (h *Handler) DiffFromMean(c *gin.Context) {
	h.submit(c, models.OpDiffFromMean)
}

// StateDiffFromMean submits a single-state difference-from-average computation
// (POST /api/state_diff_from_mean)
func (h *Handler) StateDiffFromMean(c *gin.Context) {
	h.submit(c, models.OpStateDiffFromMean)
}

// MeanByCategory submits a per-category breakdown for every state
// (POST /api/mean_by_category)
func (h *Handler) MeanByCategory(c *gin.Context) {
	h.submit(c, models.OpMeanByCategory)
}

// StateMeanByCategory submits a per-category breakdown for one state
// (POST /api/state_mean_by_category)
func (h *Handler) StateMeanByCategory(c *gin.Context) {
	h.submit(c, models.OpStateMeanByCategory)
}

func (h *Handler) submit(c *gin.Context, op models.Operation) {
	log := zap.S().Named("stats_handler")

	var body v1.StatsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		log.Infow("malformed request body", "op", string(op), "error", err)
		c.JSON(http.StatusBadRequest, v1.NewErrorResponse(""))
		return
	}

	req := models.RequestSpec{Op: op, Question: body.Question, State: body.State}
	id, err := h.statsSrv.Submit(req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, v1.JobSubmitted{JobID: id})
	case srvErrors.IsValidationError(err):
		log.Infow("missing field in request body", "op", string(op), "error", err)
		c.JSON(http.StatusBadRequest, v1.NewErrorResponse(""))
	case srvErrors.IsPoolClosedError(err):
		c.JSON(http.StatusBadRequest, v1.NewErrorResponse("shutting down"))
	case srvErrors.IsPoolSaturatedError(err):
		c.JSON(http.StatusTooManyRequests, v1.NewErrorResponse("pool saturated"))
	default:
		log.Errorw("failed to submit job", "op", string(op), "error", err)
		c.JSON(http.StatusInternalServerError, v1.NewErrorResponse("internal error"))
	}
}
