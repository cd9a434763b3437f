package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/healthdata/nutristats/internal/services"
)

type Handler struct {
	statsSrv *services.Stats
}

func New(statsSrv *services.Stats) *Handler {
	return &Handler{
		statsSrv: statsSrv,
	}
}

// RegisterRoutes attaches every endpoint to the engine. The index route
// lives at the root; everything else is under /api, matching the original
// surface.
func RegisterRoutes(e *gin.Engine, h *Handler) {
	e.Use(ExposeEngine(e))
	e.GET("/", h.Index)
	e.GET("/index", h.Index)

	api := e.Group("/api")
	api.POST("/states_mean", h.StatesMean)
	api.POST("/state_mean", h.StateMean)
	api.POST("/best5", h.BestFive)
	api.POST("/worst5", h.WorstFive)
	api.POST("/global_mean", h.GlobalMean)
	api.POST("/diff_from_mean", h.DiffFromMean)
	api.POST("/state_diff_from_mean", h.StateDiffFromMean)
	api.POST("/mean_by_category", h.MeanByCategory)
	api.POST("/state_mean_by_category", h.StateMeanByCategory)

	api.GET("/get_results/:job_id", h.GetResults)
	api.GET("/jobs", h.ListJobs)
	api.GET("/num_jobs", h.NumJobs)

	api.GET("/graceful_shutdown", h.GracefulShutdown)
	api.GET("/restart", h.Restart)
}
