package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	v1 "github.com/healthdata/nutristats/api/v1"
)

// GracefulShutdown triggers an asynchronous drain of the worker pool and
// reports whether work is still outstanding
// (GET /api/graceful_shutdown)
func (h *Handler) GracefulShutdown(c *gin.Context) {
	busy := h.statsSrv.Busy()
	go h.statsSrv.InitiateShutdown()

	status := "done"
	if busy {
		status = "running"
	}
	c.JSON(http.StatusOK, v1.PoolStatus{Status: status})
}

// Restart replaces a shut-down worker pool with a fresh one
// (GET /api/restart)
func (h *Handler) Restart(c *gin.Context) {
	if h.statsSrv.Restart() {
		c.JSON(http.StatusOK, v1.PoolStatus{Status: "restarted"})
		return
	}
	c.JSON(http.StatusOK, v1.PoolStatus{Status: "running"})
}

// Index lists every registered route and its method
// (GET / and GET /index)
func (h *Handler) Index(c *gin.Context) {
	val, exists := c.Get(engineKey)
	engine, ok := val.(*gin.Engine)
	if !exists || !ok {
		c.String(http.StatusOK, "Hello, World!")
		return
	}

	routes := engine.Routes()
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})

	var b strings.Builder
	b.WriteString("Hello, World!\n Interact with the web server using one of the defined routes:\n")
	for _, r := range routes {
		fmt.Fprintf(&b, "<p>Endpoint: %q, Method: %q</p>", r.Path, r.Method)
	}
	c.String(http.StatusOK, b.String())
}

const engineKey = "engine"

// ExposeEngine makes the engine reachable from handlers that need the route
// table, like Index.
func ExposeEngine(e *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(engineKey, e)
		c.Next()
	}
}
