// Package server provides the HTTP server for the statistics service.
//
// The server uses the Gin web framework with two modes of operation:
// development (gin debug mode) and production (gin release mode).
//
// # Middleware Stack
//
//	┌─────────────────────────────────────────────────────────┐
//	│  RequestID (uuid per request, echoed in X-Request-Id)   │
//	│  Logger (request/response logging via zap)              │
//	│  Recovery (panic recovery with zap logging)             │
//	└─────────────────────────────────────────────────────────┘
//
// # Server Lifecycle
//
// Creation:
//
//	srv := server.NewServer(cfg, func(e *gin.Engine) {
//	    handlers.RegisterRoutes(e, handler)
//	})
//
// The register callback receives the bare engine so routes can live both at
// the root (index) and under /api.
//
// Starting:
//
//	// Blocks until error or shutdown
//	err := srv.Start(ctx)
//
// Stopping:
//
//	srv.Stop(ctx)
//
// performs a graceful shutdown, waiting for in-flight requests to complete
// within the bounds of ctx. Start returns http.ErrServerClosed afterwards.
package server
