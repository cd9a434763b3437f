package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/healthdata/nutristats/internal/config"
)

// RegisterFn attaches the application routes to the engine.
type RegisterFn func(e *gin.Engine)

// Server wraps the gin engine and the underlying http.Server so the hosting
// application can start it and stop it gracefully.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
}

func NewServer(cfg *config.Configuration, registerFn RegisterFn) *Server {
	if cfg.Server.Mode == config.ServerModeProd {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(RequestID())
	engine.Use(Logger())
	engine.Use(ginzap.RecoveryWithZap(zap.L().Named("http"), true))

	registerFn(engine)

	return &Server{
		engine: engine,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start blocks serving requests until Stop is called or the listener fails.
// It returns http.ErrServerClosed after a graceful stop.
func (s *Server) Start(ctx context.Context) error {
	zap.S().Named("server").Infow("listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down gracefully, waiting for in-flight requests
// within the bounds of ctx.
func (s *Server) Stop(ctx context.Context) error {
	zap.S().Named("server").Info("stopping")
	return s.httpServer.Shutdown(ctx)
}
