package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/healthdata/nutristats/internal/config"
	"github.com/healthdata/nutristats/internal/handlers"
	"github.com/healthdata/nutristats/internal/jobs"
	"github.com/healthdata/nutristats/internal/server"
	"github.com/healthdata/nutristats/internal/services"
	"github.com/healthdata/nutristats/internal/store"
	"github.com/healthdata/nutristats/pkg/scheduler"
)

func newServeCommand() *cobra.Command {
	v := newViper()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the statistics API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("mode", config.ServerModeDev, "server mode (dev or prod)")
	flags.Int("port", 8080, "http listen port")
	flags.Int("workers", 0, "worker pool size (0 = one per cpu)")
	flags.Int("max-pending", 0, "pending queue bound (0 = unbounded)")
	flags.Duration("grace-period", 10*time.Second, "shutdown drain deadline")
	flags.String("csv", "./nutrition_activity_obesity_usa_subset.csv", "dataset csv path")
	flags.String("log-level", "info", "log level")
	flags.String("log-format", "console", "log format (console or json)")

	must(v.BindPFlag("server.mode", flags.Lookup("mode")))
	must(v.BindPFlag("server.http_port", flags.Lookup("port")))
	must(v.BindPFlag("pool.num_workers", flags.Lookup("workers")))
	must(v.BindPFlag("pool.max_pending", flags.Lookup("max-pending")))
	must(v.BindPFlag("pool.shutdown_grace_period", flags.Lookup("grace-period")))
	must(v.BindPFlag("dataset.csv_path", flags.Lookup("csv")))
	must(v.BindPFlag("log_level", flags.Lookup("log-level")))
	must(v.BindPFlag("log_format", flags.Lookup("log-format")))

	return cmd
}

func serve(ctx context.Context, cfg *config.Configuration) error {
	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	log := zap.S().Named("main")
	log.Infow("configuration loaded", "config", cfg.DebugMap())

	db, err := store.NewDB(":memory:")
	if err != nil {
		return err
	}
	defer db.Close()

	st := store.NewStore(db)
	rows, err := st.Dataset().Load(ctx, cfg.Dataset.CSVPath)
	if err != nil {
		return err
	}
	log.Infow("dataset loaded", "rows", rows, "path", cfg.Dataset.CSVPath)

	var limiter *rate.Limiter
	if cfg.Pool.SubmitRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Pool.SubmitRate), cfg.Pool.SubmitBurst)
	}

	newPool := func() *scheduler.Scheduler {
		return scheduler.New(cfg.Pool.NumWorkers, cfg.Pool.MaxPending)
	}
	statsSrv := services.NewStatsService(
		jobs.NewStore(),
		st.Dataset().Compute,
		newPool,
		cfg.Pool.ShutdownGracePeriod,
		limiter,
	)

	handler := handlers.New(statsSrv)
	srv := server.NewServer(cfg, func(e *gin.Engine) {
		handlers.RegisterRoutes(e, handler)
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("termination signal received")
		statsSrv.InitiateShutdown()

		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Stop(stopCtx)
	})

	return g.Wait()
}

func buildLogger(cfg *config.Configuration) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var zapCfg zap.Config
	if cfg.LogFormat == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level
	return zapCfg.Build()
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
