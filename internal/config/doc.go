// Package config defines the configuration structure for the statistics
// service.
//
// Configuration is organized into logical sections (Server, Pool, Dataset)
// plus top-level logging settings, with defaults applied through struct
// tags (creasty/defaults) and values bound through viper.
//
// # Server Configuration
//
//	┌───────────┬─────────┬────────────────────────────────────────┐
//	│ Field     │ Default │ Description                            │
//	├───────────┼─────────┼────────────────────────────────────────┤
//	│ Mode      │ "dev"   │ Server mode: "prod" or "dev"           │
//	│ HTTPPort  │ 8080    │ HTTP server listen port                │
//	└───────────┴─────────┴────────────────────────────────────────┘
//
// # Pool Configuration
//
//	┌─────────────────────┬─────────┬──────────────────────────────────────────┐
//	│ Field               │ Default │ Description                              │
//	├─────────────────────┼─────────┼──────────────────────────────────────────┤
//	│ NumWorkers          │ 0       │ Worker count (0 = one per CPU)           │
//	│ MaxPending          │ 0       │ Pending queue bound (0 = unbounded)      │
//	│ ShutdownGracePeriod │ 10s     │ Drain deadline on shutdown               │
//	│ SubmitRate          │ 0       │ Admission rate, jobs/s (0 = disabled)    │
//	│ SubmitBurst         │ 1       │ Admission burst size                     │
//	└─────────────────────┴─────────┴──────────────────────────────────────────┘
//
// # Dataset Configuration
//
//	┌─────────┬──────────────────────────────────────────────┬─────────────────┐
//	│ Field   │ Default                                      │ Description     │
//	├─────────┼──────────────────────────────────────────────┼─────────────────┤
//	│ CSVPath │ ./nutrition_activity_obesity_usa_subset.csv  │ Dataset source  │
//	└─────────┴──────────────────────────────────────────────┴─────────────────┘
//
// # Environment Variables
//
// Every key is also bound to an environment variable with the NUTRISTATS_
// prefix and dots replaced by underscores, e.g.
//
//	NUTRISTATS_POOL_NUM_WORKERS=8
//	NUTRISTATS_DATASET_CSV_PATH=/data/nutrition.csv
//
// # Debug Logging
//
// DebugMap() returns a flat map of the effective configuration suitable for
// structured logging at startup:
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
