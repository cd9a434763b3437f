package config

import (
	"fmt"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
)

const (
	ServerModeDev  = "dev"
	ServerModeProd = "prod"
)

// Configuration holds every runtime setting of the service, grouped by
// concern. Values come from defaults, then the optional config file, then
// NUTRISTATS_* environment variables, then flags.
type Configuration struct {
	Server    Server  `mapstructure:"server"`
	Pool      Pool    `mapstructure:"pool"`
	Dataset   Dataset `mapstructure:"dataset"`
	LogLevel  string  `mapstructure:"log_level" default:"info"`
	LogFormat string  `mapstructure:"log_format" default:"console"`
}

type Server struct {
	Mode     string `mapstructure:"mode" default:"dev"`
	HTTPPort int    `mapstructure:"http_port" default:"8080"`
}

type Pool struct {
	// NumWorkers is the fixed pool size; 0 means one worker per CPU.
	NumWorkers int `mapstructure:"num_workers" default:"0"`
	// MaxPending bounds the queue of jobs waiting for a worker; 0 means
	// unbounded.
	MaxPending int `mapstructure:"max_pending" default:"0"`
	// ShutdownGracePeriod bounds the drain on shutdown; 0 forces immediate
	// termination of in-flight work.
	ShutdownGracePeriod time.Duration `mapstructure:"shutdown_grace_period" default:"10s"`
	// SubmitRate and SubmitBurst configure admission control on submissions
	// (jobs per second); a zero rate disables it.
	SubmitRate  float64 `mapstructure:"submit_rate" default:"0"`
	SubmitBurst int     `mapstructure:"submit_burst" default:"1"`
}

type Dataset struct {
	CSVPath string `mapstructure:"csv_path" default:"./nutrition_activity_obesity_usa_subset.csv"`
}

// Load builds the configuration from the given viper instance, applying
// struct defaults for anything unset.
func Load(v *viper.Viper) (*Configuration, error) {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Configuration) Validate() error {
	if c.Server.Mode != ServerModeDev && c.Server.Mode != ServerModeProd {
		return fmt.Errorf("invalid server mode %q: must be %q or %q", c.Server.Mode, ServerModeDev, ServerModeProd)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port: %d", c.Server.HTTPPort)
	}
	if c.Pool.NumWorkers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Pool.NumWorkers)
	}
	if c.Pool.MaxPending < 0 {
		return fmt.Errorf("invalid max pending: %d", c.Pool.MaxPending)
	}
	if c.Dataset.CSVPath == "" {
		return fmt.Errorf("dataset csv path is required")
	}
	return nil
}

// DebugMap returns the configuration as a map safe for structured logging.
func (c *Configuration) DebugMap() map[string]any {
	return map[string]any{
		"server_mode":           c.Server.Mode,
		"http_port":             c.Server.HTTPPort,
		"num_workers":           c.Pool.NumWorkers,
		"max_pending":           c.Pool.MaxPending,
		"shutdown_grace_period": c.Pool.ShutdownGracePeriod.String(),
		"submit_rate":           c.Pool.SubmitRate,
		"submit_burst":          c.Pool.SubmitBurst,
		"csv_path":              c.Dataset.CSVPath,
		"log_level":             c.LogLevel,
		"log_format":            c.LogFormat,
	}
}
