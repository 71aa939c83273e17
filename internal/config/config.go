package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration, loaded from an optional
// config.yaml overlaid by BRANDPULSE_* environment variables.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PathsConfig locates the source workbooks and output directories.
type PathsConfig struct {
	MarketingFile     string `yaml:"marketing_file" envconfig:"MARKETING_FILE" default:"data/MarketingDashboard.xlsx"`
	BrandStrengthFile string `yaml:"brand_strength_file" envconfig:"BRAND_STRENGTH_FILE" default:"data/BrandStrength.xlsx"`
	WebDir            string `yaml:"web_dir" envconfig:"WEB_DIR" default:"web"`
	ReportsDir        string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
}

// RateLimitConfig contains API rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"50"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"25"`
}

// Load builds the configuration: file values first (when config.yaml
// exists), environment variables on top, then validation.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("BRANDPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path := findConfigFile(); path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
		cfg = merge(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge fills env fields still at their zero value from the file config.
// Environment always wins where both are set.
func merge(file, env Config) Config {
	if env.Server.Port == 0 {
		env.Server.Port = file.Server.Port
	}
	if env.Server.ReadTimeout == 0 {
		env.Server.ReadTimeout = file.Server.ReadTimeout
	}
	if env.Server.WriteTimeout == 0 {
		env.Server.WriteTimeout = file.Server.WriteTimeout
	}
	if env.Server.IdleTimeout == 0 {
		env.Server.IdleTimeout = file.Server.IdleTimeout
	}
	if env.Server.ShutdownTimeout == 0 {
		env.Server.ShutdownTimeout = file.Server.ShutdownTimeout
	}
	if env.Logging.Level == "" {
		env.Logging.Level = file.Logging.Level
	}
	if env.Logging.Output == "" {
		env.Logging.Output = file.Logging.Output
	}
	if env.Logging.FilePath == "" {
		env.Logging.FilePath = file.Logging.FilePath
	}
	if env.Paths.MarketingFile == "" {
		env.Paths.MarketingFile = file.Paths.MarketingFile
	}
	if env.Paths.BrandStrengthFile == "" {
		env.Paths.BrandStrengthFile = file.Paths.BrandStrengthFile
	}
	if env.Paths.WebDir == "" {
		env.Paths.WebDir = file.Paths.WebDir
	}
	if env.Paths.ReportsDir == "" {
		env.Paths.ReportsDir = file.Paths.ReportsDir
	}
	if env.RateLimit.RPS == 0 {
		env.RateLimit.RPS = file.RateLimit.RPS
	}
	if env.RateLimit.Burst == 0 {
		env.RateLimit.Burst = file.RateLimit.Burst
	}
	return env
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if c.Paths.MarketingFile == "" {
		return fmt.Errorf("marketing workbook path must be set")
	}
	if c.Paths.BrandStrengthFile == "" {
		return fmt.Errorf("brand strength workbook path must be set")
	}
	if c.RateLimit.Enabled && c.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive when enabled")
	}
	return nil
}

// findConfigFile probes the common config file locations.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// Default returns the configuration used when neither file nor environment
// overrides anything.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			MarketingFile:     "data/MarketingDashboard.xlsx",
			BrandStrengthFile: "data/BrandStrength.xlsx",
			WebDir:            "web",
			ReportsDir:        "reports",
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     50,
			Burst:   25,
		},
	}
}
