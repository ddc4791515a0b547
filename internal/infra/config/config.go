package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the dashboard shell.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Backend   BackendConfig   `yaml:"backend"`
	Session   SessionConfig   `yaml:"session"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Search    SearchConfig    `yaml:"search"`
	Notify    NotifyConfig    `yaml:"notify"`
	Export    ExportConfig    `yaml:"export"`
}

// HTTPConfig controls the local shell server.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// BackendConfig points at the remote health service.
type BackendConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// Session backends.
const (
	SessionMemory   = "memory"
	SessionFile     = "file"
	SessionValkey   = "valkey"
	SessionPostgres = "postgres"
)

// SessionConfig selects where the credential and identity are persisted.
type SessionConfig struct {
	Backend       string         `yaml:"backend"`
	Profile       string         `yaml:"profile"`
	FilePath      string         `yaml:"filePath"`
	EncryptionKey string         `yaml:"encryptionKey"`
	Valkey        ValkeyConfig   `yaml:"valkey"`
	Postgres      PostgresConfig `yaml:"postgres"`
}

// ValkeyConfig contains connection information for the valkey session store.
type ValkeyConfig struct {
	Addr   string `yaml:"addr"`
	Prefix string `yaml:"prefix"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// DashboardConfig sizes the data windows.
type DashboardConfig struct {
	TrendDays         int `yaml:"trendDays"`
	ForecastDays      int `yaml:"forecastDays"`
	HistoryDays       int `yaml:"historyDays"`
	ReminderThreshold int `yaml:"reminderThreshold"`
}

// SearchConfig drives the friend search debounce.
type SearchConfig struct {
	MinQueryLength int           `yaml:"minQueryLength"`
	Debounce       time.Duration `yaml:"debounce"`
}

// NotifyConfig controls toast lifetime.
type NotifyConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// Export sinks.
const (
	SinkMemory = "memory"
	SinkDir    = "dir"
	SinkS3     = "s3"
)

// ExportConfig selects where exported reports are kept.
type ExportConfig struct {
	Sink string   `yaml:"sink"`
	Dir  string   `yaml:"dir"`
	S3   S3Config `yaml:"s3"`
}

// S3Config addresses an S3-compatible bucket.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
}

// Load reads .env, then the YAML file, then environment overrides.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("BACKEND_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("SESSION_BACKEND"); v != "" {
		cfg.Session.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("SESSION_PROFILE"); v != "" {
		cfg.Session.Profile = v
	}
	if v := os.Getenv("SESSION_FILE"); v != "" {
		cfg.Session.FilePath = v
	}
	if v := os.Getenv("SESSION_ENCRYPTION_KEY"); v != "" {
		cfg.Session.EncryptionKey = v
	}
	if v := os.Getenv("SESSION_VALKEY_ADDR"); v != "" {
		cfg.Session.Valkey.Addr = v
	}
	if v := os.Getenv("SESSION_POSTGRES_DSN"); v != "" {
		cfg.Session.Postgres.DSN = v
	}
	if v := os.Getenv("SESSION_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Session.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("DASHBOARD_TREND_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Dashboard.TrendDays = parsed
		}
	}
	if v := os.Getenv("DASHBOARD_FORECAST_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Dashboard.ForecastDays = parsed
		}
	}
	if v := os.Getenv("DASHBOARD_HISTORY_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Dashboard.HistoryDays = parsed
		}
	}
	if v := os.Getenv("SEARCH_DEBOUNCE"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Search.Debounce = parsed
		}
	}
	if v := os.Getenv("NOTIFY_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Notify.TTL = parsed
		}
	}
	if v := os.Getenv("EXPORT_SINK"); v != "" {
		cfg.Export.Sink = strings.ToLower(v)
	}
	if v := os.Getenv("EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("EXPORT_S3_ENDPOINT"); v != "" {
		cfg.Export.S3.Endpoint = v
	}
	if v := os.Getenv("EXPORT_S3_ACCESS_KEY"); v != "" {
		cfg.Export.S3.AccessKey = v
	}
	if v := os.Getenv("EXPORT_S3_SECRET_KEY"); v != "" {
		cfg.Export.S3.SecretKey = v
	}
	if v := os.Getenv("EXPORT_S3_BUCKET"); v != "" {
		cfg.Export.S3.Bucket = v
	}
	if v := os.Getenv("EXPORT_S3_REGION"); v != "" {
		cfg.Export.S3.Region = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      "127.0.0.1:3000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:8080/api",
		},
		Session: SessionConfig{
			Backend:  SessionFile,
			Profile:  "default",
			FilePath: ".healthdash/session.yaml",
			Valkey: ValkeyConfig{
				Prefix: "healthdash",
			},
			Postgres: PostgresConfig{
				MaxConns: 2,
			},
		},
		Dashboard: DashboardConfig{
			TrendDays:         14,
			ForecastDays:      3,
			HistoryDays:       30,
			ReminderThreshold: 50,
		},
		Search: SearchConfig{
			MinQueryLength: 2,
			Debounce:       300 * time.Millisecond,
		},
		Notify: NotifyConfig{
			TTL: 3 * time.Second,
		},
		Export: ExportConfig{
			Sink: SinkMemory,
			Dir:  "exports",
			S3: S3Config{
				Region: "auto",
				Prefix: "reports",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("backend.baseUrl must be an absolute URL")
	}
	switch c.Session.Backend {
	case SessionMemory:
	case SessionFile:
		if strings.TrimSpace(c.Session.FilePath) == "" {
			return errors.New("session.filePath cannot be empty for the file backend")
		}
	case SessionValkey:
		if strings.TrimSpace(c.Session.Valkey.Addr) == "" {
			return errors.New("session.valkey.addr cannot be empty for the valkey backend")
		}
	case SessionPostgres:
		if strings.TrimSpace(c.Session.Postgres.DSN) == "" {
			return errors.New("session.postgres.dsn cannot be empty for the postgres backend")
		}
	default:
		return fmt.Errorf("session.backend %q is not one of memory, file, valkey, postgres", c.Session.Backend)
	}
	if strings.TrimSpace(c.Session.Profile) == "" {
		return errors.New("session.profile cannot be empty")
	}
	if c.Dashboard.TrendDays <= 0 || c.Dashboard.ForecastDays <= 0 || c.Dashboard.HistoryDays <= 0 {
		return errors.New("dashboard windows must be positive")
	}
	if c.Dashboard.ReminderThreshold < 0 {
		return errors.New("dashboard.reminderThreshold cannot be negative")
	}
	if c.Search.MinQueryLength <= 0 {
		return errors.New("search.minQueryLength must be positive")
	}
	if c.Search.Debounce <= 0 {
		return errors.New("search.debounce must be positive")
	}
	if c.Notify.TTL < 0 {
		return errors.New("notify.ttl cannot be negative")
	}
	switch c.Export.Sink {
	case SinkMemory:
	case SinkDir:
		if strings.TrimSpace(c.Export.Dir) == "" {
			return errors.New("export.dir cannot be empty for the dir sink")
		}
	case SinkS3:
		if strings.TrimSpace(c.Export.S3.Endpoint) == "" || strings.TrimSpace(c.Export.S3.Bucket) == "" {
			return errors.New("export.s3.endpoint and export.s3.bucket are required for the s3 sink")
		}
	default:
		return fmt.Errorf("export.sink %q is not one of memory, dir, s3", c.Export.Sink)
	}
	return nil
}
