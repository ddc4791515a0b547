package bootstrap

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/healthdash/internal/domain/account"
	"github.com/yanqian/healthdash/internal/domain/chart"
	"github.com/yanqian/healthdash/internal/domain/dashboard"
	"github.com/yanqian/healthdash/internal/domain/notify"
	"github.com/yanqian/healthdash/internal/domain/report"
	"github.com/yanqian/healthdash/internal/domain/session"
	"github.com/yanqian/healthdash/internal/domain/social"
	"github.com/yanqian/healthdash/internal/infra/artifactstore"
	"github.com/yanqian/healthdash/internal/infra/config"
	"github.com/yanqian/healthdash/internal/infra/gateway"
	"github.com/yanqian/healthdash/internal/infra/sessionstore"
	"github.com/yanqian/healthdash/pkg/metrics"
)

// CoreSet builds everything both front ends share.
var CoreSet = wire.NewSet(
	metrics.NewCallStats,
	ProvideSessionStore,
	session.NewManager,
	ProvideGatewayClient,
	gateway.NewAPI,
	ProvideNotifyCenter,
	ProvideDashboardConfig,
	dashboard.NewViews,
	chart.NewSurface,
	chart.NewManager,
	dashboard.NewAggregator,
	ProvideExportSink,
	report.NewExporter,
	ProvideSearchConfig,
	social.NewFlow,
	account.NewService,
	wire.Bind(new(gateway.Caller), new(*gateway.Client)),
	wire.Bind(new(notify.Notifier), new(*notify.Center)),
	wire.Bind(new(chart.WidgetFactory), new(*chart.Surface)),
	wire.Bind(new(dashboard.ChartRenderer), new(*chart.Manager)),
	wire.Bind(new(dashboard.API), new(*gateway.API)),
	wire.Bind(new(report.Source), new(*dashboard.Views)),
	wire.Bind(new(social.API), new(*gateway.API)),
	wire.Bind(new(social.IdentitySource), new(*session.Manager)),
	wire.Bind(new(social.LeaderboardRefresher), new(*dashboard.Aggregator)),
	wire.Bind(new(account.AuthAPI), new(*gateway.API)),
)

func ProvideDashboardConfig(cfg *config.Config) dashboard.Config {
	return dashboard.Config{
		TrendDays:         cfg.Dashboard.TrendDays,
		ForecastDays:      cfg.Dashboard.ForecastDays,
		HistoryDays:       cfg.Dashboard.HistoryDays,
		ReminderThreshold: cfg.Dashboard.ReminderThreshold,
	}
}

func ProvideSearchConfig(cfg *config.Config) social.Config {
	return social.Config{
		MinQueryLength: cfg.Search.MinQueryLength,
		Debounce:       cfg.Search.Debounce,
	}
}

func ProvideNotifyCenter(cfg *config.Config, logger *slog.Logger) *notify.Center {
	return notify.NewCenter(cfg.Notify.TTL, logger)
}

// ProvideGatewayClient reads the bearer credential from the session manager on every call.
func ProvideGatewayClient(cfg *config.Config, sessions *session.Manager, stats *metrics.CallStats, logger *slog.Logger) *gateway.Client {
	return gateway.NewClient(cfg.Backend.BaseURL, sessions, stats, logger)
}

// ProvideSessionStore selects the configured session backend. Network backends fall back
// to process memory when they cannot be reached at startup.
func ProvideSessionStore(cfg *config.Config, logger *slog.Logger) session.Store {
	fallback := sessionstore.NewMemoryStore()
	switch cfg.Session.Backend {
	case config.SessionFile:
		store, err := sessionstore.NewFileStore(cfg.Session.FilePath, cfg.Session.EncryptionKey)
		if err != nil {
			logger.Error("failed to open session file, using memory store", "error", err)
			return fallback
		}
		logger.Info("file session store enabled", "path", cfg.Session.FilePath)
		return store
	case config.SessionValkey:
		return provideValkeySessionStore(cfg, logger, fallback)
	case config.SessionPostgres:
		return providePostgresSessionStore(cfg, logger, fallback)
	default:
		logger.Info("session backend is memory, sessions end with the process")
		return fallback
	}
}

func provideValkeySessionStore(cfg *config.Config, logger *slog.Logger, fallback session.Store) session.Store {
	opt, err := buildValkeyOptions(cfg.Session.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return fallback
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return fallback
	}
	logger.Info("valkey session store enabled", "addr", cfg.Session.Valkey.Addr)
	return sessionstore.NewValkeyStore(client, cfg.Session.Valkey.Prefix, cfg.Session.Profile)
}

func providePostgresSessionStore(cfg *config.Config, logger *slog.Logger, fallback session.Store) session.Store {
	dsn := strings.TrimSpace(cfg.Session.Postgres.DSN)
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory store", "error", err)
		return fallback
	}
	if cfg.Session.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Session.Postgres.MaxConns
	}
	if cfg.Session.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Session.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory store", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory store", "error", err)
		pool.Close()
		return fallback
	}
	store := sessionstore.NewPostgresStore(pool, cfg.Session.Profile)
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Error("failed to prepare session table, using memory store", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("postgres session store enabled")
	return store
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

// ProvideExportSink selects where exported artifacts are kept.
func ProvideExportSink(cfg *config.Config, logger *slog.Logger) report.Sink {
	switch cfg.Export.Sink {
	case config.SinkDir:
		logger.Info("exports written to directory", "dir", cfg.Export.Dir)
		return artifactstore.NewDirStore(cfg.Export.Dir)
	case config.SinkS3:
		s3 := cfg.Export.S3
		store, err := artifactstore.NewS3Store(artifactstore.S3Config{
			Endpoint:  s3.Endpoint,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
			Bucket:    s3.Bucket,
			Region:    s3.Region,
			Prefix:    s3.Prefix,
		}, logger)
		if err != nil {
			logger.Error("failed to initialize s3 export sink, using memory sink", "error", err)
			return artifactstore.NewMemoryStore()
		}
		logger.Info("s3 export sink enabled", "bucket", s3.Bucket)
		return store
	default:
		return artifactstore.NewMemoryStore()
	}
}
