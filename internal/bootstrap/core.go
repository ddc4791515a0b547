package bootstrap

import (
	"log/slog"

	"github.com/yanqian/healthdash/internal/domain/account"
	"github.com/yanqian/healthdash/internal/domain/dashboard"
	"github.com/yanqian/healthdash/internal/domain/notify"
	"github.com/yanqian/healthdash/internal/domain/report"
	"github.com/yanqian/healthdash/internal/domain/session"
	"github.com/yanqian/healthdash/internal/domain/social"
)

// Core groups the components a one-shot front end drives directly.
type Core struct {
	Logger     *slog.Logger
	Sessions   *session.Manager
	Accounts   *account.Service
	Aggregator *dashboard.Aggregator
	Exporter   *report.Exporter
	Search     *social.Flow
	Notices    *notify.Center
}

func NewCore(
	logger *slog.Logger,
	sessions *session.Manager,
	accounts *account.Service,
	aggregator *dashboard.Aggregator,
	exporter *report.Exporter,
	search *social.Flow,
	notices *notify.Center,
) *Core {
	return &Core{
		Logger:     logger,
		Sessions:   sessions,
		Accounts:   accounts,
		Aggregator: aggregator,
		Exporter:   exporter,
		Search:     search,
		Notices:    notices,
	}
}
