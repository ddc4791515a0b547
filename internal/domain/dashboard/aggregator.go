package dashboard

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/healthdash/internal/domain/chart"
	"github.com/yanqian/healthdash/internal/domain/health"
	"github.com/yanqian/healthdash/internal/domain/notify"
	apperrors "github.com/yanqian/healthdash/pkg/errors"
	"github.com/yanqian/healthdash/pkg/util"
)

// Section names a navigable region of the dashboard.
type Section string

const (
	SectionDashboard Section = "dashboard"
	SectionSteps     Section = "steps"
	SectionCalories  Section = "calories"
	SectionHistory   Section = "history"
	SectionFriends   Section = "friends"
	SectionReports   Section = "reports"
)

// ReminderMessage nudges the user when step progress is low.
const ReminderMessage = "Don't forget to reach your step goal today!"

// API is the slice of the backend the aggregator reads and writes.
type API interface {
	Summary(ctx context.Context) (health.Summary, error)
	Entries(ctx context.Context, days int) ([]health.Entry, error)
	Predict(ctx context.Context, days int) (health.Prediction, error)
	Leaderboard(ctx context.Context) ([]health.LeaderboardEntry, error)
	FriendsActivity(ctx context.Context) ([]health.FriendActivity, error)
	MonthlyReport(ctx context.Context, year, month int) (health.MonthlyReport, error)
	SaveEntry(ctx context.Context, req health.EntryRequest) error
	SaveMeal(ctx context.Context, req health.MealRequest) error
	UpdateTargets(ctx context.Context, targets health.Targets) error
}

// ChartRenderer draws chart specs onto canvases.
type ChartRenderer interface {
	Render(key, canvasID string, spec chart.Spec) error
	DisposeAll()
}

// Aggregator composes gateway calls per view and publishes immutable snapshots.
type Aggregator struct {
	cfg      Config
	api      API
	views    *Views
	charts   ChartRenderer
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewAggregator wires the view loaders.
func NewAggregator(cfg Config, api API, views *Views, charts ChartRenderer, notifier notify.Notifier, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		cfg:      cfg.withDefaults(),
		api:      api,
		views:    views,
		charts:   charts,
		notifier: notifier,
		logger:   logger.With("component", "dashboard.aggregator"),
		now:      util.NowUTC,
	}
}

// Views exposes the snapshot state.
func (a *Aggregator) Views() *Views {
	return a.views
}

// LoadSection dispatches a navigation action to its loader. The reports section only
// shows the month picker, so it loads nothing.
func (a *Aggregator) LoadSection(ctx context.Context, section Section) error {
	switch section {
	case SectionDashboard:
		return a.LoadDashboard(ctx)
	case SectionSteps:
		return a.LoadSteps(ctx)
	case SectionCalories:
		return a.LoadCalories(ctx)
	case SectionHistory:
		return a.LoadHistory(ctx)
	case SectionFriends:
		return a.LoadLeaderboard(ctx)
	case SectionReports:
		return nil
	default:
		return apperrors.Invalid("unknown section " + string(section))
	}
}

// LoadDashboard fetches the summary once and derives both the stats card and the goal
// editor from it.
func (a *Aggregator) LoadDashboard(ctx context.Context) error {
	summary, err := a.api.Summary(ctx)
	if err != nil {
		return a.failLoad("Failed to load dashboard: ", err)
	}
	remind := summary.StepsProgress < a.cfg.ReminderThreshold
	a.views.setDashboard(DashboardView{
		Summary:  summary,
		Goals:    goalsFrom(summary),
		Reminder: remind,
		LoadedAt: a.now(),
	})
	if remind {
		a.notifier.Notify(notify.LevelError, ReminderMessage)
	}
	a.logger.Debug("dashboard loaded", "stepsProgress", summary.StepsProgress, "reminder", remind)
	return nil
}

// LoadSteps refreshes the steps history and forecast charts.
func (a *Aggregator) LoadSteps(ctx context.Context) error {
	return a.loadTrend(ctx, chart.MetricSteps)
}

// LoadCalories refreshes the calories history and forecast charts.
func (a *Aggregator) LoadCalories(ctx context.Context) error {
	return a.loadTrend(ctx, chart.MetricCalories)
}

func (a *Aggregator) loadTrend(ctx context.Context, metric chart.Metric) error {
	barKey, barCanvas, lineKey, lineCanvas := chartSlots(metric)
	a.views.updateTrend(metric, func(t *TrendView) { t.Complete = false })

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := a.api.Entries(gctx, a.cfg.TrendDays)
		if err != nil {
			return err
		}
		if err := gctx.Err(); err != nil {
			return err
		}
		a.views.updateTrend(metric, func(t *TrendView) { t.Entries = slices.Clone(entries) })
		return a.charts.Render(barKey, barCanvas, chart.EntryBars(metric, entries))
	})
	g.Go(func() error {
		prediction, err := a.api.Predict(gctx, a.cfg.ForecastDays)
		if err != nil {
			return err
		}
		if err := gctx.Err(); err != nil {
			return err
		}
		prediction.Predictions = slices.Clone(prediction.Predictions)
		a.views.updateTrend(metric, func(t *TrendView) { t.Prediction = prediction })
		return a.charts.Render(lineKey, lineCanvas, chart.PredictionLine(metric, prediction))
	})
	if err := g.Wait(); err != nil {
		return a.failLoad("Failed to load charts: ", err)
	}
	a.views.updateTrend(metric, func(t *TrendView) { t.Complete = true })
	return nil
}

// LoadHistory lists the trailing window newest first without re-sorting.
func (a *Aggregator) LoadHistory(ctx context.Context) error {
	entries, err := a.api.Entries(ctx, a.cfg.HistoryDays)
	if err != nil {
		return a.failLoad("Failed to load history: ", err)
	}
	a.views.setHistory(entries)
	return nil
}

// LoadLeaderboard fetches the ranking and today's friend activity independently. Each
// part is published as soon as it arrives.
func (a *Aggregator) LoadLeaderboard(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		board, err := a.api.Leaderboard(gctx)
		if err != nil {
			return err
		}
		if err := gctx.Err(); err != nil {
			return err
		}
		a.views.updateFriends(func(v *FriendsView) {
			v.Leaderboard = slices.Clone(board)
			v.LeaderboardLoaded = true
		})
		return nil
	})
	g.Go(func() error {
		activity, err := a.api.FriendsActivity(gctx)
		if err != nil {
			return err
		}
		if err := gctx.Err(); err != nil {
			return err
		}
		a.views.updateFriends(func(v *FriendsView) {
			v.Activity = slices.Clone(activity)
			v.ActivityLoaded = true
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		return a.failLoad("Failed to load leaderboard: ", err)
	}
	return nil
}

// GenerateReport fetches one month's report, stores it as the export input and draws the
// monthly trend.
func (a *Aggregator) GenerateReport(ctx context.Context, year, month int) error {
	if year <= 0 || month < 1 || month > 12 {
		return a.fail(apperrors.Invalid("Please select a valid month"))
	}
	report, err := a.api.MonthlyReport(ctx, year, month)
	if err != nil {
		return a.failLoad("Failed to generate report: ", err)
	}
	a.views.setReport(report)
	if err := a.charts.Render(chart.KeyMonthly, chart.CanvasMonthly, chart.MonthlyTrend(report.Entries)); err != nil {
		return a.failLoad("Failed to generate report: ", err)
	}
	a.notifier.Notify(notify.LevelSuccess, "Report generated successfully!")
	return nil
}

// GenerateReportFor accepts the month picker value (YYYY-MM).
func (a *Aggregator) GenerateReportFor(ctx context.Context, monthInput string) error {
	year, month, err := ParseMonth(monthInput)
	if err != nil {
		return a.fail(err)
	}
	return a.GenerateReport(ctx, year, month)
}

// CurrentMonth is the month picker default.
func (a *Aggregator) CurrentMonth() string {
	return a.now().Format(monthLayout)
}

// Reset clears every snapshot and releases all charts.
func (a *Aggregator) Reset() {
	a.views.Reset()
	a.charts.DisposeAll()
}

func (a *Aggregator) failLoad(prefix string, err error) error {
	a.logger.Warn("view load failed", "error", err)
	a.notifier.Notify(notify.LevelError, prefix+apperrors.Message(err))
	return err
}

func (a *Aggregator) fail(err error) error {
	a.notifier.Notify(notify.LevelError, apperrors.Message(err))
	return err
}

func (a *Aggregator) today() string {
	return a.now().Format(util.DateLayout)
}

func chartSlots(metric chart.Metric) (barKey, barCanvas, lineKey, lineCanvas string) {
	if metric == chart.MetricCalories {
		return chart.KeyCalories, chart.CanvasCalories, chart.KeyCaloriesPred, chart.CanvasCaloriesPred
	}
	return chart.KeySteps, chart.CanvasSteps, chart.KeyStepsPrediction, chart.CanvasStepsPrediction
}

// goalsFrom prefills the goal editor; weekly figures are daily goals times seven.
func goalsFrom(s health.Summary) health.Targets {
	return health.Targets{
		DailyStepsGoal:     orDefault(s.DailyStepsGoal, 10000),
		WeeklyStepsGoal:    orDefault(s.DailyStepsGoal*7, 70000),
		DailyCaloriesGoal:  orDefault(s.DailyCaloriesGoal, 2000),
		WeeklyCaloriesGoal: orDefault(s.DailyCaloriesGoal*7, 14000),
	}
}

func orDefault(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
