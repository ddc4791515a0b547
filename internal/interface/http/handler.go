package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/healthdash/internal/domain/account"
	"github.com/yanqian/healthdash/internal/domain/chart"
	"github.com/yanqian/healthdash/internal/domain/dashboard"
	"github.com/yanqian/healthdash/internal/domain/health"
	"github.com/yanqian/healthdash/internal/domain/notify"
	"github.com/yanqian/healthdash/internal/domain/report"
	"github.com/yanqian/healthdash/internal/domain/session"
	"github.com/yanqian/healthdash/internal/domain/social"
	"github.com/yanqian/healthdash/pkg/metrics"
)

// Handler wires the HTTP transport to the dashboard components.
type Handler struct {
	accounts   *account.Service
	sessions   *session.Manager
	aggregator *dashboard.Aggregator
	surface    *chart.Surface
	exporter   *report.Exporter
	search     *social.Flow
	notices    *notify.Center
	stats      *metrics.CallStats
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	accounts *account.Service,
	sessions *session.Manager,
	aggregator *dashboard.Aggregator,
	surface *chart.Surface,
	exporter *report.Exporter,
	search *social.Flow,
	notices *notify.Center,
	stats *metrics.CallStats,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		accounts:   accounts,
		sessions:   sessions,
		aggregator: aggregator,
		surface:    surface,
		exporter:   exporter,
		search:     search,
		notices:    notices,
		stats:      stats,
		logger:     logger.With("component", "http.handler"),
	}
}

type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	View          session.View     `json:"view"`
	Identity      session.Identity `json:"identity"`
	ReportMonth   string           `json:"reportMonth,omitempty"`
}

func (h *Handler) sessionState() sessionResponse {
	resp := sessionResponse{
		Authenticated: h.sessions.Authenticated(),
		View:          h.sessions.View(),
		Identity:      h.sessions.CurrentIdentity(),
	}
	if resp.Authenticated {
		resp.ReportMonth = h.aggregator.CurrentMonth()
	}
	return resp
}

// Login signs in and switches the shell to the dashboard view.
func (h *Handler) Login(c *gin.Context) {
	var req health.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}
	if _, err := h.accounts.Login(c.Request.Context(), req); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessionState())
}

// Register creates an account and signs in.
func (h *Handler) Register(c *gin.Context) {
	var req health.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}
	if _, err := h.accounts.Register(c.Request.Context(), req); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessionState())
}

// Logout clears the session.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.accounts.Logout(c.Request.Context()); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Session reports the current shell state.
func (h *Handler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessionState())
}

// Notifications drains pending toasts.
func (h *Handler) Notifications(c *gin.Context) {
	items := h.notices.Drain()
	if items == nil {
		items = []notify.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

// Status exposes the session view and backend call counters.
func (h *Handler) Status(c *gin.Context) {
	usage := h.stats.Snapshot()
	if usage == nil {
		usage = []metrics.EndpointUsage{}
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": h.sessions.Authenticated(),
		"view":          h.sessions.View(),
		"charts":        h.liveCanvases(),
		"backendCalls":  usage,
	})
}

func (h *Handler) liveCanvases() []string {
	keys := make([]string, 0, 5)
	for _, canvas := range []string{chart.CanvasSteps, chart.CanvasCalories, chart.CanvasStepsPrediction, chart.CanvasCaloriesPred, chart.CanvasMonthly} {
		if h.surface.Live(canvas) > 0 {
			keys = append(keys, canvas)
		}
	}
	return keys
}
