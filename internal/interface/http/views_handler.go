package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/healthdash/internal/domain/chart"
	"github.com/yanqian/healthdash/internal/domain/dashboard"
	"github.com/yanqian/healthdash/internal/domain/report"
)

// DashboardView loads and returns the stats card.
func (h *Handler) DashboardView(c *gin.Context) {
	if err := h.aggregator.LoadDashboard(c.Request.Context()); err != nil {
		abortWithDomainError(c, err)
		return
	}
	view, _ := h.aggregator.Views().Dashboard()
	identity, _ := getIdentity(c)
	resp := gin.H{"dashboard": view, "displayName": identity.DisplayName}
	if len(view.Summary.TodayMeals) == 0 {
		resp["mealsPlaceholder"] = dashboard.NoMealsMessage
	}
	c.JSON(http.StatusOK, resp)
}

// StepsView loads the steps charts.
func (h *Handler) StepsView(c *gin.Context) {
	h.trendView(c, dashboard.SectionSteps, chart.MetricSteps)
}

// CaloriesView loads the calories charts.
func (h *Handler) CaloriesView(c *gin.Context) {
	h.trendView(c, dashboard.SectionCalories, chart.MetricCalories)
}

func (h *Handler) trendView(c *gin.Context, section dashboard.Section, metric chart.Metric) {
	if err := h.aggregator.LoadSection(c.Request.Context(), section); err != nil {
		abortWithDomainError(c, err)
		return
	}
	view, _ := h.aggregator.Views().Trend(metric)
	c.JSON(http.StatusOK, gin.H{"trend": view})
}

// HistoryView loads the trailing history list.
func (h *Handler) HistoryView(c *gin.Context) {
	if err := h.aggregator.LoadHistory(c.Request.Context()); err != nil {
		abortWithDomainError(c, err)
		return
	}
	view, _ := h.aggregator.Views().History()
	c.JSON(http.StatusOK, gin.H{"history": view})
}

// FriendsView loads the leaderboard and friend activity.
func (h *Handler) FriendsView(c *gin.Context) {
	if err := h.aggregator.LoadLeaderboard(c.Request.Context()); err != nil {
		abortWithDomainError(c, err)
		return
	}
	view, _ := h.aggregator.Views().Friends()
	resp := gin.H{"friends": view}
	if view.NoActivity() {
		resp["activityPlaceholder"] = dashboard.NoActivityMessage
	}
	c.JSON(http.StatusOK, resp)
}

type reportRequest struct {
	Month string `json:"month"`
}

// GenerateReport fetches a monthly report; month defaults to the current one.
func (h *Handler) GenerateReport(c *gin.Context) {
	var req reportRequest
	// An empty body asks for the current month.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortInvalidBody(c, err)
		return
	}
	if req.Month == "" {
		req.Month = h.aggregator.CurrentMonth()
	}
	if err := h.aggregator.GenerateReportFor(c.Request.Context(), req.Month); err != nil {
		abortWithDomainError(c, err)
		return
	}
	view, _ := h.aggregator.Views().Report()
	c.JSON(http.StatusOK, gin.H{
		"report":    view.Report,
		"statLines": report.StatLines(view.Report),
	})
}

// Chart returns the Chart.js config bound to a canvas.
func (h *Handler) Chart(c *gin.Context) {
	canvasID := c.Param("canvasId")
	spec, ok := h.surface.Bound(canvasID)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "chart_not_found", fmt.Sprintf("no chart on canvas %s", canvasID), nil))
		return
	}
	c.JSON(http.StatusOK, spec.ChartJS())
}

// ExportPDF downloads the last report as a PDF.
func (h *Handler) ExportPDF(c *gin.Context) {
	h.export(c, report.FormatPDF)
}

// ExportCSV downloads the last report as CSV.
func (h *Handler) ExportCSV(c *gin.Context) {
	h.export(c, report.FormatCSV)
}

func (h *Handler) export(c *gin.Context, format report.Format) {
	artifact, err := h.exporter.Export(c.Request.Context(), format)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Name))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}
