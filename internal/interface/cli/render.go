// Package cli renders dashboard view-models as terminal text. Every function here is pure:
// it takes a snapshot and returns a string.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yanqian/healthdash/internal/domain/chart"
	"github.com/yanqian/healthdash/internal/domain/dashboard"
	"github.com/yanqian/healthdash/internal/domain/health"
	"github.com/yanqian/healthdash/internal/domain/notify"
	"github.com/yanqian/healthdash/internal/domain/report"
	"github.com/yanqian/healthdash/internal/domain/social"
	"github.com/yanqian/healthdash/pkg/util"
)

const barWidth = 30

// Dashboard renders the stats card, meals, suggestions and goals. The step reminder
// arrives as a notification.
func Dashboard(view dashboard.DashboardView, displayName string) string {
	s := view.Summary
	var b strings.Builder
	title := "Dashboard"
	if displayName != "" {
		title = "Welcome, " + displayName
	}
	line(&b, Heading(IconSteps, title))
	line(&b, LabelValue("Steps today", fmt.Sprintf("%s (%d%% of goal)", report.GroupDigits(s.TodaySteps), s.StepsProgress)))
	line(&b, LabelValue("Calories today", fmt.Sprintf("%s (%d%% of goal)", report.GroupDigits(s.TodayCalories), s.CaloriesProgress)))
	line(&b, LabelValue("Current streak", fmt.Sprintf("%d days", s.CurrentStreak)))
	line(&b, LabelValue("Longest streak", fmt.Sprintf("%d days", s.LongestStreak)))
	line(&b, "")

	line(&b, H2.Render("Today's meals"))
	if len(s.TodayMeals) == 0 {
		line(&b, Muted.Render(dashboard.NoMealsMessage))
	}
	for _, m := range s.TodayMeals {
		line(&b, fmt.Sprintf("- %s %s", m.Name, Muted.Render(report.GroupDigits(m.Calories)+" cal")))
	}
	line(&b, "")

	if len(s.AISuggestions) > 0 {
		line(&b, H2.Render("AI suggestions"))
		for _, tip := range s.AISuggestions {
			line(&b, "- "+tip)
		}
		line(&b, "")
	}

	g := view.Goals
	line(&b, H2.Render("Goals"))
	line(&b, LabelValue("Daily steps", report.GroupDigits(g.DailyStepsGoal)))
	line(&b, LabelValue("Weekly steps", report.GroupDigits(g.WeeklyStepsGoal)))
	line(&b, LabelValue("Daily calories", report.GroupDigits(g.DailyCaloriesGoal)))
	line(&b, LabelValue("Weekly calories", report.GroupDigits(g.WeeklyCaloriesGoal)))

	return strings.TrimRight(b.String(), "\n")
}

// Trend renders the recorded window oldest first as bars, then the forecast.
func Trend(view dashboard.TrendView) string {
	var b strings.Builder
	metric := view.Metric
	icon := IconSteps
	if metric == chart.MetricCalories {
		icon = IconFire
	}
	line(&b, Heading(icon, fmt.Sprintf("%s, last %d days", metric.Label(), len(view.Entries))))

	entries := chart.Chronological(view.Entries)
	peak := 0
	for _, e := range entries {
		peak = max(peak, metric.Value(e.Steps, e.Calories))
	}
	if len(entries) == 0 {
		line(&b, Muted.Render("No entries recorded"))
	}
	for _, e := range entries {
		v := metric.Value(e.Steps, e.Calories)
		visual := chart.VisualFor(metric, chart.EncodingOf(e))
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(visual.Stroke)).Render(strings.Repeat("█", scaled(v, peak)))
		row := fmt.Sprintf("%10s %s %s", util.DisplayDate(e.Date), bar, report.GroupDigits(v))
		if e.IsAnomaly {
			row += " " + Bad.Render("! "+anomalyLabel(e))
		}
		line(&b, row)
	}

	line(&b, "")
	line(&b, H2.Render(IconChart+" Forecast"))
	if len(view.Prediction.Predictions) == 0 {
		line(&b, Muted.Render("No forecast available"))
	}
	for _, p := range view.Prediction.Predictions {
		line(&b, fmt.Sprintf("%10s %s", util.DisplayDate(p.Date), report.GroupDigits(metric.Value(p.Steps, p.Calories))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// History renders one row per entry in delivered order.
func History(view dashboard.HistoryView) string {
	var b strings.Builder
	line(&b, Heading(IconReport, "History"))
	if len(view.Items) == 0 {
		line(&b, Muted.Render("No entries recorded"))
	}
	for _, item := range view.Items {
		row := fmt.Sprintf("%10s  %s steps  %s cal", item.Label, report.GroupDigits(item.Steps), report.GroupDigits(item.Calories))
		if item.Flagged {
			row += "  " + Bad.Render(IconAlert+" "+anomalyLabel(item.Entry))
		}
		line(&b, row)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Friends renders the leaderboard and today's activity.
func Friends(view dashboard.FriendsView) string {
	var b strings.Builder
	line(&b, Heading(IconTrophy, "Leaderboard"))
	if view.LeaderboardLoaded && len(view.Leaderboard) == 0 {
		line(&b, Muted.Render("No friends yet"))
	}
	for _, e := range view.Leaderboard {
		name := e.DisplayName
		if e.IsCurrentUser {
			name = Gold.Render(name + " (you)")
		}
		line(&b, fmt.Sprintf("#%d %s %s", e.Rank, name, Muted.Render(fmt.Sprintf(
			"@%s  streak %d  week %s  today %s",
			e.Username, e.CurrentStreak, report.GroupDigits(e.WeeklySteps), report.GroupDigits(e.TodaySteps),
		))))
	}
	line(&b, "")
	line(&b, H2.Render(IconFriends+" Friend activity"))
	if view.NoActivity() {
		line(&b, Muted.Render(dashboard.NoActivityMessage))
	}
	for _, a := range view.Activity {
		line(&b, fmt.Sprintf("- %s %s", a.DisplayName, Muted.Render(fmt.Sprintf(
			"%s steps, %s cal", report.GroupDigits(a.Steps), report.GroupDigits(a.Calories),
		))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Report renders the stat lines and recommendations of a monthly report.
func Report(r health.MonthlyReport) string {
	var b strings.Builder
	line(&b, Heading(IconReport, fmt.Sprintf("Health Report - %d/%d", r.Month, r.Year)))
	body := strings.Join(report.StatLines(r), "\n")
	line(&b, Panel.Render(body))
	if r.Anomalies > 0 {
		line(&b, Bad.Render(fmt.Sprintf("%s %d anomalous days", IconAlert, r.Anomalies)))
	}
	if len(r.AISuggestions) > 0 {
		line(&b, H2.Render("AI Recommendations:"))
		for i, tip := range r.AISuggestions {
			line(&b, fmt.Sprintf("%d. %s", i+1, tip))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Search renders candidate users for a query.
func Search(state social.State) string {
	var b strings.Builder
	line(&b, Heading(IconFriends, fmt.Sprintf("Users matching %q", state.Query)))
	if len(state.Results) == 0 {
		line(&b, Muted.Render("No users found"))
	}
	for _, c := range state.Results {
		line(&b, fmt.Sprintf("- %s %s", c.DisplayName, Muted.Render("@"+c.Username)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Notifications renders drained toasts, one per line.
func Notifications(items []notify.Notification) string {
	lines := make([]string, 0, len(items))
	for _, n := range items {
		if n.Level == notify.LevelError {
			lines = append(lines, Bad.Render(IconError+" "+n.Message))
			continue
		}
		lines = append(lines, Good.Render(IconOK+" "+n.Message))
	}
	return strings.Join(lines, "\n")
}

func anomalyLabel(e health.Entry) string {
	if e.AnomalyType == "" {
		return "anomaly"
	}
	return e.AnomalyType
}

// scaled maps v onto the bar width; any positive value gets at least one cell.
func scaled(v, peak int) int {
	if v <= 0 || peak <= 0 {
		return 0
	}
	return max(1, v*barWidth/peak)
}

func line(b *strings.Builder, s string) {
	b.WriteString(s)
	b.WriteByte('\n')
}
