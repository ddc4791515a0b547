package dashboard

import (
	"slices"
	"sync"
	"time"

	"github.com/yanqian/healthdash/internal/domain/chart"
	"github.com/yanqian/healthdash/internal/domain/health"
	"github.com/yanqian/healthdash/pkg/util"
)

// Placeholders rendered instead of an empty region.
const (
	NoMealsMessage    = "No meals logged today"
	NoActivityMessage = "No friend activity today"
)

// DashboardView is the stats card plus the prefilled goal editor.
type DashboardView struct {
	Summary  health.Summary `json:"summary"`
	Goals    health.Targets `json:"goals"`
	Reminder bool           `json:"reminder"`
	LoadedAt time.Time      `json:"loadedAt"`
}

// TrendView backs the steps and calories sections. Entries and Prediction are
// published independently; Complete is set once both have arrived.
type TrendView struct {
	Metric     chart.Metric      `json:"metric"`
	Entries    []health.Entry    `json:"entries"`
	Prediction health.Prediction `json:"prediction"`
	Complete   bool              `json:"complete"`
}

// HistoryItem is one row of the history list.
type HistoryItem struct {
	health.Entry
	Label   string `json:"label"`
	Flagged bool   `json:"flagged"`
}

// HistoryView lists entries newest first, as delivered.
type HistoryView struct {
	Items []HistoryItem `json:"items"`
}

// FriendsView holds the leaderboard and today's friend activity.
type FriendsView struct {
	Leaderboard       []health.LeaderboardEntry `json:"leaderboard"`
	Activity          []health.FriendActivity   `json:"activity"`
	LeaderboardLoaded bool                      `json:"leaderboardLoaded"`
	ActivityLoaded    bool                      `json:"activityLoaded"`
}

// NoActivity reports whether the activity region shows the placeholder.
func (v FriendsView) NoActivity() bool {
	return v.ActivityLoaded && len(v.Activity) == 0
}

// ReportView is the last generated monthly report.
type ReportView struct {
	Report health.MonthlyReport `json:"report"`
}

// Views stores the latest snapshot of every section. A snapshot is replaced wholesale and
// never mutated after publication, so readers may keep what they were given.
type Views struct {
	mu        sync.RWMutex
	dashboard *DashboardView
	trends    map[chart.Metric]*TrendView
	history   *HistoryView
	friends   *FriendsView
	report    *ReportView
}

// NewViews builds an empty view state.
func NewViews() *Views {
	return &Views{trends: make(map[chart.Metric]*TrendView)}
}

func (v *Views) Dashboard() (DashboardView, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.dashboard == nil {
		return DashboardView{}, false
	}
	return *v.dashboard, true
}

func (v *Views) Trend(metric chart.Metric) (TrendView, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	t, ok := v.trends[metric]
	if !ok {
		return TrendView{}, false
	}
	return *t, true
}

func (v *Views) History() (HistoryView, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.history == nil {
		return HistoryView{}, false
	}
	return *v.history, true
}

func (v *Views) Friends() (FriendsView, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.friends == nil {
		return FriendsView{}, false
	}
	return *v.friends, true
}

func (v *Views) Report() (ReportView, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.report == nil {
		return ReportView{}, false
	}
	return *v.report, true
}

// LastReport is the input of the export pipeline.
func (v *Views) LastReport() (health.MonthlyReport, bool) {
	r, ok := v.Report()
	return r.Report, ok
}

// Reset drops every snapshot, e.g. after logout.
func (v *Views) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dashboard = nil
	v.trends = make(map[chart.Metric]*TrendView)
	v.history = nil
	v.friends = nil
	v.report = nil
}

func (v *Views) setDashboard(view DashboardView) {
	view.Summary.AISuggestions = slices.Clone(view.Summary.AISuggestions)
	view.Summary.TodayMeals = slices.Clone(view.Summary.TodayMeals)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dashboard = &view
}

func (v *Views) updateTrend(metric chart.Metric, apply func(*TrendView)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	next := TrendView{Metric: metric}
	if cur, ok := v.trends[metric]; ok {
		next = *cur
	}
	apply(&next)
	v.trends[metric] = &next
}

func (v *Views) setHistory(entries []health.Entry) {
	items := make([]HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, HistoryItem{Entry: e, Label: util.DisplayDate(e.Date), Flagged: e.IsAnomaly})
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = &HistoryView{Items: items}
}

func (v *Views) updateFriends(apply func(*FriendsView)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	var next FriendsView
	if v.friends != nil {
		next = *v.friends
	}
	apply(&next)
	v.friends = &next
}

func (v *Views) setReport(report health.MonthlyReport) {
	report.AISuggestions = slices.Clone(report.AISuggestions)
	report.Entries = slices.Clone(report.Entries)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.report = &ReportView{Report: report}
}
