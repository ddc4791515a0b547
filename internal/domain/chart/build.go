package chart

import (
	"sort"

	"github.com/yanqian/healthdash/internal/domain/health"
	"github.com/yanqian/healthdash/pkg/util"
)

// EntryBars plots one bar per entry in ascending date order, whatever order the
// backend delivered (newest first for the history windows).
func EntryBars(metric Metric, entries []health.Entry) Spec {
	ordered := Chronological(entries)
	labels := make([]string, 0, len(ordered))
	values := make([]int, 0, len(ordered))
	colors := make([]string, 0, len(ordered))
	for _, e := range ordered {
		labels = append(labels, util.DisplayDate(e.Date))
		values = append(values, metric.Value(e.Steps, e.Calories))
		colors = append(colors, VisualFor(metric, EncodingOf(e)).Stroke)
	}
	return Spec{
		Kind:   KindBar,
		Labels: labels,
		Series: []Series{{
			Label:       metric.Label(),
			Values:      values,
			PointColors: colors,
		}},
		BorderRadius: 8,
	}
}

// PredictionLine plots forecasted values; the backend already orders them ascending.
func PredictionLine(metric Metric, prediction health.Prediction) Spec {
	points := prediction.Predictions
	labels := make([]string, 0, len(points))
	values := make([]int, 0, len(points))
	for _, p := range points {
		labels = append(labels, util.DisplayDate(p.Date))
		values = append(values, metric.Value(p.Steps, p.Calories))
	}
	visual := VisualFor(metric, Normal)
	return Spec{
		Kind:   KindLine,
		Labels: labels,
		Series: []Series{{
			Label:           "Predicted " + string(metric),
			Values:          values,
			BorderColor:     visual.Stroke,
			BackgroundColor: visual.Fill,
			Tension:         0.4,
			Fill:            true,
		}},
		ShowLegend: true,
	}
}

// MonthlyTrend binds steps and calories against independent left and right axes.
func MonthlyTrend(entries []health.Entry) Spec {
	labels := make([]string, 0, len(entries))
	steps := make([]int, 0, len(entries))
	calories := make([]int, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, util.DisplayDate(e.Date))
		steps = append(steps, e.Steps)
		calories = append(calories, e.Calories)
	}
	stepsVisual := VisualFor(MetricSteps, Normal)
	caloriesVisual := VisualFor(MetricCalories, Normal)
	return Spec{
		Kind:   KindLine,
		Labels: labels,
		Series: []Series{
			{
				Label:           "Steps",
				Values:          steps,
				BorderColor:     stepsVisual.Stroke,
				BackgroundColor: stepsVisual.Fill,
				Tension:         0.4,
				AxisID:          "y",
			},
			{
				Label:           "Calories",
				Values:          calories,
				BorderColor:     caloriesVisual.Stroke,
				BackgroundColor: caloriesVisual.Fill,
				Tension:         0.4,
				AxisID:          "y1",
			},
		},
		Axes: []Axis{
			{ID: "y", Position: "left", DrawOnChartArea: true},
			{ID: "y1", Position: "right", DrawOnChartArea: false},
		},
		ShowLegend: true,
	}
}

// Chronological returns a copy of entries sorted oldest first.
func Chronological(entries []health.Entry) []health.Entry {
	out := make([]health.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
