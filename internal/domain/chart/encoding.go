package chart

import "github.com/yanqian/healthdash/internal/domain/health"

// Encoding is the visual class of a data point.
type Encoding int

const (
	Normal Encoding = iota
	Anomalous
)

// Visual is the colour set for one metric.
type Visual struct {
	Stroke string
	Fill   string
}

const alertColor = "#ef4444"

var encodings = map[Metric]map[Encoding]Visual{
	MetricSteps: {
		Normal:    {Stroke: "#667eea", Fill: "rgba(102, 126, 234, 0.1)"},
		Anomalous: {Stroke: alertColor, Fill: alertColor},
	},
	MetricCalories: {
		Normal:    {Stroke: "#10b981", Fill: "rgba(16, 185, 129, 0.1)"},
		Anomalous: {Stroke: alertColor, Fill: alertColor},
	},
}

// EncodingOf classifies an entry.
func EncodingOf(e health.Entry) Encoding {
	if e.IsAnomaly {
		return Anomalous
	}
	return Normal
}

// VisualFor looks up the colours for metric under enc. Unknown metrics fall back to steps.
func VisualFor(metric Metric, enc Encoding) Visual {
	table, ok := encodings[metric]
	if !ok {
		table = encodings[MetricSteps]
	}
	return table[enc]
}

// Label is the display name of the metric.
func (m Metric) Label() string {
	switch m {
	case MetricCalories:
		return "Calories"
	default:
		return "Steps"
	}
}

// Value picks the field the metric plots.
func (m Metric) Value(steps, calories int) int {
	if m == MetricCalories {
		return calories
	}
	return steps
}
