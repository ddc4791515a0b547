package chart

// Kind is the chart type.
type Kind string

const (
	KindBar  Kind = "bar"
	KindLine Kind = "line"
)

// Metric selects which Entry field a chart plots.
type Metric string

const (
	MetricSteps    Metric = "steps"
	MetricCalories Metric = "calories"
)

// Series is one dataset bound to the category axis.
type Series struct {
	Label           string
	Values          []int
	PointColors     []string
	BorderColor     string
	BackgroundColor string
	Tension         float64
	Fill            bool
	AxisID          string
}

// Axis is a numeric value axis.
type Axis struct {
	ID              string
	Position        string
	DrawOnChartArea bool
}

// Spec fully determines what a widget draws.
type Spec struct {
	Kind         Kind
	Labels       []string
	Series       []Series
	Axes         []Axis
	ShowLegend   bool
	BorderRadius int
}

// Empty reports whether the chart has no categories to draw.
func (s Spec) Empty() bool {
	return len(s.Labels) == 0
}
