package chart

// Config mirrors the Chart.js configuration object so a browser can pass it straight
// to `new Chart(ctx, config)`.
type Config struct {
	Type    Kind         `json:"type"`
	Data    ConfigData   `json:"data"`
	Options ChartOptions `json:"options"`
}

type ConfigData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string  `json:"label"`
	Data            []int   `json:"data"`
	BackgroundColor any     `json:"backgroundColor,omitempty"`
	BorderColor     string  `json:"borderColor,omitempty"`
	BorderRadius    int     `json:"borderRadius,omitempty"`
	Tension         float64 `json:"tension,omitempty"`
	Fill            bool    `json:"fill,omitempty"`
	YAxisID         string  `json:"yAxisID,omitempty"`
}

type ChartOptions struct {
	Responsive bool             `json:"responsive"`
	Plugins    Plugins          `json:"plugins"`
	Scales     map[string]Scale `json:"scales,omitempty"`
}

type Plugins struct {
	Legend Legend `json:"legend"`
}

type Legend struct {
	Display bool `json:"display"`
}

type Scale struct {
	Type     string `json:"type"`
	Position string `json:"position"`
	Grid     *Grid  `json:"grid,omitempty"`
}

type Grid struct {
	DrawOnChartArea bool `json:"drawOnChartArea"`
}

// ChartJS converts a spec to its Chart.js configuration.
func (s Spec) ChartJS() Config {
	labels := s.Labels
	if labels == nil {
		labels = []string{}
	}
	datasets := make([]Dataset, 0, len(s.Series))
	for _, series := range s.Series {
		values := series.Values
		if values == nil {
			values = []int{}
		}
		ds := Dataset{
			Label:       series.Label,
			Data:        values,
			BorderColor: series.BorderColor,
			Tension:     series.Tension,
			Fill:        series.Fill,
			YAxisID:     series.AxisID,
		}
		switch {
		case series.PointColors != nil:
			ds.BackgroundColor = series.PointColors
		case series.BackgroundColor != "":
			ds.BackgroundColor = series.BackgroundColor
		}
		if s.Kind == KindBar {
			ds.BorderRadius = s.BorderRadius
		}
		datasets = append(datasets, ds)
	}

	cfg := Config{
		Type: s.Kind,
		Data: ConfigData{Labels: labels, Datasets: datasets},
		Options: ChartOptions{
			Responsive: true,
			Plugins:    Plugins{Legend: Legend{Display: s.ShowLegend}},
		},
	}
	if len(s.Axes) > 0 {
		cfg.Options.Scales = make(map[string]Scale, len(s.Axes))
		for _, axis := range s.Axes {
			scale := Scale{Type: "linear", Position: axis.Position}
			if !axis.DrawOnChartArea {
				scale.Grid = &Grid{DrawOnChartArea: false}
			}
			cfg.Options.Scales[axis.ID] = scale
		}
	}
	return cfg
}
