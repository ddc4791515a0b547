package dashboard

// Config controls the data windows each view requests.
type Config struct {
	TrendDays         int `yaml:"trendDays"`
	ForecastDays      int `yaml:"forecastDays"`
	HistoryDays       int `yaml:"historyDays"`
	ReminderThreshold int `yaml:"reminderThreshold"`
}

// DefaultConfig returns the stock windows: two weeks of history for charts, a three day
// forecast and a month for the history list.
func DefaultConfig() Config {
	return Config{
		TrendDays:         14,
		ForecastDays:      3,
		HistoryDays:       30,
		ReminderThreshold: 50,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TrendDays <= 0 {
		c.TrendDays = def.TrendDays
	}
	if c.ForecastDays <= 0 {
		c.ForecastDays = def.ForecastDays
	}
	if c.HistoryDays <= 0 {
		c.HistoryDays = def.HistoryDays
	}
	if c.ReminderThreshold <= 0 {
		c.ReminderThreshold = def.ReminderThreshold
	}
	return c
}
