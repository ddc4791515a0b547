package chart

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Logical chart keys and the canvases they draw on.
const (
	KeySteps           = "stepsChart"
	KeyCalories        = "caloriesChart"
	KeyStepsPrediction = "stepsPredChart"
	KeyCaloriesPred    = "caloriesPredChart"
	KeyMonthly         = "monthlyChart"

	CanvasSteps           = "steps-chart"
	CanvasCalories        = "calories-chart"
	CanvasStepsPrediction = "steps-prediction-chart"
	CanvasCaloriesPred    = "calories-prediction-chart"
	CanvasMonthly         = "monthly-chart"
)

// Widget is a live drawable bound to a canvas.
type Widget interface {
	Dispose()
}

// WidgetFactory constructs widgets on a canvas.
type WidgetFactory interface {
	Create(canvasID string, spec Spec) (Widget, error)
}

// Handle is the registry record for one live widget.
type Handle struct {
	Key      string
	CanvasID string
	Widget   Widget
}

// Manager owns every live widget. At most one handle exists per key and per canvas.
type Manager struct {
	mu      sync.Mutex
	handles map[string]Handle
	factory WidgetFactory
	logger  *slog.Logger
}

// NewManager builds an empty registry.
func NewManager(factory WidgetFactory, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		handles: make(map[string]Handle),
		factory: factory,
		logger:  logger.With("component", "chart.manager"),
	}
}

// Render replaces whatever is drawn for key, and anything else on canvasID, with a
// widget built from spec. Disposal and construction happen under one lock.
func (m *Manager) Render(key, canvasID string, spec Spec) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.handles[key]; ok {
		prev.Widget.Dispose()
		delete(m.handles, key)
	}
	for otherKey, h := range m.handles {
		if h.CanvasID == canvasID {
			h.Widget.Dispose()
			delete(m.handles, otherKey)
		}
	}

	widget, err := m.factory.Create(canvasID, spec)
	if err != nil {
		m.logger.Error("chart construction failed", "key", key, "canvas", canvasID, "error", err)
		return fmt.Errorf("render %s: %w", key, err)
	}
	m.handles[key] = Handle{Key: key, CanvasID: canvasID, Widget: widget}
	m.logger.Debug("chart rendered", "key", key, "canvas", canvasID, "kind", spec.Kind, "points", len(spec.Labels))
	return nil
}

// Lookup returns the live handle for key.
func (m *Manager) Lookup(key string) (Handle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.handles[key]
	return h, ok
}

// Keys lists the keys with a live widget.
func (m *Manager) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.handles))
	for k := range m.handles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DisposeAll releases every widget, e.g. on logout.
func (m *Manager) DisposeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, h := range m.handles {
		h.Widget.Dispose()
		delete(m.handles, key)
	}
}
