package chart

import "sync"

// Surface is the default WidgetFactory: an in-memory set of canvases a front end reads
// bound specs from. It does not prevent overlap itself; it only records what is live.
type Surface struct {
	mu       sync.RWMutex
	canvases map[string][]*surfaceWidget
	nextID   uint64
}

type surfaceWidget struct {
	surface  *Surface
	id       uint64
	canvasID string
	spec     Spec
}

// NewSurface builds an empty surface.
func NewSurface() *Surface {
	return &Surface{canvases: make(map[string][]*surfaceWidget)}
}

// Create binds spec to canvasID.
func (s *Surface) Create(canvasID string, spec Spec) (Widget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	w := &surfaceWidget{surface: s, id: s.nextID, canvasID: canvasID, spec: spec}
	s.canvases[canvasID] = append(s.canvases[canvasID], w)
	return w, nil
}

// Live counts widgets currently bound to canvasID.
func (s *Surface) Live(canvasID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.canvases[canvasID])
}

// Bound returns the most recently bound spec on canvasID.
func (s *Surface) Bound(canvasID string) (Spec, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws := s.canvases[canvasID]
	if len(ws) == 0 {
		return Spec{}, false
	}
	return ws[len(ws)-1].spec, true
}

func (w *surfaceWidget) Dispose() {
	s := w.surface
	s.mu.Lock()
	defer s.mu.Unlock()
	ws := s.canvases[w.canvasID]
	for i, candidate := range ws {
		if candidate.id == w.id {
			ws = append(ws[:i], ws[i+1:]...)
			break
		}
	}
	if len(ws) == 0 {
		delete(s.canvases, w.canvasID)
		return
	}
	s.canvases[w.canvasID] = ws
}

var _ WidgetFactory = (*Surface)(nil)
