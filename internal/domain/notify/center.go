package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level distinguishes confirmation toasts from failures.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 3 * time.Second

// Notification is one transient user-visible message.
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier is implemented by anything that can surface a toast.
type Notifier interface {
	Notify(level Level, message string)
}

// Center keeps pending toasts until they expire or a front end drains them.
type Center struct {
	mu     sync.Mutex
	items  []Notification
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewCenter builds a Center; a non-positive ttl falls back to DefaultTTL.
func NewCenter(ttl time.Duration, logger *slog.Logger) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Center{
		ttl:    ttl,
		now:    time.Now,
		logger: logger.With("component", "notify.center"),
	}
}

// Notify records a toast.
func (c *Center) Notify(level Level, message string) {
	n := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: c.now(),
	}
	c.mu.Lock()
	c.items = append(c.pruneLocked(n.CreatedAt), n)
	c.mu.Unlock()
	if level == LevelError {
		c.logger.Warn("notification", "level", level, "message", message)
	} else {
		c.logger.Debug("notification", "level", level, "message", message)
	}
}

// Pending lists unexpired toasts, oldest first, without consuming them.
func (c *Center) Pending() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = c.pruneLocked(c.now())
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Drain returns unexpired toasts and forgets all of them.
func (c *Center) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.pruneLocked(c.now())
	c.items = nil
	return out
}

func (c *Center) pruneLocked(now time.Time) []Notification {
	kept := c.items[:0]
	for _, n := range c.items {
		if now.Sub(n.CreatedAt) < c.ttl {
			kept = append(kept, n)
		}
	}
	return kept
}

var _ Notifier = (*Center)(nil)
