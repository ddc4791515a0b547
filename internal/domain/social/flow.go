package social

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/yanqian/healthdash/internal/domain/health"
	"github.com/yanqian/healthdash/internal/domain/notify"
	"github.com/yanqian/healthdash/internal/domain/session"
	apperrors "github.com/yanqian/healthdash/pkg/errors"
)

// Config tunes the debounce.
type Config struct {
	MinQueryLength int           `yaml:"minQueryLength"`
	Debounce       time.Duration `yaml:"debounce"`
}

// DefaultConfig waits 300ms after the last keystroke and needs two characters.
func DefaultConfig() Config {
	return Config{MinQueryLength: 2, Debounce: 300 * time.Millisecond}
}

// API is the slice of the backend used for friend discovery.
type API interface {
	SearchUsers(ctx context.Context, query string) ([]health.UserCandidate, error)
	AddFriend(ctx context.Context, username string) error
}

// IdentitySource yields the signed-in user.
type IdentitySource interface {
	CurrentIdentity() session.Identity
}

// LeaderboardRefresher reloads the friends section after a friend is added.
type LeaderboardRefresher interface {
	LoadLeaderboard(ctx context.Context) error
}

// Timer is a pending deferred call.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// State is a snapshot of the search box and its results.
type State struct {
	Query   string                 `json:"query"`
	Results []health.UserCandidate `json:"results"`
	Pending bool                   `json:"pending"`
}

// Flow is the debounced query, results and add-friend pipeline. Every scheduled search
// carries a sequence number; a response is only rendered while its number is the
// latest issued.
type Flow struct {
	mu         sync.Mutex
	cfg        Config
	api        API
	identities IdentitySource
	refresher  LeaderboardRefresher
	notifier   notify.Notifier
	logger     *slog.Logger
	after      AfterFunc

	query   string
	results []health.UserCandidate
	timer   Timer
	pending bool
	seq     uint64
}

// NewFlow wires the search flow.
func NewFlow(cfg Config, api API, identities IdentitySource, refresher LeaderboardRefresher, notifier notify.Notifier, logger *slog.Logger) *Flow {
	def := DefaultConfig()
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = def.MinQueryLength
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = def.Debounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Flow{
		cfg:        cfg,
		api:        api,
		identities: identities,
		refresher:  refresher,
		notifier:   notifier,
		logger:     logger.With("component", "social.flow"),
		after:      realAfterFunc,
	}
}

// OnQueryChange handles one edit of the search box. Short queries clear the results at
// once; longer ones are searched after the quiescence window, superseding any pending
// search.
func (f *Flow) OnQueryChange(ctx context.Context, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.seq++
	f.query = text
	f.pending = false
	if utf8.RuneCountInString(text) < f.cfg.MinQueryLength {
		f.results = nil
		return
	}

	seq := f.seq
	bg := context.WithoutCancel(ctx)
	f.pending = true
	f.timer = f.after(f.cfg.Debounce, func() { f.run(bg, seq, text) })
}

// Search runs a query immediately, bypassing the debounce.
func (f *Flow) Search(ctx context.Context, text string) ([]health.UserCandidate, error) {
	f.mu.Lock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.seq++
	seq := f.seq
	f.query = text
	f.pending = false
	if utf8.RuneCountInString(text) < f.cfg.MinQueryLength {
		f.results = nil
		f.mu.Unlock()
		return nil, apperrors.Invalid(fmt.Sprintf("Search needs at least %d characters", f.cfg.MinQueryLength))
	}
	f.mu.Unlock()

	results, fresh, err := f.run(ctx, seq, text)
	if err != nil {
		return nil, err
	}
	if !fresh {
		return []health.UserCandidate{}, nil
	}
	return slices.Clone(results), nil
}

// Select adds username as a friend, then clears the search and refreshes the
// leaderboard.
func (f *Flow) Select(ctx context.Context, username string) error {
	if err := f.api.AddFriend(ctx, username); err != nil {
		f.notifier.Notify(notify.LevelError, apperrors.Message(err))
		return err
	}

	f.mu.Lock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.seq++
	f.query = ""
	f.results = nil
	f.pending = false
	f.mu.Unlock()

	f.notifier.Notify(notify.LevelSuccess, "Friend added successfully!")
	if f.refresher != nil {
		_ = f.refresher.LoadLeaderboard(ctx)
	}
	return nil
}

// State returns the current snapshot.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{Query: f.query, Results: slices.Clone(f.results), Pending: f.pending}
}

// Reset forgets the query, e.g. after logout.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.seq++
	f.query = ""
	f.results = nil
	f.pending = false
}

// run searches query and publishes the filtered results. fresh is false when a newer
// query superseded this one, in which case nothing is published.
func (f *Flow) run(ctx context.Context, seq uint64, query string) (results []health.UserCandidate, fresh bool, err error) {
	if !f.current(seq) {
		return nil, false, nil
	}
	users, err := f.api.SearchUsers(ctx, query)

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.seq {
		f.logger.Debug("stale search response dropped", "seq", seq, "latest", f.seq)
		return nil, false, nil
	}
	f.pending = false
	f.timer = nil
	if err != nil {
		f.notifier.Notify(notify.LevelError, "Search failed: "+apperrors.Message(err))
		return nil, true, err
	}
	self := ""
	if f.identities != nil {
		self = f.identities.CurrentIdentity().Username
	}
	results = make([]health.UserCandidate, 0, len(users))
	for _, u := range users {
		if u.Username == self {
			continue
		}
		results = append(results, u)
	}
	f.results = results
	return results, true, nil
}

func (f *Flow) current(seq uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return seq == f.seq
}
