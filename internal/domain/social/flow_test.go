package social

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/healthdash/internal/domain/health"
	"github.com/yanqian/healthdash/internal/domain/notify"
	"github.com/yanqian/healthdash/internal/domain/session"
	apperrors "github.com/yanqian/healthdash/pkg/errors"
)

func TestShortQueryClearsWithoutCall(t *testing.T) {
	api := &stubAPI{users: []health.UserCandidate{{Username: "bob"}}}
	flow, clock, _ := newFlowUnderTest(api)

	flow.OnQueryChange(context.Background(), "bo")
	clock.fireAll()
	require.Len(t, flow.State().Results, 1)

	for _, q := range []string{"b", "", "é"} {
		flow.OnQueryChange(context.Background(), q)
		require.Empty(t, flow.State().Results)
		require.False(t, flow.State().Pending)
	}
	clock.fireAll()
	require.Equal(t, []string{"bo"}, api.queries())
}

func TestBurstOfKeystrokesIssuesOneCall(t *testing.T) {
	api := &stubAPI{}
	flow, clock, _ := newFlowUnderTest(api)

	for _, q := range []string{"al", "ali", "alic", "alice"} {
		flow.OnQueryChange(context.Background(), q)
	}
	require.True(t, flow.State().Pending)
	require.Equal(t, 300*time.Millisecond, clock.lastDelay())

	clock.fireAll()
	require.Equal(t, []string{"alice"}, api.queries())
	require.False(t, flow.State().Pending)
}

func TestOwnUsernameFilteredOut(t *testing.T) {
	api := &stubAPI{users: []health.UserCandidate{
		{Username: "ann", DisplayName: "Ann"},
		{Username: "annie", DisplayName: "Annie"},
	}}
	flow, clock, _ := newFlowUnderTest(api)

	flow.OnQueryChange(context.Background(), "an")
	clock.fireAll()
	require.Equal(t, []health.UserCandidate{{Username: "annie", DisplayName: "Annie"}}, flow.State().Results)
}

func TestStaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	api := &stubAPI{
		users: []health.UserCandidate{{Username: "old"}},
		block: map[string]chan struct{}{"ol": release},
	}
	flow, clock, _ := newFlowUnderTest(api)

	flow.OnQueryChange(context.Background(), "ol")
	first := clock.take()
	done := make(chan struct{})
	go func() {
		first()
		close(done)
	}()
	api.waitForCalls(1)

	flow.OnQueryChange(context.Background(), "x")
	close(release)
	<-done

	state := flow.State()
	require.Equal(t, "x", state.Query)
	require.Empty(t, state.Results)
}

func TestSearchFailureNotifies(t *testing.T) {
	api := &stubAPI{searchErr: errors.New("Request failed")}
	flow, clock, notes := newFlowUnderTest(api)

	flow.OnQueryChange(context.Background(), "bob")
	clock.fireAll()
	require.Equal(t, []string{"Search failed: Request failed"}, notes.messages)
}

func TestSelectAddsFriendAndRefreshes(t *testing.T) {
	api := &stubAPI{users: []health.UserCandidate{{Username: "bob"}}}
	flow, clock, notes := newFlowUnderTest(api)
	refresher := &countingRefresher{}
	flow.refresher = refresher

	flow.OnQueryChange(context.Background(), "bo")
	clock.fireAll()
	require.NoError(t, flow.Select(context.Background(), "bob"))

	require.Equal(t, []string{"bob"}, api.added)
	require.Equal(t, State{}, flow.State())
	require.Equal(t, 1, refresher.calls)
	require.Equal(t, []string{"Friend added successfully!"}, notes.messages)
}

func TestSelectFailureKeepsResults(t *testing.T) {
	api := &stubAPI{users: []health.UserCandidate{{Username: "bob"}}, addErr: errors.New("Already friends")}
	flow, clock, notes := newFlowUnderTest(api)
	refresher := &countingRefresher{}
	flow.refresher = refresher

	flow.OnQueryChange(context.Background(), "bo")
	clock.fireAll()
	require.Error(t, flow.Select(context.Background(), "bob"))
	require.Len(t, flow.State().Results, 1)
	require.Zero(t, refresher.calls)
	require.Equal(t, []string{"Already friends"}, notes.messages)
}

func TestSearchImmediate(t *testing.T) {
	api := &stubAPI{users: []health.UserCandidate{{Username: "bob"}, {Username: "ann"}}}
	flow, _, _ := newFlowUnderTest(api)

	results, err := flow.Search(context.Background(), "bo")
	require.NoError(t, err)
	require.Equal(t, []health.UserCandidate{{Username: "bob"}}, results)

	_, err = flow.Search(context.Background(), "b")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Len(t, api.queries(), 1)
}

func TestSearchSupersededReturnsNoResults(t *testing.T) {
	release := make(chan struct{})
	api := &stubAPI{
		users: []health.UserCandidate{{Username: "bob"}},
		block: map[string]chan struct{}{"bo": release},
	}
	flow, _, _ := newFlowUnderTest(api)

	type outcome struct {
		results []health.UserCandidate
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		results, err := flow.Search(context.Background(), "bo")
		done <- outcome{results, err}
	}()
	api.waitForCalls(1)

	flow.OnQueryChange(context.Background(), "x")
	close(release)
	got := <-done

	require.NoError(t, got.err)
	require.NotNil(t, got.results)
	require.Empty(t, got.results)
	require.Equal(t, "x", flow.State().Query)
}

func newFlowUnderTest(api *stubAPI) (*Flow, *fakeClock, *recordingNotifier) {
	clock := &fakeClock{}
	notes := &recordingNotifier{}
	flow := NewFlow(DefaultConfig(), api, staticIdentity{Username: "ann"}, nil, notes, slog.New(slog.NewTextHandler(io.Discard, nil)))
	flow.after = clock.AfterFunc
	return flow, clock, notes
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{delay: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) take() func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			return t.fn
		}
	}
	return func() {}
}

func (c *fakeClock) fireAll() {
	for {
		c.mu.Lock()
		var next *fakeTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired {
				next = t
				break
			}
		}
		if next != nil {
			next.fired = true
		}
		c.mu.Unlock()
		if next == nil {
			return
		}
		next.fn()
	}
}

func (c *fakeClock) lastDelay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timers[len(c.timers)-1].delay
}

type stubAPI struct {
	mu        sync.Mutex
	users     []health.UserCandidate
	searchErr error
	addErr    error
	block     map[string]chan struct{}
	searched  []string
	added     []string
}

func (s *stubAPI) SearchUsers(_ context.Context, query string) ([]health.UserCandidate, error) {
	s.mu.Lock()
	s.searched = append(s.searched, query)
	gate := s.block[query]
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return s.users, s.searchErr
}

func (s *stubAPI) AddFriend(_ context.Context, username string) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, username)
	return nil
}

func (s *stubAPI) queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.searched...)
}

func (s *stubAPI) waitForCalls(n int) {
	for {
		if len(s.queries()) >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

type staticIdentity session.Identity

func (s staticIdentity) CurrentIdentity() session.Identity {
	return session.Identity(s)
}

type countingRefresher struct {
	calls int
}

func (c *countingRefresher) LoadLeaderboard(context.Context) error {
	c.calls++
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingNotifier) Notify(_ notify.Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}
