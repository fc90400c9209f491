package match

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// recorder is a Notifier that keeps every event per player.
type recorder struct {
	mu     sync.Mutex
	events map[int64][]Event
}

func newRecorder() *recorder {
	return &recorder{events: make(map[int64][]Event)}
}

func (r *recorder) Notify(playerID int64, ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[playerID] = append(r.events[playerID], ev)
}

func (r *recorder) of(playerID int64) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events[playerID]...)
}

func (r *recorder) count(playerID int64, typ EventType) int {
	n := 0
	for _, ev := range r.of(playerID) {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func (r *recorder) last(playerID int64, typ EventType) (Event, bool) {
	evs := r.of(playerID)
	for i := len(evs) - 1; i >= 0; i-- {
		if evs[i].Type == typ {
			return evs[i], true
		}
	}
	return Event{}, false
}

type statsCall struct {
	playerID            int64
	wins, losses, draws int
}

type fakeStats struct {
	mu    sync.Mutex
	calls []statsCall
	err   error
}

func (f *fakeStats) RecordMatchResult(ctx context.Context, playerID int64, wins, losses, draws int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, statsCall{playerID: playerID, wins: wins, losses: losses, draws: draws})
	return f.err
}

func (f *fakeStats) snapshot() []statsCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]statsCall(nil), f.calls...)
}

func testConfig(rounds int) Config {
	return Config{
		RoundsPerMatch: rounds,
		GracePeriod:    20 * time.Millisecond,
		StatsTimeout:   time.Second,
	}
}

func newTestCoordinator(t *testing.T, rounds int) (*Coordinator, *recorder, *fakeStats) {
	t.Helper()
	rec := newRecorder()
	stats := &fakeStats{}
	c := NewCoordinator(NewRegistry(), rec, stats, testConfig(rounds))
	t.Cleanup(c.Close)
	return c, rec, stats
}

// startMatch creates a room for player 1 and seats player 2.
func startMatch(t *testing.T, c *Coordinator) string {
	t.Helper()
	ctx := context.Background()
	code, err := c.CreateRoom(ctx, 1, "alice")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	seat, err := c.JoinRoom(ctx, code, 2, "bob")
	if err != nil {
		t.Fatalf("JoinRoom: %v", err)
	}
	if seat != Seat2 {
		t.Fatalf("JoinRoom seat = %d, want %d", seat, Seat2)
	}
	return code
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func mustErr(t *testing.T, got, want error) {
	t.Helper()
	if !errors.Is(got, want) {
		t.Fatalf("err = %v, want %v", got, want)
	}
}
