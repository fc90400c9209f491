package match

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"rps_webapp/internal/game"
)

func TestSubmitMove_ThreeRoundScenario(t *testing.T) {
	c, rec, stats := newTestCoordinator(t, 3)
	ctx := context.Background()
	code := startMatch(t, c)

	seat1 := []game.Move{game.Rock, game.Paper, game.Scissors}
	seat2 := []game.Move{game.Scissors, game.Paper, game.Rock}
	want1 := []game.Result{game.ResultWin, game.ResultDraw, game.ResultLose}

	for i := range seat1 {
		if err := c.SubmitMove(ctx, code, Seat1, seat1[i]); err != nil {
			t.Fatalf("round %d seat1: %v", i+1, err)
		}
		if err := c.SubmitMove(ctx, code, Seat2, seat2[i]); err != nil {
			t.Fatalf("round %d seat2: %v", i+1, err)
		}
	}

	var results []RoundResultPayload
	for _, ev := range rec.of(1) {
		if ev.Type == EventRoundResult {
			results = append(results, ev.Payload.(RoundResultPayload))
		}
	}
	if len(results) != 3 {
		t.Fatalf("seat 1 got %d round results, want 3", len(results))
	}
	for i, r := range results {
		if r.Outcome != want1[i] {
			t.Errorf("round %d outcome = %s, want %s", i+1, r.Outcome, want1[i])
		}
		if r.YourMove != seat1[i] || r.OpponentMove != seat2[i] {
			t.Errorf("round %d moves = %s/%s", i+1, r.YourMove, r.OpponentMove)
		}
		if r.Round != i+1 || r.RoundsRemaining != 2-i {
			t.Errorf("round %d numbering = %d/%d", i+1, r.Round, r.RoundsRemaining)
		}
	}

	ev, ok := rec.last(1, EventMatchComplete)
	if !ok {
		t.Fatal("seat 1 did not receive match_complete")
	}
	if p := ev.Payload.(MatchCompletePayload); p.FinalWins != 1 || p.FinalLosses != 1 || p.FinalDraws != 1 {
		t.Errorf("seat 1 final = %+v, want 1/1/1", p)
	}
	ev, ok = rec.last(2, EventMatchComplete)
	if !ok {
		t.Fatal("seat 2 did not receive match_complete")
	}
	if p := ev.Payload.(MatchCompletePayload); p.FinalWins != 1 || p.FinalLosses != 1 || p.FinalDraws != 1 {
		t.Errorf("seat 2 final = %+v, want 1/1/1", p)
	}

	snap, err := c.Room(code)
	if err == nil && snap.State != StateCompleted {
		t.Errorf("state = %s, want %s", snap.State, StateCompleted)
	}

	err = c.SubmitMove(ctx, code, Seat1, game.Rock)
	if err != ErrMatchNotInProgress && err != ErrRoomNotFound {
		t.Errorf("SubmitMove after completion err = %v, want ErrMatchNotInProgress", err)
	}

	c.reports.Wait()
	calls := stats.snapshot()
	if len(calls) != 2 {
		t.Fatalf("stats calls = %d, want 2", len(calls))
	}
	for _, call := range calls {
		if call.wins != 1 || call.losses != 1 || call.draws != 1 {
			t.Errorf("stats for %d = %+v", call.playerID, call)
		}
	}

	waitFor(t, time.Second, func() bool { return c.Registry().Len() == 0 })
}

func TestSubmitMove_AsymmetricTally(t *testing.T) {
	c, rec, stats := newTestCoordinator(t, 2)
	ctx := context.Background()
	code := startMatch(t, c)

	for i := 0; i < 2; i++ {
		_ = c.SubmitPlayerMove(ctx, code, 1, game.Paper)
		_ = c.SubmitPlayerMove(ctx, code, 2, game.Rock)
	}

	ev, _ := rec.last(1, EventMatchComplete)
	if p := ev.Payload.(MatchCompletePayload); p.FinalWins != 2 || p.FinalLosses != 0 {
		t.Errorf("seat 1 final = %+v", p)
	}
	ev, _ = rec.last(2, EventMatchComplete)
	if p := ev.Payload.(MatchCompletePayload); p.FinalWins != 0 || p.FinalLosses != 2 {
		t.Errorf("seat 2 final = %+v", p)
	}

	c.reports.Wait()
	for _, call := range stats.snapshot() {
		switch call.playerID {
		case 1:
			if call.wins != 2 || call.losses != 0 {
				t.Errorf("player 1 stats = %+v", call)
			}
		case 2:
			if call.wins != 0 || call.losses != 2 {
				t.Errorf("player 2 stats = %+v", call)
			}
		default:
			t.Errorf("unexpected player %d", call.playerID)
		}
	}
}

func TestSubmitMove_OverwriteBeforeResolution(t *testing.T) {
	c, rec, _ := newTestCoordinator(t, 3)
	ctx := context.Background()
	code := startMatch(t, c)

	_ = c.SubmitMove(ctx, code, Seat1, game.Rock)
	_ = c.SubmitMove(ctx, code, Seat1, game.Paper)

	snap, _ := c.Room(code)
	if snap.MovesSubmitted != 1 {
		t.Fatalf("moves submitted = %d, want 1", snap.MovesSubmitted)
	}
	if n := rec.count(1, EventRoundResult); n != 0 {
		t.Fatal("round resolved with one seat")
	}

	_ = c.SubmitMove(ctx, code, Seat2, game.Rock)

	ev, ok := rec.last(1, EventRoundResult)
	if !ok {
		t.Fatal("no round result")
	}
	if p := ev.Payload.(RoundResultPayload); p.YourMove != game.Paper || p.Outcome != game.ResultWin {
		t.Errorf("payload = %+v, want paper/win", p)
	}

	snap, _ = c.Room(code)
	if snap.MovesSubmitted != 0 || snap.RoundsCompleted != 1 {
		t.Errorf("after resolution: submitted=%d completed=%d", snap.MovesSubmitted, snap.RoundsCompleted)
	}
}

func TestSubmitMove_Errors(t *testing.T) {
	c, _, _ := newTestCoordinator(t, 3)
	ctx := context.Background()

	err := c.SubmitMove(ctx, "ABCDEF", Seat1, game.Rock)
	mustErr(t, err, ErrRoomNotFound)

	code, _ := c.CreateRoom(ctx, 1, "alice")

	err = c.SubmitMove(ctx, code, Seat1, game.Rock)
	mustErr(t, err, ErrMatchNotInProgress)

	err = c.SubmitMove(ctx, code, Seat2, game.Rock)
	mustErr(t, err, ErrInvalidSeat)

	err = c.SubmitMove(ctx, code, Seat(7), game.Rock)
	mustErr(t, err, ErrInvalidSeat)

	err = c.SubmitPlayerMove(ctx, code, 99, game.Rock)
	mustErr(t, err, ErrInvalidSeat)

	err = c.SubmitMove(ctx, code, Seat1, game.Move("lizard"))
	mustErr(t, err, game.ErrInvalidMove)
}

func TestSubmitMove_ConcurrentResolvesOnce(t *testing.T) {
	const rounds = 200
	c, rec, _ := newTestCoordinator(t, rounds)
	ctx := context.Background()
	code := startMatch(t, c)

	for i := 0; i < rounds; i++ {
		m1 := game.Moves[i%3]
		m2 := game.Moves[(i/3)%3]

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := c.SubmitPlayerMove(ctx, code, 1, m1); err != nil {
				t.Errorf("seat1 round %d: %v", i+1, err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := c.SubmitPlayerMove(ctx, code, 2, m2); err != nil {
				t.Errorf("seat2 round %d: %v", i+1, err)
			}
		}()
		wg.Wait()

		ev, ok := rec.last(1, EventRoundResult)
		if !ok {
			t.Fatalf("round %d: no result", i+1)
		}
		p := ev.Payload.(RoundResultPayload)
		if p.Round != i+1 {
			t.Fatalf("round %d: last result is for round %d", i+1, p.Round)
		}
		if p.YourMove != m1 || p.OpponentMove != m2 {
			t.Fatalf("round %d: moves %s/%s, want %s/%s", i+1, p.YourMove, p.OpponentMove, m1, m2)
		}
	}

	if n := rec.count(1, EventRoundResult); n != rounds {
		t.Errorf("seat 1 round results = %d, want %d", n, rounds)
	}
	if n := rec.count(2, EventRoundResult); n != rounds {
		t.Errorf("seat 2 round results = %d, want %d", n, rounds)
	}
	if n := rec.count(1, EventMatchComplete); n != 1 {
		t.Errorf("match_complete count = %d, want 1", n)
	}
}

func TestEventOrderPerPlayer(t *testing.T) {
	c, rec, _ := newTestCoordinator(t, 1)
	ctx := context.Background()
	code := startMatch(t, c)

	_ = c.SubmitMove(ctx, code, Seat1, game.Rock)
	_ = c.SubmitMove(ctx, code, Seat2, game.Rock)

	var got []EventType
	for _, ev := range rec.of(1) {
		got = append(got, ev.Type)
	}
	want := []EventType{EventRoomCreated, EventOpponentJoined, EventRoundResult, EventMatchComplete}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestStatsFailureDoesNotAffectMatch(t *testing.T) {
	rec := newRecorder()
	stats := &fakeStats{err: errors.New("db down")}
	c := NewCoordinator(NewRegistry(), rec, stats, testConfig(1))
	t.Cleanup(c.Close)
	ctx := context.Background()
	code := startMatch(t, c)

	if err := c.SubmitMove(ctx, code, Seat1, game.Rock); err != nil {
		t.Fatal(err)
	}
	if err := c.SubmitMove(ctx, code, Seat2, game.Scissors); err != nil {
		t.Fatalf("resolution should not surface stats errors: %v", err)
	}
	if n := rec.count(1, EventMatchComplete); n != 1 {
		t.Errorf("match_complete count = %d, want 1", n)
	}
	c.reports.Wait()
	if len(stats.snapshot()) != 2 {
		t.Errorf("stats attempts = %d, want 2", len(stats.snapshot()))
	}
}

func TestRoomsAreIndependent(t *testing.T) {
	c, _, _ := newTestCoordinator(t, 1)
	ctx := context.Background()

	a, _ := c.CreateRoom(ctx, 1, "a")
	b, _ := c.CreateRoom(ctx, 2, "b")
	_, _ = c.JoinRoom(ctx, a, 3, "c")
	_, _ = c.JoinRoom(ctx, b, 4, "d")

	// hold room a's lock; work on room b must still complete
	ra, _ := c.Registry().Get(a)
	ra.mu.Lock()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.SubmitPlayerMove(ctx, b, 2, game.Rock)
		_ = c.SubmitPlayerMove(ctx, b, 4, game.Paper)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("room b blocked on room a")
	}
	ra.mu.Unlock()
}
