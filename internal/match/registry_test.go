package match

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestRegistry_CreateGetRemove(t *testing.T) {
	g := NewRegistry()
	t.Cleanup(g.Close)

	room, err := g.Create(Player{ID: 1, Name: "alice"}, 3)
	if err != nil {
		t.Fatal(err)
	}
	room.mu.Unlock()

	if len(room.Code) != CodeLength {
		t.Errorf("code length = %d, want %d", len(room.Code), CodeLength)
	}

	got, err := g.Get(room.Code)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != room {
		t.Error("Get() returned a different room")
	}

	// codes are case-insensitive on input
	if _, err := g.Get(" " + strings.ToLower(room.Code) + " "); err != nil {
		t.Errorf("Get(lowercase) error: %v", err)
	}

	g.Remove(room.Code)
	if _, err := g.Get(room.Code); err != ErrRoomNotFound {
		t.Errorf("Get() after Remove err = %v, want ErrRoomNotFound", err)
	}
	if g.roomOf(1) != nil {
		t.Error("player claim should be released on Remove")
	}
}

func TestRegistry_CollisionRetry(t *testing.T) {
	codes := []string{"AAAAAA", "AAAAAA", "BBBBBB"}
	var i int
	g := NewRegistry(WithCodeGenerator(func() (string, error) {
		c := codes[i%len(codes)]
		i++
		return c, nil
	}))
	t.Cleanup(g.Close)

	r1, err := g.Create(Player{ID: 1, Name: "a"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	r1.mu.Unlock()

	r2, err := g.Create(Player{ID: 2, Name: "b"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	r2.mu.Unlock()

	if r1.Code != "AAAAAA" || r2.Code != "BBBBBB" {
		t.Fatalf("codes = %s,%s; want AAAAAA,BBBBBB", r1.Code, r2.Code)
	}
}

func TestRegistry_Exhausted(t *testing.T) {
	calls := 0
	g := NewRegistry(WithCodeGenerator(func() (string, error) {
		calls++
		return "ZZZZZZ", nil
	}))
	t.Cleanup(g.Close)

	r, err := g.Create(Player{ID: 1, Name: "a"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	r.mu.Unlock()

	calls = 0
	if _, err := g.Create(Player{ID: 2, Name: "b"}, 1); err != ErrRegistryExhausted {
		t.Fatalf("err = %v, want ErrRegistryExhausted", err)
	}
	if calls != maxCodeAttempts {
		t.Errorf("generator called %d times, want %d", calls, maxCodeAttempts)
	}
	if g.roomOf(2) != nil {
		t.Error("failed create must not claim a seat")
	}
}

func TestRegistry_ConcurrentCreateUniqueCodes(t *testing.T) {
	g := NewRegistry()
	t.Cleanup(g.Close)

	const n = 200
	codes := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := g.Create(Player{ID: int64(i + 1), Name: "p"}, 1)
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			codes[i] = r.Code
			r.mu.Unlock()
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, c := range codes {
		if seen[c] {
			t.Fatalf("duplicate code %s", c)
		}
		seen[c] = true
	}
	if g.Len() != n {
		t.Errorf("Len() = %d, want %d", g.Len(), n)
	}
}

func TestRegistry_ScheduledRemoval(t *testing.T) {
	g := NewRegistry()
	t.Cleanup(g.Close)

	r, _ := g.Create(Player{ID: 1, Name: "a"}, 1)
	r.mu.Unlock()

	g.scheduleRemoval(r.Code, 10*time.Millisecond)
	if g.Len() != 1 {
		t.Fatal("room removed before grace period")
	}
	waitFor(t, time.Second, func() bool { return g.Len() == 0 })
}

func TestRegistry_CloseClears(t *testing.T) {
	g := NewRegistry()
	r, _ := g.Create(Player{ID: 1, Name: "a"}, 1)
	r.mu.Unlock()
	g.scheduleRemoval(r.Code, time.Hour)

	g.Close()

	if g.Len() != 0 {
		t.Errorf("Len() after Close = %d", g.Len())
	}
	if _, err := g.Create(Player{ID: 2, Name: "b"}, 1); err == nil {
		t.Error("Create after Close should fail")
	}
}
