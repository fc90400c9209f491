package match

import (
	"fmt"
	"sync"
	"time"
)

const maxCodeAttempts = 10

type Option func(*Registry)

// WithCodeGenerator replaces GenerateCode, mainly for tests.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(g *Registry) {
		g.newCode = gen
	}
}

// Registry owns the live rooms and the index of which player sits where.
//
// Lock order is room.mu before Registry.mu. Registry methods never take a
// room lock, so they may be called by code that already holds one.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	players map[int64]string
	timers  map[string]*time.Timer
	newCode func() (string, error)
	closed  bool
}

func NewRegistry(opts ...Option) *Registry {
	g := &Registry{
		rooms:   make(map[string]*Room),
		players: make(map[int64]string),
		timers:  make(map[string]*time.Timer),
		newCode: GenerateCode,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Create allocates a room with creator in seat 1. The room is returned with
// its lock held so the caller can emit events before anyone else can join;
// the caller must unlock it.
func (g *Registry) Create(creator Player, roundsTotal int) (*Room, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil, fmt.Errorf("registry closed: %w", ErrRegistryExhausted)
	}
	if _, seated := g.players[creator.ID]; seated {
		return nil, ErrAlreadyInRoom
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := g.newCode()
		if err != nil {
			return nil, fmt.Errorf("generating room code: %w", err)
		}
		code = NormalizeCode(code)
		if _, exists := g.rooms[code]; exists {
			continue
		}

		room := newRoom(code, creator, roundsTotal)
		room.mu.Lock()
		g.rooms[code] = room
		g.players[creator.ID] = code
		roomsActive.Inc()
		roomsCreated.Inc()
		return room, nil
	}
	return nil, ErrRegistryExhausted
}

func (g *Registry) Get(code string) (*Room, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	room, ok := g.rooms[NormalizeCode(code)]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Remove drops the room and any seat claims pointing at it.
func (g *Registry) Remove(code string) {
	code = NormalizeCode(code)

	g.mu.Lock()
	defer g.mu.Unlock()

	if t, ok := g.timers[code]; ok {
		t.Stop()
		delete(g.timers, code)
	}
	if _, ok := g.rooms[code]; !ok {
		return
	}
	delete(g.rooms, code)
	g.releaseLocked(code)
	roomsActive.Dec()
}

func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// Close cancels pending teardowns and forgets every room.
func (g *Registry) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for code, t := range g.timers {
		t.Stop()
		delete(g.timers, code)
	}
	roomsActive.Sub(float64(len(g.rooms)))
	clear(g.rooms)
	clear(g.players)
	g.closed = true
}

// roomOf returns the live room where playerID holds a seat.
func (g *Registry) roomOf(playerID int64) *Room {
	g.mu.RLock()
	defer g.mu.RUnlock()

	code, ok := g.players[playerID]
	if !ok {
		return nil
	}
	return g.rooms[code]
}

// claim records playerID as seated in code unless they sit elsewhere.
func (g *Registry) claim(playerID int64, code string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.players[playerID]; ok && existing != code {
		return ErrAlreadyInRoom
	}
	g.players[playerID] = code
	return nil
}

// release frees every seat claim held in code.
func (g *Registry) release(code string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.releaseLocked(code)
}

func (g *Registry) releaseLocked(code string) {
	for id, c := range g.players {
		if c == code {
			delete(g.players, id)
		}
	}
}

// scheduleRemoval removes code after the grace period so final events can
// still be delivered.
func (g *Registry) scheduleRemoval(code string, after time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}
	if t, ok := g.timers[code]; ok {
		t.Stop()
	}
	g.timers[code] = time.AfterFunc(after, func() {
		g.Remove(code)
	})
}
