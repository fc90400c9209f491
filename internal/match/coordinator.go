package match

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rps_webapp/internal/game"
	"rps_webapp/internal/logger"
)

// StatsReporter persists a finished match for one player. Counts are rounds
// from that player's perspective.
type StatsReporter interface {
	RecordMatchResult(ctx context.Context, playerID int64, wins, losses, draws int) error
}

type Config struct {
	RoundsPerMatch int
	// GracePeriod keeps a finished room around so final events are delivered.
	GracePeriod  time.Duration
	StatsTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		RoundsPerMatch: 5,
		GracePeriod:    5 * time.Second,
		StatsTimeout:   5 * time.Second,
	}
}

// Coordinator runs the matchmaking gate and the round state machine on top
// of a Registry. Every mutation of a room happens under that room's lock.
type Coordinator struct {
	rooms    *Registry
	notifier Notifier
	stats    StatsReporter
	cfg      Config
	log      *slog.Logger

	reports sync.WaitGroup
}

func NewCoordinator(rooms *Registry, notifier Notifier, stats StatsReporter, cfg Config) *Coordinator {
	def := DefaultConfig()
	if cfg.RoundsPerMatch <= 0 {
		cfg.RoundsPerMatch = def.RoundsPerMatch
	}
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = def.GracePeriod
	}
	if cfg.StatsTimeout <= 0 {
		cfg.StatsTimeout = def.StatsTimeout
	}
	return &Coordinator{
		rooms:    rooms,
		notifier: notifier,
		stats:    stats,
		cfg:      cfg,
		log:      logger.With("component", "match"),
	}
}

func (c *Coordinator) Registry() *Registry {
	return c.rooms
}

// Room returns a snapshot of the room with the given code.
func (c *Coordinator) Room(code string) (Snapshot, error) {
	room, err := c.rooms.Get(code)
	if err != nil {
		return Snapshot{}, err
	}
	return room.Snapshot(), nil
}

// Close waits for in-flight stats reports and clears the registry.
func (c *Coordinator) Close() {
	c.reports.Wait()
	c.rooms.Close()
}

func (c *Coordinator) notify(playerID int64, ev Event) {
	if c.notifier == nil || playerID == 0 {
		return
	}
	c.notifier.Notify(playerID, ev)
}

// abandon moves a live room to Abandoned and tells the other seat.
// Caller holds room.mu.
func (c *Coordinator) abandon(room *Room, leaver Seat) {
	if room.state.Terminal() {
		return
	}

	prev := room.state
	room.state = StateAbandoned
	room.pending = [2]game.Move{}
	c.rooms.release(room.Code)
	matchesFinished.WithLabelValues(string(StateAbandoned)).Inc()

	c.log.Info("room abandoned", "room", room.Code, "seat", int(leaver), "previous_state", string(prev))

	if other := room.player(leaver.Other()); other != nil {
		c.notify(other.ID, Event{
			Type:    EventOpponentLeft,
			Code:    room.Code,
			Payload: OpponentLeftPayload{Code: room.Code},
		})
	}
	c.rooms.scheduleRemoval(room.Code, c.cfg.GracePeriod)
}

// report sends a player's final tally to the stats store without blocking
// the room. Failures are logged and never reach the players.
func (c *Coordinator) report(code string, p *Player, t Tally) {
	if c.stats == nil || p == nil || p.ID == 0 {
		return
	}

	c.reports.Add(1)
	go func() {
		defer c.reports.Done()

		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.StatsTimeout)
		defer cancel()

		if err := c.stats.RecordMatchResult(ctx, p.ID, t.Wins, t.Losses, t.Draws); err != nil {
			statsReportFailures.Inc()
			c.log.Error("stats report failed", "room", code, "user", p.ID, "error", err)
			return
		}
		c.log.Debug("stats reported", "room", code, "user", p.ID)
	}()
}
