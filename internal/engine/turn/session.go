// Package turn sequences a match. A Session is the aggregate that owns the
// board, the roster, the hand manager and the resolver of one match and is
// the only path through which any of them is mutated.
package turn

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/looplab/fsm"

	"github.com/KirkDiggler/ringside/internal/engine/board"
	"github.com/KirkDiggler/ringside/internal/engine/cards"
	"github.com/KirkDiggler/ringside/internal/engine/resolver"
	"github.com/KirkDiggler/ringside/internal/engine/roster"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/errors"
	"github.com/KirkDiggler/ringside/internal/pkg/clock"
)

// Config describes a new match
type Config struct {
	ID        string
	Board     board.Config
	Wrestlers []roster.Spec
	Rules     resolver.Rules
	Pool      *cards.Pool
	HandSize  int
	Roller    dice.Roller

	// Optional
	Seed           uint64 // how Roller was seeded; carried through snapshots
	Bus            events.EventBus
	Clock          clock.Clock
	TurnTimeout    time.Duration
	SettleDuration time.Duration
	MessageLimit   int
}

// Validate ensures the match can be set up
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("ID", c.ID, vb)
	if len(c.Wrestlers) < 2 {
		vb.Field("Wrestlers", "at least two wrestlers are required")
	}
	if c.Pool == nil {
		vb.RequiredField("Pool")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.TurnTimeout < 0 {
		vb.Field("TurnTimeout", "must not be negative")
	}
	if c.SettleDuration < 0 {
		vb.Field("SettleDuration", "must not be negative")
	}

	return vb.Build()
}

// Session is one match in progress. It is not safe for concurrent use;
// callers serialise commands per session.
type Session struct {
	id       string
	board    *board.Board
	registry *roster.Registry
	hands    *cards.Manager
	resolver *resolver.Resolver
	roller   dice.Roller
	seed     uint64
	bus      events.EventBus
	clock    clock.Clock
	machine  *fsm.FSM

	index        int
	turn         int
	selectedCard int
	selection    ring.Selection
	winner       string

	timeout     time.Duration
	settle      time.Duration
	deadline    time.Time
	settleUntil time.Time

	log *messageLog
}

// New sets up the board and roster and starts the first turn
func New(ctx context.Context, cfg *Config) (*Session, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid match config")
	}

	boardCfg := cfg.Board
	boardCfg.Roller = cfg.Roller
	for _, spec := range cfg.Wrestlers {
		boardCfg.Reserved = append(boardCfg.Reserved, spec.Position)
	}
	b, err := board.New(&boardCfg)
	if err != nil {
		return nil, err
	}

	bus := cfg.Bus
	if bus == nil {
		bus = events.NewBus()
	}

	registry, err := roster.New(&roster.Config{Board: b, Bus: bus})
	if err != nil {
		return nil, err
	}
	for _, spec := range cfg.Wrestlers {
		if _, err := registry.Add(spec); err != nil {
			return nil, errors.Wrapf(err, "failed to add wrestler %s", spec.ID)
		}
	}

	s, err := assemble(cfg, b, registry, bus, StateAwaitingAction)
	if err != nil {
		return nil, err
	}
	s.turn = 1
	s.index = 0

	s.record(ctx, ring.EventMatchStarted, nil, fmt.Sprintf("The match begins with %d wrestlers!", registry.Len()))
	if err := s.startTurn(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// assemble wires the components shared by New and Restore
func assemble(cfg *Config, b *board.Board, registry *roster.Registry, bus events.EventBus, state string) (*Session, error) {
	hands, err := cards.NewManager(&cards.Config{
		Pool:     cfg.Pool,
		Roller:   cfg.Roller,
		HandSize: cfg.HandSize,
	})
	if err != nil {
		return nil, err
	}

	res, err := resolver.New(&resolver.Config{Registry: registry, Rules: cfg.Rules})
	if err != nil {
		return nil, err
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Session{
		id:           cfg.ID,
		board:        b,
		registry:     registry,
		hands:        hands,
		resolver:     res,
		roller:       cfg.Roller,
		seed:         cfg.Seed,
		bus:          bus,
		clock:        clk,
		machine:      newMachine(cfg.ID, state),
		selectedCard: -1,
		selection:    ring.NoSelection{},
		timeout:      cfg.TurnTimeout,
		settle:       cfg.SettleDuration,
		log:          newMessageLog(cfg.MessageLimit),
	}, nil
}

// Seed is the value the roller was seeded with, or zero when unknown
func (s *Session) Seed() uint64 { return s.seed }

// ID identifies the match
func (s *Session) ID() string { return s.id }

// State is the scheduler state
func (s *Session) State() string { return s.machine.Current() }

// Turn is the round counter, starting at 1
func (s *Session) Turn() int { return s.turn }

// ActiveIndex is the turn order slot of the acting wrestler
func (s *Session) ActiveIndex() int { return s.index }

// Active returns the wrestler whose turn it is
func (s *Session) Active() *roster.Wrestler {
	w, err := s.registry.At(s.index)
	if err != nil {
		return nil
	}
	return w
}

// GameOver reports whether the match has ended
func (s *Session) GameOver() bool { return s.machine.Is(StateGameOver) }

// Winner returns the sole survivor once the match is over. A match where
// nobody survived has no winner.
func (s *Session) Winner() (string, bool) {
	return s.winner, s.GameOver() && s.winner != ""
}

// Selection returns the selected hand index (-1 for none) and target
func (s *Session) Selection() (int, ring.Selection) {
	return s.selectedCard, s.selection
}

// Messages returns the message history, newest first
func (s *Session) Messages() []string { return s.log.list() }

// Deadline is when the current turn times out. Zero when turns never
// time out.
func (s *Session) Deadline() time.Time { return s.deadline }

// Settling reports whether the previous action is still settling
func (s *Session) Settling() bool {
	return s.clock.Now().Before(s.settleUntil)
}

// Board returns the match board
func (s *Session) Board() *board.Board { return s.board }

// Registry returns the roster in turn order
func (s *Session) Registry() *roster.Registry { return s.registry }

// Hands returns the hand manager dealing from the match pool
func (s *Session) Hands() *cards.Manager { return s.hands }

// Resolver returns the action resolver bound to this board and roster
func (s *Session) Resolver() *resolver.Resolver { return s.resolver }

// Bus returns the event bus outcomes and eliminations are published on
func (s *Session) Bus() events.EventBus { return s.bus }

// ActiveHand resolves the acting wrestler's hand against the pool
func (s *Session) ActiveHand() []ring.Card {
	w := s.Active()
	if w == nil {
		return nil
	}
	ids := w.Hand()
	out := make([]ring.Card, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.hands.Pool().Resolve(id))
	}
	return out
}

// startTurn clears the selection, deals a hand and restarts the timer
func (s *Session) startTurn(ctx context.Context) error {
	s.clearSelection()

	active := s.Active()
	if err := s.hands.DrawHand(active); err != nil {
		return err
	}
	if s.timeout > 0 {
		s.deadline = s.clock.Now().Add(s.timeout)
	}

	s.record(ctx, ring.EventTurnStarted, active, fmt.Sprintf("Turn %d: %s's move.", s.turn, active.Name()))
	return nil
}

// endTurn decays the active wrestler's effects, then either ends the match
// or hands the turn to the next living wrestler.
func (s *Session) endTurn(ctx context.Context) error {
	active := s.Active()
	for _, kind := range s.registry.DecayStatus(active) {
		slog.Debug("Status expired",
			"match_id", s.id,
			"wrestler_id", active.GetID(),
			"status", kind)
	}
	s.clearSelection()
	s.deadline = time.Time{}

	if s.registry.LivingCount() <= 1 {
		return s.finish(ctx)
	}

	s.advance()
	if err := s.machine.Event(ctx, eventAdvance); err != nil {
		return errors.Wrap(err, "failed to advance turn")
	}
	return s.startTurn(ctx)
}

// advance moves to the next slot, counting a round on every wrap, and
// repeats until it lands on a living wrestler. Callers guarantee at least
// one other wrestler is alive.
func (s *Session) advance() {
	n := s.registry.Len()
	for {
		s.index = (s.index + 1) % n
		if s.index == 0 {
			s.turn++
		}
		if w, err := s.registry.At(s.index); err == nil && w.Alive() {
			return
		}
	}
}

func (s *Session) finish(ctx context.Context) error {
	var survivor *roster.Wrestler
	for w := range s.registry.Living() {
		survivor = w
	}

	msg := "Everyone is down. The match ends in a draw."
	if survivor != nil {
		s.winner = survivor.GetID()
		msg = fmt.Sprintf("%s wins the match!", survivor.Name())
	}

	if err := s.machine.Event(ctx, eventFinish); err != nil {
		return errors.Wrap(err, "failed to finish match")
	}
	s.record(ctx, ring.EventGameOver, survivor, msg)

	slog.Info("Match over",
		"match_id", s.id,
		"winner", s.winner,
		"turn", s.turn)
	return nil
}

func (s *Session) clearSelection() {
	s.selectedCard = -1
	s.selection = ring.NoSelection{}
}

// record stores msg in the history and publishes it as eventType
func (s *Session) record(ctx context.Context, eventType string, source *roster.Wrestler, msg string) {
	s.log.push(msg)
	s.publish(ctx, eventType, source, nil, msg)
}

func (s *Session) publish(ctx context.Context, eventType string, source, target *roster.Wrestler, msg string) {
	var src core.Entity = matchEntity(s.id)
	if source != nil {
		src = source
	}
	event := events.NewGameEvent(eventType, src, entity(target))
	event.Context().Set(ring.EventKeyMessage, msg)
	event.Context().Set(ring.EventKeyTurn, s.turn)
	if eventType == ring.EventGameOver {
		event.Context().Set(ring.EventKeyWinner, s.winner)
	}

	if err := s.bus.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish event",
			"match_id", s.id,
			"event", eventType,
			"error", err)
	}
}

// matchEntity is the event source for match-level events
type matchEntity string

func (m matchEntity) GetID() string   { return string(m) }
func (m matchEntity) GetType() string { return "match" }

// entity avoids handing a typed nil to the event bus
func entity(w *roster.Wrestler) core.Entity {
	if w == nil {
		return nil
	}
	return w
}
