// Package match implements the match orchestrator: the command surface over
// live sessions, AI auto-play, timeouts and snapshot persistence.
package match

//go:generate mockgen -destination=mock/mock_service.go -package=matchmock github.com/KirkDiggler/ringside/internal/orchestrators/match Service

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/ringside/internal/config"
	"github.com/KirkDiggler/ringside/internal/engine/turn"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/errors"
	"github.com/KirkDiggler/ringside/internal/pkg/clock"
	"github.com/KirkDiggler/ringside/internal/pkg/idgen"
	"github.com/KirkDiggler/ringside/internal/pkg/rng"
	"github.com/KirkDiggler/ringside/internal/repositories/matches"
)

// DefaultMaxAutoTurns bounds how many AI turns one command may trigger, so
// an all-AI stalemate cannot spin forever
const DefaultMaxAutoTurns = 500

// Service defines the interface for match operations
type Service interface {
	CreateMatch(ctx context.Context, input *CreateMatchInput) (*CreateMatchOutput, error)
	GetMatch(ctx context.Context, input *GetMatchInput) (*GetMatchOutput, error)

	// Human command surface. Commands that end a human turn let AI
	// wrestlers play until a human is active again or the match is over.
	SelectCard(ctx context.Context, input *SelectCardInput) (*SelectCardOutput, error)
	SelectTarget(ctx context.Context, input *SelectTargetInput) (*SelectTargetOutput, error)
	ConfirmAction(ctx context.Context, input *ConfirmActionInput) (*ConfirmActionOutput, error)
	EndTurn(ctx context.Context, input *EndTurnInput) (*EndTurnOutput, error)

	SaveMatch(ctx context.Context, input *SaveMatchInput) (*SaveMatchOutput, error)
	LoadMatch(ctx context.Context, input *LoadMatchInput) (*LoadMatchOutput, error)
	ExpireTurns(ctx context.Context, input *ExpireTurnsInput) (*ExpireTurnsOutput, error)
	DeleteMatch(ctx context.Context, input *DeleteMatchInput) (*DeleteMatchOutput, error)
}

// Config holds the dependencies for the match orchestrator
type Config struct {
	Repository  matches.Repository
	IDGenerator idgen.Generator

	// Optional
	Clock        clock.Clock
	Scenario     *config.Scenario
	MaxAutoTurns int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.MaxAutoTurns < 0 {
		vb.Field("MaxAutoTurns", "must not be negative")
	}
	if c.Scenario != nil {
		if err := c.Scenario.Validate(); err != nil {
			vb.Fieldf("Scenario", "%s", errors.GetMessage(err))
		}
	}

	return vb.Build()
}

type orchestrator struct {
	repo         matches.Repository
	idGen        idgen.Generator
	clock        clock.Clock
	scenario     *config.Scenario
	maxAutoTurns int

	mu   sync.RWMutex
	live map[string]*liveMatch
}

// liveMatch serialises commands on one session
type liveMatch struct {
	mu       sync.Mutex
	session  *turn.Session
	scenario *config.Scenario
}

// NewOrchestrator creates a new match orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	scenario := cfg.Scenario
	if scenario == nil {
		scenario = config.DefaultScenario()
	}
	maxAuto := cfg.MaxAutoTurns
	if maxAuto == 0 {
		maxAuto = DefaultMaxAutoTurns
	}

	return &orchestrator{
		repo:         cfg.Repository,
		idGen:        cfg.IDGenerator,
		clock:        clk,
		scenario:     scenario,
		maxAutoTurns: maxAuto,
		live:         make(map[string]*liveMatch),
	}, nil
}

// CreateMatch starts a match and plays any AI turns that precede the first
// human turn
func (o *orchestrator) CreateMatch(ctx context.Context, input *CreateMatchInput) (*CreateMatchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	scenario := input.Scenario
	if scenario == nil {
		scenario = o.scenario
	} else if err := scenario.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid scenario")
	}

	seed := input.Seed
	if seed == 0 {
		seed = scenario.Seed
	}
	if seed == 0 {
		// nolint:gosec // seeds are not secrets
		seed = uint64(o.clock.Now().UnixNano())
	}

	matchID := o.idGen.Generate()
	session, err := o.newSession(ctx, matchID, scenario, seed)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create match %s", matchID)
	}

	m := &liveMatch{session: session, scenario: scenario}

	slog.Info("Match created",
		"match_id", matchID,
		"scenario", scenario.Name,
		"seed", seed,
		"wrestlers", session.Registry().Len())

	m.mu.Lock()
	defer m.mu.Unlock()

	o.mu.Lock()
	o.live[matchID] = m
	o.mu.Unlock()

	outcomes, err := o.autoPlay(ctx, m)
	if err != nil {
		return nil, err
	}

	return &CreateMatchOutput{
		Match:    buildView(m.session),
		Outcomes: outcomes,
	}, nil
}

// GetMatch returns the current view of a live match
func (o *orchestrator) GetMatch(_ context.Context, input *GetMatchInput) (*GetMatchOutput, error) {
	m, err := o.lookup(input)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return &GetMatchOutput{Match: buildView(m.session)}, nil
}

// SelectCard picks a card in the active hand
func (o *orchestrator) SelectCard(_ context.Context, input *SelectCardInput) (*SelectCardOutput, error) {
	var matchID string
	if input != nil {
		matchID = input.MatchID
	}
	m, err := o.lookup(&GetMatchInput{MatchID: matchID})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := o.requireHuman(m.session); err != nil {
		return nil, err
	}
	if err := m.session.SelectCard(input.CardIndex); err != nil {
		return nil, err
	}

	return &SelectCardOutput{Match: buildView(m.session)}, nil
}

// SelectTarget aims the selected card at a cell or wrestler
func (o *orchestrator) SelectTarget(_ context.Context, input *SelectTargetInput) (*SelectTargetOutput, error) {
	var matchID string
	if input != nil {
		matchID = input.MatchID
	}
	m, err := o.lookup(&GetMatchInput{MatchID: matchID})
	if err != nil {
		return nil, err
	}
	if input.Target.Cell != nil && input.Target.EntityID != "" {
		return nil, errors.InvalidArgument("target is either a cell or a wrestler, not both")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := o.requireHuman(m.session); err != nil {
		return nil, err
	}
	if err := m.session.SelectTarget(input.Target.selection()); err != nil {
		return nil, err
	}

	return &SelectTargetOutput{Match: buildView(m.session)}, nil
}

// ConfirmAction plays the selected card, then any AI turns that follow
func (o *orchestrator) ConfirmAction(ctx context.Context, input *ConfirmActionInput) (*ConfirmActionOutput, error) {
	var matchID string
	if input != nil {
		matchID = input.MatchID
	}
	m, err := o.lookup(&GetMatchInput{MatchID: matchID})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := o.requireHuman(m.session); err != nil {
		return nil, err
	}

	out, err := m.session.ConfirmAction(ctx)
	if err != nil {
		return nil, err
	}
	outcomes := []*OutcomeView{buildOutcome(out)}

	auto, err := o.autoPlay(ctx, m)
	if err != nil {
		return nil, err
	}

	return &ConfirmActionOutput{
		Outcomes: append(outcomes, auto...),
		Match:    buildView(m.session),
	}, nil
}

// EndTurn passes the active human turn
func (o *orchestrator) EndTurn(ctx context.Context, input *EndTurnInput) (*EndTurnOutput, error) {
	var matchID string
	if input != nil {
		matchID = input.MatchID
	}
	m, err := o.lookup(&GetMatchInput{MatchID: matchID})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := o.requireHuman(m.session); err != nil {
		return nil, err
	}
	if err := m.session.EndTurnNow(ctx); err != nil {
		return nil, err
	}

	outcomes, err := o.autoPlay(ctx, m)
	if err != nil {
		return nil, err
	}

	return &EndTurnOutput{
		Outcomes: outcomes,
		Match:    buildView(m.session),
	}, nil
}

// SaveMatch writes the session snapshot to the repository
func (o *orchestrator) SaveMatch(ctx context.Context, input *SaveMatchInput) (*SaveMatchOutput, error) {
	var matchID string
	if input != nil {
		matchID = input.MatchID
	}
	m, err := o.lookup(&GetMatchInput{MatchID: matchID})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.session.Save(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to snapshot match %s", matchID)
	}

	if _, err := o.repo.Save(ctx, &matches.SaveInput{MatchID: matchID, Snapshot: data}); err != nil {
		return nil, errors.Wrapf(err, "failed to save match %s", matchID)
	}

	slog.Info("Match saved",
		"match_id", matchID,
		"turn", m.session.Turn(),
		"bytes", len(data))

	return &SaveMatchOutput{
		Turn:  m.session.Turn(),
		Bytes: len(data),
	}, nil
}

// LoadMatch replaces the live session with the saved one. An unreadable
// save leaves a live session untouched and reports the corruption; with no
// live session a fresh match starts under the same id instead. Pending AI
// turns play out before the view is returned.
func (o *orchestrator) LoadMatch(ctx context.Context, input *LoadMatchInput) (*LoadMatchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.MatchID == "" {
		return nil, errors.InvalidArgument("match ID is required")
	}

	stored, err := o.repo.Get(ctx, &matches.GetInput{MatchID: input.MatchID})
	if err != nil {
		return nil, err
	}

	o.mu.RLock()
	m, isLive := o.live[input.MatchID]
	o.mu.RUnlock()

	scenario := o.scenario
	if isLive {
		m.mu.Lock()
		defer m.mu.Unlock()
		scenario = m.scenario
	}

	session, err := o.restore(ctx, input.MatchID, scenario, stored.Snapshot)
	if err != nil {
		if !errors.HasReason(err, ring.ReasonCorruptSnapshot) {
			return nil, err
		}

		slog.Warn("Saved match is corrupt",
			"match_id", input.MatchID,
			"live", isLive,
			"error", err)

		if isLive {
			return nil, err
		}
		return o.freshStart(ctx, input.MatchID)
	}

	if !isLive {
		m = &liveMatch{scenario: scenario}
		m.mu.Lock()
		defer m.mu.Unlock()

		o.mu.Lock()
		o.live[input.MatchID] = m
		o.mu.Unlock()
	}
	m.session = session

	slog.Info("Match loaded",
		"match_id", input.MatchID,
		"turn", session.Turn(),
		"state", session.State())

	outcomes, err := o.autoPlay(ctx, m)
	if err != nil {
		return nil, err
	}

	return &LoadMatchOutput{Match: buildView(m.session), Outcomes: outcomes}, nil
}

// freshStart replaces an unreadable save with a new default match
func (o *orchestrator) freshStart(ctx context.Context, matchID string) (*LoadMatchOutput, error) {
	// nolint:gosec // seeds are not secrets
	seed := uint64(o.clock.Now().UnixNano())
	session, err := o.newSession(ctx, matchID, o.scenario, seed)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to start over match %s", matchID)
	}

	m := &liveMatch{session: session, scenario: o.scenario}
	m.mu.Lock()
	defer m.mu.Unlock()

	o.mu.Lock()
	o.live[matchID] = m
	o.mu.Unlock()

	outcomes, err := o.autoPlay(ctx, m)
	if err != nil {
		return nil, err
	}

	return &LoadMatchOutput{
		Match:      buildView(m.session),
		Outcomes:   outcomes,
		FreshStart: true,
	}, nil
}

// ExpireTurns ends every active turn whose deadline has passed
func (o *orchestrator) ExpireTurns(ctx context.Context, _ *ExpireTurnsInput) (*ExpireTurnsOutput, error) {
	o.mu.RLock()
	ids := make([]string, 0, len(o.live))
	for id := range o.live {
		ids = append(ids, id)
	}
	o.mu.RUnlock()
	slices.Sort(ids)

	output := &ExpireTurnsOutput{}
	for _, id := range ids {
		o.mu.RLock()
		m, ok := o.live[id]
		o.mu.RUnlock()
		if !ok {
			continue
		}

		expired, err := o.expire(ctx, m)
		if err != nil {
			slog.Error("Failed to expire turn",
				"match_id", id,
				"error", err)
			continue
		}
		if expired {
			output.Expired = append(output.Expired, id)
		}
	}

	return output, nil
}

func (o *orchestrator) expire(ctx context.Context, m *liveMatch) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expired, err := m.session.CheckTimeout(ctx)
	if err != nil || !expired {
		return expired, err
	}

	_, err = o.autoPlay(ctx, m)
	return true, err
}

// DeleteMatch drops the live session and any saved snapshot
func (o *orchestrator) DeleteMatch(ctx context.Context, input *DeleteMatchInput) (*DeleteMatchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.MatchID == "" {
		return nil, errors.InvalidArgument("match ID is required")
	}

	o.mu.Lock()
	_, live := o.live[input.MatchID]
	delete(o.live, input.MatchID)
	o.mu.Unlock()

	deleted, err := o.repo.Delete(ctx, &matches.DeleteInput{MatchID: input.MatchID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete saved match %s", input.MatchID)
	}

	if !live && !deleted.Deleted {
		return nil, errors.NotFoundf("match %s not found", input.MatchID)
	}

	slog.Info("Match deleted",
		"match_id", input.MatchID,
		"live", live,
		"saved", deleted.Deleted)

	return &DeleteMatchOutput{Live: live, Saved: deleted.Deleted}, nil
}

// autoPlay lets AI wrestlers act until a human is up or the match ends.
// The caller holds m.mu.
func (o *orchestrator) autoPlay(ctx context.Context, m *liveMatch) ([]*OutcomeView, error) {
	var outcomes []*OutcomeView
	for range o.maxAutoTurns {
		s := m.session
		if s.GameOver() {
			break
		}
		active := s.Active()
		if active == nil || active.Controller() != ring.ControllerAI {
			break
		}

		out, err := s.PlayAITurn(ctx)
		if err != nil {
			return outcomes, errors.Wrapf(err, "AI turn for %s failed", active.GetID())
		}
		outcomes = append(outcomes, buildOutcome(out))
	}
	return outcomes, nil
}

func (o *orchestrator) requireHuman(s *turn.Session) error {
	if s.GameOver() {
		return errors.FailedPrecondition("the match is over")
	}
	if active := s.Active(); active != nil && active.Controller() != ring.ControllerHuman {
		return errors.FailedPreconditionf("it is %s's turn", active.Name())
	}
	return nil
}

func (o *orchestrator) lookup(input *GetMatchInput) (*liveMatch, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.MatchID == "" {
		return nil, errors.InvalidArgument("match ID is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	m, ok := o.live[input.MatchID]
	if !ok {
		return nil, errors.NotFoundf("match %s not found", input.MatchID)
	}
	return m, nil
}

func (o *orchestrator) newSession(ctx context.Context, matchID string, scenario *config.Scenario, seed uint64) (*turn.Session, error) {
	cfg, err := o.sessionConfig(matchID, scenario, seed)
	if err != nil {
		return nil, err
	}
	return turn.New(ctx, cfg)
}

func (o *orchestrator) restore(ctx context.Context, matchID string, scenario *config.Scenario, data []byte) (*turn.Session, error) {
	var snap turn.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, ring.ErrCorruptSnapshot(err, "snapshot is not valid json")
	}
	if snap.ID != matchID {
		return nil, ring.ErrCorruptSnapshot(nil, "snapshot belongs to match %q", snap.ID)
	}

	cfg, err := o.sessionConfig(matchID, scenario, 1)
	if err != nil {
		return nil, err
	}
	return turn.FromSnapshot(ctx, &snap, cfg)
}

func (o *orchestrator) sessionConfig(matchID string, scenario *config.Scenario, seed uint64) (*turn.Config, error) {
	cfg, err := scenario.MatchConfig(&config.MatchInput{
		ID:     matchID,
		Roller: rng.NewSeeded(seed),
	})
	if err != nil {
		return nil, err
	}
	cfg.Seed = seed
	cfg.Clock = o.clock
	cfg.Bus = newBus(matchID)
	return cfg, nil
}

// newBus gives every match its own bus with log subscribers attached
func newBus(matchID string) events.EventBus {
	bus := events.NewBus()

	bus.SubscribeFunc(ring.EventEliminated, 0, func(_ context.Context, e events.Event) error {
		cause, _ := e.Context().Get(ring.EventKeyCause)
		slog.Info("Wrestler eliminated",
			"match_id", matchID,
			"wrestler_id", sourceID(e),
			"cause", cause)
		return nil
	})

	bus.SubscribeFunc(ring.EventGameOver, 0, func(_ context.Context, e events.Event) error {
		winner, _ := e.Context().Get(ring.EventKeyWinner)
		slog.Info("Match over",
			"match_id", matchID,
			"winner", winner)
		return nil
	})

	bus.SubscribeFunc(ring.EventTurnStarted, 0, func(_ context.Context, e events.Event) error {
		turnNumber, _ := e.Context().Get(ring.EventKeyTurn)
		slog.Debug("Turn started",
			"match_id", matchID,
			"turn", turnNumber,
			"wrestler_id", sourceID(e))
		return nil
	})

	return bus
}

func sourceID(e events.Event) string {
	if src := e.Source(); src != nil {
		return src.GetID()
	}
	return ""
}
