// Package config loads match scenarios from YAML and server settings from
// the environment.
package config

import (
	"os"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/ringside/internal/engine/board"
	"github.com/KirkDiggler/ringside/internal/engine/cards"
	"github.com/KirkDiggler/ringside/internal/engine/resolver"
	"github.com/KirkDiggler/ringside/internal/engine/roster"
	"github.com/KirkDiggler/ringside/internal/engine/turn"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/errors"
)

// Scenario describes the starting state and rules of a match
type Scenario struct {
	Name      string         `yaml:"name"`
	Seed      uint64         `yaml:"seed"`
	Board     BoardSpec      `yaml:"board"`
	Rules     RulesSpec      `yaml:"rules"`
	Wrestlers []WrestlerSpec `yaml:"wrestlers"`
	Cards     []CardSpec     `yaml:"cards,omitempty"`
}

// BoardSpec is the board section of a scenario
type BoardSpec struct {
	Width             int        `yaml:"width"`
	Height            int        `yaml:"height"`
	Generate          bool       `yaml:"generate"`
	TrapBonusFraction *float64   `yaml:"trap_bonus_fraction,omitempty"`
	EquipmentFraction *float64   `yaml:"equipment_fraction,omitempty"`
	Cells             []CellSpec `yaml:"cells,omitempty"`
}

// CellSpec fixes one cell of the layout
type CellSpec struct {
	X         int            `yaml:"x"`
	Y         int            `yaml:"y"`
	Terrain   ring.Terrain   `yaml:"terrain"`
	Bonus     ring.BonusKind `yaml:"bonus,omitempty"`
	Value     int            `yaml:"value,omitempty"`
	Duration  int            `yaml:"duration,omitempty"`
	Equipment int            `yaml:"equipment,omitempty"`
}

// RulesSpec is the rules section of a scenario
type RulesSpec struct {
	Movement       resolver.Movement `yaml:"movement"`
	BaseMoveRange  int               `yaml:"base_move_range"`
	RingOut        bool              `yaml:"ring_out"`
	HandSize       int               `yaml:"hand_size"`
	TrapDamage     *int              `yaml:"trap_damage,omitempty"`
	TurnTimeout    time.Duration     `yaml:"turn_timeout"`
	SettleDuration time.Duration     `yaml:"settle_duration"`
}

// WrestlerSpec is one roster entry
type WrestlerSpec struct {
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	HP         int             `yaml:"hp"`
	X          int             `yaml:"x"`
	Y          int             `yaml:"y"`
	Controller ring.Controller `yaml:"controller"`
	Strength   int             `yaml:"strength"`
	Speed      int             `yaml:"speed"`
}

// CardSpec overrides the default card pool
type CardSpec struct {
	ID          ring.CardID     `yaml:"id"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Kind        ring.ActionKind `yaml:"kind"`
	Damage      int             `yaml:"damage,omitempty"`
	Range       int             `yaml:"range,omitempty"`
	Amount      int             `yaml:"amount,omitempty"`
	Magnitude   int             `yaml:"magnitude,omitempty"`
	Duration    int             `yaml:"duration,omitempty"`
}

// Default wrestler stats
const (
	DefaultHP       = 10
	DefaultStrength = 3
	DefaultSpeed    = 2
	DefaultSize     = 8
)

// DefaultScenario is the classic four corner ring
func DefaultScenario() *Scenario {
	last := DefaultSize - 1
	sc := &Scenario{
		Name: "classic",
		Board: BoardSpec{
			Width:    DefaultSize,
			Height:   DefaultSize,
			Generate: true,
		},
		Rules: RulesSpec{
			Movement: resolver.MovementFreeRoam,
		},
		Wrestlers: []WrestlerSpec{
			{ID: "el-toro", Name: "El Toro", X: 0, Y: 0, Controller: ring.ControllerHuman},
			{ID: "la-pantera", Name: "La Pantera", X: last, Y: 0},
			{ID: "el-jaguar", Name: "El Jaguar", X: 0, Y: last},
			{ID: "la-serpiente", Name: "La Serpiente", X: last, Y: last},
		},
	}
	sc.applyDefaults()
	return sc
}

// LoadScenario reads a scenario file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read scenario %s", path)
	}
	return ParseScenario(data)
}

// ParseScenario decodes YAML, fills defaults and validates the result
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid scenario yaml")
	}

	sc.applyDefaults()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *Scenario) applyDefaults() {
	if s.Board.Width == 0 {
		s.Board.Width = DefaultSize
	}
	if s.Board.Height == 0 {
		s.Board.Height = DefaultSize
	}
	if s.Board.TrapBonusFraction == nil {
		v := board.DefaultTrapBonusFraction
		s.Board.TrapBonusFraction = &v
	}
	if s.Board.EquipmentFraction == nil {
		v := board.DefaultEquipmentFraction
		s.Board.EquipmentFraction = &v
	}
	if s.Rules.Movement == "" {
		s.Rules.Movement = resolver.MovementFreeRoam
	}
	if s.Rules.BaseMoveRange == 0 {
		s.Rules.BaseMoveRange = resolver.DefaultBaseMoveRange
	}
	if s.Rules.HandSize == 0 {
		s.Rules.HandSize = cards.DefaultHandSize
	}
	if s.Rules.TrapDamage == nil {
		v := resolver.DefaultTrapDamage
		s.Rules.TrapDamage = &v
	}
	for i := range s.Wrestlers {
		w := &s.Wrestlers[i]
		if w.HP == 0 {
			w.HP = DefaultHP
		}
		if w.Strength == 0 {
			w.Strength = DefaultStrength
		}
		if w.Speed == 0 {
			w.Speed = DefaultSpeed
		}
		if w.Controller == "" {
			w.Controller = ring.ControllerAI
		}
	}
}

// Validate checks the parts of a scenario that the engine would reject
// later with a less helpful message.
func (s *Scenario) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("board.width", s.Board.Width, 1, board.MaxDimension, vb)
	errors.ValidateRange("board.height", s.Board.Height, 1, board.MaxDimension, vb)
	if len(s.Wrestlers) < 2 {
		vb.Field("wrestlers", "at least two wrestlers are required")
	}
	seen := map[string]bool{}
	for i, w := range s.Wrestlers {
		if w.ID == "" {
			vb.Fieldf("wrestlers", "entry %d has no id", i)
		}
		if seen[w.ID] {
			vb.Fieldf("wrestlers", "duplicate id %s", w.ID)
		}
		seen[w.ID] = true
		if w.HP < 0 {
			vb.Fieldf("wrestlers", "%s has negative hp", w.ID)
		}
		errors.ValidateEnum("controller", string(w.Controller),
			[]string{string(ring.ControllerHuman), string(ring.ControllerAI)}, vb)
	}
	if err := s.rules().Validate(); err != nil {
		vb.Field("rules", errors.GetMessage(err))
	}
	errors.ValidateRange("rules.hand_size", s.Rules.HandSize, 0, cards.MaxHandSize, vb)
	if s.Rules.TurnTimeout < 0 {
		vb.Field("rules.turn_timeout", "must not be negative")
	}
	if _, err := s.Pool(); err != nil {
		vb.Field("cards", errors.GetMessage(err))
	}

	return vb.Build()
}

func (s *Scenario) rules() resolver.Rules {
	return resolver.Rules{
		Movement:           s.Rules.Movement,
		BaseMoveRange:      s.Rules.BaseMoveRange,
		RingOutElimination: s.Rules.RingOut,
		TrapDamage:         valueOr(s.Rules.TrapDamage, resolver.DefaultTrapDamage),
	}
}

// Pool returns the card pool the scenario plays with
func (s *Scenario) Pool() (*cards.Pool, error) {
	if len(s.Cards) == 0 {
		return cards.DefaultPool(), nil
	}
	set := make([]ring.Card, 0, len(s.Cards))
	for _, c := range s.Cards {
		set = append(set, ring.Card{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Kind:        c.Kind,
			Damage:      c.Damage,
			Range:       c.Range,
			Amount:      c.Amount,
			Magnitude:   c.Magnitude,
			Duration:    c.Duration,
		})
	}
	return cards.NewPool(set)
}

// MatchInput carries the per-match pieces a scenario does not fix
type MatchInput struct {
	ID     string
	Roller dice.Roller
}

// MatchConfig turns the scenario into the configuration of a new session
func (s *Scenario) MatchConfig(input *MatchInput) (*turn.Config, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	pool, err := s.Pool()
	if err != nil {
		return nil, err
	}

	layout := make([]board.Placement, 0, len(s.Board.Cells))
	for _, c := range s.Board.Cells {
		p := board.Placement{
			Position: ring.Position{X: c.X, Y: c.Y},
			Terrain:  c.Terrain,
		}
		switch c.Terrain {
		case ring.TerrainBonus:
			p.Pickup = &ring.Pickup{Bonus: c.Bonus, Value: c.Value, Duration: c.Duration}
		case ring.TerrainEquipment:
			p.Pickup = &ring.Pickup{EquipmentID: c.Equipment}
		}
		layout = append(layout, p)
	}

	wrestlers := make([]roster.Spec, 0, len(s.Wrestlers))
	for _, w := range s.Wrestlers {
		wrestlers = append(wrestlers, roster.Spec{
			ID:         w.ID,
			Name:       w.Name,
			HP:         w.HP,
			MaxHP:      w.HP,
			Position:   ring.Position{X: w.X, Y: w.Y},
			Controller: w.Controller,
			Strength:   w.Strength,
			Speed:      w.Speed,
		})
	}

	return &turn.Config{
		ID: input.ID,
		Board: board.Config{
			Width:             s.Board.Width,
			Height:            s.Board.Height,
			Layout:            layout,
			Generate:          s.Board.Generate,
			TrapBonusFraction: valueOr(s.Board.TrapBonusFraction, board.DefaultTrapBonusFraction),
			EquipmentFraction: valueOr(s.Board.EquipmentFraction, board.DefaultEquipmentFraction),
		},
		Wrestlers:      wrestlers,
		Rules:          s.rules(),
		Pool:           pool,
		HandSize:       s.Rules.HandSize,
		Roller:         input.Roller,
		TurnTimeout:    s.Rules.TurnTimeout,
		SettleDuration: s.Rules.SettleDuration,
	}, nil
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
