package resolver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ringside/internal/engine/board"
	"github.com/KirkDiggler/ringside/internal/engine/resolver"
	"github.com/KirkDiggler/ringside/internal/engine/roster"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
)

var (
	punch     = ring.Card{ID: "punch", Name: "Punch", Kind: ring.ActionAttack, Damage: 4, Range: 1}
	finisher  = ring.Card{ID: "finisher", Name: "Finisher", Kind: ring.ActionFinisher, Damage: 6, Range: 1}
	step      = ring.Card{ID: "step", Name: "Step", Kind: ring.ActionMove}
	slam      = ring.Card{ID: "slam", Name: "Slam", Kind: ring.ActionPush, Range: 1}
	bandage   = ring.Card{ID: "heal", Name: "Heal", Kind: ring.ActionHeal, Amount: 3}
	shieldUp  = ring.Card{ID: "shield", Name: "Shield", Kind: ring.ActionShieldBuff, Magnitude: 2, Duration: 2}
	adrenalin = ring.Card{ID: "speed", Name: "Speed", Kind: ring.ActionSpeedBuff, Magnitude: 1, Duration: 2}
)

type ResolverTestSuite struct {
	suite.Suite
	ctx      context.Context
	board    *board.Board
	registry *roster.Registry
	resolver *resolver.Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func (s *ResolverTestSuite) SetupTest() {
	s.ctx = context.Background()
}

// arena builds a board, roster and resolver in one go
func (s *ResolverTestSuite) arena(width, height int, rules resolver.Rules, layout ...board.Placement) {
	b, err := board.New(&board.Config{Width: width, Height: height, Layout: layout})
	s.Require().NoError(err)
	s.board = b

	s.registry, err = roster.New(&roster.Config{Board: b})
	s.Require().NoError(err)

	s.resolver, err = resolver.New(&resolver.Config{Registry: s.registry, Rules: rules})
	s.Require().NoError(err)
}

func (s *ResolverTestSuite) wrestler(id string, hp int, x, y int) *roster.Wrestler {
	w, err := s.registry.Add(roster.Spec{
		ID:       id,
		Name:     id,
		HP:       hp,
		MaxHP:    10,
		Position: ring.Position{X: x, Y: y},
	})
	s.Require().NoError(err)
	return w
}

func (s *ResolverTestSuite) TestNewValidatesRules() {
	b, err := board.New(&board.Config{Width: 2, Height: 2})
	s.Require().NoError(err)
	reg, err := roster.New(&roster.Config{Board: b})
	s.Require().NoError(err)

	_, err = resolver.New(&resolver.Config{Registry: reg, Rules: resolver.Rules{Movement: "teleport"}})
	s.Error(err)
	_, err = resolver.New(&resolver.Config{Rules: resolver.DefaultRules()})
	s.Error(err)
}

func (s *ResolverTestSuite) TestAttackDamagesAdjacentTarget() {
	s.arena(2, 2, resolver.DefaultRules())
	attacker := s.wrestler("attacker", 10, 0, 0)
	target := s.wrestler("target", 10, 1, 0)

	out := s.resolver.Resolve(s.ctx, resolver.Action{
		Actor:     attacker,
		Card:      punch,
		Selection: ring.EntitySelection{ID: "target"},
	})

	s.True(out.Applied)
	s.Equal(4, out.Damage)
	s.Equal("target", out.TargetID)
	s.Equal(6, target.HP())
	s.True(target.Alive())
	s.Empty(out.Eliminated)
	s.NotEmpty(out.Message)
}

func (s *ResolverTestSuite) TestAttackKnocksOut() {
	s.arena(2, 2, resolver.DefaultRules())
	attacker := s.wrestler("attacker", 10, 0, 0)
	target := s.wrestler("target", 3, 1, 0)

	out := s.resolver.Resolve(s.ctx, resolver.Action{
		Actor:     attacker,
		Card:      punch,
		Selection: ring.CellSelection{Position: ring.Position{X: 1, Y: 0}},
	})

	s.True(out.Applied)
	s.Equal(0, target.HP())
	s.False(target.Alive())
	s.Equal([]string{"target"}, out.Eliminated)
	s.Equal(1, s.registry.LivingCount())
}

func (s *ResolverTestSuite) TestAttackRespectsShieldAndStrength() {
	s.arena(3, 3, resolver.DefaultRules())
	attacker := s.wrestler("attacker", 10, 0, 0)
	target := s.wrestler("target", 10, 1, 1)

	s.registry.ApplyStatus(target, ring.StatusShield, 5, 2)
	out := s.resolver.Resolve(s.ctx, resolver.Action{Actor: attacker, Card: punch})
	s.True(out.Applied)
	s.Equal(0, out.Damage, "shield larger than damage never heals")
	s.Equal(10, target.HP())

	s.registry.ApplyStatus(attacker, ring.StatusStrength, 2, 3)
	out = s.resolver.Resolve(s.ctx, resolver.Action{Actor: attacker, Card: finisher})
	s.True(out.Applied)
	s.Equal(3, out.Damage)
	s.Equal(7, target.HP())
}

func (s *ResolverTestSuite) TestAttackOutOfRangeIsWasted() {
	s.arena(4, 4, resolver.DefaultRules())
	attacker := s.wrestler("attacker", 10, 0, 0)
	target := s.wrestler("target", 10, 3, 3)

	testCases := []struct {
		name      string
		selection ring.Selection
		reason    string
	}{
		{name: "auto target", selection: ring.NoSelection{}, reason: ring.ReasonNoLegalTarget},
		{name: "by id", selection: ring.EntitySelection{ID: "target"}, reason: ring.ReasonNoLegalTarget},
		{name: "self", selection: ring.EntitySelection{ID: "attacker"}, reason: ring.ReasonNoLegalTarget},
		{name: "empty cell", selection: ring.CellSelection{Position: ring.Position{X: 1, Y: 1}}, reason: ring.ReasonNoLegalTarget},
		{name: "off board", selection: ring.CellSelection{Position: ring.Position{X: 9, Y: 9}}, reason: ring.ReasonOutOfBounds},
		{name: "unknown id", selection: ring.EntitySelection{ID: "ghost"}, reason: ring.ReasonNoLegalTarget},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out := s.resolver.Resolve(s.ctx, resolver.Action{Actor: attacker, Card: punch, Selection: tc.selection})
			s.True(out.Wasted())
			s.Equal(tc.reason, out.Reason)
			s.Error(out.Err)
			s.Contains(out.Message, "Card lost")
			s.Equal(10, target.HP())
		})
	}
}

func (s *ResolverTestSuite) TestPushRelocatesTarget() {
	s.arena(5, 5, resolver.DefaultRules())
	actor := s.wrestler("actor", 10, 2, 2)
	target := s.wrestler("target", 10, 3, 2)

	out := s.resolver.Resolve(s.ctx, resolver.Action{
		Actor:     actor,
		Card:      slam,
		Selection: ring.EntitySelection{ID: "target"},
	})

	s.True(out.Applied)
	s.Equal(ring.Position{X: 4, Y: 2}, target.Position())
	s.Equal(ring.Position{X: 2, Y: 2}, actor.Position())
	s.True(target.Alive(), "ring-out is off by default")
	s.False(s.board.IsOccupied(ring.Position{X: 3, Y: 2}))
	s.True(s.board.IsOccupied(ring.Position{X: 4, Y: 2}))
}

func (s *ResolverTestSuite) TestPushToEdgeEliminatesWithRingOut() {
	rules := resolver.DefaultRules()
	rules.RingOutElimination = true
	s.arena(5, 5, rules)
	actor := s.wrestler("actor", 10, 2, 2)
	target := s.wrestler("target", 10, 3, 2)

	out := s.resolver.Resolve(s.ctx, resolver.Action{Actor: actor, Card: slam})

	s.True(out.Applied)
	s.False(target.Alive())
	s.Equal(0, target.HP())
	s.Equal([]string{"target"}, out.Eliminated)
	s.False(s.board.IsOccupied(ring.Position{X: 4, Y: 2}))
}

func (s *ResolverTestSuite) TestPushDiagonal() {
	s.arena(5, 5, resolver.DefaultRules())
	actor := s.wrestler("actor", 10, 1, 1)
	target := s.wrestler("target", 10, 2, 2)

	out := s.resolver.Resolve(s.ctx, resolver.Action{Actor: actor, Card: slam})
	s.True(out.Applied)
	s.Equal(ring.Position{X: 3, Y: 3}, target.Position())
}

func (s *ResolverTestSuite) TestPushBlocked() {
	testCases := []struct {
		name   string
		layout []board.Placement
		others [][2]int
		target [2]int
	}{
		{name: "off board", target: [2]int{4, 2}},
		{
			name:   "into wall",
			target: [2]int{3, 2},
			layout: []board.Placement{{Position: ring.Position{X: 4, Y: 2}, Terrain: ring.TerrainWall}},
		},
		{name: "into wrestler", target: [2]int{3, 2}, others: [][2]int{{4, 2}}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.arena(5, 5, resolver.DefaultRules(), tc.layout...)
			actor := s.wrestler("actor", 10, tc.target[0]-1, tc.target[1])
			target := s.wrestler("target", 10, tc.target[0], tc.target[1])
			for i, o := range tc.others {
				s.wrestler(string(rune('x'+i)), 10, o[0], o[1])
			}

			out := s.resolver.Resolve(s.ctx, resolver.Action{
				Actor:     actor,
				Card:      slam,
				Selection: ring.EntitySelection{ID: "target"},
			})
			s.True(out.Wasted())
			s.Equal(ring.Position{X: tc.target[0], Y: tc.target[1]}, target.Position())
		})
	}
}

func (s *ResolverTestSuite) TestMoveFreeRoam() {
	s.arena(5, 5, resolver.DefaultRules())
	mover := s.wrestler("mover", 10, 0, 0)

	dests := s.resolver.Destinations(mover)
	s.Len(dests, 8, "every cell within two king steps")
	s.Equal(ring.Position{X: 1, Y: 0}, dests[0])

	out := s.resolver.Resolve(s.ctx, resolver.Action{
		Actor:     mover,
		Card:      step,
		Selection: ring.CellSelection{Position: ring.Position{X: 2, Y: 2}},
	})
	s.True(out.Applied)
	s.Equal(ring.Position{X: 0, Y: 0}, out.From)
	s.Equal(ring.Position{X: 2, Y: 2}, mover.Position())

	out = s.resolver.Resolve(s.ctx, resolver.Action{
		Actor:     mover,
		Card:      step,
		Selection: ring.CellSelection{Position: ring.Position{X: 2, Y: 5}},
	})
	s.True(out.Wasted())
	s.Equal(ring.ReasonOutOfBounds, out.Reason)

	out = s.resolver.Resolve(s.ctx, resolver.Action{
		Actor:     mover,
		Card:      step,
		Selection: ring.CellSelection{Position: ring.Position{X: 4, Y: 4}},
	})
	s.True(out.Applied)
}

func (s *ResolverTestSuite) TestMoveSpeedBonusExtendsRange() {
	s.arena(6, 1, resolver.DefaultRules())
	mover := s.wrestler("mover", 10, 0, 0)

	s.Len(s.resolver.Destinations(mover), 2)
	s.registry.ApplyStatus(mover, ring.StatusSpeed, 1, 2)
	s.Len(s.resolver.Destinations(mover), 3)
	s.Equal(3, s.resolver.MoveRange(mover))
}

func (s *ResolverTestSuite) TestMoveBlockedPathsAreNotReachable() {
	s.arena(5, 1, resolver.DefaultRules(),
		board.Placement{Position: ring.Position{X: 1, Y: 0}, Terrain: ring.TerrainObstacle})
	mover := s.wrestler("mover", 10, 0, 0)

	out := s.resolver.Resolve(s.ctx, resolver.Action{
		Actor:     mover,
		Card:      step,
		Selection: ring.CellSelection{Position: ring.Position{X: 2, Y: 0}},
	})
	s.True(out.Wasted())
	s.Equal(ring.ReasonIllegalMove, out.Reason)
}

func (s *ResolverTestSuite) TestMoveCardinal() {
	rules := resolver.DefaultRules()
	rules.Movement = resolver.MovementCardinal
	s.arena(3, 3, rules)
	mover := s.wrestler("mover", 10, 1, 1)
	s.wrestler("blocker", 10, 1, 0)

	s.Equal([]ring.Position{{X: 0, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}}, s.resolver.Destinations(mover))

	out := s.resolver.Resolve(s.ctx, resolver.Action{
		Actor:     mover,
		Card:      step,
		Selection: ring.CellSelection{Position: ring.Position{X: 2, Y: 2}},
	})
	s.True(out.Wasted())
	s.Equal(ring.Position{X: 1, Y: 1}, mover.Position())
}

func (s *ResolverTestSuite) TestMoveBoxedInIsWasted() {
	s.arena(3, 3, resolver.DefaultRules(),
		board.Placement{Position: ring.Position{X: 1, Y: 0}, Terrain: ring.TerrainWall},
		board.Placement{Position: ring.Position{X: 0, Y: 1}, Terrain: ring.TerrainWall},
	)
	mover := s.wrestler("mover", 10, 0, 0)
	s.wrestler("other", 10, 1, 1)

	out := s.resolver.Resolve(s.ctx, resolver.Action{Actor: mover, Card: step})

	s.True(out.Wasted())
	s.Equal(ring.ReasonIllegalMove, out.Reason)
	s.Equal(ring.Position{X: 0, Y: 0}, mover.Position())
	s.Contains(out.Message, "Card lost")
}

func (s *ResolverTestSuite) TestMoveAppliesPickups() {
	s.arena(4, 1, resolver.DefaultRules(),
		board.Placement{Position: ring.Position{X: 1, Y: 0}, Terrain: ring.TerrainBonus,
			Pickup: &ring.Pickup{Bonus: ring.BonusShield, Value: 1, Duration: 2}},
		board.Placement{Position: ring.Position{X: 2, Y: 0}, Terrain: ring.TerrainTrap},
		board.Placement{Position: ring.Position{X: 3, Y: 0}, Terrain: ring.TerrainEquipment,
			Pickup: &ring.Pickup{EquipmentID: 2}},
	)
	mover := s.wrestler("mover", 10, 0, 0)

	out := s.resolver.Resolve(s.ctx, resolver.Action{
		Actor:     mover,
		Card:      step,
		Selection: ring.CellSelection{Position: ring.Position{X: 1, Y: 0}},
	})
	s.True(out.Applied)
	s.Equal(1, mover.StatusMagnitude(ring.StatusShield))
	_, ok := s.board.PickupAt(ring.Position{X: 1, Y: 0})
	s.False(ok, "bonus is single use")

	out = s.resolver.Resolve(s.ctx, resolver.Action{
		Actor:     mover,
		Card:      step,
		Selection: ring.CellSelection{Position: ring.Position{X: 2, Y: 0}},
	})
	s.True(out.Applied)
	s.Equal(1, out.Damage, "trap damage is reduced by the shield")
	s.Equal(9, mover.HP())

	out = s.resolver.Resolve(s.ctx, resolver.Action{
		Actor:     mover,
		Card:      step,
		Selection: ring.CellSelection{Position: ring.Position{X: 3, Y: 0}},
	})
	s.True(out.Applied)
	s.Equal([]int{2}, mover.Equipment())
	s.Equal(1, mover.StatusMagnitude(ring.StatusStrength))
	terrain, err := s.board.TerrainAt(ring.Position{X: 3, Y: 0})
	s.Require().NoError(err)
	s.Equal(ring.TerrainNormal, terrain)
}

func (s *ResolverTestSuite) TestTrapCanKnockOutMover() {
	s.arena(2, 1, resolver.DefaultRules(),
		board.Placement{Position: ring.Position{X: 1, Y: 0}, Terrain: ring.TerrainTrap})
	mover := s.wrestler("mover", 2, 0, 0)

	out := s.resolver.Resolve(s.ctx, resolver.Action{Actor: mover, Card: step})
	s.True(out.Applied)
	s.False(mover.Alive())
	s.Equal([]string{"mover"}, out.Eliminated)
	s.False(s.board.IsOccupied(ring.Position{X: 1, Y: 0}))
}

func (s *ResolverTestSuite) TestSelfActions() {
	s.arena(2, 2, resolver.DefaultRules())
	w := s.wrestler("w", 5, 0, 0)

	out := s.resolver.Resolve(s.ctx, resolver.Action{Actor: w, Card: bandage})
	s.True(out.Applied)
	s.Equal(3, out.Healed)
	s.Equal(8, w.HP())

	out = s.resolver.Resolve(s.ctx, resolver.Action{Actor: w, Card: shieldUp})
	s.True(out.Applied)
	effect, ok := w.Status(ring.StatusShield)
	s.Require().True(ok)
	s.Equal(ring.StatusEffect{Kind: ring.StatusShield, Magnitude: 2, Remaining: 2}, effect)

	out = s.resolver.Resolve(s.ctx, resolver.Action{Actor: w, Card: adrenalin})
	s.True(out.Applied)
	s.Equal(1, w.StatusMagnitude(ring.StatusSpeed))
}

func (s *ResolverTestSuite) TestInertCardIsWasted() {
	s.arena(2, 2, resolver.DefaultRules())
	w := s.wrestler("w", 5, 0, 0)

	out := s.resolver.Resolve(s.ctx, resolver.Action{Actor: w, Card: ring.InertCard("old")})
	s.True(out.Wasted())
	s.Equal(ring.ReasonNoLegalTarget, out.Reason)
	s.Equal(5, w.HP())
}

func (s *ResolverTestSuite) TestDeadActorCannotAct() {
	s.arena(2, 2, resolver.DefaultRules())
	w := s.wrestler("w", 5, 0, 0)
	s.registry.Eliminate(s.ctx, w, ring.CauseRingOut)

	out := s.resolver.Resolve(s.ctx, resolver.Action{Actor: w, Card: bandage})
	s.True(out.Wasted())
	s.Equal(0, w.HP())
}
