package cards_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ringside/internal/engine/board"
	"github.com/KirkDiggler/ringside/internal/engine/cards"
	"github.com/KirkDiggler/ringside/internal/engine/roster"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/errors"
	"github.com/KirkDiggler/ringside/internal/pkg/rng"
)

// scriptedRoller returns its values in order, then repeats the last one
type scriptedRoller struct {
	values []int
	calls  []int
}

func (r *scriptedRoller) Roll(size int) (int, error) {
	r.calls = append(r.calls, size)
	v := r.values[0]
	if len(r.values) > 1 {
		r.values = r.values[1:]
	}
	return v, nil
}

func (r *scriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for range count {
		v, _ := r.Roll(size)
		out = append(out, v)
	}
	return out, nil
}

type CardsTestSuite struct {
	suite.Suite
	wrestler *roster.Wrestler
}

func (s *CardsTestSuite) SetupTest() {
	b, err := board.New(&board.Config{Width: 3, Height: 3})
	s.Require().NoError(err)
	reg, err := roster.New(&roster.Config{Board: b})
	s.Require().NoError(err)
	s.wrestler, err = reg.Add(roster.Spec{ID: "w", Name: "W", HP: 10, MaxHP: 10})
	s.Require().NoError(err)
}

func TestCardsSuite(t *testing.T) {
	suite.Run(t, new(CardsTestSuite))
}

func (s *CardsTestSuite) TestDefaultPool() {
	pool := cards.DefaultPool()
	s.Equal(7, pool.Len())

	punch, ok := pool.Lookup(cards.PowerPunch)
	s.Require().True(ok)
	s.Equal(ring.ActionAttack, punch.Kind)
	s.Equal(3, punch.Damage)
	s.Equal(1, punch.Range)
}

func (s *CardsTestSuite) TestNewPoolValidates() {
	testCases := []struct {
		name string
		set  []ring.Card
	}{
		{name: "empty", set: nil},
		{name: "missing id", set: []ring.Card{{Kind: ring.ActionHeal}}},
		{name: "unknown kind", set: []ring.Card{{ID: "x", Kind: "dance"}}},
		{name: "offensive without range", set: []ring.Card{{ID: "x", Kind: ring.ActionAttack, Damage: 1}}},
		{name: "duplicate", set: []ring.Card{{ID: "x", Kind: ring.ActionHeal}, {ID: "x", Kind: ring.ActionMove}}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := cards.NewPool(tc.set)
			s.Error(err)
		})
	}
}

func (s *CardsTestSuite) TestResolveUnknownIsInert() {
	card := cards.DefaultPool().Resolve("retired-move")
	s.Equal(ring.ActionInert, card.Kind)
	s.Equal(ring.CardID("retired-move"), card.ID)
}

func (s *CardsTestSuite) TestDrawHandSamplesWithReplacement() {
	roller := &scriptedRoller{values: []int{1, 1, 7}}
	m, err := cards.NewManager(&cards.Config{Pool: cards.DefaultPool(), Roller: roller})
	s.Require().NoError(err)

	s.Require().NoError(m.DrawHand(s.wrestler))
	s.Equal([]ring.CardID{cards.PowerPunch, cards.PowerPunch, cards.Piledriver}, s.wrestler.Hand())
	s.Equal([]int{7, 7, 7}, roller.calls)
}

func (s *CardsTestSuite) TestDrawHandReplacesHand() {
	m, err := cards.NewManager(&cards.Config{Pool: cards.DefaultPool(), Roller: rng.NewSeeded(3), HandSize: 5})
	s.Require().NoError(err)

	s.wrestler.SetHand([]ring.CardID{"old"})
	s.Require().NoError(m.DrawHand(s.wrestler))
	s.Len(s.wrestler.Hand(), 5)
	s.NotContains(s.wrestler.Hand(), ring.CardID("old"))
}

func (s *CardsTestSuite) TestPlayCard() {
	m, err := cards.NewManager(&cards.Config{Pool: cards.DefaultPool(), Roller: rng.NewSeeded(1)})
	s.Require().NoError(err)
	s.wrestler.SetHand([]ring.CardID{cards.QuickStep, "gone", cards.ShieldUp})

	card, err := m.PlayCard(s.wrestler, 1)
	s.Require().NoError(err)
	s.Equal(ring.ActionInert, card.Kind)
	s.Equal([]ring.CardID{cards.QuickStep, cards.ShieldUp}, s.wrestler.Hand())

	card, err = m.PlayCard(s.wrestler, 1)
	s.Require().NoError(err)
	s.Equal(cards.ShieldUp, card.ID)

	_, err = m.PlayCard(s.wrestler, 1)
	s.True(errors.HasReason(err, ring.ReasonInvalidIndex))
	s.Len(s.wrestler.Hand(), 1)
}

func (s *CardsTestSuite) TestNewManagerValidates() {
	_, err := cards.NewManager(&cards.Config{Roller: rng.NewSeeded(1)})
	s.Error(err)
	_, err = cards.NewManager(&cards.Config{Pool: cards.DefaultPool()})
	s.Error(err)
	_, err = cards.NewManager(nil)
	s.Error(err)
	_, err = cards.NewManager(&cards.Config{Pool: cards.DefaultPool(), Roller: rng.NewSeeded(1), HandSize: 1 << 40})
	s.True(errors.IsInvalidArgument(err))
	_, err = cards.NewManager(&cards.Config{Pool: cards.DefaultPool(), Roller: rng.NewSeeded(1), HandSize: cards.MaxHandSize})
	s.NoError(err)
}
