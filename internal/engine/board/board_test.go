package board_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ringside/internal/engine/board"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/errors"
	"github.com/KirkDiggler/ringside/internal/pkg/rng"
)

type BoardTestSuite struct {
	suite.Suite
	board *board.Board
}

func (s *BoardTestSuite) SetupTest() {
	b, err := board.New(&board.Config{
		Width:  4,
		Height: 3,
		Layout: []board.Placement{
			{Position: ring.Position{X: 1, Y: 1}, Terrain: ring.TerrainWall},
			{Position: ring.Position{X: 2, Y: 0}, Terrain: ring.TerrainObstacle},
			{Position: ring.Position{X: 3, Y: 2}, Terrain: ring.TerrainTrap},
			{
				Position: ring.Position{X: 0, Y: 2},
				Terrain:  ring.TerrainBonus,
				Pickup:   &ring.Pickup{Bonus: ring.BonusHeal, Value: 2},
			},
		},
	})
	s.Require().NoError(err)
	s.board = b
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardTestSuite))
}

func (s *BoardTestSuite) TestNewValidatesConfig() {
	testCases := []struct {
		name string
		cfg  *board.Config
	}{
		{name: "nil config", cfg: nil},
		{name: "zero width", cfg: &board.Config{Width: 0, Height: 3}},
		{name: "too wide", cfg: &board.Config{Width: board.MaxDimension + 1, Height: 3}},
		{name: "overflowing area", cfg: &board.Config{Width: 1 << 32, Height: 1 << 32}},
		{name: "generate without roller", cfg: &board.Config{Width: 3, Height: 3, Generate: true}},
		{
			name: "layout outside board",
			cfg: &board.Config{Width: 2, Height: 2, Layout: []board.Placement{
				{Position: ring.Position{X: 2, Y: 0}, Terrain: ring.TerrainWall},
			}},
		},
		{
			name: "unknown terrain",
			cfg: &board.Config{Width: 2, Height: 2, Layout: []board.Placement{
				{Position: ring.Position{X: 0, Y: 0}, Terrain: "lava"},
			}},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			b, err := board.New(tc.cfg)
			s.Error(err)
			s.Nil(b)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *BoardTestSuite) TestCellAt() {
	cell, err := s.board.CellAt(ring.Position{X: 1, Y: 1})
	s.Require().NoError(err)
	s.Equal(ring.TerrainWall, cell.Terrain)

	cell, err = s.board.CellAt(ring.Position{X: 0, Y: 0})
	s.Require().NoError(err)
	s.Equal(ring.TerrainNormal, cell.Terrain)
}

func (s *BoardTestSuite) TestCellAtOutOfBounds() {
	for _, p := range []ring.Position{{X: -1, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}} {
		_, err := s.board.CellAt(p)
		s.Error(err)
		s.True(errors.HasReason(err, ring.ReasonOutOfBounds), "position %s", p)
		s.True(errors.IsOutOfRange(err))
	}
}

func (s *BoardTestSuite) TestIsPassable() {
	s.False(s.board.IsPassable(ring.Position{X: 1, Y: 1}))
	s.False(s.board.IsPassable(ring.Position{X: 2, Y: 0}))
	s.False(s.board.IsPassable(ring.Position{X: -1, Y: 0}))
	s.True(s.board.IsPassable(ring.Position{X: 3, Y: 2}))
	s.True(s.board.IsPassable(ring.Position{X: 0, Y: 0}))
}

func (s *BoardTestSuite) TestIsEdge() {
	s.True(s.board.IsEdge(ring.Position{X: 0, Y: 1}))
	s.True(s.board.IsEdge(ring.Position{X: 3, Y: 1}))
	s.False(s.board.IsEdge(ring.Position{X: 1, Y: 1}))
	s.False(s.board.IsEdge(ring.Position{X: 4, Y: 1}))
}

func (s *BoardTestSuite) TestPickups() {
	pickup, ok := s.board.PickupAt(ring.Position{X: 0, Y: 2})
	s.Require().True(ok)
	s.Equal(ring.BonusHeal, pickup.Bonus)
	s.Equal(2, pickup.Value)

	_, ok = s.board.PickupAt(ring.Position{X: 3, Y: 2})
	s.True(ok, "traps carry an empty payload")

	_, ok = s.board.PickupAt(ring.Position{X: 0, Y: 0})
	s.False(ok)

	s.board.ClearPickup(ring.Position{X: 0, Y: 2})
	_, ok = s.board.PickupAt(ring.Position{X: 0, Y: 2})
	s.False(ok)
	terrain, err := s.board.TerrainAt(ring.Position{X: 0, Y: 2})
	s.Require().NoError(err)
	s.Equal(ring.TerrainNormal, terrain)

	// walls are not pickups
	s.board.ClearPickup(ring.Position{X: 1, Y: 1})
	terrain, err = s.board.TerrainAt(ring.Position{X: 1, Y: 1})
	s.Require().NoError(err)
	s.Equal(ring.TerrainWall, terrain)
}

func (s *BoardTestSuite) TestOccupancy() {
	a := ring.Position{X: 0, Y: 0}
	b := ring.Position{X: 0, Y: 1}

	s.Require().NoError(s.board.Place(a, "w1"))
	s.True(s.board.IsOccupied(a))
	s.False(s.board.IsFree(a))
	id, ok := s.board.OccupantAt(a)
	s.True(ok)
	s.Equal("w1", id)

	err := s.board.Place(a, "w2")
	s.True(errors.HasReason(err, ring.ReasonIllegalMove))

	err = s.board.Place(ring.Position{X: 1, Y: 1}, "w2")
	s.True(errors.HasReason(err, ring.ReasonIllegalMove))

	s.Require().NoError(s.board.Relocate("w1", a, b))
	s.False(s.board.IsOccupied(a))
	s.True(s.board.IsOccupied(b))

	s.Require().NoError(s.board.Place(a, "w2"))
	err = s.board.Relocate("w1", b, a)
	s.True(errors.HasReason(err, ring.ReasonIllegalMove))
	s.True(s.board.IsOccupied(b), "failed relocation leaves occupancy unchanged")

	s.board.Vacate(b, "someone-else")
	s.True(s.board.IsOccupied(b))
	s.board.Vacate(b, "w1")
	s.False(s.board.IsOccupied(b))
}

func (s *BoardTestSuite) TestCellsRowMajor() {
	var got []ring.Position
	for c := range s.board.Cells() {
		got = append(got, c.Position)
	}
	s.Len(got, 12)
	s.Equal(ring.Position{X: 0, Y: 0}, got[0])
	s.Equal(ring.Position{X: 1, Y: 0}, got[1])
	s.Equal(ring.Position{X: 0, Y: 1}, got[4])
}

func (s *BoardTestSuite) TestDataRoundTrip() {
	restored, err := board.FromData(s.board.ToData())
	s.Require().NoError(err)

	for c := range s.board.Cells() {
		other, err := restored.CellAt(c.Position)
		s.Require().NoError(err)
		s.Equal(c, other)
	}
}

func (s *BoardTestSuite) TestFromDataRejectsCorruptCells() {
	testCases := []struct {
		name string
		data board.Data
	}{
		{name: "zero size", data: board.Data{}},
		{name: "overflowing size", data: board.Data{Width: 1 << 32, Height: 1 << 32}},
		{name: "oversized", data: board.Data{Width: 100000, Height: 100000}},
		{
			name: "cell outside",
			data: board.Data{Width: 2, Height: 2, Cells: []board.CellData{
				{Position: ring.Position{X: 5, Y: 5}, Terrain: ring.TerrainWall},
			}},
		},
		{
			name: "bad terrain",
			data: board.Data{Width: 2, Height: 2, Cells: []board.CellData{
				{Position: ring.Position{X: 1, Y: 1}, Terrain: "quicksand"},
			}},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := board.FromData(tc.data)
			s.True(errors.HasReason(err, ring.ReasonCorruptSnapshot))
			s.True(errors.IsDataLoss(err))
		})
	}
}

type GenerateTestSuite struct {
	suite.Suite
	corners []ring.Position
}

func (s *GenerateTestSuite) SetupTest() {
	s.corners = []ring.Position{{X: 0, Y: 0}, {X: 7, Y: 0}, {X: 0, Y: 7}, {X: 7, Y: 7}}
}

func TestGenerateSuite(t *testing.T) {
	suite.Run(t, new(GenerateTestSuite))
}

func (s *GenerateTestSuite) generate(seed uint64) *board.Board {
	b, err := board.New(&board.Config{
		Width:             8,
		Height:            8,
		Generate:          true,
		TrapBonusFraction: board.DefaultTrapBonusFraction,
		EquipmentFraction: board.DefaultEquipmentFraction,
		Reserved:          s.corners,
		Roller:            rng.NewSeeded(seed),
	})
	s.Require().NoError(err)
	return b
}

func (s *GenerateTestSuite) TestQuotas() {
	b := s.generate(42)

	counts := map[ring.Terrain]int{}
	for c := range b.Cells() {
		counts[c.Terrain]++
	}

	s.Equal(6, counts[ring.TerrainTrap]+counts[ring.TerrainBonus])
	s.Equal(3, counts[ring.TerrainEquipment])
	s.Equal(64-9, counts[ring.TerrainNormal])
}

func (s *GenerateTestSuite) TestReservedCellsStayNormal() {
	for seed := range uint64(20) {
		b := s.generate(seed)
		for _, p := range s.corners {
			terrain, err := b.TerrainAt(p)
			s.Require().NoError(err)
			s.Equal(ring.TerrainNormal, terrain, "seed %d corner %s", seed, p)
		}
	}
}

func (s *GenerateTestSuite) TestSeededPayloads() {
	b := s.generate(7)
	for c := range b.Cells() {
		switch c.Terrain {
		case ring.TerrainBonus:
			s.Require().NotNil(c.Pickup)
			s.NotEmpty(c.Pickup.Bonus)
		case ring.TerrainEquipment:
			s.Require().NotNil(c.Pickup)
			_, ok := ring.EquipmentByID(c.Pickup.EquipmentID)
			s.True(ok)
		}
	}
}

func (s *GenerateTestSuite) TestDeterministic() {
	s.Equal(s.generate(99).ToData(), s.generate(99).ToData())
}

func (s *GenerateTestSuite) TestQuotaCappedByAvailableCells() {
	b, err := board.New(&board.Config{
		Width:             2,
		Height:            2,
		Generate:          true,
		TrapBonusFraction: 1,
		EquipmentFraction: 1,
		Reserved:          []ring.Position{{X: 0, Y: 0}, {X: 1, Y: 1}},
		Layout: []board.Placement{
			{Position: ring.Position{X: 1, Y: 0}, Terrain: ring.TerrainWall},
		},
		Roller: rng.NewSeeded(1),
	})
	s.Require().NoError(err)

	terrain, err := b.TerrainAt(ring.Position{X: 0, Y: 1})
	s.Require().NoError(err)
	s.Contains([]ring.Terrain{ring.TerrainTrap, ring.TerrainBonus}, terrain)

	terrain, err = b.TerrainAt(ring.Position{X: 1, Y: 0})
	s.Require().NoError(err)
	s.Equal(ring.TerrainWall, terrain)
}
