// Package board owns the ring's cell geometry, terrain classification and
// the position to combatant back-references used for occupancy queries.
package board

import (
	"iter"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/errors"
)

// MaxDimension bounds width and height. Larger boards are rejected before
// any cell is allocated.
const MaxDimension = 64

// Default seeding fractions
const (
	DefaultTrapBonusFraction = 0.10
	DefaultEquipmentFraction = 0.05
)

// Cell is a read-only view of one board square
type Cell struct {
	Position ring.Position
	Terrain  ring.Terrain
	Pickup   *ring.Pickup
}

// Placement fixes the terrain of one cell in a static layout
type Placement struct {
	Position ring.Position
	Terrain  ring.Terrain
	Pickup   *ring.Pickup
}

// Config describes how to build a board
type Config struct {
	Width  int
	Height int

	// Layout is applied before any procedural seeding
	Layout []Placement

	// Generate enables procedural trap/bonus/equipment seeding
	Generate          bool
	TrapBonusFraction float64
	EquipmentFraction float64

	// Reserved cells are never chosen by seeding (spawn points)
	Reserved []ring.Position
	Roller   dice.Roller
}

// Validate ensures the configuration can produce a board
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("Width", c.Width, 1, MaxDimension, vb)
	errors.ValidateRange("Height", c.Height, 1, MaxDimension, vb)
	if c.Generate && c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.TrapBonusFraction < 0 || c.TrapBonusFraction > 1 {
		vb.Field("TrapBonusFraction", "must be between 0 and 1")
	}
	if c.EquipmentFraction < 0 || c.EquipmentFraction > 1 {
		vb.Field("EquipmentFraction", "must be between 0 and 1")
	}
	for i, p := range c.Layout {
		if p.Position.X < 0 || p.Position.Y < 0 || p.Position.X >= c.Width || p.Position.Y >= c.Height {
			vb.Fieldf("Layout", "placement %d at %s is outside the board", i, p.Position)
		}
		if !p.Terrain.Valid() {
			vb.Fieldf("Layout", "placement %d has unknown terrain %q", i, p.Terrain)
		}
	}

	return vb.Build()
}

// Board is the grid. Occupancy is a back-reference only; combatants are
// owned by the roster.
type Board struct {
	width     int
	height    int
	cells     []Cell
	occupants map[ring.Position]string
}

// New builds a board from a fixed layout and, optionally, seeds it
func New(cfg *Config) (*Board, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid board config")
	}

	b := newEmpty(cfg.Width, cfg.Height)
	for _, p := range cfg.Layout {
		cell := b.cell(p.Position)
		cell.Terrain = p.Terrain
		cell.Pickup = clonePickup(p.Pickup)
	}

	if cfg.Generate {
		if err := seed(b, cfg); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func newEmpty(width, height int) *Board {
	b := &Board{
		width:     width,
		height:    height,
		cells:     make([]Cell, width*height),
		occupants: make(map[ring.Position]string),
	}
	for y := range height {
		for x := range width {
			b.cells[y*width+x] = Cell{
				Position: ring.Position{X: x, Y: y},
				Terrain:  ring.TerrainNormal,
			}
		}
	}
	return b
}

// Width returns the number of columns
func (b *Board) Width() int { return b.width }

// Height returns the number of rows
func (b *Board) Height() int { return b.height }

// InBounds reports whether p lies in [0,width) x [0,height)
func (b *Board) InBounds(p ring.Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.width && p.Y < b.height
}

// IsEdge reports whether p is an in-bounds cell on the outer ring
func (b *Board) IsEdge(p ring.Position) bool {
	if !b.InBounds(p) {
		return false
	}
	return p.X == 0 || p.Y == 0 || p.X == b.width-1 || p.Y == b.height-1
}

func (b *Board) cell(p ring.Position) *Cell {
	return &b.cells[p.Y*b.width+p.X]
}

// CellAt returns the cell at p or an OutOfBounds error
func (b *Board) CellAt(p ring.Position) (Cell, error) {
	if !b.InBounds(p) {
		return Cell{}, ring.ErrOutOfBounds(p)
	}
	c := *b.cell(p)
	c.Pickup = clonePickup(c.Pickup)
	return c, nil
}

// TerrainAt returns the terrain at p
func (b *Board) TerrainAt(p ring.Position) (ring.Terrain, error) {
	if !b.InBounds(p) {
		return "", ring.ErrOutOfBounds(p)
	}
	return b.cell(p).Terrain, nil
}

// PickupAt returns the unconsumed payload at p, if any
func (b *Board) PickupAt(p ring.Position) (ring.Pickup, bool) {
	if !b.InBounds(p) {
		return ring.Pickup{}, false
	}
	c := b.cell(p)
	switch c.Terrain {
	case ring.TerrainTrap, ring.TerrainBonus, ring.TerrainEquipment:
		if c.Pickup == nil {
			return ring.Pickup{}, true
		}
		return *c.Pickup, true
	}
	return ring.Pickup{}, false
}

// ClearPickup consumes a trap, bonus or equipment cell, leaving it normal
func (b *Board) ClearPickup(p ring.Position) {
	if !b.InBounds(p) {
		return
	}
	c := b.cell(p)
	switch c.Terrain {
	case ring.TerrainTrap, ring.TerrainBonus, ring.TerrainEquipment:
		c.Terrain = ring.TerrainNormal
		c.Pickup = nil
	}
}

// IsPassable is false off the board and on obstacle or wall terrain.
// Occupancy is a separate question.
func (b *Board) IsPassable(p ring.Position) bool {
	if !b.InBounds(p) {
		return false
	}
	return !b.cell(p).Terrain.Blocking()
}

// IsOccupied reports whether a living combatant stands on p
func (b *Board) IsOccupied(p ring.Position) bool {
	_, ok := b.occupants[p]
	return ok
}

// OccupantAt returns the id of the combatant standing on p
func (b *Board) OccupantAt(p ring.Position) (string, bool) {
	id, ok := b.occupants[p]
	return id, ok
}

// IsFree reports whether p is passable and unoccupied
func (b *Board) IsFree(p ring.Position) bool {
	return b.IsPassable(p) && !b.IsOccupied(p)
}

// Cells yields every cell in row-major order
func (b *Board) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for i := range b.cells {
			c := b.cells[i]
			c.Pickup = clonePickup(c.Pickup)
			if !yield(c) {
				return
			}
		}
	}
}

// Place records id as the occupant of p
func (b *Board) Place(p ring.Position, id string) error {
	if !b.InBounds(p) {
		return ring.ErrOutOfBounds(p)
	}
	if !b.IsPassable(p) {
		return ring.ErrIllegalMove("cell %s is not passable", p)
	}
	if other, ok := b.occupants[p]; ok && other != id {
		return ring.ErrIllegalMove("cell %s is occupied by %s", p, other)
	}
	b.occupants[p] = id
	return nil
}

// Relocate moves id from one cell to another as a single step. Both map
// updates happen together or not at all.
func (b *Board) Relocate(id string, from, to ring.Position) error {
	if !b.InBounds(to) {
		return ring.ErrOutOfBounds(to)
	}
	if !b.IsPassable(to) {
		return ring.ErrIllegalMove("cell %s is not passable", to)
	}
	if other, ok := b.occupants[to]; ok && other != id {
		return ring.ErrIllegalMove("cell %s is occupied by %s", to, other)
	}
	if current, ok := b.occupants[from]; !ok || current != id {
		return ring.ErrIllegalMove("%s does not stand on %s", id, from)
	}

	delete(b.occupants, from)
	b.occupants[to] = id
	return nil
}

// Vacate drops the back-reference at p if it belongs to id
func (b *Board) Vacate(p ring.Position, id string) {
	if current, ok := b.occupants[p]; ok && current == id {
		delete(b.occupants, p)
	}
}

func clonePickup(p *ring.Pickup) *ring.Pickup {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
