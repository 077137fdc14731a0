package board

import (
	"github.com/KirkDiggler/ringside/internal/entities/ring"
)

// CellData is the persisted form of a non-normal cell
type CellData struct {
	Position ring.Position `json:"position"`
	Terrain  ring.Terrain  `json:"terrain"`
	Pickup   *ring.Pickup  `json:"pickup,omitempty"`
}

// Data is the persisted form of a board. Occupancy is not stored; it is
// rebuilt from combatant positions on restore.
type Data struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Cells  []CellData `json:"cells"`
}

// ToData captures the terrain of every non-normal cell
func (b *Board) ToData() Data {
	d := Data{Width: b.width, Height: b.height}
	for _, c := range b.cells {
		if c.Terrain == ring.TerrainNormal {
			continue
		}
		d.Cells = append(d.Cells, CellData{
			Position: c.Position,
			Terrain:  c.Terrain,
			Pickup:   clonePickup(c.Pickup),
		})
	}
	return d
}

// FromData rebuilds a board, rejecting dimensions or cells that could
// not have come from a live board.
func FromData(d Data) (*Board, error) {
	if d.Width <= 0 || d.Height <= 0 || d.Width > MaxDimension || d.Height > MaxDimension {
		return nil, ring.ErrCorruptSnapshot(nil, "board dimensions %dx%d are invalid", d.Width, d.Height)
	}

	b := newEmpty(d.Width, d.Height)
	for i, c := range d.Cells {
		if !b.InBounds(c.Position) {
			return nil, ring.ErrCorruptSnapshot(nil, "cell %d at %s is outside the board", i, c.Position)
		}
		if !c.Terrain.Valid() {
			return nil, ring.ErrCorruptSnapshot(nil, "cell %d has unknown terrain %q", i, c.Terrain)
		}
		cell := b.cell(c.Position)
		cell.Terrain = c.Terrain
		cell.Pickup = clonePickup(c.Pickup)
	}
	return b, nil
}
