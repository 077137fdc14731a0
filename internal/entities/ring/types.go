// Package ring defines the data model shared by the ringside rules engine:
// board coordinates and terrain, combatant status effects, action cards and
// the pending selection a player builds before confirming an action.
package ring

import "fmt"

// Position is a board coordinate. X grows to the right, Y grows downwards.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by d
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the delta from o to p
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// String renders p as (x,y)
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Chebyshev returns the king-move distance between two cells
func Chebyshev(a, b Position) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Terrain classifies a board cell
type Terrain string

// Terrain kinds
const (
	TerrainNormal    Terrain = "normal"
	TerrainObstacle  Terrain = "obstacle"
	TerrainWall      Terrain = "wall"
	TerrainTrap      Terrain = "trap"
	TerrainBonus     Terrain = "bonus"
	TerrainEquipment Terrain = "equipment"
)

// Blocking reports whether no entity may ever stand on the terrain
func (t Terrain) Blocking() bool {
	return t == TerrainObstacle || t == TerrainWall
}

// Valid reports whether t is a known terrain kind
func (t Terrain) Valid() bool {
	switch t {
	case TerrainNormal, TerrainObstacle, TerrainWall, TerrainTrap, TerrainBonus, TerrainEquipment:
		return true
	}
	return false
}

// BonusKind selects what a bonus cell grants
type BonusKind string

// Bonus kinds
const (
	BonusHeal   BonusKind = "heal"
	BonusSpeed  BonusKind = "speed"
	BonusShield BonusKind = "shield"
)

// Pickup is the static payload of a trap, bonus or equipment cell.
// It is consumed the first time an entity steps on the cell.
type Pickup struct {
	Bonus       BonusKind `json:"bonus,omitempty"`
	Value       int       `json:"value,omitempty"`
	Duration    int       `json:"duration,omitempty"`
	EquipmentID int       `json:"equipment_id,omitempty"`
}

// StatusKind identifies a timed status effect
type StatusKind string

// Status kinds
const (
	StatusShield   StatusKind = "shield"
	StatusSpeed    StatusKind = "speed"
	StatusStrength StatusKind = "strength"
)

// Valid reports whether k is a known status kind
func (k StatusKind) Valid() bool {
	switch k {
	case StatusShield, StatusSpeed, StatusStrength:
		return true
	}
	return false
}

// StatusEffect is a timed modifier. Remaining counts owner turn ends left.
type StatusEffect struct {
	Kind      StatusKind `json:"kind"`
	Magnitude int        `json:"magnitude"`
	Remaining int        `json:"remaining"`
}

// Controller says who picks actions for a combatant
type Controller string

// Controllers
const (
	ControllerHuman Controller = "human"
	ControllerAI    Controller = "ai"
)
