package ring

// Selection is the in-progress target choice of the active player.
// It is one of NoSelection, CellSelection or EntitySelection.
type Selection interface {
	isSelection()
}

// NoSelection means no target has been picked
type NoSelection struct{}

// CellSelection targets a board cell
type CellSelection struct {
	Position Position
}

// EntitySelection targets a combatant by id
type EntitySelection struct {
	ID string
}

func (NoSelection) isSelection()     {}
func (CellSelection) isSelection()   {}
func (EntitySelection) isSelection() {}

// Selection kinds used in snapshots
const (
	SelectionNone   = "none"
	SelectionCell   = "cell"
	SelectionEntity = "entity"
)

// SelectionData is the serialisable form of a Selection
type SelectionData struct {
	Kind     string    `json:"kind"`
	Position *Position `json:"position,omitempty"`
	EntityID string    `json:"entity_id,omitempty"`
}

// ToSelectionData converts a Selection for persistence
func ToSelectionData(sel Selection) SelectionData {
	switch s := sel.(type) {
	case CellSelection:
		pos := s.Position
		return SelectionData{Kind: SelectionCell, Position: &pos}
	case EntitySelection:
		return SelectionData{Kind: SelectionEntity, EntityID: s.ID}
	default:
		return SelectionData{Kind: SelectionNone}
	}
}

// FromSelectionData rebuilds a Selection. Unknown or incomplete data
// yields NoSelection.
func FromSelectionData(d SelectionData) Selection {
	switch d.Kind {
	case SelectionCell:
		if d.Position != nil {
			return CellSelection{Position: *d.Position}
		}
	case SelectionEntity:
		if d.EntityID != "" {
			return EntitySelection{ID: d.EntityID}
		}
	}
	return NoSelection{}
}
