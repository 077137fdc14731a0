package match

import (
	"time"

	"github.com/KirkDiggler/ringside/internal/config"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
)

// CreateMatchInput starts a new match. A nil scenario uses the service
// default; a zero seed falls back to the scenario seed, then to the clock.
type CreateMatchInput struct {
	Scenario *config.Scenario
	Seed     uint64
}

// CreateMatchOutput returns the new match after any opening AI turns
type CreateMatchOutput struct {
	Match    *MatchView
	Outcomes []*OutcomeView
}

// GetMatchInput identifies a live match
type GetMatchInput struct {
	MatchID string
}

// GetMatchOutput is the current view
type GetMatchOutput struct {
	Match *MatchView
}

// SelectCardInput picks a card from the active hand
type SelectCardInput struct {
	MatchID   string
	CardIndex int
}

// SelectCardOutput is the view after the selection
type SelectCardOutput struct {
	Match *MatchView
}

// Target is either a cell or a wrestler. Both empty clears the target so
// the engine picks one on confirm.
type Target struct {
	Cell     *ring.Position `json:"cell,omitempty"`
	EntityID string         `json:"entity_id,omitempty"`
}

// SelectTargetInput aims the selected card
type SelectTargetInput struct {
	MatchID string
	Target  Target
}

// SelectTargetOutput is the view after targeting
type SelectTargetOutput struct {
	Match *MatchView
}

// ConfirmActionInput plays the selected card
type ConfirmActionInput struct {
	MatchID string
}

// ConfirmActionOutput lists the player's outcome first, then each AI turn
// played before control came back to a human
type ConfirmActionOutput struct {
	Outcomes []*OutcomeView
	Match    *MatchView
}

// EndTurnInput passes the active human turn
type EndTurnInput struct {
	MatchID string
}

// EndTurnOutput lists the AI turns that followed
type EndTurnOutput struct {
	Outcomes []*OutcomeView
	Match    *MatchView
}

// SaveMatchInput identifies the match to persist
type SaveMatchInput struct {
	MatchID string
}

// SaveMatchOutput reports what was stored
type SaveMatchOutput struct {
	Turn  int
	Bytes int
}

// LoadMatchInput identifies the saved match to restore
type LoadMatchInput struct {
	MatchID string
}

// LoadMatchOutput is the restored match. FreshStart is set when the save
// was unreadable and a new default match took its place.
type LoadMatchOutput struct {
	Match      *MatchView
	Outcomes   []*OutcomeView
	FreshStart bool
}

// ExpireTurnsInput is empty; every live match is checked
type ExpireTurnsInput struct{}

// ExpireTurnsOutput lists matches whose active turn timed out
type ExpireTurnsOutput struct {
	Expired []string
}

// DeleteMatchInput identifies the match to drop
type DeleteMatchInput struct {
	MatchID string
}

// DeleteMatchOutput reports what was removed
type DeleteMatchOutput struct {
	Live  bool
	Saved bool
}

// MatchView is a read-only rendering of a session
type MatchView struct {
	ID           string          `json:"id"`
	Seed         uint64          `json:"seed,string"`
	State        string          `json:"state"`
	Turn         int             `json:"turn"`
	ActiveID     string          `json:"active_id,omitempty"`
	GameOver     bool            `json:"game_over"`
	Winner       string          `json:"winner,omitempty"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	Cells        []*CellView     `json:"cells"`
	Wrestlers    []*WrestlerView `json:"wrestlers"`
	Hand         []ring.Card     `json:"hand,omitempty"`
	SelectedCard int             `json:"selected_card"`
	Target       Target          `json:"target"`
	Deadline     time.Time       `json:"deadline,omitempty"`
	Messages     []string        `json:"messages,omitempty"`
}

// CellView describes one square. Occupant is empty for a free cell.
type CellView struct {
	Position ring.Position `json:"position"`
	Terrain  ring.Terrain  `json:"terrain"`
	Pickup   *ring.Pickup  `json:"pickup,omitempty"`
	Occupant string        `json:"occupant,omitempty"`
}

// WrestlerView describes one combatant
type WrestlerView struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	HP         int                 `json:"hp"`
	MaxHP      int                 `json:"max_hp"`
	Position   ring.Position       `json:"position"`
	Alive      bool                `json:"alive"`
	Controller ring.Controller     `json:"controller"`
	Strength   int                 `json:"strength"`
	Speed      int                 `json:"speed"`
	Effects    []ring.StatusEffect `json:"effects,omitempty"`
	Equipment  []int               `json:"equipment,omitempty"`
	HandSize   int                 `json:"hand_size"`
}

// OutcomeView summarises one resolved action
type OutcomeView struct {
	ActorID    string          `json:"actor_id"`
	Card       ring.CardID     `json:"card,omitempty"`
	Kind       ring.ActionKind `json:"kind,omitempty"`
	Applied    bool            `json:"applied"`
	Message    string          `json:"message,omitempty"`
	Reason     string          `json:"reason,omitempty"`
	TargetID   string          `json:"target_id,omitempty"`
	From       ring.Position   `json:"from"`
	To         ring.Position   `json:"to"`
	Damage     int             `json:"damage,omitempty"`
	Healed     int             `json:"healed,omitempty"`
	Eliminated []string        `json:"eliminated,omitempty"`
}
