package ring

// ActionKind tags what an action card does when resolved
type ActionKind string

// Action kinds
const (
	ActionMove       ActionKind = "move"
	ActionAttack     ActionKind = "attack"
	ActionPush       ActionKind = "push"
	ActionHeal       ActionKind = "heal"
	ActionSpeedBuff  ActionKind = "speed_buff"
	ActionShieldBuff ActionKind = "shield_buff"
	ActionFinisher   ActionKind = "finisher"

	// ActionInert marks a card whose id no longer resolves against the pool
	ActionInert ActionKind = "inert"
)

// Offensive reports whether the kind targets an opponent
func (k ActionKind) Offensive() bool {
	return k == ActionAttack || k == ActionPush || k == ActionFinisher
}

// CardID identifies an action definition in the card pool
type CardID string

// Card is an immutable action definition. Behaviour lives in the resolver;
// the card only carries its kind and numeric parameters.
type Card struct {
	ID          CardID     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Kind        ActionKind `json:"kind"`

	// Damage is the base damage of attacks and finishers
	Damage int `json:"damage,omitempty"`
	// Range is the Chebyshev reach of offensive cards
	Range int `json:"range,omitempty"`
	// Amount is the hp restored by heals
	Amount int `json:"amount,omitempty"`
	// Magnitude and Duration parameterise buffs
	Magnitude int `json:"magnitude,omitempty"`
	Duration  int `json:"duration,omitempty"`
}

// InertCard is the placeholder for a card id missing from the pool
func InertCard(id CardID) Card {
	return Card{
		ID:          id,
		Name:        "Unknown card",
		Description: "This card no longer exists and has no effect.",
		Kind:        ActionInert,
	}
}

// Equipment is an item lying on the board that a combatant can pick up
type Equipment struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Heal        int        `json:"heal,omitempty"`
	Status      StatusKind `json:"status,omitempty"`
	Magnitude   int        `json:"magnitude,omitempty"`
	Duration    int        `json:"duration,omitempty"`
}

// DefaultEquipment is the catalog of items seeded on generated boards
func DefaultEquipment() []Equipment {
	return []Equipment{
		{ID: 1, Name: "Healing Bandage", Description: "Heals 3 HP on pickup.", Heal: 3},
		{ID: 2, Name: "Power Gloves", Description: "+1 strength for 3 turns.", Status: StatusStrength, Magnitude: 1, Duration: 3},
		{ID: 3, Name: "Speed Boots", Description: "+1 movement for 2 turns.", Status: StatusSpeed, Magnitude: 1, Duration: 2},
	}
}

// EquipmentByID looks up an item in the default catalog
func EquipmentByID(id int) (Equipment, bool) {
	for _, eq := range DefaultEquipment() {
		if eq.ID == id {
			return eq, true
		}
	}
	return Equipment{}, false
}
