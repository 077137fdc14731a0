package ring

// Event types published on the session event bus
const (
	EventMatchStarted = "ringside.match.started"
	EventTurnStarted  = "ringside.turn.started"
	EventOutcome      = "ringside.action.outcome"
	EventEliminated   = "ringside.wrestler.eliminated"
	EventGameOver     = "ringside.match.game_over"
	EventMessage      = "ringside.message"
)

// Event context keys
const (
	EventKeyMessage = "message"
	EventKeyTurn    = "turn"
	EventKeyCause   = "cause"
	EventKeyWinner  = "winner"
)

// Elimination causes
const (
	CauseKnockout = "knockout"
	CauseRingOut  = "ring_out"
)
