package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/ringside/internal/config"
)

// DuelScenarioYAML is a two cell ring where the only card is a jab, so
// every action is a punch. Hero (human, 10 hp) acts before Brute (AI, 6 hp)
// and turns time out after 30 seconds.
const DuelScenarioYAML = `
name: duel
seed: 11
board: {width: 2, height: 1}
rules:
  turn_timeout: 30s
wrestlers:
  - {id: hero, name: Hero, hp: 10, x: 0, y: 0, controller: human}
  - {id: brute, name: Brute, hp: 6, x: 1, y: 0, controller: ai}
cards:
  - {id: jab, name: Jab, kind: attack, damage: 3, range: 1}
`

// BrawlScenarioYAML pits two AI wrestlers with 6 hp against each other.
// Red lands the third jab and wins.
const BrawlScenarioYAML = `
name: brawl
board: {width: 2, height: 1}
wrestlers:
  - {id: red, name: Red, hp: 6, x: 0, y: 0, controller: ai}
  - {id: blue, name: Blue, hp: 6, x: 1, y: 0, controller: ai}
cards:
  - {id: jab, name: Jab, kind: attack, damage: 3, range: 1}
`

// CreateTestScenario parses a scenario document or fails the test
func CreateTestScenario(t *testing.T, doc string) *config.Scenario {
	t.Helper()

	sc, err := config.ParseScenario([]byte(doc))
	require.NoError(t, err, "failed to parse test scenario")
	return sc
}
