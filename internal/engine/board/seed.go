package board

import (
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/errors"
	"github.com/KirkDiggler/ringside/internal/pkg/rng"
)

// Bonus payloads handed out by generated bonus cells
var defaultBonuses = []ring.Pickup{
	{Bonus: ring.BonusHeal, Value: 2},
	{Bonus: ring.BonusSpeed, Value: 1, Duration: 2},
	{Bonus: ring.BonusShield, Value: 1, Duration: 2},
}

// seed scatters traps, bonuses and equipment over normal cells by rejection
// sampling. Quotas are capped at the number of eligible cells so the loop
// always terminates.
func seed(b *Board, cfg *Config) error {
	reserved := make(map[ring.Position]struct{}, len(cfg.Reserved))
	for _, p := range cfg.Reserved {
		reserved[p] = struct{}{}
	}

	eligible := func(p ring.Position) bool {
		if _, ok := reserved[p]; ok {
			return false
		}
		return b.cell(p).Terrain == ring.TerrainNormal
	}

	available := 0
	for _, c := range b.cells {
		if eligible(c.Position) {
			available++
		}
	}

	area := float64(b.width * b.height)
	eventQuota := min(int(math.Floor(area*cfg.TrapBonusFraction)), available)
	equipQuota := min(int(math.Floor(area*cfg.EquipmentFraction)), available-eventQuota)

	catalog := ring.DefaultEquipment()

	for range eventQuota {
		p, err := sampleCell(b, cfg.Roller, eligible)
		if err != nil {
			return err
		}
		coin, err := cfg.Roller.Roll(2)
		if err != nil {
			return errors.Wrap(err, "failed to roll trap or bonus")
		}
		c := b.cell(p)
		if coin == 1 {
			c.Terrain = ring.TerrainTrap
			continue
		}
		idx, err := rng.Index(cfg.Roller, len(defaultBonuses))
		if err != nil {
			return errors.Wrap(err, "failed to roll bonus kind")
		}
		bonus := defaultBonuses[idx]
		c.Terrain = ring.TerrainBonus
		c.Pickup = &bonus
	}

	for range equipQuota {
		p, err := sampleCell(b, cfg.Roller, eligible)
		if err != nil {
			return err
		}
		idx, err := rng.Index(cfg.Roller, len(catalog))
		if err != nil {
			return errors.Wrap(err, "failed to roll equipment")
		}
		c := b.cell(p)
		c.Terrain = ring.TerrainEquipment
		c.Pickup = &ring.Pickup{EquipmentID: catalog[idx].ID}
	}

	return nil
}

func sampleCell(b *Board, roller dice.Roller, eligible func(ring.Position) bool) (ring.Position, error) {
	for {
		idx, err := rng.Index(roller, b.width*b.height)
		if err != nil {
			return ring.Position{}, errors.Wrap(err, "failed to sample cell")
		}
		p := b.cells[idx].Position
		if eligible(p) {
			return p, nil
		}
	}
}
