package skill

import (
	"fmt"

	"github.com/udisondev/battleskill/internal/data"
	"github.com/udisondev/battleskill/internal/game/formula"
	"github.com/udisondev/battleskill/internal/game/rng"
	"github.com/udisondev/battleskill/internal/model"
)

// DefaultSpeedTiers: ratio >= 4 → 150, >= 3 → 120, >= 2 → 80, >= 1 → 60, else 40.
var DefaultSpeedTiers = []data.PowerTier{
	{MinRatio: 4, Power: 150, Label: "maximum"},
	{MinRatio: 3, Power: 120, Label: "very high"},
	{MinRatio: 2, Power: 80, Label: "high"},
	{MinRatio: 1, Power: 60, Label: "moderate"},
	{MinRatio: 0, Power: 40, Label: "low"},
}

// SpeedRatio is an attack whose power is tiered by attacker.speed / max(defender.speed, 1).
// Tiers are checked in descending order with >= semantics, so ties take the higher tier.
type SpeedRatio struct {
	ID          string
	DisplayName string
	Tiers       []data.PowerTier
	Defense     data.DefenseStat
}

func (s *SpeedRatio) Name() string { return s.ID }

// Ratio returns the speed ratio used to select the power tier.
func (s *SpeedRatio) Ratio(attacker, defender model.Snapshot) float64 {
	return float64(attacker.Speed()) / float64(formula.ClampStat(defender.Speed()))
}

// Tier returns the tier selected for ratio. Below every threshold the last tier applies.
func (s *SpeedRatio) Tier(ratio float64) data.PowerTier {
	tiers := s.Tiers
	if len(tiers) == 0 {
		tiers = DefaultSpeedTiers
	}
	for _, t := range tiers {
		if ratio >= t.MinRatio {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

func (s *SpeedRatio) Resolve(attacker, defender model.Snapshot, src rng.Source, tr Tracer) (model.Outcome, error) {
	if err := validatePair(s.ID, attacker, defender); err != nil {
		return model.Outcome{}, err
	}

	emit(tr, Event{Skill: s.DisplayName, Type: EventUsed, Attacker: attacker.Name(), Defender: defender.Name()})

	ratio := s.Ratio(attacker, defender)
	tier := s.Tier(ratio)
	emit(tr, Event{
		Skill:    s.DisplayName,
		Type:     EventPowerTier,
		Attacker: attacker.Name(),
		Defender: defender.Name(),
		Value:    tier.Power,
		Detail:   fmt.Sprintf("%s, speed ratio %.2fx", tier.Label, ratio),
	})

	return strike(s.ID, s.DisplayName, tier.Power, s.Defense, formula.Secondary{}, attacker, defender, src, tr), nil
}
