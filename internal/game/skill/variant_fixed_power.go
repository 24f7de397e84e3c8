package skill

import (
	"github.com/udisondev/battleskill/internal/data"
	"github.com/udisondev/battleskill/internal/game/formula"
	"github.com/udisondev/battleskill/internal/game/rng"
	"github.com/udisondev/battleskill/internal/model"
)

// FixedPower is an attack with constant base power.
// Secondary is optional: a high-crit move (30% ×1.5) or a burn-bonus move (10% ×1.5).
type FixedPower struct {
	ID          string
	DisplayName string
	Power       int32
	Defense     data.DefenseStat
	Secondary   formula.Secondary
}

func (s *FixedPower) Name() string { return s.ID }

func (s *FixedPower) Resolve(attacker, defender model.Snapshot, src rng.Source, tr Tracer) (model.Outcome, error) {
	if err := validatePair(s.ID, attacker, defender); err != nil {
		return model.Outcome{}, err
	}

	emit(tr, Event{Skill: s.DisplayName, Type: EventUsed, Attacker: attacker.Name(), Defender: defender.Name()})
	return strike(s.ID, s.DisplayName, s.Power, s.Defense, s.Secondary, attacker, defender, src, tr), nil
}
