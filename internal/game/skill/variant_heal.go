package skill

import (
	"math"

	"github.com/udisondev/battleskill/internal/game/rng"
	"github.com/udisondev/battleskill/internal/model"
)

// Heal restores a fraction of the attacker's max HP.
// Magnitude is -floor(Fraction * max_hp), independent of current HP.
// Clamping to max HP is the engine's job.
type Heal struct {
	ID          string
	DisplayName string
	Fraction    float64
}

func (s *Heal) Name() string { return s.ID }

func (s *Heal) Resolve(attacker, defender model.Snapshot, _ rng.Source, tr Tracer) (model.Outcome, error) {
	if err := validatePair(s.ID, attacker, defender); err != nil {
		return model.Outcome{}, err
	}

	emit(tr, Event{Skill: s.DisplayName, Type: EventUsed, Attacker: attacker.Name(), Defender: defender.Name()})

	amount := int32(math.Floor(float64(attacker.MaxHP()) * s.Fraction))
	emit(tr, Event{
		Skill:    s.DisplayName,
		Type:     EventHeal,
		Attacker: attacker.Name(),
		Defender: defender.Name(),
		Value:    amount,
	})

	return model.Outcome{
		Skill:     s.ID,
		Kind:      model.OutcomeHeal,
		Magnitude: -amount,
	}, nil
}
