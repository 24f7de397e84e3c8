package skill

import (
	"github.com/udisondev/battleskill/internal/game/formula"
	"github.com/udisondev/battleskill/internal/game/rng"
	"github.com/udisondev/battleskill/internal/model"
)

// StatusInflict deals no damage and signals a status effect to the engine.
// Chance >= 100 is unconditional and draws nothing from the source.
type StatusInflict struct {
	ID          string
	DisplayName string
	Effect      model.StatusEffect
	Chance      int32
	Duration    int32
}

func (s *StatusInflict) Name() string { return s.ID }

func (s *StatusInflict) Resolve(attacker, defender model.Snapshot, src rng.Source, tr Tracer) (model.Outcome, error) {
	if err := validatePair(s.ID, attacker, defender); err != nil {
		return model.Outcome{}, err
	}

	emit(tr, Event{Skill: s.DisplayName, Type: EventUsed, Attacker: attacker.Name(), Defender: defender.Name()})

	triggered := true
	if s.Chance < formula.ChanceMax {
		triggered, _ = formula.Roll(src, s.Chance)
	}

	ev := Event{
		Skill:    s.DisplayName,
		Type:     EventStatusInflicted,
		Attacker: attacker.Name(),
		Defender: defender.Name(),
		Detail:   string(s.Effect),
	}
	if !triggered {
		ev.Type = EventStatusAvoided
	}
	emit(tr, ev)

	return model.Outcome{
		Skill: s.ID,
		Kind:  model.OutcomeStatus,
		Status: &model.StatusSignal{
			Effect:    s.Effect,
			Chance:    s.Chance,
			Triggered: triggered,
			Duration:  s.Duration,
		},
	}, nil
}
