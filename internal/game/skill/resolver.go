package skill

import (
	"errors"
	"fmt"

	"github.com/udisondev/battleskill/internal/data"
	"github.com/udisondev/battleskill/internal/game/formula"
	"github.com/udisondev/battleskill/internal/game/rng"
	"github.com/udisondev/battleskill/internal/model"
)

var ErrUnknownSkill = errors.New("unknown skill")

// Resolver computes the outcome of one skill use.
//
// Resolve is a pure function of the two snapshots and the random source:
// no shared state, no I/O other than the optional tracer. The returned
// Outcome is applied by the battle engine, never by the resolver.
//
// tr may be nil.
type Resolver interface {
	Name() string
	Resolve(attacker, defender model.Snapshot, src rng.Source, tr Tracer) (model.Outcome, error)
}

// validatePair rejects malformed snapshots before any roll is drawn.
func validatePair(skill string, attacker, defender model.Snapshot) error {
	if err := attacker.Validate(); err != nil {
		return fmt.Errorf("%s: attacker: %w", skill, err)
	}
	if err := defender.Validate(); err != nil {
		return fmt.Errorf("%s: defender: %w", skill, err)
	}
	return nil
}

// defenseOf picks the denominator stat for a damage skill.
func defenseOf(stat data.DefenseStat, defender model.Snapshot) int32 {
	if stat == data.StatSpecialDefense {
		return defender.SpecialDefense()
	}
	return defender.Defense()
}

// strike is the damage pipeline shared by every offensive variant.
func strike(id, display string, power int32, stat data.DefenseStat, sec formula.Secondary,
	attacker, defender model.Snapshot, src rng.Source, tr Tracer) model.Outcome {

	res := formula.Compute(power, attacker.Attack(), defenseOf(stat, defender), sec, src)

	if res.Secondary {
		emit(tr, Event{
			Skill:    display,
			Type:     EventSecondary,
			Attacker: attacker.Name(),
			Defender: defender.Name(),
			Detail:   sec.Label,
		})
	}
	emit(tr, Event{
		Skill:    display,
		Type:     EventDamage,
		Attacker: attacker.Name(),
		Defender: defender.Name(),
		Value:    res.Final,
	})

	return model.Outcome{
		Skill:     id,
		Kind:      model.OutcomeDamage,
		Magnitude: res.Final,
		Power:     power,
		Secondary: res.Secondary,
	}
}
