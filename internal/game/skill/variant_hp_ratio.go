package skill

import (
	"fmt"
	"math"

	"github.com/udisondev/battleskill/internal/data"
	"github.com/udisondev/battleskill/internal/game/formula"
	"github.com/udisondev/battleskill/internal/game/rng"
	"github.com/udisondev/battleskill/internal/model"
)

// HPRatio is an attack whose power scales with the attacker's remaining HP:
// power = max(1, floor(MaxPower * current/max)).
type HPRatio struct {
	ID          string
	DisplayName string
	MaxPower    int32
	Defense     data.DefenseStat
}

func (s *HPRatio) Name() string { return s.ID }

// PowerFor returns the base power for the attacker's current HP.
// A fainted attacker (current HP <= 0) gets the minimum power of 1.
func (s *HPRatio) PowerFor(attacker model.Snapshot) int32 {
	power := int32(math.Floor(float64(s.MaxPower) * attacker.HPRatio()))
	if power < 1 {
		return 1
	}
	return power
}

func (s *HPRatio) Resolve(attacker, defender model.Snapshot, src rng.Source, tr Tracer) (model.Outcome, error) {
	if err := validatePair(s.ID, attacker, defender); err != nil {
		return model.Outcome{}, err
	}

	emit(tr, Event{Skill: s.DisplayName, Type: EventUsed, Attacker: attacker.Name(), Defender: defender.Name()})

	power := s.PowerFor(attacker)
	emit(tr, Event{
		Skill:    s.DisplayName,
		Type:     EventPowerTier,
		Attacker: attacker.Name(),
		Defender: defender.Name(),
		Value:    power,
		Detail:   fmt.Sprintf("%d%% HP", int(attacker.HPRatio()*100)),
	})

	return strike(s.ID, s.DisplayName, power, s.Defense, formula.Secondary{}, attacker, defender, src, tr), nil
}
