package model

// OutcomeKind classifies what the engine should do with Outcome.Magnitude.
type OutcomeKind uint8

const (
	OutcomeDamage OutcomeKind = iota // Magnitude > 0, applied to defender
	OutcomeHeal                      // Magnitude <= 0, restored to attacker
	OutcomeStatus                    // Magnitude == 0
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDamage:
		return "damage"
	case OutcomeHeal:
		return "heal"
	case OutcomeStatus:
		return "status"
	default:
		return "unknown"
	}
}

// StatusEffect names a status condition the engine may apply.
// Ticking and persistence are the engine's job.
type StatusEffect string

const (
	StatusPoisoned      StatusEffect = "poisoned"
	StatusBadlyPoisoned StatusEffect = "badly_poisoned"
	StatusParalyzed     StatusEffect = "paralyzed"
	StatusSeeded        StatusEffect = "seeded"
	StatusBurned        StatusEffect = "burned"
)

// Valid reports whether the effect is one of the known conditions.
func (e StatusEffect) Valid() bool {
	switch e {
	case StatusPoisoned, StatusBadlyPoisoned, StatusParalyzed, StatusSeeded, StatusBurned:
		return true
	}
	return false
}

// StatusSignal tells the engine a status effect was attempted.
// The chance roll is already resolved: Triggered is final.
type StatusSignal struct {
	Effect    StatusEffect
	Chance    int32 // percent threshold rolled against; 100 = unconditional
	Triggered bool
	Duration  int32 // turns, informational
}

// Outcome is the result of one skill resolution.
//
// Magnitude convention:
//   - positive: damage to the defender
//   - negative: healing applied to the attacker
//   - zero: no direct HP change (status move)
type Outcome struct {
	Skill     string
	Kind      OutcomeKind
	Magnitude int32
	Power     int32 // base power used; 0 for non-offensive skills
	Secondary bool  // secondary multiplier (crit, burn bonus) applied
	Status    *StatusSignal
}

// Damage returns the HP to remove from the defender (0 if not a damage outcome).
func (o Outcome) Damage() int32 {
	if o.Magnitude > 0 {
		return o.Magnitude
	}
	return 0
}

// Healing returns the HP to restore to the attacker (0 if not a heal outcome).
func (o Outcome) Healing() int32 {
	if o.Magnitude < 0 {
		return -o.Magnitude
	}
	return 0
}

// StatusApplied returns true if the engine should apply a status effect.
func (o Outcome) StatusApplied() bool {
	return o.Status != nil && o.Status.Triggered
}
