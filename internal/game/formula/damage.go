// Package formula holds the damage formula and the variance/secondary-effect
// rolls shared by every offensive skill.
package formula

import "math"

// Level is the fixed combatant level used by every skill.
// There is no leveling system; the level is a formula constant, not a combatant field.
const Level int32 = 50

// MinDamage is the floor for any offensive skill that connects.
const MinDamage int32 = 1

// ClampStat enforces the stat floor of 1 used for denominators.
func ClampStat(v int32) int32 {
	if v < 1 {
		return 1
	}
	return v
}

// BaseDamage computes the level/power/stat damage before any multiplier.
// Formula: floor(((2*level/5 + 2) * power * offense / defense) / 50 + 2).
//
// Evaluated in float64 left to right; only the final value is floored.
// Defense is clamped to 1, so a zero stat never divides by zero.
// Deterministic: no randomness.
func BaseDamage(level, power, offense, defense int32) int32 {
	def := float64(ClampStat(defense))
	levelTerm := 2*float64(level)/5 + 2
	raw := (levelTerm*float64(power)*float64(offense)/def)/50 + 2
	return toDamage(raw)
}

// ApplyMultiplier floors damage*m. Each pipeline stage truncates before the next,
// so rounding compounds stage by stage.
func ApplyMultiplier(damage int32, m float64) int32 {
	return toDamage(float64(damage) * m)
}

// toDamage floors v and saturates it to the int32 range.
// Converting an out-of-range float64 to int32 is implementation-defined in Go.
func toDamage(v float64) int32 {
	v = math.Floor(v)
	switch {
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}

// Finalize enforces the minimum damage of an offensive skill.
func Finalize(damage int32) int32 {
	if damage < MinDamage {
		return MinDamage
	}
	return damage
}
