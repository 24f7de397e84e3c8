package formula

import "github.com/udisondev/battleskill/internal/game/rng"

// Uniform damage variance range, in percent.
const (
	VarianceMin = 85
	VarianceMax = 100
)

// Secondary roll range, in percent.
const (
	ChanceMin = 1
	ChanceMax = 100
)

// ApplyVariance draws a percent in [85,100] and returns floor(damage*roll/100).
// Applied exactly once per offensive skill, after every other multiplier.
func ApplyVariance(damage int32, src rng.Source) (int32, int) {
	roll := src.Between(VarianceMin, VarianceMax)
	return toDamage(float64(damage) * (float64(roll) / 100.0)), roll
}

// Roll draws a percent in [1,100] and reports whether it is within threshold.
// threshold <= 0 never triggers; threshold >= 100 always triggers.
func Roll(src rng.Source, threshold int32) (bool, int) {
	roll := src.Between(ChanceMin, ChanceMax)
	return int32(roll) <= threshold, roll
}

// Secondary is a probability-gated damage multiplier (critical hit, burn bonus).
// Threshold and multiplier are per-skill configuration.
type Secondary struct {
	Chance     int32   // percent, compared with roll <= Chance
	Multiplier float64 // applied with ApplyMultiplier when triggered
	Label      string  // "critical", "burn", ...
}

// Apply rolls the secondary effect and multiplies damage when it triggers.
// A zero Secondary never rolls and never consumes a draw.
func (s Secondary) Apply(damage int32, src rng.Source) (int32, bool) {
	if s.Chance <= 0 || s.Multiplier == 0 {
		return damage, false
	}
	triggered, _ := Roll(src, s.Chance)
	if !triggered {
		return damage, false
	}
	return ApplyMultiplier(damage, s.Multiplier), true
}

// Enabled reports whether the secondary effect is configured.
func (s Secondary) Enabled() bool {
	return s.Chance > 0 && s.Multiplier != 0
}

// Result is the breakdown of one offensive damage computation.
type Result struct {
	Base      int32
	Secondary bool
	Variance  int
	Final     int32
}

// Compute runs the full offensive pipeline:
// BaseDamage → secondary (if configured and triggered) → variance → min 1.
func Compute(power, offense, defense int32, sec Secondary, src rng.Source) Result {
	base := BaseDamage(Level, power, offense, defense)
	dmg, triggered := sec.Apply(base, src)
	dmg, variance := ApplyVariance(dmg, src)
	return Result{
		Base:      base,
		Secondary: triggered,
		Variance:  variance,
		Final:     Finalize(dmg),
	}
}
