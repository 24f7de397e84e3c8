package data

import (
	"errors"
	"fmt"
)

var ErrInvalidDefinition = errors.New("invalid skill definition")

// Kind selects the resolver variant for a skill record.
type Kind string

const (
	KindFixed      Kind = "fixed"
	KindSpeedRatio Kind = "speed_ratio"
	KindHPRatio    Kind = "hp_ratio"
	KindStatus     Kind = "status"
	KindHeal       Kind = "heal"
)

// DefenseStat names the defender stat used as the damage denominator.
type DefenseStat string

const (
	StatDefense        DefenseStat = "defense"
	StatSpecialDefense DefenseStat = "special_defense"
)

// SecondaryDef configures a probability-gated damage multiplier.
type SecondaryDef struct {
	Chance     int32   `yaml:"chance"`
	Multiplier float64 `yaml:"multiplier"`
	Label      string  `yaml:"label"`
}

// PowerTier maps a minimum ratio to a base power. Tiers are checked in order.
type PowerTier struct {
	MinRatio float64 `yaml:"min_ratio"`
	Power    int32   `yaml:"power"`
	Label    string  `yaml:"label"`
}

// StatusDef configures a status-only skill.
type StatusDef struct {
	Effect   string `yaml:"effect"`
	Chance   int32  `yaml:"chance"`
	Duration int32  `yaml:"duration"`
}

// SkillDefinition is one static skill record.
// Type, Category and Accuracy are display metadata for the engine;
// accuracy is never rolled by the resolver.
type SkillDefinition struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Kind     Kind   `yaml:"kind"`
	Type     string `yaml:"type"`
	Category string `yaml:"category"`
	Accuracy int32  `yaml:"accuracy"`

	// fixed
	Power     int32         `yaml:"power"`
	Secondary *SecondaryDef `yaml:"secondary"`

	// fixed, speed_ratio, hp_ratio
	DefenseStat DefenseStat `yaml:"defense_stat"`

	// speed_ratio
	Tiers []PowerTier `yaml:"tiers"`

	// hp_ratio
	MaxPower int32 `yaml:"max_power"`

	// status
	Status *StatusDef `yaml:"status"`

	// heal
	HealFraction float64 `yaml:"heal_fraction"`
}

// Validate checks the record is complete for its kind.
func (d *SkillDefinition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidDefinition)
	}
	if d.Accuracy < 0 || d.Accuracy > 100 {
		return fmt.Errorf("%w: %s: accuracy %d out of [0,100]", ErrInvalidDefinition, d.ID, d.Accuracy)
	}

	switch d.Kind {
	case KindFixed:
		if d.Power <= 0 {
			return fmt.Errorf("%w: %s: fixed skill needs power > 0", ErrInvalidDefinition, d.ID)
		}
		if s := d.Secondary; s != nil {
			if s.Chance < 0 || s.Chance > 100 {
				return fmt.Errorf("%w: %s: secondary chance %d out of [0,100]", ErrInvalidDefinition, d.ID, s.Chance)
			}
			if s.Multiplier <= 0 {
				return fmt.Errorf("%w: %s: secondary multiplier must be > 0", ErrInvalidDefinition, d.ID)
			}
		}
		return d.validateDefenseStat()

	case KindSpeedRatio:
		if len(d.Tiers) == 0 {
			return fmt.Errorf("%w: %s: speed_ratio skill needs tiers", ErrInvalidDefinition, d.ID)
		}
		for i := 1; i < len(d.Tiers); i++ {
			if d.Tiers[i].MinRatio >= d.Tiers[i-1].MinRatio {
				return fmt.Errorf("%w: %s: tiers must be in descending min_ratio order", ErrInvalidDefinition, d.ID)
			}
		}
		for _, t := range d.Tiers {
			if t.Power <= 0 {
				return fmt.Errorf("%w: %s: tier power must be > 0", ErrInvalidDefinition, d.ID)
			}
		}
		return d.validateDefenseStat()

	case KindHPRatio:
		if d.MaxPower <= 0 {
			return fmt.Errorf("%w: %s: hp_ratio skill needs max_power > 0", ErrInvalidDefinition, d.ID)
		}
		return d.validateDefenseStat()

	case KindStatus:
		if d.Status == nil || d.Status.Effect == "" {
			return fmt.Errorf("%w: %s: status skill needs status.effect", ErrInvalidDefinition, d.ID)
		}
		if d.Status.Chance <= 0 || d.Status.Chance > 100 {
			return fmt.Errorf("%w: %s: status chance %d out of (0,100]", ErrInvalidDefinition, d.ID, d.Status.Chance)
		}
		return nil

	case KindHeal:
		if d.HealFraction <= 0 || d.HealFraction > 1 {
			return fmt.Errorf("%w: %s: heal_fraction %v out of (0,1]", ErrInvalidDefinition, d.ID, d.HealFraction)
		}
		return nil

	default:
		return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidDefinition, d.ID, d.Kind)
	}
}

func (d *SkillDefinition) validateDefenseStat() error {
	switch d.DefenseStat {
	case StatDefense, StatSpecialDefense:
		return nil
	case "":
		d.DefenseStat = StatDefense
		return nil
	default:
		return fmt.Errorf("%w: %s: unknown defense_stat %q", ErrInvalidDefinition, d.ID, d.DefenseStat)
	}
}
