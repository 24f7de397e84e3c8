package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSnapshot = errors.New("invalid combatant snapshot")
	ErrMissingStat     = errors.New("missing combatant stat")
)

// Snapshot is a read-only view of a combatant's stats at the moment a skill resolves.
// The battle engine owns the combatant; resolvers only borrow a copy.
//
// Stat floors are not guaranteed here; the damage formula clamps denominators.
type Snapshot struct {
	name           string
	currentHP      int32
	maxHP          int32
	attack         int32
	defense        int32
	specialDefense int32
	speed          int32
}

// NewSnapshot creates a Snapshot. It does not validate; call Validate before use.
func NewSnapshot(name string, currentHP, maxHP, attack, defense, specialDefense, speed int32) Snapshot {
	return Snapshot{
		name:           name,
		currentHP:      currentHP,
		maxHP:          maxHP,
		attack:         attack,
		defense:        defense,
		specialDefense: specialDefense,
		speed:          speed,
	}
}

func (s Snapshot) Name() string          { return s.name }
func (s Snapshot) CurrentHP() int32      { return s.currentHP }
func (s Snapshot) MaxHP() int32          { return s.maxHP }
func (s Snapshot) Attack() int32         { return s.attack }
func (s Snapshot) Defense() int32        { return s.defense }
func (s Snapshot) SpecialDefense() int32 { return s.specialDefense }
func (s Snapshot) Speed() int32          { return s.speed }

// IsFainted returns true if current HP is zero or below.
func (s Snapshot) IsFainted() bool {
	return s.currentHP <= 0
}

// HPRatio returns currentHP/maxHP. Negative current HP yields 0.
// Caller must have validated maxHP > 0.
func (s Snapshot) HPRatio() float64 {
	if s.currentHP <= 0 || s.maxHP <= 0 {
		return 0
	}
	return float64(s.currentHP) / float64(s.maxHP)
}

// Validate checks engine-side preconditions.
// Zero or negative current HP is allowed: a fainted combatant may still be asked to resolve.
func (s Snapshot) Validate() error {
	if s.maxHP <= 0 {
		return fmt.Errorf("%w: %q has max_hp=%d", ErrInvalidSnapshot, s.name, s.maxHP)
	}
	return nil
}

// StatRecord is the serialized form of a combatant (YAML fixtures, CLI input).
// Pointer fields distinguish an absent stat from a zero stat.
type StatRecord struct {
	Name           string `yaml:"name" json:"name"`
	CurrentHP      *int32 `yaml:"current_hp" json:"current_hp"`
	MaxHP          *int32 `yaml:"max_hp" json:"max_hp"`
	Attack         *int32 `yaml:"attack" json:"attack"`
	Defense        *int32 `yaml:"defense" json:"defense"`
	SpecialDefense *int32 `yaml:"special_defense" json:"special_defense"`
	Speed          *int32 `yaml:"speed" json:"speed"`
}

// Snapshot converts the record into a validated Snapshot.
// A missing current_hp defaults to max_hp (fresh combatant).
func (r StatRecord) Snapshot() (Snapshot, error) {
	required := []struct {
		name  string
		value *int32
	}{
		{"max_hp", r.MaxHP},
		{"attack", r.Attack},
		{"defense", r.Defense},
		{"special_defense", r.SpecialDefense},
		{"speed", r.Speed},
	}
	for _, f := range required {
		if f.value == nil {
			return Snapshot{}, fmt.Errorf("%w: %q has no %s", ErrMissingStat, r.Name, f.name)
		}
	}

	current := *r.MaxHP
	if r.CurrentHP != nil {
		current = *r.CurrentHP
	}

	s := NewSnapshot(r.Name, current, *r.MaxHP, *r.Attack, *r.Defense, *r.SpecialDefense, *r.Speed)
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
