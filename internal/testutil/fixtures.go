package testutil

import "github.com/udisondev/battleskill/internal/model"

// Snapshot builds a combatant with every stat set to stat and full HP.
func Snapshot(name string, hp, stat int32) model.Snapshot {
	return model.NewSnapshot(name, hp, hp, stat, stat, stat, stat)
}

// Pikachu and Charmander match the demo combatants of the CLI.
func Pikachu() model.Snapshot {
	return model.NewSnapshot("Pikachu", 100, 100, 55, 40, 50, 90)
}

func Charmander() model.Snapshot {
	return model.NewSnapshot("Charmander", 110, 110, 52, 43, 50, 65)
}

// WithHP returns a copy of s with current HP replaced.
func WithHP(s model.Snapshot, current int32) model.Snapshot {
	return model.NewSnapshot(s.Name(), current, s.MaxHP(), s.Attack(), s.Defense(), s.SpecialDefense(), s.Speed())
}

// WithSpeed returns a copy of s with speed replaced.
func WithSpeed(s model.Snapshot, speed int32) model.Snapshot {
	return model.NewSnapshot(s.Name(), s.CurrentHP(), s.MaxHP(), s.Attack(), s.Defense(), s.SpecialDefense(), speed)
}

// Ptr returns a pointer to v, for StatRecord literals.
func Ptr(v int32) *int32 { return &v }
