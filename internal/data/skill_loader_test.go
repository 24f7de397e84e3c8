package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinSkills(t *testing.T) {
	defs, err := BuiltinSkills()
	require.NoError(t, err)
	require.Len(t, defs, 13)

	byID := make(map[string]SkillDefinition, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}

	assert.Equal(t, int32(90), byID["thunderbolt"].Power)
	assert.Equal(t, StatDefense, byID["thunderbolt"].DefenseStat)
	assert.Equal(t, StatSpecialDefense, byID["electro_ball"].DefenseStat)
	assert.Equal(t, StatSpecialDefense, byID["eruption"].DefenseStat)
	assert.Equal(t, int32(150), byID["eruption"].MaxPower)
	assert.Equal(t, 0.5, byID["recover"].HealFraction)
	assert.Equal(t, int32(90), byID["toxic"].Status.Chance)
	assert.Equal(t, int32(100), byID["toxic_certain"].Status.Chance)

	tiers := byID["electro_ball"].Tiers
	require.Len(t, tiers, 5)
	assert.Equal(t, 4.0, tiers[0].MinRatio)
	assert.Equal(t, int32(150), tiers[0].Power)
	assert.Equal(t, int32(40), tiers[4].Power)
}

func TestLoadSkills_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown kind", `skills: [{id: a, kind: combo}]`},
		{"duplicate id", `skills: [{id: a, kind: heal, heal_fraction: 0.5}, {id: a, kind: heal, heal_fraction: 0.5}]`},
		{"unknown field", `skills: [{id: a, kind: heal, heal_fraction: 0.5, healing: 3}]`},
		{"fixed without power", `skills: [{id: a, kind: fixed}]`},
		{"bad defense stat", `skills: [{id: a, kind: fixed, power: 10, defense_stat: speed}]`},
		{"tiers ascending", `skills: [{id: a, kind: speed_ratio, tiers: [{min_ratio: 1, power: 10}, {min_ratio: 2, power: 20}]}]`},
		{"status without effect", `skills: [{id: a, kind: status, status: {chance: 50}}]`},
		{"status chance zero", `skills: [{id: a, kind: status, status: {effect: paralyzed, chance: 0}}]`},
		{"heal fraction above 1", `skills: [{id: a, kind: heal, heal_fraction: 1.5}]`},
		{"secondary chance above 100", `skills: [{id: a, kind: fixed, power: 10, secondary: {chance: 101, multiplier: 1.5}}]`},
		{"empty id", `skills: [{kind: heal, heal_fraction: 0.5}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSkills(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadSkills_DefaultsDefenseStat(t *testing.T) {
	defs, err := LoadSkills(strings.NewReader(`skills: [{id: tackle, kind: fixed, power: 40}]`))
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, StatDefense, defs[0].DefenseStat)
}

func TestLoadSkillsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
skills:
  - id: hyper_fang
    name: Hyper Fang
    kind: fixed
    power: 80
`), 0o644))

	defs, err := LoadSkillsFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hyper Fang", defs[0].Name)

	_, err = LoadSkillsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
