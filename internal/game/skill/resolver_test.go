package skill

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battleskill/internal/data"
	"github.com/udisondev/battleskill/internal/game/formula"
	"github.com/udisondev/battleskill/internal/game/rng"
	"github.com/udisondev/battleskill/internal/model"
	"github.com/udisondev/battleskill/internal/testutil"
)

// noVariance pins variance at 100% and fails every secondary roll below 100.
var noVariance = testutil.FixedSource(100)

func mustRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := DefaultRegistry()
	require.NoError(t, err)
	return reg
}

func resolve(t *testing.T, id string, attacker, defender model.Snapshot, src rng.Source) model.Outcome {
	t.Helper()
	out, err := mustRegistry(t).Resolve(id, attacker, defender, src, nil)
	require.NoError(t, err)
	return out
}

func TestFixedPower_Thunderbolt(t *testing.T) {
	attacker := testutil.Snapshot("A", 100, 100)
	defender := testutil.Snapshot("D", 100, 100)

	out := resolve(t, "thunderbolt", attacker, defender, noVariance)

	assert.Equal(t, model.OutcomeDamage, out.Kind)
	assert.Equal(t, int32(41), out.Magnitude)
	assert.Equal(t, int32(90), out.Power)
	assert.False(t, out.Secondary)
	assert.Nil(t, out.Status)
}

func TestFixedPower_UsesDefenseNotSpecialDefense(t *testing.T) {
	attacker := testutil.Snapshot("A", 100, 100)
	defender := model.NewSnapshot("D", 100, 100, 100, 100, 1, 100)

	testutil.AssertDamage(t, 19, resolve(t, "water_gun", attacker, defender, noVariance))
}

func TestFixedPower_EmberUsesSpecialDefense(t *testing.T) {
	attacker := testutil.Snapshot("A", 100, 100)
	defender := model.NewSnapshot("D", 100, 100, 100, 1, 100, 100)

	testutil.AssertDamage(t, 19, resolve(t, "ember", attacker, defender, noVariance))
}

func TestFixedPower_SlashCritical(t *testing.T) {
	attacker := testutil.Snapshot("A", 100, 100)
	defender := testutil.Snapshot("D", 100, 100)

	t.Run("roll 30 crits", func(t *testing.T) {
		rec := &Recorder{}
		out, err := mustRegistry(t).Resolve("slash", attacker, defender, testutil.NewSequence(30, 100), rec)
		require.NoError(t, err)
		assert.True(t, out.Secondary)
		assert.Equal(t, int32(48), out.Magnitude)
		assert.True(t, rec.Has(EventSecondary))
	})

	t.Run("roll 31 does not crit", func(t *testing.T) {
		out := resolve(t, "slash", attacker, defender, testutil.NewSequence(31, 100))
		assert.False(t, out.Secondary)
		assert.Equal(t, int32(32), out.Magnitude)
	})
}

func TestFixedPower_FlamethrowerBurnBonus(t *testing.T) {
	attacker := testutil.Snapshot("A", 100, 100)
	defender := testutil.Snapshot("D", 100, 100)

	out := resolve(t, "flamethrower", attacker, defender, testutil.NewSequence(10, 100))
	assert.True(t, out.Secondary)
	assert.Equal(t, int32(61), out.Magnitude)

	out = resolve(t, "flamethrower", attacker, defender, testutil.NewSequence(11, 100))
	assert.False(t, out.Secondary)
	assert.Equal(t, int32(41), out.Magnitude)
}

func TestFixedPower_VarianceRange(t *testing.T) {
	attacker := testutil.Snapshot("A", 100, 100)
	defender := testutil.Snapshot("D", 100, 100)
	src := rng.New(42)

	// base 41: floor(41*0.85) = 34 .. 41
	for range 500 {
		testutil.AssertDamageBetween(t, 34, 41, resolve(t, "thunderbolt", attacker, defender, src))
	}
}

func TestOffensive_MinimumDamage(t *testing.T) {
	weak := model.NewSnapshot("Weak", 10, 10, 0, 1, 1, 1)
	wall := model.NewSnapshot("Wall", 10, 10, 1, 5000, 5000, 1)
	src := rng.New(3)

	for _, id := range []string{"thunderbolt", "flamethrower", "water_gun", "slash", "quick_attack", "ember", "electro_ball", "eruption"} {
		for range 200 {
			out := resolve(t, id, weak, wall, src)
			require.GreaterOrEqual(t, out.Magnitude, int32(1), id)
		}
	}
}

func TestSpeedRatio_Tiers(t *testing.T) {
	tests := []struct {
		name       string
		atk, def   int32
		wantPower  int32
		wantDamage int32
	}{
		{"ratio exactly 4", 100, 25, 150, 68},
		{"ratio above 4", 500, 25, 150, 68},
		{"ratio just below 4", 399, 100, 120, 54},
		{"ratio exactly 3", 300, 100, 120, 54},
		{"ratio exactly 2", 200, 100, 80, 37},
		{"ratio exactly 1", 100, 100, 60, 28},
		{"ratio 0.5", 50, 100, 40, 19},
		{"defender speed 0 clamps to 1", 4, 0, 150, 68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attacker := testutil.WithSpeed(testutil.Snapshot("A", 100, 100), tt.atk)
			// defense 1 would inflate damage if the wrong stat were used
			defender := testutil.WithSpeed(model.NewSnapshot("D", 100, 100, 100, 1, 100, 0), tt.def)

			out := resolve(t, "electro_ball", attacker, defender, noVariance)
			assert.Equal(t, tt.wantPower, out.Power)
			assert.Equal(t, tt.wantDamage, out.Magnitude)
		})
	}
}

func TestSpeedRatio_TraceReportsTier(t *testing.T) {
	attacker := model.NewSnapshot("Pikachu", 100, 100, 100, 100, 100, 400)
	defender := model.NewSnapshot("Slowpoke", 100, 100, 100, 100, 100, 100)

	rec := &Recorder{}
	_, err := mustRegistry(t).Resolve("electro_ball", attacker, defender, noVariance, rec)
	require.NoError(t, err)

	lines := rec.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "Pikachu used Electro Ball on Slowpoke", lines[0])
	assert.Equal(t, "Electro Ball power 150 (maximum, speed ratio 4.00x)", lines[1])
	assert.Equal(t, "Electro Ball deals 68 damage to Slowpoke", lines[2])
}

func TestHPRatio_Power(t *testing.T) {
	defender := testutil.Snapshot("D", 100, 100)

	tests := []struct {
		name       string
		current    int32
		wantPower  int32
		wantDamage int32
	}{
		{"full HP", 100, 150, 68},
		{"half HP", 50, 75, 35},
		{"zero HP floors to 1", 0, 1, 2},
		{"negative HP floors to 1", -20, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attacker := testutil.WithHP(testutil.Snapshot("A", 100, 100), tt.current)
			out := resolve(t, "eruption", attacker, defender, noVariance)
			assert.Equal(t, tt.wantPower, out.Power)
			assert.Equal(t, tt.wantDamage, out.Magnitude)
		})
	}
}

func TestHPRatio_UsesSpecialDefense(t *testing.T) {
	attacker := testutil.Snapshot("A", 100, 100)
	defender := model.NewSnapshot("D", 100, 100, 100, 1, 100, 100)

	out := resolve(t, "eruption", attacker, defender, noVariance)
	assert.Equal(t, int32(68), out.Magnitude)
}

func TestStatus_ToxicChance(t *testing.T) {
	attacker := testutil.Pikachu()
	defender := testutil.Charmander()

	t.Run("roll 90 poisons", func(t *testing.T) {
		rec := &Recorder{}
		out, err := mustRegistry(t).Resolve("toxic", attacker, defender, testutil.FixedSource(90), rec)
		require.NoError(t, err)

		assert.Equal(t, model.OutcomeStatus, out.Kind)
		assert.Zero(t, out.Magnitude)
		require.NotNil(t, out.Status)
		assert.Equal(t, model.StatusBadlyPoisoned, out.Status.Effect)
		assert.Equal(t, int32(90), out.Status.Chance)
		assert.True(t, out.Status.Triggered)
		assert.True(t, out.StatusApplied())
		assert.Contains(t, rec.Lines(), "Charmander is badly_poisoned")
	})

	t.Run("roll 91 is avoided", func(t *testing.T) {
		rec := &Recorder{}
		out, err := mustRegistry(t).Resolve("toxic", attacker, defender, testutil.FixedSource(91), rec)
		require.NoError(t, err)

		assert.Zero(t, out.Magnitude)
		assert.False(t, out.Status.Triggered)
		assert.False(t, out.StatusApplied())
		assert.True(t, rec.Has(EventStatusAvoided))
	})
}

func TestStatus_UnconditionalDrawsNothing(t *testing.T) {
	for _, tc := range []struct {
		id     string
		effect model.StatusEffect
	}{
		{"toxic_certain", model.StatusBadlyPoisoned},
		{"thunder_wave", model.StatusParalyzed},
		{"leech_seed", model.StatusSeeded},
	} {
		t.Run(tc.id, func(t *testing.T) {
			seq := testutil.NewSequence(100)
			out := resolve(t, tc.id, testutil.Pikachu(), testutil.Charmander(), seq)

			testutil.AssertStatus(t, tc.effect, true, out)
			assert.Zero(t, seq.Draws())
		})
	}
}

func TestHeal_Recover(t *testing.T) {
	tests := []struct {
		name    string
		maxHP   int32
		current int32
		want    int32
	}{
		{"even max", 100, 100, -50},
		{"odd max floors", 101, 30, -50},
		{"fainted attacker still resolves", 80, 0, -40},
		{"negative current", 80, -5, -40},
		{"max 1 heals nothing", 1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attacker := model.NewSnapshot("A", tt.current, tt.maxHP, 10, 10, 10, 10)
			out := resolve(t, "recover", attacker, testutil.Charmander(), nil)

			testutil.AssertHeal(t, -tt.want, out)
			assert.Equal(t, tt.want, out.Magnitude)
			assert.LessOrEqual(t, out.Magnitude, int32(0))
			assert.Equal(t, -tt.want, out.Healing())
			assert.Zero(t, out.Damage())
		})
	}
}

func TestResolve_InvalidSnapshot(t *testing.T) {
	reg := mustRegistry(t)
	broken := model.NewSnapshot("Broken", 10, 0, 10, 10, 10, 10)
	ok := testutil.Pikachu()

	for _, id := range reg.IDs() {
		t.Run(id, func(t *testing.T) {
			seq := testutil.NewSequence(50)

			_, err := reg.Resolve(id, broken, ok, seq, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidSnapshot))

			_, err = reg.Resolve(id, ok, broken, seq, nil)
			assert.ErrorIs(t, err, model.ErrInvalidSnapshot)

			assert.Zero(t, seq.Draws(), "validation happens before any roll")
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	reg := mustRegistry(t)
	attacker, defender := testutil.Pikachu(), testutil.Charmander()

	for _, id := range reg.IDs() {
		a, err := reg.Resolve(id, attacker, defender, rng.New(777), nil)
		require.NoError(t, err)
		b, err := reg.Resolve(id, attacker, defender, rng.New(777), nil)
		require.NoError(t, err)
		assert.Equal(t, a, b, id)
	}
}

func TestResolve_SnapshotsUntouched(t *testing.T) {
	attacker, defender := testutil.Pikachu(), testutil.Charmander()
	before := [2]model.Snapshot{attacker, defender}

	reg := mustRegistry(t)
	for _, id := range reg.IDs() {
		_, err := reg.Resolve(id, attacker, defender, rng.New(1), nil)
		require.NoError(t, err)
	}
	assert.Equal(t, before, [2]model.Snapshot{attacker, defender})
}

func TestSecondary_TriggerRate(t *testing.T) {
	const trials = 10000
	attacker := testutil.Snapshot("A", 100, 100)
	defender := testutil.Snapshot("D", 100, 100)
	reg := mustRegistry(t)
	src := rng.New(1)

	for _, tc := range []struct {
		id   string
		want float64
	}{
		{"slash", 0.30},
		{"flamethrower", 0.10},
	} {
		hits := 0
		for range trials {
			out, err := reg.Resolve(tc.id, attacker, defender, src, nil)
			require.NoError(t, err)
			if out.Secondary {
				hits++
			}
		}
		assert.InDelta(t, tc.want, float64(hits)/trials, 0.02, tc.id)
	}

	poisoned := 0
	for range trials {
		out, err := reg.Resolve("toxic", attacker, defender, src, nil)
		require.NoError(t, err)
		if out.StatusApplied() {
			poisoned++
		}
	}
	assert.InDelta(t, 0.90, float64(poisoned)/trials, 0.02)
}

func TestFixedPower_DirectConstruction(t *testing.T) {
	s := &FixedPower{
		ID:          "mega_punch",
		DisplayName: "Mega Punch",
		Power:       80,
		Defense:     data.StatDefense,
		Secondary:   formula.Secondary{Chance: 100, Multiplier: 2, Label: "critical"},
	}
	out, err := s.Resolve(testutil.Snapshot("A", 100, 100), testutil.Snapshot("D", 100, 100), noVariance, NopTracer{})
	require.NoError(t, err)

	// 22*80/50+2 = 37.2 → 37, ×2 = 74
	assert.Equal(t, int32(74), out.Magnitude)
	assert.Equal(t, "mega_punch", s.Name())
}
