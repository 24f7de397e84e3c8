package testutil

import (
	"testing"

	"github.com/udisondev/battleskill/internal/model"
)

// AssertDamage проверяет, что исход — урон ровно want.
func AssertDamage(t testing.TB, want int32, o model.Outcome) {
	t.Helper()

	if o.Kind != model.OutcomeDamage {
		t.Fatalf("%s: expected damage outcome, got %s", o.Skill, o.Kind)
	}
	if o.Magnitude != want {
		t.Fatalf("%s: damage mismatch: expected %d, got %d", o.Skill, want, o.Magnitude)
	}
}

// AssertDamageBetween проверяет, что урон лежит в [lo, hi].
func AssertDamageBetween(t testing.TB, lo, hi int32, o model.Outcome) {
	t.Helper()

	if o.Kind != model.OutcomeDamage {
		t.Fatalf("%s: expected damage outcome, got %s", o.Skill, o.Kind)
	}
	if o.Magnitude < lo || o.Magnitude > hi {
		t.Fatalf("%s: damage %d out of range [%d, %d]", o.Skill, o.Magnitude, lo, hi)
	}
}

// AssertHeal проверяет лечение. Magnitude хранится отрицательной, amount — положительный.
func AssertHeal(t testing.TB, amount int32, o model.Outcome) {
	t.Helper()

	if o.Kind != model.OutcomeHeal {
		t.Fatalf("%s: expected heal outcome, got %s", o.Skill, o.Kind)
	}
	if o.Healing() != amount {
		t.Fatalf("%s: heal mismatch: expected %d, got %d", o.Skill, amount, o.Healing())
	}
}

// AssertStatus проверяет сигнал статуса: эффект и факт срабатывания.
func AssertStatus(t testing.TB, effect model.StatusEffect, triggered bool, o model.Outcome) {
	t.Helper()

	if o.Status == nil {
		t.Fatalf("%s: outcome carries no status signal", o.Skill)
	}
	if o.Status.Effect != effect {
		t.Fatalf("%s: status effect mismatch: expected %s, got %s", o.Skill, effect, o.Status.Effect)
	}
	if o.Status.Triggered != triggered {
		t.Fatalf("%s: status triggered mismatch: expected %t, got %t", o.Skill, triggered, o.Status.Triggered)
	}
	if o.Magnitude != 0 {
		t.Fatalf("%s: status outcome must not deal damage, got %d", o.Skill, o.Magnitude)
	}
}
