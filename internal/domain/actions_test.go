package domain

import (
	"errors"
	"testing"
)

func TestActionKind_String(t *testing.T) {
	tests := []struct {
		kind     ActionKind
		expected string
	}{
		{ActionAttack, "attack"},
		{ActionPreciseShot, "precise_shot"},
		{ActionUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("ActionKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestActions_Effects(t *testing.T) {
	f := NewUnitFactory()

	t.Run("Basic attack is mitigated", func(t *testing.T) {
		archer := f.MustNew(ArchetypeArcher)   // ATK 12
		target := f.MustNew(ArchetypeInfantry) // DEF 5, HP 100

		dmg, ok, err := archer.Perform(ActionAttack, target)
		if err != nil || !ok {
			t.Fatalf("Unexpected result: ok=%v err=%v", ok, err)
		}
		if dmg != 7 || target.Health != 93 {
			t.Errorf("Expected 7 damage and 93 HP, got %d and %d", dmg, target.Health)
		}
	})

	t.Run("Precise shot ignores defense", func(t *testing.T) {
		archer := f.MustNew(ArchetypeArcher)
		target := f.MustNew(ArchetypeDefender) // DEF 8, HP 150

		dmg, _, _ := archer.Perform(ActionPreciseShot, target)
		if dmg != 12 || target.Health != 138 {
			t.Errorf("Expected raw 12 damage and 138 HP, got %d and %d", dmg, target.Health)
		}
	})

	t.Run("Charge doubles attack before mitigation", func(t *testing.T) {
		cav := f.MustNew(ArchetypeCavalry)     // ATK 14
		target := f.MustNew(ArchetypeInfantry) // DEF 5

		dmg, _, _ := cav.Perform(ActionCharge, target)
		if dmg != 23 {
			t.Errorf("Expected 28-5=23 damage, got %d", dmg)
		}
	})

	t.Run("Heal restores a fixed amount", func(t *testing.T) {
		support := f.MustNew(ArchetypeSupport)
		ally := f.MustNew(ArchetypeInfantry)
		ally.Health = 50

		healed, ok, _ := support.Perform(ActionHeal, ally)
		if !ok || healed != HealAmount || ally.Health != 60 {
			t.Errorf("Expected +%d to 60 HP, got +%d to %d", HealAmount, healed, ally.Health)
		}
	})

	t.Run("Fortify buffs self without value", func(t *testing.T) {
		inf := f.MustNew(ArchetypeInfantry)

		_, ok, err := inf.Perform(ActionFortify, nil)
		if err != nil || ok {
			t.Fatalf("Fortify must return no value and no error, got ok=%v err=%v", ok, err)
		}
		if inf.Defense != 7 {
			t.Errorf("Expected defense 7, got %d", inf.Defense)
		}
	})

	t.Run("Protect raises ally defense", func(t *testing.T) {
		def := f.MustNew(ArchetypeDefender)
		ally := f.MustNew(ArchetypeArcher)

		_, ok, _ := def.Perform(ActionProtect, ally)
		if ok || ally.Defense != 2+ProtectBonus {
			t.Errorf("Expected defense %d and no value, got %d (ok=%v)", 2+ProtectBonus, ally.Defense, ok)
		}
	})
}

func TestActions_Errors(t *testing.T) {
	f := NewUnitFactory()
	archer := f.MustNew(ArchetypeArcher)
	corpse := f.MustNew(ArchetypeInfantry)
	corpse.Health = 0

	tests := []struct {
		name   string
		kind   ActionKind
		target *Unit
		want   error
	}{
		{"dead target", ActionAttack, corpse, ErrTargetDead},
		{"missing target", ActionAttack, nil, ErrTargetRequired},
		{"not registered", ActionHeal, corpse, ErrActionMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := archer.Perform(tt.kind, tt.target)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	if corpse.Health != 0 {
		t.Errorf("Dead target must not be touched, HP = %d", corpse.Health)
	}
}
