package domain

import (
	"fmt"
	"strings"
)

// Archetype - шаблон, фиксирующий стартовые статы и спец-действие юнита.
type Archetype uint8

const (
	ArchetypeUnknown Archetype = iota
	ArchetypeInfantry
	ArchetypeArcher
	ArchetypeCavalry
	ArchetypeDefender
	ArchetypeSupport
)

var archetypeToString = map[Archetype]string{
	ArchetypeInfantry: "infantry",
	ArchetypeArcher:   "archer",
	ArchetypeCavalry:  "cavalry",
	ArchetypeDefender: "defender",
	ArchetypeSupport:  "support",
}

// Испанские алиасы архетипов тоже принимаются.
var archetypeStringToType = map[string]Archetype{
	"INFANTRY":   ArchetypeInfantry,
	"ARCHER":     ArchetypeArcher,
	"CAVALRY":    ArchetypeCavalry,
	"DEFENDER":   ArchetypeDefender,
	"SUPPORT":    ArchetypeSupport,
	"INFANTERIA": ArchetypeInfantry,
	"ARQUERIA":   ArchetypeArcher,
	"CABALLERIA": ArchetypeCavalry,
	"DEFENSA":    ArchetypeDefender,
	"SOPORTE":    ArchetypeSupport,
}

// String реализует интерфейс Stringer (для логов и экспорта)
func (a Archetype) String() string {
	if val, ok := archetypeToString[a]; ok {
		return val
	}
	return "unknown"
}

// ParseArchetype конвертирует имя из конфига в Archetype.
func ParseArchetype(s string) (Archetype, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := archetypeStringToType[upper]; ok {
		return val, nil
	}
	return ArchetypeUnknown, fmt.Errorf("%w: %q", ErrUnknownArchetype, s)
}

// MarshalText позволяет писать архетип строкой в JSON/YAML.
func (a Archetype) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Archetype) UnmarshalText(text []byte) error {
	val, err := ParseArchetype(string(text))
	if err != nil {
		return err
	}
	*a = val
	return nil
}

// Archetypes возвращает все известные архетипы в каноническом порядке.
func Archetypes() []Archetype {
	return []Archetype{ArchetypeInfantry, ArchetypeArcher, ArchetypeCavalry, ArchetypeDefender, ArchetypeSupport}
}

// Значения спец-действий
const (
	HealAmount       = 10
	FortifyBonus     = 2
	ProtectBonus     = 3
	ChargeMultiplier = 2
)

type archetypeTemplate struct {
	Stats   Stats
	Special ActionKind
	Amount  int
}

var archetypeTemplates = map[Archetype]archetypeTemplate{
	ArchetypeInfantry: {
		Stats:   Stats{Health: 100, Attack: 10, Defense: 5, Speed: 2, Range: 1},
		Special: ActionFortify, Amount: FortifyBonus,
	},
	ArchetypeArcher: {
		Stats:   Stats{Health: 80, Attack: 12, Defense: 2, Speed: 3, Range: 3},
		Special: ActionPreciseShot,
	},
	ArchetypeCavalry: {
		Stats:   Stats{Health: 120, Attack: 14, Defense: 4, Speed: 4, Range: 1},
		Special: ActionCharge, Amount: ChargeMultiplier,
	},
	ArchetypeDefender: {
		Stats:   Stats{Health: 150, Attack: 6, Defense: 8, Speed: 1, Range: 1},
		Special: ActionProtect, Amount: ProtectBonus,
	},
	ArchetypeSupport: {
		Stats:   Stats{Health: 70, Attack: 4, Defense: 1, Speed: 2, Range: 2},
		Special: ActionHeal, Amount: HealAmount,
	},
}

// BaseStats возвращает стартовые статы архетипа.
func BaseStats(a Archetype) (Stats, bool) {
	tpl, ok := archetypeTemplates[a]
	return tpl.Stats, ok
}

func (t archetypeTemplate) spawn(id UnitID) *Unit {
	u := &Unit{
		ID:        id,
		Archetype: id.Archetype(),
		Stats:     t.Stats,
	}
	u.Register(ActionAttack, 0)
	u.Register(t.Special, t.Amount)
	return u
}
