package army

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"tactics-sim/internal/domain"
	"tactics-sim/pkg/logger"
)

// Bonus - плоская добавка к статам. Каждое поле опционально.
type Bonus struct {
	Attack  *int `json:"attack,omitempty" yaml:"attack,omitempty"`
	Defense *int `json:"defense,omitempty" yaml:"defense,omitempty"`
	Health  *int `json:"health,omitempty" yaml:"health,omitempty"`
	Speed   *int `json:"speed,omitempty" yaml:"speed,omitempty"`
	Range   *int `json:"range,omitempty" yaml:"range,omitempty"`
}

// Apply добавляет бонус к юниту
func (b Bonus) Apply(u *domain.Unit) {
	u.Attack += deref(b.Attack)
	u.Defense += deref(b.Defense)
	u.Health += deref(b.Health)
	u.Speed += deref(b.Speed)
	u.Range += deref(b.Range)
}

// IsZero - ни одно поле бонуса не задано
func (b Bonus) IsZero() bool {
	return b.Attack == nil && b.Defense == nil && b.Health == nil && b.Speed == nil && b.Range == nil
}

// Int - хелпер для литералов бонуса
func Int(v int) *int {
	return &v
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// NewFaction собирает армию и один раз применяет бонус к юнитам,
// присутствующим в момент создания. Добавленные позже бонуса не получают.
func NewFaction(name string, units []*domain.Unit, bonus Bonus) *Army {
	a := New(name)
	for _, u := range units {
		a.Add(u)
	}
	if bonus.IsZero() {
		return a
	}
	for _, u := range a.units {
		bonus.Apply(u)
	}
	logger.For("army").WithFields(logrus.Fields{
		"army":  name,
		"units": a.Len(),
	}).Debug("Faction bonus applied")
	return a
}

// preset - заранее заданная фракция
type preset struct {
	Units []domain.Archetype
	Bonus Bonus
}

var presets = map[string]preset{
	"magic": {
		Units: []domain.Archetype{domain.ArchetypeSupport, domain.ArchetypeArcher, domain.ArchetypeSupport},
		Bonus: Bonus{Attack: Int(2), Range: Int(1)},
	},
	"angels": {
		Units: []domain.Archetype{domain.ArchetypeInfantry, domain.ArchetypeCavalry, domain.ArchetypeSupport},
		Bonus: Bonus{Defense: Int(2), Health: Int(20)},
	},
	"demons": {
		Units: []domain.Archetype{domain.ArchetypeInfantry, domain.ArchetypeArcher, domain.ArchetypeCavalry},
		Bonus: Bonus{Attack: Int(3)},
	},
}

// Presets возвращает имена фракций по алфавиту
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset создает армию готовой фракции
func Preset(name string, f *domain.UnitFactory) (*Army, error) {
	p, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown faction %q", name)
	}
	units := make([]*domain.Unit, 0, len(p.Units))
	for _, arch := range p.Units {
		u, err := f.New(arch)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return NewFaction(strings.ToLower(name), units, p.Bonus), nil
}
