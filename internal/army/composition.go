package army

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"tactics-sim/internal/domain"
	"tactics-sim/pkg/api"
)

var validate = validator.New()

// Entry - строка состава: архетип и количество
type Entry struct {
	Archetype string `json:"archetype" yaml:"archetype" validate:"required"`
	Count     int    `json:"count" yaml:"count" validate:"gte=1"`
}

// Composition - описание армии для импорта
type Composition struct {
	Faction string  `json:"faction" yaml:"faction"`
	Units   []Entry `json:"units" yaml:"units" validate:"required,min=1,dive"`
	Bonus   *Bonus  `json:"bonus,omitempty" yaml:"bonus,omitempty"`
}

func (c Composition) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid composition: %w", err)
	}
	return nil
}

// DecodeYAML читает состав из YAML
func DecodeYAML(r io.Reader) (Composition, error) {
	var c Composition
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return Composition{}, fmt.Errorf("decode composition yaml: %w", err)
	}
	return c, c.Validate()
}

// DecodeJSON читает состав из JSON
func DecodeJSON(r io.Reader) (Composition, error) {
	var c Composition
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Composition{}, fmt.Errorf("decode composition json: %w", err)
	}
	return c, c.Validate()
}

// Build собирает армию. Все архетипы резолвятся до создания первого юнита,
// поэтому при ошибке фабрика не тратит ID.
func Build(c Composition, f *domain.UnitFactory) (*Army, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	resolved := make([]domain.Archetype, len(c.Units))
	for i, e := range c.Units {
		arch, err := domain.ParseArchetype(e.Archetype)
		if err != nil {
			return nil, fmt.Errorf("units[%d]: %w", i, err)
		}
		resolved[i] = arch
	}

	units := make([]*domain.Unit, 0)
	for i, e := range c.Units {
		for n := 0; n < e.Count; n++ {
			u, err := f.New(resolved[i])
			if err != nil {
				return nil, err
			}
			units = append(units, u)
		}
	}

	var bonus Bonus
	if c.Bonus != nil {
		bonus = *c.Bonus
	}
	return NewFaction(c.Faction, units, bonus), nil
}

// Export снимает текущие статы армии в порядке ростера
func Export(a *Army) []api.UnitView {
	out := make([]api.UnitView, 0, a.Len())
	for _, u := range a.units {
		out = append(out, api.NewUnitView(u))
	}
	return out
}
