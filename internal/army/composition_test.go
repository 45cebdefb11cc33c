package army

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics-sim/internal/domain"
)

const yamlComposition = `
faction: north
units:
  - archetype: infantry
    count: 2
  - archetype: ARQUERIA
    count: 1
bonus:
  attack: 1
`

func TestDecodeYAML_Build(t *testing.T) {
	c, err := DecodeYAML(strings.NewReader(yamlComposition))
	require.NoError(t, err)
	require.NotNil(t, c.Bonus)

	a, err := Build(c, domain.NewUnitFactory())
	require.NoError(t, err)
	require.Equal(t, 3, a.Len())
	assert.Equal(t, "north", a.Name)

	units := a.Units()
	assert.Equal(t, domain.ArchetypeInfantry, units[0].Archetype)
	assert.Equal(t, domain.ArchetypeInfantry, units[1].Archetype)
	assert.Equal(t, domain.ArchetypeArcher, units[2].Archetype)
	assert.Equal(t, 13, units[2].Attack)
}

func TestDecodeJSON(t *testing.T) {
	c, err := DecodeJSON(strings.NewReader(`{"faction":"x","units":[{"archetype":"support","count":2}]}`))
	require.NoError(t, err)
	assert.Nil(t, c.Bonus)
	assert.Equal(t, 2, c.Units[0].Count)

	_, err = DecodeJSON(strings.NewReader(`{"units":[{"archetype":"support","count":1}],"extra":1}`))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestComposition_Validate(t *testing.T) {
	tests := []struct {
		name string
		comp Composition
	}{
		{"no units", Composition{Faction: "x"}},
		{"zero count", Composition{Units: []Entry{{Archetype: "archer", Count: 0}}}},
		{"empty archetype", Composition{Units: []Entry{{Count: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.comp.Validate())
		})
	}
}

func TestBuild_UnknownArchetypeBuildsNothing(t *testing.T) {
	f := domain.NewUnitFactory()
	c := Composition{Units: []Entry{
		{Archetype: "infantry", Count: 3},
		{Archetype: "wizard", Count: 1},
	}}

	a, err := Build(c, f)
	assert.ErrorIs(t, err, domain.ErrUnknownArchetype)
	assert.Nil(t, a)

	// Фабрика не потратила ни одного ID
	next := f.MustNew(domain.ArchetypeInfantry)
	assert.Equal(t, uint32(1), next.ID.Index())
}

func TestExport(t *testing.T) {
	f := domain.NewUnitFactory()
	a := New("red")
	u := f.MustNew(domain.ArchetypeDefender)
	u.Health = 42
	a.Add(u)
	a.Add(f.MustNew(domain.ArchetypeSupport))

	views := Export(a)
	require.Len(t, views, 2)
	assert.Equal(t, u.ID, views[0].ID)
	assert.Equal(t, "defender", views[0].Archetype)
	assert.Equal(t, 42, views[0].Health)
	assert.Equal(t, 8, views[0].Defense)
	assert.Equal(t, "support", views[1].Archetype)
	assert.Equal(t, 2, views[1].Range)
}
