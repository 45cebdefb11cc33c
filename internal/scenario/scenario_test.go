package scenario

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics-sim/internal/battle"
	"tactics-sim/internal/domain"
	"tactics-sim/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

const duel = `
name: duel
max_turns: 5
terrain:
  - "....."
  - ".#..."
armies:
  a:
    faction: red
    units:
      - archetype: infantry
        count: 3
    deploy: {x: 0, y: 0, w: 2, h: 2}
  b:
    preset: angels
    deploy: {x: 3, y: 0, w: 2, h: 2}
`

func TestLoad_Setup(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "duel.yaml", []byte(duel), 0o644))

	s, err := Load(fs, "duel.yaml")
	require.NoError(t, err)
	assert.Equal(t, "duel", s.Name)

	setup, err := s.Setup(domain.NewUnitFactory(), battle.NewConfig())
	require.NoError(t, err)
	assert.Equal(t, 5, setup.MaxTurns)
	assert.Equal(t, 5, setup.Terrain.Width)
	assert.Equal(t, "red", setup.A.Name)
	assert.Equal(t, "angels", setup.B.Name)

	// Строка за строкой, стена (1,1) пропускается
	want := []domain.Position{domain.Pos(0, 0), domain.Pos(1, 0), domain.Pos(0, 1)}
	for i, u := range setup.A.Units() {
		pos, ok := setup.Field.Position(u.ID)
		require.True(t, ok)
		assert.Equal(t, want[i], pos)
	}
	assert.Len(t, setup.Field.Units(), 6)
	assert.NoError(t, setup.Field.CheckInvariants())
}

func TestSetup_DefaultMaxTurns(t *testing.T) {
	s, err := Parse(strings.NewReader(strings.Replace(duel, "max_turns: 5", "max_turns: 0", 1)))
	require.NoError(t, err)
	setup, err := s.Setup(domain.NewUnitFactory(), battle.Config{MaxTurns: 42})
	require.NoError(t, err)
	assert.Equal(t, 42, setup.MaxTurns)
}

func TestSetup_ZoneTooSmall(t *testing.T) {
	src := strings.Replace(duel, "count: 3", "count: 4", 1)
	s, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	_, err = s.Setup(domain.NewUnitFactory(), battle.NewConfig())
	require.ErrorIs(t, err, domain.ErrInvalidPlacement)

	var pe *domain.PlacementError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, domain.PlacementZoneFull, pe.Reason)
	assert.ErrorContains(t, err, "zone_full")
}

func TestParse_Schema(t *testing.T) {
	s, err := Parse(strings.NewReader(duel))
	require.NoError(t, err)
	assert.Zero(t, s.Schema, "missing schema means the current one")

	_, err = Parse(strings.NewReader("schema: 1\n" + duel))
	assert.NoError(t, err)

	_, err = Parse(strings.NewReader("schema: 2\n" + duel))
	assert.ErrorContains(t, err, "unsupported scenario schema 2")
}

func TestSetup_UnknownArchetype(t *testing.T) {
	s, err := Parse(strings.NewReader(strings.Replace(duel, "archetype: infantry", "archetype: wizard", 1)))
	require.NoError(t, err)
	_, err = s.Setup(domain.NewUnitFactory(), battle.NewConfig())
	assert.ErrorIs(t, err, domain.ErrUnknownArchetype)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no terrain", "armies: {}"},
		{"bad zone", strings.Replace(duel, "w: 2, h: 2}\n  b:", "w: 0, h: 2}\n  b:", 1)},
		{"not yaml", "::::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestBundledScenario(t *testing.T) {
	s, err := Load(afero.NewOsFs(), "../../scenarios/skirmish.yaml")
	require.NoError(t, err)
	setup, err := s.Setup(domain.NewUnitFactory(), battle.NewConfig())
	require.NoError(t, err)

	played := setup.Field.Simulate(setup.A, setup.B, setup.MaxTurns)
	assert.LessOrEqual(t, played, 60)
	assert.NoError(t, setup.Field.CheckInvariants())
}
