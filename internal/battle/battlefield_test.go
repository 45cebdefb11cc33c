package battle

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics-sim/internal/domain"
	"tactics-sim/internal/terrain"
	"tactics-sim/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestPlace(t *testing.T) {
	f := domain.NewUnitFactory()
	// [ . # ~ ]
	// [ . = . ]
	bf := New(terrain.MustParse(".#~", ".=."))

	u := f.MustNew(domain.ArchetypeInfantry)
	require.NoError(t, bf.Place(u, 0, 0))
	pos, ok := bf.Position(u.ID)
	require.True(t, ok)
	assert.Equal(t, domain.Pos(0, 0), pos)
	assert.Same(t, u, bf.UnitAt(0, 0))

	bridge := f.MustNew(domain.ArchetypeArcher)
	require.NoError(t, bf.Place(bridge, 1, 1), "bridge is walkable")

	tests := []struct {
		name   string
		x, y   int
		unit   *domain.Unit
		reason domain.PlacementReason
	}{
		{"out of bounds", 3, 0, f.MustNew(domain.ArchetypeInfantry), domain.PlacementOutOfBounds},
		{"negative", -1, 0, f.MustNew(domain.ArchetypeInfantry), domain.PlacementOutOfBounds},
		{"wall", 1, 0, f.MustNew(domain.ArchetypeInfantry), domain.PlacementObstacle},
		{"water", 2, 0, f.MustNew(domain.ArchetypeInfantry), domain.PlacementObstacle},
		{"occupied", 0, 0, f.MustNew(domain.ArchetypeInfantry), domain.PlacementOccupied},
		{"already placed", 2, 1, u, domain.PlacementAlreadyPlaced},
		{"nil unit", 2, 1, nil, domain.PlacementNoUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bf.Place(tt.unit, tt.x, tt.y)
			require.ErrorIs(t, err, domain.ErrInvalidPlacement)

			var pe *domain.PlacementError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.reason, pe.Reason)
		})
	}

	// Ошибки ничего не поменяли
	assert.Len(t, bf.Units(), 2)
	pos, _ = bf.Position(u.ID)
	assert.Equal(t, domain.Pos(0, 0), pos)
	assert.NoError(t, bf.CheckInvariants())
}

func TestPlace_BaselineRecorded(t *testing.T) {
	f := domain.NewUnitFactory()
	bf := New(terrain.New(2, 1))
	u := f.MustNew(domain.ArchetypeInfantry)
	require.NoError(t, bf.Place(u, 0, 0))

	u.Health = 40
	base, ok := bf.Baseline(u.ID)
	require.True(t, ok)
	assert.Equal(t, 100, base)
}

func TestRemove(t *testing.T) {
	f := domain.NewUnitFactory()
	bf := New(terrain.New(2, 2))
	u := f.MustNew(domain.ArchetypeCavalry)
	require.NoError(t, bf.Place(u, 1, 1))

	bf.Remove(u.ID)
	assert.Nil(t, bf.UnitAt(1, 1))
	_, ok := bf.Position(u.ID)
	assert.False(t, ok)
	_, ok = bf.Baseline(u.ID)
	assert.False(t, ok)
	assert.Empty(t, bf.Units())

	// Клетка снова свободна
	require.NoError(t, bf.Place(f.MustNew(domain.ArchetypeInfantry), 1, 1))
	assert.NoError(t, bf.CheckInvariants())

	// Повторное удаление безопасно
	bf.Remove(u.ID)
}

func TestUnits_RowMajor(t *testing.T) {
	f := domain.NewUnitFactory()
	bf := New(terrain.New(3, 2))
	low := f.MustNew(domain.ArchetypeInfantry)
	high := f.MustNew(domain.ArchetypeArcher)
	require.NoError(t, bf.Place(low, 0, 1))
	require.NoError(t, bf.Place(high, 2, 0))

	assert.Equal(t, []*domain.Unit{high, low}, bf.Units())
	assert.Nil(t, bf.UnitAt(5, 5))
}

func TestGridInterface(t *testing.T) {
	f := domain.NewUnitFactory()
	bf := New(terrain.MustParse("._T"))
	require.NoError(t, bf.Place(f.MustNew(domain.ArchetypeInfantry), 2, 0))

	assert.True(t, bf.IsWalkable(0, 0))
	assert.False(t, bf.IsWalkable(1, 0), "void")
	assert.True(t, bf.IsWalkable(2, 0), "forest is walkable")
	assert.True(t, bf.IsOccupied(2, 0))
	assert.False(t, bf.IsOccupied(0, 0))
	assert.False(t, bf.IsOccupied(9, 0))
}
