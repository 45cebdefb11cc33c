package battle

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"tactics-sim/internal/domain"
	"tactics-sim/internal/terrain"
	"tactics-sim/pkg/logger"
)

// route - закэшированный маршрут к конкретной цели (без клетки старта)
type route struct {
	Goal  domain.Position
	Steps []domain.Position
}

// Battlefield - сетка боя поверх карты местности.
//
// Все юниты лежат в арене по ID. Сетка, индекс позиций, базовое здоровье и кэш
// путей хранят только ID, поэтому удаление юнита - одна операция purge.
type Battlefield struct {
	Terrain *terrain.Map
	Width   int
	Height  int

	arena     map[domain.UnitID]*domain.Unit
	grid      [][]domain.UnitID
	positions map[domain.UnitID]domain.Position
	baseline  map[domain.UnitID]int
	paths     map[domain.UnitID]route

	stats  domain.Statistics
	replay []domain.TurnRecord

	log *logrus.Entry
}

func New(m *terrain.Map) *Battlefield {
	grid := make([][]domain.UnitID, m.Height)
	for y := range grid {
		grid[y] = make([]domain.UnitID, m.Width)
	}
	return &Battlefield{
		Terrain:   m,
		Width:     m.Width,
		Height:    m.Height,
		arena:     make(map[domain.UnitID]*domain.Unit),
		grid:      grid,
		positions: make(map[domain.UnitID]domain.Position),
		baseline:  make(map[domain.UnitID]int),
		paths:     make(map[domain.UnitID]route),
		stats:     domain.NewStatistics(),
		replay:    make([]domain.TurnRecord, 0),
		log:       logger.For("battlefield"),
	}
}

// --- Grid для pathfind ---

func (b *Battlefield) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

func (b *Battlefield) IsObstacle(x, y int) bool {
	return b.Terrain.IsObstacle(x, y)
}

func (b *Battlefield) IsOccupied(x, y int) bool {
	return b.InBounds(x, y) && b.grid[y][x] != domain.NilUnitID
}

// IsWalkable - клетка в границах и не препятствие. Занятость не учитывается.
func (b *Battlefield) IsWalkable(x, y int) bool {
	return b.InBounds(x, y) && !b.IsObstacle(x, y)
}

// Place ставит юнита в клетку. При ошибке состояние не меняется.
// Базовое здоровье запоминается только при первой расстановке юнита.
func (b *Battlefield) Place(u *domain.Unit, x, y int) error {
	if u == nil {
		return &domain.PlacementError{Pos: domain.Pos(x, y), Reason: domain.PlacementNoUnit}
	}
	fail := func(reason domain.PlacementReason) error {
		return &domain.PlacementError{Unit: u.ID, Pos: domain.Pos(x, y), Reason: reason}
	}

	switch {
	case !b.InBounds(x, y):
		return fail(domain.PlacementOutOfBounds)
	case b.IsObstacle(x, y):
		return fail(domain.PlacementObstacle)
	case b.grid[y][x] != domain.NilUnitID:
		return fail(domain.PlacementOccupied)
	}
	if _, ok := b.positions[u.ID]; ok {
		return fail(domain.PlacementAlreadyPlaced)
	}

	b.arena[u.ID] = u
	b.grid[y][x] = u.ID
	b.positions[u.ID] = domain.Pos(x, y)
	if _, ok := b.baseline[u.ID]; !ok {
		b.baseline[u.ID] = u.Health
	}

	b.log.WithFields(logrus.Fields{
		"unit": u.ID,
		"x":    x,
		"y":    y,
	}).Debug("Unit placed")
	return nil
}

// Remove убирает юнита с поля (сетка, позиции, базовое здоровье, кэш путей).
// Ростеры армий не трогает.
func (b *Battlefield) Remove(id domain.UnitID) {
	if pos, ok := b.positions[id]; ok {
		b.grid[pos.Y][pos.X] = domain.NilUnitID
	}
	delete(b.positions, id)
	delete(b.baseline, id)
	delete(b.paths, id)
	delete(b.arena, id)
}

// Position возвращает клетку юнита
func (b *Battlefield) Position(id domain.UnitID) (domain.Position, bool) {
	p, ok := b.positions[id]
	return p, ok
}

// UnitAt возвращает юнита в клетке или nil
func (b *Battlefield) UnitAt(x, y int) *domain.Unit {
	if !b.InBounds(x, y) {
		return nil
	}
	id := b.grid[y][x]
	if id == domain.NilUnitID {
		return nil
	}
	return b.arena[id]
}

// Units возвращает юнитов на поле в порядке сетки (row-major).
func (b *Battlefield) Units() []*domain.Unit {
	out := make([]*domain.Unit, 0, len(b.positions))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if id := b.grid[y][x]; id != domain.NilUnitID {
				out = append(out, b.arena[id])
			}
		}
	}
	return out
}

// Baseline - здоровье юнита при расстановке
func (b *Battlefield) Baseline(id domain.UnitID) (int, bool) {
	hp, ok := b.baseline[id]
	return hp, ok
}

// Stats - снимок статистики, не разделяющий состояние с полем
func (b *Battlefield) Stats() domain.Statistics {
	return b.stats.Snapshot()
}

// Replay - копия ленты ходов
func (b *Battlefield) Replay() []domain.TurnRecord {
	out := make([]domain.TurnRecord, len(b.replay))
	for i, t := range b.replay {
		actions := make([]domain.ActionRecord, len(t.Actions))
		copy(actions, t.Actions)
		out[i] = domain.TurnRecord{Number: t.Number, Actions: actions}
	}
	return out
}

// CheckInvariants проверяет биекцию сетка <-> позиции
func (b *Battlefield) CheckInvariants() error {
	seen := 0
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			id := b.grid[y][x]
			if id == domain.NilUnitID {
				continue
			}
			seen++
			pos, ok := b.positions[id]
			if !ok {
				return fmt.Errorf("grid (%d,%d) holds %s without a position", x, y, id)
			}
			if pos != domain.Pos(x, y) {
				return fmt.Errorf("grid (%d,%d) holds %s but position is (%d,%d)", x, y, id, pos.X, pos.Y)
			}
			if _, ok := b.arena[id]; !ok {
				return fmt.Errorf("grid (%d,%d) holds unknown unit %s", x, y, id)
			}
		}
	}
	if seen != len(b.positions) {
		return fmt.Errorf("grid holds %d units, position index holds %d", seen, len(b.positions))
	}
	return nil
}

// moveTo переносит юнита в соседнюю свободную клетку. Сетка и позиция меняются вместе.
func (b *Battlefield) moveTo(id domain.UnitID, to domain.Position) bool {
	from, ok := b.positions[id]
	if !ok || !b.IsWalkable(to.X, to.Y) || b.grid[to.Y][to.X] != domain.NilUnitID {
		return false
	}
	b.grid[from.Y][from.X] = domain.NilUnitID
	b.grid[to.Y][to.X] = id
	b.positions[id] = to
	return true
}
