package domain

import (
	"fmt"
	"strconv"
)

// UnitID - упакованный идентификатор юнита (Archetype + Index).
//
// Формат битов (от старших к младшим):
//
//	[ reserved (24) | Archetype (8) | Index (32) ]
//
// Архетип зашит в ID, поэтому бинарный реплей может восстановить
// тип юнита без отдельного поля.
type UnitID uint64

// NilUnitID - аналог nil: пустая клетка сетки хранит именно его.
const NilUnitID UnitID = 0

const (
	bitsIndex     = 32
	bitsArchetype = 8

	shiftArchetype = bitsIndex

	maskIndex     = (1 << bitsIndex) - 1
	maskArchetype = (1 << bitsArchetype) - 1
)

// PackUnitID собирает UnitID из архетипа и порядкового номера.
func PackUnitID(archetype Archetype, index uint32) UnitID {
	id := uint64(index) & maskIndex
	id |= (uint64(archetype) & maskArchetype) << shiftArchetype
	return UnitID(id)
}

func (id UnitID) Archetype() Archetype {
	return Archetype((id >> shiftArchetype) & maskArchetype)
}

func (id UnitID) Index() uint32 {
	return uint32(id & maskIndex)
}

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших int64
func (id UnitID) MarshalJSON() ([]byte, error) {
	s := strconv.FormatUint(uint64(id), 10)
	return []byte(`"` + s + `"`), nil
}

// UnmarshalJSON парсит строку или число из JSON
func (id *UnitID) UnmarshalJSON(data []byte) error {
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = UnitID(val)
	return nil
}

// String для логов: [archer:7]
func (id UnitID) String() string {
	return fmt.Sprintf("[%s:%d]", id.Archetype(), id.Index())
}

// UnitFactory выдает юнитов с последовательными ID.
// Отдельный экземпляр на симуляцию делает прогоны воспроизводимыми.
type UnitFactory struct {
	next uint32
}

func NewUnitFactory() *UnitFactory {
	return &UnitFactory{}
}

// New создает юнита по шаблону архетипа.
func (f *UnitFactory) New(archetype Archetype) (*Unit, error) {
	tpl, ok := archetypeTemplates[archetype]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownArchetype, archetype)
	}
	f.next++
	return tpl.spawn(PackUnitID(archetype, f.next)), nil
}

// MustNew - для тестов и пресетов, где архетип заведомо валиден.
func (f *UnitFactory) MustNew(archetype Archetype) *Unit {
	u, err := f.New(archetype)
	if err != nil {
		panic(err)
	}
	return u
}
