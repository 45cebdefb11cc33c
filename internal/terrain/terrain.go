package terrain

import (
	"errors"
	"fmt"
	"strings"
)

// TileType - класс клетки местности (закрытый словарь)
type TileType uint8

const (
	TileGround TileType = iota
	TileWall
	TileVoid
	TileWater
	TileBridge
	TileForest
)

var tileToString = map[TileType]string{
	TileGround: "ground",
	TileWall:   "wall",
	TileVoid:   "void",
	TileWater:  "water",
	TileBridge: "bridge",
	TileForest: "forest",
}

// Символы ASCII-карты
var glyphToTile = map[rune]TileType{
	'.': TileGround,
	'#': TileWall,
	'_': TileVoid,
	'~': TileWater,
	'=': TileBridge,
	'T': TileForest,
}

var tileToGlyph = map[TileType]rune{
	TileGround: '.',
	TileWall:   '#',
	TileVoid:   '_',
	TileWater:  '~',
	TileBridge: '=',
	TileForest: 'T',
}

func (t TileType) String() string {
	if val, ok := tileToString[t]; ok {
		return val
	}
	return "unknown"
}

// IsObstacle - мост проходим, хотя лежит поверх воды
func (t TileType) IsObstacle() bool {
	switch t {
	case TileWall, TileVoid, TileWater:
		return true
	}
	return false
}

var ErrInvalidMap = errors.New("invalid terrain map")

// Map - карта местности только для чтения: размеры и классы клеток.
type Map struct {
	Width  int
	Height int
	Tiles  [][]TileType // [y][x]
}

// New создает карту, заполненную землей
func New(width, height int) *Map {
	tiles := make([][]TileType, height)
	for y := range tiles {
		tiles[y] = make([]TileType, width)
	}
	return &Map{Width: width, Height: height, Tiles: tiles}
}

// Parse строит карту из ASCII-строк одинаковой длины
func Parse(rows []string) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidMap)
	}
	width := len([]rune(rows[0]))
	if width == 0 {
		return nil, fmt.Errorf("%w: empty row", ErrInvalidMap)
	}

	m := New(width, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, expected %d", ErrInvalidMap, y, len(runes), width)
		}
		for x, r := range runes {
			tile, ok := glyphToTile[r]
			if !ok {
				return nil, fmt.Errorf("%w: unknown glyph %q at (%d,%d)", ErrInvalidMap, r, x, y)
			}
			m.Tiles[y][x] = tile
		}
	}
	return m, nil
}

// MustParse - для тестов
func MustParse(rows ...string) *Map {
	m, err := Parse(rows)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Tile возвращает класс клетки; за границами - void
func (m *Map) Tile(x, y int) TileType {
	if !m.InBounds(x, y) {
		return TileVoid
	}
	return m.Tiles[y][x]
}

// IsObstacle - за границами карты всегда препятствие
func (m *Map) IsObstacle(x, y int) bool {
	return m.Tile(x, y).IsObstacle()
}

// Rows возвращает ASCII-представление карты
func (m *Map) Rows() []string {
	rows := make([]string, m.Height)
	for y := 0; y < m.Height; y++ {
		var sb strings.Builder
		for x := 0; x < m.Width; x++ {
			sb.WriteRune(tileToGlyph[m.Tiles[y][x]])
		}
		rows[y] = sb.String()
	}
	return rows
}
