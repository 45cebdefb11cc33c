package domain

// Position - координаты клетки сетки
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pos - короткий конструктор
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Manhattan возвращает манхэттенское расстояние до другой клетки
func (p Position) Manhattan(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// Shift возвращает новую позицию со смещением
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Directions - порядок обхода соседей. От него зависит детерминизм поиска пути.
var Directions = [4]Position{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

// Neighbors возвращает 4 соседние клетки в порядке Directions (без проверки границ)
func (p Position) Neighbors() [4]Position {
	var out [4]Position
	for i, d := range Directions {
		out[i] = p.Shift(d.X, d.Y)
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
