package pathfind

import (
	"container/heap"

	"tactics-sim/internal/domain"
)

// Grid - то, что поиску пути нужно знать о поле боя.
// Препятствия статичны (местность), занятость меняется каждый ход.
type Grid interface {
	InBounds(x, y int) bool
	IsObstacle(x, y int) bool
	IsOccupied(x, y int) bool
}

// Find ищет путь A* по 4-связной сетке.
//
// Клетка назначения проходима даже если занята: путь может в ней закончиться,
// а сам последний шаг отклонит вызывающая сторона. Промежуточные занятые клетки непроходимы.
// Возвращает путь, включая origin и dest. Если пути нет - nil, false.
func Find(g Grid, origin, dest domain.Position) ([]domain.Position, bool) {
	if origin == dest {
		return []domain.Position{origin}, true
	}
	if !g.InBounds(dest.X, dest.Y) || g.IsObstacle(dest.X, dest.Y) {
		return nil, false
	}

	open := make(openQueue, 0)
	heap.Init(&open)

	seq := 0
	heap.Push(&open, &node{Pos: origin, F: origin.Manhattan(dest), Seq: seq})

	cameFrom := make(map[domain.Position]domain.Position)
	gScore := map[domain.Position]int{origin: 0}
	closed := make(map[domain.Position]bool)

	for open.Len() > 0 {
		current := heap.Pop(&open).(*node).Pos
		if current == dest {
			return reconstruct(cameFrom, current), true
		}
		// В куче могут лежать устаревшие дубликаты
		if closed[current] {
			continue
		}
		closed[current] = true

		for _, next := range current.Neighbors() {
			if !passable(g, next, dest) || closed[next] {
				continue
			}
			tentative := gScore[current] + 1
			if old, seen := gScore[next]; seen && tentative >= old {
				continue
			}
			cameFrom[next] = current
			gScore[next] = tentative
			seq++
			heap.Push(&open, &node{Pos: next, F: tentative + next.Manhattan(dest), Seq: seq})
		}
	}

	return nil, false
}

func passable(g Grid, p, dest domain.Position) bool {
	if !g.InBounds(p.X, p.Y) || g.IsObstacle(p.X, p.Y) {
		return false
	}
	if p == dest {
		return true
	}
	return !g.IsOccupied(p.X, p.Y)
}

func reconstruct(cameFrom map[domain.Position]domain.Position, current domain.Position) []domain.Position {
	path := []domain.Position{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	// Разворачиваем: origin -> dest
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
