package pathfind

import "tactics-sim/internal/domain"

// node обертка для элемента открытого списка
type node struct {
	Pos   domain.Position
	F     int // g + эвристика. Чем меньше, тем раньше раскрываем.
	Seq   int // Порядок обнаружения: разрешает ничьи по F
	Index int // Индекс в куче
}

// openQueue реализует heap.Interface (MinHeap по (F, Seq))
type openQueue []*node

func (q openQueue) Len() int { return len(q) }

func (q openQueue) Less(i, j int) bool {
	if q[i].F != q[j].F {
		return q[i].F < q[j].F
	}
	return q[i].Seq < q[j].Seq
}

func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].Index = i
	q[j].Index = j
}

func (q *openQueue) Push(x interface{}) {
	n := len(*q)
	item := x.(*node)
	item.Index = n
	*q = append(*q, item)
}

func (q *openQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*q = old[0 : n-1]
	return item
}
