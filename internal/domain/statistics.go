package domain

// Statistics - монотонные счетчики симуляции
type Statistics struct {
	TurnCount    int
	TotalDamage  int
	TotalHealing int
	DamageByUnit map[UnitID]int
}

func NewStatistics() Statistics {
	return Statistics{DamageByUnit: make(map[UnitID]int)}
}

// AddDamage учитывает урон атакующего
func (s *Statistics) AddDamage(attacker UnitID, amount int) {
	if s.DamageByUnit == nil {
		s.DamageByUnit = make(map[UnitID]int)
	}
	s.TotalDamage += amount
	s.DamageByUnit[attacker] += amount
}

func (s *Statistics) AddHealing(amount int) {
	s.TotalHealing += amount
}

// Snapshot возвращает копию, не разделяющую карту с оригиналом
func (s Statistics) Snapshot() Statistics {
	out := s
	out.DamageByUnit = make(map[UnitID]int, len(s.DamageByUnit))
	for id, v := range s.DamageByUnit {
		out.DamageByUnit[id] = v
	}
	return out
}
