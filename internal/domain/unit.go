package domain

// Stats - боевые характеристики юнита.
type Stats struct {
	Health  int `json:"health"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"` // Инициатива: чем больше, тем раньше ход
	Range   int `json:"range"` // Порог манхэттенского расстояния
}

// Unit - боевая сущность. Мутируется действиями на месте.
type Unit struct {
	ID        UnitID    `json:"id"`
	Archetype Archetype `json:"archetype"`
	Stats

	// Реестр действий: имя -> действие, привязанное к этому юниту
	Actions map[ActionKind]Action `json:"-"`
}

// ReceiveDamage наносит урон с учетом защиты. Возвращает эффективный урон.
func (u *Unit) ReceiveDamage(amount int) int {
	effective := amount - u.Defense
	if effective < 0 {
		effective = 0
	}
	u.Health -= effective
	return effective
}

// IsAlive - юнит в бою, пока здоровье > 0
func (u *Unit) IsAlive() bool {
	return u.Health > 0
}

// Register привязывает действие к юниту (перезаписывает существующее).
func (u *Unit) Register(kind ActionKind, amount int) {
	if u.Actions == nil {
		u.Actions = make(map[ActionKind]Action)
	}
	u.Actions[kind] = Action{Kind: kind, Amount: amount, owner: u}
}

// Can проверяет, есть ли у юнита действие.
func (u *Unit) Can(kind ActionKind) bool {
	_, ok := u.Actions[kind]
	return ok
}

// Perform вызывает действие по имени.
// Возвращает (значение, есть_значение, ошибка): урон, лечение или ничего для баффов.
func (u *Unit) Perform(kind ActionKind, target *Unit) (int, bool, error) {
	a, ok := u.Actions[kind]
	if !ok {
		return 0, false, &ActionError{Actor: u.ID, Kind: kind, Err: ErrActionMissing}
	}
	return a.Apply(target)
}

// Clone делает копию для снапшотов. Реестр перепривязывается к копии.
func (u *Unit) Clone() *Unit {
	c := &Unit{ID: u.ID, Archetype: u.Archetype, Stats: u.Stats}
	for kind, a := range u.Actions {
		c.Register(kind, a.Amount)
	}
	return c
}
