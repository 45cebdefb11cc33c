package domain

// ActionKind - имя действия в реестре юнита
type ActionKind uint8

const (
	ActionUnknown ActionKind = iota
	ActionAttack
	ActionHeal
	ActionFortify
	ActionPreciseShot
	ActionCharge
	ActionProtect
)

// Маппинг для логов Domain -> String
var actionKindToString = map[ActionKind]string{
	ActionAttack:      "attack",
	ActionHeal:        "heal",
	ActionFortify:     "fortify",
	ActionPreciseShot: "precise_shot",
	ActionCharge:      "charge",
	ActionProtect:     "protect",
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (k ActionKind) String() string {
	if val, ok := actionKindToString[k]; ok {
		return val
	}
	return "unknown"
}

// Action - способность, привязанная ровно к одному юниту.
// Хранит только конфигурацию; поведение берется из реестра applyFuncs.
type Action struct {
	Kind   ActionKind
	Amount int // Сила: лечение, бонус защиты, множитель урона

	owner *Unit
}

// applyFunc - контракт для любого действия.
// ok == false означает "действие не возвращает значения" (баффы).
type applyFunc func(a Action, target *Unit) (value int, ok bool)

var applyFuncs = map[ActionKind]applyFunc{
	ActionAttack:      applyAttack,
	ActionHeal:        applyHeal,
	ActionFortify:     applyFortify,
	ActionPreciseShot: applyPreciseShot,
	ActionCharge:      applyCharge,
	ActionProtect:     applyProtect,
}

// Действия без цели
var selfActions = map[ActionKind]bool{
	ActionFortify: true,
}

// NeedsTarget сообщает, требует ли действие цель.
func (k ActionKind) NeedsTarget() bool {
	return !selfActions[k]
}

// Apply выполняет действие. Мертвую цель трогать нельзя.
func (a Action) Apply(target *Unit) (int, bool, error) {
	fn, ok := applyFuncs[a.Kind]
	if !ok || a.owner == nil {
		return 0, false, a.fail(ErrActionMissing)
	}
	if a.Kind.NeedsTarget() {
		if target == nil {
			return 0, false, a.fail(ErrTargetRequired)
		}
		if !target.IsAlive() {
			return 0, false, a.fail(ErrTargetDead)
		}
	}
	value, hasValue := fn(a, target)
	return value, hasValue, nil
}

func (a Action) fail(err error) error {
	e := &ActionError{Kind: a.Kind, Err: err}
	if a.owner != nil {
		e.Actor = a.owner.ID
	}
	return e
}

// Базовая атака с учетом защиты цели
func applyAttack(a Action, target *Unit) (int, bool) {
	return target.ReceiveDamage(a.owner.Attack), true
}

// Лечение без митигации и без потолка
func applyHeal(a Action, target *Unit) (int, bool) {
	target.Health += a.Amount
	return a.Amount, true
}

// Укрепление: защита самого юнита растет
func applyFortify(a Action, _ *Unit) (int, bool) {
	a.owner.Defense += a.Amount
	return 0, false
}

// Точный выстрел игнорирует защиту
func applyPreciseShot(a Action, target *Unit) (int, bool) {
	target.Health -= a.owner.Attack
	return a.owner.Attack, true
}

// Атака с разгона: множитель урона, защита работает как обычно
func applyCharge(a Action, target *Unit) (int, bool) {
	return target.ReceiveDamage(a.owner.Attack * a.Amount), true
}

// Защита союзника
func applyProtect(a Action, target *Unit) (int, bool) {
	target.Defense += a.Amount
	return 0, false
}
