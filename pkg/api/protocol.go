package api

import (
	"tactics-sim/internal/domain"
)

// --- ЭКСПОРТ РЕПЛЕЯ ---

// ReplayExport это корневой объект файла реплея (и ответа /replay).
type ReplayExport struct {
	// SessionID уникальный ID прогона (uuid)
	SessionID string `json:"session_id,omitempty"`

	// Width/Height размеры поля, чтобы просмотрщик знал, какую сетку готовить.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Turns упорядоченный список ходов
	Turns []TurnView `json:"turns" validate:"dive"`
}

// TurnView один ход реплея
type TurnView struct {
	TurnNumber int          `json:"turn_number" validate:"gte=1"`
	Actions    []ActionView `json:"actions" validate:"dive"`
}

// UnitRef ссылка на юнита в записи действия
type UnitRef struct {
	ID        domain.UnitID `json:"id"`
	Archetype string        `json:"archetype"`
}

// ActionView одна запись действия.
// У move нет amount; у attack amount - эффективный урон; у heal - восстановленное здоровье.
type ActionView struct {
	Type        string   `json:"type" validate:"oneof=move attack heal"`
	Actor       UnitRef  `json:"actor"`
	Target      *UnitRef `json:"target,omitempty"`
	Origin      [2]int   `json:"origin"`
	Destination [2]int   `json:"destination"`
	Amount      *int     `json:"amount,omitempty"`
}

// --- ЭКСПОРТ АРМИИ ---

// UnitView снимок юнита в экспорте армии
type UnitView struct {
	ID        domain.UnitID `json:"id"`
	Archetype string        `json:"archetype"`
	Health    int           `json:"health"`
	Attack    int           `json:"attack"`
	Defense   int           `json:"defense"`
	Speed     int           `json:"speed"`
	Range     int           `json:"range"`
}

// --- СТАТИСТИКА ---

// StatsView снимок статистики. Ключи damage_by_unit - строковые UnitID.
type StatsView struct {
	TurnCount    int            `json:"turn_count"`
	TotalDamage  int            `json:"total_damage"`
	TotalHealing int            `json:"total_healing"`
	DamageByUnit map[string]int `json:"damage_by_unit"`
}

// --- SPECTATOR ---

const (
	MsgState = "STATE" // Первое сообщение новому зрителю
	MsgTurn  = "TURN"  // На каждый сыгранный ход
	MsgEnd   = "END"   // Бой окончен
)

// ServerMessage то, что сервер шлет зрителю по websocket.
type ServerMessage struct {
	Type   string     `json:"type"`
	Turn   *TurnView  `json:"turn,omitempty"`
	Stats  *StatsView `json:"stats,omitempty"`
	Units  []UnitView `json:"units,omitempty"`
	Winner string     `json:"winner,omitempty"`
}
