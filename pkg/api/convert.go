package api

import (
	"strconv"

	"tactics-sim/internal/domain"
)

// NewUnitRef строит ссылку по ID: архетип зашит в сам ID
func NewUnitRef(id domain.UnitID) UnitRef {
	return UnitRef{ID: id, Archetype: id.Archetype().String()}
}

// NewActionView конвертирует доменную запись в DTO
func NewActionView(r domain.ActionRecord) ActionView {
	v := ActionView{
		Type:        r.Type.String(),
		Actor:       NewUnitRef(r.Actor),
		Origin:      [2]int{r.Origin.X, r.Origin.Y},
		Destination: [2]int{r.Destination.X, r.Destination.Y},
	}
	if r.HasTarget() {
		ref := NewUnitRef(r.Target)
		v.Target = &ref
	}
	if r.HasAmount() {
		amount := r.Amount
		v.Amount = &amount
	}
	return v
}

// Record - обратная конвертация (загрузка реплея)
func (v ActionView) Record() domain.ActionRecord {
	r := domain.ActionRecord{
		Type:        domain.ParseRecordType(v.Type),
		Actor:       v.Actor.ID,
		Origin:      domain.Pos(v.Origin[0], v.Origin[1]),
		Destination: domain.Pos(v.Destination[0], v.Destination[1]),
	}
	if v.Target != nil {
		r.Target = v.Target.ID
	}
	if v.Amount != nil {
		r.Amount = *v.Amount
	}
	return r
}

// NewTurnView конвертирует ход; пустой ход - [] а не null
func NewTurnView(t domain.TurnRecord) TurnView {
	actions := make([]ActionView, 0, len(t.Actions))
	for _, r := range t.Actions {
		actions = append(actions, NewActionView(r))
	}
	return TurnView{TurnNumber: t.Number, Actions: actions}
}

func (v TurnView) Record() domain.TurnRecord {
	out := domain.TurnRecord{Number: v.TurnNumber, Actions: make([]domain.ActionRecord, 0, len(v.Actions))}
	for _, a := range v.Actions {
		out.Actions = append(out.Actions, a.Record())
	}
	return out
}

// NewReplayExport собирает экспорт всего реплея
func NewReplayExport(sessionID string, width, height int, turns []domain.TurnRecord) ReplayExport {
	views := make([]TurnView, 0, len(turns))
	for _, t := range turns {
		views = append(views, NewTurnView(t))
	}
	return ReplayExport{SessionID: sessionID, Width: width, Height: height, Turns: views}
}

// Records возвращает доменные записи ходов
func (e ReplayExport) Records() []domain.TurnRecord {
	out := make([]domain.TurnRecord, 0, len(e.Turns))
	for _, t := range e.Turns {
		out = append(out, t.Record())
	}
	return out
}

// NewUnitView снимок юнита
func NewUnitView(u *domain.Unit) UnitView {
	return UnitView{
		ID:        u.ID,
		Archetype: u.Archetype.String(),
		Health:    u.Health,
		Attack:    u.Attack,
		Defense:   u.Defense,
		Speed:     u.Speed,
		Range:     u.Range,
	}
}

// NewStatsView снимок статистики
func NewStatsView(s domain.Statistics) StatsView {
	byUnit := make(map[string]int, len(s.DamageByUnit))
	for id, dmg := range s.DamageByUnit {
		byUnit[strconv.FormatUint(uint64(id), 10)] = dmg
	}
	return StatsView{
		TurnCount:    s.TurnCount,
		TotalDamage:  s.TotalDamage,
		TotalHealing: s.TotalHealing,
		DamageByUnit: byUnit,
	}
}
