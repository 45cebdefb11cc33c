package battle

import (
	"sort"

	"github.com/sirupsen/logrus"

	"tactics-sim/internal/army"
	"tactics-sim/internal/domain"
	"tactics-sim/internal/pathfind"
)

// participant - юнит в очереди инициативы вместе со своей и вражеской армией
type participant struct {
	Unit    *domain.Unit
	Allies  *army.Army
	Enemies *army.Army
}

// turn - рабочее состояние одного хода
type turn struct {
	number  int
	order   []participant
	acted   map[domain.UnitID]bool
	actions []domain.ActionRecord
	a, b    *army.Army
}

// SimulateTurn проигрывает один полный ход: очистка, инициатива, лечение, атака, движение.
// Возвращает список действий хода в порядке выполнения.
func (b *Battlefield) SimulateTurn(armyA, armyB *army.Army) []domain.ActionRecord {
	t := &turn{
		number:  b.stats.TurnCount + 1,
		acted:   make(map[domain.UnitID]bool),
		actions: make([]domain.ActionRecord, 0),
		a:       armyA,
		b:       armyB,
	}

	b.cleanup(t)
	b.initiative(t)
	b.healPhase(t)
	b.attackPhase(t)
	b.movePhase(t)

	b.replay = append(b.replay, domain.TurnRecord{Number: t.number, Actions: t.actions})
	b.stats.TurnCount++

	b.log.WithFields(logrus.Fields{
		"turn":    t.number,
		"actions": len(t.actions),
	}).Debug("Turn finished")

	out := make([]domain.ActionRecord, len(t.actions))
	copy(out, t.actions)
	return out
}

// Simulate гоняет ходы, пока одна из армий не опустеет или не кончится лимит.
// Возвращает число сыгранных ходов.
func (b *Battlefield) Simulate(armyA, armyB *army.Army, maxTurns int) int {
	played := 0
	for played < maxTurns {
		if armyA.IsEmpty() || armyB.IsEmpty() {
			break
		}
		b.SimulateTurn(armyA, armyB)
		played++
	}
	b.log.WithFields(logrus.Fields{
		"turns":  played,
		"army_a": armyA.Len(),
		"army_b": armyB.Len(),
	}).Info("Simulation finished")
	return played
}

// Winner возвращает имя победившей армии или "" пока исход не ясен (или обе пусты).
func (b *Battlefield) Winner(armyA, armyB *army.Army) string {
	switch {
	case armyA.IsEmpty() && !armyB.IsEmpty():
		return armyB.Name
	case armyB.IsEmpty() && !armyA.IsEmpty():
		return armyA.Name
	}
	return ""
}

// --- ФАЗЫ ---

// cleanup убирает всех юнитов со здоровьем <= 0 (включая тех, кого добили вне поля).
func (b *Battlefield) cleanup(t *turn) {
	for _, roster := range []*army.Army{t.a, t.b} {
		for _, u := range roster.Units() {
			if !u.IsAlive() {
				b.purge(t, u.ID)
			}
		}
	}
	for _, u := range b.Units() {
		if !u.IsAlive() {
			b.purge(t, u.ID)
		}
	}
}

// initiative строит очередь: сначала армия A, потом B, затем стабильная сортировка по скорости.
func (b *Battlefield) initiative(t *turn) {
	t.order = make([]participant, 0, t.a.Len()+t.b.Len())
	for _, side := range [][2]*army.Army{{t.a, t.b}, {t.b, t.a}} {
		for _, u := range side[0].Units() {
			if _, placed := b.positions[u.ID]; !placed {
				continue
			}
			t.order = append(t.order, participant{Unit: u, Allies: side[0], Enemies: side[1]})
		}
	}
	sort.SliceStable(t.order, func(i, j int) bool {
		return t.order[i].Unit.Speed > t.order[j].Unit.Speed
	})
}

func (b *Battlefield) healPhase(t *turn) {
	for _, p := range t.order {
		u := p.Unit
		if !u.IsAlive() || !u.Can(domain.ActionHeal) || !b.onField(u.ID) {
			continue
		}
		// Без живого врага юнит не действует вовсе, даже лечением
		if len(b.living(p.Enemies)) == 0 {
			continue
		}
		target := b.nearest(u, b.wounded(p.Allies))
		if target == nil {
			continue
		}
		from, to := b.positions[u.ID], b.positions[target.ID]
		if from.Manhattan(to) > u.Range {
			continue
		}
		amount, _, err := u.Perform(domain.ActionHeal, target)
		if err != nil {
			b.log.WithError(err).WithField("unit", u.ID).Debug("Heal skipped")
			continue
		}
		b.stats.AddHealing(amount)
		t.record(domain.ActionRecord{
			Type: domain.RecordHeal, Actor: u.ID, Target: target.ID,
			Origin: from, Destination: to, Amount: amount,
		})
		t.acted[u.ID] = true

		b.log.WithFields(logrus.Fields{
			"turn":   t.number,
			"unit":   u.ID,
			"target": target.ID,
			"amount": amount,
		}).Debug("Heal")
	}
}

func (b *Battlefield) attackPhase(t *turn) {
	for _, p := range t.order {
		u := p.Unit
		if t.acted[u.ID] || !u.IsAlive() || !b.onField(u.ID) {
			continue
		}
		target := b.nearest(u, b.living(p.Enemies))
		if target == nil {
			continue
		}
		from, to := b.positions[u.ID], b.positions[target.ID]
		if from.Manhattan(to) > u.Range {
			continue
		}
		damage, _, err := u.Perform(domain.ActionAttack, target)
		if err != nil {
			b.log.WithError(err).WithField("unit", u.ID).Debug("Attack skipped")
			continue
		}
		b.stats.AddDamage(u.ID, damage)
		t.record(domain.ActionRecord{
			Type: domain.RecordAttack, Actor: u.ID, Target: target.ID,
			Origin: from, Destination: to, Amount: damage,
		})
		t.acted[u.ID] = true

		b.log.WithFields(logrus.Fields{
			"turn":   t.number,
			"unit":   u.ID,
			"target": target.ID,
			"damage": damage,
			"hp":     target.Health,
		}).Debug("Attack")

		if !target.IsAlive() {
			b.purge(t, target.ID)
			b.log.WithFields(logrus.Fields{
				"turn": t.number,
				"unit": target.ID,
			}).Debug("Unit defeated")
		}
	}
}

func (b *Battlefield) movePhase(t *turn) {
	for _, p := range t.order {
		u := p.Unit
		if t.acted[u.ID] || !u.IsAlive() || !b.onField(u.ID) {
			continue
		}
		target := b.nearest(u, b.living(p.Enemies))
		if target == nil {
			continue
		}
		from := b.positions[u.ID]
		goal := b.positions[target.ID]

		r, ok := b.paths[u.ID]
		if !ok || r.Goal != goal || len(r.Steps) == 0 {
			path, found := pathfind.Find(b, from, goal)
			if !found || len(path) < 2 {
				delete(b.paths, u.ID)
				b.log.WithFields(logrus.Fields{
					"turn": t.number,
					"unit": u.ID,
					"goal": goal,
				}).Debug("No route")
				continue
			}
			r = route{Goal: goal, Steps: path[1:]}
			b.paths[u.ID] = r
		}

		next := r.Steps[0]
		if !b.moveTo(u.ID, next) {
			delete(b.paths, u.ID)
			b.log.WithFields(logrus.Fields{
				"turn": t.number,
				"unit": u.ID,
				"step": next,
			}).Debug("Step blocked")
			continue
		}
		r.Steps = r.Steps[1:]
		b.paths[u.ID] = r

		t.record(domain.ActionRecord{
			Type: domain.RecordMove, Actor: u.ID,
			Origin: from, Destination: next,
		})
		t.acted[u.ID] = true

		b.log.WithFields(logrus.Fields{
			"turn": t.number,
			"unit": u.ID,
			"from": from,
			"to":   next,
		}).Debug("Move")
	}
}

// --- ХЕЛПЕРЫ ---

func (t *turn) record(r domain.ActionRecord) {
	t.actions = append(t.actions, r)
}

func (b *Battlefield) onField(id domain.UnitID) bool {
	_, ok := b.positions[id]
	return ok
}

// purge удаляет юнита отовсюду: с поля и из обеих армий
func (b *Battlefield) purge(t *turn, id domain.UnitID) {
	b.Remove(id)
	t.a.RemoveID(id)
	t.b.RemoveID(id)
}

// living - живые юниты армии, стоящие на поле, в порядке ростера
func (b *Battlefield) living(a *army.Army) []*domain.Unit {
	out := make([]*domain.Unit, 0, a.Len())
	for _, u := range a.Alive() {
		if b.onField(u.ID) {
			out = append(out, u)
		}
	}
	return out
}

// wounded - живые союзники ниже базового здоровья (сам лекарь тоже подходит)
func (b *Battlefield) wounded(a *army.Army) []*domain.Unit {
	out := make([]*domain.Unit, 0)
	for _, u := range b.living(a) {
		if base, ok := b.baseline[u.ID]; ok && u.Health < base {
			out = append(out, u)
		}
	}
	return out
}

// nearest выбирает ближайшего по Манхэттену. При равенстве побеждает первый в списке.
func (b *Battlefield) nearest(u *domain.Unit, candidates []*domain.Unit) *domain.Unit {
	from := b.positions[u.ID]
	var best *domain.Unit
	bestDist := 0
	for _, c := range candidates {
		d := from.Manhattan(b.positions[c.ID])
		if best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
