package army

import (
	"fmt"

	"tactics-sim/internal/domain"
	"tactics-sim/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Army - упорядоченный список юнитов.
type Army struct {
	Name  string
	units []*domain.Unit
}

func New(name string) *Army {
	return &Army{Name: name, units: make([]*domain.Unit, 0)}
}

// Add добавляет юнита в конец ростера
func (a *Army) Add(u *domain.Unit) {
	a.units = append(a.units, u)
}

// Remove удаляет юнита по идентичности. Если его нет - ничего не делает.
// Порядок остальных сохраняется: от него зависит инициатива.
func (a *Army) Remove(u *domain.Unit) {
	if u == nil {
		return
	}
	a.RemoveID(u.ID)
}

// RemoveID - то же, что Remove, но по ID
func (a *Army) RemoveID(id domain.UnitID) bool {
	for i, other := range a.units {
		if other.ID == id {
			a.units = append(a.units[:i], a.units[i+1:]...)
			return true
		}
	}
	return false
}

// Units возвращает копию ростера, чтобы его можно было безопасно обходить во время удаления
func (a *Army) Units() []*domain.Unit {
	out := make([]*domain.Unit, len(a.units))
	copy(out, a.units)
	return out
}

func (a *Army) Len() int {
	return len(a.units)
}

func (a *Army) IsEmpty() bool {
	return len(a.units) == 0
}

func (a *Army) Contains(id domain.UnitID) bool {
	return a.Find(id) != nil
}

// Find ищет юнита по ID
func (a *Army) Find(id domain.UnitID) *domain.Unit {
	for _, u := range a.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// Alive возвращает живых юнитов в порядке ростера
func (a *Army) Alive() []*domain.Unit {
	out := make([]*domain.Unit, 0, len(a.units))
	for _, u := range a.units {
		if u.IsAlive() {
			out = append(out, u)
		}
	}
	return out
}

// Attack - групповая атака. Каждый юнит по очереди бьет базовой атакой
// либо один юнит, либо первого юнита вражеской армии.
func (a *Army) Attack(target any) error {
	armyLogger := logger.Log.WithFields(logrus.Fields{
		"component": "army",
		"army":      a.Name,
	})

	switch t := target.(type) {
	case *domain.Unit:
		if t == nil {
			return fmt.Errorf("%w: nil unit", domain.ErrUnsupportedTarget)
		}
		for _, attacker := range a.Units() {
			if !t.IsAlive() {
				break
			}
			dmg, _, err := attacker.Perform(domain.ActionAttack, t)
			if err != nil {
				return err
			}
			armyLogger.WithFields(logrus.Fields{
				"attacker": attacker.ID,
				"target":   t.ID,
				"damage":   dmg,
			}).Debug("Group attack hit")
		}
		return nil

	case *Army:
		if t == nil {
			return fmt.Errorf("%w: nil army", domain.ErrUnsupportedTarget)
		}
		if t == a {
			return fmt.Errorf("%w: army %q cannot attack itself", domain.ErrUnsupportedTarget, a.Name)
		}
		for _, attacker := range a.Units() {
			if t.IsEmpty() {
				break
			}
			defender := t.units[0]
			if !defender.IsAlive() {
				// Труп в ростере - убираем и бьем следующего
				t.Remove(defender)
				if t.IsEmpty() {
					break
				}
				defender = t.units[0]
			}
			dmg, _, err := attacker.Perform(domain.ActionAttack, defender)
			if err != nil {
				return err
			}
			armyLogger.WithFields(logrus.Fields{
				"attacker": attacker.ID,
				"target":   defender.ID,
				"damage":   dmg,
			}).Debug("Group attack hit")
			if !defender.IsAlive() {
				t.Remove(defender)
				armyLogger.WithField("target", defender.ID).Info("Defender removed from army")
			}
		}
		return nil

	default:
		return fmt.Errorf("%w: %T", domain.ErrUnsupportedTarget, target)
	}
}
