package server

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"tactics-sim/internal/army"
	"tactics-sim/internal/network"
	"tactics-sim/internal/scenario"
	"tactics-sim/pkg/api"
	"tactics-sim/pkg/logger"
)

// Snapshot - неизменяемый срез состояния боя для читателей из других горутин
type Snapshot struct {
	SessionID string         `json:"session_id"`
	Scenario  string         `json:"scenario"`
	Turn      int            `json:"turn"`
	MaxTurns  int            `json:"max_turns"`
	Stats     api.StatsView  `json:"stats"`
	ArmyA     []api.UnitView `json:"army_a"`
	ArmyB     []api.UnitView `json:"army_b"`
	Winner    string         `json:"winner,omitempty"`
	Done      bool           `json:"done"`
	// Invariant - текст нарушения биекции сетки, пусто если все в порядке
	Invariant string `json:"invariant,omitempty"`
}

// Match крутит один бой в своей горутине. Battlefield трогает только Run,
// остальные читают опубликованные снапшоты.
type Match struct {
	setup     *scenario.Setup
	hub       *network.Broadcaster
	tick      time.Duration
	sessionID string

	onFinish func(api.ReplayExport)

	mu    sync.RWMutex
	snap  Snapshot
	turns []api.TurnView

	done chan struct{}
	log  *logrus.Entry
}

func NewMatch(setup *scenario.Setup, hub *network.Broadcaster, tick time.Duration, sessionID string) *Match {
	m := &Match{
		setup:     setup,
		hub:       hub,
		tick:      tick,
		sessionID: sessionID,
		turns:     make([]api.TurnView, 0),
		done:      make(chan struct{}),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "match",
			"session":   sessionID,
		}),
	}
	m.publish(nil)
	return m
}

// OnFinish задает колбэк, который получит реплей после окончания боя
func (m *Match) OnFinish(fn func(api.ReplayExport)) {
	m.onFinish = fn
}

// Done закрывается, когда бой окончен или остановлен
func (m *Match) Done() <-chan struct{} {
	return m.done
}

// Run проигрывает по ходу на каждый тик, пока бой не кончится или ctx не отменят.
func (m *Match) Run(ctx context.Context) error {
	defer close(m.done)

	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()

	m.log.WithFields(logrus.Fields{
		"scenario":  m.setup.Name,
		"max_turns": m.setup.MaxTurns,
		"tick":      m.tick,
	}).Info("Match started")

	played := 0
	for {
		if m.finished(played) {
			m.finish()
			return nil
		}

		select {
		case <-ctx.Done():
			m.log.Info("Match stopped")
			return ctx.Err()
		case <-ticker.C:
		}

		actions := m.setup.Field.SimulateTurn(m.setup.A, m.setup.B)
		played++

		replay := m.setup.Field.Replay()
		turn := api.NewTurnView(replay[len(replay)-1])
		m.publish(&turn)

		stats := api.NewStatsView(m.setup.Field.Stats())
		m.hub.Broadcast(api.ServerMessage{Type: api.MsgTurn, Turn: &turn, Stats: &stats})

		m.log.WithFields(logrus.Fields{
			"turn":    turn.TurnNumber,
			"actions": len(actions),
		}).Debug("Turn broadcast")
	}
}

func (m *Match) finished(played int) bool {
	return played >= m.setup.MaxTurns || m.setup.A.IsEmpty() || m.setup.B.IsEmpty()
}

func (m *Match) finish() {
	winner := m.setup.Field.Winner(m.setup.A, m.setup.B)

	m.mu.Lock()
	m.snap.Done = true
	m.snap.Winner = winner
	m.mu.Unlock()

	stats := api.NewStatsView(m.setup.Field.Stats())
	m.hub.Broadcast(api.ServerMessage{Type: api.MsgEnd, Stats: &stats, Winner: winner})

	m.log.WithFields(logrus.Fields{
		"winner": winner,
		"turns":  stats.TurnCount,
	}).Info("Match finished")

	if m.onFinish != nil {
		m.onFinish(m.Export())
	}
}

// publish снимает состояние поля. Вызывается только из горутины боя (или до ее старта).
func (m *Match) publish(turn *api.TurnView) {
	field := m.setup.Field
	snap := Snapshot{
		SessionID: m.sessionID,
		Scenario:  m.setup.Name,
		Turn:      field.Stats().TurnCount,
		MaxTurns:  m.setup.MaxTurns,
		Stats:     api.NewStatsView(field.Stats()),
		ArmyA:     army.Export(m.setup.A),
		ArmyB:     army.Export(m.setup.B),
	}
	if err := field.CheckInvariants(); err != nil {
		snap.Invariant = err.Error()
		m.log.WithError(err).Error("Battlefield invariant violated")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
	if turn != nil {
		m.turns = append(m.turns, *turn)
	}
}

// Snapshot возвращает последнее опубликованное состояние
func (m *Match) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// Export собирает реплей из уже сыгранных ходов
func (m *Match) Export() api.ReplayExport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	turns := make([]api.TurnView, len(m.turns))
	copy(turns, m.turns)
	return api.ReplayExport{
		SessionID: m.sessionID,
		Width:     m.setup.Terrain.Width,
		Height:    m.setup.Terrain.Height,
		Turns:     turns,
	}
}
