package network

import (
	"sync"

	"github.com/sirupsen/logrus"

	"tactics-sim/pkg/api"
	"tactics-sim/pkg/logger"
)

// spectatorBuffer - сколько сообщений зритель может отстать, прежде чем начнет терять ходы
const spectatorBuffer = 100

// spectator - личный канал зрителя и счетчик потерянных сообщений
type spectator struct {
	ch      chan api.ServerMessage
	dropped int
}

// Broadcaster раздает ходы боя зрителям. Медленный зритель теряет сообщения, а не тормозит бой.
type Broadcaster struct {
	mu         sync.Mutex
	spectators map[string]*spectator
	log        *logrus.Entry
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		spectators: make(map[string]*spectator),
		log:        logger.For("hub"),
	}
}

// Register создает личный канал для зрителя. Старый канал с тем же ID закрывается.
func (b *Broadcaster) Register(id string) chan api.ServerMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.spectators[id]; ok {
		close(old.ch)
	}
	s := &spectator{ch: make(chan api.ServerMessage, spectatorBuffer)}
	b.spectators[id] = s
	return s.ch
}

// Unregister удаляет зрителя и отчитывается, сколько он пропустил
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.spectators[id]
	if !ok {
		return
	}
	close(s.ch)
	delete(b.spectators, id)
	if s.dropped > 0 {
		b.log.WithFields(logrus.Fields{
			"spectator": id,
			"dropped":   s.dropped,
		}).Info("Spectator left with dropped messages")
	}
}

// SendTo отправляет сообщение одному зрителю
func (b *Broadcaster) SendTo(id string, msg api.ServerMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.spectators[id]; ok {
		b.deliver(id, s, msg)
	}
}

// Broadcast отправляет всем зрителям
func (b *Broadcaster) Broadcast(msg api.ServerMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, s := range b.spectators {
		b.deliver(id, s, msg)
	}
}

// deliver - единая неблокирующая отправка. Вызывается под b.mu.
func (b *Broadcaster) deliver(id string, s *spectator, msg api.ServerMessage) {
	select {
	case s.ch <- msg:
		return
	default:
	}

	s.dropped++
	entry := b.log.WithFields(logrus.Fields{
		"spectator": id,
		"type":      msg.Type,
		"dropped":   s.dropped,
	})
	// Warn только на первую потерю, дальше поток таких же сообщений в debug
	if s.dropped == 1 {
		entry.Warn("Spectator channel full, message dropped")
	} else {
		entry.Debug("Spectator channel full, message dropped")
	}
}

// Dropped возвращает, сколько сообщений зритель потерял
func (b *Broadcaster) Dropped(id string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.spectators[id]; ok {
		return s.dropped
	}
	return 0
}

// HasSubscriber проверяет, подключен ли зритель
func (b *Broadcaster) HasSubscriber(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.spectators[id]
	return ok
}

// SubscriberCount возвращает количество активных зрителей
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.spectators)
}
