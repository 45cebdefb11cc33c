package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics-sim/pkg/api"
)

func TestBroadcaster(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Register("s1")
	ch2 := b.Register("s2")
	require.Equal(t, 2, b.SubscriberCount())
	assert.True(t, b.HasSubscriber("s1"))

	b.Broadcast(api.ServerMessage{Type: api.MsgTurn})
	assert.Equal(t, api.MsgTurn, (<-ch1).Type)
	assert.Equal(t, api.MsgTurn, (<-ch2).Type)

	b.SendTo("s2", api.ServerMessage{Type: api.MsgEnd, Winner: "a"})
	msg := <-ch2
	assert.Equal(t, "a", msg.Winner)
	assert.Len(t, ch1, 0, "unicast does not leak to others")

	b.Unregister("s1")
	_, open := <-ch1
	assert.False(t, open, "channel is closed on unregister")
	assert.False(t, b.HasSubscriber("s1"))

	// Повторная регистрация закрывает старый канал
	again := b.Register("s2")
	_, open = <-ch2
	assert.False(t, open)
	assert.NotNil(t, again)
	assert.Equal(t, 1, b.SubscriberCount())
}

func TestBroadcaster_FullChannelDrops(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("slow")
	b.Register("other")
	for i := 0; i < cap(ch)+10; i++ {
		b.Broadcast(api.ServerMessage{Type: api.MsgTurn})
	}
	assert.Len(t, ch, cap(ch))
	assert.Equal(t, 10, b.Dropped("slow"))

	// Unicast в полный канал считается так же, как broadcast
	b.SendTo("slow", api.ServerMessage{Type: api.MsgEnd})
	assert.Equal(t, 11, b.Dropped("slow"))

	b.Unregister("slow")
	assert.Zero(t, b.Dropped("slow"), "counter goes away with the spectator")
	assert.Zero(t, b.Dropped("missing"))
}
