package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics-sim/internal/battle"
	"tactics-sim/internal/domain"
	"tactics-sim/internal/network"
	"tactics-sim/internal/scenario"
	"tactics-sim/pkg/api"
	"tactics-sim/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

const skirmish = `
name: test
max_turns: 30
terrain:
  - "......"
  - "......"
armies:
  a:
    faction: red
    units:
      - archetype: cavalry
        count: 2
    deploy: {x: 0, y: 0, w: 1, h: 2}
  b:
    faction: blue
    units:
      - archetype: support
        count: 1
    deploy: {x: 5, y: 0, w: 1, h: 2}
`

func newTestMatch(t *testing.T) (*Match, *network.Broadcaster) {
	t.Helper()
	s, err := scenario.Parse(strings.NewReader(skirmish))
	require.NoError(t, err)
	setup, err := s.Setup(domain.NewUnitFactory(), battle.NewConfig())
	require.NoError(t, err)

	hub := network.NewBroadcaster()
	return NewMatch(setup, hub, time.Millisecond, "test-session"), hub
}

func TestMatch_RunToEnd(t *testing.T) {
	m, _ := newTestMatch(t)

	var finished api.ReplayExport
	m.OnFinish(func(e api.ReplayExport) { finished = e })

	require.NoError(t, m.Run(context.Background()))

	snap := m.Snapshot()
	assert.True(t, snap.Done)
	assert.Equal(t, "red", snap.Winner)
	assert.Empty(t, snap.ArmyB)
	assert.Empty(t, snap.Invariant)

	assert.Equal(t, "test-session", finished.SessionID)
	assert.Len(t, finished.Turns, snap.Turn)
	assert.NoError(t, finished.Validate())
}

func TestMatch_Cancel(t *testing.T) {
	m, _ := newTestMatch(t)
	m.tick = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, m.Snapshot().Done)

	select {
	case <-m.Done():
	default:
		t.Fatal("done channel must be closed")
	}
}

func TestServer_HTTP(t *testing.T) {
	m, hub := newTestMatch(t)
	require.NoError(t, m.Run(context.Background()))

	ts := httptest.NewServer(New(m, hub, "0").Router())
	defer ts.Close()

	get := func(path string) *http.Response {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		return resp
	}

	resp := get("/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	resp.Body.Close()

	resp = get("/stats")
	var stats api.StatsView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	resp.Body.Close()
	assert.Positive(t, stats.TurnCount)
	assert.Positive(t, stats.TotalDamage)

	resp = get("/replay")
	var export api.ReplayExport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&export))
	resp.Body.Close()
	assert.Equal(t, stats.TurnCount, len(export.Turns))
	assert.Equal(t, 6, export.Width)

	resp = get("/version")
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	resp.Body.Close()

	resp = get("/debug/invariants")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = get("/debug/units/a")
	var units []api.UnitView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&units))
	resp.Body.Close()
	assert.Len(t, units, 2)

	resp = get("/debug/units/c")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestServer_Spectator(t *testing.T) {
	m, hub := newTestMatch(t)
	ts := httptest.NewServer(New(m, hub, "0").Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.SubscriberCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var first api.ServerMessage
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, api.MsgState, first.Type)
	assert.Len(t, first.Units, 3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = m.Run(ctx) }()

	turns := 0
	for {
		var msg api.ServerMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == api.MsgEnd {
			assert.Equal(t, "red", msg.Winner)
			break
		}
		require.Equal(t, api.MsgTurn, msg.Type)
		require.NotNil(t, msg.Turn)
		turns++
		assert.Equal(t, turns, msg.Turn.TurnNumber)
	}
	assert.Equal(t, m.Snapshot().Turn, turns)
}
