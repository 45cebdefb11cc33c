package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics-sim/internal/domain"
)

func TestActionView_JSONShape(t *testing.T) {
	actor := domain.PackUnitID(domain.ArchetypeArcher, 3)
	target := domain.PackUnitID(domain.ArchetypeInfantry, 4)

	attack := NewActionView(domain.ActionRecord{
		Type: domain.RecordAttack, Actor: actor, Target: target,
		Origin: domain.Pos(3, 0), Destination: domain.Pos(5, 0), Amount: 7,
	})
	data, err := json.Marshal(attack)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "attack", raw["type"])
	assert.Equal(t, []any{3.0, 0.0}, raw["origin"])
	assert.Equal(t, []any{5.0, 0.0}, raw["destination"])
	assert.Equal(t, 7.0, raw["amount"])
	assert.Equal(t, "archer", raw["actor"].(map[string]any)["archetype"])
	assert.Equal(t, "infantry", raw["target"].(map[string]any)["archetype"])

	move := NewActionView(domain.ActionRecord{
		Type: domain.RecordMove, Actor: actor,
		Origin: domain.Pos(3, 0), Destination: domain.Pos(4, 0),
	})
	data, err = json.Marshal(move)
	require.NoError(t, err)
	raw = map[string]any{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "amount", "move has no amount")
	assert.NotContains(t, raw, "target", "move has no target")
}

func TestReplayExport_Validate(t *testing.T) {
	ok := NewReplayExport("s1", 3, 1, []domain.TurnRecord{{Number: 1}})
	assert.NoError(t, ok.Validate())

	bad := ReplayExport{Turns: []TurnView{{TurnNumber: 1, Actions: []ActionView{{Type: "teleport"}}}}}
	assert.Error(t, bad.Validate())

	zero := ReplayExport{Turns: []TurnView{{TurnNumber: 0}}}
	assert.Error(t, zero.Validate())
}

func TestActionView_RecordRoundTrip(t *testing.T) {
	rec := domain.ActionRecord{
		Type: domain.RecordHeal, Actor: domain.PackUnitID(domain.ArchetypeSupport, 1),
		Target: domain.PackUnitID(domain.ArchetypeInfantry, 2),
		Origin: domain.Pos(0, 0), Destination: domain.Pos(1, 0), Amount: 10,
	}
	assert.Equal(t, rec, NewActionView(rec).Record())
}

func TestNewStatsView(t *testing.T) {
	id := domain.PackUnitID(domain.ArchetypeArcher, 9)
	s := domain.NewStatistics()
	s.TurnCount = 2
	s.AddDamage(id, 7)
	s.AddHealing(10)

	v := NewStatsView(s)
	assert.Equal(t, 2, v.TurnCount)
	assert.Equal(t, 7, v.TotalDamage)
	assert.Equal(t, 10, v.TotalHealing)
	assert.Equal(t, map[string]int{"8589934601": 7}, v.DamageByUnit)
}
