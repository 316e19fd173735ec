package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventID_Deterministic(t *testing.T) {
	sub := uuid.New()
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, NewEventID(sub, "1", ts), NewEventID(sub, "1", ts))
	assert.NotEqual(t, NewEventID(sub, "1", ts), NewEventID(sub, "2", ts))
	assert.NotEqual(t, NewEventID(sub, "1", ts), NewEventID(sub, "1", ts.Add(time.Nanosecond)))
}

func TestEvent_LocationWireFormat(t *testing.T) {
	event := &Event{
		Kind:   KindLocationReporting,
		UserID: "3",
		Location: &LocationInfo{
			CellID:   "2",
			Position: orb.Point{1.5, 2.5},
			LdrType:  LdrMotion,
		},
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	location := decoded["location"].(map[string]any)
	assert.Equal(t, []any{1.5, 2.5}, location["position"])
	assert.Equal(t, "Motion", location["ldr_type"])
	assert.NotContains(t, decoded, "pdn_connection")
}

func TestSnapshot_ConnectionState(t *testing.T) {
	snapshot := &Snapshot{
		Positions: map[UserID]UserPosition{
			"1": {CellID: "a"},
			"2": {},
		},
		Connections: map[UserID]Connection{
			"1": {State: ConnectionCreated, IPv4Addr: "10.0.0.1"},
		},
	}

	conn, ok := snapshot.ConnectionState("1")
	assert.True(t, ok)
	assert.Equal(t, ConnectionCreated, conn.State)

	conn, ok = snapshot.ConnectionState("2")
	assert.True(t, ok)
	assert.Equal(t, ConnectionReleased, conn.State)

	_, ok = snapshot.ConnectionState("3")
	assert.False(t, ok)
}
