package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addClient(t *testing.T, hub *Hub) *Client {
	t.Helper()

	client := NewClient(hub, nil, uuid.New(), "member")
	hub.mu.Lock()
	hub.clients[client] = true
	hub.mu.Unlock()
	return client
}

// expectAck waits for the joinedMatch event that confirms the room has
// processed the membership.
func expectAck(t *testing.T, client *Client) {
	t.Helper()

	select {
	case <-client.send:
	case <-time.After(2 * time.Second):
		t.Fatal("no join ack received")
	}
}

func (h *Hub) roomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

func TestHub_ReapsRoomWhenLastMemberLeaves(t *testing.T) {
	hub := NewHub(nil, nil)
	matchID := uuid.New()

	client := addClient(t, hub)
	room := hub.joinRoom(client, matchID, true)
	expectAck(t, client)
	require.Equal(t, 1, hub.roomCount())

	hub.Unregister(client)

	assert.Equal(t, 0, hub.roomCount(), "empty room must leave the registry")
	select {
	case <-room.done:
	case <-time.After(2 * time.Second):
		t.Fatal("room goroutine still running after last member left")
	}
}

func TestHub_RoomSurvivesWhileMembersRemain(t *testing.T) {
	hub := NewHub(nil, nil)
	matchID := uuid.New()

	first := addClient(t, hub)
	second := addClient(t, hub)
	room := hub.joinRoom(first, matchID, true)
	expectAck(t, first)
	hub.joinRoom(second, matchID, true)
	expectAck(t, second)

	hub.Unregister(first)
	assert.Equal(t, 1, hub.roomCount())
	select {
	case <-room.done:
		t.Fatal("room stopped while a member was still connected")
	default:
	}

	hub.Unregister(second)
	assert.Equal(t, 0, hub.roomCount())
}

func TestHub_JoinRetriesPastStoppedRoom(t *testing.T) {
	hub := NewHub(nil, nil)
	matchID := uuid.New()

	// A stopped room left in the registry models a join racing a reap.
	stale := hub.getOrCreateRoom(matchID)
	stale.Stop()

	client := addClient(t, hub)
	room := hub.joinRoom(client, matchID, true)
	expectAck(t, client)
	assert.NotSame(t, stale, room)

	hub.Unregister(client)
	assert.Equal(t, 0, hub.roomCount())
}
