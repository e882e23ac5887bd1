package websocket

import (
	"errors"
	"strings"
	"sync"

	"github.com/devmatch/backend/internal/metrics"
	"github.com/devmatch/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Hub tracks all live connections and the room for every match that has
// at least one connected participant. Rooms are created lazily; the
// registry is in-process only, so fan-out does not cross processes.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[uuid.UUID]*Room
	clients map[*Client]bool
	stopped bool

	matchRepo   repository.MatchRepository
	messageRepo repository.MessageRepository
}

func NewHub(matchRepo repository.MatchRepository, messageRepo repository.MessageRepository) *Hub {
	return &Hub{
		rooms:       make(map[uuid.UUID]*Room),
		clients:     make(map[*Client]bool),
		matchRepo:   matchRepo,
		messageRepo: messageRepo,
	}
}

// Register binds the client into the hub and auto-joins it to a room
// for every match it participates in, mirroring what the REST match
// list would show at connect time.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		client.Close()
		return
	}
	h.clients[client] = true
	h.mu.Unlock()
	metrics.WsConnections.Inc()

	matches, err := h.matchRepo.GetByUserID(client.ctx, client.userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", client.userID.String()).Msg("failed to load matches on connect")
		return
	}

	for _, m := range matches {
		h.joinRoom(client, m.ID, false)
	}
	log.Debug().
		Str("user_id", client.userID.String()).
		Int("rooms", len(matches)).
		Msg("websocket client joined match rooms")
}

// Unregister tears down all room memberships synchronously, cancels any
// in-flight operations tied to the connection, and only then releases
// the send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	h.mu.Unlock()
	metrics.WsConnections.Dec()

	for _, room := range client.snapshotRooms() {
		if room.Leave(client) == 0 {
			h.reapRoom(room)
		}
	}
	client.Close()
}

// JoinMatch handles an explicit joinMatch event. Runs on the caller's
// read pump goroutine.
func (h *Hub) JoinMatch(client *Client, matchID uuid.UUID) {
	match, err := h.matchRepo.GetByID(client.ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			client.sendError(ErrCodeMatchNotFound, "match not found")
			return
		}
		client.sendError(ErrCodeInternal, "failed to join match")
		return
	}
	if !match.HasParticipant(client.userID) {
		client.sendError(ErrCodeForbidden, "you are not part of this match")
		return
	}

	h.joinRoom(client, matchID, true)
}

// SendMessage routes a sendMessage event into the match's room. A
// participant that has not joined yet (a match formed after connect) is
// joined first; a non-participant gets a forbidden error. Runs on the
// caller's read pump goroutine.
func (h *Hub) SendMessage(client *Client, matchID uuid.UUID, content string) {
	if strings.TrimSpace(content) == "" {
		client.sendError(ErrCodeEmptyMessage, "message content is empty")
		return
	}

	room := client.roomFor(matchID)
	if room == nil {
		match, err := h.matchRepo.GetByID(client.ctx, matchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				client.sendError(ErrCodeMatchNotFound, "match not found")
				return
			}
			client.sendError(ErrCodeInternal, "failed to send message")
			return
		}
		if !match.HasParticipant(client.userID) {
			client.sendError(ErrCodeForbidden, "you are not part of this match")
			return
		}
		room = h.joinRoom(client, matchID, false)
	}

	select {
	case room.send <- &sendRequest{client: client, content: content}:
	case <-room.done:
	}
}

// joinRoom joins the client to the match's room. A join can race a
// reap and land on a room that already stopped; the stale entry is
// dropped and the join retried against a fresh room.
func (h *Hub) joinRoom(client *Client, matchID uuid.UUID, ack bool) *Room {
	for {
		room := h.getOrCreateRoom(matchID)
		if room.enqueueJoin(client, ack) {
			return room
		}
		h.dropRoom(room)
	}
}

// reapRoom retires a room whose last member left, so the registry does
// not accumulate rooms for every match ever chatted in.
func (h *Hub) reapRoom(room *Room) {
	h.dropRoom(room)
	room.Stop()
}

func (h *Hub) dropRoom(room *Room) {
	h.mu.Lock()
	if h.rooms[room.matchID] == room {
		delete(h.rooms, room.matchID)
	}
	h.mu.Unlock()
}

func (h *Hub) getOrCreateRoom(matchID uuid.UUID) *Room {
	h.mu.RLock()
	room := h.rooms[matchID]
	h.mu.RUnlock()
	if room != nil {
		return room
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if room = h.rooms[matchID]; room != nil {
		return room
	}
	room = NewRoom(matchID, h.messageRepo)
	h.rooms[matchID] = room
	go room.Run()
	return room
}

// Stop shuts down every room and closes every connection. Used on
// server shutdown and in tests.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	rooms := make([]*Room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.rooms = make(map[uuid.UUID]*Room)
	h.clients = make(map[*Client]bool)
	h.mu.Unlock()

	for _, r := range rooms {
		r.Stop()
	}
	for _, c := range clients {
		c.Close()
	}
}
