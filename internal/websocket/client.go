package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client is one authenticated websocket connection. The user binding is
// set at upgrade time and never changes; room memberships live and die
// with the connection.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uuid.UUID
	name   string

	// ctx is canceled on disconnect so store operations started on
	// behalf of this connection do not outlive it.
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	rooms map[uuid.UUID]*Room

	closeOnce sync.Once
}

// Close cancels the connection context and releases the send channel.
// Safe to call more than once; must only run after every room has
// dropped the client, or a fan-out could write to a closed channel.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
	})
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, name string) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
		name:   name,
		ctx:    ctx,
		cancel: cancel,
		rooms:  make(map[uuid.UUID]*Room),
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("user_id", c.userID.String()).Msg("websocket read error")
			}
			break
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			c.sendError(ErrCodeInvalidPayload, "malformed event")
			continue
		}

		c.handleEvent(&event)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleEvent runs on the read pump goroutine, so slow store calls here
// suspend only this connection.
func (c *Client) handleEvent(event *Event) {
	switch event.Type {
	case EventTypeJoinMatch:
		var payload JoinMatchPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			c.sendError(ErrCodeInvalidPayload, "invalid joinMatch payload")
			return
		}
		matchID, err := uuid.Parse(payload.MatchID)
		if err != nil {
			c.sendError(ErrCodeInvalidPayload, "invalid match id")
			return
		}
		c.hub.JoinMatch(c, matchID)

	case EventTypeSendMessage:
		var payload SendMessagePayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			c.sendError(ErrCodeInvalidPayload, "invalid sendMessage payload")
			return
		}
		matchID, err := uuid.Parse(payload.MatchID)
		if err != nil {
			c.sendError(ErrCodeInvalidPayload, "invalid match id")
			return
		}
		c.hub.SendMessage(c, matchID, payload.Content)

	default:
		c.sendError(ErrCodeInvalidPayload, "unknown event type")
	}
}

func (c *Client) addRoom(r *Room) {
	c.mu.Lock()
	c.rooms[r.matchID] = r
	c.mu.Unlock()
}

func (c *Client) removeRoom(r *Room) {
	c.mu.Lock()
	delete(c.rooms, r.matchID)
	c.mu.Unlock()
}

func (c *Client) roomFor(matchID uuid.UUID) *Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rooms[matchID]
}

func (c *Client) snapshotRooms() []*Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	rooms := make([]*Room, 0, len(c.rooms))
	for _, r := range c.rooms {
		rooms = append(rooms, r)
	}
	return rooms
}

func (c *Client) sendError(code, message string) {
	event, err := NewEvent(EventTypeError, ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}
	c.Send(event)
}

// Send queues an event for delivery. A client whose write buffer is
// full has stalled; the connection is closed so the read pump tears
// its memberships down, keeping the rule that a room member either
// receives every fan-out or stops being a member. Missed traffic is
// recovered through the history endpoint on reconnect.
func (c *Client) Send(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal websocket event")
		return
	}
	select {
	case c.send <- data:
	default:
		log.Warn().Str("user_id", c.userID.String()).Msg("closing stalled websocket client")
		c.conn.Close()
	}
}
