package testutil

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/devmatch/backend/internal/websocket"
	gorillaWS "github.com/gorilla/websocket"
)

// WSClient is a test WebSocket client
type WSClient struct {
	t      *testing.T
	conn   *gorillaWS.Conn
	events chan *websocket.Event
	errors chan error
	done   chan struct{}
	mu     sync.Mutex
}

// NewWSClient creates a new WebSocket test client
func NewWSClient(t *testing.T, url string) *WSClient {
	t.Helper()

	dialer := gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}

	client := &WSClient{
		t:      t,
		conn:   conn,
		events: make(chan *websocket.Event, 100),
		errors: make(chan error, 10),
		done:   make(chan struct{}),
	}

	go client.readPump()

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

// readPump reads events from the WebSocket connection
func (c *WSClient) readPump() {
	defer close(c.events)
	for {
		select {
		case <-c.done:
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				select {
				case <-c.done:
					return
				case c.errors <- err:
				}
				return
			}

			var event websocket.Event
			if err := json.Unmarshal(data, &event); err != nil {
				c.errors <- err
				continue
			}

			select {
			case c.events <- &event:
			case <-c.done:
				return
			}
		}
	}
}

// Close closes the WebSocket connection gracefully
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
		close(c.done)
		c.conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""))
		c.conn.Close()
	}
}

func (c *WSClient) sendEvent(eventType websocket.EventType, payload interface{}) {
	c.t.Helper()

	event, err := websocket.NewEvent(eventType, payload)
	if err != nil {
		c.t.Fatalf("failed to build event: %v", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		c.t.Fatalf("failed to marshal event: %v", err)
	}

	c.mu.Lock()
	err = c.conn.WriteMessage(gorillaWS.TextMessage, data)
	c.mu.Unlock()

	if err != nil {
		c.t.Fatalf("failed to send event: %v", err)
	}
}

// JoinMatch sends a joinMatch event
func (c *WSClient) JoinMatch(matchID string) {
	c.sendEvent(websocket.EventTypeJoinMatch, websocket.JoinMatchPayload{MatchID: matchID})
}

// SendMessage sends a sendMessage event
func (c *WSClient) SendMessage(matchID, content string) {
	c.sendEvent(websocket.EventTypeSendMessage, websocket.SendMessagePayload{
		MatchID: matchID,
		Content: content,
	})
}

// SendRaw writes raw bytes to the connection
func (c *WSClient) SendRaw(data []byte) {
	c.t.Helper()

	c.mu.Lock()
	err := c.conn.WriteMessage(gorillaWS.TextMessage, data)
	c.mu.Unlock()

	if err != nil {
		c.t.Fatalf("failed to send raw message: %v", err)
	}
}

// ExpectEvent waits for an event of the specified type, skipping others
func (c *WSClient) ExpectEvent(eventType websocket.EventType, timeout time.Duration) *websocket.Event {
	c.t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case event := <-c.events:
			if event == nil {
				c.t.Fatalf("connection closed while waiting for %s", eventType)
			}
			if event.Type == eventType {
				return event
			}
		case err := <-c.errors:
			c.t.Fatalf("error while waiting for %s: %v", eventType, err)
		case <-deadline:
			c.t.Fatalf("timeout waiting for event type %s", eventType)
		}
	}
}

// ExpectJoinedMatch waits for and decodes a joinedMatch event
func (c *WSClient) ExpectJoinedMatch(timeout time.Duration) *websocket.JoinedMatchPayload {
	c.t.Helper()

	event := c.ExpectEvent(websocket.EventTypeJoinedMatch, timeout)

	var payload websocket.JoinedMatchPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		c.t.Fatalf("failed to decode joinedMatch payload: %v", err)
	}

	return &payload
}

// ExpectNewMessage waits for and decodes a newMessage event
func (c *WSClient) ExpectNewMessage(timeout time.Duration) *websocket.NewMessagePayload {
	c.t.Helper()

	event := c.ExpectEvent(websocket.EventTypeNewMessage, timeout)

	var payload websocket.NewMessagePayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		c.t.Fatalf("failed to decode newMessage payload: %v", err)
	}

	return &payload
}

// ExpectError waits for and decodes an error event
func (c *WSClient) ExpectError(timeout time.Duration) *websocket.ErrorPayload {
	c.t.Helper()

	event := c.ExpectEvent(websocket.EventTypeError, timeout)

	var payload websocket.ErrorPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		c.t.Fatalf("failed to decode error payload: %v", err)
	}

	return &payload
}

// ExpectErrorWithCode waits for an error with a specific code
func (c *WSClient) ExpectErrorWithCode(code string, timeout time.Duration) *websocket.ErrorPayload {
	c.t.Helper()

	payload := c.ExpectError(timeout)
	if payload.Code != code {
		c.t.Fatalf("expected error code %s, got %s: %s", code, payload.Code, payload.Message)
	}

	return payload
}

// ExpectNoEvent verifies no events are received within timeout
func (c *WSClient) ExpectNoEvent(timeout time.Duration) {
	c.t.Helper()

	select {
	case event := <-c.events:
		if event != nil {
			c.t.Fatalf("unexpected event received: %s", event.Type)
		}
	case <-time.After(timeout):
	}
}

// DrainEvents drains all pending events, waiting for the channel to settle
func (c *WSClient) DrainEvents() {
	deadline := time.After(100 * time.Millisecond)
	for {
		select {
		case event := <-c.events:
			if event == nil {
				return
			}
			deadline = time.After(50 * time.Millisecond)
		case <-deadline:
			return
		case <-c.done:
			return
		}
	}
}
