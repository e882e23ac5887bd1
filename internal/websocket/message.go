package websocket

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	// Client to Server
	EventTypeJoinMatch   EventType = "joinMatch"
	EventTypeSendMessage EventType = "sendMessage"

	// Server to Client
	EventTypeJoinedMatch EventType = "joinedMatch"
	EventTypeNewMessage  EventType = "newMessage"
	EventTypeError       EventType = "error"
)

// Event is the envelope for everything crossing the websocket. The
// payload stays raw until the type is known, so a garbled payload for
// one event kind cannot take down the connection.
type Event struct {
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewEvent(eventType EventType, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Client to Server payloads

type JoinMatchPayload struct {
	MatchID string `json:"matchId"`
}

type SendMessagePayload struct {
	MatchID string `json:"matchId"`
	Content string `json:"content"`
}

// Server to Client payloads

type JoinedMatchPayload struct {
	MatchID string `json:"matchId"`
}

type SenderInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type NewMessagePayload struct {
	ID        uuid.UUID  `json:"id"`
	MatchID   uuid.UUID  `json:"matchId"`
	Content   string     `json:"content"`
	Sender    SenderInfo `json:"sender"`
	CreatedAt time.Time  `json:"createdAt"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes carried by EventTypeError.
const (
	ErrCodeInvalidPayload = "INVALID_PAYLOAD"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeMatchNotFound  = "MATCH_NOT_FOUND"
	ErrCodeEmptyMessage   = "EMPTY_MESSAGE"
	ErrCodeInternal       = "INTERNAL"
)
