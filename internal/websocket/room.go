package websocket

import (
	"sync"

	"github.com/devmatch/backend/internal/domain"
	"github.com/devmatch/backend/internal/metrics"
	"github.com/devmatch/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Room is the fan-out scope for one match. A single goroutine owns the
// membership set and performs both the persist and the broadcast for
// every message, so all members observe messages in exactly the
// persisted (created_at, id) order and membership is never read
// mid-mutation.
type Room struct {
	matchID     uuid.UUID
	clients     map[*Client]bool
	messageRepo repository.MessageRepository

	join  chan *joinRequest
	leave chan *leaveRequest
	send  chan *sendRequest
	stop  chan struct{}
	done  chan struct{}

	stopOnce sync.Once
}

type joinRequest struct {
	client *Client
	// ack requests a joinedMatch event to the joining client only;
	// the silent form is used for the auto-join on connect.
	ack bool
}

type leaveRequest struct {
	client *Client
	// done carries the number of members remaining after the removal.
	done chan int
}

type sendRequest struct {
	client  *Client
	content string
}

func NewRoom(matchID uuid.UUID, messageRepo repository.MessageRepository) *Room {
	return &Room{
		matchID:     matchID,
		clients:     make(map[*Client]bool),
		messageRepo: messageRepo,
		join:        make(chan *joinRequest),
		leave:       make(chan *leaveRequest),
		send:        make(chan *sendRequest),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

func (r *Room) Run() {
	defer close(r.done)

	for {
		select {
		case <-r.stop:
			for client := range r.clients {
				client.removeRoom(r)
			}
			r.clients = make(map[*Client]bool)
			return

		case req := <-r.join:
			r.handleJoin(req)

		case req := <-r.leave:
			delete(r.clients, req.client)
			req.client.removeRoom(r)
			req.done <- len(r.clients)

		case req := <-r.send:
			r.handleSend(req)
		}
	}
}

// enqueueJoin reports false when the room has already stopped, so the
// hub can retry against a fresh room.
func (r *Room) enqueueJoin(client *Client, ack bool) bool {
	select {
	case r.join <- &joinRequest{client: client, ack: ack}:
		return true
	case <-r.done:
		return false
	}
}

// Stop shuts the room down and waits for its goroutine to exit. Safe
// to call more than once.
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}

// Leave removes the client and returns the number of members left once
// the room has processed the removal, so the caller can tear the
// client down and reap the room if it emptied.
func (r *Room) Leave(client *Client) int {
	req := &leaveRequest{client: client, done: make(chan int, 1)}
	select {
	case r.leave <- req:
		return <-req.done
	case <-r.done:
		return 0
	}
}

func (r *Room) handleJoin(req *joinRequest) {
	r.clients[req.client] = true
	req.client.addRoom(r)

	if req.ack {
		event, err := NewEvent(EventTypeJoinedMatch, JoinedMatchPayload{MatchID: r.matchID.String()})
		if err == nil {
			req.client.Send(event)
		}
	}
}

func (r *Room) handleSend(req *sendRequest) {
	if !r.clients[req.client] {
		req.client.sendError(ErrCodeForbidden, "you are not part of this match")
		return
	}

	message := &domain.Message{
		ID:       uuid.New(),
		MatchID:  r.matchID,
		SenderID: req.client.userID,
		Content:  req.content,
	}

	if err := r.messageRepo.Create(req.client.ctx, message); err != nil {
		log.Error().Err(err).
			Str("match_id", r.matchID.String()).
			Str("sender_id", req.client.userID.String()).
			Msg("failed to persist message")
		req.client.sendError(ErrCodeInternal, "failed to send message")
		return
	}
	metrics.ChatMessagesTotal.Inc()

	event, err := NewEvent(EventTypeNewMessage, NewMessagePayload{
		ID:      message.ID,
		MatchID: message.MatchID,
		Content: message.Content,
		Sender: SenderInfo{
			ID:   req.client.userID,
			Name: req.client.name,
		},
		CreatedAt: message.CreatedAt,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to build newMessage event")
		return
	}

	// Everyone currently in the room gets the event, the sender
	// included, so the persisted record is the single source of truth
	// for rendering order on both sides.
	for client := range r.clients {
		client.Send(event)
	}
}
