package service

import (
	"context"
	"errors"

	"github.com/devmatch/backend/internal/domain"
	"github.com/devmatch/backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatService is the read path for chat: history and conversation list.
// Live delivery is the websocket hub's job; both read the same message
// log in the same (created_at, id) order.
type ChatService struct {
	matchRepo   repository.MatchRepository
	messageRepo repository.MessageRepository
}

func NewChatService(matchRepo repository.MatchRepository, messageRepo repository.MessageRepository) *ChatService {
	return &ChatService{
		matchRepo:   matchRepo,
		messageRepo: messageRepo,
	}
}

// GetHistory returns the full ordered message log for a match. Only
// participants may read it.
func (s *ChatService) GetHistory(ctx context.Context, userID, matchID uuid.UUID) ([]*domain.Message, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	if !match.HasParticipant(userID) {
		return nil, domain.ErrNotParticipant
	}

	return s.messageRepo.GetByMatchID(ctx, matchID)
}

// ChatListEntry is one conversation in the user's chat list.
type ChatListEntry struct {
	Match       *domain.Match
	Other       *domain.User
	LastMessage *domain.Message
}

func (s *ChatService) GetChatList(ctx context.Context, userID uuid.UUID) ([]*ChatListEntry, error) {
	matches, err := s.matchRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]*ChatListEntry, 0, len(matches))
	for _, m := range matches {
		other := m.UserHigh
		if m.UserHighID == userID {
			other = m.UserLow
		}

		last, err := s.messageRepo.LastByMatchID(ctx, m.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		entries = append(entries, &ChatListEntry{
			Match:       m,
			Other:       other,
			LastMessage: last,
		})
	}
	return entries, nil
}
