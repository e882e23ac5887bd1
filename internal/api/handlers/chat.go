package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/devmatch/backend/internal/api/middleware"
	"github.com/devmatch/backend/internal/domain"
	"github.com/devmatch/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type MessageResponse struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	Sender    SenderInfo `json:"sender"`
}

type SenderInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ChatHistoryResponse struct {
	MatchID  string            `json:"matchId"`
	Messages []MessageResponse `json:"messages"`
}

type ChatListEntry struct {
	MatchID     string             `json:"matchId"`
	OtherUser   *domain.PublicUser `json:"otherUser"`
	LastMessage *MessageResponse   `json:"lastMessage"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func toMessageResponse(m *domain.Message) MessageResponse {
	resp := MessageResponse{
		ID:        m.ID.String(),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		Sender:    SenderInfo{ID: m.SenderID.String()},
	}
	if m.Sender != nil {
		resp.Sender.Name = m.Sender.Name
	}
	return resp
}

func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	matchID, err := uuid.Parse(chi.URLParam(r, "matchId"))
	if err != nil {
		http.Error(w, "Invalid match id", http.StatusBadRequest)
		return
	}

	messages, err := h.chatService.GetHistory(r.Context(), userID, matchID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMatchNotFound):
			http.Error(w, "Match not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrNotParticipant):
			http.Error(w, "You are not part of this match", http.StatusForbidden)
		default:
			log.Error().Err(err).Msg("failed to fetch chat history")
			http.Error(w, "Failed to fetch chat history", http.StatusInternalServerError)
		}
		return
	}

	resp := ChatHistoryResponse{
		MatchID:  matchID.String(),
		Messages: make([]MessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, toMessageResponse(m))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *ChatHandler) GetChatList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := h.chatService.GetChatList(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch chat list")
		http.Error(w, "Failed to fetch chat list", http.StatusInternalServerError)
		return
	}

	resp := make([]ChatListEntry, 0, len(entries))
	for _, e := range entries {
		entry := ChatListEntry{
			MatchID:   e.Match.ID.String(),
			CreatedAt: e.Match.CreatedAt,
		}
		if e.Other != nil {
			pub := e.Other.Public()
			entry.OtherUser = &pub
		}
		if e.LastMessage != nil {
			msg := toMessageResponse(e.LastMessage)
			entry.LastMessage = &msg
		}
		resp = append(resp, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
