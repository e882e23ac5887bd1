package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/devmatch/backend/internal/api/middleware"
	"github.com/devmatch/backend/internal/domain"
	"github.com/devmatch/backend/internal/service"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type SwipeHandler struct {
	swipeService *service.SwipeService
}

func NewSwipeHandler(swipeService *service.SwipeService) *SwipeHandler {
	return &SwipeHandler{swipeService: swipeService}
}

type LikeRequest struct {
	LikedUserID string `json:"likedUserId"`
}

type LikeResponse struct {
	IsMatch bool           `json:"isMatch"`
	Like    LikeInfo       `json:"like"`
	Match   *MatchResponse `json:"match,omitempty"`
}

type LikeInfo struct {
	ID        string    `json:"id"`
	LikerID   string    `json:"likerId"`
	LikedID   string    `json:"likedId"`
	CreatedAt time.Time `json:"createdAt"`
}

type MatchResponse struct {
	ID        string             `json:"id"`
	MatchedAt time.Time          `json:"matchedAt"`
	User      *domain.PublicUser `json:"user,omitempty"`
}

func (h *SwipeHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	likedID, err := uuid.Parse(req.LikedUserID)
	if err != nil {
		http.Error(w, "likedUserId must be a valid user id", http.StatusBadRequest)
		return
	}

	result, err := h.swipeService.RecordLike(r.Context(), userID, likedID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfLike):
			http.Error(w, "You cannot like yourself", http.StatusBadRequest)
		case errors.Is(err, domain.ErrAlreadyLiked):
			http.Error(w, "You have already liked this user", http.StatusConflict)
		case errors.Is(err, domain.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrRateLimited):
			http.Error(w, "Too many likes, slow down", http.StatusTooManyRequests)
		default:
			log.Error().Err(err).Msg("failed to record like")
			http.Error(w, "Failed to process like", http.StatusInternalServerError)
		}
		return
	}

	resp := LikeResponse{
		IsMatch: result.IsMatch,
		Like: LikeInfo{
			ID:        result.Like.ID.String(),
			LikerID:   result.Like.LikerID.String(),
			LikedID:   result.Like.LikedID.String(),
			CreatedAt: result.Like.CreatedAt,
		},
	}
	if result.Match != nil {
		resp.Match = &MatchResponse{
			ID:        result.Match.ID.String(),
			MatchedAt: result.Match.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *SwipeHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	matches, err := h.swipeService.ListMatches(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list matches")
		http.Error(w, "Failed to fetch matches", http.StatusInternalServerError)
		return
	}

	resp := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		entry := MatchResponse{
			ID:        m.Match.ID.String(),
			MatchedAt: m.Match.CreatedAt,
		}
		if m.Other != nil {
			pub := m.Other.Public()
			entry.User = &pub
		}
		resp = append(resp, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
