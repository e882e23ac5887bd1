package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devmatch/backend/internal/api/middleware"
	"github.com/devmatch/backend/internal/domain"
	"github.com/devmatch/backend/internal/service"
	"github.com/rs/zerolog/log"
)

type DiscoverHandler struct {
	discoveryService *service.DiscoveryService
}

func NewDiscoverHandler(discoveryService *service.DiscoveryService) *DiscoverHandler {
	return &DiscoverHandler{discoveryService: discoveryService}
}

type DiscoverEntry struct {
	User  domain.PublicUser `json:"user"`
	Score float64           `json:"score"`
}

func (h *DiscoverHandler) Discover(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ranked, err := h.discoveryService.Discover(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Msg("failed to rank discovery candidates")
		http.Error(w, "Failed to fetch candidates", http.StatusInternalServerError)
		return
	}

	resp := make([]DiscoverEntry, 0, len(ranked))
	for _, c := range ranked {
		resp = append(resp, DiscoverEntry{
			User:  c.User.Public(),
			Score: c.Score,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
