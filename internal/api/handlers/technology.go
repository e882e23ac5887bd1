package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/devmatch/backend/internal/service"
	"github.com/rs/zerolog/log"
)

type TechnologyHandler struct {
	profileService *service.ProfileService
}

func NewTechnologyHandler(profileService *service.ProfileService) *TechnologyHandler {
	return &TechnologyHandler{profileService: profileService}
}

type TechnologyResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// List returns the full catalog grouped by technology type.
func (h *TechnologyHandler) List(w http.ResponseWriter, r *http.Request) {
	techs, err := h.profileService.ListTechnologies(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list technologies")
		http.Error(w, "Failed to fetch technologies", http.StatusInternalServerError)
		return
	}

	grouped := make(map[string][]TechnologyResponse)
	for _, t := range techs {
		grouped[string(t.Type)] = append(grouped[string(t.Type)], TechnologyResponse{
			Name: t.Name,
			Type: string(t.Type),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(grouped)
}
