package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devmatch/backend/internal/api/middleware"
	"github.com/devmatch/backend/internal/domain"
	"github.com/devmatch/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type UpdateProfileRequest struct {
	Name              *string `json:"name"`
	Bio               *string `json:"bio"`
	Age               *int    `json:"age"`
	Gender            *string `json:"gender"`
	Role              *string `json:"role"`
	YearsOfExperience *int    `json:"yearsOfExperience"`
	GithubURL         *string `json:"githubUrl"`
}

type AddTechRequest struct {
	Name string `json:"name"`
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.profileService.UpdateProfile(r.Context(), userID, service.UpdateProfileInput{
		Name:              req.Name,
		Bio:               req.Bio,
		Age:               req.Age,
		Gender:            req.Gender,
		Role:              req.Role,
		YearsOfExperience: req.YearsOfExperience,
		GithubURL:         req.GithubURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update profile")
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user.Public())
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.profileService.GetProfile(r.Context(), targetID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user.Public())
}

func (h *ProfileHandler) AddTech(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req AddTechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "Technology name is required", http.StatusBadRequest)
		return
	}

	user, err := h.profileService.AddTechnology(r.Context(), userID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTechNotFound):
			http.Error(w, "Technology not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrTechAlreadySet):
			http.Error(w, "Technology already on stack", http.StatusConflict)
		default:
			http.Error(w, "Failed to add technology", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user.Public())
}

func (h *ProfileHandler) RemoveTech(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	name := chi.URLParam(r, "name")
	if name == "" {
		http.Error(w, "Technology name is required", http.StatusBadRequest)
		return
	}

	user, err := h.profileService.RemoveTechnology(r.Context(), userID, name)
	if err != nil {
		if errors.Is(err, domain.ErrTechNotOnStack) {
			http.Error(w, "Technology not on stack", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to remove technology", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user.Public())
}
