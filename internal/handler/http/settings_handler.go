package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/hlog"
	"github.com/vasiliy-maslov/tasty-ordering/internal/settings"
)

type UpdateSettingsRequest struct {
	Name   string `json:"name" validate:"required"`
	IsOpen *bool  `json:"isOpen" validate:"required"`
}

type SettingsResponse struct {
	Name   string `json:"name"`
	IsOpen bool   `json:"isOpen"`
}

type SettingsHandler struct {
	service  settings.Service
	validate *validator.Validate
}

func NewSettingsHandler(service settings.Service) *SettingsHandler {
	return &SettingsHandler{
		service:  service,
		validate: newValidator(),
	}
}

func (h *SettingsHandler) RegisterRoutes(router chi.Router) {
	router.Get("/settings", h.handleGetSettings)
	router.Put("/settings", h.handleUpdateSettings)
}

func (h *SettingsHandler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	current, err := h.service.GetSettings(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to get settings via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to get settings")
		return
	}

	respondWithJSON(w, http.StatusOK, SettingsResponse{Name: current.Name, IsOpen: current.IsOpen})
}

func (h *SettingsHandler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var requestPayload UpdateSettingsRequest
	if err := decodeJSON(w, r, &requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !validateRequest(w, r, h.validate, requestPayload) {
		return
	}

	updated := settings.StoreSettings{Name: requestPayload.Name, IsOpen: *requestPayload.IsOpen}
	if err := h.service.UpdateSettings(r.Context(), updated); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to update settings via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to update settings")
		return
	}

	respondWithStatus(w, "updated")
}
