package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/hlog"
	"github.com/vasiliy-maslov/tasty-ordering/internal/menu"
)

// MenuItemRequest is the body of both create and full-replacement update.
// Description, category and image must be sent, possibly empty, so an update
// never blanks a column the client left out.
type MenuItemRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"required"`
	Price       *int    `json:"price" validate:"required,gte=0,max=2147483647"`
	Category    *string `json:"category" validate:"required,max=50"`
	ImageURL    *string `json:"imageUrl" validate:"required"`
	IsAvailable *bool   `json:"isAvailable"`
}

func (req MenuItemRequest) toDomain(id int64) menu.Item {
	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}
	return menu.Item{
		ID:          id,
		Name:        req.Name,
		Description: *req.Description,
		Price:       *req.Price,
		Category:    *req.Category,
		ImageURL:    *req.ImageURL,
		IsAvailable: isAvailable,
	}
}

type MenuItemResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
	IsAvailable bool   `json:"isAvailable"`
}

func newMenuItemResponse(item menu.Item) MenuItemResponse {
	return MenuItemResponse{
		ID:          strconv.FormatInt(item.ID, 10),
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		ImageURL:    item.ImageURL,
		IsAvailable: item.IsAvailable,
	}
}

type MenuHandler struct {
	service  menu.Service
	validate *validator.Validate
}

func NewMenuHandler(service menu.Service) *MenuHandler {
	return &MenuHandler{
		service:  service,
		validate: newValidator(),
	}
}

func (h *MenuHandler) RegisterRoutes(router chi.Router) {
	router.Get("/menu", h.handleListMenu)
	router.Post("/menu", h.handleCreateMenuItem)
	router.Put("/menu/{id}", h.handleUpdateMenuItem)
	router.Delete("/menu/{id}", h.handleDeleteMenuItem)
	router.Put("/menu/{id}/toggle", h.handleToggleMenuItem)
}

func (h *MenuHandler) handleListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to list menu via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to list menu")
		return
	}

	response := make([]MenuItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, newMenuItemResponse(item))
	}

	respondWithJSON(w, http.StatusOK, response)
}

func (h *MenuHandler) handleCreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var requestPayload MenuItemRequest
	if err := decodeJSON(w, r, &requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !validateRequest(w, r, h.validate, requestPayload) {
		return
	}

	item := requestPayload.toDomain(0)
	if err := h.service.CreateItem(r.Context(), &item); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to create menu item via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to create menu item")
		return
	}

	respondWithStatus(w, "ok")
}

func (h *MenuHandler) handleUpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	var requestPayload MenuItemRequest
	if err := decodeJSON(w, r, &requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !validateRequest(w, r, h.validate, requestPayload) {
		return
	}

	item := requestPayload.toDomain(id)
	if err := h.service.UpdateItem(r.Context(), &item); err != nil {
		statusCode := mapErrorToStatusCode(err)

		clientMessage := "Failed to update menu item"
		if errors.Is(err, menu.ErrNotFound) {
			clientMessage = "Item not found"
		} else {
			hlog.FromRequest(r).Error().Err(err).Int64("menu_item_id", id).Msg("Failed to update menu item via service")
		}

		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithStatus(w, "updated")
}

func (h *MenuHandler) handleDeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		hlog.FromRequest(r).Error().Err(err).Int64("menu_item_id", id).Msg("Failed to delete menu item via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to delete menu item")
		return
	}

	respondWithStatus(w, "deleted")
}

func (h *MenuHandler) handleToggleMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	if err := h.service.ToggleItem(r.Context(), id); err != nil {
		hlog.FromRequest(r).Error().Err(err).Int64("menu_item_id", id).Msg("Failed to toggle menu item via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to toggle menu item")
		return
	}

	respondWithStatus(w, "toggled")
}
