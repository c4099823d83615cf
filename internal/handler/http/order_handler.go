package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/hlog"
	"github.com/vasiliy-maslov/tasty-ordering/internal/order"
)

type OrderItemRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Price    *int   `json:"price" validate:"required,gte=0,max=2147483647"`
	Quantity int    `json:"quantity" validate:"required,gt=0,max=2147483647"`
}

// CreateOrderRequest mirrors the checkout payload. Customer name and phone
// must be present but may be empty. TotalAmount is taken as sent; it is only
// bounded to the column range.
type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount   *int               `json:"totalAmount" validate:"required,min=-2147483648,max=2147483647"`
	CustomerName  *string            `json:"customerName" validate:"required,max=100"`
	CustomerPhone *string            `json:"customerPhone" validate:"required,max=50"`
	CustomerNote  string             `json:"customerNote"`
}

type UpdateOrderStatusRequest struct {
	Status *string `json:"status" validate:"required,max=50"`
}

// CartItemResponse matches the client's cart entry shape. Line items only
// store name, price and quantity, so the remaining menu fields are fixed
// placeholders.
type CartItemResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
	IsAvailable bool   `json:"isAvailable"`
	Quantity    int    `json:"quantity"`
}

type OrderResponse struct {
	ID            string             `json:"id"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	CustomerNote  string             `json:"customerNote"`
	TotalAmount   int                `json:"totalAmount"`
	Status        string             `json:"status"`
	Timestamp     int64              `json:"timestamp"`
	Items         []CartItemResponse `json:"items"`
}

func newOrderResponse(o order.Order) OrderResponse {
	items := make([]CartItemResponse, 0, len(o.Items))
	for _, li := range o.Items {
		items = append(items, CartItemResponse{
			ID:          strconv.FormatInt(li.ID, 10),
			Name:        li.Name,
			Description: "",
			Price:       li.Price,
			Category:    "",
			ImageURL:    "",
			IsAvailable: true,
			Quantity:    li.Quantity,
		})
	}

	return OrderResponse{
		ID:            strconv.FormatInt(o.ID, 10),
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		CustomerNote:  o.CustomerNote,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		Timestamp:     o.CreatedAt.UnixMilli(),
		Items:         items,
	}
}

type OrderHandler struct {
	service  order.Service
	validate *validator.Validate
}

func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: newValidator(),
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Get("/orders", h.handleListOrders)
	router.Post("/orders", h.handleCreateOrder)
	router.Put("/orders/{id}/status", h.handleUpdateOrderStatus)
}

func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to list orders via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to list orders")
		return
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, newOrderResponse(o))
	}

	respondWithJSON(w, http.StatusOK, response)
}

func (h *OrderHandler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateOrderRequest
	if err := decodeJSON(w, r, &requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !validateRequest(w, r, h.validate, requestPayload) {
		return
	}

	domainOrder := order.Order{
		CustomerName:  *requestPayload.CustomerName,
		CustomerPhone: *requestPayload.CustomerPhone,
		CustomerNote:  requestPayload.CustomerNote,
		TotalAmount:   *requestPayload.TotalAmount,
		Items:         make([]order.LineItem, 0, len(requestPayload.Items)),
	}
	for _, it := range requestPayload.Items {
		domainOrder.Items = append(domainOrder.Items, order.LineItem{
			Name:     it.Name,
			Price:    *it.Price,
			Quantity: it.Quantity,
		})
	}

	if _, err := h.service.CreateOrder(r.Context(), &domainOrder); err != nil {
		statusCode := mapErrorToStatusCode(err)

		clientMessage := "Failed to create order"
		if errors.Is(err, order.ErrEmptyOrder) || errors.Is(err, order.ErrInvalidItem) {
			clientMessage = err.Error()
		} else {
			hlog.FromRequest(r).Error().Err(err).Msg("Failed to create order via service")
		}

		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithStatus(w, "created")
}

func (h *OrderHandler) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	var requestPayload UpdateOrderStatusRequest
	if err := decodeJSON(w, r, &requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !validateRequest(w, r, h.validate, requestPayload) {
		return
	}

	if err := h.service.UpdateOrderStatus(r.Context(), id, *requestPayload.Status); err != nil {
		hlog.FromRequest(r).Error().Err(err).Int64("order_id", id).Msg("Failed to update order status via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to update order status")
		return
	}

	respondWithStatus(w, "updated")
}
