package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/creamcroissant/foodpos/internal/repository"
	"github.com/creamcroissant/foodpos/internal/service"
)

// OrderHandler serves order submission, listing, and status updates.
// Listing with a status filter is the endpoint the polling clients hit
// every few seconds, so it stays a single indexed query.
type OrderHandler struct {
	orders service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	TableNumber int                      `json:"table_number"`
	Items       []createOrderItemRequest `json:"items"`
}

type createOrderItemRequest struct {
	MenuItem int64  `json:"menu_item"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Notes    string `json:"notes"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// List returns orders oldest first, filtered by ?status=a,b.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses, err := parseStatusList(r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	orders, err := h.orders.List(r.Context(), statuses)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newOrderViews(orders))
}

// Get returns one order by ID.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}
	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newOrderView(order))
}

// Create accepts a checkout payload and returns the created order. Any
// client-supplied prices are ignored; lines are repriced from the menu.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	input := service.CreateOrderInput{TableNumber: req.TableNumber}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.CreateOrderItemInput{
			MenuItemID: item.MenuItem,
			Quantity:   item.Quantity,
			Price:      item.Price,
			Notes:      item.Notes,
		})
	}

	order, err := h.orders.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newOrderView(order))
}

// UpdateStatus transitions an order. Illegal transitions return 409.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	status, ok := repository.ParseOrderStatus(req.Status)
	if !ok {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown order status: " + req.Status})
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newOrderView(order))
}

func parseStatusList(raw string) ([]repository.OrderStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	statuses := make([]repository.OrderStatus, 0, len(parts))
	for _, part := range parts {
		status, ok := repository.ParseOrderStatus(strings.TrimSpace(part))
		if !ok {
			return nil, fmt.Errorf("unknown order status: %q", strings.TrimSpace(part))
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
