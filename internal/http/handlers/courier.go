package handlers

import (
	"net/http"

	"bakery-dispatch/internal/logx"
)

// CourierHandler serves HTTP endpoints for couriers.
type CourierHandler struct {
	couriers courierReader
	views    orderViews
	logger   logx.Logger
}

// NewCourierHandler creates a new CourierHandler.
func NewCourierHandler(logger logx.Logger, couriers courierReader, views orderViews) *CourierHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &CourierHandler{couriers: couriers, views: views, logger: logger}
}

// List handles GET /api/kurir.
func (h *CourierHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.couriers.List(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, couriersToResponse(list))
}

// GetByID handles GET /api/kurir/{id}.
func (h *CourierHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	c, err := h.couriers.Get(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, courierToResponse(*c))
}

// ActiveOrders handles GET /api/kurir/order/{id}: the courier's deliveries grouped by date and time.
func (h *CourierHandler) ActiveOrders(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	grouped, err := h.views.CourierActive(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, grouped.Encode(groupedEntry))
}

// History handles GET /api/kurir/history/{id}.
func (h *CourierHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	list, err := h.views.CourierHistory(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, ordersToResponse(list))
}
