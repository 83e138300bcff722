package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"bakery-dispatch/internal/apperr"
	"bakery-dispatch/internal/domain"
	"bakery-dispatch/internal/logx"
)

// OrderHandler serves the order lifecycle endpoints.
type OrderHandler struct {
	views     orderViews
	lifecycle statusChanger
	picker    courierPicker
	proofs    proofStore
	logger    logx.Logger
	validate  *validator.Validate
	maxUpload int64
}

// NewOrderHandler creates a new OrderHandler. maxUpload bounds the proof image size in bytes.
func NewOrderHandler(
	logger logx.Logger,
	views orderViews,
	lifecycle statusChanger,
	picker courierPicker,
	proofs proofStore,
	maxUpload int64,
) *OrderHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &OrderHandler{
		views:     views,
		lifecycle: lifecycle,
		picker:    picker,
		proofs:    proofs,
		logger:    logger,
		validate:  validator.New(),
		maxUpload: maxUpload,
	}
}

// List handles GET /api/order. With ?view=grouped the orders are bucketed by date and time.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("view") == "grouped" {
		grouped, err := h.views.ActiveGrouped(r.Context())
		if err != nil {
			writeDomainError(h.logger, w, r, err)
			return
		}
		writeJSON(h.logger, w, r, http.StatusOK, grouped.Encode(groupedEntry))
		return
	}

	list, err := h.views.Active(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, ordersToResponse(list))
}

// ListCompleted handles GET /api/order/all-completed.
func (h *OrderHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	list, err := h.views.Completed(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, ordersToResponse(list))
}

// ListMine handles GET /api/order/user for the customer in X-User-ID.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r.Header.Get(HeaderUserID))
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "missing or invalid "+HeaderUserID)
		return
	}
	list, err := h.views.CustomerOrders(r.Context(), userID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, ordersToResponse(list))
}

// Count handles GET /api/order/count.
func (h *OrderHandler) Count(w http.ResponseWriter, r *http.Request) {
	stats, err := h.views.Stats(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]int64{"count": stats.OrderCount})
}

// Sales handles GET /api/sales/count.
func (h *OrderHandler) Sales(w http.ResponseWriter, r *http.Request) {
	stats, err := h.views.Stats(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]any{"total": money(stats.Sales)})
}

// Assignment handles GET /api/orders/{orderId}/assignment and previews the courier choice.
func (h *OrderHandler) Assignment(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFromURL(r, "orderId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}
	courierID, err := h.picker.AssignCourier(r.Context(), orderID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignmentResponse{OrderID: orderID, CourierID: courierID})
}

// ChangeStatus handles PUT /api/orders/{orderId}/status.
func (h *OrderHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFromURL(r, "orderId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid "+HeaderCourierID)
		return
	}
	var req changeStatusRequest
	if !decodeValid(h.logger, h.validate, w, r, &req) {
		return
	}

	o, err := h.lifecycle.ChangeStatus(r.Context(), domain.StatusChange{
		OrderID:   orderID,
		Status:    req.Status,
		CourierID: req.CourierID,
		Proof:     req.Proof,
		Actor:     actor,
	})
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	resp := orderToResponse(o)
	writeJSON(h.logger, w, r, http.StatusOK, messageResponse{Message: "status updated", Order: &resp})
}

// Reassign handles POST /api/update-kurir.
func (h *OrderHandler) Reassign(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid "+HeaderCourierID)
		return
	}
	var req reassignRequest
	if !decodeValid(h.logger, h.validate, w, r, &req) {
		return
	}

	o, err := h.lifecycle.Reassign(r.Context(), req.OrderID, req.CourierID, actor)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	resp := orderToResponse(o)
	writeJSON(h.logger, w, r, http.StatusOK, messageResponse{Message: "courier updated", Order: &resp})
}

// CompleteDelivery handles POST /api/kurir/complete: multipart order_id and image.
// The stored image is removed again when the order rejects it. It is kept when the
// outcome of the write is unknown, since the proof may have been committed.
func (h *OrderHandler) CompleteDelivery(w http.ResponseWriter, r *http.Request) {
	actor, err := courierFromRequest(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid "+HeaderCourierID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+bodyLimit)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(h.logger, w, r, http.StatusRequestEntityTooLarge, "image too large")
			return
		}
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	orderID, err := parseID(strings.TrimSpace(r.FormValue("order_id")))
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order_id")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeDomainError(h.logger, w, r, apperr.ErrMissingProof)
		return
	}
	defer file.Close()
	if header.Size > h.maxUpload {
		writeError(h.logger, w, r, http.StatusRequestEntityTooLarge, "image too large")
		return
	}

	name, err := h.proofs.Save(file, header.Filename)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}

	o, err := h.lifecycle.ChangeStatus(r.Context(), domain.StatusChange{
		OrderID: orderID,
		Status:  string(domain.OrderCompleted),
		Proof:   name,
		Actor:   actor,
	})
	if err != nil {
		if rejected(err) {
			h.removeProof(name)
		} else {
			h.logger.Warn("proof kept, completion outcome unknown",
				logx.String("proof", name),
				logx.Int64("order_id", orderID),
				logx.Err(err),
			)
		}
		writeDomainError(h.logger, w, r, err)
		return
	}
	// already completed with an earlier proof
	if o.CompletionProof == nil || *o.CompletionProof != name {
		h.removeProof(name)
	}

	resp := orderToResponse(o)
	writeJSON(h.logger, w, r, http.StatusOK, messageResponse{Message: "delivery completed", Order: &resp})
}

func (h *OrderHandler) removeProof(name string) {
	if err := h.proofs.Remove(name); err != nil {
		h.logger.Warn("proof cleanup failed",
			logx.String("proof", name),
			logx.Err(err),
		)
	}
}

// rejected reports errors after which the transaction is known to have rolled back.
func rejected(err error) bool {
	for _, kind := range []error{apperr.ErrInvalid, apperr.ErrNotFound, apperr.ErrConflict, apperr.ErrForbidden} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
