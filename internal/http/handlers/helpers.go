package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"bakery-dispatch/internal/apperr"
	"bakery-dispatch/internal/domain"
	"bakery-dispatch/internal/logx"
)

// Identity headers set by the storefront, admin panel and courier app.
const (
	HeaderCourierID = "X-Kurir-ID"
	HeaderUserID    = "X-User-ID"
)

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Error("json encode error",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	logger.Warn("http error",
		logx.String("req_id", reqID(r.Context())),
		logx.Int("status", status),
		logx.String("msg", msg),
	)
	writeJSON(logger, w, r, status, errResponse{Error: msg})
}

// writeDomainError maps the error kind to an HTTP status.
func writeDomainError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		writeError(logger, w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		writeError(logger, w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		writeError(logger, w, r, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		writeError(logger, w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		logger.Error("order store unavailable",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
		w.Header().Set("Retry-After", "1")
		writeError(logger, w, r, http.StatusServiceUnavailable, "temporarily unavailable, try again")
	default:
		logger.Error("request failed",
			logx.String("req_id", reqID(r.Context())),
			logx.String("path", r.URL.Path),
			logx.Err(err),
		)
		writeError(logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

const (
	bodyLimit = 1 << 20
)

func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json: trailing data")
		return false
	}
	return true
}

// decodeValid decodes the body and runs struct validation on it.
func decodeValid[T any](logger logx.Logger, v *validator.Validate, w http.ResponseWriter, r *http.Request, dst *T) bool {
	if !decodeJSON(logger, w, r, dst) {
		return false
	}
	if err := v.Struct(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.ErrValidation.Error()
	}
	fe := verrs[0]
	return apperr.ErrValidation.Error() + ": " + fe.Field() + " failed " + fe.Tag()
}

func idFromURL(r *http.Request, name string) (int64, error) {
	return parseID(chi.URLParam(r, name))
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// actorFromRequest identifies couriers by X-Kurir-ID. Callers without it act as the admin panel.
func actorFromRequest(r *http.Request) (domain.Actor, error) {
	raw := r.Header.Get(HeaderCourierID)
	if raw == "" {
		return domain.Admin(), nil
	}
	id, err := parseID(raw)
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.CourierActor(id), nil
}

// courierFromRequest is actorFromRequest for courier-only endpoints; the id is optional.
func courierFromRequest(r *http.Request) (domain.Actor, error) {
	raw := r.Header.Get(HeaderCourierID)
	if raw == "" {
		return domain.CourierActor(0), nil
	}
	id, err := parseID(raw)
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.CourierActor(id), nil
}
