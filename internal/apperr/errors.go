package apperr

import "errors"

// Error kinds. Every domain error below matches exactly one kind through errors.Is,
// which is what the transport layers switch on.
var (
	// ErrInvalid is returned when the input fails domain validation (HTTP 400).
	ErrInvalid = errors.New("invalid input")
	// ErrNotFound indicates that the requested resource does not exist (HTTP 404).
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a state conflict (HTTP 409).
	ErrConflict = errors.New("conflict")
	// ErrForbidden indicates the caller may not perform the operation (HTTP 403).
	ErrForbidden = errors.New("forbidden")
	// ErrUnavailable indicates a transient storage condition (HTTP 503).
	ErrUnavailable = errors.New("temporarily unavailable")
)

// Error is a domain error with a stable message and a kind.
type Error struct {
	Msg  string
	Kind error
}

func (e *Error) Error() string { return e.Msg }

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

func newError(msg string, kind error) *Error { return &Error{Msg: msg, Kind: kind} }

// Domain errors of the order lifecycle.
var (
	ErrOrderNotFound   = newError("order not found", ErrNotFound)
	ErrCourierNotFound = newError("courier not found", ErrNotFound)

	ErrInvalidStatus = newError("invalid status", ErrInvalid)
	ErrMissingProof  = newError("completion proof is required", ErrInvalid)
	ErrValidation    = newError("validation failed", ErrInvalid)
	ErrEmptyOrder    = newError("order must contain at least one item", ErrInvalid)

	ErrNoCourierAvailable = newError("no courier available", ErrConflict)
	ErrCourierBusy        = newError("courier is already on a delivery", ErrConflict)
	ErrInvalidTransition  = newError("status transition not allowed", ErrConflict)

	ErrNotAssigned = newError("order is not assigned to this courier", ErrForbidden)
	ErrActorDenied = newError("operation not allowed for this caller", ErrForbidden)

	ErrTransientWriteConflict = newError("transient write conflict", ErrUnavailable)
	ErrRetryExhausted         = newError("retry attempts exhausted", ErrUnavailable)
)
