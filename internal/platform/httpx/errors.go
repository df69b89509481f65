package httpx

import (
	"errors"
	"log/slog"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrDuplicate  = errors.New("duplicate entry")
	ErrValidation = errors.New("validation failed")
)

// publicError carries a message that is safe to show to clients.
type publicError struct {
	kind error
	msg  string
}

func (e *publicError) Error() string { return e.msg }
func (e *publicError) Unwrap() error { return e.kind }

// NotFound returns an ErrNotFound with a client facing message.
func NotFound(msg string) error { return &publicError{kind: ErrNotFound, msg: msg} }

// Duplicate returns an ErrDuplicate with a client facing message.
func Duplicate(msg string) error { return &publicError{kind: ErrDuplicate, msg: msg} }

// Validation returns an ErrValidation with a client facing message.
func Validation(msg string) error { return &publicError{kind: ErrValidation, msg: msg} }

// RespondError maps domain errors to HTTP responses. Unclassified errors are
// logged and answered with fallback so driver detail never reaches clients.
func RespondError(w http.ResponseWriter, logger *slog.Logger, err error, fallback string) {
	var pub *publicError
	switch {
	case errors.As(err, &pub) && errors.Is(err, ErrNotFound):
		Message(w, http.StatusNotFound, pub.msg)
	case errors.As(err, &pub) && errors.Is(err, ErrDuplicate):
		Message(w, http.StatusBadRequest, pub.msg)
	case errors.As(err, &pub) && errors.Is(err, ErrValidation):
		Message(w, http.StatusBadRequest, pub.msg)
	default:
		if logger != nil {
			logger.Error(fallback, slog.Any("error", err))
		}
		Message(w, http.StatusInternalServerError, fallback)
	}
}
