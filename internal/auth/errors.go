package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Kind classifies why a request was not allowed through.
type Kind int

// Failure kinds. The zero value is not a valid kind.
const (
	KindMissingToken Kind = iota + 1
	KindInvalidToken
	KindExpiredToken
	KindUnknownSubject
	KindDependencyFailure
	KindUnauthenticated
	KindForbidden
)

type kindInfo struct {
	code    string
	status  int
	message string
}

var kinds = map[Kind]kindInfo{
	KindMissingToken:      {"missing_token", http.StatusUnauthorized, "No token provided"},
	KindInvalidToken:      {"invalid_token", http.StatusUnauthorized, "Invalid token"},
	KindExpiredToken:      {"expired_token", http.StatusUnauthorized, "Token expired"},
	KindUnknownSubject:    {"unknown_subject", http.StatusUnauthorized, "User no longer exists"},
	KindDependencyFailure: {"dependency_failure", http.StatusInternalServerError, "Authentication temporarily unavailable"},
	KindUnauthenticated:   {"unauthenticated", http.StatusUnauthorized, "Not authenticated"},
	KindForbidden:         {"forbidden", http.StatusForbidden, "Forbidden"},
}

func (k Kind) info() kindInfo {
	if info, ok := kinds[k]; ok {
		return info
	}
	return kinds[KindDependencyFailure]
}

// Code returns the stable machine-readable code for the kind.
func (k Kind) Code() string { return k.info().code }

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int { return k.info().status }

// Message returns the default client-facing message.
func (k Kind) Message() string { return k.info().message }

func (k Kind) String() string { return k.Code() }

// Error is a classified authentication or authorization failure.
type Error struct {
	Kind Kind
	// Message overrides Kind.Message in the response when set.
	Message string
	// Err carries internal detail for logs only.
	Err error
}

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.Code() + ": " + e.Err.Error()
	}
	return e.Kind.Code()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) clientMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Message()
}

// KindOf classifies err. Anything that is not an *Error is a server fault.
func KindOf(err error) Kind {
	var authErr *Error
	if errors.As(err, &authErr) && authErr.Kind.valid() {
		return authErr.Kind
	}
	return KindDependencyFailure
}

func (k Kind) valid() bool {
	_, ok := kinds[k]
	return ok
}

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// WriteError writes the response for a failed verification or gate check and
// logs it at a severity that matches the kind.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var authErr *Error
	if !errors.As(err, &authErr) || !authErr.Kind.valid() {
		authErr = newError(KindDependencyFailure, err)
	}
	kind := authErr.Kind

	if logger != nil {
		attrs := []any{
			slog.String("kind", kind.Code()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		}
		if authErr.Err != nil {
			attrs = append(attrs, slog.Any("error", authErr.Err))
		}
		switch kind {
		case KindDependencyFailure:
			logger.Error("auth dependency failure", attrs...)
		case KindMissingToken, KindExpiredToken:
			logger.Info("auth rejected", attrs...)
		default:
			logger.Warn("auth rejected", attrs...)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if kind.Status() == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	}
	w.WriteHeader(kind.Status())
	_ = json.NewEncoder(w).Encode(errorBody{Message: authErr.clientMessage(), Code: kind.Code()})
}
