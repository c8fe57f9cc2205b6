// Package apierr defines the API error taxonomy and the single place
// where errors become HTTP responses.
//
// Handlers and domain code return *Error values (or wrap them); the
// boundary calls Write, which maps the error kind to a status code and
// emits a JSON body of the form {"code": "...", "detail": "..."}.
// Anything that is not an *Error is treated as internal: logged with
// the underlying cause, reported to the client without it.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Kind classifies an error for HTTP status mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalid
)

// Error is the API error type. Code is a stable machine-readable slug,
// Detail is a human-readable sentence, and Err optionally carries the
// underlying cause for logging (never sent to the client).
type Error struct {
	Kind   Kind
	Code   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Unauthenticated means the request carries no valid session.
func Unauthenticated(code, detail string) *Error {
	return &Error{Kind: KindUnauthenticated, Code: code, Detail: detail}
}

// Forbidden means the session user lacks the required role.
func Forbidden(code, detail string) *Error {
	return &Error{Kind: KindForbidden, Code: code, Detail: detail}
}

// NotFound means the referenced resource does not exist.
func NotFound(code, detail string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Detail: detail}
}

// Conflict means a uniqueness or state-machine constraint was violated.
func Conflict(code, detail string) *Error {
	return &Error{Kind: KindConflict, Code: code, Detail: detail}
}

// Invalid means the request body or parameters failed validation,
// including content rejected by the NSFW gate.
func Invalid(code, detail string) *Error {
	return &Error{Kind: KindInvalid, Code: code, Detail: detail}
}

// Internal wraps an unexpected failure. The cause is logged, not exposed.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: "internal_error", Detail: "internal server error", Err: err}
}

// Status returns the HTTP status code for err. Non-*Error values map
// to 500.
func Status(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalid:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type body struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// Write translates err into the HTTP response. Internal errors are
// logged at error level with the cause; expected errors at debug.
func Write(w http.ResponseWriter, log *zap.Logger, err error) {
	status := Status(err)

	var ae *Error
	if !errors.As(err, &ae) {
		ae = Internal(err)
	}

	if log != nil {
		if status >= http.StatusInternalServerError {
			log.Error("request failed", zap.String("code", ae.Code), zap.Error(err))
		} else {
			log.Debug("request rejected", zap.String("code", ae.Code), zap.Int("status", status))
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body{Code: ae.Code, Detail: ae.Detail})
}
