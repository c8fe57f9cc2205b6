// Package httpjson holds the request/response JSON helpers shared by
// every feature handler.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/campushub/campushub/internal/app/system/apierr"
)

// maxBodyBytes caps JSON request bodies. File uploads use multipart
// parsing with their own limit.
const maxBodyBytes = 1 << 20

// Decode parses the request body into dst, rejecting unknown fields
// and trailing garbage. Returns an apierr value ready for Write.
func Decode(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apierr.Invalid("empty_body", "request body is required")
		}
		return apierr.Invalid("malformed_json", "request body is not valid JSON")
	}
	if dec.More() {
		return apierr.Invalid("malformed_json", "request body contains more than one JSON value")
	}
	return nil
}

// Write encodes v as the JSON response with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes v with a 200 status.
func OK(w http.ResponseWriter, v any) {
	Write(w, http.StatusOK, v)
}

// Created writes v with a 201 status.
func Created(w http.ResponseWriter, v any) {
	Write(w, http.StatusCreated, v)
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
