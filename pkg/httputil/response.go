package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/paramgraph/pkg/errors"
)

// ErrorBody is the JSON body written by [WriteError].
type ErrorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

// WriteJSON writes v as an indented JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// WriteError writes err as an [ErrorBody]. Uncoded errors are reported as
// INTERNAL_ERROR with a generic message so internals do not leak.
func WriteError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
		msg = http.StatusText(http.StatusInternalServerError)
	}
	WriteJSON(w, StatusFor(code), ErrorBody{Error: msg, Code: code})
}

// StatusFor returns the HTTP status for an error code.
func StatusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRootKey, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidEncoding:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidGraph, errors.ErrCodeMalformedGraph, errors.ErrCodeDigestMismatch,
		errors.ErrCodeCapacityExceeded:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
