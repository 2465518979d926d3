// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors used by the catalog service layer.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
)

// RespondError maps service errors to HTTP responses.
//
// NotFound and InvalidInput carry their wrapped detail to the client. Any
// other error is an upstream (store) failure; the system is read-only, so the
// underlying message is included for diagnosability rather than masked.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrInvalidInput):
		Problem(w, http.StatusBadRequest, "Invalid Input", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Upstream Error", err.Error())
	}
}
