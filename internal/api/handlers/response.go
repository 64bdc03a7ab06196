package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/randytsao24/wastewizard/internal/outcome"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// statusFor maps a lookup failure to an HTTP status
func statusFor(reason outcome.Reason) int {
	switch reason {
	case outcome.AddressNotFound, outcome.NoMatch:
		return http.StatusNotFound
	case outcome.NotInServiceArea:
		return http.StatusUnprocessableEntity
	case outcome.PermissionDenied:
		return http.StatusForbidden
	case outcome.RemoteUnavailable, outcome.TemporaryLookupFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
