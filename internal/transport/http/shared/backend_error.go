package shared

import (
	"errors"
	"net/http"

	"workforce/internal/backend"
	"workforce/internal/transport/http/api"
)

// WriteBackendError maps a backend client failure onto the local response
// envelope. A rejected token has already cleared the session store by the
// time it surfaces here; the screen only needs to learn the session is
// gone and send the user to login.
func WriteBackendError(w http.ResponseWriter, err error, requestID string) {
	if errors.Is(err, backend.ErrUnauthorized) {
		api.Fail(w, http.StatusUnauthorized, "session_expired", "session expired, sign in again", requestID)
		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		api.Fail(w, apiErr.Status, "backend_error", apiErr.Message, requestID)
		return
	}

	var authErr *backend.AuthError
	if errors.As(err, &authErr) && authErr.Reason == backend.ReasonNetworkFailure {
		api.Fail(w, http.StatusBadGateway, "backend_unreachable", "could not reach the backend", requestID)
		return
	}

	api.Fail(w, http.StatusBadGateway, "backend_error", "unexpected backend failure", requestID)
}
