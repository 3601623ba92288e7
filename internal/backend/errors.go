package backend

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the backend rejects the bearer token on
// an authenticated call. By the time a caller sees it the unauthorized
// hook has already fired and the session store is empty.
var ErrUnauthorized = errors.New("backend rejected bearer token")

type Reason string

const (
	ReasonInvalidCredentials Reason = "invalid_credentials"
	ReasonValidationFailed   Reason = "validation_failed"
	ReasonConflict           Reason = "conflict"
	ReasonNetworkFailure     Reason = "network_failure"
)

// AuthError is the normalized failure for login and register calls. The
// session store is never touched when one is returned.
type AuthError struct {
	Reason  Reason
	Message string
	Status  int
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func authErrorReason(err error) (Reason, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Reason, true
	}
	return "", false
}

func IsInvalidCredentials(err error) bool {
	reason, ok := authErrorReason(err)
	return ok && reason == ReasonInvalidCredentials
}

func IsNetworkFailure(err error) bool {
	reason, ok := authErrorReason(err)
	return ok && reason == ReasonNetworkFailure
}

// APIError carries a non-2xx domain response through to the screen that
// issued the call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}
