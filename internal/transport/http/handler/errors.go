package handler

import (
	"errors"
	"net/http"

	"github.com/estate-api/internal/domain"
)

// httpError maps a service error onto an HTTP status via the domain
// sentinels. OTP failures and session failures all collapse to 401 so
// callers cannot distinguish expired, consumed and never-issued codes.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrOtpNotFound),
		errors.Is(err, domain.ErrOtpMismatch),
		errors.Is(err, domain.ErrSessionExpired),
		errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrGateway):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
