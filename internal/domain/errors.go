package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// OTP flow. ErrOtpNotFound covers "never issued", "expired" and
	// "already consumed"; callers cannot tell which, on purpose.
	ErrOtpNotFound = errors.New("otp expired or invalid request")
	ErrOtpMismatch = errors.New("invalid otp")

	// ErrGateway signals a failed outbound SMS send. The OTP record stays
	// in the store and expires on its own.
	ErrGateway = errors.New("sms gateway failure")

	ErrSessionExpired = errors.New("session expired")
)
