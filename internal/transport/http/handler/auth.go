package handler

import (
	"encoding/json"
	"net/http"

	"github.com/estate-api/internal/application/auth"
)

// AuthHandler handles the OTP send and verify endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	requestID, err := h.svc.SendOTP(r.Context(), body.PhoneNumber)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{
		Message: "OTP sent successfully",
		Data:    map[string]string{"requestId": requestID},
	})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PhoneNumber string `json:"phoneNumber"`
		OTP         string `json:"otp"`
		RequestID   string `json:"requestId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.VerifyOTP(r.Context(), body.PhoneNumber, body.OTP, body.RequestID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{
		Message: "OTP verified successfully",
		Data:    result,
	})
}
