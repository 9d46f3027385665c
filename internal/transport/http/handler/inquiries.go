package handler

import (
	"encoding/json"
	"net/http"

	"github.com/estate-api/internal/application/inquiry"
	"github.com/estate-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// InquiryHandler handles inquiry endpoints.
type InquiryHandler struct {
	svc *inquiry.Service
}

func NewInquiryHandler(svc *inquiry.Service) *InquiryHandler {
	return &InquiryHandler{svc: svc}
}

func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req inquiry.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inquiryID, err := h.svc.Create(r.Context(), claims.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, DataEnvelope{
		Message: "Inquiry submitted successfully",
		Data:    map[string]string{"inquiryId": inquiryID},
	})
}

func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{
		Message: "Inquiries retrieved successfully",
		Data:    map[string]interface{}{"inquiries": inquiries},
	})
}

func (h *InquiryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inquiryID := chi.URLParam(r, "inquiryId")
	if err := h.svc.UpdateStatus(r.Context(), inquiryID, body.Status); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Inquiry status updated successfully"})
}

func (h *InquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "inquiryId")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Inquiry deleted successfully"})
}
