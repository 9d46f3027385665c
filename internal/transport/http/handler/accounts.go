package handler

import (
	"encoding/json"
	"net/http"

	"github.com/estate-api/internal/application/account"
	"github.com/estate-api/internal/domain"
	s3infra "github.com/estate-api/internal/infrastructure/s3"
	"github.com/estate-api/internal/transport/http/middleware"
)

// maxImageSize bounds multipart uploads (10 MiB).
const maxImageSize = 10 << 20

// AccountHandler handles registration and profile endpoints for all three
// identity kinds.
type AccountHandler struct {
	svc *account.Service
}

func NewAccountHandler(svc *account.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

func (h *AccountHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req account.RegisterCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.RegisterCustomer(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, DataEnvelope{
		Message: "Customer registered successfully, please verify OTP",
		Data:    result,
	})
}

func (h *AccountHandler) RegisterAgent(w http.ResponseWriter, r *http.Request) {
	var req account.RegisterAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.RegisterAgent(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, DataEnvelope{
		Message: "Agent registered successfully, please verify OTP",
		Data:    result,
	})
}

func (h *AccountHandler) RegisterBuilder(w http.ResponseWriter, r *http.Request) {
	var req account.RegisterBuilderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.RegisterBuilder(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, DataEnvelope{
		Message: "Builder registered successfully, please verify OTP",
		Data:    result,
	})
}

func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	profile, err := h.svc.Profile(r.Context(), domain.IdentityKind(claims.UserType), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Message: "Profile retrieved successfully", Data: profile})
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req account.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.UpdateProfile(r.Context(), domain.IdentityKind(claims.UserType), claims.UserID, req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Profile updated successfully"})
}

// UploadProfileImage accepts a multipart form with an "image" field and
// stores it in object storage.
func (h *AccountHandler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	url, err := h.svc.SetProfileImage(
		r.Context(),
		domain.IdentityKind(claims.UserType),
		claims.UserID,
		file,
		contentType,
		s3infra.ContentTypeExt(contentType),
	)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{
		Message: "Profile image uploaded successfully",
		Data:    map[string]string{"url": url},
	})
}
