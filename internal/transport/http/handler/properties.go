package handler

import (
	"encoding/json"
	"net/http"

	"github.com/estate-api/internal/application/property"
	s3infra "github.com/estate-api/internal/infrastructure/s3"
	"github.com/estate-api/internal/transport/http/middleware"
	"github.com/estate-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// PropertyHandler handles listing endpoints.
type PropertyHandler struct {
	svc *property.Service
}

func NewPropertyHandler(svc *property.Service) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req property.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	propertyID, err := h.svc.Create(r.Context(), claims.UserID, domain.IdentityKind(claims.UserType), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, DataEnvelope{
		Message: "Property posted successfully",
		Data:    map[string]string{"propertyId": propertyID},
	})
}

func (h *PropertyHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	listings, err := h.svc.ListMine(r.Context(), claims.UserID, r.URL.Query().Get("status"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{
		Message: "Properties retrieved successfully",
		Data:    map[string]interface{}{"listings": listings},
	})
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "propertyId"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Message: "Property retrieved successfully", Data: p})
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "propertyId")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Property deleted successfully"})
}

// UploadImages accepts a multipart form with one or more "images" fields.
func (h *PropertyHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["images"]) == 0 {
		writeError(w, http.StatusBadRequest, "at least one image file required")
		return
	}

	var uploads []property.Upload
	for _, header := range r.MultipartForm.File["images"] {
		file, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable image file")
			return
		}
		defer file.Close()
		contentType := header.Header.Get("Content-Type")
		uploads = append(uploads, property.Upload{
			Body:        file,
			ContentType: contentType,
			Ext:         s3infra.ContentTypeExt(contentType),
		})
	}

	urls, err := h.svc.AddImages(r.Context(), claims.UserID, chi.URLParam(r, "propertyId"), uploads)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{
		Message: "Images uploaded successfully",
		Data:    map[string][]string{"urls": urls},
	})
}

func (h *PropertyHandler) Buy(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req property.BuyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sale, err := h.svc.Buy(r.Context(), chi.URLParam(r, "propertyId"), claims.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Message: "Property purchased successfully", Data: sale})
}

func (h *PropertyHandler) Rent(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req property.RentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rental, err := h.svc.Rent(r.Context(), chi.URLParam(r, "propertyId"), claims.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Message: "Property rented successfully", Data: rental})
}
