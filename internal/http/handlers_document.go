package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"spendly/internal/core"
	"spendly/internal/services"
)

type documentHandler struct {
	svc *services.DocumentService
}

type documentRequest struct {
	Name        string `json:"name"`
	StorageKey  string `json:"storageKey"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

type documentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	StorageKey  string    `json:"storageKey"`
	ContentType string    `json:"contentType,omitempty"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

func toDocumentResponse(d core.Document) documentResponse {
	return documentResponse{
		ID:          d.ID,
		Name:        d.Name,
		StorageKey:  d.StorageKey,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		UploadedAt:  d.UploadedAt,
	}
}

func (h *documentHandler) create(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := h.svc.Create(r.Context(), core.Document{
		OwnerID:     ownerFromContext(r.Context()),
		Name:        req.Name,
		StorageKey:  req.StorageKey,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDocumentResponse(created))
}

func (h *documentHandler) list(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.List(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *documentHandler) get(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), ownerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentResponse(d))
}

func (h *documentHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), ownerFromContext(r.Context())); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
