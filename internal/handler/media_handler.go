package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Mirap9615/owowclub-sub000/internal/service"
)

// UploadMedia handles multipart POST /api/media.
func (h *Handlers) UploadMedia(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "File too large or malformed form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, "Field 'file' is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	var eventID *string
	if v := r.FormValue("eventId"); v != "" {
		eventID = &v
	}

	var tags []string
	if raw := r.FormValue("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	media, err := h.MediaService.Upload(r.Context(), service.UploadMediaRequest{
		UserID:      user.UserID,
		EventID:     eventID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Tags:        tags,
		FileName:    header.Filename,
		File:        file,
		Size:        header.Size,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, media, http.StatusCreated)
}

func (h *Handlers) ListMedia(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("eventId")

	var userID string
	if r.URL.Query().Get("mine") == "true" {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteError(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		userID = user.UserID
	}

	items, err := h.MediaService.List(r.Context(), eventID, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, items, http.StatusOK)
}

func (h *Handlers) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	mediaID := mux.Vars(r)["id"]

	existing, err := h.MediaService.GetByID(r.Context(), mediaID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if existing.UserID != user.UserID && !user.IsAdmin {
		WriteError(w, "Forbidden", http.StatusForbidden)
		return
	}

	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	media, err := h.MediaService.Update(r.Context(), mediaID, req.Title, req.Description, req.Tags)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, media, http.StatusOK)
}

func (h *Handlers) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	mediaID := mux.Vars(r)["id"]

	existing, err := h.MediaService.GetByID(r.Context(), mediaID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if existing.UserID != user.UserID && !user.IsAdmin {
		WriteError(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := h.MediaService.Delete(r.Context(), mediaID); err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, http.StatusOK)
}

// BulkDeleteMedia aborts the whole batch on the first storage failure.
func (h *Handlers) BulkDeleteMedia(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req struct {
		IDs []string `json:"ids" validate:"required,min=1"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Field 'ids' is required", http.StatusBadRequest)
		return
	}

	if err := h.MediaService.BulkDelete(r.Context(), req.IDs); err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, http.StatusOK)
}
