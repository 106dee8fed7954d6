package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Mirap9615/owowclub-sub000/internal/models"
)

func validTargetKind(kind string) bool {
	return kind == models.TargetEvent || kind == models.TargetImage
}

func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	targetID := r.URL.Query().Get("id")

	if !validTargetKind(kind) || targetID == "" {
		WriteError(w, "Query parameters 'kind' and 'id' are required", http.StatusBadRequest)
		return
	}

	var viewerID string
	if user, ok := UserFromContext(r.Context()); ok {
		viewerID = user.UserID
	}

	comments, err := h.CommentService.List(r.Context(), kind, targetID, viewerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) PostComment(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req struct {
		TargetKind string `json:"targetKind" validate:"required,oneof=event image"`
		TargetID   string `json:"targetId" validate:"required"`
		Content    string `json:"content" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid comment data", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.Post(r.Context(), req.TargetKind, req.TargetID, req.Content, user)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) EditComment(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	commentID := mux.Vars(r)["id"]

	var req struct {
		Content string `json:"content" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Content is required", http.StatusBadRequest)
		return
	}

	if err := h.CommentService.Edit(r.Context(), commentID, req.Content, user); err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "updated"}, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	commentID := mux.Vars(r)["id"]

	if err := h.CommentService.Delete(r.Context(), commentID, user); err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, http.StatusOK)
}

func (h *Handlers) LikeComment(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	commentID := mux.Vars(r)["id"]

	if err := h.CommentService.Like(r.Context(), commentID, user.UserID); err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "liked"}, http.StatusOK)
}

func (h *Handlers) UnlikeComment(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	commentID := mux.Vars(r)["id"]

	if err := h.CommentService.Unlike(r.Context(), commentID, user.UserID); err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "unliked"}, http.StatusOK)
}
