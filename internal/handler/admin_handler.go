package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Mirap9615/owowclub-sub000/internal/service"
)

type BulkEmailBody struct {
	Group          string   `json:"group" validate:"required,oneof=all type admins custom test"`
	MembershipType string   `json:"membershipType"`
	UserIDs        []string `json:"userIds"`
	Subject        string   `json:"subject" validate:"required"`
	Message        string   `json:"message" validate:"required"`
}

// BulkEmail fans an announcement out to a resolved recipient group. The
// response always reports per-recipient outcomes, never a flat failure.
func (h *Handlers) BulkEmail(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req BulkEmailBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid bulk email data", http.StatusBadRequest)
		return
	}

	results, err := h.EmailService.SendBulk(r.Context(), service.BulkEmailRequest{
		Group:          req.Group,
		MembershipType: req.MembershipType,
		UserIDs:        req.UserIDs,
		Subject:        req.Subject,
		Message:        req.Message,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{"results": results}, http.StatusOK)
}
