package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Mirap9615/owowclub-sub000/internal/models"
	"github.com/Mirap9615/owowclub-sub000/internal/service"
)

type SubmitApplicationBody struct {
	FirstName      string   `json:"firstName" validate:"required"`
	LastName       string   `json:"lastName" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          string   `json:"phone"`
	Reason         string   `json:"reason"`
	Referral       string   `json:"referral"`
	Comments       string   `json:"comments"`
	Interests      []string `json:"interests"`
	MembershipType string   `json:"membershipType" validate:"required,oneof=Founding Standard 'Travel Host'"`

	// property fields, required only for Travel Host applicants
	Address              string `json:"address"`
	PropertyType         string `json:"propertyType"`
	PropertyDescription  string `json:"propertyDescription"`
	PropertyAvailability string `json:"propertyAvailability"`
}

// SubmitApplication handles POST /request.
func (h *Handlers) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req SubmitApplicationBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid application data", http.StatusBadRequest)
		return
	}

	serviceReq := service.SubmitApplicationRequest{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Reason:         req.Reason,
		Referral:       req.Referral,
		Comments:       req.Comments,
		Interests:      req.Interests,
		MembershipType: req.MembershipType,
	}

	if req.MembershipType == models.TypeTravelHost {
		if req.Address == "" {
			WriteError(w, "Travel Host applications require a property address", http.StatusBadRequest)
			return
		}
		serviceReq.Property = &models.PendingProperty{
			Address:      req.Address,
			PropertyType: req.PropertyType,
			Description:  req.PropertyDescription,
			Availability: req.PropertyAvailability,
		}
	}

	app, err := h.MembershipService.Submit(r.Context(), serviceReq)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, app, http.StatusCreated)
}

// ListApplications is admin-only.
func (h *Handlers) ListApplications(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	apps, err := h.MembershipService.ListApplications(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, apps, http.StatusOK)
}

// UpdateApplicationStatus handles PATCH /api/applications/{id}/status.
func (h *Handlers) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	applicationID := mux.Vars(r)["id"]

	var req struct {
		Accepted *bool `json:"accepted"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Accepted == nil {
		WriteError(w, "Field 'accepted' is required", http.StatusBadRequest)
		return
	}

	if err := h.MembershipService.Transition(r.Context(), applicationID, *req.Accepted); err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "updated"}, http.StatusOK)
}

// requireAdmin writes the error response itself and reports whether the
// caller may proceed.
func (h *Handlers) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return false
	}
	if !user.IsAdmin {
		WriteError(w, "Admin access required", http.StatusForbidden)
		return false
	}
	return true
}
