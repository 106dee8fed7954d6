package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Mirap9615/owowclub-sub000/internal/service"
)

type EventBody struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	IsPhysical  bool      `json:"isPhysical"`
	Location    string    `json:"location"`
	VirtualLink string    `json:"virtualLink"`
	EventType   string    `json:"eventType"`
	Exclusivity string    `json:"exclusivity"`
	Color       string    `json:"color"`
	ImageURL    string    `json:"imageUrl"`
}

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.EventService.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, events, http.StatusOK)
}

func (h *Handlers) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	event, err := h.EventService.GetBySlug(r.Context(), slug)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, event, http.StatusOK)
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req EventBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid event data", http.StatusBadRequest)
		return
	}

	event, err := h.EventService.Create(r.Context(), service.CreateEventRequest{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsPhysical:  req.IsPhysical,
		Location:    req.Location,
		VirtualLink: req.VirtualLink,
		EventType:   req.EventType,
		Exclusivity: req.Exclusivity,
		Color:       req.Color,
		ImageURL:    req.ImageURL,
	}, user)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, event, http.StatusCreated)
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["id"]

	var req EventBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid event data", http.StatusBadRequest)
		return
	}

	event, err := h.EventService.Update(r.Context(), service.UpdateEventRequest{
		EventID:     eventID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsPhysical:  req.IsPhysical,
		Location:    req.Location,
		VirtualLink: req.VirtualLink,
		EventType:   req.EventType,
		Exclusivity: req.Exclusivity,
		Color:       req.Color,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, event, http.StatusOK)
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["id"]

	if err := h.EventService.Delete(r.Context(), eventID); err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, http.StatusOK)
}

func (h *Handlers) JoinEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	eventID := mux.Vars(r)["id"]

	if err := h.EventService.Join(r.Context(), eventID, user); err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "joined"}, http.StatusOK)
}

func (h *Handlers) LeaveEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	eventID := mux.Vars(r)["id"]

	if err := h.EventService.Leave(r.Context(), eventID, user.UserID); err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "left"}, http.StatusOK)
}

// InviteUsers handles POST /api/events/invite.
func (h *Handlers) InviteUsers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EventID string   `json:"eventId" validate:"required"`
		UserIDs []string `json:"userIds" validate:"required,min=1"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid invite data", http.StatusBadRequest)
		return
	}

	results, err := h.EventService.InviteUsers(r.Context(), req.EventID, req.UserIDs)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{"results": results}, http.StatusOK)
}

// RedeemInvite handles the emailed invite link and returns the event for
// the client-side redirect.
func (h *Handlers) RedeemInvite(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	event, err := h.EventService.RedeemInvite(r.Context(), token)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, event, http.StatusOK)
}
