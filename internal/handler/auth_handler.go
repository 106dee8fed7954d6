package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=30"`
	Name     string `json:"name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	UserID         string `json:"userId"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	MembershipType string `json:"membershipType"`
	IsAdmin        bool   `json:"isAdmin"`
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.Cfg.SessionDuration),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// Register handles direct self-registration.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid registration data", http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// log the new user straight in
	_, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.setSessionCookie(w, token)

	WriteSuccess(w, userResponse(user), http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid login data", http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	WriteSuccess(w, userResponse(user), http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.AuthService.Logout(r.Context(), cookie.Value); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	clearSessionCookie(w)
	WriteSuccess(w, map[string]string{"status": "logged out"}, http.StatusOK)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	WriteSuccess(w, userResponse(user), http.StatusOK)
}

func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid email", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.ForgotPassword(r.Context(), req.Email); err != nil {
		writeDomainError(w, err)
		return
	}

	// same response whether or not the account exists
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=6,max=30"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid reset data", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "password updated"}, http.StatusOK)
}

// ValidateRegistrationToken prechecks the emailed registration link.
func (h *Handlers) ValidateRegistrationToken(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	user, err := h.MembershipService.ValidateRegistrationToken(r.Context(), token)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"email": user.Email}, http.StatusOK)
}

// ValidateCode is the registration-page precheck; the body carries the code.
func (h *Handlers) ValidateCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Code is required", http.StatusBadRequest)
		return
	}

	user, err := h.MembershipService.ValidateRegistrationToken(r.Context(), req.Code)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"email": user.Email}, http.StatusOK)
}

// RedeemRegistration completes account setup for a provisioned member.
func (h *Handlers) RedeemRegistration(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token          string `json:"token" validate:"required"`
		Password       string `json:"password" validate:"required,min=6,max=30"`
		Name           string `json:"name" validate:"required"`
		MembershipType string `json:"membershipType" validate:"omitempty,oneof=Founding Standard 'Travel Host'"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid registration data", http.StatusBadRequest)
		return
	}

	user, err := h.MembershipService.RedeemRegistration(r.Context(), req.Token, req.Password, req.Name, req.MembershipType)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteSuccess(w, userResponse(user), http.StatusOK)
}
