package handlers

import (
	"net/http"

	"github.com/Mirap9615/owowclub-sub000/internal/models"
)

func userResponse(user *models.User) UserResponse {
	return UserResponse{
		UserID:         user.UserID,
		Email:          user.Email,
		Name:           user.Name,
		MembershipType: user.MembershipType,
		IsAdmin:        user.IsAdmin,
	}
}

// ListUsers backs the member directory used when inviting to events.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserRepo.ListUsers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for i := range users {
		response = append(response, userResponse(&users[i]))
	}

	WriteSuccess(w, response, http.StatusOK)
}
