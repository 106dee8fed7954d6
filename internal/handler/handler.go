package handlers

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Mirap9615/owowclub-sub000/internal/config"
	"github.com/Mirap9615/owowclub-sub000/internal/models"
	"github.com/Mirap9615/owowclub-sub000/internal/repository"
	"github.com/Mirap9615/owowclub-sub000/internal/service"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "owow_session"

type contextKey string

const userContextKey contextKey = "user"

// ContextWithUser attaches the authenticated user; the auth middleware
// calls this for every request with a valid session.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

type Handlers struct {
	AuthService       service.AuthService
	MembershipService service.MembershipService
	EventService      service.EventService
	MediaService      service.MediaService
	CommentService    service.CommentService
	EmailService      service.EmailService
	UserRepo          repository.UserRepository
	Cfg               *config.Config
	Validate          *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:       service.Auth,
		MembershipService: service.Membership,
		EventService:      service.Event,
		MediaService:      service.Media,
		CommentService:    service.Comment,
		EmailService:      service.Email,
		UserRepo:          repo.User,
		Cfg:               config,
		Validate:          validator.New(),
	}
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"service": "owowclub"}, http.StatusOK)
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
