package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Mirap9615/owowclub-sub000/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	CreateShellUser(ctx context.Context, email, registrationToken string) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByRegistrationToken(ctx context.Context, token string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	RedeemRegistrationToken(ctx context.Context, token, password, name, membershipType string) (*models.User, error)
	SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	ResetPassword(ctx context.Context, token, password string) error
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUsersByType(ctx context.Context, membershipType string) ([]models.User, error)
	ListAdmins(ctx context.Context) ([]models.User, error)
	ListUsersByIDs(ctx context.Context, userIDs []string) ([]models.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, userID string, ttl time.Duration) (*models.Session, error)
	GetByID(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.MembershipApplication, property *models.PendingProperty) error
	GetByID(ctx context.Context, applicationID string) (*models.MembershipApplication, error)
	List(ctx context.Context) ([]models.MembershipApplication, error)
	SetStatus(ctx context.Context, applicationID string, accepted bool) error
	DeleteProperties(ctx context.Context, applicationID string) error
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, eventID string) (*models.Event, error)
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, eventID string) error
	GetParticipants(ctx context.Context, eventID string) ([]models.Participant, error)
	Join(ctx context.Context, eventID, userID string) error
	Leave(ctx context.Context, eventID, userID string) error
	UpsertInvite(ctx context.Context, invite *models.EventInvite) error
	GetInviteByToken(ctx context.Context, token string) (*models.EventInvite, error)
	AcceptInvite(ctx context.Context, inviteID string) error
}

type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByID(ctx context.Context, mediaID string) (*models.Media, error)
	List(ctx context.Context, eventID, userID string) ([]models.Media, error)
	Update(ctx context.Context, media *models.Media) error
	Delete(ctx context.Context, mediaID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	ListByTarget(ctx context.Context, targetKind, targetID, viewerID string) ([]models.Comment, error)
	Update(ctx context.Context, commentID, content string) error
	Delete(ctx context.Context, commentID string) error
	Like(ctx context.Context, commentID, userID string) error
	Unlike(ctx context.Context, commentID, userID string) error
}

type Repository struct {
	User        UserRepository
	Session     SessionRepository
	Application ApplicationRepository
	Event       EventRepository
	Media       MediaRepository
	Comment     CommentRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:        NewUserRepository(db),
		Session:     NewSessionRepository(db),
		Application: NewApplicationRepository(db),
		Event:       NewEventRepository(db),
		Media:       NewMediaRepository(db),
		Comment:     NewCommentRepository(db),
	}
}
