package service

import (
	"github.com/Mirap9615/owowclub-sub000/internal/config"
	"github.com/Mirap9615/owowclub-sub000/internal/mailer"
	"github.com/Mirap9615/owowclub-sub000/internal/repository"
	"github.com/Mirap9615/owowclub-sub000/internal/storage"
)

type Service struct {
	Auth       AuthService
	Membership MembershipService
	Event      EventService
	Media      MediaService
	Comment    CommentService
	Email      EmailService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, mail mailer.Mailer) *Service {
	return &Service{
		Auth:       NewAuthService(rep.User, rep.Session, mail, cfg),
		Membership: NewMembershipService(rep.Application, rep.User, mail, cfg),
		Event:      NewEventService(rep.Event, rep.User, mail, cfg),
		Media:      NewMediaService(rep.Media, storage),
		Comment:    NewCommentService(rep.Comment),
		Email:      NewEmailService(rep.User, mail, cfg),
	}
}
