package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Mirap9615/owowclub-sub000/internal/config"
	"github.com/Mirap9615/owowclub-sub000/internal/mailer"
	"github.com/Mirap9615/owowclub-sub000/internal/models"
	"github.com/Mirap9615/owowclub-sub000/internal/repository"
)

// Bulk email recipient groups.
const (
	GroupAll    = "all"
	GroupByType = "type"
	GroupAdmins = "admins"
	GroupCustom = "custom"
	GroupTest   = "test"
)

type BulkEmailRequest struct {
	Group          string
	MembershipType string
	UserIDs        []string
	Subject        string
	Message        string
}

// SendResult is the per-recipient outcome of a bulk send.
type SendResult struct {
	Recipient string `json:"recipient"`
	Outcome   string `json:"outcome"`
}

type EmailService interface {
	SendBulk(ctx context.Context, req BulkEmailRequest) ([]SendResult, error)
}

type emailService struct {
	userRepo repository.UserRepository
	mail     mailer.Mailer
	cfg      *config.Config
}

func NewEmailService(userRepo repository.UserRepository, mail mailer.Mailer, cfg *config.Config) EmailService {
	return &emailService{
		userRepo: userRepo,
		mail:     mail,
		cfg:      cfg,
	}
}

// SendBulk resolves the recipient group and sends sequentially. A failure
// for one recipient is recorded and the rest still go out.
func (s *emailService) SendBulk(ctx context.Context, req BulkEmailRequest) ([]SendResult, error) {
	recipients, err := s.resolveRecipients(ctx, req)
	if err != nil {
		return nil, err
	}

	subject, body := mailer.Announcement(req.Subject, req.Message)

	results := make([]SendResult, 0, len(recipients))
	for _, recipient := range recipients {
		result := SendResult{Recipient: recipient, Outcome: "sent"}

		if err := s.mail.Send(recipient, subject, body); err != nil {
			log.Printf("bulk email to %s failed: %v", recipient, err)
			result.Outcome = "failed"
		}

		results = append(results, result)
	}

	return results, nil
}

func (s *emailService) resolveRecipients(ctx context.Context, req BulkEmailRequest) ([]string, error) {
	var users []models.User
	var err error

	switch req.Group {
	case GroupAll:
		users, err = s.userRepo.ListUsers(ctx)
	case GroupByType:
		users, err = s.userRepo.ListUsersByType(ctx, req.MembershipType)
	case GroupAdmins:
		users, err = s.userRepo.ListAdmins(ctx)
	case GroupCustom:
		users, err = s.userRepo.ListUsersByIDs(ctx, req.UserIDs)
	case GroupTest:
		return s.cfg.SMTP.TestRecipients, nil
	default:
		return nil, fmt.Errorf("unknown recipient group %q", req.Group)
	}

	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(users))
	for _, user := range users {
		emails = append(emails, user.Email)
	}

	return emails, nil
}
