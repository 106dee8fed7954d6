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

type SubmitApplicationRequest struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Reason         string
	Referral       string
	Comments       string
	Interests      []string
	MembershipType string
	Property       *models.PendingProperty
}

type MembershipService interface {
	Submit(ctx context.Context, req SubmitApplicationRequest) (*models.MembershipApplication, error)
	Transition(ctx context.Context, applicationID string, accepted bool) error
	RedeemRegistration(ctx context.Context, token, password, name, membershipType string) (*models.User, error)
	ValidateRegistrationToken(ctx context.Context, token string) (*models.User, error)
	ListApplications(ctx context.Context) ([]models.MembershipApplication, error)
}

type membershipService struct {
	appRepo  repository.ApplicationRepository
	userRepo repository.UserRepository
	mail     mailer.Mailer
	cfg      *config.Config
}

func NewMembershipService(appRepo repository.ApplicationRepository, userRepo repository.UserRepository, mail mailer.Mailer, cfg *config.Config) MembershipService {
	return &membershipService{
		appRepo:  appRepo,
		userRepo: userRepo,
		mail:     mail,
		cfg:      cfg,
	}
}

// Submit records a pending application. Travel Host applications carry a
// property, inserted atomically with the application row. The acknowledgment
// email is best-effort.
func (s *membershipService) Submit(ctx context.Context, req SubmitApplicationRequest) (*models.MembershipApplication, error) {
	app := &models.MembershipApplication{
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

	var property *models.PendingProperty
	if req.MembershipType == models.TypeTravelHost {
		property = req.Property
		if property == nil {
			property = &models.PendingProperty{}
		}
	}

	if err := s.appRepo.Create(ctx, app, property); err != nil {
		return nil, err
	}

	subject, body := mailer.ApplicationReceived(app.FirstName)
	if err := s.mail.Send(app.Email, subject, body); err != nil {
		log.Printf("failed to send application acknowledgment to %s: %v", app.Email, err)
	}

	return app, nil
}

// Transition accepts or rejects a pending application. The state change and
// its database side effects are recorded before any email goes out; a failed
// send is logged, never rolled back.
func (s *membershipService) Transition(ctx context.Context, applicationID string, accepted bool) error {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}

	if !accepted {
		if err := s.appRepo.SetStatus(ctx, applicationID, false); err != nil {
			return err
		}

		if err := s.appRepo.DeleteProperties(ctx, applicationID); err != nil {
			return err
		}

		subject, body := mailer.ApplicationRejected(app.FirstName)
		if err := s.mail.Send(app.Email, subject, body); err != nil {
			log.Printf("failed to send rejection email to %s: %v", app.Email, err)
		}

		return nil
	}

	token, err := newToken()
	if err != nil {
		return err
	}

	// an existing account with this email must not be overwritten
	if _, err := s.userRepo.CreateShellUser(ctx, app.Email, token); err != nil {
		return err
	}

	if err := s.appRepo.SetStatus(ctx, applicationID, true); err != nil {
		return err
	}

	registrationLink := fmt.Sprintf("%s/register?token=%s", s.cfg.BaseURL, token)
	subject, body := mailer.ApplicationAccepted(registrationLink)
	if err := s.mail.Send(app.Email, subject, body); err != nil {
		log.Printf("failed to send acceptance email to %s: %v", app.Email, err)
	}

	return nil
}

func (s *membershipService) RedeemRegistration(ctx context.Context, token, password, name, membershipType string) (*models.User, error) {
	if membershipType == "" {
		membershipType = models.TypeStandard
	}

	return s.userRepo.RedeemRegistrationToken(ctx, token, password, name, membershipType)
}

func (s *membershipService) ValidateRegistrationToken(ctx context.Context, token string) (*models.User, error) {
	return s.userRepo.GetUserByRegistrationToken(ctx, token)
}

func (s *membershipService) ListApplications(ctx context.Context) ([]models.MembershipApplication, error) {
	return s.appRepo.List(ctx)
}
