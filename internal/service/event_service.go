package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Mirap9615/owowclub-sub000/internal/config"
	"github.com/Mirap9615/owowclub-sub000/internal/mailer"
	"github.com/Mirap9615/owowclub-sub000/internal/models"
	"github.com/Mirap9615/owowclub-sub000/internal/repository"
)

// maxSlugAttempts bounds the suffix retry loop on slug collisions.
const maxSlugAttempts = 50

type CreateEventRequest struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	IsPhysical  bool
	Location    string
	VirtualLink string
	EventType   string
	Exclusivity string
	Color       string
	ImageURL    string
}

type UpdateEventRequest struct {
	EventID     string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	IsPhysical  bool
	Location    string
	VirtualLink string
	EventType   string
	Exclusivity string
	Color       string
	ImageURL    string
}

// InviteResult is the per-recipient outcome of a bulk invite; one failed
// recipient never aborts the rest.
type InviteResult struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Outcome string `json:"outcome"`
}

type EventService interface {
	Create(ctx context.Context, req CreateEventRequest, owner *models.User) (*models.Event, error)
	Update(ctx context.Context, req UpdateEventRequest) (*models.Event, error)
	Delete(ctx context.Context, eventID string) error
	List(ctx context.Context) ([]models.Event, error)
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
	Join(ctx context.Context, eventID string, user *models.User) error
	Leave(ctx context.Context, eventID, userID string) error
	InviteUsers(ctx context.Context, eventID string, userIDs []string) ([]InviteResult, error)
	RedeemInvite(ctx context.Context, token string) (*models.Event, error)
}

type eventService struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	mail      mailer.Mailer
	cfg       *config.Config
}

func NewEventService(eventRepo repository.EventRepository, userRepo repository.UserRepository, mail mailer.Mailer, cfg *config.Config) EventService {
	return &eventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		mail:      mail,
		cfg:       cfg,
	}
}

// Create inserts the event with the owner as first participant. Slug
// uniqueness is enforced by the database; on a collision the insert is
// retried with -1, -2, … appended.
func (s *eventService) Create(ctx context.Context, req CreateEventRequest, owner *models.User) (*models.Event, error) {
	if owner.MembershipType == models.TypeStandard {
		return nil, models.ErrForbidden
	}

	event := &models.Event{
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
		CreatedBy:   owner.UserID,
	}

	base := Slugify(req.Title)
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		event.Slug = slugWithSuffix(base, attempt)

		err := s.eventRepo.Create(ctx, event)
		if err == nil {
			return event, nil
		}
		if !errors.Is(err, repository.ErrSlugTaken) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("could not find a free slug for %q", req.Title)
}

// Update regenerates the slug only when the title changed; the stored slug
// is otherwise preserved.
func (s *eventService) Update(ctx context.Context, req UpdateEventRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	titleChanged := req.Title != event.Title

	event.Title = req.Title
	event.Description = req.Description
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.IsPhysical = req.IsPhysical
	event.Location = req.Location
	event.VirtualLink = req.VirtualLink
	event.EventType = req.EventType
	event.Exclusivity = req.Exclusivity
	event.Color = req.Color
	event.ImageURL = req.ImageURL

	if !titleChanged {
		if err := s.eventRepo.Update(ctx, event); err != nil {
			return nil, err
		}
		return event, nil
	}

	base := Slugify(req.Title)
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		event.Slug = slugWithSuffix(base, attempt)

		err := s.eventRepo.Update(ctx, event)
		if err == nil {
			return event, nil
		}
		if !errors.Is(err, repository.ErrSlugTaken) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("could not find a free slug for %q", req.Title)
}

func (s *eventService) Delete(ctx context.Context, eventID string) error {
	return s.eventRepo.Delete(ctx, eventID)
}

func (s *eventService) List(ctx context.Context) ([]models.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range events {
		participants, err := s.eventRepo.GetParticipants(ctx, events[i].EventID)
		if err != nil {
			return nil, err
		}
		events[i].Participants = participants
	}

	return events, nil
}

func (s *eventService) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	participants, err := s.eventRepo.GetParticipants(ctx, event.EventID)
	if err != nil {
		return nil, err
	}
	event.Participants = participants

	return event, nil
}

func (s *eventService) Join(ctx context.Context, eventID string, user *models.User) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	if err := s.eventRepo.Join(ctx, eventID, user.UserID); err != nil {
		return err
	}

	subject, body := mailer.EventJoined(event.Title)
	if err := s.mail.Send(user.Email, subject, body); err != nil {
		log.Printf("failed to send join confirmation to %s: %v", user.Email, err)
	}

	return nil
}

func (s *eventService) Leave(ctx context.Context, eventID, userID string) error {
	return s.eventRepo.Leave(ctx, eventID, userID)
}

// InviteUsers mints a fresh token per recipient (re-invites reset the pair
// back to pending) and emails each one best-effort.
func (s *eventService) InviteUsers(ctx context.Context, eventID string, userIDs []string) ([]InviteResult, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	results := make([]InviteResult, 0, len(users))
	for _, user := range users {
		result := InviteResult{UserID: user.UserID, Email: user.Email, Outcome: "sent"}

		token, err := newToken()
		if err != nil {
			result.Outcome = err.Error()
			results = append(results, result)
			continue
		}

		invite := &models.EventInvite{
			EventID:   eventID,
			UserID:    user.UserID,
			Token:     token,
			ExpiresAt: time.Now().Add(s.cfg.InviteDuration),
		}

		if err := s.eventRepo.UpsertInvite(ctx, invite); err != nil {
			log.Printf("failed to record invite for %s: %v", user.Email, err)
			result.Outcome = "failed to record invite"
			results = append(results, result)
			continue
		}

		inviteLink := fmt.Sprintf("%s/api/events/invite/%s", s.cfg.BaseURL, token)
		subject, body := mailer.EventInvite(event.Title, inviteLink)
		if err := s.mail.Send(user.Email, subject, body); err != nil {
			log.Printf("failed to send invite to %s: %v", user.Email, err)
			result.Outcome = "failed to send email"
		}

		results = append(results, result)
	}

	return results, nil
}

// RedeemInvite accepts a pending, unexpired invite and joins the invitee.
// The participation insert is idempotent; the status guard makes a second
// redemption fail.
func (s *eventService) RedeemInvite(ctx context.Context, token string) (*models.Event, error) {
	invite, err := s.eventRepo.GetInviteByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if invite.Status != models.InviteStatusPending || time.Now().After(invite.ExpiresAt) {
		return nil, models.ErrInviteInvalid
	}

	if err := s.eventRepo.AcceptInvite(ctx, invite.InviteID); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Join(ctx, invite.EventID, invite.UserID); err != nil {
		return nil, err
	}

	return s.eventRepo.GetByID(ctx, invite.EventID)
}
