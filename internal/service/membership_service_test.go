package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Mirap9615/owowclub-sub000/internal/config"
	"github.com/Mirap9615/owowclub-sub000/internal/models"
)

func newMembershipService(appRepo *MockApplicationRepository, userRepo *MockUserRepository, mail *MockMailer) MembershipService {
	cfg := &config.Config{BaseURL: "http://localhost:8080"}
	return NewMembershipService(appRepo, userRepo, mail, cfg)
}

func TestMembershipService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("travel host applications carry their property", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		mail := new(MockMailer)
		svc := newMembershipService(appRepo, new(MockUserRepository), mail)

		property := &models.PendingProperty{Address: "12 Shore Rd", PropertyType: "cottage"}
		appRepo.On("Create", ctx, mock.AnythingOfType("*models.MembershipApplication"), property).
			Return(nil).Once()
		mail.On("Send", "host@example.com", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := svc.Submit(ctx, SubmitApplicationRequest{
			FirstName:      "Ana",
			Email:          "host@example.com",
			MembershipType: models.TypeTravelHost,
			Property:       property,
		})

		require.NoError(t, err)
		appRepo.AssertExpectations(t)
	})

	t.Run("non-host applications never get a property row", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		mail := new(MockMailer)
		svc := newMembershipService(appRepo, new(MockUserRepository), mail)

		appRepo.On("Create", ctx, mock.AnythingOfType("*models.MembershipApplication"),
			(*models.PendingProperty)(nil)).Return(nil).Once()
		mail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		_, err := svc.Submit(ctx, SubmitApplicationRequest{
			FirstName:      "Bo",
			Email:          "bo@example.com",
			MembershipType: models.TypeStandard,
		})

		require.NoError(t, err)
		appRepo.AssertExpectations(t)
	})

	t.Run("duplicate email propagates the conflict", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		svc := newMembershipService(appRepo, new(MockUserRepository), new(MockMailer))

		appRepo.On("Create", ctx, mock.Anything, mock.Anything).
			Return(models.ErrDuplicateApplication).Once()

		_, err := svc.Submit(ctx, SubmitApplicationRequest{Email: "dup@example.com"})

		assert.ErrorIs(t, err, models.ErrDuplicateApplication)
	})

	t.Run("acknowledgment email failure does not fail the submission", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		mail := new(MockMailer)
		svc := newMembershipService(appRepo, new(MockUserRepository), mail)

		appRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil).Once()
		mail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

		_, err := svc.Submit(ctx, SubmitApplicationRequest{Email: "quiet@example.com"})

		assert.NoError(t, err)
	})
}

func TestMembershipService_Transition(t *testing.T) {
	ctx := context.Background()

	pendingApp := func() *models.MembershipApplication {
		return &models.MembershipApplication{
			ApplicationID:  "a1",
			FirstName:      "Ana",
			Email:          "ana@example.com",
			MembershipType: models.TypeTravelHost,
		}
	}

	t.Run("accept provisions a shell user before marking the application", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		userRepo := new(MockUserRepository)
		mail := new(MockMailer)
		svc := newMembershipService(appRepo, userRepo, mail)

		appRepo.On("GetByID", ctx, "a1").Return(pendingApp(), nil).Once()

		var token string
		userRepo.On("CreateShellUser", ctx, "ana@example.com", mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { token = args.String(2) }).
			Return(&models.User{UserID: "u1", Email: "ana@example.com"}, nil).Once()
		appRepo.On("SetStatus", ctx, "a1", true).Return(nil).Once()
		mail.On("Send", "ana@example.com", mock.Anything, mock.MatchedBy(func(body string) bool {
			return token != "" && strings.Contains(body, token)
		})).Return(nil).Once()

		err := svc.Transition(ctx, "a1", true)

		require.NoError(t, err)
		assert.Len(t, token, 64, "registration token is 32 random bytes hex-encoded")
		appRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
		mail.AssertExpectations(t)
	})

	t.Run("accept with an already registered email is a conflict", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		userRepo := new(MockUserRepository)
		svc := newMembershipService(appRepo, userRepo, new(MockMailer))

		appRepo.On("GetByID", ctx, "a1").Return(pendingApp(), nil).Once()
		userRepo.On("CreateShellUser", ctx, "ana@example.com", mock.Anything).
			Return(nil, models.ErrEmailTaken).Once()

		err := svc.Transition(ctx, "a1", true)

		assert.ErrorIs(t, err, models.ErrEmailTaken)
		appRepo.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("acceptance email failure does not undo the transition", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		userRepo := new(MockUserRepository)
		mail := new(MockMailer)
		svc := newMembershipService(appRepo, userRepo, mail)

		appRepo.On("GetByID", ctx, "a1").Return(pendingApp(), nil).Once()
		userRepo.On("CreateShellUser", ctx, "ana@example.com", mock.Anything).
			Return(&models.User{UserID: "u1"}, nil).Once()
		appRepo.On("SetStatus", ctx, "a1", true).Return(nil).Once()
		mail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

		err := svc.Transition(ctx, "a1", true)

		assert.NoError(t, err)
	})

	t.Run("reject removes pending properties and never touches users", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		userRepo := new(MockUserRepository)
		mail := new(MockMailer)
		svc := newMembershipService(appRepo, userRepo, mail)

		appRepo.On("GetByID", ctx, "a1").Return(pendingApp(), nil).Once()
		appRepo.On("SetStatus", ctx, "a1", false).Return(nil).Once()
		appRepo.On("DeleteProperties", ctx, "a1").Return(nil).Once()
		mail.On("Send", "ana@example.com", mock.Anything, mock.Anything).Return(nil).Once()

		err := svc.Transition(ctx, "a1", false)

		require.NoError(t, err)
		userRepo.AssertNotCalled(t, "CreateShellUser", mock.Anything, mock.Anything, mock.Anything)
		appRepo.AssertExpectations(t)
	})

	t.Run("unknown application fails", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		svc := newMembershipService(appRepo, new(MockUserRepository), new(MockMailer))

		appRepo.On("GetByID", ctx, "missing").Return(nil, models.ErrNotFound).Once()

		err := svc.Transition(ctx, "missing", true)

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestMembershipService_RedeemRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("empty membership type defaults to Standard", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newMembershipService(new(MockApplicationRepository), userRepo, new(MockMailer))

		user := &models.User{UserID: "u1", MembershipType: models.TypeStandard}
		userRepo.On("RedeemRegistrationToken", ctx, "tok", "hunter22", "Ana", models.TypeStandard).
			Return(user, nil).Once()

		got, err := svc.RedeemRegistration(ctx, "tok", "hunter22", "Ana", "")

		require.NoError(t, err)
		assert.Equal(t, "u1", got.UserID)
		userRepo.AssertExpectations(t)
	})

	t.Run("spent token fails", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newMembershipService(new(MockApplicationRepository), userRepo, new(MockMailer))

		userRepo.On("RedeemRegistrationToken", ctx, "spent", "hunter22", "Ana", models.TypeStandard).
			Return(nil, models.ErrInvalidToken).Once()

		_, err := svc.RedeemRegistration(ctx, "spent", "hunter22", "Ana", models.TypeStandard)

		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})
}

func TestMembershipService_TokenUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		tok, err := newToken()
		require.NoError(t, err)
		require.False(t, seen[tok], "token %q minted twice", tok)
		seen[tok] = true
	}
}
