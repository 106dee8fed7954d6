package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Mirap9615/owowclub-sub000/internal/config"
	"github.com/Mirap9615/owowclub-sub000/internal/mailer"
	"github.com/Mirap9615/owowclub-sub000/internal/models"
	"github.com/Mirap9615/owowclub-sub000/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, sessionToken string) error
	UserFromSessionToken(ctx context.Context, sessionToken string) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	mail        mailer.Mailer
	cfg         *config.Config
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, mail mailer.Mailer, cfg *config.Config) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		mail:        mail,
		cfg:         cfg,
	}
}

func (s *authService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	user := &models.User{
		Email:          email,
		Name:           name,
		MembershipType: models.TypeStandard,
	}

	if err := s.userRepo.CreateUser(ctx, user, password); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the password and issues a server-side session. The returned
// token is a signed cookie value carrying only the session id.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	session, err := s.sessionRepo.Create(ctx, user.UserID, s.cfg.SessionDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.signSessionToken(session)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) Logout(ctx context.Context, sessionToken string) error {
	sessionID, err := s.parseSessionToken(sessionToken)
	if err != nil {
		// nothing to destroy for an unparseable cookie
		return nil
	}

	return s.sessionRepo.Delete(ctx, sessionID)
}

// UserFromSessionToken resolves the cookie to the session row and then to
// the user. Expired or deleted sessions fail with ErrInvalidCredentials.
func (s *authService) UserFromSessionToken(ctx context.Context, sessionToken string) (*models.User, error) {
	sessionID, err := s.parseSessionToken(sessionToken)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

// ForgotPassword never reveals whether the email exists: unknown addresses
// are logged and reported as success.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Printf("password reset requested for unknown email %s", email)
			return nil
		}
		return err
	}

	token, err := newToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.cfg.ResetTokenDuration)
	if err := s.userRepo.SetResetToken(ctx, user.UserID, token, expiresAt); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.BaseURL, token)
	subject, body := mailer.PasswordReset(resetLink)
	if err := s.mail.Send(user.Email, subject, body); err != nil {
		log.Printf("failed to send password reset email to %s: %v", user.Email, err)
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	return s.userRepo.ResetPassword(ctx, token, password)
}

func (s *authService) signSessionToken(session *models.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": session.SessionID,
		"exp": session.ExpiresAt.Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

func (s *authService) parseSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid session token")
	}

	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("session token has no session id")
	}

	return sessionID, nil
}
