package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"cro-sprint-backend/internal/domain"
	"cro-sprint-backend/internal/logger"
	"cro-sprint-backend/internal/repository"
	"cro-sprint-backend/internal/security"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthOptions is the sign-up and sign-in policy
type AuthOptions struct {
	RequireEmailConfirmation bool
	ConfirmURLBase           string
	MinPasswordLength        int
}

var errSendConfirmation = &Error{Code: "email_send_failed", Message: "Error sending confirmation email"}

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	email    EmailService
	opts     AuthOptions
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, email EmailService, opts AuthOptions) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		email:    email,
		opts:     opts,
		now:      time.Now,
	}
}

func (s *authService) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, unexpected(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if s.opts.RequireEmailConfirmation && !user.Confirmed() {
		return nil, ErrEmailNotConfirmed
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, unexpected(err)
	}

	logger.Info("User signed in", "user_id", user.ID)
	return &domain.Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// maxPasswordBytes is the longest input bcrypt accepts
const maxPasswordBytes = 72

// SignUp registers a new user. Repeating the sign-up of an address that is
// still unconfirmed rotates its confirmation token and sends the email
// again; the stored password and name are kept.
func (s *authService) SignUp(ctx context.Context, email, password string, opts domain.SignUpOptions) (*domain.User, error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < s.opts.MinPasswordLength {
		return nil, withMessage(ErrWeakPassword, fmt.Sprintf("Password should be at least %d characters.", s.opts.MinPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		return nil, withMessage(ErrWeakPassword, fmt.Sprintf("Password cannot be longer than %d characters.", maxPasswordBytes))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, unexpected(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(opts.Data.FullName),
	}
	if s.opts.RequireEmailConfirmation {
		user.ConfirmationToken = uuid.New().String()
	} else {
		now := s.now()
		user.ConfirmedAt = &now
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return s.resendConfirmation(ctx, email)
		}
		return nil, unexpected(err)
	}

	if s.opts.RequireEmailConfirmation {
		if err := s.sendConfirmation(ctx, user); err != nil {
			return nil, err
		}
	}

	logger.Info("User signed up", "user_id", user.ID, "confirmation_required", s.opts.RequireEmailConfirmation)
	return user, nil
}

// resendConfirmation handles a sign-up for an address that already exists
func (s *authService) resendConfirmation(ctx context.Context, email string) (*domain.User, error) {
	if !s.opts.RequireEmailConfirmation {
		return nil, ErrUserAlreadyRegistered
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserAlreadyRegistered
		}
		return nil, unexpected(err)
	}
	if existing.Confirmed() {
		return nil, ErrUserAlreadyRegistered
	}

	token := uuid.New().String()
	if err := s.userRepo.SetConfirmationToken(ctx, existing.ID, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// confirmed in the meantime
			return nil, ErrUserAlreadyRegistered
		}
		return nil, unexpected(err)
	}
	existing.ConfirmationToken = token

	if err := s.sendConfirmation(ctx, existing); err != nil {
		return nil, err
	}
	logger.Info("Resent signup confirmation", "user_id", existing.ID)
	return existing, nil
}

func (s *authService) sendConfirmation(ctx context.Context, user *domain.User) error {
	link := s.confirmURL(user.ConfirmationToken)
	if err := s.email.SendSignupConfirmation(ctx, user.Email, user.FullName, link); err != nil {
		return &Error{Code: errSendConfirmation.Code, Message: errSendConfirmation.Message, Err: err}
	}
	return nil
}

func (s *authService) GetUser(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokens.ValidateToken(accessToken)
	if err != nil {
		return nil, &Error{Code: ErrInvalidToken.Code, Message: ErrInvalidToken.Message, Err: err}
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, withMessage(ErrInvalidToken, "User from sub claim in JWT does not exist")
		}
		return nil, unexpected(err)
	}
	return user, nil
}

func (s *authService) ConfirmSignup(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	user, err := s.userRepo.Confirm(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, unexpected(err)
	}
	logger.Info("User confirmed email", "user_id", user.ID)
	return user, nil
}

func (s *authService) confirmURL(token string) string {
	sep := "?"
	if strings.Contains(s.opts.ConfirmURLBase, "?") {
		sep = "&"
	}
	return s.opts.ConfirmURLBase + sep + "token=" + url.QueryEscape(token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmail accepts a bare address only, no display name
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
