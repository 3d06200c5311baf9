package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"plantdefender/internal/apperr"
	"plantdefender/internal/ids"
	"plantdefender/internal/models"
	"plantdefender/internal/repository"
	"plantdefender/internal/security"
)

// TokenIssuer signs and checks bearer tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

type AuthService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		log:    log,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User  models.User
	Token string
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	input.Email = normalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	if input.Email == "" || input.Password == "" || input.Name == "" {
		return AuthResult{}, apperr.New(apperr.KindValidation, "email, password and name are required")
	}

	// Racy without store.uniqueemail; see the duplicate handling in Login.
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return AuthResult{}, apperr.New(apperr.KindConflict, "Email already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return AuthResult{}, apperr.Wrap(apperr.KindConflict, "Email already registered", err)
		}
		return AuthResult{}, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	input.Email = normalizeEmail(input.Email)
	if input.Email == "" || input.Password == "" {
		return AuthResult{}, apperr.New(apperr.KindValidation, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, apperr.New(apperr.KindInvalidCredentials, "Invalid credentials")
		}
		return AuthResult{}, err
	}

	if !security.VerifyPassword(input.Password, user.PasswordHash) {
		return AuthResult{}, apperr.New(apperr.KindInvalidCredentials, "Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

// Me returns the profile of an authenticated user.
func (s *AuthService) Me(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, apperr.Wrap(apperr.KindNotFound, "User not found", err)
		}
		return models.User{}, err
	}
	return user, nil
}

// Authenticate resolves a bearer token to a user id. It never touches the
// store.
func (s *AuthService) Authenticate(token string) (string, error) {
	if token == "" {
		return "", apperr.New(apperr.KindAuthMissing, "Not authenticated")
	}

	userID, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			return "", apperr.Wrap(apperr.KindAuthExpired, "Token expired", err)
		}
		return "", apperr.Wrap(apperr.KindAuthMalformed, "Invalid token", err)
	}
	return userID, nil
}
