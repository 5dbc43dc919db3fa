package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tasktracker/internal/auth"
	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

var (
	// ErrInvalidCredentials is the single failure every unsuccessful login
	// collapses into: unknown user, wrong password and token issuance
	// problems are indistinguishable to the caller. The underlying cause is
	// only logged.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering with an email that already
	// belongs to a user.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrWeakPassword is returned when a registration password fails the
	// strength policy.
	ErrWeakPassword = errors.New("password does not meet the strength policy")
)

// UserService describes account registration and login.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, usernameOrEmail, password string) (string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens *auth.TokenIssuer
	logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, hasher auth.PasswordHasher, tokens *auth.TokenIssuer, logger *logrus.Logger) UserService {
	if logger == nil {
		logger = logrus.New()
	}
	return &userService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

func (s *userService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, errors.New("username is required")
	}
	if email == "" {
		return nil, errors.New("email is required")
	}

	// The email check runs before any hashing so a rejected registration
	// does no work and leaves no trace.
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		s.logger.Warnf("registration rejected: email %s already registered", email)
		return nil, ErrEmailTaken
	}

	if !auth.IsAcceptablePassword(password) {
		s.logger.Warnf("registration rejected: weak password for user %s", username)
		return nil, ErrWeakPassword
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Infof("user %s registered", username)
	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, usernameOrEmail, password string) (string, error) {
	usernameOrEmail = strings.TrimSpace(usernameOrEmail)
	if usernameOrEmail == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	// Email lookup takes precedence: a value matching one user's email and
	// another user's username resolves to the email owner.
	user, err := s.users.GetByEmail(ctx, usernameOrEmail)
	if err != nil && errors.Is(err, repository.ErrNotFound) {
		user, err = s.users.GetByUsername(ctx, usernameOrEmail)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warnf("login failed: user %s not found", usernameOrEmail)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Warnf("login failed: wrong password for %s", usernameOrEmail)
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Warnf("login failed: token issuance for %s: %v", usernameOrEmail, err)
		return "", ErrInvalidCredentials
	}

	s.logger.Infof("user %s logged in", usernameOrEmail)
	return token, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
