package service

import (
	"context"
	"errors"
	"strings"

	"motorent/internal/database"
	"motorent/internal/domain"
	"motorent/internal/events"
	"motorent/internal/models"

	"github.com/rs/zerolog"
)

// UserService owns registration, authentication and the account
// directory.
type UserService struct {
	repo      domain.Repository
	publisher domain.EventPublisher
	logger    *zerolog.Logger
}

func NewUserService(repo domain.Repository, publisher domain.EventPublisher, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, publisher: publisher, logger: logger}
}

// Register creates a customer account. The email is normalized to
// lower case before the uniqueness check.
func (s *UserService) Register(ctx context.Context, name, email, password, phone string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, errors.New("name and email are required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         models.RoleCustomer,
		Status:       models.UserStatusActive,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		payload := map[string]interface{}{"user_id": user.ID, "email": user.Email}
		if err := s.publisher.PublishJSON(ctx, events.EventUserRegistered, payload); err != nil && s.logger != nil {
			s.logger.Warn().Err(err).Msg("failed to publish user registered event")
		}
	}

	return user, nil
}

// Authenticate verifies credentials. Unknown email and wrong password
// both come back as ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if user.Status != models.UserStatusActive {
		return nil, ErrUserInactive
	}

	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UserService) UpdateProfile(ctx context.Context, id int64, name, phone string) error {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}
	return s.repo.UpdateUser(ctx, user)
}

func (s *UserService) SetRole(ctx context.Context, id int64, role string) error {
	if role != models.RoleCustomer && role != models.RoleStaff && role != models.RoleAdmin {
		return errors.New("invalid role")
	}
	return s.repo.UpdateUserRole(ctx, id, role)
}

func (s *UserService) SetStatus(ctx context.Context, id int64, status string) error {
	if status != models.UserStatusActive && status != models.UserStatusInactive {
		return ErrInvalidStatus
	}
	return s.repo.UpdateUserStatus(ctx, id, status)
}
