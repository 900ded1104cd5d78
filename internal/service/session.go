package service

import (
	"context"
	"time"

	"motorent/internal/domain"
	"motorent/internal/models"

	"github.com/google/uuid"
)

// SessionService issues opaque bearer tokens backed by the session
// repository.
type SessionService struct {
	repo domain.SessionRepository
	ttl  time.Duration
}

func NewSessionService(repo domain.SessionRepository, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = time.Duration(models.DefaultSessionTTL) * time.Second
	}
	return &SessionService{repo: repo, ttl: ttl}
}

func (s *SessionService) Create(ctx context.Context, user *models.User) (*models.Session, error) {
	now := time.Now()
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.SetSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns nil without error for unknown or expired tokens.
func (s *SessionService) Get(ctx context.Context, token string) (*models.Session, error) {
	session, err := s.repo.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Expired(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (s *SessionService) Destroy(ctx context.Context, token string) error {
	return s.repo.DeleteSession(ctx, token)
}

func (s *SessionService) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return s.repo.CheckRateLimit(ctx, key, limit, window)
}
