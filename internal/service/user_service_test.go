package service

import (
	"context"
	"testing"
	"time"

	"motorent/internal/database"
	"motorent/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserService(repo *mockRepo) *UserService {
	logger := zerolog.Nop()
	return NewUserService(repo, nil, &logger)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := new(mockRepo)
	svc := newUserService(repo)
	ctx := context.Background()

	repo.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = 7
	}).Return(nil)

	user, err := svc.Register(ctx, "Alice", "Alice@Example.COM", "s3cret-pass", "+111")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.True(t, CheckPassword(user.PasswordHash, "s3cret-pass"))
}

func TestRegisterShortPassword(t *testing.T) {
	svc := newUserService(new(mockRepo))
	_, err := svc.Register(context.Background(), "Bob", "bob@example.com", "short", "")
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(mockRepo)
	svc := newUserService(repo)
	ctx := context.Background()

	repo.On("CreateUser", ctx, mock.Anything).Return(database.ErrDuplicateEmail)

	_, err := svc.Register(ctx, "Bob", "bob@example.com", "s3cret-pass", "")
	assert.ErrorIs(t, err, database.ErrDuplicateEmail)
}

func TestAuthenticate(t *testing.T) {
	repo := new(mockRepo)
	svc := newUserService(repo)
	ctx := context.Background()

	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	stored := &models.User{ID: 7, Email: "alice@example.com", PasswordHash: hash, Status: models.UserStatusActive}

	repo.On("GetUserByEmail", ctx, "alice@example.com").Return(stored, nil)

	user, err := svc.Authenticate(ctx, " Alice@Example.com ", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	repo := new(mockRepo)
	svc := newUserService(repo)
	ctx := context.Background()

	repo.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, database.ErrNotFound)

	_, err := svc.Authenticate(ctx, "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateInactive(t *testing.T) {
	repo := new(mockRepo)
	svc := newUserService(repo)
	ctx := context.Background()

	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	stored := &models.User{ID: 7, Email: "alice@example.com", PasswordHash: hash, Status: models.UserStatusInactive}

	repo.On("GetUserByEmail", ctx, "alice@example.com").Return(stored, nil)

	_, err = svc.Authenticate(ctx, "alice@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestSetRoleValidation(t *testing.T) {
	repo := new(mockRepo)
	svc := newUserService(repo)
	ctx := context.Background()

	assert.Error(t, svc.SetRole(ctx, 1, "tsar"))

	repo.On("UpdateUserRole", ctx, int64(1), models.RoleStaff).Return(nil)
	assert.NoError(t, svc.SetRole(ctx, 1, models.RoleStaff))
}

type stubSessionRepo struct {
	sessions map[string]*models.Session
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]*models.Session)}
}

func (s *stubSessionRepo) GetSession(ctx context.Context, token string) (*models.Session, error) {
	return s.sessions[token], nil
}

func (s *stubSessionRepo) SetSession(ctx context.Context, session *models.Session) error {
	s.sessions[session.Token] = session
	return nil
}

func (s *stubSessionRepo) DeleteSession(ctx context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func (s *stubSessionRepo) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}

func TestSessionLifecycle(t *testing.T) {
	repo := newStubSessionRepo()
	svc := NewSessionService(repo, time.Hour)
	ctx := context.Background()

	user := &models.User{ID: 7, Role: models.RoleCustomer}
	session, err := svc.Create(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, int64(7), session.UserID)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	got, err := svc.Get(ctx, session.Token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, session.Token, got.Token)

	require.NoError(t, svc.Destroy(ctx, session.Token))
	got, err = svc.Get(ctx, session.Token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionExpired(t *testing.T) {
	repo := newStubSessionRepo()
	svc := NewSessionService(repo, time.Hour)
	ctx := context.Background()

	repo.sessions["old"] = &models.Session{Token: "old", UserID: 1, ExpiresAt: time.Now().Add(-time.Minute)}

	got, err := svc.Get(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, got)
}
