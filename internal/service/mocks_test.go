package service

import (
	"context"
	"time"

	"motorent/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateCar(ctx context.Context, c *models.Car) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockRepo) GetCar(ctx context.Context, id int64) (*models.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}
func (m *mockRepo) ListCars(ctx context.Context, f models.CarFilter) ([]*models.Car, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Car), args.Error(1)
}
func (m *mockRepo) UpdateCar(ctx context.Context, c *models.Car) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockRepo) UpdateCarStatus(ctx context.Context, id int64, s string) error {
	return m.Called(ctx, id, s).Error(0)
}
func (m *mockRepo) DeleteCar(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) CreateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockRepo) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *mockRepo) UpdateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockRepo) UpdateUserRole(ctx context.Context, id int64, role string) error {
	return m.Called(ctx, id, role).Error(0)
}
func (m *mockRepo) UpdateUserStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockRepo) CreateRental(ctx context.Context, r *models.Rental) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockRepo) GetRental(ctx context.Context, id int64) (*models.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rental), args.Error(1)
}
func (m *mockRepo) ListRentals(ctx context.Context, f models.RentalFilter) ([]*models.Rental, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Rental), args.Error(1)
}
func (m *mockRepo) GetUserRentals(ctx context.Context, userID int64) ([]*models.Rental, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Rental), args.Error(1)
}
func (m *mockRepo) GetRentalsByDateRange(ctx context.Context, s, e time.Time) ([]*models.Rental, error) {
	args := m.Called(ctx, s, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Rental), args.Error(1)
}
func (m *mockRepo) CountConflicts(ctx context.Context, carID int64, s, e time.Time, exclude int64) (int, error) {
	args := m.Called(ctx, carID, s, e, exclude)
	return args.Int(0), args.Error(1)
}
func (m *mockRepo) UpdateRentalStatus(ctx context.Context, id int64, status, notes string) error {
	return m.Called(ctx, id, status, notes).Error(0)
}
func (m *mockRepo) DeleteRental(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRepo) CountRentalsByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}
func (m *mockRepo) GetRentalsEndingBefore(ctx context.Context, status string, t time.Time) ([]*models.Rental, error) {
	args := m.Called(ctx, status, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Rental), args.Error(1)
}
func (m *mockRepo) GetRentalsStartingBy(ctx context.Context, status string, t time.Time) ([]*models.Rental, error) {
	args := m.Called(ctx, status, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Rental), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(ctx context.Context, eventType string, payload interface{}) error {
	return m.Called(ctx, eventType, payload).Error(0)
}
