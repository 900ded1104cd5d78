package domain

import (
	"context"
	"time"

	"motorent/internal/models"
)

// Repository is the persistence contract for cars, users and rentals.
// All multi-statement mutations (CreateRental, UpdateRentalStatus) are
// executed as a single transaction by the implementation.
type Repository interface {
	// Cars
	CreateCar(ctx context.Context, car *models.Car) error
	GetCar(ctx context.Context, id int64) (*models.Car, error)
	ListCars(ctx context.Context, filter models.CarFilter) ([]*models.Car, error)
	UpdateCar(ctx context.Context, car *models.Car) error
	UpdateCarStatus(ctx context.Context, id int64, status string) error
	DeleteCar(ctx context.Context, id int64) error

	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdateUserRole(ctx context.Context, id int64, role string) error
	UpdateUserStatus(ctx context.Context, id int64, status string) error

	// Rentals
	CreateRental(ctx context.Context, rental *models.Rental) error
	GetRental(ctx context.Context, id int64) (*models.Rental, error)
	ListRentals(ctx context.Context, filter models.RentalFilter) ([]*models.Rental, error)
	GetUserRentals(ctx context.Context, userID int64) ([]*models.Rental, error)
	GetRentalsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Rental, error)
	CountConflicts(ctx context.Context, carID int64, start, end time.Time, excludeRentalID int64) (int, error)
	UpdateRentalStatus(ctx context.Context, id int64, status, notes string) error
	DeleteRental(ctx context.Context, id int64) error
	CountRentalsByStatus(ctx context.Context) (map[string]int64, error)
	GetRentalsEndingBefore(ctx context.Context, status string, t time.Time) ([]*models.Rental, error)
	GetRentalsStartingBy(ctx context.Context, status string, t time.Time) ([]*models.Rental, error)
}

// SessionRepository stores login sessions and rate-limit counters.
type SessionRepository interface {
	GetSession(ctx context.Context, token string) (*models.Session, error)
	SetSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, token string) error
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// SessionManager is the service-level view of session handling.
type SessionManager interface {
	Create(ctx context.Context, user *models.User) (*models.Session, error)
	Get(ctx context.Context, token string) (*models.Session, error)
	Destroy(ctx context.Context, token string) error
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// EventPublisher fans domain events out to in-process subscribers.
type EventPublisher interface {
	PublishJSON(ctx context.Context, eventType string, payload interface{}) error
}

// RentalService answers availability and pricing questions and drives
// the rental lifecycle.
type RentalService interface {
	CheckAvailability(ctx context.Context, carID int64, start, end time.Time, excludeRentalID int64) (bool, error)
	CalculateCost(ctx context.Context, carID int64, start, end time.Time) (models.Cents, error)
	Validate(input models.RentalInput, now time.Time) map[string]string
	Create(ctx context.Context, input models.RentalInput) (*models.Rental, error)
	UpdateStatus(ctx context.Context, rentalID int64, status, notes string) error
	Cancel(ctx context.Context, rentalID, userID int64) error
	Get(ctx context.Context, rentalID int64) (*models.Rental, error)
	List(ctx context.Context, filter models.RentalFilter) ([]*models.Rental, error)
	ListForUser(ctx context.Context, userID int64) ([]*models.Rental, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*models.Rental, error)
	Delete(ctx context.Context, rentalID int64) error
	Stats(ctx context.Context) (map[string]int64, error)
}

// CarService is the fleet catalog.
type CarService interface {
	Create(ctx context.Context, car *models.Car) error
	Get(ctx context.Context, id int64) (*models.Car, error)
	List(ctx context.Context, filter models.CarFilter) ([]*models.Car, error)
	Update(ctx context.Context, car *models.Car) error
	SetStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// UserService owns the account directory.
type UserService interface {
	Register(ctx context.Context, name, email, password, phone string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateProfile(ctx context.Context, id int64, name, phone string) error
	SetRole(ctx context.Context, id int64, role string) error
	SetStatus(ctx context.Context, id int64, status string) error
}
