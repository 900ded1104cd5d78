package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"motorent/internal/database"
	"motorent/internal/domain"
	"motorent/internal/events"
	"motorent/internal/metrics"
	"motorent/internal/models"

	"github.com/rs/zerolog"
)

// RentalService drives the rental lifecycle: availability, pricing,
// booking and status transitions.
type RentalService struct {
	repo       domain.Repository
	publisher  domain.EventPublisher
	logger     *zerolog.Logger
	maxDays    int64
	maxAdvance int
}

func NewRentalService(repo domain.Repository, publisher domain.EventPublisher, logger *zerolog.Logger, maxDays, maxAdvanceDays int) *RentalService {
	if maxDays <= 0 {
		maxDays = models.MaxRentalDays
	}
	return &RentalService{
		repo:       repo,
		publisher:  publisher,
		logger:     logger,
		maxDays:    int64(maxDays),
		maxAdvance: maxAdvanceDays,
	}
}

// CheckAvailability reports whether the car has no overlapping rental
// in the given period. Cancelled rentals never block; excludeRentalID
// lets a reschedule ignore its own booking. Intervals sharing a single
// day are treated as overlapping.
func (s *RentalService) CheckAvailability(ctx context.Context, carID int64, start, end time.Time, excludeRentalID int64) (bool, error) {
	count, err := s.repo.CountConflicts(ctx, carID, start, end, excludeRentalID)
	if err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}
	return count == 0, nil
}

// CalculateCost prices a period as daily_rate times the inclusive day
// count. An unknown car prices to zero rather than an error, so quote
// endpoints stay total.
func (s *RentalService) CalculateCost(ctx context.Context, carID int64, start, end time.Time) (models.Cents, error) {
	car, err := s.repo.GetCar(ctx, carID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to load car for pricing: %w", err)
	}
	return car.DailyRate.Mul(models.InclusiveDays(start, end)), nil
}

// Validate checks booking form fields and returns a field-to-message
// map, empty when the input is acceptable. It deliberately collects
// every problem instead of stopping at the first one.
func (s *RentalService) Validate(input models.RentalInput, now time.Time) map[string]string {
	problems := make(map[string]string)

	if input.CarID <= 0 {
		problems["car_id"] = "Car is required"
	}
	if input.StartDate.IsZero() {
		problems["start_date"] = "Start date is required"
	}
	if input.EndDate.IsZero() {
		problems["end_date"] = "End date is required"
	}
	if input.PickupLocation == "" {
		problems["pickup_location"] = "Pickup location is required"
	}
	if input.DropoffLocation == "" {
		problems["dropoff_location"] = "Dropoff location is required"
	}

	if !input.StartDate.IsZero() && models.DateOnly(input.StartDate).Before(models.DateOnly(now)) {
		problems["start_date"] = "Start date cannot be in the past"
	}
	if !input.StartDate.IsZero() && s.maxAdvance > 0 &&
		models.DateOnly(input.StartDate).After(models.DateOnly(now).AddDate(0, 0, s.maxAdvance)) {
		problems["start_date"] = fmt.Sprintf("Start date cannot be more than %d days in advance", s.maxAdvance)
	}

	if !input.StartDate.IsZero() && !input.EndDate.IsZero() {
		if !input.EndDate.After(input.StartDate) {
			problems["end_date"] = "End date must be after start date"
		} else if models.InclusiveDays(input.StartDate, input.EndDate) > s.maxDays {
			problems["end_date"] = fmt.Sprintf("Rental period cannot exceed %d days", s.maxDays)
		}
	}

	return problems
}

// Create books a car. The availability check runs inside the same
// transaction as the insert, so two concurrent bookings of the same
// car and period cannot both succeed.
func (s *RentalService) Create(ctx context.Context, input models.RentalInput) (*models.Rental, error) {
	cost := input.TotalCost
	if cost == 0 {
		calculated, err := s.CalculateCost(ctx, input.CarID, input.StartDate, input.EndDate)
		if err != nil {
			return nil, err
		}
		cost = calculated
	}

	rental := &models.Rental{
		UserID:          input.UserID,
		CarID:           input.CarID,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		PickupLocation:  input.PickupLocation,
		DropoffLocation: input.DropoffLocation,
		Notes:           input.Notes,
		TotalCost:       cost,
		Status:          models.RentalStatusPending,
	}

	if err := s.repo.CreateRental(ctx, rental); err != nil {
		if errors.Is(err, database.ErrNotAvailable) {
			metrics.IncRentalConflict()
		}
		return nil, err
	}

	metrics.IncRentalCreated()
	s.publish(ctx, events.EventRentalCreated, events.RentalEventPayload{
		RentalID:  rental.ID,
		CarID:     rental.CarID,
		UserID:    rental.UserID,
		Status:    rental.Status,
		StartDate: rental.StartDate.Format("2006-01-02"),
		EndDate:   rental.EndDate.Format("2006-01-02"),
	})

	return rental, nil
}

// UpdateStatus moves a rental to a new lifecycle status. Completing or
// cancelling also releases the car; that happens in the same
// transaction in the repository.
func (s *RentalService) UpdateStatus(ctx context.Context, rentalID int64, status, notes string) error {
	if !models.ValidRentalStatus(status) {
		return ErrInvalidStatus
	}

	rental, err := s.repo.GetRental(ctx, rentalID)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateRentalStatus(ctx, rentalID, status, notes); err != nil {
		return err
	}

	metrics.IncRentalStatusChange(status)
	s.publish(ctx, events.EventRentalStatusChanged, events.RentalEventPayload{
		RentalID:  rentalID,
		CarID:     rental.CarID,
		UserID:    rental.UserID,
		Status:    status,
		OldStatus: rental.Status,
	})

	return nil
}

// Cancel is the customer-facing path: only the rental's owner may
// cancel, and only while it is not already finished.
func (s *RentalService) Cancel(ctx context.Context, rentalID, userID int64) error {
	rental, err := s.repo.GetRental(ctx, rentalID)
	if err != nil {
		return err
	}
	if rental.UserID != userID {
		return ErrForbidden
	}
	if models.TerminalRentalStatus(rental.Status) {
		return ErrAlreadyFinished
	}
	return s.UpdateStatus(ctx, rentalID, models.RentalStatusCancelled, "")
}

func (s *RentalService) Get(ctx context.Context, rentalID int64) (*models.Rental, error) {
	return s.repo.GetRental(ctx, rentalID)
}

func (s *RentalService) List(ctx context.Context, filter models.RentalFilter) ([]*models.Rental, error) {
	return s.repo.ListRentals(ctx, filter)
}

func (s *RentalService) ListForUser(ctx context.Context, userID int64) ([]*models.Rental, error) {
	return s.repo.GetUserRentals(ctx, userID)
}

func (s *RentalService) ListByDateRange(ctx context.Context, start, end time.Time) ([]*models.Rental, error) {
	return s.repo.GetRentalsByDateRange(ctx, start, end)
}

func (s *RentalService) Delete(ctx context.Context, rentalID int64) error {
	return s.repo.DeleteRental(ctx, rentalID)
}

// Stats returns rental counts grouped by status.
func (s *RentalService) Stats(ctx context.Context) (map[string]int64, error) {
	return s.repo.CountRentalsByStatus(ctx)
}

func (s *RentalService) publish(ctx context.Context, eventType string, payload events.RentalEventPayload) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishJSON(ctx, eventType, payload); err != nil && s.logger != nil {
		s.logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish event")
	}
}
