package worker

import (
	"context"
	"time"

	"motorent/internal/domain"
	"motorent/internal/models"

	"github.com/rs/zerolog"
)

// Sweeper advances overdue rentals on a timer: active rentals whose
// end date has passed become completed, confirmed rentals whose start
// date has arrived become active. Each rental is retried with backoff
// on transient failures and skipped after MaxRetries so one broken row
// cannot stall the sweep.
type Sweeper struct {
	rentals  domain.RentalService
	repo     domain.Repository
	interval time.Duration
	retry    RetryPolicy
	logger   *zerolog.Logger
}

func NewSweeper(rentals domain.RentalService, repo domain.Repository, interval time.Duration, logger *zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{
		rentals:  rentals,
		repo:     repo,
		interval: interval,
		retry: RetryPolicy{
			MaxRetries:    3,
			InitialDelay:  time.Second,
			MaxDelay:      30 * time.Second,
			BackoffFactor: 2,
		},
		logger: logger,
	}
}

// Start blocks until ctx is cancelled. One sweep runs immediately so a
// restart does not wait a full interval to catch up.
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("rental sweeper started")

	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("rental sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass at the current time.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := time.Now()

	ended, err := s.repo.GetRentalsEndingBefore(ctx, models.RentalStatusActive, models.DateOnly(now))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list ended rentals")
	} else {
		for _, rental := range ended {
			s.transition(ctx, rental.ID, models.RentalStatusCompleted)
		}
	}

	starting, err := s.repo.GetRentalsStartingBy(ctx, models.RentalStatusConfirmed, models.DateOnly(now))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list starting rentals")
	} else {
		for _, rental := range starting {
			s.transition(ctx, rental.ID, models.RentalStatusActive)
		}
	}
}

func (s *Sweeper) transition(ctx context.Context, rentalID int64, status string) {
	for attempt := 1; ; attempt++ {
		err := s.rentals.UpdateStatus(ctx, rentalID, status, "")
		if err == nil {
			s.logger.Info().Int64("rental_id", rentalID).Str("status", status).Msg("rental swept")
			return
		}
		if attempt >= s.retry.MaxRetries {
			s.logger.Error().Err(err).Int64("rental_id", rentalID).Str("status", status).Msg("giving up on rental transition")
			return
		}

		delay := s.retry.NextDelay(attempt)
		s.logger.Warn().Err(err).Int64("rental_id", rentalID).Dur("retry_in", delay).Msg("rental transition failed, retrying")
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}
