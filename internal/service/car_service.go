package service

import (
	"context"
	"errors"

	"motorent/internal/domain"
	"motorent/internal/events"
	"motorent/internal/models"

	"github.com/rs/zerolog"
)

// CarService is the fleet catalog over the repository.
type CarService struct {
	repo      domain.Repository
	publisher domain.EventPublisher
	logger    *zerolog.Logger
}

func NewCarService(repo domain.Repository, publisher domain.EventPublisher, logger *zerolog.Logger) *CarService {
	return &CarService{repo: repo, publisher: publisher, logger: logger}
}

func (s *CarService) Create(ctx context.Context, car *models.Car) error {
	if car.Make == "" || car.Model == "" {
		return errors.New("make and model are required")
	}
	if car.DailyRate <= 0 {
		return errors.New("daily rate must be positive")
	}
	if car.Status != "" && !models.ValidCarStatus(car.Status) {
		return ErrInvalidStatus
	}
	return s.repo.CreateCar(ctx, car)
}

func (s *CarService) Get(ctx context.Context, id int64) (*models.Car, error) {
	return s.repo.GetCar(ctx, id)
}

func (s *CarService) List(ctx context.Context, filter models.CarFilter) ([]*models.Car, error) {
	return s.repo.ListCars(ctx, filter)
}

func (s *CarService) Update(ctx context.Context, car *models.Car) error {
	if car.DailyRate <= 0 {
		return errors.New("daily rate must be positive")
	}
	if car.Status != "" && !models.ValidCarStatus(car.Status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateCar(ctx, car)
}

// SetStatus is the maintenance lever: it changes only the car status
// and never touches rentals.
func (s *CarService) SetStatus(ctx context.Context, id int64, status string) error {
	if !models.ValidCarStatus(status) {
		return ErrInvalidStatus
	}
	if err := s.repo.UpdateCarStatus(ctx, id, status); err != nil {
		return err
	}
	if s.publisher != nil {
		payload := map[string]interface{}{"car_id": id, "status": status}
		if err := s.publisher.PublishJSON(ctx, events.EventCarStatusChanged, payload); err != nil && s.logger != nil {
			s.logger.Warn().Err(err).Msg("failed to publish car status event")
		}
	}
	return nil
}

func (s *CarService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteCar(ctx, id)
}
