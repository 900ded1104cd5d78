package worker

import (
	"context"
	"testing"
	"time"

	"motorent/internal/database"
	"motorent/internal/models"
	"motorent/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicyNextDelay(t *testing.T) {
	policy := RetryPolicy{
		MaxRetries:    5,
		InitialDelay:  time.Second,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2,
	}

	assert.Equal(t, time.Second, policy.NextDelay(1))
	assert.Equal(t, 2*time.Second, policy.NextDelay(2))
	assert.Equal(t, 4*time.Second, policy.NextDelay(3))
	// Clamped
	assert.Equal(t, 10*time.Second, policy.NextDelay(10))
	// Attempt below 1 behaves like the first attempt
	assert.Equal(t, time.Second, policy.NextDelay(0))
}

func TestRetryPolicyDefaults(t *testing.T) {
	var policy RetryPolicy
	assert.Equal(t, time.Second, policy.NextDelay(1))
	assert.Equal(t, 2*time.Second, policy.NextDelay(2))
}

func setupSweeperTest(t *testing.T) (*database.DB, *service.RentalService, *Sweeper) {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.New(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rentalSvc := service.NewRentalService(db, nil, &logger, models.MaxRentalDays, 365)
	sweeper := NewSweeper(rentalSvc, db, time.Hour, &logger)
	return db, rentalSvc, sweeper
}

func seedRental(t *testing.T, db *database.DB, carID int64, status string, start, end time.Time) *models.Rental {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Name: "Sweep Tester", Email: "sweeper@example.com", PasswordHash: "x"}
	require.NoError(t, db.CreateUser(ctx, user))

	rental := &models.Rental{
		UserID:          user.ID,
		CarID:           carID,
		StartDate:       start,
		EndDate:         end,
		PickupLocation:  "A",
		DropoffLocation: "B",
		TotalCost:       5000,
	}
	require.NoError(t, db.CreateRental(ctx, rental))
	if status != models.RentalStatusPending {
		require.NoError(t, db.UpdateRentalStatus(ctx, rental.ID, status, ""))
	}
	return rental
}

func TestSweepCompletesEndedRentals(t *testing.T) {
	db, _, sweeper := setupSweeperTest(t)
	ctx := context.Background()

	car := &models.Car{Make: "Kia", Model: "Rio", DailyRate: 3000}
	require.NoError(t, db.CreateCar(ctx, car))

	past := seedRental(t, db, car.ID,
		models.RentalStatusActive,
		time.Now().AddDate(0, 0, -10),
		time.Now().AddDate(0, 0, -3))

	sweeper.Sweep(ctx)

	got, err := db.GetRental(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RentalStatusCompleted, got.Status)

	// Завершение аренды освобождает машину
	gotCar, err := db.GetCar(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CarStatusAvailable, gotCar.Status)
}

func TestSweepActivatesConfirmedRentals(t *testing.T) {
	db, _, sweeper := setupSweeperTest(t)
	ctx := context.Background()

	car := &models.Car{Make: "Kia", Model: "Rio", DailyRate: 3000}
	require.NoError(t, db.CreateCar(ctx, car))

	current := seedRental(t, db, car.ID,
		models.RentalStatusConfirmed,
		time.Now().AddDate(0, 0, -1),
		time.Now().AddDate(0, 0, 3))

	sweeper.Sweep(ctx)

	got, err := db.GetRental(ctx, current.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RentalStatusActive, got.Status)
}

func TestSweepLeavesFutureRentalsAlone(t *testing.T) {
	db, _, sweeper := setupSweeperTest(t)
	ctx := context.Background()

	car := &models.Car{Make: "Kia", Model: "Rio", DailyRate: 3000}
	require.NoError(t, db.CreateCar(ctx, car))

	future := seedRental(t, db, car.ID,
		models.RentalStatusConfirmed,
		time.Now().AddDate(0, 0, 5),
		time.Now().AddDate(0, 0, 8))

	sweeper.Sweep(ctx)

	got, err := db.GetRental(ctx, future.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RentalStatusConfirmed, got.Status)
}
