package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"motorent/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	logger := zerolog.Nop()
	db, err := New(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

var seedSeq int

func seedCar(t *testing.T, db *DB) *models.Car {
	t.Helper()
	seedSeq++
	car := &models.Car{
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2022,
		LicensePlate: fmt.Sprintf("T-%03d", seedSeq),
		Category:     "economy",
		DailyRate:    5000,
	}
	require.NoError(t, db.CreateCar(context.Background(), car))
	return car
}

func seedUser(t *testing.T, db *DB) *models.User {
	t.Helper()
	seedSeq++
	user := &models.User{
		Name:         "Test User",
		Email:        fmt.Sprintf("user%03d@example.com", seedSeq),
		PasswordHash: "hash",
	}
	require.NoError(t, db.CreateUser(context.Background(), user))
	return user
}

func seedRental(t *testing.T, db *DB, carID, userID int64, start, end time.Time) *models.Rental {
	t.Helper()
	rental := &models.Rental{
		UserID:          userID,
		CarID:           carID,
		StartDate:       start,
		EndDate:         end,
		PickupLocation:  "A",
		DropoffLocation: "B",
		TotalCost:       15000,
	}
	require.NoError(t, db.CreateRental(context.Background(), rental))
	return rental
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
