package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"motorent/internal/models"
)

const carColumns = `id, make, model, year, license_plate, category, daily_rate_cents,
                    status, mileage, color, fuel_type, transmission, seats, description,
                    created_at, updated_at`

func scanCar(row interface{ Scan(...any) error }) (*models.Car, error) {
	var car models.Car
	err := row.Scan(
		&car.ID, &car.Make, &car.Model, &car.Year, &car.LicensePlate, &car.Category,
		&car.DailyRate, &car.Status, &car.Mileage, &car.Color, &car.FuelType,
		&car.Transmission, &car.Seats, &car.Description, &car.CreatedAt, &car.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (db *DB) CreateCar(ctx context.Context, car *models.Car) error {
	query := `INSERT INTO cars (
				make, model, year, license_plate, category, daily_rate_cents,
				status, mileage, color, fuel_type, transmission, seats, description,
				created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	if car.Status == "" {
		car.Status = models.CarStatusAvailable
	}
	result, err := db.ExecContext(ctx, query,
		car.Make,
		car.Model,
		car.Year,
		car.LicensePlate,
		car.Category,
		int64(car.DailyRate),
		car.Status,
		car.Mileage,
		car.Color,
		car.FuelType,
		car.Transmission,
		car.Seats,
		car.Description,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	car.ID = id
	car.CreatedAt = now
	car.UpdatedAt = now
	return nil
}

func (db *DB) GetCar(ctx context.Context, id int64) (*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = ?`
	car, err := scanCar(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get car: %w", err)
	}
	return car, nil
}

// ListCars returns the fleet, optionally narrowed by status and
// category. Filters are appended as bound parameters, never
// concatenated into the query text.
func (db *DB) ListCars(ctx context.Context, filter models.CarFilter) ([]*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY make, model, id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	defer rows.Close()

	var cars []*models.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func (db *DB) UpdateCar(ctx context.Context, car *models.Car) error {
	query := `UPDATE cars SET make = ?, model = ?, year = ?, license_plate = ?, category = ?,
				daily_rate_cents = ?, status = ?, mileage = ?, color = ?, fuel_type = ?,
				transmission = ?, seats = ?, description = ?, updated_at = ?
			  WHERE id = ?`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		car.Make, car.Model, car.Year, car.LicensePlate, car.Category,
		int64(car.DailyRate), car.Status, car.Mileage, car.Color, car.FuelType,
		car.Transmission, car.Seats, car.Description, now, car.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	car.UpdatedAt = now
	return nil
}

func (db *DB) UpdateCarStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE cars SET status = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update car status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteCar(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM cars WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
