package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"motorent/internal/models"
)

// Interval columns are stored as plain "YYYY-MM-DD HH:MM:SS" strings so
// sqlite date() comparisons stay exact regardless of driver formatting.
const dateTimeLayout = "2006-01-02 15:04:05"
const dateLayout = "2006-01-02"

const rentalColumns = `id, user_id, car_id, start_date, end_date, pickup_location,
                       dropoff_location, total_cost_cents, notes, status, created_at, updated_at`

func scanRental(row interface{ Scan(...any) error }) (*models.Rental, error) {
	var r models.Rental
	err := row.Scan(
		&r.ID, &r.UserID, &r.CarID, &r.StartDate, &r.EndDate, &r.PickupLocation,
		&r.DropoffLocation, &r.TotalCost, &r.Notes, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CountConflicts counts non-cancelled rentals of the car whose interval
// overlaps [start, end] inclusively: touching endpoints conflict. Pass
// excludeRentalID to ignore one rental when editing it against itself.
func (db *DB) CountConflicts(ctx context.Context, carID int64, start, end time.Time, excludeRentalID int64) (int, error) {
	return countConflicts(ctx, db.DB, carID, start, end, excludeRentalID)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func countConflicts(ctx context.Context, q queryer, carID int64, start, end time.Time, excludeRentalID int64) (int, error) {
	query := `SELECT COUNT(*) FROM rentals
	          WHERE car_id = ? AND status != ?
	          AND date(start_date) <= date(?) AND date(end_date) >= date(?)`
	args := []any{carID, models.RentalStatusCancelled, end.Format(dateLayout), start.Format(dateLayout)}
	if excludeRentalID != 0 {
		query += ` AND id != ?`
		args = append(args, excludeRentalID)
	}

	var count int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count conflicting rentals: %w", err)
	}
	return count, nil
}

// CreateRental books the car in one transaction: the conflict check,
// the rental insert and the car status flip either all commit or none
// do. Re-checking inside the transaction closes the window where two
// concurrent requests could both see the interval as free.
func (db *DB) CreateRental(ctx context.Context, rental *models.Rental) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var carStatus string
	err = tx.QueryRowContext(ctx, `SELECT status FROM cars WHERE id = ?`, rental.CarID).Scan(&carStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load car in tx: %w", err)
	}

	conflicts, err := countConflicts(ctx, tx, rental.CarID, rental.StartDate, rental.EndDate, 0)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return ErrNotAvailable
	}

	if rental.Status == "" {
		rental.Status = models.RentalStatusPending
	}
	now := time.Now()
	result, err := tx.ExecContext(ctx, `INSERT INTO rentals (
				user_id, car_id, start_date, end_date, pickup_location,
				dropoff_location, total_cost_cents, notes, status, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rental.UserID,
		rental.CarID,
		rental.StartDate.Format(dateTimeLayout),
		rental.EndDate.Format(dateTimeLayout),
		rental.PickupLocation,
		rental.DropoffLocation,
		int64(rental.TotalCost),
		rental.Notes,
		rental.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rental in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE cars SET status = ?, updated_at = ? WHERE id = ?`,
		models.CarStatusRented, now, rental.CarID); err != nil {
		return fmt.Errorf("failed to mark car rented in tx: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rental: %w", err)
	}

	rental.ID = id
	rental.CreatedAt = now
	rental.UpdatedAt = now
	return nil
}

// UpdateRentalStatus changes the rental status (and notes when
// non-empty) and, when the new status is terminal, frees the car —
// both in one transaction.
func (db *DB) UpdateRentalStatus(ctx context.Context, id int64, status, notes string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var carID int64
	err = tx.QueryRowContext(ctx, `SELECT car_id FROM rentals WHERE id = ?`, id).Scan(&carID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load rental in tx: %w", err)
	}

	now := time.Now()
	if notes != "" {
		_, err = tx.ExecContext(ctx,
			`UPDATE rentals SET status = ?, notes = ?, updated_at = ? WHERE id = ?`,
			status, notes, now, id)
	} else {
		_, err = tx.ExecContext(ctx,
			`UPDATE rentals SET status = ?, updated_at = ? WHERE id = ?`,
			status, now, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update rental status in tx: %w", err)
	}

	if models.TerminalRentalStatus(status) {
		if _, err := tx.ExecContext(ctx,
			`UPDATE cars SET status = ?, updated_at = ? WHERE id = ?`,
			models.CarStatusAvailable, now, carID); err != nil {
			return fmt.Errorf("failed to release car in tx: %w", err)
		}
	}

	return tx.Commit()
}

func (db *DB) GetRental(ctx context.Context, id int64) (*models.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = ?`
	rental, err := scanRental(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rental: %w", err)
	}
	return rental, nil
}

func (db *DB) ListRentals(ctx context.Context, filter models.RentalFilter) ([]*models.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.CarID != 0 {
		query += ` AND car_id = ?`
		args = append(args, filter.CarID)
	}
	if filter.UserID != 0 {
		query += ` AND user_id = ?`
		args = append(args, filter.UserID)
	}
	if !filter.From.IsZero() {
		query += ` AND date(end_date) >= date(?)`
		args = append(args, filter.From.Format(dateLayout))
	}
	if !filter.To.IsZero() {
		query += ` AND date(start_date) <= date(?)`
		args = append(args, filter.To.Format(dateLayout))
	}
	query += ` ORDER BY start_date DESC, id DESC`

	return db.queryRentals(ctx, query, args...)
}

func (db *DB) GetUserRentals(ctx context.Context, userID int64) ([]*models.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE user_id = ? ORDER BY start_date DESC, id DESC`
	return db.queryRentals(ctx, query, userID)
}

// GetRentalsByDateRange returns rentals whose interval overlaps
// [start, end], ordered chronologically. Used by the report export.
func (db *DB) GetRentalsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE date(start_date) <= date(?) AND date(end_date) >= date(?)
	          ORDER BY start_date ASC, id ASC`
	return db.queryRentals(ctx, query, end.Format(dateLayout), start.Format(dateLayout))
}

// GetRentalsEndingBefore returns rentals in the given status whose end
// date is strictly before t. The sweeper uses it to complete overdue
// rentals.
func (db *DB) GetRentalsEndingBefore(ctx context.Context, status string, t time.Time) ([]*models.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE status = ? AND date(end_date) < date(?) ORDER BY end_date ASC`
	return db.queryRentals(ctx, query, status, t.Format(dateLayout))
}

// GetRentalsStartingBy returns rentals in the given status whose start
// date is on or before t. The sweeper uses it to activate confirmed
// rentals whose pickup day arrived.
func (db *DB) GetRentalsStartingBy(ctx context.Context, status string, t time.Time) ([]*models.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE status = ? AND date(start_date) <= date(?) ORDER BY start_date ASC`
	return db.queryRentals(ctx, query, status, t.Format(dateLayout))
}

func (db *DB) queryRentals(ctx context.Context, query string, args ...any) ([]*models.Rental, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rentals: %w", err)
	}
	defer rows.Close()

	var rentals []*models.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rental: %w", err)
		}
		rentals = append(rentals, rental)
	}
	return rentals, rows.Err()
}

func (db *DB) DeleteRental(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM rentals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rental: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// CountRentalsByStatus powers the back-office stats summary.
func (db *DB) CountRentalsByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := db.QueryContext(ctx, `SELECT status, COUNT(*) FROM rentals GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count rentals: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan rental count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
