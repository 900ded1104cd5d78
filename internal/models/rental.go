package models

import "time"

type Rental struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	CarID           int64     `json:"car_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	PickupLocation  string    `json:"pickup_location"`
	DropoffLocation string    `json:"dropoff_location"`
	TotalCost       Cents     `json:"total_cost"`
	Notes           string    `json:"notes"`
	Status          string    `json:"status"` // pending, confirmed, active, completed, cancelled
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Days returns the inclusive day count of the rental interval.
func (r *Rental) Days() int64 {
	return InclusiveDays(r.StartDate, r.EndDate)
}

// RentalFilter narrows admin rental listings.
type RentalFilter struct {
	Status string
	CarID  int64
	UserID int64
	From   time.Time
	To     time.Time
}

// DateOnly drops the time-of-day part. The result is anchored in UTC
// so day arithmetic is unaffected by DST shifts in the input location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// InclusiveDays counts calendar days between start and end, both ends
// included: a rental starting and ending on the same day is 1 day,
// time of day is ignored. Pricing and the maximum span rule both use
// this convention; changing it changes prices.
func InclusiveDays(start, end time.Time) int64 {
	s := DateOnly(start)
	e := DateOnly(end)
	if e.Before(s) {
		return 0
	}
	return int64(e.Sub(s).Hours()/24) + 1
}
