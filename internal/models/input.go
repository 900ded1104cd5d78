package models

import "time"

// RentalInput carries the booking form fields through validation,
// pricing and creation.
type RentalInput struct {
	UserID          int64
	CarID           int64
	StartDate       time.Time
	EndDate         time.Time
	PickupLocation  string
	DropoffLocation string
	Notes           string
	TotalCost       Cents
}
