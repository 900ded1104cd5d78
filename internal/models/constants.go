package models

// Rental statuses.
const (
	RentalStatusPending   = "pending"
	RentalStatusConfirmed = "confirmed"
	RentalStatusActive    = "active"
	RentalStatusCompleted = "completed"
	RentalStatusCancelled = "cancelled"
)

// Car statuses.
const (
	CarStatusAvailable   = "available"
	CarStatusRented      = "rented"
	CarStatusMaintenance = "maintenance"
	CarStatusUnavailable = "unavailable"
)

// User roles.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// User account statuses.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

const (
	// MaxRentalDays caps a single rental span, counted inclusively.
	MaxRentalDays = 30

	// DefaultSessionTTL время жизни сессии в секундах
	DefaultSessionTTL = 24 * 60 * 60

	// DefaultExportRangeMonthsBefore/After bound the default report period.
	DefaultExportRangeMonthsBefore = 1
	DefaultExportRangeMonthsAfter  = 2

	// RateLimitRequests per RateLimitWindow seconds per client.
	RateLimitRequests = 60
	RateLimitWindow   = 60
)

var rentalStatuses = map[string]bool{
	RentalStatusPending:   true,
	RentalStatusConfirmed: true,
	RentalStatusActive:    true,
	RentalStatusCompleted: true,
	RentalStatusCancelled: true,
}

var carStatuses = map[string]bool{
	CarStatusAvailable:   true,
	CarStatusRented:      true,
	CarStatusMaintenance: true,
	CarStatusUnavailable: true,
}

// ValidRentalStatus reports whether s is a known rental status.
func ValidRentalStatus(s string) bool {
	return rentalStatuses[s]
}

// ValidCarStatus reports whether s is a known car status.
func ValidCarStatus(s string) bool {
	return carStatuses[s]
}

// TerminalRentalStatus reports whether s releases the car:
// completing or cancelling a rental resets the car to available.
func TerminalRentalStatus(s string) bool {
	return s == RentalStatusCompleted || s == RentalStatusCancelled
}
