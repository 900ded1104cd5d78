package models

import "time"

type Car struct {
	ID           int64     `json:"id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	LicensePlate string    `json:"license_plate"`
	Category     string    `json:"category"`
	DailyRate    Cents     `json:"daily_rate"`
	Status       string    `json:"status"` // available, rented, maintenance, unavailable
	Mileage      int64     `json:"mileage"`
	Color        string    `json:"color"`
	FuelType     string    `json:"fuel_type"`
	Transmission string    `json:"transmission"`
	Seats        int       `json:"seats"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CarFilter narrows admin and catalog listings.
type CarFilter struct {
	Status   string
	Category string
}
