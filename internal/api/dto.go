package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"motorent/internal/database"
	"motorent/internal/models"

	"github.com/gin-gonic/gin"
)

// User-facing messages. Infrastructure details stay in the logs.
const (
	msgNotAvailable  = "Car is not available for the selected dates"
	msgDatabaseError = "Database error occurred"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name  string `json:"name" binding:"omitempty,max=100"`
	Phone string `json:"phone" binding:"omitempty,max=32"`
}

type createRentalRequest struct {
	CarID           int64  `json:"car_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	Notes           string `json:"notes"`
}

type carRequest struct {
	Make         string `json:"make" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         int    `json:"year" binding:"omitempty,min=1950,max=2100"`
	LicensePlate string `json:"license_plate"`
	Category     string `json:"category"`
	DailyRate    string `json:"daily_rate" binding:"required"`
	Status       string `json:"status" binding:"omitempty,carstatus"`
	Mileage      int64  `json:"mileage"`
	Color        string `json:"color"`
	FuelType     string `json:"fuel_type"`
	Transmission string `json:"transmission"`
	Seats        int    `json:"seats"`
	Description  string `json:"description"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type roleRequest struct {
	Role string `json:"role" binding:"required,oneof=customer staff admin"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

func (r carRequest) toModel() (*models.Car, error) {
	rate, err := models.ParseCents(r.DailyRate)
	if err != nil {
		return nil, err
	}
	return &models.Car{
		Make:         r.Make,
		Model:        r.Model,
		Year:         r.Year,
		LicensePlate: r.LicensePlate,
		Category:     r.Category,
		DailyRate:    rate,
		Status:       r.Status,
		Mileage:      r.Mileage,
		Color:        r.Color,
		FuelType:     r.FuelType,
		Transmission: r.Transmission,
		Seats:        r.Seats,
		Description:  r.Description,
	}, nil
}

// parseDate accepts both plain dates and RFC3339 timestamps.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// fail maps repository errors to HTTP responses. Unknown errors are
// logged and answered with a generic message.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, database.ErrNotAvailable):
		c.JSON(http.StatusConflict, gin.H{"error": msgNotAvailable})
	case errors.Is(err, database.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
	default:
		s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgDatabaseError})
	}
}
