package api

import (
	"net/http"
	"strconv"

	"motorent/internal/models"

	"github.com/gin-gonic/gin"
)

func (s *Server) listCars(c *gin.Context) {
	filter := models.CarFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
	cars, err := s.cars.List(c.Request.Context(), filter)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cars": cars})
}

func (s *Server) getCar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	car, err := s.cars.Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

// carAvailability answers whether the car is free for a period.
// exclude_rental_id lets a reschedule ignore its own booking.
func (s *Server) carAvailability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	start, err := parseDate(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
		return
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date"})
		return
	}

	var exclude int64
	if raw := c.Query("exclude_rental_id"); raw != "" {
		exclude, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exclude_rental_id"})
			return
		}
	}

	available, err := s.rentals.CheckAvailability(c.Request.Context(), id, start, end, exclude)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"car_id": id, "available": available})
}

// carQuote prices a period without creating anything. An unknown car
// quotes to zero.
func (s *Server) carQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	start, err := parseDate(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
		return
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date"})
		return
	}

	cost, err := s.rentals.CalculateCost(c.Request.Context(), id, start, end)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"car_id":     id,
		"days":       models.InclusiveDays(start, end),
		"total_cost": cost,
	})
}
