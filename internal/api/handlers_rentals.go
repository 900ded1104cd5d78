package api

import (
	"errors"
	"net/http"
	"time"

	"motorent/internal/models"
	"motorent/internal/service"

	"github.com/gin-gonic/gin"
)

func (s *Server) createRental(c *gin.Context) {
	var req createRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := models.RentalInput{
		UserID:          currentUserID(c),
		CarID:           req.CarID,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		Notes:           req.Notes,
	}

	problems := make(map[string]string)
	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			problems["start_date"] = "Invalid start date"
		} else {
			input.StartDate = start
		}
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			problems["end_date"] = "Invalid end date"
		} else {
			input.EndDate = end
		}
	}

	for field, msg := range s.rentals.Validate(input, time.Now()) {
		if _, taken := problems[field]; !taken {
			problems[field] = msg
		}
	}
	if len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": problems})
		return
	}

	rental, err := s.rentals.Create(c.Request.Context(), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rental)
}

func (s *Server) getRental(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rental, err := s.rentals.Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}

	session := currentSession(c)
	if rental.UserID != session.UserID && session.Role == models.RoleCustomer {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, rental)
}

func (s *Server) myRentals(c *gin.Context) {
	rentals, err := s.rentals.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rentals": rentals})
}

func (s *Server) cancelRental(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := s.rentals.Cancel(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			// Не раскрываем существование чужой аренды
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		case errors.Is(err, service.ErrAlreadyFinished):
			c.JSON(http.StatusConflict, gin.H{"error": "Rental is already finished"})
		default:
			s.fail(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.RentalStatusCancelled})
}
