package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"motorent/internal/models"
	"motorent/internal/service"

	"github.com/gin-gonic/gin"
)

func (s *Server) adminCreateCar(c *gin.Context) {
	var req carRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	car, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid daily rate"})
		return
	}

	if err := s.cars.Create(c.Request.Context(), car); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

func (s *Server) adminUpdateCar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req carRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	car, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid daily rate"})
		return
	}
	car.ID = id

	if err := s.cars.Update(c.Request.Context(), car); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (s *Server) adminSetCarStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.cars.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (s *Server) adminDeleteCar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.cars.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) adminListUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (s *Server) adminSetUserRole(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.users.SetRole(c.Request.Context(), id, req.Role); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "role": req.Role})
}

func (s *Server) adminSetUserStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.users.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (s *Server) adminListRentals(c *gin.Context) {
	filter := models.RentalFilter{Status: c.Query("status")}

	if raw := c.Query("car_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.CarID = id
		}
	}
	if raw := c.Query("user_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.UserID = id
		}
	}
	if raw := c.Query("from"); raw != "" {
		if t, err := parseDate(raw); err == nil {
			filter.From = t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := parseDate(raw); err == nil {
			filter.To = t
		}
	}

	rentals, err := s.rentals.List(c.Request.Context(), filter)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rentals": rentals})
}

func (s *Server) adminSetRentalStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.rentals.UpdateStatus(c.Request.Context(), id, req.Status, req.Notes); err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (s *Server) adminDeleteRental(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.rentals.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) adminStats(c *gin.Context) {
	stats, err := s.rentals.Stats(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rentals_by_status": stats})
}

// adminExportRentals builds an Excel report and streams the file. The
// default period runs from a month back to two months ahead.
func (s *Server) adminExportRentals(c *gin.Context) {
	if s.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Export is not configured"})
		return
	}

	now := time.Now()
	start := now.AddDate(0, -models.DefaultExportRangeMonthsBefore, 0)
	end := now.AddDate(0, models.DefaultExportRangeMonthsAfter, 0)

	if raw := c.Query("from"); raw != "" {
		if t, err := parseDate(raw); err == nil {
			start = t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := parseDate(raw); err == nil {
			end = t
		}
	}

	path, err := s.exporter.RentalsReport(c.Request.Context(), start, end)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.FileAttachment(path, "rentals.xlsx")
}
