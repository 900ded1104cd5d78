package api

import (
	"errors"
	"net/http"

	"motorent/internal/service"

	"github.com/gin-gonic/gin"
)

func (s *Server) register(c *gin.Context) {
	if !s.loginRateLimit(c) {
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		s.fail(c, err)
		return
	}

	session, err := s.sessions.Create(c.Request.Context(), user)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	})
}

func (s *Server) login(c *gin.Context) {
	if !s.loginRateLimit(c) {
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		case errors.Is(err, service.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
		default:
			s.fail(c, err)
		}
		return
	}

	session, err := s.sessions.Create(c.Request.Context(), user)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	})
}

func (s *Server) logout(c *gin.Context) {
	session := currentSession(c)
	if session != nil {
		if err := s.sessions.Destroy(c.Request.Context(), session.Token); err != nil {
			s.fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (s *Server) me(c *gin.Context) {
	user, err := s.users.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	if err := s.users.UpdateProfile(c.Request.Context(), userID, req.Name, req.Phone); err != nil {
		s.fail(c, err)
		return
	}

	user, err := s.users.Get(c.Request.Context(), userID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
