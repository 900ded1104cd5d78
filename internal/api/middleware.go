package api

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"motorent/internal/metrics"
	"motorent/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	ctxSessionKey = "session"
	ctxUserIDKey  = "user_id"

	sessionCookie = "session_token"
)

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		metrics.IncHTTP(c.Request.Method, path, strconv.Itoa(status))

		event := s.logger.Info()
		if status >= http.StatusInternalServerError {
			event = s.logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// rateLimiter keeps a token bucket per client IP. Entries live for the
// process lifetime; the per-IP footprint is two words.
func (s *Server) rateLimiter() gin.HandlerFunc {
	var limiters sync.Map

	rps := rate.Limit(s.cfg.RateLimit.RPS)
	burst := s.cfg.RateLimit.Burst

	return func(c *gin.Context) {
		key := c.ClientIP()
		val, _ := limiters.LoadOrStore(key, rate.NewLimiter(rps, burst))
		limiter := val.(*rate.Limiter)

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}

// authRequired resolves the bearer token or session cookie into a
// session and aborts with 401 when there is none.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				token = cookie
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		session, err := s.sessions.Get(c.Request.Context(), token)
		if err != nil {
			s.logger.Error().Err(err).Msg("session lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msgDatabaseError})
			return
		}
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(ctxSessionKey, session)
		c.Set(ctxUserIDKey, session.UserID)
		c.Next()
	}
}

// requireStaff gates the back office to staff and admin roles.
func (s *Server) requireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := currentSession(c)
		if session == nil || (session.Role != models.RoleStaff && session.Role != models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			return
		}
		c.Next()
	}
}

// loginRateLimit throttles credential guessing through the session
// store so the counter is shared between instances.
func (s *Server) loginRateLimit(c *gin.Context) bool {
	allowed, err := s.sessions.CheckRateLimit(c.Request.Context(),
		"auth:"+c.ClientIP(), models.RateLimitRequests, time.Duration(models.RateLimitWindow)*time.Second)
	if err != nil {
		s.logger.Warn().Err(err).Msg("auth rate limit check failed")
		return true
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts, try again later"})
		return false
	}
	return true
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func currentSession(c *gin.Context) *models.Session {
	val, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil
	}
	session, _ := val.(*models.Session)
	return session
}

func currentUserID(c *gin.Context) int64 {
	session := currentSession(c)
	if session == nil {
		return 0
	}
	return session.UserID
}
