package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"motorent/internal/config"
	"motorent/internal/domain"
	"motorent/internal/export"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"motorent/internal/models"
)

// Custom binding validation for the car status enum.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("carstatus", func(fl validator.FieldLevel) bool {
			return models.ValidCarStatus(fl.Field().String())
		})
	}
}

// Server exposes the rental system over HTTP.
type Server struct {
	cfg      *config.Config
	logger   *zerolog.Logger
	rentals  domain.RentalService
	cars     domain.CarService
	users    domain.UserService
	sessions domain.SessionManager
	exporter *export.Exporter
	router   *gin.Engine
	httpSrv  *http.Server
}

func NewServer(
	cfg *config.Config,
	logger *zerolog.Logger,
	rentals domain.RentalService,
	cars domain.CarService,
	users domain.UserService,
	sessions domain.SessionManager,
	exporter *export.Exporter,
) *Server {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	registerValidations()

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		rentals:  rentals,
		cars:     cars,
		users:    users,
		sessions: sessions,
		exporter: exporter,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())
	router.Use(s.rateLimiter())
	s.router = router

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.router.Group("/api/v1")

	// Каталог и котировки доступны без логина
	v1.GET("/cars", s.listCars)
	v1.GET("/cars/:id", s.getCar)
	v1.GET("/cars/:id/availability", s.carAvailability)
	v1.GET("/cars/:id/quote", s.carQuote)

	auth := v1.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)
	auth.POST("/logout", s.authRequired(), s.logout)

	customer := v1.Group("", s.authRequired())
	customer.GET("/me", s.me)
	customer.PATCH("/me", s.updateProfile)
	customer.GET("/me/rentals", s.myRentals)
	customer.POST("/rentals", s.createRental)
	customer.GET("/rentals/:id", s.getRental)
	customer.POST("/rentals/:id/cancel", s.cancelRental)

	admin := v1.Group("/admin", s.authRequired(), s.requireStaff())
	admin.POST("/cars", s.adminCreateCar)
	admin.PUT("/cars/:id", s.adminUpdateCar)
	admin.PATCH("/cars/:id/status", s.adminSetCarStatus)
	admin.DELETE("/cars/:id", s.adminDeleteCar)
	admin.GET("/users", s.adminListUsers)
	admin.PATCH("/users/:id/role", s.adminSetUserRole)
	admin.PATCH("/users/:id/status", s.adminSetUserStatus)
	admin.GET("/rentals", s.adminListRentals)
	admin.PATCH("/rentals/:id/status", s.adminSetRentalStatus)
	admin.DELETE("/rentals/:id", s.adminDeleteRental)
	admin.GET("/stats", s.adminStats)
	admin.GET("/rentals/export", s.adminExportRentals)
}

// Handler returns the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until it fails or Shutdown is called.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info().Str("addr", s.httpSrv.Addr).Msg("HTTP server listening")
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
