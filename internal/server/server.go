// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"psidiario/internal/bootstrap"
	"psidiario/internal/config"
	"psidiario/internal/export"
	"psidiario/internal/middleware"
	"psidiario/internal/models"
	"psidiario/internal/repository"
	"psidiario/internal/service"
	"psidiario/internal/session"
	"psidiario/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	store          store.Store
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	entryRepo      repository.EntryRepository
	authService    *service.AuthService
	entryService   *service.EntryService
	reportService  *service.ReportService
	bookingService *service.BookingService
	session        *session.Manager
	exporter       export.Generator
}

// NewServer creates a new server instance, opening the storage backend named
// by the configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	st, redisClient, err := bootstrap.OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, st, redisClient), nil
}

// NewServerWithDeps creates a Server using an already-opened store. Use this
// in tests or when a bootstrap layer establishes the backend itself.
func NewServerWithDeps(cfg *config.Config, st store.Store, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(st)
	entryRepo := repository.NewEntryRepository(st)

	server := &Server{
		config:         cfg,
		store:          st,
		redis:          redisClient,
		userRepo:       userRepo,
		entryRepo:      entryRepo,
		authService:    service.NewAuthService(userRepo),
		entryService:   service.NewEntryService(entryRepo),
		reportService:  service.NewReportService(entryRepo),
		bookingService: service.NewBookingService(cfg.BookingWhatsAppURL, cfg.BookingEmail),
		session:        session.NewManager(st),
		exporter:       export.NewPDFGenerator(),
	}

	// The request metrics collectors register globally, which only works
	// once per process; tests build many servers and skip them.
	if cfg.Env != "test" {
		server.promMiddleware = fiberprometheus.New("psidiario-api")
	}

	// Restore the persisted session so a restart lands the patient back on
	// the screen the guard allows, not on a forced login.
	server.session.Hydrate(context.Background(), session.ViewLogin)

	return server
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Psi Diário Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", s.routeLimiter(3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", s.routeLimiter(10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)

	// Session state and navigation are readable without a token so the
	// client can decide which screen to draw before logging in.
	api.Get("/session", s.GetSession)
	api.Post("/navigate", s.Navigate)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	entries := protected.Group("/entries")
	entries.Post("/", s.CreateEntry)
	entries.Get("/", s.GetEntries)

	protected.Get("/dashboard", s.GetDashboard)

	reports := protected.Group("/reports")
	reports.Get("/", s.GetReport)
	reports.Get("/export", s.routeLimiter(5, time.Minute, "export_pdf"), s.ExportReport)

	protected.Get("/booking/links", s.GetBookingLinks)
}

// routeLimiter enforces a per-route request limit. Redis backs the counter
// when a client is available so limits hold across replicas; the memory,
// sqlite and postgres drivers run without one, so those deployments fall back
// to the in-process fiber limiter instead of silently failing open.
func (s *Server) routeLimiter(limit int, window time.Duration, name string) fiber.Handler {
	if s.redis != nil {
		return middleware.RateLimit(s.redis, limit, window, name)
	}
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		Next: func(c *fiber.Ctx) bool {
			switch os.Getenv("APP_ENV") {
			case "test", "development", "":
				return true
			}
			return false
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return name + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		},
	})
}

// HealthCheck is a legacy/simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	storeStatus := "healthy"
	if _, err := s.store.Get(ctx, store.SessionKey); err != nil {
		storeStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if storeStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Psi Diário",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"store": storeStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		// Parse and validate token
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			// Validate signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		// Extract claims
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		// Validate issuer and audience
		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "psidiario-api" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "psidiario-client" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		// Extract user ID from subject claim
		userID, ok := claims["sub"].(string)
		if !ok || userID == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}

		// Store user ID in context
		c.Locals("userID", userID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// currentUserID returns the authenticated user's ID. Only valid behind
// AuthRequired.
func (s *Server) currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("userID").(string)
	return userID
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Psi Diário API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if err := s.store.Close(); err != nil {
		log.Printf("error closing store: %v", err)
	}

	log.Println("Server shutdown complete")
	return nil
}
