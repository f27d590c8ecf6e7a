package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/donggunkwak/Brainwave/internal/cache"
	"github.com/donggunkwak/Brainwave/internal/config"
	"github.com/donggunkwak/Brainwave/internal/database"
	"github.com/donggunkwak/Brainwave/internal/middleware"
	"github.com/donggunkwak/Brainwave/internal/models"
	"github.com/donggunkwak/Brainwave/internal/repository"
	"github.com/donggunkwak/Brainwave/internal/service"
	"github.com/donggunkwak/Brainwave/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       *session.Store
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	likeRepo       repository.LikeRepository
	friendRepo     repository.FriendRepository
	userService    *service.UserService
	postService    *service.PostService
	commentService *service.CommentService
	likeService    *service.LikeService
	friendService  *service.FriendService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("brainwave-api"),
		sessions:       session.NewStore(redisClient, cfg.SessionSecret, cfg.SessionTTL),
		userRepo:       repository.NewUserRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		likeRepo:       repository.NewLikeRepository(db),
		friendRepo:     repository.NewFriendRepository(db),
	}

	server.userService = service.NewUserService(server.userRepo, server.friendRepo, server.sessions.DestroyAll)
	server.postService = service.NewPostService(server.postRepo, server.userRepo)
	server.commentService = service.NewCommentService(server.commentRepo, server.postRepo)
	server.likeService = service.NewLikeService(server.likeRepo, server.postRepo, server.userRepo)
	server.friendService = service.NewFriendService(server.friendRepo, server.userRepo)

	return server
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
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
		// Never rate-limit preflight requests; they are handled by CORS.
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

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Brainwave Metrics Dashboard",
	}))

	// Session routes
	api.Post("/login", s.GuestRequired(), middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	api.Post("/logout", s.SessionRequired(), s.Logout)
	api.Get("/session", s.SessionRequired(), s.GetSession)

	// User routes. Specific /users/<literal> and /:username/<resource> routes
	// go before the generic /:username route.
	users := api.Group("/users")
	users.Post("/", s.GuestRequired(), middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.CreateUser)
	users.Get("/", s.GetUsers)
	users.Patch("/username", s.SessionRequired(), s.UpdateUsername)
	users.Patch("/password", s.SessionRequired(), s.UpdatePassword)
	users.Delete("/", s.SessionRequired(), s.DeleteAccount)
	users.Get("/:username/likes", s.GetUserLikes)
	users.Get("/:username", s.GetUserProfile)

	// Post routes
	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", s.SessionRequired(), middleware.RateLimit(
		s.redis, 10, time.Minute, "create_post"), s.CreatePost)
	posts.Get("/:postId/comments", s.GetComments)
	posts.Post("/:postId/comments", s.SessionRequired(), middleware.RateLimit(
		s.redis, 20, time.Minute, "create_comment"), s.CreateComment)
	posts.Patch("/:postId/comments/:commentId", s.SessionRequired(), s.UpdateComment)
	posts.Delete("/:postId/comments/:commentId", s.SessionRequired(), s.DeleteComment)
	posts.Get("/:postId/likes", s.GetPostLikes)
	posts.Post("/:postId/likes", s.SessionRequired(), s.LikePost)
	posts.Delete("/:postId/likes", s.SessionRequired(), s.UnlikePost)
	posts.Get("/:id", s.GetPost)
	posts.Patch("/:id", s.SessionRequired(), s.UpdatePost)
	posts.Delete("/:id", s.SessionRequired(), s.DeletePost)

	// Friend routes
	friends := api.Group("/friends", s.SessionRequired())
	friends.Get("/", s.GetFriends)
	friends.Delete("/:friend", s.RemoveFriend)

	friendOps := api.Group("/friend", s.SessionRequired())
	friendOps.Get("/requests", s.GetFriendRequests)
	friendOps.Post("/requests/:to", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "friend_request"), s.SendFriendRequest)
	friendOps.Delete("/requests/:to", s.CancelFriendRequest)
	friendOps.Put("/accept/:from", s.AcceptFriendRequest)
	friendOps.Put("/reject/:from", s.RejectFriendRequest)
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

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Sessions live in Redis, so readiness requires it.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// SessionRequired returns middleware that resolves the session cookie and
// rejects the request when no valid session is present.
func (s *Server) SessionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(sessionCookie)

		userID, err := s.sessions.Resolve(c.UserContext(), token)
		if err != nil {
			return models.RespondWithAppError(c, err)
		}

		c.Locals("userID", userID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// GuestRequired returns middleware that rejects requests carrying a valid
// session. Signup and login are guest-only operations.
func (s *Server) GuestRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(sessionCookie)
		if token == "" {
			return c.Next()
		}

		if _, err := s.sessions.Resolve(c.UserContext(), token); err == nil {
			return models.RespondWithAppError(c,
				models.NewAlreadyAuthenticatedError("Already logged in"))
		}

		// A stale cookie is as good as no cookie.
		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Brainwave API",
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

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
