// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"fmt"
	"time"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/middleware"
	"quill/internal/repository"
	"quill/internal/service"
	"quill/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	cache  *cache.Cache
	files  storage.FileStore
	prom   *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository

	postService    *service.PostService
	commentService *service.CommentService
	followService  *service.FollowService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	redisClient := cache.Connect(cfg.RedisURL)

	files, err := storage.NewLocalStore(cfg.MediaDir)
	if err != nil {
		return nil, fmt.Errorf("media storage init failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisClient, files), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this to supply an in-memory database and a miniredis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, files storage.FileStore) *Server {
	c := cache.New(redisClient)

	// fiberprometheus registers on the global Prometheus registry, which
	// forbids duplicates; tests build many servers, so skip it there.
	var prom *fiberprometheus.FiberPrometheus
	if cfg.Env != "test" {
		prom = middleware.InitMetrics("quill-api")
	}

	s := &Server{
		config:      cfg,
		db:          db,
		redis:       redisClient,
		cache:       c,
		files:       files,
		prom:        prom,
		userRepo:    repository.NewUserRepository(db, c),
		postRepo:    repository.NewPostRepository(db),
		groupRepo:   repository.NewGroupRepository(db, c),
		commentRepo: repository.NewCommentRepository(db),
		followRepo:  repository.NewFollowRepository(db),
	}

	s.postService = service.NewPostService(s.postRepo, s.groupRepo, s.userRepo, s.followRepo, files, c)
	s.commentService = service.NewCommentService(s.commentRepo, s.postRepo)
	s.followService = service.NewFollowService(s.followRepo, s.userRepo)

	middleware.InitMiddleware(cfg)

	return s
}

// App builds the Fiber application with all middleware and routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "quill",
	})

	s.setupMiddleware(app)
	s.setupRoutes(app)

	return app
}

// Listen starts serving on the configured port.
func (s *Server) Listen() error {
	return s.App().Listen(":" + s.config.Port)
}

func (s *Server) setupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.prom != nil {
		app.Use(s.prom.Middleware)
	}

	app.Use(middleware.StructuredLogger())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

func (s *Server) setupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)

	if s.prom != nil {
		s.prom.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public feed routes
	api.Get("/posts", s.GetHomeFeed)
	api.Get("/posts/:id/comments", s.GetComments)
	api.Get("/posts/:id", s.GetPost)
	api.Get("/groups", s.GetGroups)
	api.Get("/groups/:slug/posts", s.GetGroupFeed)
	api.Get("/users/:username/posts", middleware.OptionalAuth, s.GetProfileFeed)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)
	protected.Get("/feed", s.GetFollowingFeed)
	protected.Post("/posts", middleware.RateLimit(s.redis, 10, time.Minute, "create_post"), s.CreatePost)
	protected.Post("/posts/:id/comments", middleware.RateLimit(s.redis, 30, time.Minute, "create_comment"), s.CreateComment)
	protected.Put("/posts/:id", s.UpdatePost)
	protected.Delete("/posts/:id", s.DeletePost)
	protected.Post("/users/:username/follow", s.FollowUser)
	protected.Delete("/users/:username/follow", s.UnfollowUser)
}

// HealthCheck reports liveness plus database reachability.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
		})
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"cache":  s.cache.Enabled(),
	})
}
