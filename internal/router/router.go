// Package router assembles the fiber application: middleware, metrics,
// swagger and the /api routes.
package router

import (
	"errors"
	"strings"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/securepulse/internal/handlers"
	"github.com/localnerve/securepulse/internal/middleware"
	"github.com/localnerve/securepulse/internal/types"
	"github.com/localnerve/securepulse/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	_ "github.com/localnerve/securepulse/docs/api" // Swagger docs
)

// Handlers groups the route handlers mounted under /api.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Users      *handlers.UserHandler
	Bracelets  *handlers.BraceletHandler
	HealthData *handlers.HealthDataHandler
	Alerts     *handlers.AlertHandler
	Health     *handlers.HealthHandler
}

type Options struct {
	ServiceName    string
	AllowedOrigins string
	Logger         *zap.Logger
	Tokens         middleware.TokenVerifier
	Handlers       Handlers

	// Registry receives the HTTP request metrics. Defaults to the prometheus
	// default registerer.
	Registry prometheus.Registerer

	// AccessLog enables fiber's request logger.
	AccessLog bool
}

func New(opts Options) *fiber.App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = "securepulse"
	}

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ErrorHandler:          errorHandler(log),
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(fiberlogger.New())
	}
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins(opts.AllowedOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.APIVersionHeader,
	}))

	// Prometheus metrics
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	prom := fiberprometheus.NewWithRegistry(registry, serviceName, "http", "", nil)
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	h := opts.Handlers
	authUser := middleware.AuthUser(opts.Tokens)

	api.Get("/health", h.Health.Check)

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)

	users := api.Group("/users", authUser)
	users.Get("/profile", h.Users.GetProfile)
	users.Put("/profile", h.Users.UpdateProfile)
	users.Post("/emergency-contacts", h.Users.AddContact)
	users.Get("/emergency-contacts", h.Users.ListContacts)
	users.Delete("/emergency-contacts/:contactId", h.Users.DeleteContact)

	bracelets := api.Group("/bracelets", authUser)
	bracelets.Post("/", h.Bracelets.Register)
	bracelets.Get("/", h.Bracelets.List)
	bracelets.Put("/:braceletId", h.Bracelets.Update)

	healthData := api.Group("/health-data", authUser)
	healthData.Post("/", h.HealthData.Record)
	healthData.Post("/batch", h.HealthData.RecordBatch)
	healthData.Get("/:braceletId", h.HealthData.List)

	alerts := api.Group("/emergency-alerts", authUser)
	alerts.Post("/", h.Alerts.Create)
	alerts.Get("/", h.Alerts.List)
	alerts.Put("/:alertId", h.Alerts.UpdateStatus)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	return app
}

// errorHandler renders errors returned by handlers and middleware in the
// standard envelope. Unexpected errors are logged and reported as a bare 500.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var custom *types.CustomError
		if errors.As(err, &custom) {
			return utils.CustomErrorResponse(c, custom)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			errorType := types.ErrorTypeValidation
			switch {
			case fe.Code == fiber.StatusNotFound:
				errorType = types.ErrorTypeNotFound
			case fe.Code >= fiber.StatusInternalServerError:
				return utils.InternalErrorResponse(c)
			}
			return utils.ErrorResponse(c, fe.Message, fe.Code, errorType)
		}

		log.Error("Unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.InternalErrorResponse(c)
	}
}

func allowedOrigins(origins string) string {
	origins = strings.TrimSpace(origins)
	if origins == "" {
		return "*"
	}
	return origins
}
