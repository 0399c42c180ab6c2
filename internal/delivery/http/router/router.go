package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"cleo-sign/internal/config"
	"cleo-sign/internal/delivery/http/handler"
)

type Router struct {
	app              *fiber.App
	config           *config.Config
	procedureHandler *handler.ProcedureHandler
	healthHandler    *handler.HealthHandler
	webhookHandler   *handler.WebhookHandler
	logHandler       *handler.LogHandler
}

func NewRouter(
	cfg *config.Config,
	procedureHandler *handler.ProcedureHandler,
	healthHandler *handler.HealthHandler,
	webhookHandler *handler.WebhookHandler,
	logHandler *handler.LogHandler,
) *Router {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: customErrorHandler,
	})

	return &Router{
		app:              app,
		config:           cfg,
		procedureHandler: procedureHandler,
		healthHandler:    healthHandler,
		webhookHandler:   webhookHandler,
		logHandler:       logHandler,
	}
}

func (r *Router) Setup() *fiber.App {
	// Middleware
	r.app.Use(recover.New())
	r.app.Use(requestid.New())
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	if r.config.IsDevelopment() {
		r.app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	// Health check route
	r.app.Get("/health", r.healthHandler.Health)

	// Webhook route (at root level for external callbacks)
	r.app.Post("/webhook/signature", r.webhookHandler.SignatureCallback)

	// API v1 routes
	api := r.app.Group("/api/v1")
	{
		procedures := api.Group("/procedures")
		{
			procedures.Post("", r.procedureHandler.CreateProcedure)
			procedures.Get("/:requestID", r.procedureHandler.GetProcedureStatus)
			procedures.Get("/:requestID/signers", r.procedureHandler.GetSigners)
			procedures.Get("/:requestID/signers/:signerID/link", r.procedureHandler.GetSignerLink)
			procedures.Post("/:requestID/download", r.procedureHandler.DownloadSignedDocuments)
		}

		logs := api.Group("/logs")
		{
			logs.Get("", r.logHandler.GetLogs)
		}
	}

	return r.app
}

func (r *Router) GetApp() *fiber.App {
	return r.app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
		"error": fiber.Map{
			"code":    code,
			"message": err.Error(),
		},
	})
}
