package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/tikona/stockchat/internal/assistant"
	"github.com/tikona/stockchat/internal/config"
)

type Server struct {
	app *fiber.App
	cfg *config.Config
	log *zap.Logger
}

func New(cfg *config.Config, svc *assistant.Assistant, log *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName: "stockchat",
	})

	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", nil))
	})

	api := app.Group("/api")
	newChatController(svc, log).RegisterRoutes(api)

	return &Server{
		app: app,
		cfg: cfg,
		log: log,
	}
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.log.Info("http server listening", zap.Int("port", s.cfg.HTTPPort))
	return s.app.Listen(fmt.Sprintf(":%d", s.cfg.HTTPPort))
}
