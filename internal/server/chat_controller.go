package server

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tikona/stockchat/internal/assistant"
)

type ChatRequest struct {
	SessionId string `json:"session_id"`
	Message   string `json:"message"`
	Symbol    string `json:"symbol"`
}

type ChatResponse struct {
	SessionId string `json:"session_id"`
	Reply     string `json:"reply"`
}

type chatController struct {
	svc *assistant.Assistant
	log *zap.Logger
}

func newChatController(svc *assistant.Assistant, log *zap.Logger) *chatController {
	return &chatController{svc: svc, log: log}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("", c.Ask)
	h.Get("/search", c.Search)
	h.Get("/:session/messages", c.Messages)
	h.Get("/:session/export", c.Export)
}

// Ask completes one conversation turn. Empty messages are rejected here;
// the store itself accepts whatever the orchestrator hands it.
func (c *chatController) Ask(ctx *fiber.Ctx) error {
	var req ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, "invalid request body"))
	}

	if strings.TrimSpace(req.Message) == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, "message is required"))
	}

	sessionId := strings.TrimSpace(req.SessionId)
	if sessionId == "" {
		sessionId = uuid.NewString()
	}
	session := &assistant.Session{ID: sessionId}

	reply, err := c.svc.CompleteTurn(ctx.Context(), session, req.Message, strings.TrimSpace(req.Symbol))
	if err != nil {
		// Only storage faults reach here; provider faults are reply text.
		c.log.Error("turn failed", zap.String("session", sessionId), zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	return ctx.JSON(SuccessResponse("Turn completed", ChatResponse{
		SessionId: sessionId,
		Reply:     reply,
	}))
}

func (c *chatController) Messages(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("session")

	msgs, err := c.svc.History(ctx.Context(), sessionId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	return ctx.JSON(SuccessResponse("Success get history", msgs))
}

func (c *chatController) Export(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("session")

	msgs, err := c.svc.History(ctx.Context(), sessionId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=chat_%s.txt", sessionId))
	return ctx.SendString(assistant.ExportTranscript(msgs))
}

func (c *chatController) Search(ctx *fiber.Ctx) error {
	symbol := strings.TrimSpace(ctx.Query("symbol"))
	if symbol == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, "symbol is required"))
	}

	msgs, err := c.svc.Search(ctx.Context(), symbol)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	return ctx.JSON(SuccessResponse("Success search messages", msgs))
}
