package handlers

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"shoplite/internal/assistant"
	"shoplite/internal/knowledge"
	"shoplite/internal/models"
	"shoplite/internal/services"
)

const maxChatMessageLength = 2000

// AssistantHandler handles customer support chat requests
type AssistantHandler struct {
	engine    *assistant.Engine
	kb        *knowledge.Store
	analytics *services.AnalyticsService
}

// NewAssistantHandler creates a new assistant handler. analytics may be nil;
// chat then works without persistence.
func NewAssistantHandler(engine *assistant.Engine, kb *knowledge.Store, analytics *services.AnalyticsService) *AssistantHandler {
	return &AssistantHandler{engine: engine, kb: kb, analytics: analytics}
}

// Chat processes one support message.
// POST /api/assistant/chat
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}
	if len(message) > maxChatMessageLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message too long",
		})
	}

	reply := h.engine.HandleQuery(c.Context(), message, req.Context)

	if h.analytics != nil {
		// Persistence failures must not fail the chat turn.
		logCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := h.analytics.LogChat(logCtx, models.ChatLog{
			Message:         message,
			Intent:          reply.Intent,
			Citations:       reply.Citations,
			FunctionsCalled: reply.FunctionsCalled,
			ResponseTimeMs:  reply.ResponseTimeMs,
		}); err != nil {
			log.Printf("⚠️ [ASSISTANT] Failed to persist chat log: %v", err)
		}
	}

	return c.JSON(reply)
}

// Health reports assistant pipeline readiness.
// GET /api/assistant/health
func (h *AssistantHandler) Health(c *fiber.Ctx) error {
	stats := h.kb.GetStats()
	return c.JSON(fiber.Map{
		"status":        "ok",
		"knowledgeBase": stats.TotalPolicies,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}
