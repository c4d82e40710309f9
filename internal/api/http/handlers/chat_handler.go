package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/E72-BI/cartao-santa-casa/internal/api/dto"
	"github.com/E72-BI/cartao-santa-casa/internal/service"
)

// ChatHandler exposes the canned-response assistant.
type ChatHandler struct {
	assistant *service.AssistantService
}

// NewChatHandler constructs handler.
func NewChatHandler(assistant *service.AssistantService) *ChatHandler {
	return &ChatHandler{assistant: assistant}
}

// Send handles POST /chat.
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Message) == "" {
		return fiber.NewError(http.StatusBadRequest, "message required")
	}

	reply, err := h.assistant.Respond(c.UserContext(), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ChatResponse{Reply: reply}})
}
