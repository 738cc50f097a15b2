package api

import (
	"encoding/json"
	"errors"

	"kuroma-gateway/internal/domain/entity"
	"kuroma-gateway/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// IntentHandler serves POST /api/intent.
type IntentHandler struct {
	proxy *usecase.IntentProxy
}

func NewIntentHandler(proxy *usecase.IntentProxy) *IntentHandler {
	return &IntentHandler{proxy: proxy}
}

func (h *IntentHandler) HandleIntent(c *fiber.Ctx) error {
	payload, err := h.proxy.Execute(c.UserContext(), requestID(c), c.Body())
	if err != nil {
		return intentError(c, err)
	}

	// JSON bodies go out byte for byte; plain text is sent as a JSON string.
	if raw, ok := payload.(json.RawMessage); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(fiber.StatusOK).Send(raw)
	}
	return c.Status(fiber.StatusOK).JSON(payload)
}

// The Delivery layer maps the business error to HTTP status codes
func intentError(c *fiber.Ctx, err error) error {
	var upstreamErr *entity.UpstreamError
	switch {
	case errors.Is(err, entity.ErrInvalidBody):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body (must be JSON)."})
	case errors.Is(err, entity.ErrMissingPrompt):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Prompt is required."})
	case errors.Is(err, entity.ErrMisconfigured):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server misconfiguration: missing intent API URL."})
	case errors.As(err, &upstreamErr):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":    "Upstream intent API failed",
			"status":   upstreamErr.Status,
			"upstream": upstreamErr.Payload,
		})
	default:
		details := err.Error()
		var unreachable *entity.UnreachableError
		if errors.As(err, &unreachable) && unreachable.Err != nil {
			details = unreachable.Err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to connect to intent API.",
			"details": details,
		})
	}
}

// WaitlistHandler serves POST /api/waitlist.
type WaitlistHandler struct {
	waitlist *usecase.Waitlist
}

func NewWaitlistHandler(waitlist *usecase.Waitlist) *WaitlistHandler {
	return &WaitlistHandler{waitlist: waitlist}
}

func (h *WaitlistHandler) HandleJoin(c *fiber.Ctx) error {
	if _, err := h.waitlist.Join(c.UserContext(), requestID(c), c.Body()); err != nil {
		return waitlistError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// Store errors never echo the store's answer back to the browser.
func waitlistError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entity.ErrInvalidBody):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	case errors.Is(err, entity.ErrMissingEmail):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is required"})
	case errors.Is(err, entity.ErrInvalidEmail):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Enter a valid email"})
	case errors.Is(err, entity.ErrMisconfigured):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server misconfigured. Try again later."})
	case errors.Is(err, entity.ErrStoreUnreachable):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not reach database. Try again later."})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save your email. Try again later."})
	}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}
