package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"cleo-sign/internal/domain/entity"
	"cleo-sign/internal/usecase"
)

type WebhookHandler struct {
	usecase usecase.WebhookUsecase
	logger  *zap.Logger
}

func NewWebhookHandler(usecase usecase.WebhookUsecase, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// SignatureCallback godoc
// @Summary Signature provider webhook callback
// @Description Receives callbacks from the signature provider when a signer or procedure completes
// @Tags webhook
// @Accept json
// @Produce json
// @Param payload body entity.WebhookPayload true "Webhook payload"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /webhook/signature [post]
func (h *WebhookHandler) SignatureCallback(c *fiber.Ctx) error {
	ctx := c.UserContext()

	// Log raw body for debugging
	h.logger.Info("Received signature provider webhook",
		zap.String("body", string(c.Body())),
	)

	var payload entity.WebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		h.logger.Error("Failed to parse webhook payload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid webhook payload"),
		)
	}

	if payload.Data.SignatureRequest.ID == "" {
		h.logger.Error("Missing signature request ID in webhook payload")
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Missing signature request ID"),
		)
	}

	if err := h.usecase.ProcessWebhook(ctx, &payload); err != nil {
		h.logger.Error("Failed to process webhook",
			zap.String("signature_request_id", payload.Data.SignatureRequest.ID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}

	return c.JSON(entity.NewSuccessResponse(map[string]interface{}{
		"signature_request_id": payload.Data.SignatureRequest.ID,
		"event_name":           payload.EventName,
		"processed":            true,
	}, "Webhook processed successfully"))
}
