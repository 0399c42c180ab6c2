package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"cleo-sign/internal/domain/entity"
	"cleo-sign/internal/infrastructure/repository"
)

type LogHandler struct {
	logs   repository.APILogRepository
	logger *zap.Logger
}

func NewLogHandler(logs repository.APILogRepository, logger *zap.Logger) *LogHandler {
	return &LogHandler{
		logs:   logs,
		logger: logger,
	}
}

// GetLogs godoc
// @Summary List recent provider API logs
// @Tags logs
// @Produce json
// @Param limit query int false "Maximum entries" default(50)
// @Success 200 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/logs [get]
func (h *LogHandler) GetLogs(c *fiber.Ctx) error {
	ctx := c.UserContext()

	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	logs, err := h.logs.List(ctx, limit)
	if err != nil {
		h.logger.Error("Failed to list API logs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}

	return c.JSON(entity.NewSuccessResponse(logs, "API logs retrieved successfully"))
}
