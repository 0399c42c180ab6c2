package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"cleo-sign/internal/domain/entity"
	"cleo-sign/internal/usecase"
)

type ProcedureHandler struct {
	procedures usecase.ProcedureUsecase
	status     usecase.StatusUsecase
	downloads  usecase.DownloadUsecase
	logger     *zap.Logger
}

func NewProcedureHandler(
	procedures usecase.ProcedureUsecase,
	status usecase.StatusUsecase,
	downloads usecase.DownloadUsecase,
	logger *zap.Logger,
) *ProcedureHandler {
	return &ProcedureHandler{
		procedures: procedures,
		status:     status,
		downloads:  downloads,
		logger:     logger,
	}
}

// CreateProcedure godoc
// @Summary Create a signature procedure
// @Description Builds and activates an ordered two-signer signature procedure
// @Tags procedures
// @Accept json
// @Produce json
// @Param request body entity.CreateProcedureRequest true "Procedure request"
// @Success 201 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/procedures [post]
func (h *ProcedureHandler) CreateProcedure(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req entity.CreateProcedureRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	result, err := h.procedures.CreateSignatureProcedure(ctx, &req)
	if err != nil {
		h.logger.Error("Failed to create signature procedure", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}

	return c.Status(fiber.StatusCreated).JSON(
		entity.NewSuccessResponse(result, "Signature procedure created successfully"),
	)
}

// GetProcedureStatus godoc
// @Summary Get procedure completion status
// @Tags procedures
// @Produce json
// @Param requestID path string true "Signature request ID"
// @Success 200 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/procedures/{requestID} [get]
func (h *ProcedureHandler) GetProcedureStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()
	requestID := c.Params("requestID")

	completed, err := h.status.IsProcedureCompleted(ctx, requestID)
	if err != nil {
		h.logger.Error("Failed to get procedure status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}

	return c.JSON(entity.NewSuccessResponse(fiber.Map{
		"signature_request_id": requestID,
		"completed":            completed,
	}, "Procedure status retrieved successfully"))
}

// GetSigners godoc
// @Summary List procedure signers
// @Tags procedures
// @Produce json
// @Param requestID path string true "Signature request ID"
// @Success 200 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/procedures/{requestID}/signers [get]
func (h *ProcedureHandler) GetSigners(c *fiber.Ctx) error {
	ctx := c.UserContext()
	requestID := c.Params("requestID")

	signers, err := h.status.GetSigners(ctx, requestID)
	if err != nil {
		h.logger.Error("Failed to get signers", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}

	return c.JSON(entity.NewSuccessResponse(signers, "Signers retrieved successfully"))
}

// GetSignerLink godoc
// @Summary Get a signer's direct signing link
// @Description Returns null data when the signer has already signed or cannot act yet
// @Tags procedures
// @Produce json
// @Param requestID path string true "Signature request ID"
// @Param signerID path string true "Signer ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/procedures/{requestID}/signers/{signerID}/link [get]
func (h *ProcedureHandler) GetSignerLink(c *fiber.Ctx) error {
	ctx := c.UserContext()
	requestID := c.Params("requestID")
	signerID := c.Params("signerID")

	link, err := h.status.GetSignerLink(ctx, requestID, signerID)
	if err != nil {
		if errors.Is(err, entity.ErrSignerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(
				entity.NewErrorResponse("NOT_FOUND", err.Error()),
			)
		}
		h.logger.Error("Failed to get signer link", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}

	if link == "" {
		return c.JSON(entity.NewSuccessResponse(nil, "Signer has no pending action"))
	}

	return c.JSON(entity.NewSuccessResponse(fiber.Map{
		"signer_id":      signerID,
		"signature_link": link,
	}, "Signer link retrieved successfully"))
}

// DownloadRequest is the body for the blocking download endpoint
type DownloadRequest struct {
	ContractFileID int64 `json:"contract_file_id"`
	TimeoutSeconds int   `json:"timeout_seconds,omitempty"`
}

// DownloadSignedDocuments godoc
// @Summary Download signed documents
// @Description Blocks until the contract file is marked signed, then downloads every signed artifact
// @Tags procedures
// @Accept json
// @Produce json
// @Param requestID path string true "Signature request ID"
// @Param request body DownloadRequest true "Download request"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Failure 408 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/procedures/{requestID}/download [post]
func (h *ProcedureHandler) DownloadSignedDocuments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	requestID := c.Params("requestID")

	var req DownloadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}
	if req.ContractFileID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "contract_file_id is required"),
		)
	}

	timeout := time.Duration(req.TimeoutSeconds) * time.Second

	documents, warnings, err := h.downloads.DownloadSignedDocument(ctx, req.ContractFileID, requestID, timeout)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrWaitTimeout):
			return c.Status(fiber.StatusRequestTimeout).JSON(
				entity.NewErrorResponse("TIMEOUT", err.Error()),
			)
		case errors.Is(err, entity.ErrContractFileNotFound):
			return c.Status(fiber.StatusNotFound).JSON(
				entity.NewErrorResponse("NOT_FOUND", err.Error()),
			)
		case errors.Is(err, entity.ErrNoDocuments), errors.Is(err, entity.ErrNoSignedDocuments):
			return c.Status(fiber.StatusNotFound).JSON(
				entity.NewErrorResponse("NO_SIGNED_DOCUMENTS", err.Error()),
			)
		default:
			h.logger.Error("Failed to download signed documents", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(
				entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
			)
		}
	}

	return c.JSON(entity.NewSuccessResponse(fiber.Map{
		"documents": documents,
		"warnings":  warnings,
	}, "Signed documents downloaded successfully"))
}
