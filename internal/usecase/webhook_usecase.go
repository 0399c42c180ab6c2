package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cleo-sign/internal/domain/entity"
	"cleo-sign/internal/domain/repository"
)

type WebhookUsecase interface {
	// ProcessWebhook handles a provider callback and updates the local
	// contract file signature flags
	ProcessWebhook(ctx context.Context, payload *entity.WebhookPayload) error
}

type webhookUsecase struct {
	procedures ProcedureUsecase
	contracts  repository.ContractFileRepository
	logger     *zap.Logger
}

func NewWebhookUsecase(
	procedures ProcedureUsecase,
	contracts repository.ContractFileRepository,
	logger *zap.Logger,
) WebhookUsecase {
	return &webhookUsecase{
		procedures: procedures,
		contracts:  contracts,
		logger:     logger,
	}
}

func (u *webhookUsecase) ProcessWebhook(ctx context.Context, payload *entity.WebhookPayload) error {
	requestID := payload.Data.SignatureRequest.ID

	u.logger.Info("Processing provider webhook",
		zap.String("event_name", payload.EventName),
		zap.String("signature_request_id", requestID),
		zap.String("request_status", payload.Data.SignatureRequest.Status),
	)

	mapping, err := u.procedures.GetProcedureMapping(ctx, requestID)
	if err != nil {
		return fmt.Errorf("unknown signature request %s: %w", requestID, err)
	}

	switch payload.EventName {
	case entity.EventSignerDone:
		if payload.Data.Signer == nil {
			return fmt.Errorf("signer.done event without signer data for request %s", requestID)
		}
		// Only the first (user) signer flips the user flag; the admin's own
		// signature is covered by signature_request.done
		if payload.Data.Signer.ID != mapping.UserSignerID {
			u.logger.Info("Ignoring signer.done for non-user signer",
				zap.String("signature_request_id", requestID),
				zap.String("signer_id", payload.Data.Signer.ID),
			)
			return nil
		}
		if err := u.contracts.SetUserSigned(ctx, mapping.ContractFileID); err != nil {
			return fmt.Errorf("failed to mark contract file user-signed: %w", err)
		}
		u.logger.Info("Contract file marked user-signed",
			zap.Int64("contract_file_id", mapping.ContractFileID),
			zap.String("signature_request_id", requestID),
		)

	case entity.EventSignatureRequestDone:
		if err := u.contracts.SetAdminSigned(ctx, mapping.ContractFileID); err != nil {
			return fmt.Errorf("failed to mark contract file admin-signed: %w", err)
		}
		u.logger.Info("Contract file marked admin-signed",
			zap.Int64("contract_file_id", mapping.ContractFileID),
			zap.String("signature_request_id", requestID),
		)

	default:
		// Other events are acknowledged but carry no local state change
		u.logger.Info("Ignoring webhook event",
			zap.String("event_name", payload.EventName),
			zap.String("signature_request_id", requestID),
		)
	}

	return nil
}
