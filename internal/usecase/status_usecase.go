package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cleo-sign/internal/config"
	"cleo-sign/internal/domain/entity"
	"cleo-sign/internal/domain/repository"
)

// Fallback web hosts when the provider response carries no signature link
const (
	productionAppHost = "https://yousign.app"
	sandboxAppHost    = "https://staging-app.yousign.com"
)

type StatusUsecase interface {
	// GetSignerLink returns the direct signing link for a signer, or an empty
	// string when the signer has already signed or cannot act yet
	GetSignerLink(ctx context.Context, signatureRequestID, signerID string) (string, error)
	// GetSigners returns the full normalized signer list
	GetSigners(ctx context.Context, signatureRequestID string) ([]entity.SignerView, error)
	// IsProcedureCompleted reports whether the remote procedure is done
	IsProcedureCompleted(ctx context.Context, signatureRequestID string) (bool, error)
	// WaitUntilSigned blocks until the contract file's admin signature flag is
	// set, the timeout elapses (entity.ErrWaitTimeout) or ctx is cancelled.
	// A zero timeout uses the configured default.
	WaitUntilSigned(ctx context.Context, contractFileID int64, timeout time.Duration) error
}

type statusUsecase struct {
	signatures repository.SignatureRepository
	contracts  repository.ContractFileRepository
	sandbox    bool
	logger     *zap.Logger

	// Injected so tests run without real sleeps
	settleDelay  time.Duration
	pollInterval time.Duration
	waitTimeout  time.Duration
}

func NewStatusUsecase(
	cfg *config.Config,
	signatures repository.SignatureRepository,
	contracts repository.ContractFileRepository,
	logger *zap.Logger,
) StatusUsecase {
	return &statusUsecase{
		signatures:   signatures,
		contracts:    contracts,
		sandbox:      cfg.Provider.IsSandbox(),
		logger:       logger,
		settleDelay:  cfg.Signing.SettleDelay,
		pollInterval: cfg.Signing.WaitPollInterval,
		waitTimeout:  cfg.Signing.WaitTimeout,
	}
}

func (u *statusUsecase) GetSignerLink(ctx context.Context, signatureRequestID, signerID string) (string, error) {
	// The provider is eventually consistent right after activation; give it a
	// moment before reading the signers back
	if err := sleepCtx(ctx, u.settleDelay); err != nil {
		return "", err
	}

	signers, err := u.signatures.ListSigners(ctx, signatureRequestID)
	if err != nil {
		return "", err
	}

	var target *entity.ProviderSigner
	for i := range signers {
		if signers[i].ID == signerID {
			target = &signers[i]
			break
		}
	}
	if target == nil {
		return "", fmt.Errorf("%w: %s", entity.ErrSignerNotFound, signerID)
	}

	switch target.Status {
	case entity.SignerStatusSigned:
		// Nothing left for this signer to do
		return "", nil
	case entity.SignerStatusNotified, entity.SignerStatusPending:
		if target.SignatureLink != "" {
			return target.SignatureLink, nil
		}
		return u.fallbackLink(signatureRequestID), nil
	default:
		// Signer cannot act yet (e.g., waiting on an earlier signer)
		u.logger.Info("Signer cannot act yet",
			zap.String("signature_request_id", signatureRequestID),
			zap.String("signer_id", signerID),
			zap.String("status", target.Status),
		)
		return "", nil
	}
}

func (u *statusUsecase) GetSigners(ctx context.Context, signatureRequestID string) ([]entity.SignerView, error) {
	signers, err := u.signatures.ListSigners(ctx, signatureRequestID)
	if err != nil {
		return nil, err
	}
	return NormalizeSigners(signers), nil
}

func (u *statusUsecase) IsProcedureCompleted(ctx context.Context, signatureRequestID string) (bool, error) {
	request, err := u.signatures.GetSignatureRequest(ctx, signatureRequestID)
	if err != nil {
		return false, err
	}
	return request.Status == entity.RequestStatusDone, nil
}

func (u *statusUsecase) WaitUntilSigned(ctx context.Context, contractFileID int64, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = u.waitTimeout
	}

	deadline := time.Now().Add(timeout)

	u.logger.Info("Waiting for contract file to be signed",
		zap.Int64("contract_file_id", contractFileID),
		zap.Duration("timeout", timeout),
		zap.Duration("poll_interval", u.pollInterval),
	)

	for {
		file, err := u.contracts.GetByID(ctx, contractFileID)
		if err != nil {
			return err
		}
		if file.IsSignedByAdmin {
			u.logger.Info("Contract file signed",
				zap.Int64("contract_file_id", contractFileID),
			)
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return fmt.Errorf("%w: contract file %d after %s", entity.ErrWaitTimeout, contractFileID, timeout)
		}

		wait := u.pollInterval
		if wait > remaining {
			wait = remaining
		}
		if err := sleepCtx(ctx, wait); err != nil {
			return err
		}
	}
}

func (u *statusUsecase) fallbackLink(signatureRequestID string) string {
	host := productionAppHost
	if u.sandbox {
		host = sandboxAppHost
	}
	return fmt.Sprintf("%s/signature_requests/%s", host, signatureRequestID)
}

// sleepCtx sleeps for d or until ctx is cancelled
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
