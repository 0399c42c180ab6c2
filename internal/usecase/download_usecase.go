package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cleo-sign/internal/config"
	"cleo-sign/internal/domain/entity"
	"cleo-sign/internal/domain/repository"
)

// pdfMagic is the leading byte signature of a PDF file
var pdfMagic = []byte("%PDF")

type DownloadUsecase interface {
	// DownloadSignedDocument blocks until the contract file is signed, then
	// fetches every signed document of the procedure. Warnings carry non-fatal
	// findings (e.g., a missing PDF signature) so callers decide severity.
	DownloadSignedDocument(ctx context.Context, contractFileID int64, signatureRequestID string, timeout time.Duration) ([]entity.SignedDocument, []entity.ValidationWarning, error)
}

type downloadUsecase struct {
	signatures      repository.SignatureRepository
	status          StatusUsecase
	downloadTimeout time.Duration
	logger          *zap.Logger
}

func NewDownloadUsecase(
	cfg *config.Config,
	signatures repository.SignatureRepository,
	status StatusUsecase,
	logger *zap.Logger,
) DownloadUsecase {
	return &downloadUsecase{
		signatures:      signatures,
		status:          status,
		downloadTimeout: cfg.Signing.DownloadTimeout,
		logger:          logger,
	}
}

func (u *downloadUsecase) DownloadSignedDocument(ctx context.Context, contractFileID int64, signatureRequestID string, timeout time.Duration) ([]entity.SignedDocument, []entity.ValidationWarning, error) {
	// Gate on the local signature flag before touching the provider
	if err := u.status.WaitUntilSigned(ctx, contractFileID, timeout); err != nil {
		return nil, nil, err
	}

	documents, err := u.signatures.ListDocuments(ctx, signatureRequestID)
	if err != nil {
		return nil, nil, err
	}
	if len(documents) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", entity.ErrNoDocuments, signatureRequestID)
	}

	var collected []entity.SignedDocument
	var warnings []entity.ValidationWarning

	for _, doc := range documents {
		// WaitUntilSigned only checked the local admin flag, not every
		// provider document, so partially signed lists are tolerated here
		if !doc.IsSigned {
			u.logger.Warn("Skipping unsigned document",
				zap.String("signature_request_id", signatureRequestID),
				zap.String("document_id", doc.ID),
				zap.String("filename", doc.Filename),
			)
			continue
		}

		content, err := u.downloadFile(ctx, doc.ID)
		if err != nil {
			u.logger.Error("Failed to download signed document",
				zap.String("document_id", doc.ID),
				zap.String("filename", doc.Filename),
				zap.Error(err),
			)
			continue
		}

		if len(content) == 0 {
			return nil, warnings, fmt.Errorf("%w: %s (%s)", entity.ErrEmptyDocument, doc.ID, doc.Filename)
		}

		// Best-effort sanity check, a warning rather than a failure
		if !bytes.HasPrefix(content, pdfMagic) {
			warning := entity.ValidationWarning{
				DocumentID: doc.ID,
				Filename:   doc.Filename,
				Message:    "document does not start with a PDF signature",
			}
			warnings = append(warnings, warning)
			u.logger.Warn("Downloaded document is missing the PDF signature",
				zap.String("document_id", doc.ID),
				zap.String("filename", doc.Filename),
			)
		}

		collected = append(collected, entity.SignedDocument{
			Name: doc.Filename,
			File: content,
			Size: len(content),
		})
	}

	if len(collected) == 0 {
		return nil, warnings, fmt.Errorf("%w: %s", entity.ErrNoSignedDocuments, signatureRequestID)
	}

	u.logger.Info("Signed documents downloaded",
		zap.String("signature_request_id", signatureRequestID),
		zap.Int("collected", len(collected)),
		zap.Int("warnings", len(warnings)),
	)

	return collected, warnings, nil
}

func (u *downloadUsecase) downloadFile(ctx context.Context, documentID string) ([]byte, error) {
	downloadCtx, cancel := context.WithTimeout(ctx, u.downloadTimeout)
	defer cancel()

	return u.signatures.DownloadDocumentFile(downloadCtx, documentID)
}
