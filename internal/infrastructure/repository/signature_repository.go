package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cleo-sign/internal/config"
	"cleo-sign/internal/domain/entity"
	"cleo-sign/internal/domain/repository"
	"cleo-sign/internal/infrastructure/httpclient"
)

type signatureRepository struct {
	config *config.Config
	client httpclient.HTTPClient
	logger *zap.Logger
}

func NewSignatureRepository(cfg *config.Config, client httpclient.HTTPClient, logger *zap.Logger) repository.SignatureRepository {
	return &signatureRepository{
		config: cfg,
		client: client,
		logger: logger,
	}
}

func (r *signatureRepository) CreateSignatureRequest(ctx context.Context, req *entity.ProviderSignatureRequest) (*entity.SignatureRequest, error) {
	var response entity.SignatureRequest

	err := r.client.Post(ctx, "/signature_requests", req, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to create signature request: %w", err)
	}

	return &response, nil
}

func (r *signatureRepository) UploadDocument(ctx context.Context, requestID, filename string, content []byte) (*entity.ProviderDocument, error) {
	var response entity.ProviderDocument

	path := fmt.Sprintf("/signature_requests/%s/documents", requestID)
	fields := map[string]string{
		"nature": entity.DocumentNatureSignable,
	}
	files := map[string]httpclient.FileUpload{
		"file": {
			Filename: filename,
			Content:  content,
		},
	}

	err := r.client.PostMultipart(ctx, path, fields, files, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}

	return &response, nil
}

func (r *signatureRepository) AddSigner(ctx context.Context, requestID string, req *entity.ProviderSignerRequest) (*entity.ProviderSigner, error) {
	var response entity.ProviderSigner

	path := fmt.Sprintf("/signature_requests/%s/signers", requestID)
	err := r.client.Post(ctx, path, req, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to add signer: %w", err)
	}

	return &response, nil
}

func (r *signatureRepository) ActivateSignatureRequest(ctx context.Context, requestID string) (*entity.SignatureRequest, error) {
	var response entity.SignatureRequest

	path := fmt.Sprintf("/signature_requests/%s/activate", requestID)
	err := r.client.Post(ctx, path, nil, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to activate signature request: %w", err)
	}

	return &response, nil
}

func (r *signatureRepository) GetSignatureRequest(ctx context.Context, requestID string) (*entity.SignatureRequest, error) {
	var response entity.SignatureRequest

	path := fmt.Sprintf("/signature_requests/%s", requestID)
	err := r.client.Get(ctx, path, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to get signature request: %w", err)
	}

	return &response, nil
}

func (r *signatureRepository) ListSigners(ctx context.Context, requestID string) ([]entity.ProviderSigner, error) {
	var response []entity.ProviderSigner

	path := fmt.Sprintf("/signature_requests/%s/signers", requestID)
	err := r.client.Get(ctx, path, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to list signers: %w", err)
	}

	return response, nil
}

func (r *signatureRepository) ListDocuments(ctx context.Context, requestID string) ([]entity.ProviderDocument, error) {
	var response []entity.ProviderDocument

	path := fmt.Sprintf("/signature_requests/%s/documents", requestID)
	err := r.client.Get(ctx, path, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return response, nil
}

func (r *signatureRepository) DownloadDocumentFile(ctx context.Context, documentID string) ([]byte, error) {
	path := fmt.Sprintf("/documents/%s/file", documentID)
	content, err := r.client.GetBinary(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to download document file: %w", err)
	}

	return content, nil
}

func (r *signatureRepository) CancelSignatureRequest(ctx context.Context, requestID string) error {
	path := fmt.Sprintf("/signature_requests/%s", requestID)
	if err := r.client.Delete(ctx, path, nil); err != nil {
		return fmt.Errorf("failed to cancel signature request: %w", err)
	}

	r.logger.Info("Signature request cancelled",
		zap.String("signature_request_id", requestID),
	)
	return nil
}
