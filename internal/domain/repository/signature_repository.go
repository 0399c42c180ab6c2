package repository

import (
	"context"

	"cleo-sign/internal/domain/entity"
)

// SignatureRepository is the remote signature provider surface used by the
// orchestrator. One method per provider endpoint, no retry at this layer.
type SignatureRepository interface {
	// CreateSignatureRequest creates a draft signature request
	CreateSignatureRequest(ctx context.Context, req *entity.ProviderSignatureRequest) (*entity.SignatureRequest, error)

	// UploadDocument attaches a signable document to a draft request
	UploadDocument(ctx context.Context, requestID, filename string, content []byte) (*entity.ProviderDocument, error)

	// AddSigner registers a signer on a draft request
	AddSigner(ctx context.Context, requestID string, req *entity.ProviderSignerRequest) (*entity.ProviderSigner, error)

	// ActivateSignatureRequest transitions the request from draft to active,
	// triggering the provider to notify the first signer
	ActivateSignatureRequest(ctx context.Context, requestID string) (*entity.SignatureRequest, error)

	// GetSignatureRequest fetches the current state of a request
	GetSignatureRequest(ctx context.Context, requestID string) (*entity.SignatureRequest, error)

	// ListSigners fetches all signers of a request
	ListSigners(ctx context.Context, requestID string) ([]entity.ProviderSigner, error)

	// ListDocuments fetches all documents of a request
	ListDocuments(ctx context.Context, requestID string) ([]entity.ProviderDocument, error)

	// DownloadDocumentFile downloads a document's binary content
	DownloadDocumentFile(ctx context.Context, documentID string) ([]byte, error)

	// CancelSignatureRequest deletes a request, used as best-effort compensation
	// when procedure building fails mid-sequence
	CancelSignatureRequest(ctx context.Context, requestID string) error
}
