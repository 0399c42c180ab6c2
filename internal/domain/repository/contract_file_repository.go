package repository

import (
	"context"

	"cleo-sign/internal/domain/entity"
)

// ContractFileRepository persists the local dual-signature state of contract
// files. The status poller only ever reads through GetByID; the two Set
// methods are reserved for the webhook path.
type ContractFileRepository interface {
	Create(ctx context.Context, file *entity.ContractFile) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.ContractFile, error)
	// AttachSignatureRequest records the provider request id on the row
	AttachSignatureRequest(ctx context.Context, id int64, signatureRequestID string) error
	SetUserSigned(ctx context.Context, id int64) error
	SetAdminSigned(ctx context.Context, id int64) error
}
