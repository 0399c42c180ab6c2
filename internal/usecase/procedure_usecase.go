package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"cleo-sign/internal/config"
	"cleo-sign/internal/domain/entity"
	"cleo-sign/internal/domain/repository"
)

const (
	// Redis key prefix mapping provider request ids to local contract files
	procedureKeyPrefix = "cleo:procedure:"
)

// MappingStore is the cache used to resolve a provider signature request back
// to its local contract file (webhook path). Satisfied by redis.RedisClient.
type MappingStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

// ProcedureMapping is stored in redis once a procedure is activated
type ProcedureMapping struct {
	ContractFileID int64  `json:"contract_file_id"`
	ProcedureName  string `json:"procedure_name"`
	DocumentName   string `json:"document_name"`
	UserSignerID   string `json:"user_signer_id"`
	AdminSignerID  string `json:"admin_signer_id"`
}

type ProcedureUsecase interface {
	// CreateSignatureProcedure builds and activates an ordered two-signer
	// signature procedure and returns the first signer's direct link
	CreateSignatureProcedure(ctx context.Context, req *entity.CreateProcedureRequest) (*entity.ProcedureResult, error)
	// GetProcedureMapping resolves a provider request id to its local contract file
	GetProcedureMapping(ctx context.Context, signatureRequestID string) (*ProcedureMapping, error)
}

type procedureUsecase struct {
	config       *config.Config
	signatures   repository.SignatureRepository
	contracts    repository.ContractFileRepository
	mappingStore MappingStore
	logger       *zap.Logger
}

func NewProcedureUsecase(
	cfg *config.Config,
	signatures repository.SignatureRepository,
	contracts repository.ContractFileRepository,
	mappingStore MappingStore,
	logger *zap.Logger,
) ProcedureUsecase {
	return &procedureUsecase{
		config:       cfg,
		signatures:   signatures,
		contracts:    contracts,
		mappingStore: mappingStore,
		logger:       logger,
	}
}

func (u *procedureUsecase) CreateSignatureProcedure(ctx context.Context, req *entity.CreateProcedureRequest) (*entity.ProcedureResult, error) {
	u.logger.Info("Creating signature procedure",
		zap.String("procedure_name", req.ProcedureName),
		zap.Int64("contract_file_id", req.ContractFileID),
		zap.Int("signers_count", len(req.Signers)),
	)

	if err := validateProcedureRequest(req); err != nil {
		return nil, err
	}

	// Decode the document up front so a bad payload fails before any remote
	// resource is created
	content, err := base64.StdEncoding.DecodeString(req.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document payload: %w", err)
	}

	// Step 1: create the signature request
	expiration := time.Now().AddDate(0, 0, u.config.Signing.ExpirationDays)
	request, err := u.signatures.CreateSignatureRequest(ctx, &entity.ProviderSignatureRequest{
		Name:           req.ProcedureName,
		DeliveryMode:   entity.DeliveryModeEmail,
		OrderedSigners: true,
		Timezone:       u.config.Signing.Timezone,
		ExpirationDate: expiration.Format("2006-01-02"),
		Metadata:       req.Metadata,
	})
	if err != nil {
		return nil, err
	}
	requestID := request.ID

	// Step 2: upload the document
	document, err := u.signatures.UploadDocument(ctx, requestID, req.DocumentName, content)
	if err != nil {
		return nil, u.cancelAfterFailure(ctx, requestID, err)
	}

	// Steps 3 and 4: register the signers in order. The second signer carries
	// insert_after_id so the provider only notifies them once the first has
	// signed.
	userSigner, err := u.signatures.AddSigner(ctx, requestID, buildSignerRequest(&req.Signers[0], document.ID, req.SignPage, ""))
	if err != nil {
		return nil, u.cancelAfterFailure(ctx, requestID, err)
	}

	adminSigner, err := u.signatures.AddSigner(ctx, requestID, buildSignerRequest(&req.Signers[1], document.ID, req.SignPage, userSigner.ID))
	if err != nil {
		return nil, u.cancelAfterFailure(ctx, requestID, err)
	}

	// Step 5: activate, transitioning draft to active and notifying signer 1
	activated, err := u.signatures.ActivateSignatureRequest(ctx, requestID)
	if err != nil {
		return nil, u.cancelAfterFailure(ctx, requestID, err)
	}

	// Step 6: re-fetch the signers for the normalized view and the first
	// signer's direct signing link
	signers, err := u.signatures.ListSigners(ctx, requestID)
	if err != nil {
		return nil, u.cancelAfterFailure(ctx, requestID, err)
	}

	views := NormalizeSigners(signers)
	userLink := ""
	for _, s := range signers {
		if s.ID == userSigner.ID {
			userLink = s.SignatureLink
			break
		}
	}

	if err := u.contracts.AttachSignatureRequest(ctx, req.ContractFileID, requestID); err != nil {
		u.logger.Warn("Failed to attach signature request to contract file",
			zap.Int64("contract_file_id", req.ContractFileID),
			zap.String("signature_request_id", requestID),
			zap.Error(err),
		)
		// The procedure is already live on the provider side, keep going
	}

	// Save the procedure mapping so the webhook can resolve the contract file
	mapping := ProcedureMapping{
		ContractFileID: req.ContractFileID,
		ProcedureName:  req.ProcedureName,
		DocumentName:   req.DocumentName,
		UserSignerID:   userSigner.ID,
		AdminSignerID:  adminSigner.ID,
	}
	mappingJSON, _ := json.Marshal(mapping)
	if err := u.mappingStore.Set(ctx, procedureKeyPrefix+requestID, string(mappingJSON), 0); err != nil {
		u.logger.Warn("Failed to save procedure mapping",
			zap.String("signature_request_id", requestID),
			zap.Error(err),
		)
	}

	u.logger.Info("Signature procedure activated",
		zap.String("signature_request_id", requestID),
		zap.String("status", activated.Status),
		zap.String("user_signer_id", userSigner.ID),
		zap.String("admin_signer_id", adminSigner.ID),
	)

	return &entity.ProcedureResult{
		SignatureRequestID: requestID,
		DocumentID:         document.ID,
		Status:             activated.Status,
		UserLink:           userLink,
		Signers:            views,
	}, nil
}

// GetProcedureMapping resolves a provider request id to its local contract file
func (u *procedureUsecase) GetProcedureMapping(ctx context.Context, signatureRequestID string) (*ProcedureMapping, error) {
	data, err := u.mappingStore.Get(ctx, procedureKeyPrefix+signatureRequestID)
	if err != nil {
		return nil, fmt.Errorf("procedure mapping not found: %w", err)
	}

	var mapping ProcedureMapping
	if err := json.Unmarshal([]byte(data), &mapping); err != nil {
		return nil, fmt.Errorf("failed to decode procedure mapping: %w", err)
	}

	return &mapping, nil
}

// cancelAfterFailure attempts a best-effort cancellation of the remote request
// when a later step fails, so no orphaned draft is left on the provider. The
// original error is always the one returned.
func (u *procedureUsecase) cancelAfterFailure(ctx context.Context, requestID string, cause error) error {
	u.logger.Error("Procedure step failed, cancelling signature request",
		zap.String("signature_request_id", requestID),
		zap.Error(cause),
	)

	if err := u.signatures.CancelSignatureRequest(ctx, requestID); err != nil {
		u.logger.Warn("Failed to cancel signature request after step failure",
			zap.String("signature_request_id", requestID),
			zap.Error(err),
		)
	}

	return cause
}

func validateProcedureRequest(req *entity.CreateProcedureRequest) error {
	if req.ProcedureName == "" {
		return fmt.Errorf("procedure_name is required")
	}
	if req.ContractFileID <= 0 {
		return fmt.Errorf("contract_file_id is required")
	}
	if req.Document == "" {
		return fmt.Errorf("document is required")
	}
	if req.DocumentName == "" {
		return fmt.Errorf("document_name is required")
	}
	if req.SignPage <= 0 {
		return fmt.Errorf("sign_page must be greater than 0")
	}
	if len(req.Signers) != 2 {
		return fmt.Errorf("exactly two signers are required (user then admin), got %d", len(req.Signers))
	}
	for i, signer := range req.Signers {
		if signer.Name == "" {
			return fmt.Errorf("signer %d: name is required", i+1)
		}
		if signer.Email == "" {
			return fmt.Errorf("signer %d: email is required", i+1)
		}
	}
	return nil
}

func buildSignerRequest(signer *entity.ProcedureSigner, documentID string, page int, insertAfterID string) *entity.ProviderSignerRequest {
	firstName, lastName := splitName(signer.Name)

	locale := signer.Locale
	if locale == "" {
		locale = "fr"
	}

	return &entity.ProviderSignerRequest{
		Info: entity.SignerInfo{
			FirstName:   firstName,
			LastName:    lastName,
			Email:       signer.Email,
			PhoneNumber: signer.Phone,
			Locale:      locale,
		},
		Fields: []entity.SignerField{
			{
				Type:       entity.FieldTypeSignature,
				DocumentID: documentID,
				Page:       page,
				X:          signer.PositionX,
				Y:          signer.PositionY,
			},
		},
		InsertAfterID: insertAfterID,
	}
}

// splitName splits a full name into first and last parts; everything after the
// first space counts as last name
func splitName(name string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	if len(parts) == 1 {
		return parts[0], parts[0]
	}
	return parts[0], parts[1]
}

// NormalizeSigners maps provider signers to the view exposed to callers
func NormalizeSigners(signers []entity.ProviderSigner) []entity.SignerView {
	views := make([]entity.SignerView, len(signers))
	for i, s := range signers {
		views[i] = entity.SignerView{
			ID:                    s.ID,
			Email:                 s.Info.Email,
			SignatureImagePreview: s.SignatureImagePreview,
			SignatureLink:         s.SignatureLink,
			Status:                s.Status,
		}
	}
	return views
}
