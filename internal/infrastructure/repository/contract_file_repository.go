package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cleo-sign/internal/domain/entity"
	"cleo-sign/internal/domain/repository"
	"cleo-sign/internal/infrastructure/database"
)

type contractFileRepository struct {
	db     *database.Database
	logger *zap.Logger
}

func NewContractFileRepository(db *database.Database, logger *zap.Logger) repository.ContractFileRepository {
	return &contractFileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *contractFileRepository) Create(ctx context.Context, file *entity.ContractFile) (int64, error) {
	query := `
		INSERT INTO contract_files (procedure_name, signature_request_id, document_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.DB.QueryRowContext(ctx, query,
		file.ProcedureName,
		file.SignatureRequestID,
		file.DocumentName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create contract file: %w", err)
	}

	return id, nil
}

func (r *contractFileRepository) GetByID(ctx context.Context, id int64) (*entity.ContractFile, error) {
	query := `
		SELECT id, procedure_name, signature_request_id, document_name,
		       is_signed_by_user, is_signed_by_admin, created_at, updated_at
		FROM contract_files
		WHERE id = $1
	`

	var file entity.ContractFile
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&file.ID,
		&file.ProcedureName,
		&file.SignatureRequestID,
		&file.DocumentName,
		&file.IsSignedByUser,
		&file.IsSignedByAdmin,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrContractFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contract file: %w", err)
	}

	return &file, nil
}

func (r *contractFileRepository) AttachSignatureRequest(ctx context.Context, id int64, signatureRequestID string) error {
	query := `
		UPDATE contract_files
		SET signature_request_id = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query, signatureRequestID, id)
	if err != nil {
		return fmt.Errorf("failed to attach signature request: %w", err)
	}

	return r.checkRowAffected(result, id)
}

func (r *contractFileRepository) SetUserSigned(ctx context.Context, id int64) error {
	query := `
		UPDATE contract_files
		SET is_signed_by_user = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to set user signed flag: %w", err)
	}

	return r.checkRowAffected(result, id)
}

func (r *contractFileRepository) SetAdminSigned(ctx context.Context, id int64) error {
	query := `
		UPDATE contract_files
		SET is_signed_by_admin = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to set admin signed flag: %w", err)
	}

	return r.checkRowAffected(result, id)
}

func (r *contractFileRepository) checkRowAffected(result sql.Result, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		r.logger.Warn("Contract file update matched no rows",
			zap.Int64("contract_file_id", id),
		)
		return entity.ErrContractFileNotFound
	}
	return nil
}
