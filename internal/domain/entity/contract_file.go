package entity

import "time"

// ContractFile is the local row tracking a document's dual signature state,
// independent of the provider's own state. The orchestrator polls
// IsSignedByAdmin before retrieving signed artifacts; the webhook path is the
// only writer of the two flags.
type ContractFile struct {
	ID                 int64     `json:"id"`
	ProcedureName      string    `json:"procedure_name"`
	SignatureRequestID string    `json:"signature_request_id,omitempty"`
	DocumentName       string    `json:"document_name"`
	IsSignedByUser     bool      `json:"is_signed_by_user"`
	IsSignedByAdmin    bool      `json:"is_signed_by_admin"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
