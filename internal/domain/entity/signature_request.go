package entity

// ========== Client Request Structures ==========

// CreateProcedureRequest represents the incoming request to start a signature procedure
type CreateProcedureRequest struct {
	ProcedureName  string            `json:"procedure_name"`             // Human label for the procedure
	ContractFileID int64             `json:"contract_file_id"`           // Local contract file this procedure signs
	Metadata       map[string]string `json:"metadata,omitempty"`         // Free-form metadata forwarded to the provider
	Document       string            `json:"document"`                   // Base64 encoded PDF document
	DocumentName   string            `json:"document_name"`              // Document filename
	SignPage       int               `json:"sign_page"`                  // Page number for signature fields (1-based)
	Signers        []ProcedureSigner `json:"signers"`                    // Ordered signers: user first, admin second
}

// ProcedureSigner represents a signer in the client request
type ProcedureSigner struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone,omitempty"`
	Locale    string  `json:"locale,omitempty"` // e.g., "fr"
	PositionX float64 `json:"position_x"`       // X coordinate of the signature field
	PositionY float64 `json:"position_y"`       // Y coordinate of the signature field
}

// ========== Provider API Request Structures ==========

// ProviderSignatureRequest is the payload for POST /signature_requests
type ProviderSignatureRequest struct {
	Name           string            `json:"name"`
	DeliveryMode   string            `json:"delivery_mode"`   // always "email"
	OrderedSigners bool              `json:"ordered_signers"` // always true
	Timezone       string            `json:"timezone"`        // e.g., "Europe/Paris"
	ExpirationDate string            `json:"expiration_date"` // YYYY-MM-DD
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// ProviderSignerRequest is the payload for POST /signature_requests/{id}/signers
type ProviderSignerRequest struct {
	Info          SignerInfo    `json:"info"`
	Fields        []SignerField `json:"fields"`
	// InsertAfterID sequences this signer after an already registered one.
	// The provider only notifies this signer once the referenced signer has signed.
	InsertAfterID string `json:"insert_after_id,omitempty"`
}

// SignerInfo holds the signer identity sent to the provider
type SignerInfo struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Locale      string `json:"locale,omitempty"`
}

// SignerField places a field on the uploaded document
type SignerField struct {
	Type       string  `json:"type"`        // "signature"
	DocumentID string  `json:"document_id"` // document the field is anchored on
	Page       int     `json:"page"`        // 1-based page number
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// ========== Provider API Response Structures ==========

// SignatureRequest represents a signature request as returned by the provider
type SignatureRequest struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"` // draft, ongoing, done...
	DeliveryMode   string `json:"delivery_mode"`
	OrderedSigners bool   `json:"ordered_signers"`
	Timezone       string `json:"timezone"`
	ExpirationDate string `json:"expiration_date"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// ProviderSigner represents a signer as returned by the provider
type ProviderSigner struct {
	ID                    string     `json:"id"`
	Status                string     `json:"status"` // initiated, notified, pending, signed...
	Info                  SignerInfo `json:"info"`
	SignatureLink         string     `json:"signature_link,omitempty"`
	SignatureImagePreview string     `json:"signature_image_preview,omitempty"`
	InsertAfterID         string     `json:"insert_after_id,omitempty"`
}

// ProviderDocument represents a document attached to a signature request
type ProviderDocument struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Nature   string `json:"nature"` // signable_document
	IsSigned bool   `json:"is_signed"`
}

// ========== Orchestrator Result Structures ==========

// ProcedureResult is returned once a procedure is built and activated
type ProcedureResult struct {
	SignatureRequestID string       `json:"signature_request_id"`
	DocumentID         string       `json:"document_id"`
	Status             string       `json:"status"`
	UserLink           string       `json:"user_link,omitempty"` // direct signing link for the first signer
	Signers            []SignerView `json:"signers"`
}

// SignerView is the normalized signer shape exposed to callers
type SignerView struct {
	ID                    string `json:"id"`
	Email                 string `json:"email"`
	SignatureImagePreview string `json:"signature_image_preview,omitempty"`
	SignatureLink         string `json:"signature_link,omitempty"`
	Status                string `json:"status"`
}

// SignedDocument is one retrieved signed binary artifact
type SignedDocument struct {
	Name string `json:"name"`
	File []byte `json:"-"`
	Size int    `json:"size"`
}

// ValidationWarning is a non-fatal finding on a retrieved document
type ValidationWarning struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	Message    string `json:"message"`
}

// Provider status values the orchestrator branches on
const (
	SignerStatusSigned   = "signed"
	SignerStatusNotified = "notified"
	SignerStatusPending  = "pending"

	RequestStatusDraft = "draft"
	RequestStatusDone  = "done"
)

// Field and delivery constants
const (
	FieldTypeSignature     = "signature"
	DeliveryModeEmail      = "email"
	DocumentNatureSignable = "signable_document"
	DefaultTimezone        = "Europe/Paris"
	DefaultExpirationDays  = 7
)
