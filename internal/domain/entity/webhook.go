package entity

// Webhook event names sent by the signature provider
const (
	EventSignerDone           = "signer.done"
	EventSignatureRequestDone = "signature_request.done"
)

// WebhookPayload is the callback body sent by the signature provider when a
// signer or a whole signature request changes state.
type WebhookPayload struct {
	EventName string      `json:"event_name"`
	EventTime string      `json:"event_time,omitempty"`
	Sandbox   bool        `json:"sandbox,omitempty"`
	Data      WebhookData `json:"data"`
}

// WebhookData wraps the entities referenced by the event
type WebhookData struct {
	SignatureRequest WebhookSignatureRequest `json:"signature_request"`
	Signer           *WebhookSigner          `json:"signer,omitempty"`
}

// WebhookSignatureRequest identifies the signature request the event is about
type WebhookSignatureRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Name   string `json:"name,omitempty"`
}

// WebhookSigner identifies the signer the event is about (signer.* events only)
type WebhookSigner struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Email  string `json:"email,omitempty"`
}
