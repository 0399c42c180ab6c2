package entity

import "errors"

// Sentinel errors so callers can branch with errors.Is instead of matching
// message text.
var (
	// ErrWaitTimeout is returned when the signature flag poll exceeds its deadline
	ErrWaitTimeout = errors.New("timed out waiting for contract file signature")

	// ErrNoDocuments is returned when the provider reports no documents for a procedure
	ErrNoDocuments = errors.New("no documents found for signature request")

	// ErrNoSignedDocuments is returned when no signed document could be downloaded
	ErrNoSignedDocuments = errors.New("no signed documents could be downloaded")

	// ErrEmptyDocument is returned when a downloaded document body is empty
	ErrEmptyDocument = errors.New("downloaded document is empty")

	// ErrSignerNotFound is returned when a signer id is absent from the provider response
	ErrSignerNotFound = errors.New("signer not found in signature request")

	// ErrContractFileNotFound is returned when the local contract file row does not exist
	ErrContractFileNotFound = errors.New("contract file not found")
)
