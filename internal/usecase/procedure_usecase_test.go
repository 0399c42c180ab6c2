package usecase

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cleo-sign/internal/config"
	"cleo-sign/internal/domain/entity"
)

func testConfig() *config.Config {
	return &config.Config{
		Provider: config.ProviderConfig{
			BaseURL: "https://api.yousign.app/v3",
		},
		Signing: config.SigningConfig{
			ExpirationDays: 7,
			Timezone:       "Europe/Paris",
		},
	}
}

func validProcedureRequest() *entity.CreateProcedureRequest {
	return &entity.CreateProcedureRequest{
		ProcedureName:  "Domiciliation contract",
		ContractFileID: 42,
		Document:       base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake")),
		DocumentName:   "contract.pdf",
		SignPage:       2,
		Signers: []entity.ProcedureSigner{
			{Name: "Alice Martin", Email: "alice@example.com", PositionX: 80, PositionY: 640},
			{Name: "Bob Durand", Email: "bob@cle-o.example", Phone: "+33612345678", PositionX: 320, PositionY: 640},
		},
	}
}

func TestCreateSignatureProcedure_SequencesSigners(t *testing.T) {
	repo := newFakeSignatureRepo()
	repo.signers = []entity.ProviderSigner{
		{ID: "sgn-1", Status: "notified", Info: entity.SignerInfo{Email: "alice@example.com"}, SignatureLink: "https://yousign.app/sign/abc"},
		{ID: "sgn-2", Status: "initiated", Info: entity.SignerInfo{Email: "bob@cle-o.example"}},
	}
	contracts := newFakeContractRepo(42)
	store := newFakeMappingStore()
	uc := NewProcedureUsecase(testConfig(), repo, contracts, store, zap.NewNop())

	result, err := uc.CreateSignatureProcedure(context.Background(), validProcedureRequest())
	require.NoError(t, err)

	// The request itself is ordered-signers, email delivery
	require.Len(t, repo.createdRequests, 1)
	created := repo.createdRequests[0]
	assert.True(t, created.OrderedSigners)
	assert.Equal(t, entity.DeliveryModeEmail, created.DeliveryMode)
	assert.Equal(t, "Europe/Paris", created.Timezone)
	assert.NotEmpty(t, created.ExpirationDate)

	// Second signer must reference the first signer's remote id
	require.Len(t, repo.addSignerReqs, 2)
	assert.Empty(t, repo.addSignerReqs[0].InsertAfterID)
	assert.Equal(t, "sgn-1", repo.addSignerReqs[1].InsertAfterID)

	// Both signature fields anchor on the uploaded document and page
	for _, sr := range repo.addSignerReqs {
		require.Len(t, sr.Fields, 1)
		assert.Equal(t, entity.FieldTypeSignature, sr.Fields[0].Type)
		assert.Equal(t, "doc-1", sr.Fields[0].DocumentID)
		assert.Equal(t, 2, sr.Fields[0].Page)
	}

	assert.Equal(t, "req-1", result.SignatureRequestID)
	assert.Equal(t, "doc-1", result.DocumentID)
	assert.Equal(t, "https://yousign.app/sign/abc", result.UserLink)
	require.Len(t, result.Signers, 2)
	assert.Equal(t, "sgn-1", result.Signers[0].ID)
	assert.Equal(t, "notified", result.Signers[0].Status)

	// The contract file now carries the provider request id
	require.Len(t, contracts.attached, 1)
	assert.Equal(t, "req-1", contracts.attached[0])

	// And the webhook mapping round-trips
	mapping, err := uc.GetProcedureMapping(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), mapping.ContractFileID)
	assert.Equal(t, "sgn-1", mapping.UserSignerID)
	assert.Equal(t, "sgn-2", mapping.AdminSignerID)
}

func TestCreateSignatureProcedure_Validation(t *testing.T) {
	uc := NewProcedureUsecase(testConfig(), newFakeSignatureRepo(), newFakeContractRepo(42), newFakeMappingStore(), zap.NewNop())

	tests := []struct {
		name   string
		mutate func(*entity.CreateProcedureRequest)
	}{
		{"missing procedure name", func(r *entity.CreateProcedureRequest) { r.ProcedureName = "" }},
		{"missing contract file id", func(r *entity.CreateProcedureRequest) { r.ContractFileID = 0 }},
		{"missing document", func(r *entity.CreateProcedureRequest) { r.Document = "" }},
		{"missing document name", func(r *entity.CreateProcedureRequest) { r.DocumentName = "" }},
		{"zero sign page", func(r *entity.CreateProcedureRequest) { r.SignPage = 0 }},
		{"single signer", func(r *entity.CreateProcedureRequest) { r.Signers = r.Signers[:1] }},
		{"three signers", func(r *entity.CreateProcedureRequest) {
			r.Signers = append(r.Signers, entity.ProcedureSigner{Name: "C", Email: "c@example.com"})
		}},
		{"signer without name", func(r *entity.CreateProcedureRequest) { r.Signers[0].Name = "" }},
		{"signer without email", func(r *entity.CreateProcedureRequest) { r.Signers[1].Email = "" }},
		{"invalid base64", func(r *entity.CreateProcedureRequest) { r.Document = "not//valid==base64!!" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validProcedureRequest()
			tt.mutate(req)
			_, err := uc.CreateSignatureProcedure(context.Background(), req)
			require.Error(t, err)
		})
	}
}

func TestCreateSignatureProcedure_CancelsRequestOnStepFailure(t *testing.T) {
	repo := newFakeSignatureRepo()
	repo.addSignerErrAt = 2 // second signer registration fails
	uc := NewProcedureUsecase(testConfig(), repo, newFakeContractRepo(42), newFakeMappingStore(), zap.NewNop())

	_, err := uc.CreateSignatureProcedure(context.Background(), validProcedureRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider rejected signer 2")

	// The draft request must not be left orphaned on the provider
	require.Len(t, repo.cancelledIDs, 1)
	assert.Equal(t, "req-1", repo.cancelledIDs[0])
}

func TestCreateSignatureProcedure_BadPayloadCreatesNothing(t *testing.T) {
	repo := newFakeSignatureRepo()
	uc := NewProcedureUsecase(testConfig(), repo, newFakeContractRepo(42), newFakeMappingStore(), zap.NewNop())

	req := validProcedureRequest()
	req.Document = "!!!"
	_, err := uc.CreateSignatureProcedure(context.Background(), req)
	require.Error(t, err)

	// Decoding fails before any remote call is made
	assert.Empty(t, repo.createdRequests)
	assert.Empty(t, repo.cancelledIDs)
}

func TestGetProcedureMapping_Unknown(t *testing.T) {
	uc := NewProcedureUsecase(testConfig(), newFakeSignatureRepo(), newFakeContractRepo(42), newFakeMappingStore(), zap.NewNop())

	_, err := uc.GetProcedureMapping(context.Background(), "req-missing")
	require.Error(t, err)
}
