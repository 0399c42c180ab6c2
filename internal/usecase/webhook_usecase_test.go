package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cleo-sign/internal/domain/entity"
)

func seededWebhookUsecase(t *testing.T, contracts *fakeContractRepo) WebhookUsecase {
	t.Helper()

	store := newFakeMappingStore()
	mapping, err := json.Marshal(ProcedureMapping{
		ContractFileID: 42,
		ProcedureName:  "Domiciliation contract",
		DocumentName:   "contract.pdf",
		UserSignerID:   "sgn-1",
		AdminSignerID:  "sgn-2",
	})
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), procedureKeyPrefix+"req-1", string(mapping), 0))

	procedures := NewProcedureUsecase(testConfig(), newFakeSignatureRepo(), contracts, store, zap.NewNop())
	return NewWebhookUsecase(procedures, contracts, zap.NewNop())
}

func TestProcessWebhook_UserSignerDone(t *testing.T) {
	contracts := newFakeContractRepo(42)
	uc := seededWebhookUsecase(t, contracts)

	err := uc.ProcessWebhook(context.Background(), &entity.WebhookPayload{
		EventName: entity.EventSignerDone,
		Data: entity.WebhookData{
			SignatureRequest: entity.WebhookSignatureRequest{ID: "req-1", Status: "ongoing"},
			Signer:           &entity.WebhookSigner{ID: "sgn-1", Status: "signed"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, contracts.userSigned)
	assert.Equal(t, 0, contracts.adminSigned)
}

func TestProcessWebhook_AdminSignerDoneIsIgnored(t *testing.T) {
	contracts := newFakeContractRepo(42)
	uc := seededWebhookUsecase(t, contracts)

	err := uc.ProcessWebhook(context.Background(), &entity.WebhookPayload{
		EventName: entity.EventSignerDone,
		Data: entity.WebhookData{
			SignatureRequest: entity.WebhookSignatureRequest{ID: "req-1"},
			Signer:           &entity.WebhookSigner{ID: "sgn-2", Status: "signed"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, contracts.userSigned)
	assert.Equal(t, 0, contracts.adminSigned)
}

func TestProcessWebhook_SignatureRequestDone(t *testing.T) {
	contracts := newFakeContractRepo(42)
	uc := seededWebhookUsecase(t, contracts)

	err := uc.ProcessWebhook(context.Background(), &entity.WebhookPayload{
		EventName: entity.EventSignatureRequestDone,
		Data: entity.WebhookData{
			SignatureRequest: entity.WebhookSignatureRequest{ID: "req-1", Status: "done"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, contracts.adminSigned)
}

func TestProcessWebhook_UnknownRequest(t *testing.T) {
	contracts := newFakeContractRepo(42)
	uc := seededWebhookUsecase(t, contracts)

	err := uc.ProcessWebhook(context.Background(), &entity.WebhookPayload{
		EventName: entity.EventSignatureRequestDone,
		Data: entity.WebhookData{
			SignatureRequest: entity.WebhookSignatureRequest{ID: "req-unknown"},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 0, contracts.adminSigned)
}

func TestProcessWebhook_OtherEventsAcknowledged(t *testing.T) {
	contracts := newFakeContractRepo(42)
	uc := seededWebhookUsecase(t, contracts)

	err := uc.ProcessWebhook(context.Background(), &entity.WebhookPayload{
		EventName: "signature_request.reminder_executed",
		Data: entity.WebhookData{
			SignatureRequest: entity.WebhookSignatureRequest{ID: "req-1"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, contracts.userSigned)
	assert.Equal(t, 0, contracts.adminSigned)
}

func TestProcessWebhook_SignerDoneWithoutSignerData(t *testing.T) {
	contracts := newFakeContractRepo(42)
	uc := seededWebhookUsecase(t, contracts)

	err := uc.ProcessWebhook(context.Background(), &entity.WebhookPayload{
		EventName: entity.EventSignerDone,
		Data: entity.WebhookData{
			SignatureRequest: entity.WebhookSignatureRequest{ID: "req-1"},
		},
	})
	require.Error(t, err)
}
