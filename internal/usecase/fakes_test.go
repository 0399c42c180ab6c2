package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cleo-sign/internal/domain/entity"
)

// fakeSignatureRepo is an in-memory stand-in for the provider API
type fakeSignatureRepo struct {
	mu sync.Mutex

	requestStatus string
	signers       []entity.ProviderSigner
	documents     []entity.ProviderDocument
	files         map[string][]byte

	// ids handed out by AddSigner, in order
	signerIDs []string

	// recorded calls
	createdRequests []entity.ProviderSignatureRequest
	addSignerReqs   []entity.ProviderSignerRequest
	uploadedFiles   []string
	downloadedIDs   []string
	cancelledIDs    []string
	listSignerCalls int

	// injected failures
	uploadErr      error
	addSignerErrAt int // 1-based call index that fails, 0 = never
	activateErr    error
	listSignersErr error
	listDocsErr    error
	downloadErr    error
}

func newFakeSignatureRepo() *fakeSignatureRepo {
	return &fakeSignatureRepo{
		requestStatus: "ongoing",
		signerIDs:     []string{"sgn-1", "sgn-2"},
		files:         map[string][]byte{},
	}
}

func (f *fakeSignatureRepo) CreateSignatureRequest(ctx context.Context, req *entity.ProviderSignatureRequest) (*entity.SignatureRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdRequests = append(f.createdRequests, *req)
	return &entity.SignatureRequest{
		ID:             "req-1",
		Name:           req.Name,
		Status:         entity.RequestStatusDraft,
		DeliveryMode:   req.DeliveryMode,
		OrderedSigners: req.OrderedSigners,
		Timezone:       req.Timezone,
		ExpirationDate: req.ExpirationDate,
	}, nil
}

func (f *fakeSignatureRepo) UploadDocument(ctx context.Context, requestID, filename string, content []byte) (*entity.ProviderDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploadedFiles = append(f.uploadedFiles, filename)
	return &entity.ProviderDocument{
		ID:       "doc-1",
		Filename: filename,
		Nature:   entity.DocumentNatureSignable,
	}, nil
}

func (f *fakeSignatureRepo) AddSigner(ctx context.Context, requestID string, req *entity.ProviderSignerRequest) (*entity.ProviderSigner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := len(f.addSignerReqs) + 1
	if f.addSignerErrAt == call {
		return nil, fmt.Errorf("provider rejected signer %d", call)
	}
	f.addSignerReqs = append(f.addSignerReqs, *req)
	id := fmt.Sprintf("sgn-%d", call)
	if call <= len(f.signerIDs) {
		id = f.signerIDs[call-1]
	}
	return &entity.ProviderSigner{
		ID:            id,
		Status:        "initiated",
		Info:          req.Info,
		InsertAfterID: req.InsertAfterID,
	}, nil
}

func (f *fakeSignatureRepo) ActivateSignatureRequest(ctx context.Context, requestID string) (*entity.SignatureRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.activateErr != nil {
		return nil, f.activateErr
	}
	return &entity.SignatureRequest{ID: requestID, Status: "ongoing"}, nil
}

func (f *fakeSignatureRepo) GetSignatureRequest(ctx context.Context, requestID string) (*entity.SignatureRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &entity.SignatureRequest{ID: requestID, Status: f.requestStatus}, nil
}

func (f *fakeSignatureRepo) ListSigners(ctx context.Context, requestID string) ([]entity.ProviderSigner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listSignerCalls++
	if f.listSignersErr != nil {
		return nil, f.listSignersErr
	}
	return f.signers, nil
}

func (f *fakeSignatureRepo) ListDocuments(ctx context.Context, requestID string) ([]entity.ProviderDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listDocsErr != nil {
		return nil, f.listDocsErr
	}
	return f.documents, nil
}

func (f *fakeSignatureRepo) DownloadDocumentFile(ctx context.Context, documentID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	f.downloadedIDs = append(f.downloadedIDs, documentID)
	return f.files[documentID], nil
}

func (f *fakeSignatureRepo) CancelSignatureRequest(ctx context.Context, requestID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelledIDs = append(f.cancelledIDs, requestID)
	return nil
}

// fakeContractRepo is an in-memory contract_files table with one row
type fakeContractRepo struct {
	mu sync.Mutex

	file        entity.ContractFile
	reads       int
	userSigned  int
	adminSigned int
	attached    []string
	getErr      error
}

func newFakeContractRepo(id int64) *fakeContractRepo {
	return &fakeContractRepo{
		file: entity.ContractFile{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}
}

func (f *fakeContractRepo) Create(ctx context.Context, file *entity.ContractFile) (int64, error) {
	return f.file.ID, nil
}

func (f *fakeContractRepo) GetByID(ctx context.Context, id int64) (*entity.ContractFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if id != f.file.ID {
		return nil, entity.ErrContractFileNotFound
	}
	file := f.file
	return &file, nil
}

func (f *fakeContractRepo) AttachSignatureRequest(ctx context.Context, id int64, signatureRequestID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attached = append(f.attached, signatureRequestID)
	f.file.SignatureRequestID = signatureRequestID
	return nil
}

func (f *fakeContractRepo) SetUserSigned(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userSigned++
	f.file.IsSignedByUser = true
	return nil
}

func (f *fakeContractRepo) SetAdminSigned(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adminSigned++
	f.file.IsSignedByAdmin = true
	return nil
}

func (f *fakeContractRepo) setAdminFlag(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.file.IsSignedByAdmin = v
}

// fakeMappingStore is an in-memory MappingStore
type fakeMappingStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeMappingStore() *fakeMappingStore {
	return &fakeMappingStore{data: map[string]string{}}
}

func (f *fakeMappingStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeMappingStore) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return v, nil
}
