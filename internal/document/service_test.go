package document

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lumiforge/tierhub-backend/internal/config"
	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	"github.com/lumiforge/tierhub-backend/internal/models"
	storagemocks "github.com/lumiforge/tierhub-backend/internal/storage/mocks"
	"github.com/lumiforge/tierhub-backend/internal/ydb"
	ydbmocks "github.com/lumiforge/tierhub-backend/internal/ydb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pdfHeader = []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj")

func setupDocumentService() (*Service, *ydbmocks.Database, *storagemocks.StorageProvider) {
	mockDB := new(ydbmocks.Database)
	mockStorage := new(storagemocks.StorageProvider)
	cfg := &config.Config{DocumentMaxSizeMB: 10, DocumentURLLifetimeMin: 15}
	return NewService(mockDB, mockStorage, nil, cfg, nil), mockDB, mockStorage
}

func pendingDoc() *ydb.Document {
	return &ydb.Document{
		DocumentID:  "doc-1",
		UserID:      "user-1",
		FileName:    "passport.pdf",
		ContentType: "application/pdf",
		SizeBytes:   2048,
		StorageKey:  "documents/user-1/doc-1/passport.pdf",
		Status:      StatusPendingUpload,
		CreatedAt:   time.Now(),
	}
}

func TestService_InitiateUpload_Success(t *testing.T) {
	service, mockDB, mockStorage := setupDocumentService()
	ctx := context.Background()

	mockStorage.On("GeneratePresignedPutURL", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "documents/user-1/") && strings.HasSuffix(key, "/passport.pdf")
	}), "application/pdf", int64(2048), 15*time.Minute).Return("https://s3.example/put", nil)
	mockDB.On("CreateDocument", ctx, mock.MatchedBy(func(d *ydb.Document) bool {
		return d.UserID == "user-1" && d.Status == StatusPendingUpload && d.DocumentType == "identity"
	})).Return(nil)

	resp, err := service.InitiateUpload(ctx, "user-1", &models.InitiateDocumentUploadRequest{
		FileName:     "passport.pdf",
		ContentType:  "application/pdf",
		SizeBytes:    2048,
		DocumentType: "identity",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example/put", resp.UploadURL)
	assert.NotEmpty(t, resp.DocumentID)

	mockDB.AssertExpectations(t)
	mockStorage.AssertExpectations(t)
}

func TestService_InitiateUpload_Validation(t *testing.T) {
	service, mockDB, mockStorage := setupDocumentService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.InitiateDocumentUploadRequest
	}{
		{"bad filename", &models.InitiateDocumentUploadRequest{FileName: "../x.pdf", ContentType: "application/pdf", SizeBytes: 10}},
		{"video", &models.InitiateDocumentUploadRequest{FileName: "clip.mp4", ContentType: "video/mp4", SizeBytes: 10}},
		{"too large", &models.InitiateDocumentUploadRequest{FileName: "scan.png", ContentType: "image/png", SizeBytes: 11 * 1024 * 1024}},
		{"unknown type", &models.InitiateDocumentUploadRequest{FileName: "scan.png", ContentType: "image/png", SizeBytes: 10, DocumentType: "selfie"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.InitiateUpload(ctx, "user-1", tt.req)
			assert.ErrorIs(t, err, app_errors.ErrValidation)
		})
	}
	mockStorage.AssertNotCalled(t, "GeneratePresignedPutURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockDB.AssertNotCalled(t, "CreateDocument", mock.Anything, mock.Anything)
}

func TestService_CompleteUpload_Success(t *testing.T) {
	service, mockDB, mockStorage := setupDocumentService()
	ctx := context.Background()
	doc := pendingDoc()

	mockDB.On("GetDocument", ctx, "doc-1").Return(doc, nil)
	mockStorage.On("GetObjectSize", ctx, doc.StorageKey).Return(int64(2048), nil)
	mockStorage.On("GetObjectHeader", ctx, doc.StorageKey).Return(pdfHeader, nil)
	mockDB.On("UpdateDocument", ctx, mock.MatchedBy(func(d *ydb.Document) bool {
		return d.Status == StatusPendingReview && d.UploadedAt != nil
	})).Return(nil)

	info, err := service.CompleteUpload(ctx, "user-1", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, StatusPendingReview, info.Status)
	assert.NotNil(t, info.UploadedAt)
	mockDB.AssertExpectations(t)
}

func TestService_CompleteUpload_MaliciousFile(t *testing.T) {
	service, mockDB, mockStorage := setupDocumentService()
	ctx := context.Background()
	doc := pendingDoc()

	mockDB.On("GetDocument", ctx, "doc-1").Return(doc, nil)
	mockStorage.On("GetObjectSize", ctx, doc.StorageKey).Return(int64(2048), nil)
	// Заголовок EXE файла (MZ...)
	mockStorage.On("GetObjectHeader", ctx, doc.StorageKey).Return([]byte("MZ\x90\x00\x03\x00\x00\x00\x04\x00\x00\x00\xff\xff\x00\x00"), nil)
	mockStorage.On("DeleteObject", ctx, doc.StorageKey).Return(nil)
	mockDB.On("UpdateDocument", ctx, mock.MatchedBy(func(d *ydb.Document) bool {
		return d.Status == StatusRejected
	})).Return(nil)

	info, err := service.CompleteUpload(ctx, "user-1", "doc-1")
	assert.Nil(t, info)
	assert.ErrorIs(t, err, app_errors.ErrValidation)
	assert.Contains(t, err.Error(), "invalid file content")

	mockDB.AssertExpectations(t)
	mockStorage.AssertExpectations(t)
}

func TestService_CompleteUpload_SizeMismatch(t *testing.T) {
	service, mockDB, mockStorage := setupDocumentService()
	ctx := context.Background()
	doc := pendingDoc()

	mockDB.On("GetDocument", ctx, "doc-1").Return(doc, nil)
	mockStorage.On("GetObjectSize", ctx, doc.StorageKey).Return(int64(50*1024*1024), nil)
	mockStorage.On("DeleteObject", ctx, doc.StorageKey).Return(nil)
	mockDB.On("UpdateDocument", ctx, mock.Anything).Return(nil)

	_, err := service.CompleteUpload(ctx, "user-1", "doc-1")
	assert.ErrorIs(t, err, app_errors.ErrValidation)
	mockStorage.AssertNotCalled(t, "GetObjectHeader", mock.Anything, mock.Anything)
}

func TestService_CompleteUpload_ForeignDocument(t *testing.T) {
	service, mockDB, _ := setupDocumentService()
	ctx := context.Background()

	mockDB.On("GetDocument", ctx, "doc-1").Return(pendingDoc(), nil)

	_, err := service.CompleteUpload(ctx, "intruder", "doc-1")
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
}

func TestService_ListDocuments(t *testing.T) {
	service, mockDB, _ := setupDocumentService()
	ctx := context.Background()
	older := pendingDoc()
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := pendingDoc()
	newer.DocumentID = "doc-2"
	rejected := pendingDoc()
	rejected.DocumentID = "doc-3"
	rejected.Status = StatusRejected

	mockDB.On("GetDocumentsByUser", ctx, "user-1").Return([]*ydb.Document{older, rejected, newer}, nil)

	resp, err := service.ListDocuments(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, resp.Documents, 2)
	assert.Equal(t, "doc-2", resp.Documents[0].DocumentID)
}

func TestService_DownloadURL(t *testing.T) {
	service, mockDB, mockStorage := setupDocumentService()
	ctx := context.Background()
	doc := pendingDoc()
	doc.Status = StatusPendingReview

	mockDB.On("GetDocument", ctx, "doc-1").Return(doc, nil)
	mockStorage.On("GeneratePresignedDownloadURL", ctx, doc.StorageKey, "passport.pdf", 15*time.Minute).Return("https://s3.example/get", nil)

	resp, err := service.DownloadURL(ctx, "user-1", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example/get", resp.DownloadURL)
}

func TestService_DownloadURL_NotUploaded(t *testing.T) {
	service, mockDB, _ := setupDocumentService()
	ctx := context.Background()

	mockDB.On("GetDocument", ctx, "doc-1").Return(pendingDoc(), nil)

	_, err := service.DownloadURL(ctx, "user-1", "doc-1")
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
}
