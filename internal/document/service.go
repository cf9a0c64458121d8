package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lumiforge/tierhub-backend/internal/audit"
	"github.com/lumiforge/tierhub-backend/internal/config"
	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	"github.com/lumiforge/tierhub-backend/internal/models"
	"github.com/lumiforge/tierhub-backend/internal/storage"
	"github.com/lumiforge/tierhub-backend/internal/validation"
	"github.com/lumiforge/tierhub-backend/internal/ydb"
)

// Статусы документа
const (
	StatusPendingUpload = "pending_upload"
	StatusPendingReview = "pending_review"
	StatusRejected      = "rejected"
)

// DocumentTypes допустимые типы документов профиля
var DocumentTypes = map[string]bool{
	"identity":         true,
	"proof_of_address": true,
	"tax_form":         true,
	"other":            true,
}

// Service управляет документами профиля
type Service struct {
	db       ydb.Database
	storage  storage.StorageProvider
	audit    *audit.Service
	log      *slog.Logger
	maxSize  int64
	lifetime time.Duration
}

// NewService создает сервис документов
func NewService(db ydb.Database, storageProvider storage.StorageProvider, auditSvc *audit.Service, cfg *config.Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		db:       db,
		storage:  storageProvider,
		audit:    auditSvc,
		log:      log,
		maxSize:  cfg.DocumentMaxSizeMB * 1024 * 1024,
		lifetime: time.Duration(cfg.DocumentURLLifetimeMin) * time.Minute,
	}
}

// InitiateUpload создает запись документа и возвращает подписанную ссылку для PUT
func (s *Service) InitiateUpload(ctx context.Context, userID string, req *models.InitiateDocumentUploadRequest) (*models.InitiateDocumentUploadResponse, error) {
	if err := validation.ValidateFilename(req.FileName, "file_name"); err != nil {
		return nil, err
	}
	contentType, err := validation.ValidateDocumentContentType(req.FileName, req.ContentType, "content_type")
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateFileSize(req.SizeBytes, s.maxSize, "size_bytes"); err != nil {
		return nil, err
	}
	docType := req.DocumentType
	if docType == "" {
		docType = "other"
	}
	if !DocumentTypes[docType] {
		return nil, validation.ValidationError{Field: "document_type", Message: "is not supported"}
	}

	documentID := uuid.New().String()
	key := fmt.Sprintf("documents/%s/%s/%s", userID, documentID, req.FileName)

	uploadURL, err := s.storage.GeneratePresignedPutURL(ctx, key, contentType, req.SizeBytes, s.lifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload url: %w", err)
	}

	doc := &ydb.Document{
		DocumentID:   documentID,
		UserID:       userID,
		DocumentType: docType,
		FileName:     req.FileName,
		ContentType:  contentType,
		SizeBytes:    req.SizeBytes,
		StorageKey:   key,
		Status:       StatusPendingUpload,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.db.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document record: %w", err)
	}

	return &models.InitiateDocumentUploadResponse{
		DocumentID: documentID,
		UploadURL:  uploadURL,
		ExpiresAt:  time.Now().Add(s.lifetime).Unix(),
	}, nil
}

// CompleteUpload проверяет загруженный объект и переводит документ на проверку
func (s *Service) CompleteUpload(ctx context.Context, userID, documentID string) (*models.DocumentInfo, error) {
	doc, err := s.ownedDocument(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != StatusPendingUpload {
		return toInfo(doc), nil
	}

	size, err := s.storage.GetObjectSize(ctx, doc.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: uploaded object not found", app_errors.ErrValidation)
	}
	if size > s.maxSize || size != doc.SizeBytes {
		s.reject(ctx, doc, "size_mismatch")
		return nil, fmt.Errorf("%w: uploaded size %d does not match declared size %d", app_errors.ErrValidation, size, doc.SizeBytes)
	}

	// Проверка magic bytes: объявленный тип должен совпадать с содержимым
	header, err := s.storage.GetObjectHeader(ctx, doc.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read object header: %w", err)
	}
	if detected := validation.NormalizeContentType(http.DetectContentType(header)); detected != doc.ContentType {
		s.reject(ctx, doc, "content_mismatch")
		return nil, fmt.Errorf("%w: invalid file content", app_errors.ErrValidation)
	}

	now := time.Now().UTC()
	doc.Status = StatusPendingReview
	doc.UploadedAt = &now
	if err := s.db.UpdateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	s.audit.Log(ctx, audit.Record{
		UserID:     userID,
		ActionType: models.AuditDocumentUpload,
		Details:    map[string]any{"document_id": doc.DocumentID, "document_type": doc.DocumentType},
	})
	return toInfo(doc), nil
}

func (s *Service) reject(ctx context.Context, doc *ydb.Document, reason string) {
	if err := s.storage.DeleteObject(ctx, doc.StorageKey); err != nil {
		s.log.Error("failed to delete rejected document", "error", err, "document_id", doc.DocumentID)
	}
	doc.Status = StatusRejected
	if err := s.db.UpdateDocument(ctx, doc); err != nil {
		s.log.Warn("failed to mark document rejected", "error", err, "document_id", doc.DocumentID)
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       doc.UserID,
		ActionType:   models.AuditDocumentUpload,
		ActionResult: models.AuditResultFailure,
		Details:      map[string]any{"document_id": doc.DocumentID, "reason": reason},
	})
}

// ListDocuments возвращает документы пользователя, новые первыми
func (s *Service) ListDocuments(ctx context.Context, userID string) (*models.ListDocumentsResponse, error) {
	docs, err := s.db.GetDocumentsByUser(ctx, userID)
	if err != nil && !errors.Is(err, app_errors.ErrNotFound) {
		return nil, err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})

	out := make([]*models.DocumentInfo, 0, len(docs))
	for _, d := range docs {
		if d.Status == StatusRejected {
			continue
		}
		out = append(out, toInfo(d))
	}
	return &models.ListDocumentsResponse{Documents: out}, nil
}

// DownloadURL выдает ссылку на скачивание загруженного документа
func (s *Service) DownloadURL(ctx context.Context, userID, documentID string) (*models.DocumentDownloadResponse, error) {
	doc, err := s.ownedDocument(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != StatusPendingReview {
		return nil, fmt.Errorf("document %w", app_errors.ErrNotFound)
	}

	url, err := s.storage.GeneratePresignedDownloadURL(ctx, doc.StorageKey, doc.FileName, s.lifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to generate download url: %w", err)
	}
	return &models.DocumentDownloadResponse{
		DownloadURL: url,
		ExpiresAt:   time.Now().Add(s.lifetime).Unix(),
	}, nil
}

// Чужой документ неотличим от несуществующего
func (s *Service) ownedDocument(ctx context.Context, userID, documentID string) (*ydb.Document, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: document_id is required", app_errors.ErrValidation)
	}
	doc, err := s.db.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.UserID != userID {
		return nil, fmt.Errorf("document %w", app_errors.ErrNotFound)
	}
	return doc, nil
}

func toInfo(d *ydb.Document) *models.DocumentInfo {
	info := &models.DocumentInfo{
		DocumentID:   d.DocumentID,
		DocumentType: d.DocumentType,
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		SizeBytes:    d.SizeBytes,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt.Unix(),
	}
	if d.UploadedAt != nil {
		uploaded := d.UploadedAt.Unix()
		info.UploadedAt = &uploaded
	}
	return info
}
