package models

// InitiateDocumentUploadRequest represents a document upload request
// @Description	Document upload initiation
type InitiateDocumentUploadRequest struct {
	FileName     string `json:"file_name" validate:"required"`
	ContentType  string `json:"content_type" validate:"required" enums:"application/pdf,image/jpeg,image/png"`
	SizeBytes    int64  `json:"size_bytes" validate:"required"`
	DocumentType string `json:"document_type"`
}

// InitiateDocumentUploadResponse represents the presigned upload target
// @Description	Presigned upload URL
type InitiateDocumentUploadResponse struct {
	DocumentID string `json:"document_id"`
	UploadURL  string `json:"upload_url"`
	ExpiresAt  int64  `json:"expires_at"`
}

// CompleteDocumentUploadRequest represents an upload completion
// @Description	Document upload completion
type CompleteDocumentUploadRequest struct {
	DocumentID string `json:"document_id" validate:"required"`
}

// DocumentInfo represents a stored document
// @Description	Document metadata
type DocumentInfo struct {
	DocumentID   string `json:"document_id"`
	DocumentType string `json:"document_type"`
	FileName     string `json:"file_name"`
	ContentType  string `json:"content_type"`
	SizeBytes    int64  `json:"size_bytes"`
	Status       string `json:"status" enums:"pending_upload,pending_review"`
	CreatedAt    int64  `json:"created_at"`
	UploadedAt   *int64 `json:"uploaded_at,omitempty"`
}

// ListDocumentsResponse represents the user's documents
// @Description	Documents list
type ListDocumentsResponse struct {
	Documents []*DocumentInfo `json:"documents"`
}

// DocumentDownloadResponse represents a presigned download URL
// @Description	Presigned download URL
type DocumentDownloadResponse struct {
	DownloadURL string `json:"download_url"`
	ExpiresAt   int64  `json:"expires_at"`
}
