package models

import "time"

// ErrorResponse represents an error response
// @Description	Error response with details
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// SuccessResponse represents a generic success response
// @Description	Generic success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents a health check response
// @Description	Health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
}
