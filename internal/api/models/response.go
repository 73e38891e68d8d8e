package models

import "financial-twin/internal/storage"

// ErrorResponse is the JSON error envelope for all endpoints.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ModelInfoResponse describes the loaded risk model.
type ModelInfoResponse struct {
	ModelLoaded  bool     `json:"model_loaded"`
	ModelName    string   `json:"model_name,omitempty"`
	FeatureCount int      `json:"feature_count"`
	Features     []string `json:"features,omitempty"`
}

// HealthResponse reports service health including collaborator status.
type HealthResponse struct {
	Status         string `json:"status"`
	ModelLoaded    bool   `json:"model_loaded"`
	StorageEnabled bool   `json:"storage_enabled"`
	Version        string `json:"version"`
}

// HistoryResponse lists persisted assessments, newest first.
type HistoryResponse struct {
	Assessments []storage.Record `json:"assessments"`
}
