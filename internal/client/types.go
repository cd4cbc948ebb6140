package client

import (
	"strings"

	"github.com/yildizm/RoadReport/internal/common"
)

// UploadResponse is the body returned by POST /upload
type UploadResponse struct {
	Filenames []string                `json:"filenames"`
	Events    []string                `json:"events"`
	Message   string                  `json:"message"`
	Results   []common.AnalysisResult `json:"results"`
	Status    string                  `json:"status,omitempty"`
	Error     string                  `json:"error,omitempty"`
	Detail    string                  `json:"detail,omitempty"`
}

// HealthResponse is the body returned by GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// checkResponse is the body of the connectivity check endpoints
type checkResponse struct {
	Status string `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// applicationFailure returns the failure text of a 2xx body, if it reports one
func applicationFailure(status, errText, detail string) (string, bool) {
	if errText != "" {
		return errText, true
	}
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "error" || s == "fail" || s == "failed" {
		if detail != "" {
			return detail, true
		}
		return "service reported status " + status, true
	}
	return "", false
}
