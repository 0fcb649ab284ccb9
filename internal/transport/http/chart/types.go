package chart

import "context"

// Analyzer is the narrow view of the remote analysis capability: submit one
// image with its format label, receive the analysis text. The concrete
// provider can be substituted with a test double.
type Analyzer interface {
	Analyze(ctx context.Context, data []byte, format string) (string, error)
}

// HealthResponse is the body of the root health check.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// AnalysisResponse is the body of a successful upload.
type AnalysisResponse struct {
	Analysis  string `json:"analysis"`
	Timestamp string `json:"timestamp"`
	Filename  string `json:"filename"`
}
