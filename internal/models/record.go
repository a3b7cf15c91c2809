package models

import "time"

type AIStatus string

const (
	AIStatusOK      AIStatus = "ok"
	AIStatusFailed  AIStatus = "failed"
	AIStatusSkipped AIStatus = "skipped" // no API key configured
)

// AnalysisRecord is the audit row written for every /api/analyze request.
type AnalysisRecord struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	MimeType      string    `json:"mime_type"`
	ImageSize     int64     `json:"image_size"` // bytes
	Transcript    string    `json:"transcript"`
	AIStatus      AIStatus  `json:"ai_status"`
	AIError       string    `json:"ai_error,omitempty"`
	AILatencyMS   int64     `json:"ai_latency_ms"`
	SeverityScore int       `json:"severity_score"`
}
