package models

import "time"

// TimestampLayout is ISO-8601 with fixed microsecond precision so that
// timestamps from the same process sort lexically.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

const ResponseStatusSuccess = "success"

type AIAnalysisResult struct {
	SeverityScore  int    `json:"severity_score" yaml:"severity_score"`
	RiskAssessment string `json:"risk_assessment" yaml:"risk_assessment"`
	ReasoningLog   string `json:"reasoning_log" yaml:"reasoning_log"`
	ActionPlan     string `json:"action_plan" yaml:"action_plan"`
}

type DisasterResponse struct {
	Status     string           `json:"status"`
	Timestamp  string           `json:"timestamp"`
	AIAnalysis AIAnalysisResult `json:"ai_analysis"`
	MapUpdates []MapUpdate      `json:"map_updates"`
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
