package designai

import (
	"time"
)

// DesignChange - single actionable difference between two design versions.
type DesignChange struct {
	Category       string `json:"category"` // layout, colors, typography, spacing, content, components, effects
	DescriptionEN  string `json:"description_en"`
	DescriptionAR  string `json:"description_ar"`
	Severity       string `json:"severity"` // minor, moderate, major
	Location       string `json:"location,omitempty"`
	ActionRequired string `json:"action_required,omitempty"`
}

// AnalysisData - full comparison result.
type AnalysisData struct {
	SimilarityScore float64        `json:"similarity_score"` // 0-100 percentage
	SummaryEN       string         `json:"summary_en"`
	SummaryAR       string         `json:"summary_ar"`
	ChangesDetected []DesignChange `json:"changes_detected"`
	DesignerNotesEN []string       `json:"designer_notes_en"`
	DesignerNotesAR []string       `json:"designer_notes_ar"`
	NextStepsEN     []string       `json:"next_steps_en"`
	NextStepsAR     []string       `json:"next_steps_ar"`
	AnalysisID      string         `json:"analysis_id,omitempty"` // set when the record was persisted
}

// AnalysisResponse - API envelope for comparison results.
type AnalysisResponse struct {
	Success   bool         `json:"success"`
	Timestamp time.Time    `json:"timestamp"`
	Data      AnalysisData `json:"data"`
	Error     string       `json:"error,omitempty"`

	// RateLimited marks limiter refusals so handlers can label metrics.
	RateLimited bool `json:"-"`
}

// VersionComparisonRequest - payload for comparing designs already hosted somewhere.
type VersionComparisonRequest struct {
	Version1URL string `json:"version1_url,omitempty"`
	Version2URL string `json:"version2_url,omitempty"`
	Context     string `json:"context,omitempty"`
}

// emptyAnalysisData keeps list fields as [] instead of null on the wire.
func emptyAnalysisData() AnalysisData {
	return AnalysisData{
		ChangesDetected: []DesignChange{},
		DesignerNotesEN: []string{},
		DesignerNotesAR: []string{},
		NextStepsEN:     []string{},
		NextStepsAR:     []string{},
	}
}

// FailedAnalysis builds the error-carrying response shape.
func FailedAnalysis(errMsg string) AnalysisResponse {
	return AnalysisResponse{
		Success:   false,
		Timestamp: time.Now(),
		Data:      emptyAnalysisData(),
		Error:     errMsg,
	}
}
