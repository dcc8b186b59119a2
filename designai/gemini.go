package designai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	log "github.com/furzing/techarabihackathon/chassis/logging"
	"github.com/furzing/techarabihackathon/chassis/metrics"
)

// Analyzer produces a comparison of two design versions.
type Analyzer interface {
	AnalyzeDesignChanges(ctx context.Context, version1, version2 *Image, projectContext string) AnalysisResponse
	RateLimitStatus() RateLimitStatus
}

// GeminiAnalyzer - Analyzer backed by the Gemini API.
type GeminiAnalyzer struct {
	client  *genai.Client
	model   string
	limiter *RateLimiter
}

// NewGeminiAnalyzer creates a Gemini-backed analyzer.
func NewGeminiAnalyzer(ctx context.Context, apiKey, model string, limiter *RateLimiter) (*GeminiAnalyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiAnalyzer{
		client:  client,
		model:   model,
		limiter: limiter,
	}, nil
}

// geminiAnalysis mirrors the JSON shape demanded by the prompt.
type geminiAnalysis struct {
	Changes []struct {
		Category       string `json:"category"`
		DescriptionEN  string `json:"description_en"`
		DescriptionAR  string `json:"description_ar"`
		Severity       string `json:"severity"`
		Location       string `json:"location"`
		ActionRequired string `json:"action_required"`
	} `json:"changes"`
	SimilarityScore float64  `json:"similarity_score"`
	SummaryEN       string   `json:"summary_en"`
	SummaryAR       string   `json:"summary_ar"`
	DesignerNotesEN []string `json:"designer_notes_en"`
	DesignerNotesAR []string `json:"designer_notes_ar"`
	NextStepsEN     []string `json:"next_steps_en"`
	NextStepsAR     []string `json:"next_steps_ar"`
}

// AnalyzeDesignChanges compares two design versions. Failures never surface
// as Go errors: they come back as an unsuccessful AnalysisResponse so the
// HTTP layer can map them to upstream-failure statuses.
func (a *GeminiAnalyzer) AnalyzeDesignChanges(ctx context.Context, version1, version2 *Image, projectContext string) AnalysisResponse {
	allowed, reason := a.limiter.Allow()
	if !allowed {
		metrics.RateLimitRejections.Inc()
		resp := FailedAnalysis(reason)
		resp.RateLimited = true
		return resp
	}

	parts := []*genai.Part{
		genai.NewPartFromText(analysisPrompt(projectContext)),
		genai.NewPartFromBytes(version1.Data, version1.MIME()),
		genai.NewPartFromBytes(version2.Data, version2.MIME()),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	result, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		metrics.GeminiRequests.WithLabelValues("error").Inc()
		log.WithFields(log.Fields{
			"event": "gemini_call_failed",
			"model": a.model,
		}).Error(err)
		return FailedAnalysis(fmt.Sprintf("Analysis failed: %v", err))
	}
	metrics.GeminiRequests.WithLabelValues("ok").Inc()

	raw := stripMarkdownCodeFences(result.Text())
	var parsed geminiAnalysis
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.WithFields(log.Fields{
			"event": "gemini_response_unparseable",
			"model": a.model,
		}).Error(err)
		return FailedAnalysis(fmt.Sprintf("Failed to parse AI response: %v", err))
	}

	data := emptyAnalysisData()
	data.SimilarityScore = parsed.SimilarityScore
	data.SummaryEN = parsed.SummaryEN
	data.SummaryAR = parsed.SummaryAR
	for _, change := range parsed.Changes {
		data.ChangesDetected = append(data.ChangesDetected, DesignChange{
			Category:       change.Category,
			DescriptionEN:  change.DescriptionEN,
			DescriptionAR:  change.DescriptionAR,
			Severity:       change.Severity,
			Location:       change.Location,
			ActionRequired: change.ActionRequired,
		})
	}
	if parsed.DesignerNotesEN != nil {
		data.DesignerNotesEN = parsed.DesignerNotesEN
	}
	if parsed.DesignerNotesAR != nil {
		data.DesignerNotesAR = parsed.DesignerNotesAR
	}
	if parsed.NextStepsEN != nil {
		data.NextStepsEN = parsed.NextStepsEN
	}
	if parsed.NextStepsAR != nil {
		data.NextStepsAR = parsed.NextStepsAR
	}

	return AnalysisResponse{
		Success:   true,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// RateLimitStatus reports the limiter state for the /rate-limit endpoint.
func (a *GeminiAnalyzer) RateLimitStatus() RateLimitStatus {
	return a.limiter.Status()
}

// Close closes the Gemini client. The google.golang.org/genai client holds
// no closable resources, so there is nothing to release.
func (a *GeminiAnalyzer) Close() error {
	return nil
}

// analysisPrompt builds the bilingual design-review prompt. The model must
// answer with the exact JSON shape parsed by geminiAnalysis.
func analysisPrompt(projectContext string) string {
	contextLine := ""
	if projectContext != "" {
		contextLine = fmt.Sprintf("Project Context: %s\n\n", projectContext)
	}
	return fmt.Sprintf(`You are a senior design lead providing direct feedback to your design team.

Analyze these two design versions (Version 1 = old, Version 2 = new) and provide ACTIONABLE feedback.

IMPORTANT: Focus on WHAT CHANGED and WHAT TO DO NEXT. Don't describe what's in the images.

Provide responses in BOTH Arabic and English for each section.

%sReturn your response in this exact JSON format:
{
    "changes": [
        {
            "category": "layout|colors|typography|spacing|content|components|effects",
            "description_en": "Direct action item in English",
            "description_ar": "Direct action item in Arabic",
            "severity": "minor|moderate|major",
            "location": "specific area/component name",
            "action_required": "What the designer needs to do next"
        }
    ],
    "similarity_score": 85.5,
    "summary_en": "Brief summary of main changes in English",
    "summary_ar": "Brief summary of main changes in Arabic",
    "designer_notes_en": [
        "Direct instruction for designer 1",
        "Direct instruction for designer 2"
    ],
    "designer_notes_ar": [
        "تعليمات مباشرة للمصمم 1",
        "تعليمات مباشرة للمصمم 2"
    ],
    "next_steps_en": [
        "Immediate action required",
        "Follow-up task"
    ],
    "next_steps_ar": [
        "إجراء مطلوب فوراً",
        "مهمة متابعة"
    ]
}`, contextLine)
}

// stripMarkdownCodeFences unwraps responses the model insists on fencing
// as "```json ... ```" despite the prompt.
func stripMarkdownCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	firstNewline := strings.Index(trimmed, "\n")
	if firstNewline == -1 {
		return trimmed
	}
	lastFence := strings.LastIndex(trimmed, "```")
	if lastFence <= firstNewline {
		return trimmed
	}
	return strings.TrimSpace(trimmed[firstNewline+1 : lastFence])
}
