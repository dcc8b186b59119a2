package socialmedia

// BusinessInfo describes the business a strategy is generated for.
type BusinessInfo struct {
	BusinessName        string `json:"business_name"`
	BusinessType        string `json:"business_type"`
	TargetAudience      string `json:"target_audience"`
	Location            string `json:"location"`
	UniqueSellingPoints string `json:"unique_selling_points,omitempty"`
}

// StrategyRequest ...
type StrategyRequest struct {
	BusinessInfo BusinessInfo `json:"business_info"`
}

// MarketingPlanRequest ...
type MarketingPlanRequest struct {
	Strategy string `json:"strategy"`
	Duration string `json:"duration,omitempty"` // defaults to "1 month"
}

// ContentSuggestionRequest ...
type ContentSuggestionRequest struct {
	Topic          string `json:"topic"`
	ContentType    string `json:"content_type,omitempty"`    // defaults to "all"
	TargetPlatform string `json:"target_platform,omitempty"` // defaults to "Instagram"
}

// PostCreationRequest ...
type PostCreationRequest struct {
	Idea     string `json:"idea"`
	Platform string `json:"platform,omitempty"` // defaults to "Instagram"
	Tone     string `json:"tone,omitempty"`     // defaults to "engaging"
}

// PostScheduleRequest ...
type PostScheduleRequest struct {
	PostContent   string `json:"post_content"`
	ScheduledDate string `json:"scheduled_date"` // YYYY-MM-DD, must be in the future
}

// PostModerationRequest ...
type PostModerationRequest struct {
	PostContent string `json:"post_content"`
}

// APIResponse - success envelope shared by all endpoints.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}
