package socialmedia

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/furzing/techarabihackathon/chassis/httpx"
	log "github.com/furzing/techarabihackathon/chassis/logging"
)

const maxRequestBytes = 1 << 20

// Service - the Social Media Manager HTTP API.
type Service struct {
	manager *Manager
}

// NewService ...
func NewService(manager *Manager) *Service {
	return &Service{manager: manager}
}

// Router builds the service routes.
func (s *Service) Router() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	router.HandleFunc("/api/strategy", s.handleStrategy).Methods(http.MethodPost)
	router.HandleFunc("/api/marketing-plan", s.handleMarketingPlan).Methods(http.MethodPost)
	router.HandleFunc("/api/content-suggestions", s.handleContentSuggestions).Methods(http.MethodPost)
	router.HandleFunc("/api/create-post", s.handleCreatePost).Methods(http.MethodPost)
	router.HandleFunc("/api/schedule-post", s.handleSchedulePost).Methods(http.MethodPost)
	router.HandleFunc("/api/moderate-post", s.handleModeratePost).Methods(http.MethodPost)
	router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler())
	return httpx.CORS(router)
}

func (s *Service) handleRoot(w http.ResponseWriter, r *http.Request) {
	httpx.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "مرحباً بك في API إدارة وسائل التواصل الاجتماعي",
		"status":  "متصل",
	})
}

func (s *Service) handleStrategy(w http.ResponseWriter, r *http.Request) {
	var request StrategyRequest
	if err := httpx.DecodeJSON(r, &request, maxRequestBytes); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	log.WithFields(log.Fields{
		"event":    "generate_strategy",
		"business": request.BusinessInfo.BusinessName,
	}).Info("generating strategy")
	strategy, err := s.manager.GenerateStrategy(r.Context(), request.BusinessInfo)
	if err != nil {
		log.WithFields(log.Fields{
			"event": "generate_strategy_failed",
		}).Error(err)
		httpx.RespondError(w, http.StatusInternalServerError, "خطأ في إنشاء الاستراتيجية: %v", err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    strategy,
		Message: "تم إنشاء الاستراتيجية بنجاح",
	})
}

func (s *Service) handleMarketingPlan(w http.ResponseWriter, r *http.Request) {
	var request MarketingPlanRequest
	if err := httpx.DecodeJSON(r, &request, maxRequestBytes); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	log.WithFields(log.Fields{
		"event":    "create_marketing_plan",
		"duration": request.Duration,
	}).Info("creating marketing plan")
	plan, err := s.manager.CreateMarketingPlan(r.Context(), request.Strategy, request.Duration)
	if err != nil {
		log.WithFields(log.Fields{
			"event": "create_marketing_plan_failed",
		}).Error(err)
		httpx.RespondError(w, http.StatusInternalServerError, "خطأ في إنشاء الخطة التسويقية: %v", err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    plan,
		Message: "تم إنشاء الخطة التسويقية بنجاح",
	})
}

func (s *Service) handleContentSuggestions(w http.ResponseWriter, r *http.Request) {
	var request ContentSuggestionRequest
	if err := httpx.DecodeJSON(r, &request, maxRequestBytes); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	log.WithFields(log.Fields{
		"event": "suggest_content",
		"topic": request.Topic,
	}).Info("generating content suggestions")
	suggestions, err := s.manager.SuggestContent(r.Context(), request.Topic, request.ContentType, request.TargetPlatform)
	if err != nil {
		log.WithFields(log.Fields{
			"event": "suggest_content_failed",
		}).Error(err)
		httpx.RespondError(w, http.StatusInternalServerError, "خطأ في إنشاء اقتراحات المحتوى: %v", err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    suggestions,
		Message: "تم إنشاء اقتراحات المحتوى بنجاح",
	})
}

func (s *Service) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var request PostCreationRequest
	if err := httpx.DecodeJSON(r, &request, maxRequestBytes); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	log.WithFields(log.Fields{
		"event":    "create_post",
		"platform": request.Platform,
	}).Info("creating post")
	post, err := s.manager.CreatePost(r.Context(), request.Idea, request.Platform, request.Tone)
	if err != nil {
		log.WithFields(log.Fields{
			"event": "create_post_failed",
		}).Error(err)
		httpx.RespondError(w, http.StatusInternalServerError, "خطأ في إنشاء المنشور: %v", err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    post,
		Message: "تم إنشاء المنشور بنجاح",
	})
}

func (s *Service) handleSchedulePost(w http.ResponseWriter, r *http.Request) {
	var request PostScheduleRequest
	if err := httpx.DecodeJSON(r, &request, maxRequestBytes); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	scheduled, err := time.Parse("2006-01-02", request.ScheduledDate)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid scheduled_date, expected YYYY-MM-DD")
		return
	}
	today := time.Now().Truncate(24 * time.Hour)
	if !scheduled.After(today) {
		httpx.RespondError(w, http.StatusBadRequest, "تاريخ الجدولة يجب أن يكون في المستقبل")
		return
	}
	log.WithFields(log.Fields{
		"event": "schedule_post",
		"date":  request.ScheduledDate,
	}).Info("scheduling post")

	// Scheduling is mocked until a publishing integration lands.
	preview := []rune(request.PostContent)
	if len(preview) > 100 {
		preview = preview[:100]
	}
	confirmation := "تم جدولة المنشور بنجاح ليوم " + request.ScheduledDate +
		"\n\nمحتوى المنشور: " + string(preview) + "..."
	httpx.RespondJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    confirmation,
		Message: "تم جدولة المنشور بنجاح",
	})
}

func (s *Service) handleModeratePost(w http.ResponseWriter, r *http.Request) {
	var request PostModerationRequest
	if err := httpx.DecodeJSON(r, &request, maxRequestBytes); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	log.WithFields(log.Fields{
		"event": "moderate_post",
	}).Info("moderating post content")
	moderation, err := s.manager.ModeratePost(r.Context(), request.PostContent)
	if err != nil {
		log.WithFields(log.Fields{
			"event": "moderate_post_failed",
		}).Error(err)
		httpx.RespondError(w, http.StatusInternalServerError, "خطأ في تحليل المحتوى: %v", err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    moderation,
		Message: "تم تحليل المحتوى بنجاح",
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	httpx.RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"message":   "الخدمة تعمل بشكل طبيعي",
	})
}
