package designai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/furzing/techarabihackathon/chassis/archive"
	"github.com/furzing/techarabihackathon/chassis/httpx"
	log "github.com/furzing/techarabihackathon/chassis/logging"
	"github.com/furzing/techarabihackathon/chassis/metrics"
	"github.com/furzing/techarabihackathon/chassis/storage"
)

// Config ...
type Config struct {
	Analyzer        Analyzer
	Repository      storage.AnalysisRepository
	Archive         archive.Archiver
	MaxImageSize    int
	MaxDimension    int
	AllowedFormats  []string
	DownloadTimeout time.Duration
}

// Service - the Design Version Control AI HTTP API.
type Service struct {
	cfg        *Config
	downloader *http.Client
}

// NewService ...
func NewService(cfg *Config) *Service {
	return &Service{
		cfg: cfg,
		downloader: &http.Client{
			Timeout: cfg.DownloadTimeout,
		},
	}
}

// Router builds the service routes.
func (s *Service) Router() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	router.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)
	router.HandleFunc("/analyze-urls", s.handleAnalyzeURLs).Methods(http.MethodPost)
	router.HandleFunc("/rate-limit", s.handleRateLimit).Methods(http.MethodGet)
	router.HandleFunc("/analyses", s.handleListAnalyses).Methods(http.MethodGet)
	router.HandleFunc("/analyses/{id}", s.handleGetAnalysis).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler())
	return httpx.CORS(router)
}

func (s *Service) handleRoot(w http.ResponseWriter, r *http.Request) {
	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "active",
		"service": "Design Version AI",
		"endpoints": []string{
			"/analyze - Compare two design versions",
			"/analyze-urls - Compare designs from URLs",
			"/rate-limit - Check API rate limit status",
		},
	})
}

func (s *Service) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	// Both files plus form overhead.
	if err := r.ParseMultipartForm(int64(s.cfg.MaxImageSize)*2 + 1<<20); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid multipart form: %v", err)
		return
	}
	image1Bytes, err := s.formImage(r, "version1")
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Version 1 validation failed: %v", err)
		return
	}
	image2Bytes, err := s.formImage(r, "version2")
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Version 2 validation failed: %v", err)
		return
	}
	s.analyze(r.Context(), w, image1Bytes, image2Bytes, r.FormValue("context"))
}

func (s *Service) handleAnalyzeURLs(w http.ResponseWriter, r *http.Request) {
	var request VersionComparisonRequest
	if err := httpx.DecodeJSON(r, &request, 1<<20); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if request.Version1URL == "" || request.Version2URL == "" {
		httpx.RespondError(w, http.StatusBadRequest, "Both version URLs are required")
		return
	}
	image1Bytes, err := s.download(r.Context(), request.Version1URL)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Failed to download version 1")
		return
	}
	image2Bytes, err := s.download(r.Context(), request.Version2URL)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Failed to download version 2")
		return
	}
	s.analyze(r.Context(), w, image1Bytes, image2Bytes, request.Context)
}

// analyze is the shared pipeline: validate, resize, compare, persist, archive.
func (s *Service) analyze(ctx context.Context, w http.ResponseWriter, image1Bytes, image2Bytes []byte, projectContext string) {
	started := time.Now()
	defer func() {
		metrics.AnalysisDuration.Observe(time.Since(started).Seconds())
	}()

	image1, err := ValidateImage(image1Bytes, s.cfg.MaxImageSize, s.cfg.AllowedFormats)
	if err != nil {
		metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeInvalidImage).Inc()
		httpx.RespondError(w, http.StatusBadRequest, "Version 1 validation failed: %v", err)
		return
	}
	image2, err := ValidateImage(image2Bytes, s.cfg.MaxImageSize, s.cfg.AllowedFormats)
	if err != nil {
		metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeInvalidImage).Inc()
		httpx.RespondError(w, http.StatusBadRequest, "Version 2 validation failed: %v", err)
		return
	}

	image1, err = ResizeIfNeeded(image1, s.cfg.MaxDimension)
	if err == nil {
		image2, err = ResizeIfNeeded(image2, s.cfg.MaxDimension)
	}
	if err != nil {
		metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeInternalError).Inc()
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error: %v", err)
		return
	}

	result := s.cfg.Analyzer.AnalyzeDesignChanges(ctx, image1, image2, projectContext)
	if !result.Success {
		outcome := metrics.OutcomeUpstreamError
		if result.RateLimited {
			outcome = metrics.OutcomeRateLimited
		}
		metrics.AnalysisRequests.WithLabelValues(outcome).Inc()
		httpx.RespondError(w, http.StatusServiceUnavailable, "%s", result.Error)
		return
	}

	s.persist(ctx, &result, image1, image2, projectContext)
	metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeOK).Inc()
	httpx.RespondJSON(w, http.StatusOK, result)
}

// persist stores the analysis record and archives the compared versions.
// Neither failure mode fails the request.
func (s *Service) persist(ctx context.Context, result *AnalysisResponse, image1, image2 *Image, projectContext string) {
	analysisID := uuid.New().String()
	result.Data.AnalysisID = analysisID

	details, err := json.Marshal(result.Data)
	if err == nil {
		err = s.cfg.Repository.Insert(ctx, &storage.Analysis{
			ID:              analysisID,
			SimilarityScore: result.Data.SimilarityScore,
			SummaryEN:       result.Data.SummaryEN,
			SummaryAR:       result.Data.SummaryAR,
			Details:         details,
			Context:         projectContext,
			ImageHash1:      ImageHash(image1.Data),
			ImageHash2:      ImageHash(image2.Data),
		})
	}
	if err != nil {
		log.WithFields(log.Fields{
			"event":      "analysis_persist_failed",
			"analysisID": analysisID,
		}).Error(err)
		result.Data.AnalysisID = ""
		return
	}

	for i, img := range []*Image{image1, image2} {
		key := fmt.Sprintf("%s/version%d.%s", analysisID, i+1, img.Ext())
		if err := s.cfg.Archive.Put(key, img.Data, img.MIME()); err != nil {
			log.WithFields(log.Fields{
				"event":      "archive_failed",
				"analysisID": analysisID,
				"key":        key,
			}).Error(err)
		}
	}
}

func (s *Service) handleRateLimit(w http.ResponseWriter, r *http.Request) {
	httpx.RespondJSON(w, http.StatusOK, s.cfg.Analyzer.RateLimitStatus())
}

// analysisSummary is the list-view projection of a stored analysis.
type analysisSummary struct {
	AnalysisID      string    `json:"analysis_id"`
	SimilarityScore float64   `json:"similarity_score"`
	SummaryEN       string    `json:"summary_en"`
	SummaryAR       string    `json:"summary_ar"`
	CreatedAt       time.Time `json:"created_at"`
}

func (s *Service) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			httpx.RespondError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}
	analyses, err := s.cfg.Repository.ListRecent(r.Context(), limit)
	if err != nil {
		log.WithFields(log.Fields{
			"event": "analysis_list_failed",
		}).Error(err)
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error: %v", err)
		return
	}
	summaries := make([]analysisSummary, 0, len(analyses))
	for _, analysis := range analyses {
		summaries = append(summaries, analysisSummary{
			AnalysisID:      analysis.ID,
			SimilarityScore: analysis.SimilarityScore,
			SummaryEN:       analysis.SummaryEN,
			SummaryAR:       analysis.SummaryAR,
			CreatedAt:       analysis.CreatedDt,
		})
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"analyses": summaries,
	})
}

func (s *Service) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysisID := mux.Vars(r)["id"]
	analysis, err := s.cfg.Repository.Get(r.Context(), analysisID)
	if err != nil {
		if err == storage.ErrNotFound {
			httpx.RespondError(w, http.StatusNotFound, "analysis not found")
			return
		}
		log.WithFields(log.Fields{
			"event":      "analysis_get_failed",
			"analysisID": analysisID,
		}).Error(err)
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error: %v", err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"analysis_id": analysis.ID,
		"context":     analysis.Context,
		"created_at":  analysis.CreatedDt,
		"data":        json.RawMessage(analysis.Details),
	})
}

// formImage pulls one uploaded file out of the multipart form.
func (s *Service) formImage(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing file %q", field)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, int64(s.cfg.MaxImageSize)+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %v", field, err)
	}
	return data, nil
}

// download fetches a hosted design version.
func (s *Service) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.downloader.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, int64(s.cfg.MaxImageSize)+1))
}
