package designai

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/furzing/techarabihackathon/chassis/archive"
	"github.com/furzing/techarabihackathon/chassis/storage"
)

// fakeAnalyzer returns a canned response and records the last call.
type fakeAnalyzer struct {
	response    AnalysisResponse
	lastContext string
	calls       int
}

func (f *fakeAnalyzer) AnalyzeDesignChanges(ctx context.Context, version1, version2 *Image, projectContext string) AnalysisResponse {
	f.calls++
	f.lastContext = projectContext
	return f.response
}

func (f *fakeAnalyzer) RateLimitStatus() RateLimitStatus {
	return RateLimitStatus{
		RequestsPerMinuteLimit: 15,
		DailyRequestsLimit:     1500,
		CanMakeRequest:         true,
	}
}

func successResponse() AnalysisResponse {
	data := emptyAnalysisData()
	data.SimilarityScore = 87.5
	data.SummaryEN = "Minor layout changes"
	data.SummaryAR = "تغييرات طفيفة في التخطيط"
	return AnalysisResponse{
		Success:   true,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func newTestService(t *testing.T, analyzer Analyzer, repo storage.AnalysisRepository) *Service {
	t.Helper()
	if repo == nil {
		repo = storage.InitMemRepository()
	}
	return NewService(&Config{
		Analyzer:        analyzer,
		Repository:      repo,
		Archive:         archive.InitNoopArchive(),
		MaxImageSize:    10 << 20,
		MaxDimension:    1024,
		AllowedFormats:  []string{"png", "jpg", "jpeg", "webp", "gif"},
		DownloadTimeout: 5 * time.Second,
	})
}

func doJSON(t *testing.T, handler http.Handler, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleRoot(t *testing.T) {
	svc := newTestService(t, &fakeAnalyzer{}, nil)
	rec := doJSON(t, svc.Router(), http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "active", body["status"])
	require.Equal(t, "Design Version AI", body["service"])
	require.Len(t, body["endpoints"], 3)
}

func TestHandleRateLimit(t *testing.T) {
	svc := newTestService(t, &fakeAnalyzer{}, nil)
	rec := doJSON(t, svc.Router(), http.MethodGet, "/rate-limit", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status RateLimitStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, 15, status.RequestsPerMinuteLimit)
	require.True(t, status.CanMakeRequest)
}

func TestAnalyzeURLsMissingURL(t *testing.T) {
	svc := newTestService(t, &fakeAnalyzer{}, nil)
	rec := doJSON(t, svc.Router(), http.MethodPost, "/analyze-urls", VersionComparisonRequest{
		Version1URL: "http://example.com/v1.png",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Both version URLs are required")
}

func TestAnalyzeURLsBadPayload(t *testing.T) {
	svc := newTestService(t, &fakeAnalyzer{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/analyze-urls", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()
	svc.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid JSON payload")
}

func TestAnalyzeURLsSuccess(t *testing.T) {
	imageData := encodePNG(t, 16, 16)
	images := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(imageData)
	}))
	defer images.Close()

	analyzer := &fakeAnalyzer{response: successResponse()}
	repo := storage.InitMemRepository()
	svc := newTestService(t, analyzer, repo)

	rec := doJSON(t, svc.Router(), http.MethodPost, "/analyze-urls", VersionComparisonRequest{
		Version1URL: images.URL + "/v1.png",
		Version2URL: images.URL + "/v2.png",
		Context:     "landing page redesign",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, analyzer.calls)
	require.Equal(t, "landing page redesign", analyzer.lastContext)

	var result AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.True(t, result.Success)
	require.Equal(t, 87.5, result.Data.SimilarityScore)
	require.NotEmpty(t, result.Data.AnalysisID)

	stored, err := repo.Get(context.Background(), result.Data.AnalysisID)
	require.NoError(t, err)
	require.Equal(t, "landing page redesign", stored.Context)
	require.Equal(t, 87.5, stored.SimilarityScore)
}

func TestAnalyzeURLsDownloadFailure(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer broken.Close()

	svc := newTestService(t, &fakeAnalyzer{response: successResponse()}, nil)
	rec := doJSON(t, svc.Router(), http.MethodPost, "/analyze-urls", VersionComparisonRequest{
		Version1URL: broken.URL + "/v1.png",
		Version2URL: broken.URL + "/v2.png",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Failed to download version 1")
}

func TestAnalyzeURLsUpstreamFailure(t *testing.T) {
	imageData := encodePNG(t, 16, 16)
	images := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(imageData)
	}))
	defer images.Close()

	analyzer := &fakeAnalyzer{response: FailedAnalysis("Analysis failed: quota exhausted")}
	svc := newTestService(t, analyzer, nil)

	rec := doJSON(t, svc.Router(), http.MethodPost, "/analyze-urls", VersionComparisonRequest{
		Version1URL: images.URL + "/v1.png",
		Version2URL: images.URL + "/v2.png",
	})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "quota exhausted")
}

func TestAnalyzeMultipart(t *testing.T) {
	imageData := encodePNG(t, 16, 16)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for _, field := range []string{"version1", "version2"} {
		part, err := form.CreateFormFile(field, field+".png")
		require.NoError(t, err)
		_, err = part.Write(imageData)
		require.NoError(t, err)
	}
	require.NoError(t, form.WriteField("context", "checkout flow"))
	require.NoError(t, form.Close())

	analyzer := &fakeAnalyzer{response: successResponse()}
	svc := newTestService(t, analyzer, nil)

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	svc.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "checkout flow", analyzer.lastContext)
}

func TestAnalyzeMultipartMissingFile(t *testing.T) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("version1", "v1.png")
	require.NoError(t, err)
	_, err = part.Write(encodePNG(t, 16, 16))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	svc := newTestService(t, &fakeAnalyzer{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	svc.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Version 2 validation failed")
}

func TestAnalyzeInvalidImage(t *testing.T) {
	images := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("definitely not an image"))
	}))
	defer images.Close()

	svc := newTestService(t, &fakeAnalyzer{}, nil)
	rec := doJSON(t, svc.Router(), http.MethodPost, "/analyze-urls", VersionComparisonRequest{
		Version1URL: images.URL + "/v1.png",
		Version2URL: images.URL + "/v2.png",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Version 1 validation failed")
}

func TestListAndGetAnalyses(t *testing.T) {
	repo := storage.InitMemRepository()
	details, _ := json.Marshal(map[string]interface{}{"similarity_score": 90.0})
	require.NoError(t, repo.Insert(context.Background(), &storage.Analysis{
		ID:              "a1",
		SimilarityScore: 90,
		SummaryEN:       "header moved",
		Context:         "nav redesign",
		Details:         details,
	}))

	svc := newTestService(t, &fakeAnalyzer{}, repo)

	rec := doJSON(t, svc.Router(), http.MethodGet, "/analyses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Analyses []analysisSummary `json:"analyses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.Analyses, 1)
	require.Equal(t, "a1", listing.Analyses[0].AnalysisID)

	rec = doJSON(t, svc.Router(), http.MethodGet, "/analyses/a1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "nav redesign")

	rec = doJSON(t, svc.Router(), http.MethodGet, "/analyses/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "analysis not found")
}

func TestListAnalysesInvalidLimit(t *testing.T) {
	svc := newTestService(t, &fakeAnalyzer{}, nil)
	rec := doJSON(t, svc.Router(), http.MethodGet, "/analyses?limit=nope", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid limit parameter")
}
