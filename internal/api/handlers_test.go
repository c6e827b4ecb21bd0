package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contentpilot/viral-formats-bot/internal/analysis"
	"github.com/contentpilot/viral-formats-bot/internal/config"
	"github.com/contentpilot/viral-formats-bot/internal/formatstore"
	"github.com/contentpilot/viral-formats-bot/internal/generator"
	"github.com/contentpilot/viral-formats-bot/internal/learning"
	"github.com/contentpilot/viral-formats-bot/internal/models"
	"github.com/contentpilot/viral-formats-bot/internal/notifications"
	"github.com/contentpilot/viral-formats-bot/internal/storage"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(t *testing.T) (*mux.Router, *formatstore.Store) {
	t.Helper()

	cfg := &config.Config{LearnSchedule: "weekly", MinLearnScore: 40}
	store := formatstore.NewStore()
	analyzer := analysis.NewService(analysis.NewExtractor(nil), store)
	learningService := learning.NewService(cfg, analyzer, store, storage.NewMemoryStorage(), notifications.NewService(cfg))
	handlers := NewHandlers(analyzer, store, generator.New(), nil, learningService)

	return NewRouter(handlers), store
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "posts_analyzed")
}

func TestAnalyzeEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/api/v1/analyze", models.ViralPost{
		ID:       "p1",
		Platform: models.PlatformTwitter,
		Content:  "RIP cold outreach.\n\nComment \"SYSTEM\" below.",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var result models.AnalysisResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.HookBoldStatement, result.Pattern.HookType)
	assert.Equal(t, models.CTACommentPrompt, result.Pattern.CTAType)
}

func TestAnalyzeEndpoint_RejectsUnknownPlatform(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/api/v1/analyze", models.ViralPost{
		Platform: "myspace",
		Content:  "hello",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "platform")
}

func TestListFormats(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/api/v1/formats", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var formats []models.FormatPattern
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &formats))
	assert.Len(t, formats, 3)

	rec = doJSON(t, router, "GET", "/api/v1/formats?platform=linkedin", nil)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &formats))
	assert.Len(t, formats, 2)

	rec = doJSON(t, router, "GET", "/api/v1/formats?platform=myspace", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetFormat(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/api/v1/formats/linkedin_promise_listicle_save_post", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var format models.FormatPattern
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &format))
	assert.Equal(t, "LinkedIn Listicle", format.Name)

	rec = doJSON(t, router, "GET", "/api/v1/formats/unknown_id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestStatsRouteIsNotShadowedByID(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/api/v1/formats/stats", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var stats models.StoreStats
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalFormats)
}

func TestLearnEndpoint(t *testing.T) {
	router, store := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/api/v1/formats/learn", map[string]interface{}{
		"post": models.ViralPost{
			ID:       "p1",
			Platform: models.PlatformLinkedIn,
			Content:  "Why do launches flop?\n\nScope creep.\n\nWhat do you think?",
		},
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var format models.FormatPattern
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &format))
	assert.Equal(t, models.HookQuestion, format.HookType)
	assert.GreaterOrEqual(t, format.UsageCount, 1)

	_, ok := store.Get(format.ID)
	assert.True(t, ok)
}

func TestLearnBatchEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/api/v1/formats/learn/batch", map[string]interface{}{
		"posts": []models.ViralPost{
			{ID: "a", Platform: models.PlatformTwitter, Content: "RIP cold outreach."},
			{ID: "b", Platform: models.PlatformTwitter, Content: "87% of side projects die."},
		},
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var formats []models.FormatPattern
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &formats))
	assert.Len(t, formats, 2)

	rec = doJSON(t, router, "POST", "/api/v1/formats/learn/batch", map[string]interface{}{"posts": []models.ViralPost{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/api/v1/formats/match", map[string]interface{}{
		"topic":    "productivity habits",
		"platform": "linkedin",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var result models.MatchResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Greater(t, result.MatchScore, 0.0)
	assert.NotEmpty(t, result.Format.ID)
}

func TestUpdateAndDeleteFormat(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "PATCH", "/api/v1/formats/linkedin_promise_listicle_save_post", map[string]interface{}{
		"name": "Renamed Listicle",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Renamed Listicle")

	rec = doJSON(t, router, "DELETE", "/api/v1/formats/linkedin_promise_listicle_save_post", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "DELETE", "/api/v1/formats/linkedin_promise_listicle_save_post", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteFormats_BulkAndClear(t *testing.T) {
	router, store := newTestRouter(t)

	rec := doJSON(t, router, "DELETE", "/api/v1/formats", map[string]interface{}{
		"ids": []string{"linkedin_promise_listicle_save_post", "missing"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted":1`)
	assert.Len(t, store.List(""), 2)

	rec = doJSON(t, router, "DELETE", "/api/v1/formats", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.List(""))
}

func TestExportImport(t *testing.T) {
	router, store := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/api/v1/formats/export", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var exported []models.FormatPattern
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exported))
	assert.Len(t, exported, 3)

	rec = doJSON(t, router, "POST", "/api/v1/formats/import", map[string]interface{}{
		"formats": []models.FormatPattern{{
			Platform: models.PlatformTwitter,
			HookType: models.HookStatistic,
			BodyType: models.BodyCaseStudy,
			CTAType:  models.CTASavePost,
		}},
		"strategy": "replace",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"imported":1`)
	assert.Len(t, store.List(""), 4)
}

func TestDraftEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/api/v1/drafts", map[string]interface{}{
		"topic":    "AI sales automation",
		"platform": "linkedin",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Draft models.Draft       `json:"draft"`
		Match models.MatchResult `json:"match"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Draft.Content)
	assert.Equal(t, models.PlatformLinkedIn, resp.Draft.Platform)
	assert.Equal(t, resp.Match.Format.ID, resp.Draft.FormatID)
	assert.False(t, resp.Draft.Polished)
}

func TestDraftEndpoint_RequiresTopic(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/api/v1/drafts", map[string]interface{}{
		"platform": "twitter",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "topic")
}

func TestTriggerEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/trigger", nil)

	assert.Equal(t, http.StatusAccepted, rec.Code)
}
