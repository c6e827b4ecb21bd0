package notifications

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/contentpilot/viral-formats-bot/internal/config"
	"github.com/contentpilot/viral-formats-bot/internal/models"
	"github.com/stretchr/testify/assert"
)

func sampleReport() *models.FormatReport {
	return &models.FormatReport{
		GeneratedAt:    time.Date(2026, 1, 5, 7, 0, 0, 0, time.UTC),
		Period:         "weekly",
		PostsAnalyzed:  42,
		FormatsLearned: 7,
		TotalFormats:   12,
		TopFormats: []models.FormatPattern{
			{Name: "LinkedIn Listicle", Platform: models.PlatformLinkedIn, EffectivenessScore: 68, UsageCount: 9},
			{Name: "Twitter Bold Statement", Platform: models.PlatformTwitter, EffectivenessScore: 61, UsageCount: 4},
		},
		PlatformBreakdown: map[string]int{"linkedin": 30, "twitter": 12},
	}
}

func TestSendReport_NoChannelsConfigured(t *testing.T) {
	service := NewService(&config.Config{})

	assert.NoError(t, service.SendReport(sampleReport()))
}

func TestSendReport_TeamsWebhook(t *testing.T) {
	received := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = true
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	service := NewService(&config.Config{TeamsWebhookURL: server.URL})

	assert.NoError(t, service.SendReport(sampleReport()))
	assert.True(t, received)
}

func TestSendReport_TeamsWebhookFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	service := NewService(&config.Config{TeamsWebhookURL: server.URL})

	err := service.SendReport(sampleReport())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Teams")
}

func TestBuildTeamsMessage(t *testing.T) {
	service := NewService(&config.Config{})

	message := service.buildTeamsMessage(sampleReport())

	assert.Equal(t, "MessageCard", message.Type)
	assert.Contains(t, message.Title, "weekly")
	assert.Contains(t, message.Text, "42 posts")
	assert.Len(t, message.Sections, 1)
	assert.Contains(t, message.Sections[0].ActivityText, "LinkedIn Listicle")

	factNames := make([]string, 0, len(message.Sections[0].Facts))
	for _, fact := range message.Sections[0].Facts {
		factNames = append(factNames, fact.Name)
	}
	assert.Contains(t, factNames, "Posts analyzed")
	assert.Contains(t, factNames, "Posts from linkedin")
}

func TestEmailTemplate_Renders(t *testing.T) {
	var buf bytes.Buffer

	assert.NoError(t, emailTemplate.Execute(&buf, sampleReport()))
	assert.Contains(t, buf.String(), "LinkedIn Listicle")
	assert.Contains(t, buf.String(), "42")
}
