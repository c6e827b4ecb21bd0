package analysis

import (
	"testing"

	"github.com/contentpilot/viral-formats-bot/internal/models"
	"github.com/stretchr/testify/assert"
)

type stubLister struct {
	formats []models.FormatPattern
}

func (s *stubLister) List(platform models.Platform) []models.FormatPattern {
	return s.formats
}

func TestAnalyze_EmptyPost(t *testing.T) {
	service := NewService(NewExtractor(nil), nil)

	result := service.Analyze(models.ViralPost{ID: "empty", Platform: models.PlatformLinkedIn})

	assert.Equal(t, "empty", result.PostID)
	assert.Equal(t, models.HookNone, result.Pattern.HookType)
	assert.Equal(t, models.CTANone, result.Pattern.CTAType)
	assert.GreaterOrEqual(t, result.ViralityScore, 0)
	assert.LessOrEqual(t, result.ViralityScore, 40)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
	assert.NotEmpty(t, result.Recommendations)
	assert.False(t, result.AnalyzedAt.IsZero())
}

func TestAnalyze_FullPost(t *testing.T) {
	service := NewService(NewExtractor(nil), nil)

	result := service.Analyze(models.ViralPost{
		ID:       "rip-post",
		Platform: models.PlatformTwitter,
		Content:  "RIP cold outreach.\n\nThe secret is consistent content.\n\nComment \"SYSTEM\" below.",
		Metrics:  models.PostMetrics{EngagementRate: 7.2},
	})

	assert.Equal(t, models.HookBoldStatement, result.Pattern.HookType)
	assert.Equal(t, models.CTACommentPrompt, result.Pattern.CTAType)
	assert.Greater(t, result.ViralityScore, 30)
	assert.LessOrEqual(t, result.ViralityScore, 100)
	assert.Contains(t, result.Signals.EmotionalTriggers, models.TriggerCuriosity)
}

func TestAnalyze_SimilarFormatsCapped(t *testing.T) {
	lister := &stubLister{}
	for i := 0; i < 5; i++ {
		lister.formats = append(lister.formats, models.FormatPattern{
			Name:     "Question Format",
			HookType: models.HookQuestion,
		})
	}
	service := NewService(NewExtractor(nil), lister)

	result := service.Analyze(models.ViralPost{
		Platform: models.PlatformLinkedIn,
		Content:  "Why do launches flop?\n\nScope creep.",
	})

	assert.Len(t, result.SimilarFormats, 3)
}

func TestBuildRecommendations_PlatformSpecific(t *testing.T) {
	pc := Parse("a twitter draft that is going to run well over the single tweet ceiling " + loremWords(60))
	recs := buildRecommendations(models.PlatformTwitter, pc, models.DetectedFormatPattern{}, models.ViralSignals{})

	joined := ""
	for _, rec := range recs {
		joined += rec + " "
	}
	assert.Contains(t, joined, "single tweet")
}
