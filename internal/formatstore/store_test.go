package formatstore

import (
	"testing"

	"github.com/contentpilot/viral-formats-bot/internal/models"
	"github.com/stretchr/testify/assert"
)

func analysisWith(score int, hook models.HookType, body models.BodyType, cta models.CTAType) models.AnalysisResult {
	return models.AnalysisResult{
		ViralityScore: score,
		Pattern: models.DetectedFormatPattern{
			HookType: hook,
			BodyType: body,
			CTAType:  cta,
		},
	}
}

func TestFormatID(t *testing.T) {
	id := FormatID(models.PlatformLinkedIn, models.HookQuestion, models.BodyHowToGuide, models.CTACommentPrompt)
	assert.Equal(t, "linkedin_question_how_to_guide_comment_prompt", id)
}

func TestNewStore_Seeds(t *testing.T) {
	store := NewStore()

	formats := store.List("")
	assert.Len(t, formats, 3)

	// Sorted by effectiveness descending
	assert.Equal(t, "linkedin_promise_listicle_save_post", formats[0].ID)
	assert.InDelta(t, 68, formats[0].EffectivenessScore, 0.001)
	assert.InDelta(t, 61, formats[2].EffectivenessScore, 0.001)

	linkedin := store.List(models.PlatformLinkedIn)
	assert.Len(t, linkedin, 2)
}

func TestLearn_NewFormat(t *testing.T) {
	store := NewStore()
	post := models.ViralPost{ID: "p1", Platform: models.PlatformLinkedIn, Content: "Why does this work?"}

	format := store.Learn(post, analysisWith(40, models.HookQuestion, models.BodyHowToGuide, models.CTACommentPrompt))

	assert.Equal(t, "linkedin_question_how_to_guide_comment_prompt", format.ID)
	assert.InDelta(t, 40, format.EffectivenessScore, 0.001)
	assert.Equal(t, 1, format.UsageCount)
	assert.NotEmpty(t, format.Template)
	assert.NotEmpty(t, format.Name)
}

func TestLearn_MovingAverage(t *testing.T) {
	store := NewStore()
	post := models.ViralPost{ID: "p1", Platform: models.PlatformLinkedIn}

	store.Learn(post, analysisWith(40, models.HookQuestion, models.BodyHowToGuide, models.CTACommentPrompt))
	format := store.Learn(post, analysisWith(80, models.HookQuestion, models.BodyHowToGuide, models.CTACommentPrompt))

	// weight = min(0.3, 1/2) = 0.3, so 40*0.7 + 80*0.3
	assert.InDelta(t, 52, format.EffectivenessScore, 0.001)
	assert.Equal(t, 2, format.UsageCount)

	// weight caps at 0.3 from here on
	format = store.Learn(post, analysisWith(80, models.HookQuestion, models.BodyHowToGuide, models.CTACommentPrompt))
	assert.InDelta(t, 60.4, format.EffectivenessScore, 0.001)
	assert.Equal(t, 3, format.UsageCount)
}

func TestLearn_TagsUnion(t *testing.T) {
	store := NewStore()
	post := models.ViralPost{ID: "p1", Platform: models.PlatformTwitter}

	first := analysisWith(50, models.HookQuestion, models.BodyHowToGuide, models.CTANone)
	first.Signals.TopicRelevance = []models.TopicRelevance{{Topic: "ai", Relevance: 0.6}}
	first.Signals.EmotionalTriggers = []models.EmotionalTrigger{models.TriggerCuriosity}
	store.Learn(post, first)

	second := analysisWith(50, models.HookQuestion, models.BodyHowToGuide, models.CTANone)
	second.Signals.TopicRelevance = []models.TopicRelevance{
		{Topic: "marketing", Relevance: 0.3},
		{Topic: "careers", Relevance: 0.1}, // below the floor, ignored
	}
	format := store.Learn(post, second)

	assert.ElementsMatch(t, []string{"ai", "curiosity", "marketing"}, format.Tags)
}

func TestGet_NotFound(t *testing.T) {
	store := NewStore()

	_, ok := store.Get("nope")
	assert.False(t, ok)

	format, ok := store.Get("linkedin_promise_listicle_save_post")
	assert.True(t, ok)
	assert.Equal(t, "LinkedIn Listicle", format.Name)
}

func TestUpdate(t *testing.T) {
	store := NewStore()
	name := "Renamed"
	over := 150.0

	updated, ok := store.Update("linkedin_promise_listicle_save_post", UpdateRequest{
		Name:               &name,
		EffectivenessScore: &over,
	})

	assert.True(t, ok)
	assert.Equal(t, "Renamed", updated.Name)
	assert.InDelta(t, 100, updated.EffectivenessScore, 0.001) // clamped
	assert.Equal(t, "Promise-driven numbered list with a save prompt", updated.Description)

	_, ok = store.Update("nope", UpdateRequest{Name: &name})
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	store := NewStore()

	assert.True(t, store.Delete("linkedin_promise_listicle_save_post"))
	assert.False(t, store.Delete("linkedin_promise_listicle_save_post"))
	assert.Len(t, store.List(""), 2)
}

func TestBulkDelete(t *testing.T) {
	store := NewStore()

	deleted := store.BulkDelete([]string{
		"linkedin_promise_listicle_save_post",
		"twitter_bold_statement_insight_sharing_engagement_bait",
		"does_not_exist",
	})

	assert.Equal(t, 2, deleted)
	assert.Len(t, store.List(""), 1)
}

func TestExportImport_RoundTrip(t *testing.T) {
	store := NewStore()
	exported := store.Export()
	assert.Len(t, exported, 3)

	fresh := NewStore()
	fresh.Clear()
	applied := fresh.Import(exported, models.MergeReplace)

	assert.Equal(t, 3, applied)
	assert.Equal(t, exported, fresh.Export())
}

func TestImport_Average(t *testing.T) {
	store := NewStore()

	incoming, _ := store.Get("linkedin_promise_listicle_save_post")
	incoming.EffectivenessScore = 48
	incoming.UsageCount = 3
	incoming.Tags = []string{"fresh"}

	applied := store.Import([]models.FormatPattern{incoming}, models.MergeAverage)
	assert.Equal(t, 1, applied)

	merged, _ := store.Get(incoming.ID)
	assert.InDelta(t, 58, merged.EffectivenessScore, 0.001)
	assert.Equal(t, 4, merged.UsageCount)
	assert.Contains(t, merged.Tags, "fresh")
	assert.Contains(t, merged.Tags, "productivity")
}

func TestImport_SkipExisting(t *testing.T) {
	store := NewStore()

	incoming, _ := store.Get("linkedin_promise_listicle_save_post")
	incoming.EffectivenessScore = 1

	applied := store.Import([]models.FormatPattern{incoming}, models.MergeSkip)
	assert.Zero(t, applied)

	kept, _ := store.Get(incoming.ID)
	assert.InDelta(t, 68, kept.EffectivenessScore, 0.001)
}

func TestImport_InvalidRecordsSkipped(t *testing.T) {
	store := NewStore()

	applied := store.Import([]models.FormatPattern{
		{Platform: "tiktok", HookType: models.HookQuestion, BodyType: models.BodyListicle, CTAType: models.CTANone},
		{Platform: models.PlatformTwitter, HookType: "", BodyType: models.BodyListicle, CTAType: models.CTANone},
	}, models.MergeReplace)

	assert.Zero(t, applied)
}

func TestImport_DerivesMissingID(t *testing.T) {
	store := NewStore()
	store.Clear()

	applied := store.Import([]models.FormatPattern{{
		Platform: models.PlatformTwitter,
		HookType: models.HookStatistic,
		BodyType: models.BodyCaseStudy,
		CTAType:  models.CTASavePost,
	}}, models.MergeReplace)

	assert.Equal(t, 1, applied)
	_, ok := store.Get("twitter_statistic_case_study_save_post")
	assert.True(t, ok)
}

func TestClear(t *testing.T) {
	store := NewStore()
	store.Clear()

	assert.Empty(t, store.List(""))
}

func TestStats(t *testing.T) {
	store := NewStore()

	stats := store.Stats("")
	assert.Equal(t, 3, stats.TotalFormats)
	assert.InDelta(t, 64.333, stats.AvgEffectiveness, 0.001)
	assert.Equal(t, 2, stats.PlatformBreakdown["linkedin"])
	assert.Equal(t, 1, stats.PlatformBreakdown["twitter"])
	assert.NotEmpty(t, stats.TopHookTypes)

	linkedinOnly := store.Stats(models.PlatformLinkedIn)
	assert.Equal(t, 2, linkedinOnly.TotalFormats)
	assert.InDelta(t, 66, linkedinOnly.AvgEffectiveness, 0.001)
}
