package analysis

import (
	"testing"

	"github.com/contentpilot/viral-formats-bot/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDetectTriggers(t *testing.T) {
	pc := Parse("The secret is out: avoid this mistake right now.")
	triggers := detectTriggers(pc)

	// One hit per category, reported in category order
	assert.Equal(t, []models.EmotionalTrigger{
		models.TriggerCuriosity,
		models.TriggerFear,
		models.TriggerUrgency,
	}, triggers)
}

func TestDetectTriggers_NoVocabulary(t *testing.T) {
	assert.Empty(t, detectTriggers(Parse("a perfectly neutral sentence")))
}

func TestRankTopics(t *testing.T) {
	e := NewExtractor(nil)
	ranked := e.rankTopics(Parse("AI automation tools for startup founders"))

	assert.Len(t, ranked, 2)
	assert.Equal(t, "ai", ranked[0].Topic)
	assert.InDelta(t, 0.6, ranked[0].Relevance, 0.001)
	assert.True(t, ranked[0].Trending)
	assert.Equal(t, "entrepreneurship", ranked[1].Topic)
	assert.InDelta(t, 0.6, ranked[1].Relevance, 0.001)
}

func TestRankTopics_CustomTrendingList(t *testing.T) {
	e := NewExtractor([]string{"careers"})
	ranked := e.rankTopics(Parse("machine learning in production"))

	assert.NotEmpty(t, ranked)
	assert.Equal(t, "ai", ranked[0].Topic)
	assert.False(t, ranked[0].Trending)
}

func TestDetectTimingSignals(t *testing.T) {
	signals := detectTimingSignals(Parse("I shipped this yesterday morning"))

	types := make([]string, 0, len(signals))
	for _, s := range signals {
		types = append(types, s.Type)
	}
	assert.Contains(t, types, "time_of_day")
	assert.Contains(t, types, "relative_date")
}

func TestDetectFormatElements(t *testing.T) {
	pc := Parse("Big news 🚀\n\n1. First\n2. Second\n\n#launch")
	elements := detectFormatElements(pc, models.PlatformLinkedIn)

	byType := make(map[string]models.FormatElement)
	for _, el := range elements {
		byType[el.Type] = el
	}

	assert.True(t, byType["emoji"].Present)
	assert.Equal(t, "high", byType["emoji"].Significance)
	assert.True(t, byType["hashtag"].Present)
	assert.Equal(t, "medium", byType["hashtag"].Significance)
	assert.Equal(t, 2, byType["list_format"].Count)
	assert.False(t, byType["all_caps"].Present)
}

func TestLengthFit(t *testing.T) {
	tests := []struct {
		name     string
		words    int
		platform models.Platform
		want     float64
	}{
		{"twitter inside band", 20, models.PlatformTwitter, 100},
		{"twitter below band", 5, models.PlatformTwitter, 90},
		{"linkedin below band", 100, models.PlatformLinkedIn, 50},
		{"linkedin above band", 350, models.PlatformLinkedIn, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ind := lengthFit(Parse(loremWords(tt.words)), tt.platform)
			assert.InDelta(t, tt.want, ind.Score, 0.001)
		})
	}
}

func TestHookStrength(t *testing.T) {
	empty := hookStrength(Parse(""))
	assert.Zero(t, empty.Score)

	strong := hookStrength(Parse("5 quick wins?"))
	// base 50, +20 question, +15 leading digit, +10 concise line
	assert.InDelta(t, 95, strong.Score, 0.001)
}

func TestExtract_Totality(t *testing.T) {
	e := NewExtractor(nil)
	signals := e.Extract(Parse(""), models.PlatformTwitter)

	assert.Empty(t, signals.EmotionalTriggers)
	assert.Len(t, signals.FormatElements, 6)
	assert.Len(t, signals.Indicators, 4)
	for _, ind := range signals.Indicators {
		assert.GreaterOrEqual(t, ind.Score, 0.0)
		assert.LessOrEqual(t, ind.Score, 100.0)
	}
}
