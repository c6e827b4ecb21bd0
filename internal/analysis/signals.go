package analysis

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/contentpilot/viral-formats-bot/internal/models"
)

// triggerKeywords maps each emotional trigger to its fixed vocabulary.
// Matching is case-insensitive containment; the first keyword hit adds the
// trigger and moves on to the next category.
var triggerKeywords = []struct {
	Trigger  models.EmotionalTrigger
	Keywords []string
}{
	{models.TriggerCuriosity, []string{"secret", "what nobody", "hidden", "revealed", "you won't believe", "the truth about"}},
	{models.TriggerFear, []string{"mistake", "warning", "danger", "risk", "avoid", "before it's too late"}},
	{models.TriggerExcitement, []string{"amazing", "incredible", "game-changer", "breakthrough", "huge", "thrilled"}},
	{models.TriggerValidation, []string{"you're not alone", "it's okay", "you deserve", "perfectly normal", "valid"}},
	{models.TriggerSurprise, []string{"shocking", "unexpected", "plot twist", "turns out", "nobody saw", "surprised"}},
	{models.TriggerAnger, []string{"outrageous", "unacceptable", "furious", "scam", "rigged", "fed up"}},
	{models.TriggerNostalgia, []string{"remember when", "back in", "used to", "old school", "the good old", "throwback"}},
	{models.TriggerInspiration, []string{"never give up", "dream", "overcome", "proof that", "inspiring", "against all odds"}},
	{models.TriggerFrustration, []string{"tired of", "sick of", "annoying", "struggle", "frustrated", "why is it so hard"}},
	{models.TriggerHope, []string{"hope", "it gets better", "brighter", "optimistic", "light at the end", "still possible"}},
	{models.TriggerUrgency, []string{"right now", "today only", "last chance", "deadline", "running out", "act fast"}},
	{models.TriggerFOMO, []string{"don't miss", "missing out", "everyone is", "limited spots", "exclusive", "before it's gone"}},
}

// topicKeywords maps each known topic to its keyword list. Relevance is
// min(1, hits*0.3).
var topicKeywords = []struct {
	Topic    string
	Keywords []string
}{
	{"ai", []string{"ai", "artificial intelligence", "chatgpt", "llm", "machine learning", "automation"}},
	{"entrepreneurship", []string{"startup", "founder", "business", "entrepreneur", "bootstrapped", "revenue"}},
	{"marketing", []string{"marketing", "brand", "audience", "content", "viral", "engagement"}},
	{"careers", []string{"career", "job", "hiring", "interview", "resume", "promotion"}},
	{"productivity", []string{"productivity", "habits", "routine", "focus", "time management", "deep work"}},
	{"personal_finance", []string{"money", "invest", "saving", "income", "wealth", "financial freedom"}},
}

const topicKeywordWeight = 0.3

// defaultTrendingTopics is the static allowlist used for the trending flag.
var defaultTrendingTopics = []string{"ai", "automation", "personal branding", "remote work", "creator economy"}

// timingPatterns are reported only when they match; absent checks produce no entry.
var timingPatterns = []struct {
	Type    string
	Pattern *regexp.Regexp
}{
	{"day_of_week", regexp.MustCompile(`\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)},
	{"time_of_day", regexp.MustCompile(`\b(morning|afternoon|evening|tonight|noon|midnight)\b|\b\d{1,2}(:\d{2})?\s?(am|pm)\b`)},
	{"relative_date", regexp.MustCompile(`\b(today|yesterday|tomorrow|this week|last week|next week)\b`)},
	{"urgency_marker", regexp.MustCompile(`\b(hurry|limited time|last chance|don('|’)?t miss|deadline|ends (today|soon))\b`)},
	{"elapsed_time", regexp.MustCompile(`\b\d+ (minutes?|hours?|days?|weeks?|months?|years?) ago\b`)},
}

// Platform-conditioned significance tiers for format elements.
var elementSignificance = map[string]map[models.Platform]string{
	"emoji":       {models.PlatformLinkedIn: "high", models.PlatformTwitter: "medium"},
	"hashtag":     {models.PlatformLinkedIn: "medium", models.PlatformTwitter: "high"},
	"line_break":  {models.PlatformLinkedIn: "high", models.PlatformTwitter: "low"},
	"all_caps":    {models.PlatformLinkedIn: "medium", models.PlatformTwitter: "medium"},
	"number":      {models.PlatformLinkedIn: "high", models.PlatformTwitter: "high"},
	"list_format": {models.PlatformLinkedIn: "high", models.PlatformTwitter: "medium"},
}

// Optimal word-count bands per platform for the length-fit indicator.
var optimalWordBands = map[models.Platform][2]int{
	models.PlatformLinkedIn: {150, 300},
	models.PlatformTwitter:  {15, 50},
}

// Indicator bonus tables
const (
	hookStrengthBase      = 50
	readabilityBase       = 70
	engagementBase        = 40
	indicatorMaxScore     = 100
	allCapsRunPattern     = `[A-Z]{2,}`
	hookShortLineMaxChars = 100
)

var allCapsRun = regexp.MustCompile(allCapsRunPattern)

// Extractor detects viral signals in parsed content. The trending-topic
// allowlist is injectable so deployments can override the static set.
type Extractor struct {
	trending map[string]bool
}

// NewExtractor builds an Extractor. An empty trending list falls back to the
// built-in allowlist.
func NewExtractor(trendingTopics []string) *Extractor {
	if len(trendingTopics) == 0 {
		trendingTopics = defaultTrendingTopics
	}
	trending := make(map[string]bool, len(trendingTopics))
	for _, topic := range trendingTopics {
		trending[strings.ToLower(strings.TrimSpace(topic))] = true
	}
	return &Extractor{trending: trending}
}

// Extract returns all viral signals for one post. Total and side-effect-free.
func (e *Extractor) Extract(pc ParsedContent, platform models.Platform) models.ViralSignals {
	return models.ViralSignals{
		EmotionalTriggers: detectTriggers(pc),
		FormatElements:    detectFormatElements(pc, platform),
		TimingSignals:     detectTimingSignals(pc),
		TopicRelevance:    e.rankTopics(pc),
		Indicators:        computeIndicators(pc, platform),
	}
}

func detectTriggers(pc ParsedContent) []models.EmotionalTrigger {
	lower := strings.ToLower(pc.Raw)
	triggers := []models.EmotionalTrigger{}
	for _, entry := range triggerKeywords {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				triggers = append(triggers, entry.Trigger)
				break
			}
		}
	}
	return triggers
}

func detectFormatElements(pc ParsedContent, platform models.Platform) []models.FormatElement {
	listItems := len(numberedItemPattern.FindAllString(pc.Raw, -1)) + len(bulletItemPattern.FindAllString(pc.Raw, -1))

	counts := []struct {
		Type  string
		Count int
	}{
		{"emoji", len(pc.Emojis)},
		{"hashtag", len(pc.Hashtags)},
		{"line_break", pc.LineBreaks.TotalLineBreaks},
		{"all_caps", len(pc.AllCapsWords)},
		{"number", len(pc.Numbers)},
		{"list_format", listItems},
	}

	elements := make([]models.FormatElement, 0, len(counts))
	for _, c := range counts {
		elements = append(elements, models.FormatElement{
			Type:         c.Type,
			Present:      c.Count > 0,
			Count:        c.Count,
			Significance: significanceFor(c.Type, platform),
		})
	}
	return elements
}

func significanceFor(elementType string, platform models.Platform) string {
	if tiers, ok := elementSignificance[elementType]; ok {
		if tier, ok := tiers[platform]; ok {
			return tier
		}
	}
	return "low"
}

func detectTimingSignals(pc ParsedContent) []models.TimingSignal {
	lower := strings.ToLower(pc.Raw)
	var signals []models.TimingSignal
	for _, entry := range timingPatterns {
		if m := entry.Pattern.FindString(lower); m != "" {
			signals = append(signals, models.TimingSignal{Type: entry.Type, Match: m})
		}
	}
	return signals
}

func (e *Extractor) rankTopics(pc ParsedContent) []models.TopicRelevance {
	lower := strings.ToLower(pc.Raw)
	var ranked []models.TopicRelevance
	for _, entry := range topicKeywords {
		hits := 0
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		ranked = append(ranked, models.TopicRelevance{
			Topic:     entry.Topic,
			Relevance: math.Min(1, float64(hits)*topicKeywordWeight),
			Trending:  e.trending[entry.Topic],
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Relevance > ranked[j].Relevance
	})
	return ranked
}

func computeIndicators(pc ParsedContent, platform models.Platform) []models.ViralityIndicator {
	return []models.ViralityIndicator{
		lengthFit(pc, platform),
		hookStrength(pc),
		readability(pc),
		engagementPotential(pc),
	}
}

func lengthFit(pc ParsedContent, platform models.Platform) models.ViralityIndicator {
	band, ok := optimalWordBands[platform]
	if !ok {
		band = optimalWordBands[models.PlatformLinkedIn]
	}

	score := float64(indicatorMaxScore)
	reason := fmt.Sprintf("word count %d is inside the optimal %d-%d band", pc.WordCount, band[0], band[1])
	if pc.WordCount < band[0] {
		dist := band[0] - pc.WordCount
		score = math.Max(0, float64(indicatorMaxScore-dist))
		reason = fmt.Sprintf("word count %d is %d below the optimal %d-%d band", pc.WordCount, dist, band[0], band[1])
	} else if pc.WordCount > band[1] {
		dist := pc.WordCount - band[1]
		score = math.Max(0, float64(indicatorMaxScore-dist))
		reason = fmt.Sprintf("word count %d is %d above the optimal %d-%d band", pc.WordCount, dist, band[0], band[1])
	}

	return models.ViralityIndicator{Name: "length_fit", Score: score, Reason: reason}
}

func hookStrength(pc ParsedContent) models.ViralityIndicator {
	if len(pc.Lines) == 0 {
		return models.ViralityIndicator{Name: "hook_strength", Score: 0, Reason: "post has no content"}
	}

	first := pc.Lines[0]
	score := float64(hookStrengthBase)
	var reasons []string

	if strings.HasSuffix(first, "?") {
		score += 20
		reasons = append(reasons, "opens with a question")
	}
	if allCapsRun.MatchString(first) {
		score += 15
		reasons = append(reasons, "emphasis via capitals")
	}
	if first != "" && first[0] >= '0' && first[0] <= '9' {
		score += 15
		reasons = append(reasons, "leads with a number")
	}
	if utf8.RuneCountInString(first) < hookShortLineMaxChars {
		score += 10
		reasons = append(reasons, "concise opening line")
	}
	if emojiPattern.MatchString(first) {
		score += 10
		reasons = append(reasons, "visual emoji in the opener")
	}

	reason := "plain opening line"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, "; ")
	}
	return models.ViralityIndicator{Name: "hook_strength", Score: math.Min(indicatorMaxScore, score), Reason: reason}
}

func readability(pc ParsedContent) models.ViralityIndicator {
	score := float64(readabilityBase)
	var reasons []string

	if pc.LineBreaks.AvgLineLength > 0 && pc.LineBreaks.AvgLineLength < 60 {
		score += 10
		reasons = append(reasons, "short average line length")
	}
	if len(pc.Paragraphs) > 1 {
		score += 10
		reasons = append(reasons, "broken into paragraphs")
	}
	if pc.LineBreaks.ShortLines > pc.LineBreaks.LongLines {
		score += 5
		reasons = append(reasons, "short lines dominate")
	}
	if pc.AvgWordLength > 0 && pc.AvgWordLength < 5 {
		score += 5
		reasons = append(reasons, "simple vocabulary")
	}

	reason := "dense text"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, "; ")
	}
	return models.ViralityIndicator{Name: "readability", Score: math.Min(indicatorMaxScore, score), Reason: reason}
}

func engagementPotential(pc ParsedContent) models.ViralityIndicator {
	score := float64(engagementBase)
	var reasons []string

	if len(pc.Emojis) > 0 {
		score += 15
		reasons = append(reasons, "uses emoji")
	}
	if len(pc.Hashtags) > 0 {
		score += 10
		reasons = append(reasons, "uses hashtags")
	}
	if len(pc.Numbers) > 0 {
		score += 10
		reasons = append(reasons, "concrete numbers")
	}
	if strings.Contains(pc.Raw, "?") {
		score += 15
		reasons = append(reasons, "asks a question")
	}
	if numberedItemPattern.MatchString(pc.Raw) || bulletItemPattern.MatchString(pc.Raw) {
		score += 10
		reasons = append(reasons, "scannable list formatting")
	}

	reason := "no engagement hooks detected"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, "; ")
	}
	return models.ViralityIndicator{Name: "engagement_potential", Score: math.Min(indicatorMaxScore, score), Reason: reason}
}
