package analysis

import (
	"math"
	"unicode/utf8"

	"github.com/contentpilot/viral-formats-bot/internal/models"
)

// Component caps for the virality formula
const (
	hookScoreCap      = 25.0
	bodyScoreCap      = 25.0
	ctaScoreCap       = 15.0
	emotionalScoreCap = 15.0
	formatScoreCap    = 10.0
	platformScoreCap  = 10.0

	// Posts whose recorded engagement rate exceeds this (percent) get a
	// multiplicative boost.
	engagementBoostThreshold = 5.0
	engagementBoostFactor    = 1.1
)

// ctaBaseScores is the fixed per-CTA-type base table. A question to the
// audience converts best; no CTA at all still earns the floor.
var ctaBaseScores = map[models.CTAType]float64{
	models.CTAQuestionToAudience: 15,
	models.CTACommentPrompt:      14,
	models.CTAEngagementBait:     12,
	models.CTAShareRequest:       11,
	models.CTASavePost:           10,
	models.CTAFollowRequest:      9,
	models.CTALinkClick:          8,
	models.CTANone:               5,
}

// strongTriggers is the privileged emotion set that earns the flat bonus.
// Fixed rule, reproduced as-is.
var strongTriggers = map[models.EmotionalTrigger]bool{
	models.TriggerCuriosity: true,
	models.TriggerSurprise:  true,
	models.TriggerUrgency:   true,
}

// Score combines classifier confidences and signal strengths into a single
// 0-100 integer. Pure and deterministic: identical inputs always produce
// the identical score.
func Score(post models.ViralPost, pc ParsedContent, pattern models.DetectedFormatPattern, signals models.ViralSignals) int {
	total := hookScore(pattern) +
		bodyScore(pc, pattern) +
		ctaScore(pattern) +
		emotionalScore(signals) +
		formatScore(pc, post.Platform) +
		platformFitScore(pc, post.Platform)

	if post.Metrics.EngagementRate > engagementBoostThreshold {
		total *= engagementBoostFactor
	}

	return int(math.Round(math.Max(0, math.Min(100, total))))
}

func hookScore(pattern models.DetectedFormatPattern) float64 {
	base := 5.0
	if pattern.HookType != models.HookNone {
		base = 15.0
	}
	return math.Min(hookScoreCap, base+pattern.HookConfidence*10)
}

func bodyScore(pc ParsedContent, pattern models.DetectedFormatPattern) float64 {
	score := 10.0
	if pattern.BodyType != models.BodyInsightSharing {
		score += 8
	}
	score += pattern.BodyConfidence * 7
	if pc.LineBreaks.TotalLineBreaks > 3 {
		score += 3
	}
	if len(pc.Paragraphs) > 1 {
		score += 2
	}
	return math.Min(bodyScoreCap, score)
}

func ctaScore(pattern models.DetectedFormatPattern) float64 {
	base, ok := ctaBaseScores[pattern.CTAType]
	if !ok {
		base = ctaBaseScores[models.CTANone]
	}
	score := base + pattern.CTAConfidence*5 - 5
	return math.Max(0, math.Min(ctaScoreCap, score))
}

func emotionalScore(signals models.ViralSignals) float64 {
	score := math.Min(10, float64(len(signals.EmotionalTriggers))*3)
	for _, trigger := range signals.EmotionalTriggers {
		if strongTriggers[trigger] {
			score += 5
			break
		}
	}
	return math.Min(emotionalScoreCap, score)
}

func formatScore(pc ParsedContent, platform models.Platform) float64 {
	score := 0.0
	switch platform {
	case models.PlatformTwitter:
		if len(pc.Hashtags) > 0 {
			score += 4
		}
		if len(pc.Emojis) > 0 {
			score += 3
		}
		if pc.CharCount > 0 && pc.CharCount <= 280 {
			score += 3
		}
	default: // long-form
		if pc.LineBreaks.TotalLineBreaks >= 3 {
			score += 4
		}
		if len(pc.Paragraphs) >= 2 {
			score += 3
		}
		if len(pc.Emojis) >= 1 && len(pc.Emojis) <= 5 {
			score += 3
		}
	}
	return math.Min(formatScoreCap, score)
}

func platformFitScore(pc ParsedContent, platform models.Platform) float64 {
	score := 0.0
	switch platform {
	case models.PlatformTwitter:
		if pc.WordCount > 0 && pc.WordCount <= 60 {
			score += 4
		}
		if len(pc.Numbers) > 0 {
			score += 3
		}
		if len(pc.Hashtags) <= 3 {
			score += 3
		}
	default: // long-form
		if pc.WordCount >= 100 && pc.WordCount <= 400 {
			score += 4
		}
		if pc.LineBreaks.HasDoubleBreak {
			score += 3
		}
		if len(pc.Hashtags) <= 5 {
			score += 3
		}
	}
	return math.Min(platformScoreCap, score)
}

func hookLineLength(pc ParsedContent) int {
	if len(pc.Lines) == 0 {
		return 0
	}
	return utf8.RuneCountInString(pc.Lines[0])
}
