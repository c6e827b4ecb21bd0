package analysis

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/contentpilot/viral-formats-bot/internal/models"
)

// Confidence constants. Tests pin these exact boundary values, so every
// fallback threshold is named rather than inlined.
const (
	hookStartConfidence    = 0.9  // rule matched at position 0
	hookMidConfidence      = 0.7  // rule matched elsewhere
	hookFallbackFloor      = 0.8  // question-mark fallback applies below this
	hookQuestionConfidence = 0.85 // forced QUESTION when first line ends in ?

	listicleConfidence    = 0.9 // structural cue outranks keyword cues
	bodyBaseConfidence    = 0.4
	bodyMatchWeight       = 0.15
	bodyIndicatorWeight   = 0.5
	bodyMaxConfidence     = 0.9
	bodyDefaultConfidence = 0.3

	ctaWindowConfidence   = 0.85 // rule matched in the last three lines
	ctaBodyConfidence     = 0.7  // rule matched elsewhere in the post
	ctaQuestionFloor      = 0.7
	ctaQuestionConfidence = 0.75
	ctaLinkFloor          = 0.6
	ctaLinkConfidence     = 0.6
)

// ctaWindowLines is how many trailing lines count as the CTA zone
const ctaWindowLines = 3

// Classify applies the hook, body and CTA rule tables to parsed content.
// It is total: absence of a pattern yields the NONE variant, never an error.
// The platform is threaded through for future platform-specific rules but
// the current tables are platform-independent.
func Classify(pc ParsedContent, platform models.Platform) models.DetectedFormatPattern {
	_ = platform

	pattern := models.DetectedFormatPattern{
		HookType: models.HookNone,
		BodyType: models.BodyInsightSharing,
		CTAType:  models.CTANone,
	}

	classifyHook(pc, &pattern)
	classifyBody(pc, &pattern)
	classifyCTA(pc, &pattern)

	return pattern
}

func classifyHook(pc ParsedContent, out *models.DetectedFormatPattern) {
	if len(pc.Lines) == 0 {
		return
	}

	firstLine := strings.ToLower(pc.Lines[0])
	firstTwo := firstLine
	if len(pc.Lines) > 1 {
		firstTwo = firstLine + " " + strings.ToLower(pc.Lines[1])
	}

	bestConf := 0.0
	bestType := models.HookNone
	bestText := ""

	for _, rules := range hookRules {
		for _, pattern := range rules.Patterns {
			conf, text := matchWithPosition(pattern, firstLine)
			if conf == 0 {
				conf, text = matchWithPosition(pattern, firstTwo)
			}
			if conf == 0 {
				continue
			}
			if conf > bestConf {
				bestConf = conf
				bestType = rules.Type
				bestText = text
			}
			break // first matching rule wins for this hook type
		}
	}

	// Last-resort heuristic: a leading question mark line is a question hook
	// unless a rule already matched convincingly.
	if bestConf < hookFallbackFloor && strings.HasSuffix(strings.TrimSpace(pc.Lines[0]), "?") {
		bestConf = hookQuestionConfidence
		bestType = models.HookQuestion
		bestText = pc.Lines[0]
	}

	out.HookType = bestType
	out.HookConfidence = bestConf
	out.HookText = bestText
}

// matchWithPosition returns the positional confidence and matched snippet,
// or (0, "") when the pattern does not match.
func matchWithPosition(pattern *regexp.Regexp, s string) (float64, string) {
	loc := pattern.FindStringIndex(s)
	if loc == nil {
		return 0, ""
	}
	if loc[0] == 0 {
		return hookStartConfidence, s[loc[0]:loc[1]]
	}
	return hookMidConfidence, s[loc[0]:loc[1]]
}

func classifyBody(pc ParsedContent, out *models.DetectedFormatPattern) {
	// Structural shortcut: numbered or bulleted items anywhere in the text
	// force LISTICLE, short-circuiting the keyword rules entirely.
	numbered := numberedItemPattern.FindAllString(pc.Raw, -1)
	bulleted := bulletItemPattern.FindAllString(pc.Raw, -1)
	if len(numbered)+len(bulleted) > 0 {
		out.BodyType = models.BodyListicle
		out.BodyConfidence = listicleConfidence
		out.BodyStructure = fmt.Sprintf("list with %d items", len(numbered)+len(bulleted))
		return
	}

	lower := strings.ToLower(pc.Raw)

	bestConf := 0.0
	bestType := models.BodyInsightSharing
	bestStructure := ""

	for _, rules := range bodyRules {
		score := 0.0
		patternHits := 0
		indicatorHits := 0
		for _, pattern := range rules.Patterns {
			if pattern.MatchString(lower) {
				score++
				patternHits++
			}
		}
		for _, indicator := range rules.Indicators {
			if strings.Contains(lower, indicator) {
				score += bodyIndicatorWeight
				indicatorHits++
			}
		}
		if score == 0 {
			continue
		}
		conf := math.Min(bodyMaxConfidence, bodyBaseConfidence+score*bodyMatchWeight)
		if conf > bestConf {
			bestConf = conf
			bestType = rules.Type
			bestStructure = fmt.Sprintf("%s cues: %d pattern matches, %d indicator phrases", rules.Type, patternHits, indicatorHits)
		}
	}

	if bestConf == 0 {
		out.BodyType = models.BodyInsightSharing
		out.BodyConfidence = bodyDefaultConfidence
		out.BodyStructure = "no structural cues detected"
		return
	}

	out.BodyType = bestType
	out.BodyConfidence = bestConf
	out.BodyStructure = bestStructure
}

func classifyCTA(pc ParsedContent, out *models.DetectedFormatPattern) {
	window := ""
	if n := len(pc.Lines); n > 0 {
		start := n - ctaWindowLines
		if start < 0 {
			start = 0
		}
		window = strings.ToLower(strings.Join(pc.Lines[start:], "\n"))
	}
	full := strings.ToLower(pc.Raw)

	bestConf := 0.0
	bestType := models.CTANone
	bestText := ""

	for _, rules := range ctaRules {
		for _, pattern := range rules.Patterns {
			conf := 0.0
			text := ""
			if m := pattern.FindString(window); m != "" {
				conf = ctaWindowConfidence
				text = m
			} else if m := pattern.FindString(full); m != "" {
				conf = ctaBodyConfidence
				text = m
			}
			if conf == 0 {
				continue
			}
			if conf > bestConf {
				bestConf = conf
				bestType = rules.Type
				bestText = text
			}
			break
		}
	}

	// Fallbacks, in fixed order: trailing question first, then a bare link.
	if bestConf < ctaQuestionFloor && len(pc.Lines) > 0 &&
		strings.HasSuffix(strings.TrimSpace(pc.Lines[len(pc.Lines)-1]), "?") {
		bestConf = ctaQuestionConfidence
		bestType = models.CTAQuestionToAudience
		bestText = pc.Lines[len(pc.Lines)-1]
	}
	if bestConf < ctaLinkFloor && len(pc.Links) > 0 {
		bestConf = ctaLinkConfidence
		bestType = models.CTALinkClick
		bestText = pc.Links[0]
	}

	out.CTAType = bestType
	out.CTAConfidence = bestConf
	out.CTAText = bestText
}
