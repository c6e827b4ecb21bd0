package formatstore

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/contentpilot/viral-formats-bot/internal/models"
	"github.com/sirupsen/logrus"
)

// Match scoring weights
const (
	effectivenessWeight   = 40.0 // base = effectiveness/100 * 40
	tagOverlapBonus       = 10.0
	preferredHookBonus    = 15.0
	preferredBodyBonus    = 15.0
	preferredCTABonus     = 10.0
	targetEmotionBonus    = 8.0
	belowFloorPenalty     = 0.5 // multiplier when effectiveness misses the caller's floor
	popularityBonusPerUse = 2.0
	popularityBonusCap    = 10.0
	maxMatchScore         = 100.0

	// A synthesized default returned for an empty platform scores this flat value.
	defaultMatchScore = 30.0
)

// Match scores every stored format for the platform against the topic and
// preferences and returns the best one. If the platform has no stored
// formats, a generic default is synthesized, persisted, and returned at a
// fixed score of 30.
func (s *Store) Match(topic string, platform models.Platform, prefs models.MatchPreferences) models.MatchResult {
	candidates := s.List(platform)
	if len(candidates) == 0 {
		return s.matchDefault(topic, platform, prefs)
	}

	best := models.MatchResult{MatchScore: -1}
	for _, format := range candidates {
		score, elements := scoreFormat(format, topic, prefs)
		if score > best.MatchScore {
			best = models.MatchResult{
				Format:           format,
				MatchScore:       score,
				MatchingElements: elements,
			}
		}
	}

	best.SuggestedModifications = suggestModifications(best.Format, topic, prefs)
	logrus.Debugf("Matched format %s for topic %q on %s (score %.0f)", best.Format.ID, topic, platform, best.MatchScore)
	return best
}

func scoreFormat(format models.FormatPattern, topic string, prefs models.MatchPreferences) (float64, []string) {
	score := format.EffectivenessScore / 100 * effectivenessWeight
	elements := []string{fmt.Sprintf("effectiveness %.0f/100", format.EffectivenessScore)}

	topicTokens := tokenize(topic)
	for _, tag := range format.Tags {
		if overlaps(tag, topicTokens) {
			score += tagOverlapBonus
			elements = append(elements, fmt.Sprintf("tag %q matches the topic", tag))
		}
	}

	if prefs.PreferredHook != "" && prefs.PreferredHook == format.HookType {
		score += preferredHookBonus
		elements = append(elements, fmt.Sprintf("uses the preferred %s hook", format.HookType))
	}
	if prefs.PreferredBody != "" && prefs.PreferredBody == format.BodyType {
		score += preferredBodyBonus
		elements = append(elements, fmt.Sprintf("uses the preferred %s body", format.BodyType))
	}
	if prefs.PreferredCTA != "" && prefs.PreferredCTA == format.CTAType {
		score += preferredCTABonus
		elements = append(elements, fmt.Sprintf("uses the preferred %s call to action", format.CTAType))
	}

	for _, emotion := range prefs.TargetEmotions {
		if hasTag(format.Tags, string(emotion)) {
			score += targetEmotionBonus
			elements = append(elements, fmt.Sprintf("covers the %s emotion", emotion))
		}
	}

	if prefs.MinEffectiveness > 0 && format.EffectivenessScore < prefs.MinEffectiveness {
		score *= belowFloorPenalty
		elements = append(elements, fmt.Sprintf("effectiveness below the requested %.0f floor", prefs.MinEffectiveness))
	}

	score += math.Min(float64(format.UsageCount)*popularityBonusPerUse, popularityBonusCap)

	return math.Min(score, maxMatchScore), elements
}

func suggestModifications(format models.FormatPattern, topic string, prefs models.MatchPreferences) []string {
	var mods []string

	if prefs.PreferredHook != "" && prefs.PreferredHook != format.HookType {
		mods = append(mods, fmt.Sprintf("Swap the %s hook for a %s hook", format.HookType, prefs.PreferredHook))
	}
	if prefs.PreferredBody != "" && prefs.PreferredBody != format.BodyType {
		mods = append(mods, fmt.Sprintf("Restructure the body from %s to %s", format.BodyType, prefs.PreferredBody))
	}
	if prefs.PreferredCTA != "" && prefs.PreferredCTA != format.CTAType {
		mods = append(mods, fmt.Sprintf("Replace the %s close with a %s call to action", format.CTAType, prefs.PreferredCTA))
	}
	for _, emotion := range prefs.TargetEmotions {
		if !hasTag(format.Tags, string(emotion)) {
			mods = append(mods, fmt.Sprintf("Lean into %s vocabulary; this format has not covered it yet", emotion))
		}
	}

	topicTokens := tokenize(topic)
	covered := false
	for _, tag := range format.Tags {
		if overlaps(tag, topicTokens) {
			covered = true
			break
		}
	}
	if !covered && topic != "" {
		mods = append(mods, fmt.Sprintf("Fill the template blanks with %q specifics; the format was learned from other topics", topic))
	}

	return mods
}

// matchDefault synthesizes and persists a generic format when the platform
// table is empty.
func (s *Store) matchDefault(topic string, platform models.Platform, prefs models.MatchPreferences) models.MatchResult {
	now := time.Now().UTC()
	format := models.FormatPattern{
		ID:                 FormatID(platform, models.HookQuestion, models.BodyInsightSharing, models.CTAQuestionToAudience),
		Name:               fmt.Sprintf("%s Starter Format", titleize(string(platform))),
		Description:        "Generic question-driven format synthesized for an empty platform",
		Platform:           platform,
		HookType:           models.HookQuestion,
		BodyType:           models.BodyInsightSharing,
		CTAType:            models.CTAQuestionToAudience,
		Template:           templateFor(models.HookQuestion, models.BodyInsightSharing, models.CTAQuestionToAudience),
		Tags:               []string{"general"},
		EffectivenessScore: 50,
		UsageCount:         0,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	s.mu.Lock()
	s.formats[format.ID] = &format
	s.mu.Unlock()

	logrus.Infof("Synthesized default format %s for empty platform %s", format.ID, platform)

	return models.MatchResult{
		Format:                 format,
		MatchScore:             defaultMatchScore,
		MatchingElements:       []string{"synthesized default for an empty platform"},
		SuggestedModifications: suggestModifications(format, topic, prefs),
	}
}

func tokenize(s string) []string {
	var tokens []string
	for _, token := range strings.Fields(strings.ToLower(s)) {
		token = strings.Trim(token, `.,!?"'()`)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// overlaps reports whether a tag shares a token with the topic string.
func overlaps(tag string, topicTokens []string) bool {
	for _, tagToken := range tokenize(strings.ReplaceAll(tag, "_", " ")) {
		for _, topicToken := range topicTokens {
			if tagToken == topicToken {
				return true
			}
		}
	}
	return false
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
