package generator

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/contentpilot/viral-formats-bot/internal/analysis"
	"github.com/contentpilot/viral-formats-bot/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Platform character limits applied by the optimizer
var platformCharLimits = map[models.Platform]int{
	models.PlatformLinkedIn: 3000,
	models.PlatformTwitter:  280,
}

var blankPattern = regexp.MustCompile(`\{(\w+)\}`)

// Generator assembles draft posts from format templates
type Generator struct{}

// New creates a Generator
func New() *Generator {
	return &Generator{}
}

// Generate fills a format's template for the topic, optimizes the result for
// the platform, and attaches validation findings. It always returns a draft;
// validation problems are reported, not raised.
func (g *Generator) Generate(format models.FormatPattern, topic string) models.Draft {
	content := g.fillTemplate(format.Template, topic, format.Platform)
	content = g.optimize(content, format.Platform)

	issues := g.validate(content, format)

	draft := models.Draft{
		ID:        uuid.NewString(),
		Platform:  format.Platform,
		FormatID:  format.ID,
		Topic:     topic,
		Content:   content,
		Valid:     len(issues) == 0,
		Issues:    issues,
		CreatedAt: time.Now().UTC(),
	}

	logrus.Debugf("Generated draft %s from format %s (%d issues)", draft.ID, format.ID, len(issues))
	return draft
}

// fillTemplate replaces the template's {blank} placeholders. Known blanks
// get tailored values; everything else falls back to the topic so a draft
// never ships with literal braces.
func (g *Generator) fillTemplate(template, topic string, platform models.Platform) string {
	fills := map[string]string{
		"topic":        topic,
		"goal":         topic,
		"outcome":      topic,
		"old_way":      "The old approach to " + topic,
		"audience":     audienceFor(platform),
		"timeframe":    "30 days",
		"number":       "90",
		"year":         "2023",
		"keyword":      strings.ToUpper(firstWord(topic)),
		"opening_line": topic,
	}

	return blankPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.Trim(match, "{}")
		if value, ok := fills[name]; ok && value != "" {
			return value
		}
		return topic
	})
}

func (g *Generator) optimize(content string, platform models.Platform) string {
	limit := platformCharLimits[platform]
	if limit == 0 {
		limit = platformCharLimits[models.PlatformLinkedIn]
	}

	if utf8.RuneCountInString(content) > limit {
		content = truncateAtWord(content, limit)
	}

	// Long-form posts read better with white space between sections
	if platform == models.PlatformLinkedIn && !strings.Contains(content, "\n\n") {
		content = strings.ReplaceAll(content, "\n", "\n\n")
	}

	return strings.TrimSpace(content)
}

// validate runs the analysis rule tables over the assembled draft and flags
// structural gaps.
func (g *Generator) validate(content string, format models.FormatPattern) []string {
	var issues []string

	pc := analysis.Parse(content)
	pattern := analysis.Classify(pc, format.Platform)

	if pc.WordCount == 0 {
		return []string{"draft is empty"}
	}
	if pattern.HookType == models.HookNone {
		issues = append(issues, "no recognizable hook in the opening line")
	}
	if format.CTAType != models.CTANone && pattern.CTAType == models.CTANone {
		issues = append(issues, "the format's call to action did not survive assembly")
	}
	if limit := platformCharLimits[format.Platform]; limit > 0 && pc.CharCount > limit {
		issues = append(issues, "draft exceeds the platform character limit")
	}
	if strings.Contains(content, "{") || strings.Contains(content, "}") {
		issues = append(issues, "unfilled template blanks remain")
	}

	return issues
}

func audienceFor(platform models.Platform) string {
	if platform == models.PlatformTwitter {
		return "builders"
	}
	return "professionals"
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "MORE"
	}
	return fields[0]
}

func truncateAtWord(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	cut := string(runes[:limit])
	if idx := strings.LastIndexAny(cut, " \n"); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
