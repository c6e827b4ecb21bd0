package analysis

import (
	"regexp"

	"github.com/contentpilot/viral-formats-bot/internal/models"
)

// ctaRuleSet maps one CTA type to its ordered list of patterns. Patterns are
// tested against the lowercased last three lines first, then the full text.
type ctaRuleSet struct {
	Type     models.CTAType
	Patterns []*regexp.Regexp
}

var ctaRules = []ctaRuleSet{
	{
		Type: models.CTACommentPrompt,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bcomment\b`),
			regexp.MustCompile(`(type|say|drop) (a |the )?["']?\w+["']? below`),
			regexp.MustCompile(`tell me in the comments`),
			regexp.MustCompile(`drop (a|your)\b`),
		},
	},
	{
		Type: models.CTAQuestionToAudience,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`what (do|are|would|about) you`),
			regexp.MustCompile(`(agree|disagree|thoughts)\?`),
			regexp.MustCompile(`let me know\b`),
			regexp.MustCompile(`(what('|’)?s your|do you agree|am i wrong)`),
		},
	},
	{
		Type: models.CTAEngagementBait,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(like|thumbs up|♻️|repost) if\b`),
			regexp.MustCompile(`double tap`),
			regexp.MustCompile(`am i the only one`),
			regexp.MustCompile(`who else\b`),
		},
	},
	{
		Type: models.CTAShareRequest,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(share|repost) (this|it|if)`),
			regexp.MustCompile(`tag (someone|a friend|your)`),
			regexp.MustCompile(`spread the word`),
		},
	},
	{
		Type: models.CTASavePost,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`save this\b`),
			regexp.MustCompile(`\bbookmark\b`),
			regexp.MustCompile(`come back to (this|it)`),
		},
	},
	{
		Type: models.CTAFollowRequest,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`follow (me|us|for|along)`),
			regexp.MustCompile(`(hit|smash) (the )?follow`),
			regexp.MustCompile(`\bsubscribe\b`),
		},
	},
	{
		Type: models.CTALinkClick,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(click|check out|visit) (the )?link`),
			regexp.MustCompile(`link in (bio|comments|the first comment)`),
			regexp.MustCompile(`(sign up|register|get access) (here|now|at)`),
			regexp.MustCompile(`read (the )?full\b`),
		},
	},
}
