package analysis

import (
	"regexp"

	"github.com/contentpilot/viral-formats-bot/internal/models"
)

// Structural listicle cues. A newline followed by a numbered item or a
// bullet glyph outranks every keyword rule below.
var (
	numberedItemPattern = regexp.MustCompile(`\n\s*\d+[.)]`)
	bulletItemPattern   = regexp.MustCompile(`\n\s*[•→✅✔▪*-]`)
)

// bodyRuleSet maps one body type to regex rules (each match counts 1.0)
// and literal indicator phrases (each containment counts 0.5).
type bodyRuleSet struct {
	Type       models.BodyType
	Patterns   []*regexp.Regexp
	Indicators []string
}

var bodyRules = []bodyRuleSet{
	{
		Type: models.BodyStoryNarrative,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(i|we) (started|began|decided|realized|learned|remember)`),
			regexp.MustCompile(`\b(then|after that|eventually|finally|at first)\b`),
			regexp.MustCompile(`(one day|that moment|fast forward)`),
		},
		Indicators: []string{"my journey", "long story short", "looking back", "true story"},
	},
	{
		Type: models.BodyProblemSolution,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(problem|struggle|challenge|pain) (is|was|with)`),
			regexp.MustCompile(`(here('|’)?s|that('|’)?s) (how|the fix|what worked)`),
			regexp.MustCompile(`(i|we) (solved|fixed|automated|eliminated)`),
		},
		Indicators: []string{"the solution", "instead of", "turns out", "the fix"},
	},
	{
		Type: models.BodyHowToGuide,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bhow to\b`),
			regexp.MustCompile(`\bstep \d`),
			regexp.MustCompile(`\b(first|second|third|next|lastly),`),
		},
		Indicators: []string{"here's how", "follow these", "start by", "the process"},
	},
	{
		Type: models.BodyComparison,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bvs\.?\b`),
			regexp.MustCompile(`(better|worse|faster|cheaper) than`),
			regexp.MustCompile(`(instead of|rather than)`),
		},
		Indicators: []string{"on one hand", "the difference", "compared to", "both have"},
	},
	{
		Type: models.BodyCaseStudy,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\d+ (days|weeks|months) (later|in|ago)`),
			regexp.MustCompile(`(results?|revenue|followers|grew|increased) (by|from|to) \$?\d`),
			regexp.MustCompile(`(went|going) from .* to`),
		},
		Indicators: []string{"case study", "the numbers", "the results", "breakdown"},
	},
	{
		Type: models.BodyOpinionPiece,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`i (think|believe|disagree|refuse)`),
			regexp.MustCompile(`^(honestly|frankly|look,)`),
		},
		Indicators: []string{"in my opinion", "my take", "change my mind", "i stand by"},
	},
	{
		Type: models.BodyQuestionAnswer,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\?\n`),
			regexp.MustCompile(`(?m)^(q:|a:|q\d+)`),
		},
		Indicators: []string{"great question", "the answer is", "people ask me", "short answer"},
	},
	{
		Type: models.BodyBehindTheScenes,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`behind the scenes`),
			regexp.MustCompile(`(nobody|no one) (sees|shows you)`),
		},
		Indicators: []string{"behind the curtain", "what really happens", "the messy part", "the unglamorous"},
	},
	{
		Type: models.BodyInsightSharing,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`i('|’)?ve (noticed|learned|found|seen)`),
			regexp.MustCompile(`(most people|the truth is|what matters)`),
		},
		Indicators: []string{"key takeaway", "lesson learned", "worth remembering", "the insight"},
	},
}
