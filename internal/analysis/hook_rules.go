package analysis

import (
	"regexp"

	"github.com/contentpilot/viral-formats-bot/internal/models"
)

// hookRuleSet maps one hook type to its ordered list of patterns. Patterns
// are tested against the lowercased first line and first two lines; the
// first match wins for that type.
type hookRuleSet struct {
	Type     models.HookType
	Patterns []*regexp.Regexp
}

// hookRules is evaluated in declaration order. More specific openers come
// before the broad direct-address patterns so ties resolve toward them.
var hookRules = []hookRuleSet{
	{
		Type: models.HookStatistic,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\d+(\.\d+)?%`),
			regexp.MustCompile(`^\d+ (out of|in) \d+`),
			regexp.MustCompile(`\d+(\.\d+)?% of (people|companies|founders|marketers|users)`),
			regexp.MustCompile(`^\$\d`),
		},
	},
	{
		Type: models.HookQuestion,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`^(what|why|how|when|where|who|which)\b`),
			regexp.MustCompile(`^(did|do|does|have|has|are|is|can|could|would|should) (you|your)\b`),
			regexp.MustCompile(`ever (wondered|noticed|asked yourself)`),
		},
	},
	{
		Type: models.HookControversialTake,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`^(unpopular opinion|hot take|controversial)`),
			regexp.MustCompile(`(nobody|no one) (talks about|wants to admit|will tell you)`),
			regexp.MustCompile(`everyone('s| is) (wrong|lying) about`),
			regexp.MustCompile(`^i('m| am) (going to|about to) get (hate|flak) for this`),
		},
	},
	{
		Type: models.HookBoldStatement,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`^(rip|r\.i\.p\.?)\b`),
			regexp.MustCompile(`^(stop|never|always|forget)\b`),
			regexp.MustCompile(`\b(is|are) (dead|over|broken|finished)\b`),
			regexp.MustCompile(`^(this|that) changes everything`),
			regexp.MustCompile(`^most people (get|do) .* wrong`),
		},
	},
	{
		Type: models.HookCuriosityGap,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`here('|’)?s (what|why|how)`),
			regexp.MustCompile(`(the secret|what nobody tells you|what they don('|’)?t teach)`),
			regexp.MustCompile(`you won('|’)?t believe`),
			regexp.MustCompile(`^the real reason\b`),
		},
	},
	{
		Type: models.HookStory,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`^(last (year|month|week)|in 20\d\d|yesterday|\d+ (years|months|days) ago)`),
			regexp.MustCompile(`^(i|we) (quit|failed|lost|spent|got fired|walked away)`),
			regexp.MustCompile(`^when i (was|started|first)`),
			regexp.MustCompile(`^my (first|last|worst|best)\b`),
		},
	},
	{
		Type: models.HookPromise,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`^how to\b`),
			regexp.MustCompile(`in (under )?\d+ (minutes|hours|days|weeks|steps)`),
			regexp.MustCompile(`i('ll| will) show you`),
			regexp.MustCompile(`^steal (my|this|these)\b`),
		},
	},
	{
		Type: models.HookDirectAddress,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`^(you|your)\b`),
			regexp.MustCompile(`^if you('re| are)?\b`),
			regexp.MustCompile(`^(attention|listen up|dear)\b`),
		},
	},
}
