package formatstore

import (
	"strings"
	"time"

	"github.com/contentpilot/viral-formats-bot/internal/models"
)

// Fill-in-the-blank fragments per structural type. Joined into a format's
// template so generation has a skeleton to fill.
var hookTemplates = map[models.HookType]string{
	models.HookQuestion:          "What's stopping you from {goal}?",
	models.HookBoldStatement:     "{old_way} is dead.",
	models.HookStatistic:         "{number}% of {audience} get {topic} wrong.",
	models.HookStory:             "In {year} I {turning_point}.",
	models.HookControversialTake: "Unpopular opinion: {contrarian_claim}.",
	models.HookCuriosityGap:      "Here's what nobody tells you about {topic}.",
	models.HookDirectAddress:     "If you're {audience}, stop scrolling.",
	models.HookPromise:           "How to {outcome} in {timeframe}.",
	models.HookNone:              "{opening_line}",
}

var bodyTemplates = map[models.BodyType]string{
	models.BodyListicle:        "1. {point_one}\n2. {point_two}\n3. {point_three}",
	models.BodyStoryNarrative:  "{setup}. Then {complication}. Eventually {resolution}.",
	models.BodyProblemSolution: "The problem: {pain}. The fix: {solution}.",
	models.BodyHowToGuide:      "Step 1: {step_one}. Step 2: {step_two}. Step 3: {step_three}.",
	models.BodyComparison:      "{option_a} vs {option_b}: {verdict}.",
	models.BodyCaseStudy:       "We went from {before} to {after} in {timeframe}. The numbers: {metrics}.",
	models.BodyOpinionPiece:    "I believe {position}, because {reasoning}.",
	models.BodyQuestionAnswer:  "Q: {common_question}\nA: {answer}",
	models.BodyBehindTheScenes: "What really happens behind {process}: {reality}.",
	models.BodyInsightSharing:  "I've noticed {observation}. The takeaway: {lesson}.",
}

var ctaTemplates = map[models.CTAType]string{
	models.CTAQuestionToAudience: "What do you think?",
	models.CTACommentPrompt:      "Comment {keyword} below and I'll send you {resource}.",
	models.CTAShareRequest:       "Share this with someone who needs it.",
	models.CTAFollowRequest:      "Follow for more on {topic}.",
	models.CTALinkClick:          "Full breakdown at the link: {url}",
	models.CTASavePost:           "Save this for later.",
	models.CTAEngagementBait:     "Like if you agree.",
	models.CTANone:               "",
}

// templateFor joins the per-type fragments into one fill-in-the-blank template.
func templateFor(hook models.HookType, body models.BodyType, cta models.CTAType) string {
	parts := []string{hookTemplates[hook], bodyTemplates[body]}
	if ctaTemplate := ctaTemplates[cta]; ctaTemplate != "" {
		parts = append(parts, ctaTemplate)
	}
	return strings.Join(parts, "\n\n")
}

// seedFormats returns the three defaults every fresh store starts with:
// a LinkedIn listicle, a LinkedIn story, and a short-form bold statement.
func seedFormats() []models.FormatPattern {
	now := time.Now().UTC()

	seeds := []struct {
		name        string
		description string
		platform    models.Platform
		hook        models.HookType
		body        models.BodyType
		cta         models.CTAType
		tags        []string
		score       float64
	}{
		{
			name:        "LinkedIn Listicle",
			description: "Promise-driven numbered list with a save prompt",
			platform:    models.PlatformLinkedIn,
			hook:        models.HookPromise,
			body:        models.BodyListicle,
			cta:         models.CTASavePost,
			tags:        []string{"productivity", "curiosity"},
			score:       68,
		},
		{
			name:        "LinkedIn Story",
			description: "Personal narrative arc ending on an open question",
			platform:    models.PlatformLinkedIn,
			hook:        models.HookStory,
			body:        models.BodyStoryNarrative,
			cta:         models.CTAQuestionToAudience,
			tags:        []string{"entrepreneurship", "inspiration"},
			score:       64,
		},
		{
			name:        "Twitter Bold Statement",
			description: "Short contrarian insight engineered for replies",
			platform:    models.PlatformTwitter,
			hook:        models.HookBoldStatement,
			body:        models.BodyInsightSharing,
			cta:         models.CTAEngagementBait,
			tags:        []string{"marketing", "surprise"},
			score:       61,
		},
	}

	formats := make([]models.FormatPattern, 0, len(seeds))
	for _, seed := range seeds {
		formats = append(formats, models.FormatPattern{
			ID:                 FormatID(seed.platform, seed.hook, seed.body, seed.cta),
			Name:               seed.name,
			Description:        seed.description,
			Platform:           seed.platform,
			HookType:           seed.hook,
			BodyType:           seed.body,
			CTAType:            seed.cta,
			Template:           templateFor(seed.hook, seed.body, seed.cta),
			Tags:               seed.tags,
			EffectivenessScore: seed.score,
			UsageCount:         1,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	}
	return formats
}
