package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/contentpilot/viral-formats-bot/internal/analysis"
	"github.com/contentpilot/viral-formats-bot/internal/formatstore"
	"github.com/contentpilot/viral-formats-bot/internal/generator"
	"github.com/contentpilot/viral-formats-bot/internal/models"
)

// samplePosts are real-shaped posts covering the main hook/body/CTA shapes,
// so the full pipeline can be exercised without any external service.
var samplePosts = []models.ViralPost{
	{
		ID:       "sample-linkedin-listicle",
		Platform: models.PlatformLinkedIn,
		Author:   "growthwriter",
		Content: "5 lessons from 10 years of building products:\n\n" +
			"1. Ship before you feel ready.\n" +
			"2. Talk to users every single week.\n" +
			"3. Kill features nobody uses.\n" +
			"4. Write down every decision.\n" +
			"5. Hire slower than you think you should.\n\n" +
			"Which one resonates most? Comment below 👇",
		Metrics: models.PostMetrics{
			Likes:          2400,
			Comments:       310,
			Shares:         180,
			Impressions:    95000,
			EngagementRate: 3.0,
		},
		CreatedAt: time.Now().Add(-36 * time.Hour),
	},
	{
		ID:       "sample-linkedin-story",
		Platform: models.PlatformLinkedIn,
		Author:   "founderdiary",
		Content: "Last year I got fired from the company I co-founded.\n\n" +
			"It felt like the end. It turned out to be the beginning.\n\n" +
			"I spent three months rebuilding my confidence, then started again with everything I'd learned about hiring, focus, and saying no.\n\n" +
			"The lesson: your worst day is data, not destiny.\n\n" +
			"What setback taught you the most?",
		Metrics: models.PostMetrics{
			Likes:          5800,
			Comments:       640,
			Shares:         420,
			Impressions:    210000,
			EngagementRate: 5.2,
		},
		CreatedAt: time.Now().Add(-3 * 24 * time.Hour),
	},
	{
		ID:       "sample-twitter-bold",
		Platform: models.PlatformTwitter,
		Author:   "contrarian_dev",
		Content:  "RIP cold outreach.\n\nThe best pipeline in 2026 is content people actually want to read.\n\nComment \"SYSTEM\" and I'll share how we book 30 calls a month without a single cold DM.",
		Metrics: models.PostMetrics{
			Likes:          1900,
			Comments:       240,
			Shares:         95,
			Impressions:    31000,
			EngagementRate: 7.2,
		},
		CreatedAt: time.Now().Add(-12 * time.Hour),
	},
	{
		ID:       "sample-twitter-statistic",
		Platform: models.PlatformTwitter,
		Author:   "dataandcoffee",
		Content:  "87% of side projects die in the first month.\n\nNot because the idea was bad. Because the scope was.\n\nSave this: ship a version you're embarrassed by in week one.",
		Metrics: models.PostMetrics{
			Likes:          3200,
			Comments:       150,
			Shares:         410,
			Impressions:    88000,
			EngagementRate: 4.3,
		},
		CreatedAt: time.Now().Add(-2 * 24 * time.Hour),
	},
}

func main() {
	store := formatstore.NewStore()
	analyzer := analysis.NewService(analysis.NewExtractor(nil), store)
	gen := generator.New()

	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("VIRAL FORMAT ANALYSIS (offline smoke run)")
	fmt.Println(strings.Repeat("=", 70))

	for _, post := range samplePosts {
		result := analyzer.Analyze(post)

		fmt.Printf("\n--- %s (@%s on %s) ---\n", post.ID, post.Author, post.Platform)
		fmt.Printf("Hook:  %-20s (%.2f)\n", result.Pattern.HookType, result.Pattern.HookConfidence)
		fmt.Printf("Body:  %-20s (%.2f)\n", result.Pattern.BodyType, result.Pattern.BodyConfidence)
		fmt.Printf("CTA:   %-20s (%.2f)\n", result.Pattern.CTAType, result.Pattern.CTAConfidence)
		fmt.Printf("Virality score: %d   Overall confidence: %.2f\n", result.ViralityScore, result.Confidence)

		if len(result.Signals.EmotionalTriggers) > 0 {
			triggers := make([]string, 0, len(result.Signals.EmotionalTriggers))
			for _, t := range result.Signals.EmotionalTriggers {
				triggers = append(triggers, string(t))
			}
			fmt.Printf("Triggers: %s\n", strings.Join(triggers, ", "))
		}
		for _, rec := range result.Recommendations {
			fmt.Printf("  • %s\n", rec)
		}

		store.Learn(post, result)
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("LEARNED FORMATS")
	fmt.Println(strings.Repeat("=", 70))
	for _, format := range store.List("") {
		fmt.Printf("%-45s eff=%.1f uses=%d\n", format.ID, format.EffectivenessScore, format.UsageCount)
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("GENERATED DRAFT")
	fmt.Println(strings.Repeat("=", 70))

	match := store.Match("AI sales automation", models.PlatformLinkedIn, models.MatchPreferences{})
	fmt.Printf("Matched %s (score %.1f)\n", match.Format.ID, match.MatchScore)
	for _, mod := range match.SuggestedModifications {
		fmt.Printf("  suggestion: %s\n", mod)
	}

	draft := gen.Generate(match.Format, "AI sales automation")
	fmt.Println("\n" + draft.Content)
	if len(draft.Issues) > 0 {
		fmt.Printf("\nValidation issues: %s\n", strings.Join(draft.Issues, "; "))
	}
}
