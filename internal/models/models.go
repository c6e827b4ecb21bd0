package models

import "time"

// Platform identifies which social network a post belongs to
type Platform string

const (
	PlatformLinkedIn Platform = "linkedin"
	PlatformTwitter  Platform = "twitter"
)

// IsValid reports whether p is one of the supported platforms
func (p Platform) IsValid() bool {
	return p == PlatformLinkedIn || p == PlatformTwitter
}

// HookType classifies the attention-grabbing technique of a post's opening
type HookType string

const (
	HookQuestion          HookType = "question"
	HookBoldStatement     HookType = "bold_statement"
	HookStatistic         HookType = "statistic"
	HookStory             HookType = "story"
	HookControversialTake HookType = "controversial_take"
	HookCuriosityGap      HookType = "curiosity_gap"
	HookDirectAddress     HookType = "direct_address"
	HookPromise           HookType = "promise"
	HookNone              HookType = "none"
)

// BodyType classifies the structural organization of a post's main content
type BodyType string

const (
	BodyListicle        BodyType = "listicle"
	BodyStoryNarrative  BodyType = "story_narrative"
	BodyProblemSolution BodyType = "problem_solution"
	BodyHowToGuide      BodyType = "how_to_guide"
	BodyComparison      BodyType = "comparison"
	BodyCaseStudy       BodyType = "case_study"
	BodyOpinionPiece    BodyType = "opinion_piece"
	BodyQuestionAnswer  BodyType = "question_answer"
	BodyBehindTheScenes BodyType = "behind_the_scenes"
	BodyInsightSharing  BodyType = "insight_sharing"
)

// CTAType classifies the closing instruction intended to drive reader action
type CTAType string

const (
	CTAQuestionToAudience CTAType = "question_to_audience"
	CTACommentPrompt      CTAType = "comment_prompt"
	CTAShareRequest       CTAType = "share_request"
	CTAFollowRequest      CTAType = "follow_request"
	CTALinkClick          CTAType = "link_click"
	CTASavePost           CTAType = "save_post"
	CTAEngagementBait     CTAType = "engagement_bait"
	CTANone               CTAType = "none"
)

// EmotionalTrigger names an emotional response a post's vocabulary appeals to
type EmotionalTrigger string

const (
	TriggerCuriosity   EmotionalTrigger = "curiosity"
	TriggerFear        EmotionalTrigger = "fear"
	TriggerExcitement  EmotionalTrigger = "excitement"
	TriggerValidation  EmotionalTrigger = "validation"
	TriggerSurprise    EmotionalTrigger = "surprise"
	TriggerAnger       EmotionalTrigger = "anger"
	TriggerNostalgia   EmotionalTrigger = "nostalgia"
	TriggerInspiration EmotionalTrigger = "inspiration"
	TriggerFrustration EmotionalTrigger = "frustration"
	TriggerHope        EmotionalTrigger = "hope"
	TriggerUrgency     EmotionalTrigger = "urgency"
	TriggerFOMO        EmotionalTrigger = "fomo"
)

// PostMetrics holds engagement numbers for a scraped post
type PostMetrics struct {
	Likes          int     `json:"likes"`
	Comments       int     `json:"comments"`
	Shares         int     `json:"shares"`
	Saves          int     `json:"saves,omitempty"`
	Impressions    int     `json:"impressions,omitempty"`
	EngagementRate float64 `json:"engagement_rate,omitempty"` // percent, e.g. 5.2
}

// ViralPost is a scraped social-media post submitted for analysis
type ViralPost struct {
	ID        string      `json:"id"`
	Platform  Platform    `json:"platform"`
	Author    string      `json:"author,omitempty"`
	Content   string      `json:"content"`
	URL       string      `json:"url,omitempty"`
	Metrics   PostMetrics `json:"metrics"`
	CreatedAt time.Time   `json:"created_at"`
}

// DetectedFormatPattern is the classifier's verdict for one post
type DetectedFormatPattern struct {
	HookType       HookType `json:"hook_type"`
	HookConfidence float64  `json:"hook_confidence"`
	HookText       string   `json:"hook_text,omitempty"`
	BodyType       BodyType `json:"body_type"`
	BodyConfidence float64  `json:"body_confidence"`
	BodyStructure  string   `json:"body_structure,omitempty"`
	CTAType        CTAType  `json:"cta_type"`
	CTAConfidence  float64  `json:"cta_confidence"`
	CTAText        string   `json:"cta_text,omitempty"`
}

// FormatElement reports one platform-formatting feature of a post
type FormatElement struct {
	Type         string `json:"type"`
	Present      bool   `json:"present"`
	Count        int    `json:"count"`
	Significance string `json:"significance"` // "high", "medium", "low"
}

// TimingSignal reports urgency or scheduling language found in a post
type TimingSignal struct {
	Type  string `json:"type"`
	Match string `json:"match"`
}

// TopicRelevance scores how strongly a post relates to a known topic
type TopicRelevance struct {
	Topic     string  `json:"topic"`
	Relevance float64 `json:"relevance"` // 0-1
	Trending  bool    `json:"trending"`
}

// ViralityIndicator is a named sub-score with a human-readable reason
type ViralityIndicator struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"` // 0-100
	Reason string  `json:"reason"`
}

// ViralSignals aggregates all non-structural signals detected in a post
type ViralSignals struct {
	EmotionalTriggers []EmotionalTrigger  `json:"emotional_triggers"`
	FormatElements    []FormatElement     `json:"format_elements"`
	TimingSignals     []TimingSignal      `json:"timing_signals"`
	TopicRelevance    []TopicRelevance    `json:"topic_relevance"`
	Indicators        []ViralityIndicator `json:"virality_indicators"`
}

// AnalysisResult is the full verdict for one analyzed post
type AnalysisResult struct {
	PostID          string                `json:"post_id"`
	ViralityScore   int                   `json:"virality_score"` // 0-100
	Confidence      float64               `json:"confidence"`     // 0-1
	Pattern         DetectedFormatPattern `json:"pattern"`
	Signals         ViralSignals          `json:"signals"`
	Recommendations []string              `json:"recommendations"`
	SimilarFormats  []string              `json:"similar_formats,omitempty"`
	AnalyzedAt      time.Time             `json:"analyzed_at"`
}

// FormatPattern is a learned, reusable post structure for one platform
type FormatPattern struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Platform           Platform  `json:"platform"`
	HookType           HookType  `json:"hook_type"`
	BodyType           BodyType  `json:"body_type"`
	CTAType            CTAType   `json:"cta_type"`
	Template           string    `json:"template"`
	Example            string    `json:"example,omitempty"`
	Tags               []string  `json:"tags"`
	EffectivenessScore float64   `json:"effectiveness_score"` // 0-100
	UsageCount         int       `json:"usage_count"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// MatchPreferences are optional hints for format matching
type MatchPreferences struct {
	PreferredHook    HookType           `json:"preferred_hook,omitempty"`
	PreferredBody    BodyType           `json:"preferred_body,omitempty"`
	PreferredCTA     CTAType            `json:"preferred_cta,omitempty"`
	TargetEmotions   []EmotionalTrigger `json:"target_emotions,omitempty"`
	MinEffectiveness float64            `json:"min_effectiveness,omitempty"`
}

// MatchResult is the outcome of matching stored formats against a request
type MatchResult struct {
	Format                 FormatPattern `json:"format"`
	MatchScore             float64       `json:"match_score"`
	MatchingElements       []string      `json:"matching_elements"`
	SuggestedModifications []string      `json:"suggested_modifications"`
}

// TypeCount pairs an enum value with how many stored formats use it
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// StoreStats summarizes the format store contents
type StoreStats struct {
	TotalFormats      int            `json:"total_formats"`
	AvgEffectiveness  float64        `json:"avg_effectiveness"`
	TopHookTypes      []TypeCount    `json:"top_hook_types"`
	TopBodyTypes      []TypeCount    `json:"top_body_types"`
	TopCTATypes       []TypeCount    `json:"top_cta_types"`
	PlatformBreakdown map[string]int `json:"platform_breakdown"`
}

// MergeStrategy controls how imported formats combine with existing ones
type MergeStrategy string

const (
	MergeReplace MergeStrategy = "replace"
	MergeAverage MergeStrategy = "average"
	MergeSkip    MergeStrategy = "skip"
)

// Draft is a generated post candidate
type Draft struct {
	ID        string    `json:"id"`
	Platform  Platform  `json:"platform"`
	FormatID  string    `json:"format_id"`
	Topic     string    `json:"topic"`
	Content   string    `json:"content"`
	Valid     bool      `json:"valid"`
	Issues    []string  `json:"issues,omitempty"`
	Polished  bool      `json:"polished"`
	CreatedAt time.Time `json:"created_at"`
}

// FormatReport is a periodic summary of what the learning pipeline produced
type FormatReport struct {
	GeneratedAt       time.Time              `json:"generated_at"`
	Period            string                 `json:"period"`
	PostsAnalyzed     int                    `json:"posts_analyzed"`
	FormatsLearned    int                    `json:"formats_learned"`
	TotalFormats      int                    `json:"total_formats"`
	TopFormats        []FormatPattern        `json:"top_formats"`
	PlatformBreakdown map[string]int         `json:"platform_breakdown"`
	Summary           map[string]interface{} `json:"summary"`
}
