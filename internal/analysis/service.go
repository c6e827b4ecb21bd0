package analysis

import (
	"time"

	"github.com/contentpilot/viral-formats-bot/internal/models"
	"github.com/sirupsen/logrus"
)

// Weights for blending classifier confidences with indicator strength into
// the overall analysis confidence.
const (
	classifierConfidenceWeight = 0.7
	indicatorConfidenceWeight  = 0.3
	maxSimilarFormats          = 3
)

// FormatLister lets the analyzer suggest similar stored formats without
// owning the store.
type FormatLister interface {
	List(platform models.Platform) []models.FormatPattern
}

// Service runs the full analysis pipeline for single posts
type Service struct {
	extractor *Extractor
	formats   FormatLister // optional
}

// NewService creates an analysis service. formats may be nil, in which case
// similar-format suggestions are omitted.
func NewService(extractor *Extractor, formats FormatLister) *Service {
	return &Service{extractor: extractor, formats: formats}
}

// Analyze classifies and scores a single post. It never fails: empty content
// yields a NONE-heavy result with a low score.
func (s *Service) Analyze(post models.ViralPost) models.AnalysisResult {
	pc := Parse(post.Content)
	pattern := Classify(pc, post.Platform)
	signals := s.extractor.Extract(pc, post.Platform)
	score := Score(post, pc, pattern, signals)

	result := models.AnalysisResult{
		PostID:          post.ID,
		ViralityScore:   score,
		Confidence:      overallConfidence(pattern, signals),
		Pattern:         pattern,
		Signals:         signals,
		Recommendations: buildRecommendations(post.Platform, pc, pattern, signals),
		SimilarFormats:  s.similarFormats(post.Platform, pattern),
		AnalyzedAt:      time.Now().UTC(),
	}

	logrus.Debugf("Analyzed post %s: score=%d hook=%s body=%s cta=%s",
		post.ID, score, pattern.HookType, pattern.BodyType, pattern.CTAType)

	return result
}

func overallConfidence(pattern models.DetectedFormatPattern, signals models.ViralSignals) float64 {
	classifier := (pattern.HookConfidence + pattern.BodyConfidence + pattern.CTAConfidence) / 3

	indicator := 0.0
	if len(signals.Indicators) > 0 {
		sum := 0.0
		for _, ind := range signals.Indicators {
			sum += ind.Score
		}
		indicator = sum / float64(len(signals.Indicators)) / 100
	}

	return classifier*classifierConfidenceWeight + indicator*indicatorConfidenceWeight
}

func buildRecommendations(platform models.Platform, pc ParsedContent, pattern models.DetectedFormatPattern, signals models.ViralSignals) []string {
	var recs []string

	if pattern.HookType == models.HookNone || pattern.HookConfidence < 0.6 {
		recs = append(recs, "Open with a recognizable hook: a question, a bold claim, or a statistic.")
	}
	if hookLineLength(pc) > 100 {
		recs = append(recs, "Shorten the first line; opening lines under 100 characters hold attention better.")
	}
	if pattern.CTAType == models.CTANone {
		recs = append(recs, "Close with a clear call to action so readers know how to respond.")
	}
	if len(signals.EmotionalTriggers) == 0 {
		recs = append(recs, "Work in emotional vocabulary; posts without an emotional angle rarely travel.")
	}
	if len(pc.Numbers) == 0 {
		recs = append(recs, "Add a concrete number; specificity reads as credibility.")
	}
	switch platform {
	case models.PlatformLinkedIn:
		if !pc.LineBreaks.HasDoubleBreak {
			recs = append(recs, "Break the post into short paragraphs with blank lines between them.")
		}
	case models.PlatformTwitter:
		if pc.CharCount > 280 {
			recs = append(recs, "Trim the post to fit a single tweet, or restructure it as a thread.")
		}
	}

	return recs
}

func (s *Service) similarFormats(platform models.Platform, pattern models.DetectedFormatPattern) []string {
	if s.formats == nil {
		return nil
	}

	var names []string
	for _, format := range s.formats.List(platform) {
		if format.HookType == pattern.HookType || format.BodyType == pattern.BodyType {
			names = append(names, format.Name)
		}
		if len(names) == maxSimilarFormats {
			break
		}
	}
	return names
}
