package formatstore

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/contentpilot/viral-formats-bot/internal/models"
	"github.com/sirupsen/logrus"
)

// EMA weight ceiling: early observations move a format's effectiveness fast,
// later ones stabilize it.
const maxObservationWeight = 0.3

// Tags are taken from topics at or above this relevance.
const tagRelevanceFloor = 0.3

// Store owns the table of learned format patterns. All access goes through
// the mutex, so concurrent learns against the same format id serialize
// instead of racing on the effectiveness read-modify-write.
type Store struct {
	mu      sync.RWMutex
	formats map[string]*models.FormatPattern
}

// NewStore creates a store pre-seeded with the default formats so matching
// never starts from a completely empty table.
func NewStore() *Store {
	s := &Store{formats: make(map[string]*models.FormatPattern)}
	for _, seed := range seedFormats() {
		seed := seed
		s.formats[seed.ID] = &seed
	}
	return s
}

// FormatID derives the deterministic slug for a platform/hook/body/CTA triad.
// Two posts with the same triad collapse to one record.
func FormatID(platform models.Platform, hook models.HookType, body models.BodyType, cta models.CTAType) string {
	return strings.ToLower(fmt.Sprintf("%s_%s_%s_%s", platform, hook, body, cta))
}

// Learn upserts the format pattern derived from an analyzed post. A new
// triad starts at the post's virality score with usage count 1; repeat
// observations fold in via an exponential moving average with weight
// min(0.3, 1/(usageCount+1)).
func (s *Store) Learn(post models.ViralPost, analysis models.AnalysisResult) models.FormatPattern {
	id := FormatID(post.Platform, analysis.Pattern.HookType, analysis.Pattern.BodyType, analysis.Pattern.CTAType)
	now := time.Now().UTC()
	observed := float64(analysis.ViralityScore)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.formats[id]; ok {
		weight := math.Min(maxObservationWeight, 1/float64(existing.UsageCount+1))
		existing.EffectivenessScore = existing.EffectivenessScore*(1-weight) + observed*weight
		existing.UsageCount++
		existing.Tags = unionTags(existing.Tags, tagsFromAnalysis(analysis))
		existing.UpdatedAt = now
		logrus.Debugf("Updated format %s: effectiveness=%.1f usage=%d", id, existing.EffectivenessScore, existing.UsageCount)
		return *existing
	}

	format := &models.FormatPattern{
		ID:                 id,
		Name:               formatName(post.Platform, analysis.Pattern),
		Description:        fmt.Sprintf("Learned from post %s", post.ID),
		Platform:           post.Platform,
		HookType:           analysis.Pattern.HookType,
		BodyType:           analysis.Pattern.BodyType,
		CTAType:            analysis.Pattern.CTAType,
		Template:           templateFor(analysis.Pattern.HookType, analysis.Pattern.BodyType, analysis.Pattern.CTAType),
		Example:            excerpt(post.Content),
		Tags:               tagsFromAnalysis(analysis),
		EffectivenessScore: observed,
		UsageCount:         1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.formats[id] = format
	logrus.Infof("Learned new format %s (effectiveness %.0f)", id, observed)
	return *format
}

// List returns formats sorted by effectiveness descending. An empty platform
// returns every stored format.
func (s *Store) List(platform models.Platform) []models.FormatPattern {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.FormatPattern
	for _, format := range s.formats {
		if platform != "" && format.Platform != platform {
			continue
		}
		out = append(out, *format)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EffectivenessScore != out[j].EffectivenessScore {
			return out[i].EffectivenessScore > out[j].EffectivenessScore
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Get fetches one format. The boolean distinguishes "absent" from "present".
func (s *Store) Get(id string) (models.FormatPattern, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	format, ok := s.formats[id]
	if !ok {
		return models.FormatPattern{}, false
	}
	return *format, true
}

// UpdateRequest carries the partially updatable fields of a format. Nil
// fields are left untouched.
type UpdateRequest struct {
	Name               *string   `json:"name,omitempty"`
	Description        *string   `json:"description,omitempty"`
	Template           *string   `json:"template,omitempty"`
	Example            *string   `json:"example,omitempty"`
	Tags               *[]string `json:"tags,omitempty"`
	EffectivenessScore *float64  `json:"effectiveness_score,omitempty"`
}

// Update applies a partial update. Returns false when the id is unknown.
func (s *Store) Update(id string, req UpdateRequest) (models.FormatPattern, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	format, ok := s.formats[id]
	if !ok {
		return models.FormatPattern{}, false
	}

	if req.Name != nil {
		format.Name = *req.Name
	}
	if req.Description != nil {
		format.Description = *req.Description
	}
	if req.Template != nil {
		format.Template = *req.Template
	}
	if req.Example != nil {
		format.Example = *req.Example
	}
	if req.Tags != nil {
		format.Tags = *req.Tags
	}
	if req.EffectivenessScore != nil {
		format.EffectivenessScore = math.Max(0, math.Min(100, *req.EffectivenessScore))
	}
	format.UpdatedAt = time.Now().UTC()

	return *format, true
}

// Delete removes one format. Returns false when the id is unknown.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.formats[id]; !ok {
		return false
	}
	delete(s.formats, id)
	return true
}

// BulkDelete removes the given ids and reports how many existed.
func (s *Store) BulkDelete(ids []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for _, id := range ids {
		if _, ok := s.formats[id]; ok {
			delete(s.formats, id)
			deleted++
		}
	}
	return deleted
}

// Export returns a copy of every stored format, sorted by id for stable output.
func (s *Store) Export() []models.FormatPattern {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FormatPattern, 0, len(s.formats))
	for _, format := range s.formats {
		out = append(out, *format)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Import merges formats into the store. Records missing platform, hook, body
// or CTA type are skipped as invalid. Returns how many records were applied.
func (s *Store) Import(formats []models.FormatPattern, strategy models.MergeStrategy) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := 0
	now := time.Now().UTC()

	for _, incoming := range formats {
		if !incoming.Platform.IsValid() || incoming.HookType == "" || incoming.BodyType == "" || incoming.CTAType == "" {
			logrus.Warnf("Skipping invalid imported format %q", incoming.ID)
			continue
		}
		if incoming.ID == "" {
			incoming.ID = FormatID(incoming.Platform, incoming.HookType, incoming.BodyType, incoming.CTAType)
		}

		existing, exists := s.formats[incoming.ID]
		switch strategy {
		case models.MergeSkip:
			if exists {
				continue
			}
			record := incoming
			s.formats[record.ID] = &record
		case models.MergeAverage:
			if exists {
				existing.EffectivenessScore = (existing.EffectivenessScore + incoming.EffectivenessScore) / 2
				existing.Tags = unionTags(existing.Tags, incoming.Tags)
				existing.UsageCount += incoming.UsageCount
				existing.UpdatedAt = now
			} else {
				record := incoming
				s.formats[record.ID] = &record
			}
		default: // replace
			record := incoming
			s.formats[record.ID] = &record
		}
		applied++
	}

	return applied
}

// Clear empties the table entirely, seeds included.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formats = make(map[string]*models.FormatPattern)
}

// Stats aggregates the stored formats, optionally for one platform.
func (s *Store) Stats(platform models.Platform) models.StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.StoreStats{PlatformBreakdown: make(map[string]int)}
	hookCounts := make(map[string]int)
	bodyCounts := make(map[string]int)
	ctaCounts := make(map[string]int)
	totalEffectiveness := 0.0

	for _, format := range s.formats {
		if platform != "" && format.Platform != platform {
			continue
		}
		stats.TotalFormats++
		totalEffectiveness += format.EffectivenessScore
		hookCounts[string(format.HookType)]++
		bodyCounts[string(format.BodyType)]++
		ctaCounts[string(format.CTAType)]++
		stats.PlatformBreakdown[string(format.Platform)]++
	}

	if stats.TotalFormats > 0 {
		stats.AvgEffectiveness = totalEffectiveness / float64(stats.TotalFormats)
	}
	stats.TopHookTypes = topCounts(hookCounts, 5)
	stats.TopBodyTypes = topCounts(bodyCounts, 5)
	stats.TopCTATypes = topCounts(ctaCounts, 5)

	return stats
}

func topCounts(counts map[string]int, limit int) []models.TypeCount {
	out := make([]models.TypeCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, models.TypeCount{Type: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func tagsFromAnalysis(analysis models.AnalysisResult) []string {
	var tags []string
	for _, topic := range analysis.Signals.TopicRelevance {
		if topic.Relevance >= tagRelevanceFloor {
			tags = append(tags, topic.Topic)
		}
	}
	for _, trigger := range analysis.Signals.EmotionalTriggers {
		tags = append(tags, string(trigger))
	}
	return tags
}

func unionTags(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	out := make([]string, 0, len(a)+len(b))
	for _, tag := range a {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	for _, tag := range b {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}

func formatName(platform models.Platform, pattern models.DetectedFormatPattern) string {
	return fmt.Sprintf("%s %s + %s", titleize(string(platform)), titleize(string(pattern.HookType)), titleize(string(pattern.BodyType)))
}

func titleize(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func excerpt(content string) string {
	const maxExcerpt = 140
	content = strings.TrimSpace(content)
	runes := []rune(content)
	if len(runes) <= maxExcerpt {
		return content
	}
	return string(runes[:maxExcerpt]) + "…"
}
