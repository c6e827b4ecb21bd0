package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Line-length buckets in characters
const (
	shortLineMax  = 40
	mediumLineMax = 100
)

// LineBreakStats describes how a post is broken into lines
type LineBreakStats struct {
	TotalLineBreaks int     `json:"total_line_breaks"`
	AvgLineLength   float64 `json:"avg_line_length"`
	ShortLines      int     `json:"short_lines"`
	MediumLines     int     `json:"medium_lines"`
	LongLines       int     `json:"long_lines"`
	HasDoubleBreak  bool    `json:"has_double_break"`
}

// ParsedContent is an immutable structural view of one post's text.
// It is rebuilt per analysis call and never cached.
type ParsedContent struct {
	Raw           string         `json:"-"`
	Lines         []string       `json:"lines"`
	Paragraphs    []string       `json:"paragraphs"`
	WordCount     int            `json:"word_count"`
	CharCount     int            `json:"char_count"`
	Emojis        []string       `json:"emojis"`
	Hashtags      []string       `json:"hashtags"`
	Mentions      []string       `json:"mentions"`
	Links         []string       `json:"links"`
	Numbers       []string       `json:"numbers"`
	HasAllCaps    bool           `json:"has_all_caps"`
	AllCapsWords  []string       `json:"all_caps_words"`
	AvgWordLength float64        `json:"avg_word_length"`
	LineBreaks    LineBreakStats `json:"line_breaks"`
}

var (
	emojiPattern   = regexp.MustCompile(`[\x{1F300}-\x{1F5FF}\x{1F600}-\x{1F64F}\x{1F680}-\x{1F6FF}\x{1F900}-\x{1F9FF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}]`)
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
	mentionPattern = regexp.MustCompile(`@(\w+)`)
	linkPattern    = regexp.MustCompile(`https?://\S+`)
	numberPattern  = regexp.MustCompile(`\d+(?:[,.]\d+)*%?`)
	allCapsPattern = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
)

// Parse turns raw post text into a ParsedContent. It never fails: empty or
// pathological input yields empty collections and zero counts.
func Parse(text string) ParsedContent {
	pc := ParsedContent{Raw: text}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			pc.Lines = append(pc.Lines, trimmed)
		}
	}

	for _, block := range paragraphSplit.Split(text, -1) {
		trimmed := strings.TrimSpace(block)
		if trimmed != "" {
			pc.Paragraphs = append(pc.Paragraphs, trimmed)
		}
	}

	words := strings.Fields(text)
	pc.WordCount = len(words)
	pc.CharCount = utf8.RuneCountInString(text)

	if len(words) > 0 {
		totalLen := 0
		for _, w := range words {
			totalLen += utf8.RuneCountInString(w)
		}
		pc.AvgWordLength = float64(totalLen) / float64(len(words))
	}

	pc.Emojis = emojiPattern.FindAllString(text, -1)
	pc.Links = linkPattern.FindAllString(text, -1)
	pc.Numbers = numberPattern.FindAllString(text, -1)

	// Hashtags and mentions keep first-seen order but drop duplicates
	pc.Hashtags = uniqueInOrder(hashtagPattern.FindAllString(text, -1))
	pc.Mentions = uniqueInOrder(mentionPattern.FindAllString(text, -1))

	pc.AllCapsWords = allCapsPattern.FindAllString(text, -1)
	pc.HasAllCaps = len(pc.AllCapsWords) > 0

	pc.LineBreaks = lineBreakStats(text, pc.Lines)

	return pc
}

func lineBreakStats(text string, lines []string) LineBreakStats {
	stats := LineBreakStats{
		HasDoubleBreak: strings.Contains(text, "\n\n"),
	}

	// Break count floors at zero for empty or single-line input
	if len(lines) > 1 {
		stats.TotalLineBreaks = len(lines) - 1
	}

	if len(lines) == 0 {
		return stats
	}

	totalLen := 0
	for _, line := range lines {
		length := utf8.RuneCountInString(line)
		totalLen += length
		switch {
		case length < shortLineMax:
			stats.ShortLines++
		case length <= mediumLineMax:
			stats.MediumLines++
		default:
			stats.LongLines++
		}
	}
	stats.AvgLineLength = float64(totalLen) / float64(len(lines))

	return stats
}

func uniqueInOrder(items []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, item := range items {
		key := strings.ToLower(item)
		if !seen[key] {
			seen[key] = true
			out = append(out, item)
		}
	}
	return out
}
