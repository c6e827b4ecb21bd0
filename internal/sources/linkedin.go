package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/contentpilot/viral-formats-bot/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// LinkedInSource pulls recent posts for a handle through the scraping
// provider. The provider itself is a black box; we only depend on its
// JSON post shape.
type LinkedInSource struct {
	apiURL string
	apiKey string
	client *resty.Client
}

type scrapedPost struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	Author      string  `json:"author"`
	URL         string  `json:"url"`
	Likes       int     `json:"likes"`
	Comments    int     `json:"comments"`
	Shares      int     `json:"shares"`
	Saves       int     `json:"saves"`
	Impressions int     `json:"impressions"`
	PostedAt    float64 `json:"posted_at"` // unix seconds
}

type scrapeResponse struct {
	Posts []scrapedPost `json:"posts"`
}

// NewLinkedInSource creates a new LinkedIn scraping source
func NewLinkedInSource(apiURL, apiKey string) *LinkedInSource {
	return &LinkedInSource{
		apiURL: apiURL,
		apiKey: apiKey,
		client: resty.New().
			SetTimeout(30 * time.Second).
			SetHeader("User-Agent", "Viral-Formats-Bot/1.0"),
	}
}

func (l *LinkedInSource) GetName() string {
	return "linkedin"
}

func (l *LinkedInSource) IsEnabled() bool {
	return l.apiURL != "" && l.apiKey != ""
}

func (l *LinkedInSource) FetchPosts(ctx context.Context, handles []string, since time.Duration) ([]models.ViralPost, error) {
	if !l.IsEnabled() {
		logrus.Debug("LinkedIn source disabled - missing scraper credentials")
		return nil, nil
	}

	var allPosts []models.ViralPost
	cutoff := time.Now().Add(-since)

	for _, handle := range handles {
		posts, err := l.fetchHandle(ctx, handle, cutoff)
		if err != nil {
			logrus.Errorf("Failed to fetch LinkedIn posts for %s: %v", handle, err)
			continue
		}
		allPosts = append(allPosts, posts...)
	}

	return allPosts, nil
}

func (l *LinkedInSource) fetchHandle(ctx context.Context, handle string, cutoff time.Time) ([]models.ViralPost, error) {
	resp, err := l.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+l.apiKey).
		SetQueryParams(map[string]string{
			"platform": "linkedin",
			"handle":   handle,
			"limit":    "50",
		}).
		Get(l.apiURL + "/v1/posts")

	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("scraper API returned status %d", resp.StatusCode())
	}

	var scraped scrapeResponse
	if err := json.Unmarshal(resp.Body(), &scraped); err != nil {
		return nil, fmt.Errorf("failed to decode scraper response: %w", err)
	}

	return convertPosts(scraped.Posts, models.PlatformLinkedIn, "linkedin", cutoff), nil
}

// convertPosts maps the provider's post shape onto ViralPost, dropping
// entries older than the cutoff.
func convertPosts(posts []scrapedPost, platform models.Platform, prefix string, cutoff time.Time) []models.ViralPost {
	var out []models.ViralPost
	for _, post := range posts {
		createdAt := time.Unix(int64(post.PostedAt), 0).UTC()
		if createdAt.Before(cutoff) {
			continue
		}

		metrics := models.PostMetrics{
			Likes:       post.Likes,
			Comments:    post.Comments,
			Shares:      post.Shares,
			Saves:       post.Saves,
			Impressions: post.Impressions,
		}
		if post.Impressions > 0 {
			interactions := post.Likes + post.Comments + post.Shares
			metrics.EngagementRate = float64(interactions) / float64(post.Impressions) * 100
		}

		out = append(out, models.ViralPost{
			ID:        fmt.Sprintf("%s_%s", prefix, post.ID),
			Platform:  platform,
			Author:    post.Author,
			Content:   post.Text,
			URL:       post.URL,
			Metrics:   metrics,
			CreatedAt: createdAt,
		})
	}
	return out
}
