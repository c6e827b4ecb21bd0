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

// TwitterSource pulls recent posts for a handle through the scraping provider
type TwitterSource struct {
	apiURL string
	apiKey string
	client *resty.Client
}

// NewTwitterSource creates a new Twitter scraping source
func NewTwitterSource(apiURL, apiKey string) *TwitterSource {
	return &TwitterSource{
		apiURL: apiURL,
		apiKey: apiKey,
		client: resty.New().
			SetTimeout(30 * time.Second).
			SetHeader("User-Agent", "Viral-Formats-Bot/1.0"),
	}
}

func (t *TwitterSource) GetName() string {
	return "twitter"
}

func (t *TwitterSource) IsEnabled() bool {
	return t.apiURL != "" && t.apiKey != ""
}

func (t *TwitterSource) FetchPosts(ctx context.Context, handles []string, since time.Duration) ([]models.ViralPost, error) {
	if !t.IsEnabled() {
		logrus.Debug("Twitter source disabled - missing scraper credentials")
		return nil, nil
	}

	var allPosts []models.ViralPost
	cutoff := time.Now().Add(-since)

	for _, handle := range handles {
		posts, err := t.fetchHandle(ctx, handle, cutoff)
		if err != nil {
			logrus.Errorf("Failed to fetch tweets for %s: %v", handle, err)
			continue
		}
		allPosts = append(allPosts, posts...)
	}

	return allPosts, nil
}

func (t *TwitterSource) fetchHandle(ctx context.Context, handle string, cutoff time.Time) ([]models.ViralPost, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+t.apiKey).
		SetQueryParams(map[string]string{
			"platform": "twitter",
			"handle":   handle,
			"limit":    "100",
		}).
		Get(t.apiURL + "/v1/posts")

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

	return convertPosts(scraped.Posts, models.PlatformTwitter, "twitter", cutoff), nil
}
