package sources

import (
	"context"
	"time"

	"github.com/contentpilot/viral-formats-bot/internal/models"
)

// Source interface defines the contract for all post-scraping providers
type Source interface {
	GetName() string
	FetchPosts(ctx context.Context, handles []string, since time.Duration) ([]models.ViralPost, error)
	IsEnabled() bool
}
