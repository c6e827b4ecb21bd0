package learning

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/contentpilot/viral-formats-bot/internal/analysis"
	"github.com/contentpilot/viral-formats-bot/internal/config"
	"github.com/contentpilot/viral-formats-bot/internal/formatstore"
	"github.com/contentpilot/viral-formats-bot/internal/models"
	"github.com/contentpilot/viral-formats-bot/internal/notifications"
	"github.com/contentpilot/viral-formats-bot/internal/sources"
	"github.com/contentpilot/viral-formats-bot/internal/storage"
	"github.com/sirupsen/logrus"
)

const snapshotPrefix = "formats-snapshot-"

// Service orchestrates the scrape → analyze → learn pipeline
type Service struct {
	config              *config.Config
	analyzer            *analysis.Service
	store               *formatstore.Store
	storage             storage.StorageInterface
	notificationService notifications.NotificationInterface
	sources             []sources.Source
	metrics             *Metrics
	mu                  sync.RWMutex
}

// Metrics holds learning-run metrics
type Metrics struct {
	PostsAnalyzed     int            `json:"posts_analyzed"`
	FormatsLearned    int            `json:"formats_learned"`
	LastRun           time.Time      `json:"last_run"`
	LastRunDuration   string         `json:"last_run_duration"`
	SourceMetrics     map[string]int `json:"source_metrics"`
	PlatformBreakdown map[string]int `json:"platform_breakdown"`
	ErrorCount        int            `json:"error_count"`
}

// NewService creates a new learning service
func NewService(cfg *config.Config, analyzer *analysis.Service, store *formatstore.Store,
	storageClient storage.StorageInterface, notificationService notifications.NotificationInterface) *Service {
	service := &Service{
		config:              cfg,
		analyzer:            analyzer,
		store:               store,
		storage:             storageClient,
		notificationService: notificationService,
		metrics: &Metrics{
			SourceMetrics:     make(map[string]int),
			PlatformBreakdown: make(map[string]int),
		},
	}

	service.initializeSources()

	return service
}

func (s *Service) initializeSources() {
	s.sources = []sources.Source{
		sources.NewLinkedInSource(s.config.ScraperAPIURL, s.config.ScraperAPIKey),
		sources.NewTwitterSource(s.config.ScraperAPIURL, s.config.ScraperAPIKey),
	}
}

// RunLearning performs one full learning pass over all enabled sources
func (s *Service) RunLearning() error {
	start := time.Now()
	logrus.Info("Starting learning run")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var searchWindow time.Duration
	switch s.config.LearnSchedule {
	case "daily":
		searchWindow = 24 * time.Hour
		logrus.Info("Scraping posts from the last 24 hours (daily schedule)")
	default:
		searchWindow = 7 * 24 * time.Hour
		logrus.Info("Scraping posts from the last 7 days (weekly schedule)")
	}

	var allPosts []models.ViralPost
	var wg sync.WaitGroup
	postsChan := make(chan []models.ViralPost, len(s.sources))
	errorsChan := make(chan error, len(s.sources))

	for _, source := range s.sources {
		if !source.IsEnabled() {
			logrus.Debugf("Skipping disabled source %s", source.GetName())
			continue
		}

		wg.Add(1)
		go func(src sources.Source) {
			defer wg.Done()

			logrus.Infof("Fetching posts from %s (window: %v)", src.GetName(), searchWindow)
			posts, err := src.FetchPosts(ctx, s.handlesFor(src.GetName()), searchWindow)

			if err != nil {
				logrus.Errorf("Error fetching from %s: %v", src.GetName(), err)
				errorsChan <- err
				return
			}

			logrus.Infof("Fetched %d posts from %s", len(posts), src.GetName())
			postsChan <- posts
		}(source)
	}

	go func() {
		wg.Wait()
		close(postsChan)
		close(errorsChan)
	}()

	for posts := range postsChan {
		allPosts = append(allPosts, posts...)
	}

	errorCount := 0
	for range errorsChan {
		errorCount++
	}

	logrus.Infof("Collected %d posts from all sources", len(allPosts))

	analyses := make([]models.AnalysisResult, 0, len(allPosts))
	learned := 0
	for _, post := range allPosts {
		result := s.analyzer.Analyze(post)
		analyses = append(analyses, result)

		if result.ViralityScore >= s.config.MinLearnScore {
			s.store.Learn(post, result)
			learned++
		}
	}

	logrus.Infof("Analyzed %d posts, learned %d format updates", len(analyses), learned)

	if err := s.archiveAnalyses(analyses); err != nil {
		logrus.Errorf("Failed to archive analyses: %v", err)
		errorCount++
	}
	if err := s.SnapshotStore(); err != nil {
		logrus.Errorf("Failed to snapshot format store: %v", err)
		errorCount++
	}

	s.updateMetrics(allPosts, learned, time.Since(start), errorCount)

	if err := s.sendReport(allPosts, learned); err != nil {
		logrus.Errorf("Failed to send report: %v", err)
		return err
	}

	logrus.Infof("Learning run completed in %v", time.Since(start))
	return nil
}

func (s *Service) handlesFor(sourceName string) []string {
	switch sourceName {
	case "linkedin":
		return s.config.LinkedInHandles
	case "twitter":
		return s.config.TwitterHandles
	default:
		return nil
	}
}

func (s *Service) archiveAnalyses(analyses []models.AnalysisResult) error {
	if len(analyses) == 0 {
		return nil
	}

	data, err := json.Marshal(analyses)
	if err != nil {
		return fmt.Errorf("failed to marshal analyses: %w", err)
	}

	filename := fmt.Sprintf("analyses-%s.json", time.Now().Format("2006-01-02-15-04-05"))
	return s.storage.Store(filename, data)
}

// SnapshotStore writes the full format-store export to storage so restarts
// can recover learned formats.
func (s *Service) SnapshotStore() error {
	formats := s.store.Export()
	data, err := json.Marshal(formats)
	if err != nil {
		return fmt.Errorf("failed to marshal formats: %w", err)
	}

	filename := fmt.Sprintf("%s%s.json", snapshotPrefix, time.Now().Format("2006-01-02-15-04-05"))
	return s.storage.Store(filename, data)
}

// RestoreSnapshot loads the latest snapshot, if any, into the store.
// Best effort: a missing snapshot leaves the seeded store untouched.
func (s *Service) RestoreSnapshot() error {
	names, err := s.storage.List(snapshotPrefix)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(names) == 0 {
		logrus.Info("No format snapshot found, starting from seeds")
		return nil
	}

	// Names embed sortable timestamps; the last one is the latest
	latest := names[len(names)-1]
	data, err := s.storage.Retrieve(latest)
	if err != nil {
		return fmt.Errorf("failed to retrieve snapshot %s: %w", latest, err)
	}

	var formats []models.FormatPattern
	if err := json.Unmarshal(data, &formats); err != nil {
		return fmt.Errorf("failed to decode snapshot %s: %w", latest, err)
	}

	applied := s.store.Import(formats, models.MergeReplace)
	logrus.Infof("Restored %d formats from snapshot %s", applied, latest)
	return nil
}

func (s *Service) sendReport(posts []models.ViralPost, learned int) error {
	stats := s.store.Stats("")

	platformCounts := make(map[string]int)
	for _, post := range posts {
		platformCounts[string(post.Platform)]++
	}

	topFormats := s.store.List("")
	if len(topFormats) > 5 {
		topFormats = topFormats[:5]
	}

	report := &models.FormatReport{
		GeneratedAt:       time.Now().UTC(),
		Period:            s.config.LearnSchedule,
		PostsAnalyzed:     len(posts),
		FormatsLearned:    learned,
		TotalFormats:      stats.TotalFormats,
		TopFormats:        topFormats,
		PlatformBreakdown: platformCounts,
		Summary: map[string]interface{}{
			"avg_effectiveness": stats.AvgEffectiveness,
			"top_hook_types":    stats.TopHookTypes,
			"top_cta_types":     stats.TopCTATypes,
		},
	}

	return s.notificationService.SendReport(report)
}

func (s *Service) updateMetrics(posts []models.ViralPost, learned int, duration time.Duration, errorCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.PostsAnalyzed = len(posts)
	s.metrics.FormatsLearned = learned
	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()
	s.metrics.ErrorCount = errorCount

	s.metrics.SourceMetrics = make(map[string]int)
	s.metrics.PlatformBreakdown = make(map[string]int)
	for _, post := range posts {
		s.metrics.PlatformBreakdown[string(post.Platform)]++
	}
	for _, source := range s.sources {
		if source.IsEnabled() {
			s.metrics.SourceMetrics[source.GetName()] = s.metrics.PlatformBreakdown[source.GetName()]
		}
	}
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
