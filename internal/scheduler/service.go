package scheduler

import (
	"github.com/contentpilot/viral-formats-bot/internal/config"
	"github.com/contentpilot/viral-formats-bot/internal/learning"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service handles scheduling of learning runs
type Service struct {
	config          *config.Config
	learningService *learning.Service
	cron            *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, learningService *learning.Service) *Service {
	return &Service{
		config:          cfg,
		learningService: learningService,
		cron:            cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled learning runs
func (s *Service) Start() error {
	var cronExpression string

	switch s.config.LearnSchedule {
	case "daily":
		// Run daily at 7 AM UTC
		cronExpression = "0 0 7 * * *"
	default:
		// Run weekly on Monday at 7 AM UTC
		cronExpression = "0 0 7 * * MON"
	}

	_, err := s.cron.AddFunc(cronExpression, func() {
		logrus.Info("Starting scheduled learning run")
		if err := s.learningService.RunLearning(); err != nil {
			logrus.Errorf("Scheduled learning run failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	// Snapshot the store every 6 hours so manual learns survive restarts too
	_, err = s.cron.AddFunc("0 0 */6 * * *", func() {
		if err := s.learningService.SnapshotStore(); err != nil {
			logrus.Errorf("Periodic store snapshot failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s learning schedule", s.config.LearnSchedule)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
