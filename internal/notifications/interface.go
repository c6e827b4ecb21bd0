package notifications

import "github.com/contentpilot/viral-formats-bot/internal/models"

// NotificationInterface defines the contract for notification services
type NotificationInterface interface {
	SendReport(report *models.FormatReport) error
}
