package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/contentpilot/viral-formats-bot/internal/config"
	"github.com/contentpilot/viral-formats-bot/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Service handles sending format reports via configured channels
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type     string         `json:"@type"`
	Context  string         `json:"@context"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	Sections []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle string      `json:"activityTitle,omitempty"`
	ActivityText  string      `json:"activityText,omitempty"`
	Facts         []TeamsFact `json:"facts,omitempty"`
	Markdown      bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendReport sends a format report via every configured channel
func (s *Service) SendReport(report *models.FormatReport) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.sendToTeams(report); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent report to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(report); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent report via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToTeams(report *models.FormatReport) error {
	message := s.buildTeamsMessage(report)

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildTeamsMessage(report *models.FormatReport) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("Viral Format Report - %s", report.Period),
		Text: fmt.Sprintf("Analyzed %d posts, learned %d format updates (%d formats stored)",
			report.PostsAnalyzed, report.FormatsLearned, report.TotalFormats),
	}

	facts := []TeamsFact{
		{Name: "Posts analyzed", Value: fmt.Sprintf("%d", report.PostsAnalyzed)},
		{Name: "Formats learned", Value: fmt.Sprintf("%d", report.FormatsLearned)},
		{Name: "Formats stored", Value: fmt.Sprintf("%d", report.TotalFormats)},
		{Name: "Generated", Value: report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
	}
	for platform, count := range report.PlatformBreakdown {
		facts = append(facts, TeamsFact{Name: "Posts from " + platform, Value: fmt.Sprintf("%d", count)})
	}

	section := TeamsSection{
		ActivityTitle: "Top performing formats",
		Facts:         facts,
		Markdown:      true,
	}
	var lines []string
	for i, format := range report.TopFormats {
		if i >= 5 {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. **%s** - effectiveness %.0f, used %d times",
			i+1, format.Name, format.EffectivenessScore, format.UsageCount))
	}
	section.ActivityText = strings.Join(lines, "<br>")
	message.Sections = []TeamsSection{section}

	return message
}

var emailTemplate = template.Must(template.New("report").Parse(`
<h2>Viral Format Report - {{.Period}}</h2>
<p>Analyzed <b>{{.PostsAnalyzed}}</b> posts, learned <b>{{.FormatsLearned}}</b> format updates.
The store now holds <b>{{.TotalFormats}}</b> formats.</p>
<h3>Top performing formats</h3>
<ol>
{{range .TopFormats}}<li><b>{{.Name}}</b> ({{.Platform}}) - effectiveness {{printf "%.0f" .EffectivenessScore}}, used {{.UsageCount}} times</li>
{{end}}</ol>
<p><i>Generated {{.GeneratedAt.Format "2006-01-02 15:04 UTC"}}</i></p>
`))

func (s *Service) sendEmail(report *models.FormatReport) error {
	var body bytes.Buffer
	if err := emailTemplate.Execute(&body, report); err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.config.SMTPUsername)
	message.SetHeader("To", s.config.NotificationEmail)
	message.SetHeader("Subject", fmt.Sprintf("Viral Format Report - %s", report.Period))
	message.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	if err := dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
