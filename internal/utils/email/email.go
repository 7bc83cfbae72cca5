package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/finsight/forecast-service/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendBudgetAlert notifies a user that the forecast for the upcoming week
// exceeds their weekly budget
func (s *Sender) SendBudgetAlert(to, username string, totalWeekly, weeklyBudget, overspend float64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Weekly Budget Alert"

	body := fmt.Sprintf(
		"Dear %s,\n\n", username,
	)
	body += fmt.Sprintf(
		"Your forecasted spending for the upcoming week is %.2f, which exceeds your weekly budget of %.2f by %.2f.\n"+
			"Consider reducing discretionary spending to stay on track.\n"+
			"Forecast generated: %s\n",
		totalWeekly, weeklyBudget, overspend, time.Now().Format("2006-01-02 15:04:05"),
	)
	body += "\nBest regards,\nSpend Forecast Service"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	err := e.Send(addr, auth)
	if err != nil {
		s.logger.Errorf("Failed to send budget alert to %s: %v", to, err)
		return fmt.Errorf("failed to send budget alert: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
