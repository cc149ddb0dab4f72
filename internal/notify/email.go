package notify

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/Dan9191/ambient-finance/internal/config"
	"github.com/Dan9191/ambient-finance/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending alert emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	now    func() time.Time
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// SendFlagAlert emails the flags raised by the ambient check
func (s *Sender) SendFlagAlert(to, name string, snap models.Snapshot) error {
	e := s.buildFlagAlert(to, name, snap)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send alert to %s: %v", to, err)
		return fmt.Errorf("failed to send alert: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func (s *Sender) buildFlagAlert(to, name string, snap models.Snapshot) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Finance alert: %d issue(s) need attention", len(snap.Flags))

	if name == "" {
		name = "there"
	}
	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", name)
	fmt.Fprintf(&body, "Your finances were checked at %s and the following flags were raised:\n\n",
		s.now().Format("2006-01-02 15:04"))
	for _, f := range snap.Flags {
		fmt.Fprintf(&body, "  - %s: %s\n", f, describe(f))
	}
	fmt.Fprintf(&body, "\nIncome: %.2f\nExpenses: %.2f\nSavings rate: %.1f%%\nRunway: %.1f days\n",
		snap.Metrics.Income, snap.Metrics.Expenses, snap.Metrics.SavingsRate, snap.Metrics.RunwayDays)
	body.WriteString("\nAsk your assistant for a recommendation before any large expense.\n")
	e.Text = []byte(body.String())
	return e
}

func describe(f models.Flag) string {
	switch f {
	case models.FlagCriticalLowSavings:
		return "savings rate is below 10% of income"
	case models.FlagLowRunway:
		return "savings cover less than 30 days of expenses"
	case models.FlagNegativeCashflow:
		return "expenses exceed income"
	default:
		return string(f)
	}
}
