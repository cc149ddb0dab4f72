// Package ambient runs the scheduled rule check that alerts the user when
// flags fire without waiting for a question.
package ambient

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/ambient-finance/internal/models"
)

const checkTimeout = 30 * time.Second

// Overviewer computes a fresh snapshot
type Overviewer interface {
	Overview(ctx context.Context, mode string) (models.Snapshot, error)
}

// Notifier delivers an alert for raised flags
type Notifier interface {
	SendFlagAlert(to, name string, snap models.Snapshot) error
}

// Monitor periodically evaluates the rule engine and alerts on flags
type Monitor struct {
	svc        Overviewer
	notifier   Notifier
	recipient  string
	log        *logrus.Logger
	cron       *cron.Cron
	lastAlerts string
}

// NewMonitor creates a monitor. notifier may be nil, in which case flags are only logged.
// recipient overrides the profile email when set.
func NewMonitor(svc Overviewer, notifier Notifier, recipient string, log *logrus.Logger) *Monitor {
	return &Monitor{
		svc:       svc,
		notifier:  notifier,
		recipient: recipient,
		log:       log,
		cron:      cron.New(),
	}
}

// Start schedules the check and begins running it in the background
func (m *Monitor) Start(schedule string) error {
	if _, err := m.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
		if _, err := m.Check(ctx); err != nil {
			m.log.Errorf("Ambient check failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid ambient schedule %q: %w", schedule, err)
	}
	m.cron.Start()
	m.log.Infof("Ambient monitor scheduled: %s", schedule)
	return nil
}

// Stop halts the scheduler and waits for a running check to finish
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
}

// Check runs one evaluation and returns the flags raised. An alert is sent only
// when the set of flags differs from the previous alert.
func (m *Monitor) Check(ctx context.Context) ([]models.Flag, error) {
	snap, err := m.svc.Overview(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to compute overview: %w", err)
	}

	if len(snap.Flags) == 0 {
		m.log.Debug("Ambient check: no flags raised")
		m.lastAlerts = ""
		return snap.Flags, nil
	}

	m.log.WithField("flags", snap.Flags).Warn("Ambient check raised flags")

	key := fmt.Sprint(snap.Flags)
	if key == m.lastAlerts {
		return snap.Flags, nil
	}

	to := m.recipient
	if to == "" {
		to = snap.Profile.Email
	}
	if m.notifier == nil || to == "" {
		return snap.Flags, nil
	}
	if err := m.notifier.SendFlagAlert(to, snap.Profile.Name, snap); err != nil {
		return snap.Flags, fmt.Errorf("failed to send alert: %w", err)
	}
	m.lastAlerts = key
	return snap.Flags, nil
}
