package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"

	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

const reminderBatchSize = 200

type ReminderStore interface {
	ListDueForReminder(ctx context.Context, from, until time.Time, limit int) ([]*models.StudyPlan, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) (bool, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message, kind string) (*models.Notification, error)
}

// ReminderScheduler periodically notifies users about study sessions that
// start soon. Each plan is reminded at most once.
type ReminderScheduler struct {
	plans     ReminderStore
	notifier  Notifier
	log       *logger.Logger
	interval  time.Duration
	lead      time.Duration
	scheduler *gocron.Scheduler
	now       func() time.Time
}

func NewReminderScheduler(plans ReminderStore, notifier Notifier, log *logger.Logger, interval, lead time.Duration) *ReminderScheduler {
	return &ReminderScheduler{
		plans:     plans,
		notifier:  notifier,
		log:       log,
		interval:  interval,
		lead:      lead,
		scheduler: gocron.NewScheduler(time.UTC),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *ReminderScheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.interval)
		defer cancel()

		sent, err := s.RunOnce(ctx)
		if err != nil {
			s.log.Error("study reminders run failed", "error", err)
			return
		}
		if sent > 0 {
			s.log.Info("study reminders sent", "count", sent)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule study reminders: %w", err)
	}

	s.scheduler.StartAsync()
	s.log.Info("study reminder scheduler started", "interval", s.interval.String(), "lead", s.lead.String())
	return nil
}

func (s *ReminderScheduler) Stop() {
	s.scheduler.Stop()
}

// RunOnce sends reminders for every plan due within the lead window and
// returns how many were sent. The window reaches back one interval so plans
// that started since the previous run, such as a plan scheduled for the
// moment it was generated, are still reminded.
func (s *ReminderScheduler) RunOnce(ctx context.Context) (int, error) {
	now := s.now()
	plans, err := s.plans.ListDueForReminder(ctx, now.Add(-s.interval), now.Add(s.lead), reminderBatchSize)
	if err != nil {
		return 0, fmt.Errorf("list due plans: %w", err)
	}

	sent := 0
	for _, p := range plans {
		claimed, err := s.plans.MarkReminderSent(ctx, p.ID)
		if err != nil {
			s.log.Warn("claim study reminder", "plan_id", p.ID, "error", err)
			continue
		}
		if !claimed {
			continue
		}

		if _, err := s.notifier.Notify(ctx, p.UserID, "Study session soon", reminderMessage(p, now), models.NotificationStudyReminder); err != nil {
			s.log.Warn("send study reminder", "plan_id", p.ID, "user_id", p.UserID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

func reminderMessage(p *models.StudyPlan, now time.Time) string {
	minutes := int(p.ScheduledAt.Sub(now).Round(time.Minute) / time.Minute)
	if minutes <= 0 {
		return fmt.Sprintf("%q is starting now.", p.Title)
	}
	if minutes == 1 {
		return fmt.Sprintf("%q starts in 1 minute.", p.Title)
	}
	return fmt.Sprintf("%q starts in %d minutes.", p.Title, minutes)
}
