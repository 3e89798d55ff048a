package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/config"
	"github.com/mamadbah2/agripoulet/internal/service/sales"
	"github.com/mamadbah2/agripoulet/pkg/clients/webhook"
)

// Scheduler runs the recurring credit follow-up job.
type Scheduler struct {
	cron     *cron.Cron
	salesSvc *sales.Service
	notifier webhook.Client
	cfg      config.RemindersConfig
	logger   *zap.Logger
}

// New creates a scheduler. The reminder job fires on the configured cron
// expression in the configured timezone.
func New(cfg config.RemindersConfig, salesSvc *sales.Service, notifier webhook.Client, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		salesSvc: salesSvc,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Start registers and starts the reminder job.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.sendCreditReminders); err != nil {
		s.logger.Error("failed to schedule credit reminders", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sendCreditReminders() {
	window := time.Duration(s.cfg.WindowHours) * time.Hour
	due := s.salesSvc.DueCredits(window)
	if len(due) == 0 {
		s.logger.Debug("no credits due")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sent := 0
	for _, sale := range due {
		reminder := webhook.CreditReminder{
			Type:       "credit_due",
			SaleID:     sale.ID,
			ClientName: sale.ClientName,
			Total:      sale.Total,
			DueDate:    sale.DueDate,
		}
		if err := s.notifier.SendCreditReminder(ctx, reminder); err != nil {
			s.logger.Error("failed to send credit reminder",
				zap.String("sale_id", sale.ID), zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("credit reminders dispatched", zap.Int("due", len(due)), zap.Int("sent", sent))
}
