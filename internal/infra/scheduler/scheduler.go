package scheduler

import (
	"context"
	"time"

	"lead_crm_client/internal/app"
	"lead_crm_client/internal/domain/today"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// TodayQueueScheduler periodically refreshes the due-today task queue so the
// cached view never drifts far from server state between user actions.
type TodayQueueScheduler struct {
	cronEngine   *cron.Cron
	todayService *app.TodayService
	logger       *logrus.Logger
	cronSpec     string
}

func NewTodayQueueScheduler(todayService *app.TodayService, logger *logrus.Logger, cronSpec string) *TodayQueueScheduler {
	return &TodayQueueScheduler{
		cronEngine:   cron.New(cron.WithLocation(time.Local)),
		todayService: todayService,
		logger:       logger,
		cronSpec:     cronSpec,
	}
}

func (s *TodayQueueScheduler) Start() {
	s.logger.Info("Starting today-queue refresh scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()

		view, err := s.todayService.Refresh(ctx, today.Query{})
		if err != nil {
			s.logger.Errorf("Today-queue refresh failed: %v", err)
			return
		}
		s.logger.Infof("Today-queue refreshed: %d tasks due, %d follow-up calls due",
			view.TotalTasks, view.TotalFollowUpCalls)
	})
	if err != nil {
		s.logger.Fatalf("FATAL: Could not add today-queue refresh cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Infof("Today-queue refresh scheduler started with spec %q.", s.cronSpec)
}

func (s *TodayQueueScheduler) Stop() {
	s.logger.Info("Stopping today-queue refresh scheduler...")
	ctx := s.cronEngine.Stop() // Stops new job starts, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Today-queue refresh scheduler gracefully stopped.")
}
