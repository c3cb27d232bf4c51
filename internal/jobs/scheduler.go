package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// Job единица фоновой работы
type Job interface {
	Run(ctx context.Context) error
}

// Scheduler запускает фоновые задачи по cron-расписанию
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	logger  Logger
}

// NewScheduler создает планировщик фоновых задач
func NewScheduler(jobTimeout time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		timeout: jobTimeout,
		logger:  logger,
	}
}

// AddJob регистрирует задачу с расписанием в формате cron
// Примеры: "@every 1m", "*/5 * * * *"
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := job.Run(ctx); err != nil {
			s.logger.Error("Scheduler: job %s failed: %v", name, err)
		}
	})
	if err != nil {
		return err
	}

	s.logger.Info("Scheduler: job %s registered with schedule %q", name, schedule)
	return nil
}

// Start запускает планировщик
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler: started")
}

// Stop останавливает планировщик и дожидается завершения запущенных задач
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler: stopped")
}
