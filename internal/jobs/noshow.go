package jobs

import (
	"context"
	"time"
)

// NoShowJob помечает как неявки записи, которые закончились,
// но так и не были подтверждены или завершены
type NoShowJob struct {
	apptRepo     AppointmentRepository
	settings     SettingsProvider
	graceMinutes int
	logger       Logger
}

// NewNoShowJob создает задачу отметки неявок
// graceMinutes - период ожидания после окончания записи
func NewNoShowJob(
	apptRepo AppointmentRepository,
	settings SettingsProvider,
	graceMinutes int,
	logger Logger,
) *NoShowJob {
	return &NoShowJob{
		apptRepo:     apptRepo,
		settings:     settings,
		graceMinutes: graceMinutes,
		logger:       logger,
	}
}

// Run выполняет один проход отметки неявок
func (j *NoShowJob) Run(ctx context.Context) error {
	now := time.Now()
	if settings, err := j.settings.GetDomain(ctx); err == nil {
		now = now.In(settings.Location())
	} else {
		j.logger.Warn("NoShowJob: failed to load salon settings, using server time: %v", err)
	}

	affected, err := j.apptRepo.MarkNoShows(ctx, now, j.graceMinutes)
	if err != nil {
		j.logger.Error("NoShowJob: failed to mark no-shows: %v", err)
		return err
	}

	if affected > 0 {
		j.logger.Info("NoShowJob: marked %d appointments as no-show", affected)
	}

	return nil
}
