package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
)

// ReminderJob отправляет клиентам напоминания о предстоящих записях
type ReminderJob struct {
	apptRepo       AppointmentRepository
	notifierClient NotifierClient
	settings       SettingsProvider
	leadMinutes    int
	logger         Logger
}

// NewReminderJob создает задачу напоминаний
// leadMinutes - за сколько минут до начала записи отправляется напоминание
func NewReminderJob(
	apptRepo AppointmentRepository,
	notifierClient NotifierClient,
	settings SettingsProvider,
	leadMinutes int,
	logger Logger,
) *ReminderJob {
	return &ReminderJob{
		apptRepo:       apptRepo,
		notifierClient: notifierClient,
		settings:       settings,
		leadMinutes:    leadMinutes,
		logger:         logger,
	}
}

// Run выполняет один проход: находит записи, ожидающие напоминания,
// отправляет уведомления и помечает записи как напомненные
// Отметка ставится только после успешной отправки, поэтому при сбое
// уведомителя напоминание будет повторено на следующем проходе
func (j *ReminderJob) Run(ctx context.Context) error {
	now := time.Now()
	if settings, err := j.settings.GetDomain(ctx); err == nil {
		now = now.In(settings.Location())
	} else {
		j.logger.Warn("ReminderJob: failed to load salon settings, using server time: %v", err)
	}

	due, err := j.apptRepo.GetDueForReminder(ctx, now, j.leadMinutes)
	if err != nil {
		j.logger.Error("ReminderJob: failed to fetch due appointments: %v", err)
		return err
	}

	if len(due) == 0 {
		return nil
	}

	j.logger.Info("ReminderJob: found %d appointments due for reminder", len(due))

	for _, appt := range due {
		msg := notifier.Message{
			UserID:  appt.ClientID,
			Event:   notifier.EventAppointmentReminder,
			Subject: "Напоминание о записи",
			Body: fmt.Sprintf("Напоминаем о записи на %s %s: %s",
				appt.AppointmentDate.Format(domain.DateFormat),
				appt.StartTime,
				appt.ServiceName,
			),
		}

		if err := j.notifierClient.SendWithGracefulDegradation(ctx, msg); err != nil {
			j.logger.Warn("ReminderJob: failed to notify client=%d for appointment=%d: %v",
				appt.ClientID, appt.ID, err)
			continue
		}

		if err := j.apptRepo.MarkReminded(ctx, appt.ID); err != nil {
			j.logger.Error("ReminderJob: failed to mark appointment=%d as reminded: %v", appt.ID, err)
		}
	}

	return nil
}
