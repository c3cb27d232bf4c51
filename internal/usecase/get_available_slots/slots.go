package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// apptInterval занятый интервал существующей записи в минутах от полуночи
type apptInterval struct {
	start int
	end   int
}

// generateDaySlots генерирует доступные слоты на один день
// Кандидаты перебираются с шагом granularity внутри каждого рабочего
// интервала (рабочее окно минус перерывы). Слот доступен, если:
//   - услуга целиком помещается в рабочий интервал
//   - интервал слота, расширенный на buffer с обеих сторон, не пересекается
//     ни с одной активной записью (строгие неравенства: граничащие
//     интервалы не считаются пересечением)
//   - для сегодняшнего дня слот начинается не раньше now + minNotice
func generateDaySlots(
	day domain.DaySchedule,
	durationMinutes int,
	config *domain.BookingConfig,
	busy []apptInterval,
	minStartMinutes int, // -1, если ограничения "не раньше" нет
) []Slot {
	slots := make([]Slot, 0)

	for _, seg := range day.WorkingSegments() {
		segStart := seg.Start.Minutes()
		segEnd := seg.End.Minutes()

		for start := segStart; start+durationMinutes <= segEnd; start += config.SlotGranularityMinutes {
			if minStartMinutes >= 0 && start < minStartMinutes {
				continue
			}
			if overlapsAny(start, start+durationMinutes, config.BufferMinutes, busy) {
				continue
			}

			startTime, err := types.NewTimeStringFromMinutes(start)
			if err != nil {
				continue
			}
			slots = append(slots, Slot{
				StartTime:       startTime,
				DurationMinutes: durationMinutes,
			})
		}
	}

	return slots
}

// overlapsAny проверяет пересечение кандидата с занятыми интервалами
// Кандидат расширяется на buffer с обеих сторон; пересечение только
// при строгом наложении, граничащие интервалы допустимы
func overlapsAny(start, end, buffer int, busy []apptInterval) bool {
	paddedStart := start - buffer
	paddedEnd := end + buffer

	for _, b := range busy {
		if b.start < paddedEnd && b.end > paddedStart {
			return true
		}
	}
	return false
}

// busyIntervalsByDate группирует активные записи по дате в занятые интервалы
func busyIntervalsByDate(appointments []*domain.Appointment) map[string][]apptInterval {
	result := make(map[string][]apptInterval)

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		start := appt.StartTime.Minutes()
		key := appt.AppointmentDate.Format(domain.DateFormat)
		result[key] = append(result[key], apptInterval{
			start: start,
			end:   start + appt.DurationMinutes,
		})
	}

	return result
}

// dateOnly обнуляет время, оставляя только календарную дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
