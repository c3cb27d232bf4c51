package reschedule_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}

	if err := req.NewStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid newStartTime: %w", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что новая дата не в прошлом и в пределах горизонта бронирования
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	dateOnly := truncateToDate(requestDate)
	today := truncateToDate(now)

	if dateOnly.Before(today) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := today.AddDate(0, 0, advanceBookingDays)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateNotice проверяет ограничение minNoticeMinutes при переносе на сегодня
func validateNotice(requestDate time.Time, startTime types.TimeString, now time.Time, minNoticeMinutes int) error {
	if !isSameDay(requestDate, now) {
		return nil
	}

	minAllowed := types.NewTimeString(now).Minutes() + minNoticeMinutes
	if startTime.Minutes() < minAllowed {
		return fmt.Errorf("%w: at least %d minutes notice required", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

// validateSlotFits проверяет, что новый слот лежит в рабочем интервале
// и совпадает с сеткой слотов
func validateSlotFits(day domain.DaySchedule, startTime types.TimeString, durationMinutes, granularityMinutes int) error {
	start := startTime.Minutes()
	end := start + durationMinutes

	for _, seg := range day.WorkingSegments() {
		segStart := seg.Start.Minutes()
		segEnd := seg.End.Minutes()

		if start >= segStart && end <= segEnd {
			if (start-segStart)%granularityMinutes != 0 {
				return fmt.Errorf("%w: startTime is not aligned to the %d-minute grid",
					ErrInvalidTimeSlot, granularityMinutes)
			}
			return nil
		}
	}

	return fmt.Errorf("%w: slot does not fit into working hours", ErrInvalidTimeSlot)
}

// truncateToDate обнуляет время, оставляя только календарную дату
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
