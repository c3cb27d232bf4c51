package book_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %w", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата записи не в прошлом и в пределах горизонта бронирования
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	dateOnly := truncateToDate(requestDate)
	today := truncateToDate(now)

	if dateOnly.Before(today) {
		return ErrInvalidDate
	}

	// advanceBookingDays = 0 означает отсутствие ограничения
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := today.AddDate(0, 0, advanceBookingDays)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateNotice проверяет ограничение minNoticeMinutes для записи на сегодня
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

// validateSlotFits проверяет, что слот лежит в рабочем интервале сотрудника
// и совпадает с сеткой слотов (шаг granularity от начала интервала)
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

// hasConflict проверяет пересечение слота с активными записями
// Слот расширяется на buffer с обеих сторон; пересечение только при
// строгом наложении: граничащие интервалы конфликтом не считаются
func hasConflict(startTime types.TimeString, durationMinutes, bufferMinutes int, appointments []*domain.Appointment) bool {
	paddedStart := startTime.Minutes() - bufferMinutes
	paddedEnd := startTime.Minutes() + durationMinutes + bufferMinutes

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		apptStart := appt.StartTime.Minutes()
		apptEnd := apptStart + appt.DurationMinutes

		if apptStart < paddedEnd && apptEnd > paddedStart {
			return true
		}
	}

	return false
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
