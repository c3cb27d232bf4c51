package schedules

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/schedules/models"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// validateAndConvert проверяет недельное расписание и конвертирует его в domain модель
// Правила:
//   - ровно 7 дней, каждый день недели встречается один раз
//   - для рабочего дня заданы startTime и endTime в формате HH:MM, startTime < endTime
//   - перерывы лежат внутри рабочего окна и попарно не пересекаются
//   - для нерабочего дня время и перерывы не задаются
func validateAndConvert(req *models.UpdateScheduleRequest) (*domain.WeeklySchedule, error) {
	if len(req.Days) != 7 {
		return nil, fmt.Errorf("%w: expected 7 days, got %d", ErrInvalidSchedule, len(req.Days))
	}

	seen := make(map[int]bool, 7)
	schedule := &domain.WeeklySchedule{
		EmployeeID: req.EmployeeID,
		Days:       make([]domain.DaySchedule, 0, 7),
	}

	for _, day := range req.Days {
		if day.Weekday < 0 || day.Weekday > 6 {
			return nil, fmt.Errorf("%w: weekday %d out of range", ErrInvalidSchedule, day.Weekday)
		}
		if seen[day.Weekday] {
			return nil, fmt.Errorf("%w: duplicate weekday %d", ErrInvalidSchedule, day.Weekday)
		}
		seen[day.Weekday] = true

		domainDay, err := validateDay(day)
		if err != nil {
			return nil, err
		}
		schedule.Days = append(schedule.Days, domainDay)
	}

	return schedule, nil
}

func validateDay(day models.DayScheduleInput) (domain.DaySchedule, error) {
	weekday := time.Weekday(day.Weekday)

	if !day.IsWorking {
		if day.StartTime != nil || day.EndTime != nil || len(day.Breaks) > 0 {
			return domain.DaySchedule{}, fmt.Errorf(
				"%w: weekday %d is not working but has working hours or breaks", ErrInvalidSchedule, day.Weekday)
		}
		return domain.DaySchedule{Weekday: weekday, IsWorking: false}, nil
	}

	if day.StartTime == nil || day.EndTime == nil {
		return domain.DaySchedule{}, fmt.Errorf(
			"%w: weekday %d is working but startTime or endTime is missing", ErrInvalidSchedule, day.Weekday)
	}

	start, err := types.NewTimeStringFromString(*day.StartTime)
	if err != nil {
		return domain.DaySchedule{}, fmt.Errorf("%w: weekday %d startTime: %w", ErrInvalidSchedule, day.Weekday, err)
	}
	end, err := types.NewTimeStringFromString(*day.EndTime)
	if err != nil {
		return domain.DaySchedule{}, fmt.Errorf("%w: weekday %d endTime: %w", ErrInvalidSchedule, day.Weekday, err)
	}
	if !start.IsBefore(end) {
		return domain.DaySchedule{}, fmt.Errorf(
			"%w: weekday %d startTime %s must be before endTime %s", ErrInvalidSchedule, day.Weekday, start, end)
	}

	breaks, err := validateBreaks(day.Weekday, start, end, day.Breaks)
	if err != nil {
		return domain.DaySchedule{}, err
	}

	return domain.DaySchedule{
		Weekday:   weekday,
		IsWorking: true,
		StartTime: &start,
		EndTime:   &end,
		Breaks:    breaks,
	}, nil
}

func validateBreaks(weekday int, winStart, winEnd types.TimeString, inputs []models.BreakInput) ([]domain.Break, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	breaks := make([]domain.Break, 0, len(inputs))
	for _, br := range inputs {
		start, err := types.NewTimeStringFromString(br.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: weekday %d break startTime: %w", ErrInvalidSchedule, weekday, err)
		}
		end, err := types.NewTimeStringFromString(br.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: weekday %d break endTime: %w", ErrInvalidSchedule, weekday, err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf(
				"%w: weekday %d break %s-%s is empty or inverted", ErrInvalidSchedule, weekday, start, end)
		}
		if start.IsBefore(winStart) || end.IsAfter(winEnd) {
			return nil, fmt.Errorf(
				"%w: weekday %d break %s-%s is outside working hours %s-%s",
				ErrInvalidSchedule, weekday, start, end, winStart, winEnd)
		}
		breaks = append(breaks, domain.Break{StartTime: start, EndTime: end})
	}

	// Проверяем попарное непересечение после сортировки по началу
	sort.Slice(breaks, func(i, j int) bool {
		return breaks[i].StartTime.IsBefore(breaks[j].StartTime)
	})
	for i := 1; i < len(breaks); i++ {
		if breaks[i].StartTime.IsBefore(breaks[i-1].EndTime) {
			return nil, fmt.Errorf(
				"%w: weekday %d breaks %s-%s and %s-%s overlap",
				ErrInvalidSchedule, weekday,
				breaks[i-1].StartTime, breaks[i-1].EndTime,
				breaks[i].StartTime, breaks[i].EndTime)
		}
	}

	return breaks, nil
}
