package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Break перерыв внутри рабочего дня сотрудника
type Break struct {
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// DaySchedule расписание сотрудника на один день недели
type DaySchedule struct {
	Weekday   time.Weekday
	IsWorking bool
	// StartTime/EndTime заданы только при IsWorking = true
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Breaks    []Break
}

// WeeklySchedule недельное расписание сотрудника
type WeeklySchedule struct {
	EmployeeID int64
	Days       []DaySchedule // 7 дней, Sunday..Saturday
	UpdatedAt  time.Time
}

// DayFor возвращает расписание на день недели указанной даты
// Если день не задан, возвращает нерабочий день
func (s *WeeklySchedule) DayFor(date time.Time) DaySchedule {
	weekday := date.Weekday()
	for _, day := range s.Days {
		if day.Weekday == weekday {
			return day
		}
	}
	return DaySchedule{Weekday: weekday, IsWorking: false}
}

// WorkingSegment непрерывный рабочий интервал (рабочее окно минус перерывы)
type WorkingSegment struct {
	Start types.TimeString
	End   types.TimeString
}

// WorkingSegments возвращает рабочие интервалы дня за вычетом перерывов
// Перерывы предполагаются валидными: внутри окна и попарно непересекающимися
func (d DaySchedule) WorkingSegments() []WorkingSegment {
	if !d.IsWorking || d.StartTime == nil || d.EndTime == nil {
		return nil
	}

	segments := []WorkingSegment{{Start: *d.StartTime, End: *d.EndTime}}

	for _, br := range d.Breaks {
		var updated []WorkingSegment
		for _, seg := range segments {
			// Перерыв не задевает интервал
			if !br.StartTime.IsBefore(seg.End) || !br.EndTime.IsAfter(seg.Start) {
				updated = append(updated, seg)
				continue
			}
			if br.StartTime.IsAfter(seg.Start) {
				updated = append(updated, WorkingSegment{Start: seg.Start, End: br.StartTime})
			}
			if br.EndTime.IsBefore(seg.End) {
				updated = append(updated, WorkingSegment{Start: br.EndTime, End: seg.End})
			}
		}
		segments = updated
	}

	return segments
}
