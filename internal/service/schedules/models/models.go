package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// BreakInput перерыв внутри рабочего дня
type BreakInput struct {
	StartTime string `json:"startTime"` // "13:00"
	EndTime   string `json:"endTime"`   // "14:00"
}

// DayScheduleInput расписание на один день недели
type DayScheduleInput struct {
	Weekday   int          `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	IsWorking bool         `json:"isWorking"`
	StartTime *string      `json:"startTime,omitempty"` // "09:00", только при isWorking
	EndTime   *string      `json:"endTime,omitempty"`   // "18:00", только при isWorking
	Breaks    []BreakInput `json:"breaks,omitempty"`
}

// UpdateScheduleRequest запрос на замену недельного расписания сотрудника
type UpdateScheduleRequest struct {
	EmployeeID int64              `json:"-"`
	UserID     int64              `json:"-"`
	UserRole   string             `json:"-"`
	Days       []DayScheduleInput `json:"days"`
}

// Response модели

// BreakResponse перерыв внутри рабочего дня
type BreakResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DayScheduleResponse расписание на один день недели
type DayScheduleResponse struct {
	Weekday   int             `json:"weekday"`
	IsWorking bool            `json:"isWorking"`
	StartTime *string         `json:"startTime,omitempty"`
	EndTime   *string         `json:"endTime,omitempty"`
	Breaks    []BreakResponse `json:"breaks,omitempty"`
}

// ScheduleResponse недельное расписание сотрудника
type ScheduleResponse struct {
	EmployeeID int64                 `json:"employeeId"`
	Days       []DayScheduleResponse `json:"days"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.WeeklySchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &ScheduleResponse{
		EmployeeID: s.EmployeeID,
		Days:       make([]DayScheduleResponse, 0, len(s.Days)),
		UpdatedAt:  s.UpdatedAt,
	}

	for _, day := range s.Days {
		dayResp := DayScheduleResponse{
			Weekday:   int(day.Weekday),
			IsWorking: day.IsWorking,
		}
		if day.StartTime != nil {
			start := day.StartTime.String()
			dayResp.StartTime = &start
		}
		if day.EndTime != nil {
			end := day.EndTime.String()
			dayResp.EndTime = &end
		}
		for _, br := range day.Breaks {
			dayResp.Breaks = append(dayResp.Breaks, BreakResponse{
				StartTime: br.StartTime.String(),
				EndTime:   br.EndTime.String(),
			})
		}
		resp.Days = append(resp.Days, dayResp)
	}

	return resp
}
