package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func ts(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func TestWorkingSegments(t *testing.T) {
	tests := []struct {
		name string
		day  DaySchedule
		want []WorkingSegment
	}{
		{
			name: "day off",
			day:  DaySchedule{IsWorking: false},
			want: nil,
		},
		{
			name: "working day without breaks",
			day:  DaySchedule{IsWorking: true, StartTime: ts("09:00"), EndTime: ts("18:00")},
			want: []WorkingSegment{{Start: "09:00", End: "18:00"}},
		},
		{
			name: "single break splits the day",
			day: DaySchedule{
				IsWorking: true,
				StartTime: ts("09:00"),
				EndTime:   ts("18:00"),
				Breaks:    []Break{{StartTime: "13:00", EndTime: "14:00"}},
			},
			want: []WorkingSegment{
				{Start: "09:00", End: "13:00"},
				{Start: "14:00", End: "18:00"},
			},
		},
		{
			name: "two breaks",
			day: DaySchedule{
				IsWorking: true,
				StartTime: ts("09:00"),
				EndTime:   ts("18:00"),
				Breaks: []Break{
					{StartTime: "12:00", EndTime: "12:30"},
					{StartTime: "15:00", EndTime: "15:30"},
				},
			},
			want: []WorkingSegment{
				{Start: "09:00", End: "12:00"},
				{Start: "12:30", End: "15:00"},
				{Start: "15:30", End: "18:00"},
			},
		},
		{
			name: "break at the start of the day",
			day: DaySchedule{
				IsWorking: true,
				StartTime: ts("09:00"),
				EndTime:   ts("18:00"),
				Breaks:    []Break{{StartTime: "09:00", EndTime: "10:00"}},
			},
			want: []WorkingSegment{{Start: "10:00", End: "18:00"}},
		},
		{
			name: "break outside the working window is ignored",
			day: DaySchedule{
				IsWorking: true,
				StartTime: ts("09:00"),
				EndTime:   ts("18:00"),
				Breaks:    []Break{{StartTime: "19:00", EndTime: "20:00"}},
			},
			want: []WorkingSegment{{Start: "09:00", End: "18:00"}},
		},
		{
			name: "working day without times",
			day:  DaySchedule{IsWorking: true},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.day.WorkingSegments())
		})
	}
}

func TestWeeklyScheduleDayFor(t *testing.T) {
	schedule := WeeklySchedule{
		EmployeeID: 1,
		Days: []DaySchedule{
			{Weekday: time.Monday, IsWorking: true, StartTime: ts("09:00"), EndTime: ts("18:00")},
		},
	}

	// 2026-08-31 - понедельник
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	day := schedule.DayFor(monday)
	require.True(t, day.IsWorking)
	assert.Equal(t, time.Monday, day.Weekday)

	// День, которого нет в расписании, считается нерабочим
	tuesday := monday.AddDate(0, 0, 1)
	day = schedule.DayFor(tuesday)
	assert.False(t, day.IsWorking)
	assert.Equal(t, time.Tuesday, day.Weekday)
}
