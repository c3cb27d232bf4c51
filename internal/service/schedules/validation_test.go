package schedules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/service/schedules/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

// weekInput собирает корректное недельное расписание:
// понедельник-пятница 09:00-18:00, выходные нерабочие
func weekInput() []models.DayScheduleInput {
	days := make([]models.DayScheduleInput, 0, 7)
	for wd := 0; wd < 7; wd++ {
		if wd == 0 || wd == 6 {
			days = append(days, models.DayScheduleInput{Weekday: wd, IsWorking: false})
			continue
		}
		days = append(days, models.DayScheduleInput{
			Weekday:   wd,
			IsWorking: true,
			StartTime: ptr.Ptr("09:00"),
			EndTime:   ptr.Ptr("18:00"),
			Breaks:    []models.BreakInput{{StartTime: "13:00", EndTime: "14:00"}},
		})
	}
	return days
}

func TestValidateAndConvert(t *testing.T) {
	req := &models.UpdateScheduleRequest{EmployeeID: 2, Days: weekInput()}

	schedule, err := validateAndConvert(req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), schedule.EmployeeID)
	require.Len(t, schedule.Days, 7)
	assert.False(t, schedule.Days[0].IsWorking)
	assert.True(t, schedule.Days[1].IsWorking)
	require.Len(t, schedule.Days[1].Breaks, 1)
}

func TestValidateAndConvertErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(days []models.DayScheduleInput) []models.DayScheduleInput
	}{
		{
			name: "not seven days",
			mutate: func(days []models.DayScheduleInput) []models.DayScheduleInput {
				return days[:6]
			},
		},
		{
			name: "duplicate weekday",
			mutate: func(days []models.DayScheduleInput) []models.DayScheduleInput {
				days[6].Weekday = 0
				return days
			},
		},
		{
			name: "weekday out of range",
			mutate: func(days []models.DayScheduleInput) []models.DayScheduleInput {
				days[6].Weekday = 9
				return days
			},
		},
		{
			name: "working day without hours",
			mutate: func(days []models.DayScheduleInput) []models.DayScheduleInput {
				days[1].StartTime = nil
				return days
			},
		},
		{
			name: "day off with hours",
			mutate: func(days []models.DayScheduleInput) []models.DayScheduleInput {
				days[0].StartTime = ptr.Ptr("09:00")
				return days
			},
		},
		{
			name: "start after end",
			mutate: func(days []models.DayScheduleInput) []models.DayScheduleInput {
				days[1].StartTime = ptr.Ptr("19:00")
				return days
			},
		},
		{
			name: "malformed time",
			mutate: func(days []models.DayScheduleInput) []models.DayScheduleInput {
				days[1].StartTime = ptr.Ptr("9am")
				return days
			},
		},
		{
			name: "break outside working hours",
			mutate: func(days []models.DayScheduleInput) []models.DayScheduleInput {
				days[1].Breaks = []models.BreakInput{{StartTime: "08:00", EndTime: "08:30"}}
				return days
			},
		},
		{
			name: "overlapping breaks",
			mutate: func(days []models.DayScheduleInput) []models.DayScheduleInput {
				days[1].Breaks = []models.BreakInput{
					{StartTime: "12:00", EndTime: "13:00"},
					{StartTime: "12:30", EndTime: "14:00"},
				}
				return days
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &models.UpdateScheduleRequest{EmployeeID: 2, Days: tt.mutate(weekInput())}
			_, err := validateAndConvert(req)
			require.ErrorIs(t, err, ErrInvalidSchedule)
		})
	}
}
