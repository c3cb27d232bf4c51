package book_appointment

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func timePtr(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func TestValidateRequest(t *testing.T) {
	valid := Request{
		ClientID:   1,
		EmployeeID: 2,
		ServiceID:  3,
		Date:       time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
	}

	t.Run("valid request", func(t *testing.T) {
		req := valid
		require.NoError(t, validateRequest(&req))
	})

	t.Run("missing client", func(t *testing.T) {
		req := valid
		req.ClientID = 0
		require.ErrorIs(t, validateRequest(&req), ErrInvalidInput)
	})

	t.Run("missing date", func(t *testing.T) {
		req := valid
		req.Date = time.Time{}
		require.ErrorIs(t, validateRequest(&req), ErrInvalidInput)
	})

	t.Run("malformed start time", func(t *testing.T) {
		req := valid
		req.StartTime = "25:99"
		require.ErrorIs(t, validateRequest(&req), ErrInvalidInput)
	})

	t.Run("notes too long", func(t *testing.T) {
		req := valid
		req.Notes = ptr.Ptr(strings.Repeat("a", domain.MaxNotesLength+1))
		require.ErrorIs(t, validateRequest(&req), ErrInvalidInput)
	})
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("today is allowed", func(t *testing.T) {
		require.NoError(t, validateDate(now, now, 30))
	})

	t.Run("past date", func(t *testing.T) {
		yesterday := now.AddDate(0, 0, -1)
		require.ErrorIs(t, validateDate(yesterday, now, 30), ErrInvalidDate)
	})

	t.Run("beyond horizon", func(t *testing.T) {
		tooFar := now.AddDate(0, 0, 31)
		require.ErrorIs(t, validateDate(tooFar, now, 30), ErrDateTooFarInFuture)
	})

	t.Run("at the edge of horizon", func(t *testing.T) {
		edge := now.AddDate(0, 0, 30)
		require.NoError(t, validateDate(edge, now, 30))
	})

	t.Run("zero horizon is unlimited", func(t *testing.T) {
		farAway := now.AddDate(2, 0, 0)
		require.NoError(t, validateDate(farAway, now, 0))
	})
}

func TestValidateNotice(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("other day ignores notice", func(t *testing.T) {
		tomorrow := now.AddDate(0, 0, 1)
		require.NoError(t, validateNotice(tomorrow, "10:15", now, 60))
	})

	t.Run("today too late", func(t *testing.T) {
		require.ErrorIs(t, validateNotice(now, "10:30", now, 60), ErrTooLateToBook)
	})

	t.Run("today with enough notice", func(t *testing.T) {
		require.NoError(t, validateNotice(now, "11:30", now, 60))
	})

	t.Run("exactly at the notice boundary", func(t *testing.T) {
		require.NoError(t, validateNotice(now, "11:00", now, 60))
	})
}

func TestValidateSlotFits(t *testing.T) {
	day := domain.DaySchedule{
		IsWorking: true,
		StartTime: timePtr("09:00"),
		EndTime:   timePtr("18:00"),
		Breaks:    []domain.Break{{StartTime: "13:00", EndTime: "14:00"}},
	}

	t.Run("fits into a segment", func(t *testing.T) {
		require.NoError(t, validateSlotFits(day, "10:00", 60, 30))
	})

	t.Run("not aligned to the grid", func(t *testing.T) {
		require.ErrorIs(t, validateSlotFits(day, "10:10", 60, 30), ErrInvalidTimeSlot)
	})

	t.Run("overlaps a break", func(t *testing.T) {
		require.ErrorIs(t, validateSlotFits(day, "12:30", 60, 30), ErrInvalidTimeSlot)
	})

	t.Run("grid restarts after the break", func(t *testing.T) {
		require.NoError(t, validateSlotFits(day, "14:00", 60, 30))
	})

	t.Run("runs past the end of the day", func(t *testing.T) {
		require.ErrorIs(t, validateSlotFits(day, "17:30", 60, 30), ErrInvalidTimeSlot)
	})

	t.Run("day off", func(t *testing.T) {
		dayOff := domain.DaySchedule{IsWorking: false}
		require.ErrorIs(t, validateSlotFits(dayOff, "10:00", 60, 30), ErrInvalidTimeSlot)
	})
}

func TestHasConflict(t *testing.T) {
	busy := []*domain.Appointment{
		{
			StartTime:       "10:00",
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		},
		{
			StartTime:       "15:00",
			DurationMinutes: 30,
			Status:          domain.StatusCancelledByClient,
		},
	}

	t.Run("overlap", func(t *testing.T) {
		assert.True(t, hasConflict("10:30", 60, 0, busy))
	})

	t.Run("touching slots do not conflict", func(t *testing.T) {
		assert.False(t, hasConflict("11:00", 60, 0, busy))
	})

	t.Run("buffer widens the conflict window", func(t *testing.T) {
		assert.True(t, hasConflict("11:00", 60, 15, busy))
	})

	t.Run("cancelled appointment frees the slot", func(t *testing.T) {
		assert.False(t, hasConflict("15:00", 30, 0, busy))
	})
}
