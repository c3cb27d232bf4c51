package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to no_show", StatusPending, StatusNoShow, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"pending to in_progress", StatusPending, StatusInProgress, false},
		{"confirmed to in_progress", StatusConfirmed, StatusInProgress, true},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to no_show", StatusConfirmed, StatusNoShow, true},
		{"confirmed to pending", StatusConfirmed, StatusPending, false},
		{"in_progress to completed", StatusInProgress, StatusCompleted, true},
		{"in_progress to no_show", StatusInProgress, StatusNoShow, false},
		{"completed is terminal", StatusCompleted, StatusConfirmed, false},
		{"no_show is terminal", StatusNoShow, StatusConfirmed, false},
		{"cancelled is terminal", StatusCancelledByClient, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidStatusTransition(tt.from, tt.to))
		})
	}
}

func TestAppointmentIsActive(t *testing.T) {
	active := []AppointmentStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted}
	for _, status := range active {
		appt := Appointment{Status: status}
		assert.True(t, appt.IsActive(), "status %s must occupy the slot", status)
	}

	inactive := []AppointmentStatus{StatusCancelledByClient, StatusCancelledBySalon, StatusNoShow}
	for _, status := range inactive {
		appt := Appointment{Status: status}
		assert.False(t, appt.IsActive(), "status %s must free the slot", status)
	}
}

func TestAppointmentCanBeCancelled(t *testing.T) {
	cancellable := []AppointmentStatus{StatusPending, StatusConfirmed}
	for _, status := range cancellable {
		appt := Appointment{Status: status}
		assert.True(t, appt.CanBeCancelled(), "status %s", status)
	}

	notCancellable := []AppointmentStatus{
		StatusInProgress, StatusCompleted, StatusNoShow,
		StatusCancelledByClient, StatusCancelledBySalon,
	}
	for _, status := range notCancellable {
		appt := Appointment{Status: status}
		assert.False(t, appt.CanBeCancelled(), "status %s", status)
	}
}

func TestAppointmentEndTime(t *testing.T) {
	appt := Appointment{StartTime: "10:30", DurationMinutes: 45}

	end, err := appt.EndTime()
	require.NoError(t, err)
	assert.Equal(t, "11:15", end.String())

	// Окончание за пределами суток
	appt = Appointment{StartTime: "23:30", DurationMinutes: 60}
	_, err = appt.EndTime()
	require.Error(t, err)
}
