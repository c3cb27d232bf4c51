package domain

// Default booking configuration values
const (
	DefaultSlotGranularityMinutes = 15
	DefaultBufferMinutes          = 0
	DefaultAdvanceBookingDays     = 60 // 0 = unlimited
	DefaultMinNoticeMinutes       = 60 // 1 hour
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 120
	MinBufferMinutes          = 0
	MaxBufferMinutes          = 120
	MinAdvanceBookingDays     = 0
	MaxAdvanceBookingDays     = 365
	MinNoticeMinutesLow       = 0
	MinNoticeMinutesHigh      = 10080 // 1 week

	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500

	// Максимальная длина диапазона дат в запросе доступных слотов
	MaxAvailabilityRangeDays = 31
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных записей
// Используется для фильтрации при подсчёте занятости слотов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByClient,
	StatusCancelledBySalon,
	StatusNoShow,
}

// ActiveStatuses список статусов активных записей
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
