package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Slot represents a bookable start time for a service
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// DaySlots группа слотов одного календарного дня (локальная дата салона)
// Слот принадлежит ровно одному дню - дню своего начала
type DaySlots struct {
	Date  time.Time
	Slots []Slot
}

// IsEmpty returns true if the day has no bookable slots
func (d *DaySlots) IsEmpty() bool {
	return len(d.Slots) == 0
}
