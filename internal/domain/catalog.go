package domain

import "time"

// SalonService услуга из каталога салона
type SalonService struct {
	ID              int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
