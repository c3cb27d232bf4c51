package domain

import "time"

// BookingConfig represents the booking configuration of the salon
// Supports hierarchical configuration:
// 1. Service for a specific employee (employee_id, service_id)
// 2. Employee-wide (employee_id, NULL)
// 3. Service-wide (NULL, service_id)
// 4. Salon-wide (NULL, NULL)
type BookingConfig struct {
	ID                     int64
	EmployeeID             *int64 // NULL = config for all employees
	ServiceID              *int64 // NULL = config for all services
	SlotGranularityMinutes int
	BufferMinutes          int
	AdvanceBookingDays     int // 0 = unlimited
	MinNoticeMinutes       int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsGlobalConfig returns true if this is the salon-wide configuration
func (c *BookingConfig) IsGlobalConfig() bool {
	return c.EmployeeID == nil && c.ServiceID == nil
}

// IsEmployeeSpecific returns true if this configuration is for a specific employee
func (c *BookingConfig) IsEmployeeSpecific() bool {
	return c.EmployeeID != nil && c.ServiceID == nil
}

// IsServiceSpecific returns true if this configuration is for a specific service
func (c *BookingConfig) IsServiceSpecific() bool {
	return c.EmployeeID == nil && c.ServiceID != nil
}

// IsServiceForEmployee returns true if this configuration is for a specific
// service performed by a specific employee
func (c *BookingConfig) IsServiceForEmployee() bool {
	return c.EmployeeID != nil && c.ServiceID != nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance
// appointments can be booked
func (c *BookingConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// DefaultBookingConfig возвращает конфигурацию с дефолтными значениями
func DefaultBookingConfig() *BookingConfig {
	return &BookingConfig{
		SlotGranularityMinutes: DefaultSlotGranularityMinutes,
		BufferMinutes:          DefaultBufferMinutes,
		AdvanceBookingDays:     DefaultAdvanceBookingDays,
		MinNoticeMinutes:       DefaultMinNoticeMinutes,
	}
}
