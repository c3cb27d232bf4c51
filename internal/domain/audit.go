package domain

import "time"

// Audit actions recorded by the service
const (
	AuditActionUserRegistered       = "user.registered"
	AuditActionAppointmentBooked    = "appointment.booked"
	AuditActionAppointmentMoved     = "appointment.rescheduled"
	AuditActionAppointmentCancel    = "appointment.cancelled"
	AuditActionAppointmentStatus    = "appointment.status_changed"
	AuditActionScheduleUpdated      = "schedule.updated"
	AuditActionServiceCreated       = "service.created"
	AuditActionServiceUpdated       = "service.updated"
	AuditActionInvoiceIssued        = "invoice.issued"
	AuditActionInvoiceVoided        = "invoice.voided"
	AuditActionPaymentCaptured      = "payment.captured"
	AuditActionPaymentRefunded      = "payment.refunded"
	AuditActionBookingConfigSaved   = "booking_config.saved"
	AuditActionBookingConfigDeleted = "booking_config.deleted"
	AuditActionSettingsUpdated      = "settings.updated"
)

// Audit entity types
const (
	AuditEntityUser          = "user"
	AuditEntityAppointment   = "appointment"
	AuditEntitySchedule      = "schedule"
	AuditEntityService       = "service"
	AuditEntityInvoice       = "invoice"
	AuditEntityPayment       = "payment"
	AuditEntityBookingConfig = "booking_config"
	AuditEntitySettings      = "settings"
)

// AuditEvent запись аудита (append-only)
type AuditEvent struct {
	ID         string // UUID
	ActorID    int64
	Action     string
	EntityType string
	EntityID   string
	Detail     *string
	CreatedAt  time.Time
}

// AuditFilter фильтр для выборки событий аудита
type AuditFilter struct {
	ActorID    *int64
	Action     *string
	EntityType *string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      uint64
	Offset     uint64
}
