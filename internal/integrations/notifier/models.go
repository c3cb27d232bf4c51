package notifier

// Message уведомление для отправки клиенту или сотруднику
type Message struct {
	UserID  int64  `json:"user_id"`
	Event   string `json:"event"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// События, по которым сервис рассылает уведомления
const (
	EventAppointmentBooked      = "appointment.booked"
	EventAppointmentRescheduled = "appointment.rescheduled"
	EventAppointmentCancelled   = "appointment.cancelled"
	EventAppointmentReminder    = "appointment.reminder"
)
