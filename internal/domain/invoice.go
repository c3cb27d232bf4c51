package domain

import "time"

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoid   InvoiceStatus = "void"
)

// Invoice счёт, выставленный по завершённой записи
type Invoice struct {
	ID            int64
	Number        string // UUID, внешний идентификатор счёта
	AppointmentID int64
	ClientID      int64

	Amount    float64 // Стоимость услуги (снапшот на момент записи)
	TaxAmount float64
	Total     float64
	Currency  string

	Status   InvoiceStatus
	IssuedAt time.Time
	PaidAt   *time.Time
	VoidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBePaid returns true if a payment can be applied to the invoice
func (i *Invoice) CanBePaid() bool {
	return i.Status == InvoiceStatusIssued
}

// CanBeVoided returns true if the invoice can be voided
// Оплаченный счёт сначала должен быть возвращён
func (i *Invoice) CanBeVoided() bool {
	return i.Status == InvoiceStatusIssued
}

// InvoicesFilter фильтр для получения счетов салона
type InvoicesFilter struct {
	ClientID  *int64
	Status    *InvoiceStatus
	StartDate *time.Time
	EndDate   *time.Time
	Limit     uint64
	Offset    uint64
}
