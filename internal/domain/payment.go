package domain

import "time"

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

// IsValid returns true for a known payment method
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCash || m == PaymentMethodCard
}

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusCaptured PaymentStatus = "captured"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Payment платёж по счёту
type Payment struct {
	ID        int64
	InvoiceID int64
	Method    PaymentMethod
	Amount    float64
	Currency  string
	Status    PaymentStatus

	// Идентификатор payment intent в платёжном шлюзе (только для card)
	GatewayIntentID *string

	RefundedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanBeRefunded returns true if the payment can be refunded
func (p *Payment) CanBeRefunded() bool {
	return p.Status == PaymentStatusCaptured
}
