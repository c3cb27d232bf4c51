package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// CreatePaymentRequest запрос на оплату счёта
type CreatePaymentRequest struct {
	UserID    int64  `json:"-"`
	InvoiceID int64  `json:"invoiceId"`
	Method    string `json:"method"` // "cash" или "card"
}

// Response модели

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID        int64   `json:"id"`
	InvoiceID int64   `json:"invoiceId"`
	Method    string  `json:"method"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"`

	RefundedAt *string `json:"refundedAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PaymentListResponse ответ со списком платежей
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// Методы конвертации

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	resp := &PaymentResponse{
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		Method:    string(p.Method),
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	if p.RefundedAt != nil {
		refundedStr := p.RefundedAt.Format(time.RFC3339)
		resp.RefundedAt = &refundedStr
	}

	return resp
}

// FromDomainPaymentList конвертирует список domain моделей в DTO
func FromDomainPaymentList(payments []*domain.Payment) *PaymentListResponse {
	resp := &PaymentListResponse{
		Payments: make([]PaymentResponse, 0, len(payments)),
	}
	for _, p := range payments {
		if pResp := FromDomainPayment(p); pResp != nil {
			resp.Payments = append(resp.Payments, *pResp)
		}
	}
	return resp
}
