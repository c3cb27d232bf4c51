package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// ListInvoicesRequest запрос на получение счетов с фильтрацией
type ListInvoicesRequest struct {
	UserID   int64                 `json:"-"`
	UserRole string                `json:"-"`
	ClientID *int64                `json:"clientId,omitempty"`
	Status   *domain.InvoiceStatus `json:"status,omitempty"`
	From     *time.Time            `json:"from,omitempty"`
	To       *time.Time            `json:"to,omitempty"`
	Limit    uint64                `json:"limit,omitempty"`
	Offset   uint64                `json:"offset,omitempty"`
}

// Response модели

// InvoiceResponse ответ с данными счёта
type InvoiceResponse struct {
	ID            int64   `json:"id"`
	Number        string  `json:"number"`
	AppointmentID int64   `json:"appointmentId"`
	ClientID      int64   `json:"clientId"`
	Amount        float64 `json:"amount"`
	TaxAmount     float64 `json:"taxAmount"`
	Total         float64 `json:"total"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`

	IssuedAt time.Time `json:"issuedAt"`
	PaidAt   *string   `json:"paidAt,omitempty"`   // ISO 8601 format
	VoidedAt *string   `json:"voidedAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InvoiceListResponse ответ со списком счетов
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// Методы конвертации

// FromDomainInvoice конвертирует domain модель в DTO
func FromDomainInvoice(inv *domain.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}

	resp := &InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		AppointmentID: inv.AppointmentID,
		ClientID:      inv.ClientID,
		Amount:        inv.Amount,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		Currency:      inv.Currency,
		Status:        string(inv.Status),
		IssuedAt:      inv.IssuedAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}

	if inv.PaidAt != nil {
		paidStr := inv.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidStr
	}
	if inv.VoidedAt != nil {
		voidedStr := inv.VoidedAt.Format(time.RFC3339)
		resp.VoidedAt = &voidedStr
	}

	return resp
}

// FromDomainInvoiceList конвертирует список domain моделей в DTO
func FromDomainInvoiceList(invoices []*domain.Invoice) *InvoiceListResponse {
	resp := &InvoiceListResponse{
		Invoices: make([]InvoiceResponse, 0, len(invoices)),
	}
	for _, inv := range invoices {
		if invResp := FromDomainInvoice(inv); invResp != nil {
			resp.Invoices = append(resp.Invoices, *invResp)
		}
	}
	return resp
}
