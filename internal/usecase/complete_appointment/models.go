package complete_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на завершение записи
type Request struct {
	AppointmentID int64  // ID записи
	UserID        int64  // ID пользователя (из токена)
	UserRole      string // Роль пользователя (из токена)
}

// InvoiceInfo данные выставленного счёта
type InvoiceInfo struct {
	ID        int64     // ID счёта
	Number    string    // Внешний номер счёта
	Amount    float64   // Стоимость услуги
	TaxAmount float64   // Сумма налога
	Total     float64   // Итоговая сумма
	Currency  string    // Валюта
	Status    string    // Статус счёта
	IssuedAt  time.Time // Время выставления
}

// Response модель ответа с завершённой записью и счётом
type Response struct {
	AppointmentID int64       // ID записи
	Status        string      // Новый статус записи
	Invoice       InvoiceInfo // Выставленный счёт
}

func fromDomainInvoice(inv *domain.Invoice) InvoiceInfo {
	return InvoiceInfo{
		ID:        inv.ID,
		Number:    inv.Number,
		Amount:    inv.Amount,
		TaxAmount: inv.TaxAmount,
		Total:     inv.Total,
		Currency:  inv.Currency,
		Status:    string(inv.Status),
		IssuedAt:  inv.IssuedAt,
	}
}
