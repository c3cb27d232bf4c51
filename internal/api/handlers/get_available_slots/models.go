package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// DaySlotsResponse HTTP модель слотов одного дня
type DaySlotsResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// AvailableSlotsResponse HTTP модель ответа
type AvailableSlotsResponse struct {
	EmployeeID int64              `json:"employeeId"`
	ServiceID  int64              `json:"serviceId"`
	Days       []DaySlotsResponse `json:"days"`
}

// ToUseCaseRequest формирует запрос к use case из параметров запроса
func ToUseCaseRequest(userID, employeeID, serviceID int64, fromStr, toStr string) (*getAvailableSlots.Request, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}

	// Если to не указан, запрашивается один день
	to := from
	if toStr != "" {
		to, err = time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
	}

	return &getAvailableSlots.Request{
		UserID:     userID,
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		FromDate:   from,
		ToDate:     to,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		EmployeeID: resp.EmployeeID,
		ServiceID:  resp.ServiceID,
		Days:       make([]DaySlotsResponse, 0, len(resp.Days)),
	}

	for _, day := range resp.Days {
		slots := make([]SlotResponse, 0, len(day.Slots))
		for _, slot := range day.Slots {
			slots = append(slots, SlotResponse{
				StartTime:       slot.StartTime.String(),
				DurationMinutes: slot.DurationMinutes,
			})
		}
		out.Days = append(out.Days, DaySlotsResponse{
			Date:  day.Date.Format(domain.DateFormat),
			Slots: slots,
		})
	}

	return out
}
