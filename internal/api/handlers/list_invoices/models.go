package list_invoices

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/invoices/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	userID int64,
	userRole string,
	clientIDStr string,
	statusStr string,
	fromStr string,
	toStr string,
	limitStr string,
	offsetStr string,
) (*models.ListInvoicesRequest, error) {
	req := &models.ListInvoicesRequest{
		UserID:   userID,
		UserRole: userRole,
	}

	if clientIDStr != "" {
		clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid clientId value: %w", err)
		}
		req.ClientID = &clientID
	}

	if statusStr != "" {
		status := domain.InvoiceStatus(statusStr)
		req.Status = &status
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if limitStr != "" {
		limit, err := strconv.ParseUint(limitStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid limit value: %w", err)
		}
		req.Limit = limit
	}

	if offsetStr != "" {
		offset, err := strconv.ParseUint(offsetStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid offset value: %w", err)
		}
		req.Offset = offset
	}

	return req, nil
}
