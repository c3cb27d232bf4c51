package list_audit_events

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AuditEventResponse HTTP модель события аудита
type AuditEventResponse struct {
	ID         string  `json:"id"`
	ActorID    int64   `json:"actorId"`
	Action     string  `json:"action"`
	EntityType string  `json:"entityType"`
	EntityID   string  `json:"entityId"`
	Detail     *string `json:"detail,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

// AuditEventListResponse HTTP модель списка событий аудита
type AuditEventListResponse struct {
	Events []AuditEventResponse `json:"events"`
}

// ToDomainFilter формирует фильтр из query параметров
func ToDomainFilter(actorIDStr, action, entityType, fromStr, toStr, limitStr, offsetStr string) (domain.AuditFilter, error) {
	var filter domain.AuditFilter

	if actorIDStr != "" {
		actorID, err := strconv.ParseInt(actorIDStr, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid actorId value: %w", err)
		}
		filter.ActorID = &actorID
	}

	if action != "" {
		filter.Action = &action
	}

	if entityType != "" {
		filter.EntityType = &entityType
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &to
	}

	if limitStr != "" {
		limit, err := strconv.ParseUint(limitStr, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid limit value: %w", err)
		}
		filter.Limit = limit
	}

	if offsetStr != "" {
		offset, err := strconv.ParseUint(offsetStr, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid offset value: %w", err)
		}
		filter.Offset = offset
	}

	return filter, nil
}

// FromDomainEvents конвертирует события аудита в HTTP response
func FromDomainEvents(events []*domain.AuditEvent) *AuditEventListResponse {
	resp := &AuditEventListResponse{
		Events: make([]AuditEventResponse, 0, len(events)),
	}

	for _, event := range events {
		resp.Events = append(resp.Events, AuditEventResponse{
			ID:         event.ID,
			ActorID:    event.ActorID,
			Action:     event.Action,
			EntityType: event.EntityType,
			EntityID:   event.EntityID,
			Detail:     event.Detail,
			CreatedAt:  event.CreatedAt.Format(time.RFC3339),
		})
	}

	return resp
}
