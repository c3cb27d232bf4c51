package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Service сервис журнала аудита
type Service struct {
	auditRepo AuditRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса аудита
func NewService(auditRepo AuditRepository, logger Logger) *Service {
	return &Service{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Record записывает событие в журнал аудита
// Вызывается внутри транзакции бизнес-операции: если запись в журнал
// не удалась, вся операция откатывается
func (s *Service) Record(ctx context.Context, actorID int64, action, entityType, entityID string, detail *string) error {
	event := &domain.AuditEvent{
		ID:         uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}

	if err := s.auditRepo.Insert(ctx, event); err != nil {
		s.logger.Error("Record: failed to insert audit event action=%s entity=%s/%s: %v",
			action, entityType, entityID, err)
		return fmt.Errorf("%w: Record - repository error: %w", ErrInternal, err)
	}

	return nil
}

// List получает события журнала аудита с фильтрацией
// Доступно только администраторам
func (s *Service) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEvent, error) {
	s.logger.Info("List: fetching audit events")

	if filter.Limit == 0 || filter.Limit > 200 {
		filter.Limit = 50
	}

	events, err := s.auditRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d audit events", len(events))
	return events, nil
}
