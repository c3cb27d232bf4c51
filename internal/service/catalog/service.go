package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

// Service сервис для работы с каталогом услуг салона
type Service struct {
	catalogRepo   CatalogRepository
	auditRecorder AuditRecorder
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	catalogRepo CatalogRepository,
	auditRecorder AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo:   catalogRepo,
		auditRecorder: auditRecorder,
		txManager:     txManager,
		logger:        logger,
	}
}

// Create создает новую услугу в каталоге
// Доступно только администраторам
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%s by user=%d", req.Name, req.UserID)

	if err := validateService(req.Name, req.DurationMinutes, req.Price); err != nil {
		s.logger.Warn("Create: invalid service data: %v", err)
		return nil, err
	}

	svc := &domain.SalonService{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}

	var created *domain.SalonService
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.catalogRepo.Create(ctx, svc)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
		}
		return s.auditRecorder.Record(ctx, req.UserID, domain.AuditActionServiceCreated,
			domain.AuditEntityService, fmt.Sprintf("%d", created.ID), nil)
	})
	if err != nil {
		s.logger.Error("Create: transaction failed for service name=%s: %v", req.Name, err)
		return nil, err
	}

	s.logger.Info("Create: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d", id)

	svc, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// List получает список услуг каталога
// Клиенты видят только активные услуги, персонал - все
func (s *Service) List(ctx context.Context, activeOnly bool) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services, activeOnly=%t", activeOnly)

	services, err := s.catalogRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// Update обновляет услугу каталога
// Доступно только администраторам
// Деактивация услуги не затрагивает уже созданные записи
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d by user=%d", id, req.UserID)

	if err := validateService(req.Name, req.DurationMinutes, req.Price); err != nil {
		s.logger.Warn("Update: invalid service data for id=%d: %v", id, err)
		return nil, err
	}

	svc := &domain.SalonService{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        req.IsActive,
	}

	var updated *domain.SalonService
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.catalogRepo.Update(ctx, id, svc)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}
		return s.auditRecorder.Record(ctx, req.UserID, domain.AuditActionServiceUpdated,
			domain.AuditEntityService, fmt.Sprintf("%d", id), nil)
	})
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", id)
			return nil, err
		}
		s.logger.Error("Update: transaction failed for service id=%d: %v", id, err)
		return nil, err
	}

	s.logger.Info("Update: successfully updated service id=%d", id)
	return models.FromDomainService(updated), nil
}

// validateService проверяет базовые поля услуги
func validateService(name string, durationMinutes int, price float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if durationMinutes < domain.MinServiceDurationMinutes || durationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
