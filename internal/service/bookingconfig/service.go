package bookingconfig

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	configRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/bookingconfig"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingconfig/models"
)

// Service сервис для работы с конфигурацией бронирования
type Service struct {
	configRepo    ConfigRepository
	auditRecorder AuditRecorder
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	auditRecorder AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		configRepo:    configRepo,
		auditRecorder: auditRecorder,
		txManager:     txManager,
		logger:        logger,
	}
}

// Save создает или обновляет конфигурацию на одном уровне иерархии
// Доступно только администраторам
func (s *Service) Save(ctx context.Context, req *models.SaveConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Save: saving booking config employee=%v service=%v by user=%d",
		req.EmployeeID, req.ServiceID, req.UserID)

	if err := validateConfig(req); err != nil {
		s.logger.Warn("Save: invalid config: %v", err)
		return nil, err
	}

	config := &domain.BookingConfig{
		EmployeeID:             req.EmployeeID,
		ServiceID:              req.ServiceID,
		SlotGranularityMinutes: req.SlotGranularityMinutes,
		BufferMinutes:          req.BufferMinutes,
		AdvanceBookingDays:     req.AdvanceBookingDays,
		MinNoticeMinutes:       req.MinNoticeMinutes,
	}

	var saved *domain.BookingConfig
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.configRepo.Upsert(ctx, config)
		if err != nil {
			return fmt.Errorf("%w: Save - repository error: %w", ErrInternal, err)
		}
		return s.auditRecorder.Record(ctx, req.UserID, domain.AuditActionBookingConfigSaved,
			domain.AuditEntityBookingConfig, fmt.Sprintf("%d", saved.ID), nil)
	})
	if err != nil {
		s.logger.Error("Save: transaction failed: %v", err)
		return nil, err
	}

	s.logger.Info("Save: successfully saved booking config id=%d", saved.ID)
	return models.FromDomainConfig(saved), nil
}

// Resolve возвращает действующую конфигурацию для пары (сотрудник, услуга)
// с учётом иерархии приоритетов; при отсутствии настроек в БД
// возвращает конфигурацию с дефолтными значениями
func (s *Service) Resolve(ctx context.Context, employeeID *int64, serviceID *int64) (*domain.BookingConfig, error) {
	config, err := s.configRepo.GetConfigWithHierarchy(ctx, employeeID, serviceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("Resolve: no config found for employee=%v service=%v, using defaults",
				employeeID, serviceID)
			return domain.DefaultBookingConfig(), nil
		}
		s.logger.Error("Resolve: repository error: %v", err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %w", ErrInternal, err)
	}
	return config, nil
}

// GetEffective возвращает действующую конфигурацию для пары (сотрудник, услуга)
// в виде DTO для выдачи наружу
// Доступно только администраторам
func (s *Service) GetEffective(ctx context.Context, employeeID *int64, serviceID *int64) (*models.ResolvedConfigResponse, error) {
	config, err := s.Resolve(ctx, employeeID, serviceID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainResolvedConfig(config), nil
}

// GetAll получает все конфигурации бронирования
// Доступно только администраторам
func (s *Service) GetAll(ctx context.Context) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAll: fetching all booking configs")

	configs, err := s.configRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetAll: successfully fetched %d booking configs", len(configs))
	return models.FromDomainConfigList(configs), nil
}

// Delete удаляет конфигурацию на одном уровне иерархии
// Записи, созданные по прежней конфигурации, не затрагиваются
// Доступно только администраторам
func (s *Service) Delete(ctx context.Context, req *models.DeleteConfigRequest) error {
	s.logger.Info("Delete: deleting booking config employee=%v service=%v by user=%d",
		req.EmployeeID, req.ServiceID, req.UserID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.configRepo.DeleteByEmployeeAndService(ctx, req.EmployeeID, req.ServiceID); err != nil {
			if errors.Is(err, configRepo.ErrConfigNotFound) {
				return ErrConfigNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}
		entityID := fmt.Sprintf("employee=%s,service=%s", scopeLabel(req.EmployeeID), scopeLabel(req.ServiceID))
		return s.auditRecorder.Record(ctx, req.UserID, domain.AuditActionBookingConfigDeleted,
			domain.AuditEntityBookingConfig, entityID, nil)
	})
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			s.logger.Warn("Delete: booking config not found")
			return err
		}
		s.logger.Error("Delete: transaction failed: %v", err)
		return err
	}

	s.logger.Info("Delete: successfully deleted booking config")
	return nil
}

// validateConfig проверяет диапазоны параметров конфигурации
func validateConfig(req *models.SaveConfigRequest) error {
	if req.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		req.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrInvalidConfig, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}
	if req.BufferMinutes < domain.MinBufferMinutes || req.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidConfig, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}
	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays ||
		req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidConfig, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}
	if req.MinNoticeMinutes < domain.MinNoticeMinutesLow || req.MinNoticeMinutes > domain.MinNoticeMinutesHigh {
		return fmt.Errorf("%w: minNoticeMinutes must be between %d and %d",
			ErrInvalidConfig, domain.MinNoticeMinutesLow, domain.MinNoticeMinutesHigh)
	}
	return nil
}

// scopeLabel строковое представление уровня иерархии для журнала аудита
func scopeLabel(id *int64) string {
	if id == nil {
		return "all"
	}
	return strconv.FormatInt(*id, 10)
}
