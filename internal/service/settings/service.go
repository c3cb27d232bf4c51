package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/settings"
)

// UpdateSettingsRequest запрос на обновление настроек салона
type UpdateSettingsRequest struct {
	UserID         int64   `json:"-"`
	Name           string  `json:"name"`
	Timezone       string  `json:"timezone"` // IANA, например "Europe/Moscow"
	Currency       string  `json:"currency"` // ISO 4217
	TaxRatePercent float64 `json:"taxRatePercent"`
}

// SettingsResponse ответ с настройками салона
type SettingsResponse struct {
	Name           string    `json:"name"`
	Timezone       string    `json:"timezone"`
	Currency       string    `json:"currency"`
	TaxRatePercent float64   `json:"taxRatePercent"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Service сервис для работы с настройками салона
type Service struct {
	settingsRepo  SettingsRepository
	auditRecorder AuditRecorder
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	auditRecorder AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo:  settingsRepo,
		auditRecorder: auditRecorder,
		txManager:     txManager,
		logger:        logger,
	}
}

// Get получает текущие настройки салона
func (s *Service) Get(ctx context.Context) (*SettingsResponse, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Get: salon settings not found")
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}

	return fromDomain(settings), nil
}

// GetDomain получает настройки салона в виде domain модели
// Используется внутренними компонентами (доступность, счета, джобы)
func (s *Service) GetDomain(ctx context.Context) (*domain.SalonSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("%w: GetDomain - repository error: %w", ErrInternal, err)
	}
	return settings, nil
}

// Update обновляет настройки салона
// Доступно только администраторам
func (s *Service) Update(ctx context.Context, req *UpdateSettingsRequest) (*SettingsResponse, error) {
	s.logger.Info("Update: updating salon settings by user=%d", req.UserID)

	if err := validateSettings(req); err != nil {
		s.logger.Warn("Update: invalid settings: %v", err)
		return nil, err
	}

	settings := &domain.SalonSettings{
		Name:           strings.TrimSpace(req.Name),
		Timezone:       req.Timezone,
		Currency:       strings.ToUpper(req.Currency),
		TaxRatePercent: req.TaxRatePercent,
	}

	var updated *domain.SalonSettings
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.settingsRepo.Update(ctx, settings)
		if err != nil {
			if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				return ErrSettingsNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}
		return s.auditRecorder.Record(ctx, req.UserID, domain.AuditActionSettingsUpdated,
			domain.AuditEntitySettings, "salon", nil)
	})
	if err != nil {
		if errors.Is(err, ErrSettingsNotFound) {
			return nil, err
		}
		s.logger.Error("Update: transaction failed: %v", err)
		return nil, err
	}

	s.logger.Info("Update: successfully updated salon settings")
	return fromDomain(updated), nil
}

// validateSettings проверяет поля настроек
func validateSettings(req *UpdateSettingsRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSettings)
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidSettings, req.Timezone)
	}
	if len(req.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter ISO 4217 code", ErrInvalidSettings)
	}
	if req.TaxRatePercent < 0 || req.TaxRatePercent > 100 {
		return fmt.Errorf("%w: taxRatePercent must be between 0 and 100", ErrInvalidSettings)
	}
	return nil
}

// fromDomain конвертирует domain модель в DTO
func fromDomain(s *domain.SalonSettings) *SettingsResponse {
	return &SettingsResponse{
		Name:           s.Name,
		Timezone:       s.Timezone,
		Currency:       s.Currency,
		TaxRatePercent: s.TaxRatePercent,
		UpdatedAt:      s.UpdatedAt,
	}
}
