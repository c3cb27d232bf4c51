package schedules

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/internal/service/schedules/models"
)

// Service сервис для работы с расписаниями сотрудников
type Service struct {
	scheduleRepo  ScheduleRepository
	userRepo      UserRepository
	auditRecorder AuditRecorder
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	userRepo UserRepository,
	auditRecorder AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:  scheduleRepo,
		userRepo:      userRepo,
		auditRecorder: auditRecorder,
		txManager:     txManager,
		logger:        logger,
	}
}

// GetByEmployee получает недельное расписание сотрудника
func (s *Service) GetByEmployee(ctx context.Context, employeeID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetByEmployee: fetching schedule for employee=%d", employeeID)

	if _, err := s.userRepo.GetEmployeeByID(ctx, employeeID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetByEmployee: employee=%d not found", employeeID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("GetByEmployee: failed to check employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: GetByEmployee - user repository error: %w", ErrInternal, err)
	}

	schedule, err := s.scheduleRepo.GetByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetByEmployee: schedule for employee=%d not found", employeeID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetByEmployee: repository error for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: GetByEmployee - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetByEmployee: successfully fetched schedule for employee=%d", employeeID)
	return models.FromDomainSchedule(schedule), nil
}

// Update полностью заменяет недельное расписание сотрудника
// Сотрудник может менять только своё расписание, администратор - любое
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating schedule for employee=%d by user=%d", req.EmployeeID, req.UserID)

	if req.UserRole != string(domain.RoleAdmin) && req.UserID != req.EmployeeID {
		s.logger.Warn("Update: access denied for user=%d to schedule of employee=%d", req.UserID, req.EmployeeID)
		return nil, ErrAccessDenied
	}

	if _, err := s.userRepo.GetEmployeeByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Update: employee=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("Update: failed to check employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: Update - user repository error: %w", ErrInternal, err)
	}

	schedule, err := validateAndConvert(req)
	if err != nil {
		s.logger.Warn("Update: invalid schedule for employee=%d: %v", req.EmployeeID, err)
		return nil, err
	}

	// Замена расписания и запись в журнал аудита выполняются в одной транзакции
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.scheduleRepo.Replace(ctx, schedule); err != nil {
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}
		return s.auditRecorder.Record(ctx, req.UserID, domain.AuditActionScheduleUpdated,
			domain.AuditEntitySchedule, fmt.Sprintf("%d", req.EmployeeID), nil)
	})
	if err != nil {
		s.logger.Error("Update: transaction failed for employee=%d: %v", req.EmployeeID, err)
		return nil, err
	}

	updated, err := s.scheduleRepo.GetByEmployee(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("Update: failed to fetch updated schedule for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: Update - fetch updated schedule: %w", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated schedule for employee=%d", req.EmployeeID)
	return models.FromDomainSchedule(updated), nil
}
