package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// UseCase use case получения доступных слотов для записи
type UseCase struct {
	apptRepo     AppointmentRepository
	scheduleRepo ScheduleRepository
	userRepo     UserRepository
	catalogRepo  CatalogRepository
	configRes    ConfigResolver
	settings     SettingsProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	userRepo UserRepository,
	catalogRepo CatalogRepository,
	configRes ConfigResolver,
	settings SettingsProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
		catalogRepo:  catalogRepo,
		configRes:    configRes,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Возвращает слоты, сгруппированные по календарным дням в таймзоне салона
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, employee=%d, service=%d, range=%s..%s",
		req.UserID, req.EmployeeID, req.ServiceID,
		req.FromDate.Format(domain.DateFormat), req.ToDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем сотрудника
	if _, err := uc.userRepo.GetEmployeeByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("GetAvailableSlots: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %w", ErrInternal, err)
	}

	// 3. Получаем услугу - её длительность определяет размер слота
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: service id=%d not found: %v", req.ServiceID, err)
		return nil, ErrServiceNotFound
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 4. Получаем действующую конфигурацию бронирования
	config, err := uc.configRes.Resolve(ctx, ptr.Ptr(req.EmployeeID), ptr.Ptr(req.ServiceID))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve config: %w", ErrInternal, err)
	}

	// 5. Текущее время в таймзоне салона - от него считаются "сегодня" и minNotice
	loc := time.UTC
	if settings, err := uc.settings.GetDomain(ctx); err == nil {
		loc = settings.Location()
	} else {
		uc.logger.Warn("GetAvailableSlots: failed to load salon settings, using UTC: %v", err)
	}
	now := uc.timeProvider.Now().In(loc)
	today := dateOnly(now)

	// 6. Ограничиваем диапазон: прошлое отбрасываем, горизонт - advanceBookingDays
	from := dateOnly(req.FromDate)
	to := dateOnly(req.ToDate)
	if from.Before(today) {
		from = today
	}
	if config.HasAdvanceBookingLimit() {
		maxDate := today.AddDate(0, 0, config.AdvanceBookingDays)
		if to.After(maxDate) {
			to = maxDate
		}
	}

	resp := &Response{
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		Days:       []DaySlots{},
	}

	// Весь запрошенный диапазон за горизонтом или в прошлом
	if to.Before(from) {
		uc.logger.Info("GetAvailableSlots: empty effective range for employee=%d", req.EmployeeID)
		return resp, nil
	}

	// 7. Недельное расписание сотрудника; без расписания доступных слотов нет
	schedule, err := uc.scheduleRepo.GetByEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetAvailableSlots: employee=%d has no schedule", req.EmployeeID)
			for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
				resp.Days = append(resp.Days, DaySlots{Date: date, Slots: []Slot{}})
			}
			return resp, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
	}

	// 8. Активные записи сотрудника за весь диапазон одним запросом
	filter := domain.SalonAppointmentsFilter{
		EmployeeID:      ptr.Ptr(req.EmployeeID),
		StartDate:       &from,
		EndDate:         &to,
		IncludeInactive: false,
	}
	appointments, err := uc.apptRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}
	busyByDate := busyIntervalsByDate(appointments)

	// 9. Генерируем слоты по каждому дню диапазона
	totalSlots := 0
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		// Для сегодняшнего дня слоты начинаются не раньше now + minNotice
		minStart := -1
		if isSameDay(date, now) {
			minStart = types.NewTimeString(now).Minutes() + config.MinNoticeMinutes
		}

		slots := generateDaySlots(
			schedule.DayFor(date),
			service.DurationMinutes,
			config,
			busyByDate[date.Format(domain.DateFormat)],
			minStart,
		)

		totalSlots += len(slots)
		resp.Days = append(resp.Days, DaySlots{Date: date, Slots: slots})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots in %d days for employee=%d, service=%d",
		totalSlots, len(resp.Days), req.EmployeeID, req.ServiceID)

	return resp, nil
}
