package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type fakeApptRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeApptRepo) GetWithFilter(_ context.Context, _ domain.SalonAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, f.err
}

type fakeScheduleRepo struct {
	schedule *domain.WeeklySchedule
	err      error
}

func (f *fakeScheduleRepo) GetByEmployee(_ context.Context, _ int64) (*domain.WeeklySchedule, error) {
	return f.schedule, f.err
}

type fakeUserRepo struct {
	employee *domain.User
	err      error
}

func (f *fakeUserRepo) GetEmployeeByID(_ context.Context, _ int64) (*domain.User, error) {
	return f.employee, f.err
}

type fakeCatalogRepo struct {
	service *domain.SalonService
	err     error
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, _ int64) (*domain.SalonService, error) {
	return f.service, f.err
}

type fakeConfigResolver struct {
	config *domain.BookingConfig
}

func (f *fakeConfigResolver) Resolve(_ context.Context, _ *int64, _ *int64) (*domain.BookingConfig, error) {
	return f.config, nil
}

type fakeSettings struct {
	settings *domain.SalonSettings
}

func (f *fakeSettings) GetDomain(_ context.Context) (*domain.SalonSettings, error) {
	return f.settings, nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func timePtr(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

// fullWeekSchedule расписание 09:00-13:00 на каждый день недели
func fullWeekSchedule(employeeID int64) *domain.WeeklySchedule {
	days := make([]domain.DaySchedule, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		days = append(days, domain.DaySchedule{
			Weekday:   wd,
			IsWorking: true,
			StartTime: timePtr("09:00"),
			EndTime:   timePtr("13:00"),
		})
	}
	return &domain.WeeklySchedule{EmployeeID: employeeID, Days: days}
}

func newTestUseCase(
	appts *fakeApptRepo,
	schedules *fakeScheduleRepo,
	config *domain.BookingConfig,
	now time.Time,
) *UseCase {
	uc := NewUseCase(
		appts,
		schedules,
		&fakeUserRepo{employee: &domain.User{ID: 2, Role: domain.RoleEmployee, IsActive: true}},
		&fakeCatalogRepo{service: &domain.SalonService{ID: 3, Name: "Haircut", DurationMinutes: 60, IsActive: true}},
		&fakeConfigResolver{config: config},
		&fakeSettings{settings: &domain.SalonSettings{Timezone: "UTC", Currency: "RUB"}},
		noopLogger{},
	)
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestExecuteGeneratesSlots(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	config := &domain.BookingConfig{
		SlotGranularityMinutes: 60,
		BufferMinutes:          0,
		AdvanceBookingDays:     30,
		MinNoticeMinutes:       0,
	}
	uc := newTestUseCase(&fakeApptRepo{}, &fakeScheduleRepo{schedule: fullWeekSchedule(2)}, config, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 2,
		ServiceID:  3,
		FromDate:   tomorrow,
		ToDate:     tomorrow,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	// Окно 09:00-13:00, услуга 60 минут, шаг 60: четыре слота
	got := make([]string, 0, len(resp.Days[0].Slots))
	for _, slot := range resp.Days[0].Slots {
		got = append(got, slot.StartTime.String())
	}
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00"}, got)
}

func TestExecuteExcludesBusySlots(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	config := &domain.BookingConfig{
		SlotGranularityMinutes: 60,
		BufferMinutes:          0,
		AdvanceBookingDays:     30,
	}
	appts := &fakeApptRepo{appointments: []*domain.Appointment{
		{
			EmployeeID:      2,
			AppointmentDate: tomorrow,
			StartTime:       "10:00",
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		},
		// Отменённая запись слот не занимает
		{
			EmployeeID:      2,
			AppointmentDate: tomorrow,
			StartTime:       "11:00",
			DurationMinutes: 60,
			Status:          domain.StatusCancelledByClient,
		},
	}}
	uc := newTestUseCase(appts, &fakeScheduleRepo{schedule: fullWeekSchedule(2)}, config, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 2,
		ServiceID:  3,
		FromDate:   tomorrow,
		ToDate:     tomorrow,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	got := make([]string, 0, len(resp.Days[0].Slots))
	for _, slot := range resp.Days[0].Slots {
		got = append(got, slot.StartTime.String())
	}
	assert.Equal(t, []string{"09:00", "11:00", "12:00"}, got)
}

func TestExecuteBufferWidensConflict(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	config := &domain.BookingConfig{
		SlotGranularityMinutes: 60,
		BufferMinutes:          15,
		AdvanceBookingDays:     30,
	}
	appts := &fakeApptRepo{appointments: []*domain.Appointment{
		{
			EmployeeID:      2,
			AppointmentDate: tomorrow,
			StartTime:       "10:00",
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		},
	}}
	uc := newTestUseCase(appts, &fakeScheduleRepo{schedule: fullWeekSchedule(2)}, config, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 2,
		ServiceID:  3,
		FromDate:   tomorrow,
		ToDate:     tomorrow,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	// Буфер 15 минут вокруг занятого 10:00-11:00 выбивает и 09:00, и 11:00
	got := make([]string, 0, len(resp.Days[0].Slots))
	for _, slot := range resp.Days[0].Slots {
		got = append(got, slot.StartTime.String())
	}
	assert.Equal(t, []string{"12:00"}, got)
}

func TestExecuteMinNoticeForToday(t *testing.T) {
	// Сегодня 10:30, minNotice 60: слоты раньше 11:30 недоступны
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	config := &domain.BookingConfig{
		SlotGranularityMinutes: 60,
		AdvanceBookingDays:     30,
		MinNoticeMinutes:       60,
	}
	uc := newTestUseCase(&fakeApptRepo{}, &fakeScheduleRepo{schedule: fullWeekSchedule(2)}, config, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 2,
		ServiceID:  3,
		FromDate:   today,
		ToDate:     today,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	got := make([]string, 0, len(resp.Days[0].Slots))
	for _, slot := range resp.Days[0].Slots {
		got = append(got, slot.StartTime.String())
	}
	assert.Equal(t, []string{"12:00"}, got)
}

func TestExecuteClampsRangeToHorizon(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	config := &domain.BookingConfig{
		SlotGranularityMinutes: 60,
		AdvanceBookingDays:     3,
	}
	uc := newTestUseCase(&fakeApptRepo{}, &fakeScheduleRepo{schedule: fullWeekSchedule(2)}, config, now)

	// Запрошено 10 дней, горизонт 3: сегодня + 3 дня
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 2,
		ServiceID:  3,
		FromDate:   now,
		ToDate:     now.AddDate(0, 0, 10),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Days, 4)
}

func TestExecuteEntireRangeInPast(t *testing.T) {
	now := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	past := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	config := domain.DefaultBookingConfig()
	uc := newTestUseCase(&fakeApptRepo{}, &fakeScheduleRepo{schedule: fullWeekSchedule(2)}, config, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 2,
		ServiceID:  3,
		FromDate:   past,
		ToDate:     past.AddDate(0, 0, 2),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Days)
}

func TestExecuteNoScheduleMeansNoSlots(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	config := domain.DefaultBookingConfig()
	uc := newTestUseCase(
		&fakeApptRepo{},
		&fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound},
		config,
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 2,
		ServiceID:  3,
		FromDate:   tomorrow,
		ToDate:     tomorrow.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)
	assert.Empty(t, resp.Days[0].Slots)
	assert.Empty(t, resp.Days[1].Slots)
}

func TestExecuteEmployeeNotFound(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	uc := NewUseCase(
		&fakeApptRepo{},
		&fakeScheduleRepo{schedule: fullWeekSchedule(2)},
		&fakeUserRepo{err: userRepo.ErrUserNotFound},
		&fakeCatalogRepo{service: &domain.SalonService{ID: 3, DurationMinutes: 60, IsActive: true}},
		&fakeConfigResolver{config: domain.DefaultBookingConfig()},
		&fakeSettings{settings: &domain.SalonSettings{Timezone: "UTC"}},
		noopLogger{},
	)
	uc.timeProvider = &fixedTime{now: now}

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 99,
		ServiceID:  3,
		FromDate:   now,
		ToDate:     now,
	})
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestExecuteInactiveService(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	uc := NewUseCase(
		&fakeApptRepo{},
		&fakeScheduleRepo{schedule: fullWeekSchedule(2)},
		&fakeUserRepo{employee: &domain.User{ID: 2, Role: domain.RoleEmployee, IsActive: true}},
		&fakeCatalogRepo{service: &domain.SalonService{ID: 3, DurationMinutes: 60, IsActive: false}},
		&fakeConfigResolver{config: domain.DefaultBookingConfig()},
		&fakeSettings{settings: &domain.SalonSettings{Timezone: "UTC"}},
		noopLogger{},
	)
	uc.timeProvider = &fixedTime{now: now}

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 2,
		ServiceID:  3,
		FromDate:   now,
		ToDate:     now,
	})
	require.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecuteValidation(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeApptRepo{}, &fakeScheduleRepo{schedule: fullWeekSchedule(2)}, domain.DefaultBookingConfig(), now)

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{
			name: "missing employee",
			req:  Request{UserID: 1, ServiceID: 3, FromDate: now, ToDate: now},
			want: ErrInvalidInput,
		},
		{
			name: "missing service",
			req:  Request{UserID: 1, EmployeeID: 2, FromDate: now, ToDate: now},
			want: ErrInvalidInput,
		},
		{
			name: "to before from",
			req:  Request{UserID: 1, EmployeeID: 2, ServiceID: 3, FromDate: now, ToDate: now.AddDate(0, 0, -1)},
			want: ErrInvalidDateRange,
		},
		{
			name: "range too wide",
			req:  Request{UserID: 1, EmployeeID: 2, ServiceID: 3, FromDate: now, ToDate: now.AddDate(0, 2, 0)},
			want: ErrRangeTooWide,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
