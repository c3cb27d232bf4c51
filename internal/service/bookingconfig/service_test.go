package bookingconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	configRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/bookingconfig"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingconfig/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type fakeConfigRepo struct {
	hierarchyConfig *domain.BookingConfig
	hierarchyErr    error
	deleteErr       error
	deletedEmployee *int64
	deletedService  *int64
}

func (f *fakeConfigRepo) Upsert(ctx context.Context, config *domain.BookingConfig) (*domain.BookingConfig, error) {
	saved := *config
	saved.ID = 1
	return &saved, nil
}

func (f *fakeConfigRepo) GetByEmployeeAndService(ctx context.Context, employeeID *int64, serviceID *int64) (*domain.BookingConfig, error) {
	return nil, nil
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(ctx context.Context, employeeID *int64, serviceID *int64) (*domain.BookingConfig, error) {
	if f.hierarchyErr != nil {
		return nil, f.hierarchyErr
	}
	return f.hierarchyConfig, nil
}

func (f *fakeConfigRepo) GetAll(ctx context.Context) ([]*domain.BookingConfig, error) {
	return nil, nil
}

func (f *fakeConfigRepo) DeleteByEmployeeAndService(ctx context.Context, employeeID *int64, serviceID *int64) error {
	f.deletedEmployee = employeeID
	f.deletedService = serviceID
	return f.deleteErr
}

type recordedEvent struct {
	actorID    int64
	action     string
	entityType string
	entityID   string
	detail     *string
}

type fakeAuditRecorder struct {
	events []recordedEvent
}

func (f *fakeAuditRecorder) Record(ctx context.Context, actorID int64, action, entityType, entityID string, detail *string) error {
	f.events = append(f.events, recordedEvent{actorID, action, entityType, entityID, detail})
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func newTestService(repo *fakeConfigRepo, audit *fakeAuditRecorder) *Service {
	return NewService(repo, audit, fakeTxManager{}, noopLogger{})
}

func TestSave_RecordsSavedAction(t *testing.T) {
	repo := &fakeConfigRepo{}
	audit := &fakeAuditRecorder{}
	svc := newTestService(repo, audit)

	_, err := svc.Save(context.Background(), &models.SaveConfigRequest{
		UserID:                 7,
		EmployeeID:             ptr.Ptr(int64(5)),
		SlotGranularityMinutes: 30,
		BufferMinutes:          10,
		AdvanceBookingDays:     14,
		MinNoticeMinutes:       60,
	})

	require.NoError(t, err)
	require.Len(t, audit.events, 1)
	assert.Equal(t, domain.AuditActionBookingConfigSaved, audit.events[0].action)
	assert.Equal(t, domain.AuditEntityBookingConfig, audit.events[0].entityType)
}

func TestDelete_RecordsDeletedAction(t *testing.T) {
	repo := &fakeConfigRepo{}
	audit := &fakeAuditRecorder{}
	svc := newTestService(repo, audit)

	err := svc.Delete(context.Background(), &models.DeleteConfigRequest{
		UserID:     7,
		EmployeeID: ptr.Ptr(int64(5)),
		ServiceID:  ptr.Ptr(int64(3)),
	})

	require.NoError(t, err)
	require.NotNil(t, repo.deletedEmployee)
	assert.Equal(t, int64(5), *repo.deletedEmployee)

	require.Len(t, audit.events, 1)
	assert.Equal(t, domain.AuditActionBookingConfigDeleted, audit.events[0].action)
	assert.Equal(t, domain.AuditEntityBookingConfig, audit.events[0].entityType)
	assert.Equal(t, "employee=5,service=3", audit.events[0].entityID)
}

func TestDelete_DefaultLevelEntityID(t *testing.T) {
	repo := &fakeConfigRepo{}
	audit := &fakeAuditRecorder{}
	svc := newTestService(repo, audit)

	err := svc.Delete(context.Background(), &models.DeleteConfigRequest{UserID: 7})

	require.NoError(t, err)
	require.Len(t, audit.events, 1)
	assert.Equal(t, domain.AuditActionBookingConfigDeleted, audit.events[0].action)
	assert.Equal(t, "employee=all,service=all", audit.events[0].entityID)
}

func TestGetEffective_FallsBackToDefaults(t *testing.T) {
	repo := &fakeConfigRepo{hierarchyErr: configRepo.ErrConfigNotFound}
	audit := &fakeAuditRecorder{}
	svc := newTestService(repo, audit)

	resolved, err := svc.GetEffective(context.Background(), ptr.Ptr(int64(5)), nil)

	require.NoError(t, err)
	defaults := domain.DefaultBookingConfig()
	assert.Equal(t, defaults.SlotGranularityMinutes, resolved.SlotGranularityMinutes)
	assert.Equal(t, defaults.BufferMinutes, resolved.BufferMinutes)
	assert.Equal(t, defaults.AdvanceBookingDays, resolved.AdvanceBookingDays)
	assert.Equal(t, defaults.MinNoticeMinutes, resolved.MinNoticeMinutes)
}

func TestGetEffective_ReturnsHierarchyLevel(t *testing.T) {
	repo := &fakeConfigRepo{hierarchyConfig: &domain.BookingConfig{
		ID:                     9,
		EmployeeID:             ptr.Ptr(int64(5)),
		SlotGranularityMinutes: 15,
		BufferMinutes:          5,
		AdvanceBookingDays:     7,
		MinNoticeMinutes:       120,
	}}
	audit := &fakeAuditRecorder{}
	svc := newTestService(repo, audit)

	resolved, err := svc.GetEffective(context.Background(), ptr.Ptr(int64(5)), ptr.Ptr(int64(3)))

	require.NoError(t, err)
	require.NotNil(t, resolved.EmployeeID)
	assert.Equal(t, int64(5), *resolved.EmployeeID)
	assert.Equal(t, 15, resolved.SlotGranularityMinutes)
	assert.Equal(t, 120, resolved.MinNoticeMinutes)
}
