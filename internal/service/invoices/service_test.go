package invoices

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	invoiceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/invoice"
)

type fakeInvoiceRepo struct {
	invoices    map[int64]*domain.Invoice
	voidedIDs   []int64
	byAppointID map[int64]*domain.Invoice
}

func newFakeInvoiceRepo(invoices ...*domain.Invoice) *fakeInvoiceRepo {
	repo := &fakeInvoiceRepo{
		invoices:    make(map[int64]*domain.Invoice),
		byAppointID: make(map[int64]*domain.Invoice),
	}
	for _, inv := range invoices {
		repo.invoices[inv.ID] = inv
		repo.byAppointID[inv.AppointmentID] = inv
	}
	return repo
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	created := *inv
	created.ID = int64(len(f.invoices) + 1)
	f.invoices[created.ID] = &created
	f.byAppointID[created.AppointmentID] = &created
	return &created, nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, invoiceRepo.ErrInvoiceNotFound
	}
	return inv, nil
}

func (f *fakeInvoiceRepo) GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Invoice, error) {
	inv, ok := f.byAppointID[appointmentID]
	if !ok {
		return nil, invoiceRepo.ErrInvoiceNotFound
	}
	return inv, nil
}

func (f *fakeInvoiceRepo) ListWithFilter(ctx context.Context, filter domain.InvoicesFilter) ([]*domain.Invoice, error) {
	return nil, nil
}

func (f *fakeInvoiceRepo) MarkVoided(ctx context.Context, id int64) error {
	f.voidedIDs = append(f.voidedIDs, id)
	return nil
}

type fakeSettingsRepo struct {
	settings *domain.SalonSettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*domain.SalonSettings, error) {
	return f.settings, nil
}

type recordedEvent struct {
	actorID  int64
	action   string
	entityID string
}

type fakeAuditRecorder struct {
	events []recordedEvent
}

func (f *fakeAuditRecorder) Record(ctx context.Context, actorID int64, action, entityType, entityID string, detail *string) error {
	f.events = append(f.events, recordedEvent{actorID, action, entityID})
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

func newTestService(repo *fakeInvoiceRepo, audit *fakeAuditRecorder) *Service {
	settings := &fakeSettingsRepo{settings: &domain.SalonSettings{
		Name:           "Salon",
		Currency:       "RUB",
		TaxRatePercent: 20,
	}}
	return NewService(repo, settings, audit, fakeTxManager{}, noopLogger{})
}

func TestVoid_IssuedInvoice(t *testing.T) {
	repo := newFakeInvoiceRepo(&domain.Invoice{ID: 1, Number: "inv-1", Status: domain.InvoiceStatusIssued})
	audit := &fakeAuditRecorder{}
	svc := newTestService(repo, audit)

	err := svc.Void(context.Background(), 1, 7)

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.voidedIDs)
	require.Len(t, audit.events, 1)
	assert.Equal(t, domain.AuditActionInvoiceVoided, audit.events[0].action)
	assert.Equal(t, "inv-1", audit.events[0].entityID)
}

func TestVoid_PaidInvoiceRejected(t *testing.T) {
	// Оплаченный счёт аннулировать нельзя - сначала возврат платежа
	repo := newFakeInvoiceRepo(&domain.Invoice{ID: 1, Number: "inv-1", Status: domain.InvoiceStatusPaid})
	audit := &fakeAuditRecorder{}
	svc := newTestService(repo, audit)

	err := svc.Void(context.Background(), 1, 7)

	require.ErrorIs(t, err, ErrCannotVoid)
	assert.Empty(t, repo.voidedIDs)
	assert.Empty(t, audit.events)
}

func TestVoid_AlreadyVoidedRejected(t *testing.T) {
	repo := newFakeInvoiceRepo(&domain.Invoice{ID: 1, Number: "inv-1", Status: domain.InvoiceStatusVoid})
	audit := &fakeAuditRecorder{}
	svc := newTestService(repo, audit)

	err := svc.Void(context.Background(), 1, 7)

	require.ErrorIs(t, err, ErrCannotVoid)
	assert.Empty(t, repo.voidedIDs)
}

func TestVoid_NotFound(t *testing.T) {
	repo := newFakeInvoiceRepo()
	audit := &fakeAuditRecorder{}
	svc := newTestService(repo, audit)

	err := svc.Void(context.Background(), 99, 7)

	require.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestIssueForAppointment_CalculatesTax(t *testing.T) {
	repo := newFakeInvoiceRepo()
	audit := &fakeAuditRecorder{}
	svc := newTestService(repo, audit)

	appt := &domain.Appointment{ID: 5, ClientID: 3, ServicePrice: 1000}
	inv, err := svc.IssueForAppointment(context.Background(), appt, 7)

	require.NoError(t, err)
	assert.Equal(t, 1000.0, inv.Amount)
	assert.Equal(t, 200.0, inv.TaxAmount)
	assert.Equal(t, 1200.0, inv.Total)
	assert.Equal(t, "RUB", inv.Currency)
	assert.Equal(t, domain.InvoiceStatusIssued, inv.Status)
	assert.NotEmpty(t, inv.Number)
}

func TestIssueForAppointment_SecondInvoiceRejected(t *testing.T) {
	repo := newFakeInvoiceRepo(&domain.Invoice{ID: 1, AppointmentID: 5, Status: domain.InvoiceStatusIssued})
	audit := &fakeAuditRecorder{}
	svc := newTestService(repo, audit)

	appt := &domain.Appointment{ID: 5, ClientID: 3, ServicePrice: 1000}
	_, err := svc.IssueForAppointment(context.Background(), appt, 7)

	require.ErrorIs(t, err, ErrAlreadyInvoiced)
}
