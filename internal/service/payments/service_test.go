package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	invoiceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/invoice"
	paymentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-SalonService/internal/service/payments/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type fakePaymentRepo struct {
	payments    map[int64]*domain.Payment
	refundedIDs []int64
}

func newFakePaymentRepo(payments ...*domain.Payment) *fakePaymentRepo {
	repo := &fakePaymentRepo{payments: make(map[int64]*domain.Payment)}
	for _, p := range payments {
		repo.payments[p.ID] = p
	}
	return repo
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	created := *p
	created.ID = int64(len(f.payments) + 1)
	f.payments[created.ID] = &created
	return &created, nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakePaymentRepo) ListByInvoice(ctx context.Context, invoiceID int64) ([]*domain.Payment, error) {
	return nil, nil
}

func (f *fakePaymentRepo) MarkRefunded(ctx context.Context, id int64) error {
	f.refundedIDs = append(f.refundedIDs, id)
	return nil
}

type fakeInvoiceRepo struct {
	invoices    map[int64]*domain.Invoice
	paidIDs     []int64
	reopenedIDs []int64
}

func newFakeInvoiceRepo(invoices ...*domain.Invoice) *fakeInvoiceRepo {
	repo := &fakeInvoiceRepo{invoices: make(map[int64]*domain.Invoice)}
	for _, inv := range invoices {
		repo.invoices[inv.ID] = inv
	}
	return repo
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, invoiceRepo.ErrInvoiceNotFound
	}
	return inv, nil
}

func (f *fakeInvoiceRepo) MarkPaid(ctx context.Context, id int64) error {
	f.paidIDs = append(f.paidIDs, id)
	return nil
}

func (f *fakeInvoiceRepo) Reopen(ctx context.Context, id int64) error {
	f.reopenedIDs = append(f.reopenedIDs, id)
	return nil
}

type fakeGateway struct {
	chargeCalls   int
	chargedAmount int64
	chargeErr     error
	refundCalls   int
	refundedID    string
	refundErr     error
}

func (f *fakeGateway) Charge(amountMinor int64, currency string, description string) (string, error) {
	f.chargeCalls++
	f.chargedAmount = amountMinor
	if f.chargeErr != nil {
		return "", f.chargeErr
	}
	return "pi_test_1", nil
}

func (f *fakeGateway) Refund(intentID string) error {
	f.refundCalls++
	f.refundedID = intentID
	return f.refundErr
}

type fakeAuditRecorder struct {
	actions []string
}

func (f *fakeAuditRecorder) Record(ctx context.Context, actorID int64, action, entityType, entityID string, detail *string) error {
	f.actions = append(f.actions, action)
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

func newTestService(pr *fakePaymentRepo, ir *fakeInvoiceRepo, gw *fakeGateway, audit *fakeAuditRecorder) *Service {
	return NewService(pr, ir, gw, audit, fakeTxManager{}, noopLogger{})
}

func TestCapture_CashPayment(t *testing.T) {
	pr := newFakePaymentRepo()
	ir := newFakeInvoiceRepo(&domain.Invoice{ID: 1, Number: "inv-1", Total: 1200, Currency: "RUB", Status: domain.InvoiceStatusIssued})
	gw := &fakeGateway{}
	audit := &fakeAuditRecorder{}
	svc := newTestService(pr, ir, gw, audit)

	resp, err := svc.Capture(context.Background(), &models.CreatePaymentRequest{UserID: 7, InvoiceID: 1, Method: "cash"})

	require.NoError(t, err)
	assert.Equal(t, "cash", resp.Method)
	assert.Equal(t, 0, gw.chargeCalls)
	assert.Equal(t, []int64{1}, ir.paidIDs)
	assert.Equal(t, []string{domain.AuditActionPaymentCaptured}, audit.actions)
}

func TestCapture_CardPaymentChargesGateway(t *testing.T) {
	pr := newFakePaymentRepo()
	ir := newFakeInvoiceRepo(&domain.Invoice{ID: 1, Number: "inv-1", Total: 1200.50, Currency: "RUB", Status: domain.InvoiceStatusIssued})
	gw := &fakeGateway{}
	audit := &fakeAuditRecorder{}
	svc := newTestService(pr, ir, gw, audit)

	_, err := svc.Capture(context.Background(), &models.CreatePaymentRequest{UserID: 7, InvoiceID: 1, Method: "card"})

	require.NoError(t, err)
	assert.Equal(t, 1, gw.chargeCalls)
	assert.Equal(t, int64(120050), gw.chargedAmount)

	saved := pr.payments[1]
	require.NotNil(t, saved.GatewayIntentID)
	assert.Equal(t, "pi_test_1", *saved.GatewayIntentID)
}

func TestCapture_DeclinedCharge(t *testing.T) {
	pr := newFakePaymentRepo()
	ir := newFakeInvoiceRepo(&domain.Invoice{ID: 1, Number: "inv-1", Total: 1200, Currency: "RUB", Status: domain.InvoiceStatusIssued})
	gw := &fakeGateway{chargeErr: errors.New("card_declined")}
	audit := &fakeAuditRecorder{}
	svc := newTestService(pr, ir, gw, audit)

	_, err := svc.Capture(context.Background(), &models.CreatePaymentRequest{UserID: 7, InvoiceID: 1, Method: "card"})

	require.ErrorIs(t, err, ErrChargeDeclined)
	assert.Empty(t, pr.payments)
	assert.Empty(t, ir.paidIDs)
}

func TestCapture_PaidInvoiceRejected(t *testing.T) {
	pr := newFakePaymentRepo()
	ir := newFakeInvoiceRepo(&domain.Invoice{ID: 1, Number: "inv-1", Total: 1200, Currency: "RUB", Status: domain.InvoiceStatusPaid})
	gw := &fakeGateway{}
	audit := &fakeAuditRecorder{}
	svc := newTestService(pr, ir, gw, audit)

	_, err := svc.Capture(context.Background(), &models.CreatePaymentRequest{UserID: 7, InvoiceID: 1, Method: "cash"})

	require.ErrorIs(t, err, ErrInvoiceNotPayable)
	assert.Equal(t, 0, gw.chargeCalls)
}

func TestCapture_InvalidMethod(t *testing.T) {
	pr := newFakePaymentRepo()
	ir := newFakeInvoiceRepo()
	gw := &fakeGateway{}
	audit := &fakeAuditRecorder{}
	svc := newTestService(pr, ir, gw, audit)

	_, err := svc.Capture(context.Background(), &models.CreatePaymentRequest{UserID: 7, InvoiceID: 1, Method: "crypto"})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRefund_CardPaymentGoesThroughGateway(t *testing.T) {
	pr := newFakePaymentRepo(&domain.Payment{
		ID:              1,
		InvoiceID:       1,
		Method:          domain.PaymentMethodCard,
		Amount:          1200,
		Currency:        "RUB",
		Status:          domain.PaymentStatusCaptured,
		GatewayIntentID: ptr.Ptr("pi_test_1"),
	})
	ir := newFakeInvoiceRepo(&domain.Invoice{ID: 1, Status: domain.InvoiceStatusPaid})
	gw := &fakeGateway{}
	audit := &fakeAuditRecorder{}
	svc := newTestService(pr, ir, gw, audit)

	err := svc.Refund(context.Background(), 1, 7)

	require.NoError(t, err)
	assert.Equal(t, 1, gw.refundCalls)
	assert.Equal(t, "pi_test_1", gw.refundedID)
	assert.Equal(t, []int64{1}, pr.refundedIDs)
	// Счёт снова становится issued
	assert.Equal(t, []int64{1}, ir.reopenedIDs)
	assert.Equal(t, []string{domain.AuditActionPaymentRefunded}, audit.actions)
}

func TestRefund_CashPaymentSkipsGateway(t *testing.T) {
	pr := newFakePaymentRepo(&domain.Payment{
		ID:        1,
		InvoiceID: 1,
		Method:    domain.PaymentMethodCash,
		Amount:    1200,
		Currency:  "RUB",
		Status:    domain.PaymentStatusCaptured,
	})
	ir := newFakeInvoiceRepo(&domain.Invoice{ID: 1, Status: domain.InvoiceStatusPaid})
	gw := &fakeGateway{}
	audit := &fakeAuditRecorder{}
	svc := newTestService(pr, ir, gw, audit)

	err := svc.Refund(context.Background(), 1, 7)

	require.NoError(t, err)
	assert.Equal(t, 0, gw.refundCalls)
	assert.Equal(t, []int64{1}, pr.refundedIDs)
	assert.Equal(t, []int64{1}, ir.reopenedIDs)
}

func TestRefund_AlreadyRefundedRejected(t *testing.T) {
	pr := newFakePaymentRepo(&domain.Payment{
		ID:              1,
		InvoiceID:       1,
		Method:          domain.PaymentMethodCard,
		Status:          domain.PaymentStatusRefunded,
		GatewayIntentID: ptr.Ptr("pi_test_1"),
	})
	ir := newFakeInvoiceRepo()
	gw := &fakeGateway{}
	audit := &fakeAuditRecorder{}
	svc := newTestService(pr, ir, gw, audit)

	err := svc.Refund(context.Background(), 1, 7)

	require.ErrorIs(t, err, ErrCannotRefund)
	assert.Equal(t, 0, gw.refundCalls)
	assert.Empty(t, pr.refundedIDs)
	assert.Empty(t, ir.reopenedIDs)
}

func TestRefund_GatewayFailureKeepsPaymentCaptured(t *testing.T) {
	pr := newFakePaymentRepo(&domain.Payment{
		ID:              1,
		InvoiceID:       1,
		Method:          domain.PaymentMethodCard,
		Status:          domain.PaymentStatusCaptured,
		GatewayIntentID: ptr.Ptr("pi_test_1"),
	})
	ir := newFakeInvoiceRepo()
	gw := &fakeGateway{refundErr: errors.New("gateway unavailable")}
	audit := &fakeAuditRecorder{}
	svc := newTestService(pr, ir, gw, audit)

	err := svc.Refund(context.Background(), 1, 7)

	require.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, pr.refundedIDs)
	assert.Empty(t, ir.reopenedIDs)
}

func TestRefund_NotFound(t *testing.T) {
	svc := newTestService(newFakePaymentRepo(), newFakeInvoiceRepo(), &fakeGateway{}, &fakeAuditRecorder{})

	err := svc.Refund(context.Background(), 99, 7)

	require.ErrorIs(t, err, ErrPaymentNotFound)
}
