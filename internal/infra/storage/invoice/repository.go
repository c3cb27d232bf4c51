package invoice

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var invoiceColumns = []string{
	"id",
	"number",
	"appointment_id",
	"client_id",
	"amount",
	"tax_amount",
	"total",
	"currency",
	"status",
	"issued_at",
	"paid_at",
	"voided_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со счетами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория счетов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый счёт
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoices").
		Columns(
			"number",
			"appointment_id",
			"client_id",
			"amount",
			"tax_amount",
			"total",
			"currency",
			"status",
			"issued_at",
		).
		Values(
			inv.Number,
			inv.AppointmentID,
			inv.ClientID,
			inv.Amount,
			inv.TaxAmount,
			inv.Total,
			inv.Currency,
			inv.Status,
			inv.IssuedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&inv.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	return inv, nil
}

// GetByID получает счёт по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByNumber получает счёт по внешнему номеру (UUID)
func (r *Repository) GetByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	return r.getOne(ctx, squirrel.Eq{"number": number}, "GetByNumber")
}

// GetByAppointmentID получает счёт по ID записи
func (r *Repository) GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Invoice, error) {
	return r.getOne(ctx, squirrel.Eq{"appointment_id": appointmentID}, "GetByAppointmentID")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(invoiceColumns...).
		From("invoices").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	inv, err := r.scanInvoice(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan invoice: %w", ErrScanRow, op, err)
	}

	return inv, nil
}

// ListWithFilter получает счета с фильтрацией по клиенту, статусу и периоду выставления
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.InvoicesFilter) ([]*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(invoiceColumns...).
		From("invoices").
		OrderBy("issued_at DESC")

	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"issued_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"issued_at": *filter.EndDate})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	invoices := make([]*domain.Invoice, 0)

	for rows.Next() {
		inv, err := r.scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithFilter - scan row: %w", ErrScanRow, err)
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - rows error: %w", ErrScanRow, err)
	}

	return invoices, nil
}

// MarkPaid помечает счёт оплаченным
func (r *Repository) MarkPaid(ctx context.Context, id int64) error {
	return r.setStatus(ctx, id, domain.InvoiceStatusPaid, "paid_at", "MarkPaid")
}

// MarkVoided помечает счёт аннулированным
func (r *Repository) MarkVoided(ctx context.Context, id int64) error {
	return r.setStatus(ctx, id, domain.InvoiceStatusVoid, "voided_at", "MarkVoided")
}

// Reopen возвращает счёт в статус issued после возврата платежа
func (r *Repository) Reopen(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("invoices").
		Set("status", domain.InvoiceStatusIssued).
		Set("paid_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reopen - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reopen - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reopen - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrInvoiceNotFound
	}

	return nil
}

func (r *Repository) setStatus(ctx context.Context, id int64, status domain.InvoiceStatus, tsColumn, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("invoices").
		Set("status", status).
		Set(tsColumn, squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrInvoiceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var inv domain.Invoice
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&inv.ID,
		&inv.Number,
		&inv.AppointmentID,
		&inv.ClientID,
		&inv.Amount,
		&inv.TaxAmount,
		&inv.Total,
		&inv.Currency,
		&inv.Status,
		&inv.IssuedAt,
		&inv.PaidAt,
		&inv.VoidedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	return &inv, nil
}
