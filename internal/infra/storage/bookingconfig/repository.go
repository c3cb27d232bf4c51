package bookingconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var configColumns = []string{
	"id",
	"employee_id",
	"service_id",
	"slot_granularity_minutes",
	"buffer_minutes",
	"advance_booking_days",
	"min_notice_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией бронирования
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет конфигурацию на одном уровне иерархии
// Уровень определяется парой (employeeID, serviceID), где NULL - "для всех"
func (r *Repository) Upsert(ctx context.Context, config *domain.BookingConfig) (*domain.BookingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_configs").
		Columns(
			"employee_id",
			"service_id",
			"slot_granularity_minutes",
			"buffer_minutes",
			"advance_booking_days",
			"min_notice_minutes",
		).
		Values(
			config.EmployeeID,
			config.ServiceID,
			config.SlotGranularityMinutes,
			config.BufferMinutes,
			config.AdvanceBookingDays,
			config.MinNoticeMinutes,
		).
		Suffix(`ON CONFLICT (COALESCE(employee_id, 0), COALESCE(service_id, 0)) DO UPDATE SET
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_notice_minutes = EXCLUDED.min_notice_minutes,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&config.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetByEmployeeAndService получает конфигурацию точно на указанном уровне иерархии
func (r *Repository) GetByEmployeeAndService(ctx context.Context, employeeID *int64, serviceID *int64) (*domain.BookingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("booking_configs")

	selectBuilder = whereNullable(selectBuilder, "employee_id", employeeID)
	selectBuilder = whereNullable(selectBuilder, "service_id", serviceID)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployeeAndService - build select query: %w", ErrBuildQuery, err)
	}

	var config domain.BookingConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.EmployeeID,
		&config.ServiceID,
		&config.SlotGranularityMinutes,
		&config.BufferMinutes,
		&config.AdvanceBookingDays,
		&config.MinNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployeeAndService - scan config: %w", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// Приоритет применения конфигурации:
// 1. Конфигурация для конкретной услуги у конкретного сотрудника (employeeID, serviceID)
// 2. Конфигурация сотрудника для всех услуг (employeeID, NULL)
// 3. Конфигурация услуги для всех сотрудников (NULL, serviceID)
// 4. Глобальная конфигурация салона (NULL, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, employeeID *int64, serviceID *int64) (*domain.BookingConfig, error) {
	// 1. Конкретная услуга у конкретного сотрудника
	if employeeID != nil && serviceID != nil {
		config, err := r.GetByEmployeeAndService(ctx, employeeID, serviceID)
		if err == nil {
			return config, nil
		}
		if err != ErrConfigNotFound {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 1 (employee+service): %w", ErrExecQuery, err)
		}
	}

	// 2. Конфигурация сотрудника
	if employeeID != nil {
		config, err := r.GetByEmployeeAndService(ctx, employeeID, nil)
		if err == nil {
			return config, nil
		}
		if err != ErrConfigNotFound {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 2 (employee only): %w", ErrExecQuery, err)
		}
	}

	// 3. Конфигурация услуги
	if serviceID != nil {
		config, err := r.GetByEmployeeAndService(ctx, nil, serviceID)
		if err == nil {
			return config, nil
		}
		if err != ErrConfigNotFound {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 3 (service only): %w", ErrExecQuery, err)
		}
	}

	// 4. Глобальная конфигурация салона
	config, err := r.GetByEmployeeAndService(ctx, nil, nil)
	if err == nil {
		return config, nil
	}
	if err != ErrConfigNotFound {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 4 (global): %w", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// GetAll получает все конфигурации (глобальную, по сотрудникам и услугам)
func (r *Repository) GetAll(ctx context.Context) ([]*domain.BookingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("booking_configs").
		OrderBy("employee_id ASC NULLS FIRST, service_id ASC NULLS FIRST"). // Глобальная конфигурация первой
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.BookingConfig, 0)

	for rows.Next() {
		var config domain.BookingConfig
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&config.ID,
			&config.EmployeeID,
			&config.ServiceID,
			&config.SlotGranularityMinutes,
			&config.BufferMinutes,
			&config.AdvanceBookingDays,
			&config.MinNoticeMinutes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %w", ErrScanRow, err)
		}

		config.CreatedAt = createdAt.Time
		config.UpdatedAt = updatedAt.Time

		configs = append(configs, &config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %w", ErrScanRow, err)
	}

	return configs, nil
}

// DeleteByEmployeeAndService удаляет конфигурацию на одном уровне иерархии
func (r *Repository) DeleteByEmployeeAndService(ctx context.Context, employeeID *int64, serviceID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("booking_configs")
	deleteBuilder = deleteWhereNullable(deleteBuilder, "employee_id", employeeID)
	deleteBuilder = deleteWhereNullable(deleteBuilder, "service_id", serviceID)

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByEmployeeAndService - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByEmployeeAndService - execute delete: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByEmployeeAndService - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

func whereNullable(b squirrel.SelectBuilder, column string, value *int64) squirrel.SelectBuilder {
	if value == nil {
		return b.Where(squirrel.Eq{column: nil})
	}
	return b.Where(squirrel.Eq{column: *value})
}

func deleteWhereNullable(b squirrel.DeleteBuilder, column string, value *int64) squirrel.DeleteBuilder {
	if value == nil {
		return b.Where(squirrel.Eq{column: nil})
	}
	return b.Where(squirrel.Eq{column: *value})
}
