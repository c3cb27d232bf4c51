package auditlog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// Repository репозиторий журнала аудита (append-only)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория аудита
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert добавляет событие в журнал
// Если в контексте передана активная транзакция, использует её -
// событие фиксируется атомарно вместе с изменением
func (r *Repository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("audit_events").
		Columns("id", "actor_id", "action", "entity_type", "entity_id", "detail").
		Values(event.ID, event.ActorID, event.Action, event.EntityType, event.EntityID, event.Detail).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&event.CreatedAt); err != nil {
		return fmt.Errorf("%w: Insert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// ListWithFilter получает события аудита с фильтрацией
// Сортировка - от новых к старым
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"actor_id",
		"action",
		"entity_type",
		"entity_id",
		"detail",
		"created_at",
	).
		From("audit_events").
		OrderBy("created_at DESC")

	if filter.ActorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"actor_id": *filter.ActorID})
	}
	if filter.Action != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"action": *filter.Action})
	}
	if filter.EntityType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"entity_type": *filter.EntityType})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"created_at": *filter.EndDate})
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

	events := make([]*domain.AuditEvent, 0)

	for rows.Next() {
		var event domain.AuditEvent

		err := rows.Scan(
			&event.ID,
			&event.ActorID,
			&event.Action,
			&event.EntityType,
			&event.EntityID,
			&event.Detail,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithFilter - scan row: %w", ErrScanRow, err)
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - rows error: %w", ErrScanRow, err)
	}

	return events, nil
}
