package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Repository репозиторий для работы с недельными расписаниями сотрудников
// Каждый день недели хранится отдельной строкой, перерывы - в JSONB колонке
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByEmployee получает недельное расписание сотрудника
// Возвращает ErrScheduleNotFound, если для сотрудника не задано ни одного дня
func (r *Repository) GetByEmployee(ctx context.Context, employeeID int64) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"is_working",
		"start_time",
		"end_time",
		"breaks",
		"updated_at",
	).
		From("employee_schedules").
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployee - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployee - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	schedule := &domain.WeeklySchedule{
		EmployeeID: employeeID,
		Days:       make([]domain.DaySchedule, 0, 7),
	}

	for rows.Next() {
		var (
			weekday    int
			day        domain.DaySchedule
			start, end sql.NullString
			breaksRaw  []byte
			updatedAt  sql.NullTime
		)

		if err := rows.Scan(&weekday, &day.IsWorking, &start, &end, &breaksRaw, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetByEmployee - scan row: %w", ErrScanRow, err)
		}

		day.Weekday = time.Weekday(weekday)

		if start.Valid {
			ts, err := parseDBTime(start.String)
			if err != nil {
				return nil, fmt.Errorf("%w: GetByEmployee - parse start_time: %w", ErrScanRow, err)
			}
			day.StartTime = &ts
		}
		if end.Valid {
			ts, err := parseDBTime(end.String)
			if err != nil {
				return nil, fmt.Errorf("%w: GetByEmployee - parse end_time: %w", ErrScanRow, err)
			}
			day.EndTime = &ts
		}

		if len(breaksRaw) > 0 {
			if err := json.Unmarshal(breaksRaw, &day.Breaks); err != nil {
				return nil, fmt.Errorf("%w: GetByEmployee - unmarshal breaks: %w", ErrScanRow, err)
			}
		}

		if updatedAt.Valid && updatedAt.Time.After(schedule.UpdatedAt) {
			schedule.UpdatedAt = updatedAt.Time
		}

		schedule.Days = append(schedule.Days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByEmployee - rows error: %w", ErrScanRow, err)
	}

	if len(schedule.Days) == 0 {
		return nil, ErrScheduleNotFound
	}

	return schedule, nil
}

// Replace полностью заменяет недельное расписание сотрудника
// Вызывается внутри транзакции: старые дни удаляются, новые вставляются
func (r *Repository) Replace(ctx context.Context, schedule *domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("employee_schedules").
		Where(squirrel.Eq{"employee_id": schedule.EmployeeID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Replace - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: Replace - execute delete: %w", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("employee_schedules").
		Columns("employee_id", "weekday", "is_working", "start_time", "end_time", "breaks")

	for _, day := range schedule.Days {
		breaksJSON, err := json.Marshal(day.Breaks)
		if err != nil {
			return fmt.Errorf("%w: Replace - marshal breaks: %w", ErrBuildQuery, err)
		}

		insertBuilder = insertBuilder.Values(
			schedule.EmployeeID,
			int(day.Weekday),
			day.IsWorking,
			day.StartTime,
			day.EndTime,
			breaksJSON,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: Replace - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// parseDBTime обрезает секунды из представления "HH:MM:SS", которое возвращает Postgres
func parseDBTime(s string) (types.TimeString, error) {
	if len(s) >= 5 {
		s = s[:5]
	}
	return types.NewTimeStringFromString(s)
}
