package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с настройками салона
// Таблица salon_settings содержит ровно одну строку (id = 1)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает текущие настройки салона
func (r *Repository) Get(ctx context.Context) (*domain.SalonSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"timezone",
		"currency",
		"tax_rate_percent",
		"updated_at",
	).
		From("salon_settings").
		Where("id = 1").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %w", ErrBuildQuery, err)
	}

	var settings domain.SalonSettings
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&settings.Name,
		&settings.Timezone,
		&settings.Currency,
		&settings.TaxRatePercent,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %w", ErrScanRow, err)
	}

	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Update обновляет настройки салона
func (r *Repository) Update(ctx context.Context, settings *domain.SalonSettings) (*domain.SalonSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("salon_settings").
		Set("name", settings.Name).
		Set("timezone", settings.Timezone).
		Set("currency", settings.Currency).
		Set("tax_rate_percent", settings.TaxRatePercent).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = 1").
		Suffix("RETURNING id, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&settings.ID, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}
