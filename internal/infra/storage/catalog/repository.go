package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (переиспользуем из dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий каталога: мастера, услуги и переопределения
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetProvider получает активного мастера по ID
func (r *Repository) GetProvider(ctx context.Context, providerID uuid.UUID) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "is_active").
		From("providers").
		Where(squirrel.Eq{"id": providerID, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProvider - build select query: %v", ErrBuildQuery, err)
	}

	var provider domain.Provider
	err = executor.QueryRowContext(ctx, query, args...).Scan(&provider.ID, &provider.Name, &provider.IsActive)

	if err == sql.ErrNoRows {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProvider - scan provider: %v", ErrScanRow, err)
	}

	return &provider, nil
}

// GetEffectiveService получает услугу с применёнными переопределениями мастера
// Длительность и цена: COALESCE(переопределение мастера, базовое значение)
func (r *Repository) GetEffectiveService(ctx context.Context, providerID, serviceID uuid.UUID) (*domain.EffectiveService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.name",
		"COALESCE(ps.custom_duration, s.duration_minutes) AS duration_minutes",
		"COALESCE(ps.custom_price, s.price) AS price",
	).
		From("services s").
		LeftJoin("provider_services ps ON s.id = ps.service_id AND ps.provider_id = ?", providerID).
		Where(squirrel.Eq{"s.id": serviceID, "s.is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetEffectiveService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.EffectiveService
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEffectiveService - scan service: %v", ErrScanRow, err)
	}

	return &service, nil
}
