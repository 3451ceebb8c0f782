package policy

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

// Ключи политики бронирования в таблице settings
const (
	keyBufferMinutes   = "booking_buffer_minutes"
	keyMinAdvanceHours = "min_advance_booking_hours"
	keyMaxAdvanceDays  = "max_advance_booking_days"
	keySlotGranularity = "slot_granularity_minutes"
)

// DBExecutor интерфейс для выполнения запросов (переиспользуем из dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий политики бронирования поверх key/value настроек
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBookingPolicy читает политику бронирования из настроек
// Отсутствующие или нечитаемые ключи заменяются дефолтами; ошибка
// возвращается только при недоступности хранилища
func (r *Repository) GetBookingPolicy(ctx context.Context) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("key", "value").
		From("settings").
		Where(squirrel.Eq{"key": []string{
			keyBufferMinutes,
			keyMinAdvanceHours,
			keyMaxAdvanceDays,
			keySlotGranularity,
		}}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingPolicy - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingPolicy - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	values := make(map[string]int)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: GetBookingPolicy - scan row: %v", ErrScanRow, err)
		}
		if parsed, err := strconv.Atoi(value); err == nil {
			values[key] = parsed
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookingPolicy - rows error: %v", ErrScanRow, err)
	}

	return &domain.BookingPolicy{
		BufferMinutes:          intOrDefault(values, keyBufferMinutes, domain.DefaultBufferMinutes),
		MinAdvanceHours:        intOrDefault(values, keyMinAdvanceHours, domain.DefaultMinAdvanceHours),
		MaxAdvanceDays:         intOrDefault(values, keyMaxAdvanceDays, domain.DefaultMaxAdvanceDays),
		SlotGranularityMinutes: intOrDefault(values, keySlotGranularity, domain.DefaultSlotGranularityMinutes),
	}, nil
}

func intOrDefault(values map[string]int, key string, def int) int {
	if v, ok := values[key]; ok {
		return v
	}
	return def
}
