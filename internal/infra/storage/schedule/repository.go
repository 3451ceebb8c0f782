package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (переиспользуем из dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий расписаний мастеров: еженедельные часы и time-off
// Для ядра доступности эти данные read-only; запись идёт через админку
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklyHours получает все активные еженедельные окна мастера
func (r *Repository) GetWeeklyHours(ctx context.Context, providerID uuid.UUID) ([]domain.WeeklyHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"provider_id",
		"day_of_week",
		"start_time",
		"end_time",
	).
		From("provider_weekly_hours").
		Where(squirrel.Eq{"provider_id": providerID, "is_active": true}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]domain.WeeklyHours, 0)
	for rows.Next() {
		var wh domain.WeeklyHours
		if err := rows.Scan(&wh.ProviderID, &wh.DayOfWeek, &wh.StartTime, &wh.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetWeeklyHours - scan row: %v", ErrScanRow, err)
		}
		hours = append(hours, wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// GetTimeOff получает интервалы недоступности мастера, пересекающие [from, to)
func (r *Repository) GetTimeOff(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"provider_id",
		"start_at",
		"end_at",
		"reason",
	).
		From("provider_time_off").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	timeOff := make([]domain.TimeOff, 0)
	for rows.Next() {
		var to domain.TimeOff
		if err := rows.Scan(&to.ProviderID, &to.StartAt, &to.EndAt, &to.Reason); err != nil {
			return nil, fmt.Errorf("%w: GetTimeOff - scan row: %v", ErrScanRow, err)
		}
		timeOff = append(timeOff, to)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - rows error: %v", ErrScanRow, err)
	}

	return timeOff, nil
}
