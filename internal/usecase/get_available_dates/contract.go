package get_available_dates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetWeeklyHours(ctx context.Context, providerID uuid.UUID) ([]domain.WeeklyHours, error)
	GetTimeOff(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]domain.TimeOff, error)
}

// CatalogRepository интерфейс репозитория каталога мастеров и услуг
type CatalogRepository interface {
	GetProvider(ctx context.Context, providerID uuid.UUID) (*domain.Provider, error)
	GetEffectiveService(ctx context.Context, providerID, serviceID uuid.UUID) (*domain.EffectiveService, error)
}

// PolicyRepository интерфейс репозитория политики бронирования
type PolicyRepository interface {
	GetBookingPolicy(ctx context.Context) (*domain.BookingPolicy, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
