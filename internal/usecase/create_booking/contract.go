package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	// GetActiveInRange получает активные бронирования мастера, пересекающие [from, to)
	// Внутри транзакции строки блокируются (FOR UPDATE)
	GetActiveInRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*domain.Booking, error)
}

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

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	FindOrCreateByEmail(ctx context.Context, email, name string, phone *string) (*domain.Client, error)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	SendBookingConfirmation(ctx context.Context, notification notifier.BookingNotification)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
