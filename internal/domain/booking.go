package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents an appointment in the system
// Start/End хранятся как абсолютные моменты времени; End всегда вычисляется
// сервером из актуальной длительности услуги и никогда не принимается от клиента
type Booking struct {
	ID               uuid.UUID
	ConfirmationCode string
	ClientID         uuid.UUID
	ProviderID       uuid.UUID
	ServiceID        uuid.UUID
	StartAt          time.Time
	EndAt            time.Time
	Status           BookingStatus

	// Denormalized data for history: снимок на момент бронирования,
	// не меняется при последующем изменении услуги или мастера
	ServiceName     string
	DurationMinutes int
	ServicePrice    float64
	ProviderName    string
	ClientName      string
	ClientEmail     string
	ClientPhone     *string
	ClientNotes     *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still blocks its time interval
// Отменённые бронирования навсегда исключаются из проверок пересечений
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusNoShow
}

// Interval returns the booked time interval [StartAt, EndAt)
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartAt, End: b.EndAt}
}

// BookingsFilter фильтр для получения бронирований (список для персонала)
type BookingsFilter struct {
	ProviderID      *uuid.UUID     // Фильтр по мастеру (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
	Limit           int
	Offset          int
}
