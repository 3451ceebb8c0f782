package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Provider represents the person performing services (мастер)
type Provider struct {
	ID       uuid.UUID
	Name     string
	IsActive bool
}

// Service represents a bookable service with its base duration and price
// Для конкретного мастера длительность и цена могут быть переопределены
// (см. EffectiveService)
type Service struct {
	ID              uuid.UUID
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
}

// EffectiveService услуга с применёнными переопределениями мастера
// Duration/Price уже разрешены: COALESCE(custom, base)
type EffectiveService struct {
	ID              uuid.UUID
	Name            string
	DurationMinutes int
	Price           float64
}

// WeeklyHours одно повторяющееся еженедельное окно рабочих часов мастера
// На один день недели допускается несколько окон; окна одного дня не
// пересекаются (инвариант хранилища расписаний, здесь не перепроверяется)
type WeeklyHours struct {
	ProviderID uuid.UUID
	DayOfWeek  int // 0 = Sunday ... 6 = Saturday
	StartTime  types.TimeString
	EndTime    types.TimeString
}

// WindowOn привязывает еженедельное окно к конкретной дате в таймзоне салона
func (w WeeklyHours) WindowOn(date time.Time, loc *time.Location) (Interval, error) {
	start, err := w.StartTime.At(date, loc)
	if err != nil {
		return Interval{}, err
	}
	end, err := w.EndTime.At(date, loc)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

// TimeOff разовый интервал недоступности мастера (отпуск, блок времени)
// Может охватывать произвольное число дней
type TimeOff struct {
	ProviderID uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
	Reason     *string
}

// Interval returns the time-off interval [StartAt, EndAt)
func (t TimeOff) Interval() Interval {
	return Interval{Start: t.StartAt, End: t.EndAt}
}

// CoversDay returns true if the time-off fully covers the given day
func (t TimeOff) CoversDay(day Interval) bool {
	return t.Interval().Contains(day)
}
