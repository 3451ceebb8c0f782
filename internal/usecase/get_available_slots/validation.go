package get_available_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID == uuid.Nil {
		return fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата попадает в окно бронирования
// Дальняя граница maxAdvanceDays включительна: на саму граничную дату
// бронирование ещё разрешено
func validateDate(date time.Time, now time.Time, policy *domain.BookingPolicy, loc *time.Location) error {
	if isDateInPast(date, now, loc) {
		return ErrInvalidDate
	}

	maxDate := policy.MaxBookingDate(now, loc)
	if dayStart(date, loc).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, policy.MaxAdvanceDays)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня в таймзоне салона
func isDateInPast(date, now time.Time, loc *time.Location) bool {
	return dayStart(date, loc).Before(dayStart(now, loc))
}

// dayStart возвращает полночь указанной даты в таймзоне салона
func dayStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
