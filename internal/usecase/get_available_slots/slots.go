package get_available_slots

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// generateSlots генерирует доступные слоты внутри одного рабочего окна.
// Кандидаты идут от начала окна с фиксированным шагом granularityMinutes,
// пока кандидат целиком помещается в окно. Кандидат становится слотом, если:
// - он начинается не раньше minStart (правило минимального заблаговременного
//   бронирования), и
// - он целиком лежит в одном из свободных отрезков окна.
//
// Свободные отрезки — это окно за вычетом time-off и существующих
// бронирований, расширенных буфером. Буфер применяется только к концу
// существующих бронирований, никогда к кандидату: слот может начинаться
// ровно в момент окончания чужого буфера
func generateSlots(
	window domain.Interval,
	exclusions []domain.Interval,
	durationMinutes int,
	granularityMinutes int,
	minStart time.Time,
) []domain.Slot {
	free := domain.SubtractAll(window, exclusions)
	if len(free) == 0 {
		return nil
	}

	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(granularityMinutes) * time.Minute

	slots := make([]domain.Slot, 0)

	for start := window.Start; !start.Add(duration).After(window.End); start = start.Add(step) {
		if start.Before(minStart) {
			continue
		}

		candidate := domain.Interval{Start: start, End: start.Add(duration)}
		if containedInAny(free, candidate) {
			slots = append(slots, domain.Slot{StartAt: candidate.Start, EndAt: candidate.End})
		}
	}

	return slots
}

// containedInAny проверяет, что кандидат целиком лежит в одном из свободных отрезков
func containedInAny(free []domain.Interval, candidate domain.Interval) bool {
	for _, f := range free {
		if f.Contains(candidate) {
			return true
		}
	}
	return false
}

// buildExclusions собирает интервалы, запрещённые для кандидатов:
// time-off мастера и активные бронирования с буфером после каждого
func buildExclusions(timeOff []domain.TimeOff, bookings []*domain.Booking, bufferMinutes int) []domain.Interval {
	exclusions := make([]domain.Interval, 0, len(timeOff)+len(bookings))

	for _, t := range timeOff {
		exclusions = append(exclusions, t.Interval())
	}

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		exclusions = append(exclusions, b.Interval().WithBufferAfter(bufferMinutes))
	}

	return exclusions
}
