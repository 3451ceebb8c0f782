package domain

import "time"

// Interval полуоткрытый временной интервал [Start, End)
// Вся арифметика доступности и проверок конфликтов построена на нём
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsEmpty returns true if the interval has zero or negative width
func (i Interval) IsEmpty() bool {
	return !i.End.After(i.Start)
}

// Overlaps returns true if the two half-open intervals share any time.
// Граничащие интервалы (a.End == b.Start) НЕ считаются пересекающимися:
// новое бронирование может начинаться ровно в момент окончания предыдущего
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains returns true if other lies entirely within i
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// WithBufferAfter returns the interval with its end extended by bufferMinutes.
// Буфер — это «остывание после» существующего бронирования: он сдвигает только
// конец интервала и применяется к существующим бронированиям перед проверкой
// конфликтов, никогда к кандидату
func (i Interval) WithBufferAfter(bufferMinutes int) Interval {
	if bufferMinutes <= 0 {
		return i
	}
	return Interval{Start: i.Start, End: i.End.Add(time.Duration(bufferMinutes) * time.Minute)}
}

// Clip returns the part of i that lies within bounds (empty if none)
func (i Interval) Clip(bounds Interval) Interval {
	out := i
	if out.Start.Before(bounds.Start) {
		out.Start = bounds.Start
	}
	if out.End.After(bounds.End) {
		out.End = bounds.End
	}
	if out.IsEmpty() {
		return Interval{}
	}
	return out
}

// SubtractAll возвращает части base, не покрытые ни одним из exclusions.
// Исключения могут частично или полностью покрывать base и пересекаться
// между собой; интервалы нулевой ширины в результат не попадают
func SubtractAll(base Interval, exclusions []Interval) []Interval {
	if base.IsEmpty() {
		return nil
	}

	remaining := []Interval{base}

	for _, excl := range exclusions {
		if excl.IsEmpty() {
			continue
		}

		next := make([]Interval, 0, len(remaining))
		for _, r := range remaining {
			if !r.Overlaps(excl) {
				next = append(next, r)
				continue
			}

			// Левый остаток до начала исключения
			if r.Start.Before(excl.Start) {
				left := Interval{Start: r.Start, End: excl.Start}
				if !left.IsEmpty() {
					next = append(next, left)
				}
			}

			// Правый остаток после конца исключения
			if excl.End.Before(r.End) {
				right := Interval{Start: excl.End, End: r.End}
				if !right.IsEmpty() {
					next = append(next, right)
				}
			}
		}
		remaining = next

		if len(remaining) == 0 {
			return remaining
		}
	}

	return remaining
}
