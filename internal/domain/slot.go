package domain

import "time"

// Slot вычисляемый на лету интервал, доступный для бронирования
// Никогда не сохраняется: пересчитывается на каждый запрос из расписания,
// политики и текущих бронирований, поэтому не может устареть независимо от них
type Slot struct {
	StartAt time.Time
	EndAt   time.Time
}

// Interval returns the slot interval [StartAt, EndAt)
func (s Slot) Interval() Interval {
	return Interval{Start: s.StartAt, End: s.EndAt}
}

/// Display возвращает человекочитаемое время начала слота ("9:00 AM")
func (s Slot) Display(loc *time.Location) string {
	return s.StartAt.In(loc).Format(DisplayTimeFormat)
}
