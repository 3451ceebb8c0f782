package domain

import "time"

// BookingPolicy глобальная политика бронирования салона (singleton)
// Читается из хранилища настроек; отсутствующие ключи заменяются дефолтами
type BookingPolicy struct {
	BufferMinutes          int // обязательный зазор ПОСЛЕ каждого бронирования
	MinAdvanceHours        int // слот не может начинаться раньше now + MinAdvanceHours
	MaxAdvanceDays         int // дальняя граница окна бронирования (включительно)
	SlotGranularityMinutes int // шаг генерации слотов
}

// Validate проверяет инварианты политики: все значения неотрицательны,
// шаг генерации положителен
func (p BookingPolicy) Validate() error {
	if p.BufferMinutes < 0 || p.MinAdvanceHours < 0 || p.MaxAdvanceDays < 0 {
		return ErrInvalidPolicy
	}
	if p.SlotGranularityMinutes <= 0 {
		return ErrInvalidPolicy
	}
	return nil
}

// MinBookingTime возвращает самый ранний допустимый момент начала слота
func (p BookingPolicy) MinBookingTime(now time.Time) time.Time {
	return now.Add(time.Duration(p.MinAdvanceHours) * time.Hour)
}

// MaxBookingDate возвращает последнюю дату (включительно), на которую
// разрешено бронирование, в таймзоне салона
func (p BookingPolicy) MaxBookingDate(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return today.AddDate(0, 0, p.MaxAdvanceDays)
}
