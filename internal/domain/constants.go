package domain

import "errors"

// Default booking policy values
// Совпадают с дефолтами хранилища настроек: применяются, когда ключ не задан
const (
	DefaultBufferMinutes          = 15
	DefaultMinAdvanceHours        = 2
	DefaultMaxAdvanceDays         = 60
	DefaultSlotGranularityMinutes = 15
)

// Business validation constants
const (
	MaxClientNameLength         = 100
	MaxClientNotesLength        = 500
	MaxCancellationReasonLength = 500
)

// Confirmation code generation
// Алфавит без визуально похожих символов (0/O, 1/I)
const (
	ConfirmationCodeLength   = 6
	ConfirmationCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Time format constants
const (
	DateFormat        = "2006-01-02" // YYYY-MM-DD
	MonthFormat       = "2006-01"    // YYYY-MM
	DisplayTimeFormat = "3:04 PM"    // человекочитаемое время слота
)

var (
	// ErrInvalidPolicy возвращается при нарушении инвариантов политики бронирования
	ErrInvalidPolicy = errors.New("domain: invalid booking policy")
)

// ActiveStatuses статусы, блокирующие время мастера
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
}

// ValidStatuses все допустимые статусы бронирования
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
